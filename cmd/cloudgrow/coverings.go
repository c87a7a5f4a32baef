package main

import (
	"github.com/atuleu/go-tablifier"
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

type CoveringsCommand struct {
}

type coveringTableLine struct {
	Name               string
	SolarTransmittance float64
	PARTransmittance   float64
	UValue             float64
	SolarReflectance   float64
}

func (c *CoveringsCommand) Execute(args []string) error {
	lines := make([]coveringTableLine, 0, len(cloudgrow.CoveringNames()))
	for _, name := range cloudgrow.CoveringNames() {
		covering, err := cloudgrow.CoveringByName(name)
		if err != nil {
			return err
		}
		lines = append(lines, coveringTableLine{
			Name:               covering.Name,
			SolarTransmittance: covering.SolarTransmittance,
			PARTransmittance:   covering.PARTransmittance,
			UValue:             covering.UValue,
			SolarReflectance:   covering.SolarReflectance,
		})
	}
	tablifier.Tablify(lines)
	return nil
}

func init() {
	_, err := parser.AddCommand("list-coverings",
		"lists covering materials",
		"lists the built-in covering material catalog with its optical and thermal properties",
		&CoveringsCommand{})
	if err != nil {
		panic(err.Error())
	}
}
