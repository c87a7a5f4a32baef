package main

import (
	"fmt"
	"os"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

type VersionCommand struct {
}

func (c *VersionCommand) Execute(args []string) error {
	fmt.Fprintf(os.Stdout, "cloudgrow version %s\n", cloudgrow.CLOUDGROW_VERSION)
	return nil
}

func init() {
	_, err := parser.AddCommand("version",
		"print version",
		"prints version on stdout",
		&VersionCommand{})
	if err != nil {
		panic(err.Error())
	}
}
