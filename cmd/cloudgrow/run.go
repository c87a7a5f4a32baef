package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/atuleu/go-humanize"
	"github.com/cloudgrow/cloudgrow/internal/engine"
	"github.com/cloudgrow/cloudgrow/internal/recorder"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type RunCommand struct {
	OutputDir string `short:"o" long:"output-dir" description:"directory for recorded outputs"`
	CSV       bool   `long:"csv" description:"record the climate trajectory to a CSV file"`
	SQLite    bool   `long:"sqlite" description:"record the climate trajectory to a SQLite database"`
	Steps     int    `long:"steps" description:"run only that many steps instead of the full duration"`

	Args struct {
		Scenario flags.Filename
	} `positional-args:"yes" required:"yes"`
}

func (c *RunCommand) outputDir(scenarioName string) string {
	if len(c.OutputDir) != 0 {
		return c.OutputDir
	}
	if len(scenarioName) == 0 {
		scenarioName = "scenario"
	}
	return filepath.Join(xdg.DataHome, "cloudgrow", scenarioName)
}

func (c *RunCommand) Execute(args []string) error {
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logger := logrus.WithField("group", "cloudgrow")

	scenario, err := engine.ReadScenario(string(c.Args.Scenario))
	if err != nil {
		return err
	}
	sim, err := scenario.BuildEngine(logger)
	if err != nil {
		return err
	}

	if c.CSV || c.SQLite {
		dir := c.outputDir(scenario.Name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if c.CSV {
			rec, fname, err := recorder.NewCSVRecorder(filepath.Join(dir, "climate.csv"))
			if err != nil {
				return err
			}
			defer rec.Close()
			sim.AddSink(rec)
			logger.WithField("file", fname).Info("recording climate to CSV")
		}
		if c.SQLite {
			store, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "climate.db"),
				scenario.Name, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			sim.AddSink(store)
		}
	}

	stats, err := sim.Run(c.Steps)
	if err != nil {
		return err
	}

	final := sim.State()
	fmt.Fprintf(os.Stdout, "simulated %s in %s (%d steps, %s per step)\n",
		humanize.Duration(stats.SimulatedDuration),
		humanize.Duration(stats.WallDuration),
		stats.StepsCompleted,
		humanize.Duration(stats.AverageStepTime()))
	fmt.Fprintf(os.Stdout, "final interior: %.1f°C %.1f%% RH %.0f ppm CO2\n",
		final.Interior.Temperature, final.Interior.Humidity, final.Interior.CO2)
	return nil
}

type CheckCommand struct {
	Args struct {
		Scenario flags.Filename
	} `positional-args:"yes" required:"yes"`
}

func (c *CheckCommand) Execute(args []string) error {
	scenario, err := engine.ReadScenario(string(c.Args.Scenario))
	if err != nil {
		return err
	}
	if _, err := scenario.BuildEngine(logrus.WithField("group", "cloudgrow")); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: ok (%d sensors, %d actuators, %d controllers, %d modifiers)\n",
		c.Args.Scenario, len(scenario.Sensors), len(scenario.Actuators),
		len(scenario.Controllers), len(scenario.Modifiers))
	return nil
}

func init() {
	_, err := parser.AddCommand("run",
		"runs a scenario",
		"runs a simulation scenario to completion, optionally recording the climate trajectory",
		&RunCommand{})
	if err != nil {
		panic(err.Error())
	}

	_, err = parser.AddCommand("check",
		"validates a scenario",
		"parses and wires a scenario without running it, reporting configuration errors",
		&CheckCommand{})
	if err != nil {
		panic(err.Error())
	}
}
