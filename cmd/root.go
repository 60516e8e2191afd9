package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/dispatch-sim/dispatch-sim/sim"
	"github.com/dispatch-sim/dispatch-sim/sim/journal"
)

var (
	mapPath      string // Road map YAML file
	assetsPath   string // Bases, fleets and rosters YAML file
	scenarioPath string // Emergencies and events YAML file
	outPath      string // Journal output file, stdout when empty
	maxTicks     int    // Tick budget override
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dispatch-sim",
	Short: "Deterministic tick-driven emergency dispatch simulator",
}

// runCmd loads the three input files, runs the simulation and prints the
// summary.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a dispatch scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)

		mapCfg, err := LoadMapConfig(mapPath)
		if err != nil {
			return err
		}
		assetsCfg, err := LoadAssetsConfig(assetsPath, mapCfg)
		if err != nil {
			return err
		}
		scenarioBytes, err := os.ReadFile(scenarioPath)
		if err != nil {
			return fmt.Errorf("reading scenario config: %w", err)
		}
		scenarioCfg, err := ParseScenarioConfig(scenarioBytes, mapCfg, assetsCfg)
		if err != nil {
			return err
		}

		ticks := scenarioCfg.MaxTicks
		if cmd.Flags().Changed("ticks") {
			ticks = maxTicks
		}

		out := io.Writer(os.Stdout)
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating journal output: %w", err)
			}
			defer f.Close()
			out = f
		}

		runID := journal.RunID(scenarioBytes)
		color.New(color.FgCyan, color.Bold).Fprintf(os.Stderr, "dispatch-sim run %s\n", runID)
		logrus.Infof("running scenario %s for up to %d ticks", scenarioPath, ticks)

		roads, net := mapCfg.Build()
		bases, vehicles, staff := assetsCfg.Build()
		emergencies, events := scenarioCfg.Build(roads)
		j := journal.New(out)
		w := sim.NewWorld(net, roads, bases, vehicles, staff, emergencies, ticks, j)
		sim.NewSimulator(w, events).Run()

		if err := journal.RenderSummary(os.Stderr, j.Stats()); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&mapPath, "map", "map.yaml", "Road map input file")
	runCmd.Flags().StringVar(&assetsPath, "assets", "assets.yaml", "Bases, fleets and rosters input file")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "scenario.yaml", "Emergencies and events input file")
	runCmd.Flags().StringVar(&outPath, "out", "", "Journal output file (default stdout)")
	runCmd.Flags().IntVar(&maxTicks, "ticks", 0, "Tick budget, overrides the scenario's max_ticks")
	runCmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
}
