package cmd

import (
	"fmt"
	"time"

	"github.com/sherine-k/ovens/pkg/chart"
	"github.com/sherine-k/ovens/pkg/config"
	"github.com/sherine-k/ovens/pkg/record"
	"github.com/sherine-k/ovens/pkg/simulation"
	"github.com/sherine-k/ovens/pkg/utilization"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile       string
	showTimeline     bool
	timelineLimit    int
	showEventSummary bool
	showChart        bool
	logLevel         string
	dbPath           string
	windowSize       int64
	tickDelay        time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "ovens",
	Short: "Pizza oven completion-time simulator",
	Long: `A CLI tool that simulates a pizza kitchen with a fixed number of ovens.

Every order is promised a finish time the moment it arrives, assuming pizzas
are baked first-come-first-served in whichever oven frees up soonest. After the
run, oven utilization is reported over fixed time windows.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runSimulation,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVarP(&showTimeline, "timeline", "t", false, "Show detailed timeline of events")
	rootCmd.Flags().IntVarP(&timelineLimit, "timeline-limit", "l", 50, "Limit number of timeline events to display")
	rootCmd.Flags().BoolVarP(&showEventSummary, "summary", "s", true, "Show event summary")
	rootCmd.Flags().BoolVar(&showChart, "chart", true, "Show oven usage chart")
	rootCmd.Flags().Int64VarP(&windowSize, "window", "w", 0, "Utilization window in ticks (overrides windowSize)")
	rootCmd.Flags().DurationVar(&tickDelay, "tick-delay", 0, "Wall-clock pause between ticks (overrides tickDelay)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Record the run into this SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("window") {
		cfg.WindowSize = windowSize
	}
	if cmd.Flags().Changed("tick-delay") {
		cfg.TickDelay = tickDelay
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded configuration from %s\n", configFile)
	fmt.Fprintf(out, "  - Ovens: %d\n", cfg.Ovens)
	fmt.Fprintf(out, "  - Window Size: %d ticks\n", cfg.WindowSize)
	fmt.Fprintf(out, "  - Tick Delay: %s\n", cfg.TickDelay)
	fmt.Fprintf(out, "  - Orders: %d\n\n", len(cfg.Orders))

	sim, err := simulation.NewSimulator(cfg)
	if err != nil {
		return err
	}
	if err := sim.Run(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	windows, err := utilization.Compute(sim.GetSpans(), sim.Ovens(), cfg.WindowSize, sim.Tick())
	if err != nil {
		return fmt.Errorf("failed to compute utilization: %w", err)
	}

	chartGen := chart.NewGenerator()

	if showChart {
		fmt.Fprintln(out, chartGen.GenerateOvenChart(sim.GetTimePoints(), sim.Ovens()))
	}

	fmt.Fprintln(out, chartGen.GenerateUtilizationTable(windows, sim.Ovens()))

	if showEventSummary {
		fmt.Fprintln(out, chartGen.GenerateEventSummary(sim.GetEvents()))
	}

	fmt.Fprintln(out, chartGen.GenerateForecastReport(sim.GetCompleted()))

	if showTimeline {
		fmt.Fprintln(out, chartGen.GenerateDetailedTimeline(sim.GetEvents(), timelineLimit))
	}

	if dbPath != "" {
		rec, err := record.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open run database: %w", err)
		}
		defer rec.Close()

		runID, err := rec.WriteRun(sim.Ovens(), sim.Tick(), sim.GetCompleted())
		if err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		fmt.Fprintf(out, "Recorded run %s in %s\n", runID, dbPath)
	}

	return nil
}
