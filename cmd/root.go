package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/enlist-sim/enlist-sim/sim"
	"github.com/enlist-sim/enlist-sim/sim/dataset"
	"github.com/enlist-sim/enlist-sim/sim/trace"
)

var (
	// CLI flags shared by run and conflicts
	inputPath  string // CSV file of desired sections
	logLevel   string // Log verbosity level
	outputFmt  string // text or json
	configPath string // Optional YAML run config

	// CLI flags for the Monte Carlo run
	trials     int     // Number of simulated enlistment draws
	seed       int64   // Master seed for the draw RNG
	workers    int     // Goroutines sharing the trials
	traceLevel string  // Per-trial trace level
	topMissed  int     // Missed subjects listed when tracing
	highThresh float64 // Lower bound of the HIGH tier
	medThresh  float64 // Lower bound of the MEDIUM tier
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "enlist-sim",
	Short: "Monte Carlo estimator for class enlistment outcomes",
	Long: "Estimates the probability of ending up with a complete, conflict-free class roster " +
		"given per-section slot and demand figures, and rates each subject's chances.",
}

// runCmd executes the simulation using parameters from CLI flags and the optional config file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the enlistment simulation",
	Run: func(cmd *cobra.Command, args []string) {
		f := runFlags{
			input:      inputPath,
			trials:     trials,
			seed:       seed,
			workers:    workers,
			logLevel:   logLevel,
			output:     outputFmt,
			trace:      traceLevel,
			topMissed:  topMissed,
			highThresh: highThresh,
			medThresh:  medThresh,
		}
		if configPath != "" {
			fileCfg, err := loadFileConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			f = f.merge(fileCfg, cmd.Flags().Changed)
		}
		setLogLevel(f.logLevel)

		opts, err := f.options()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		ds := mustLoadDataset(opts.InputPath)

		logrus.Infof("Starting simulation: %d sections, trials=%d, workers=%d, seed=%d",
			len(ds.Sections), opts.Sim.Trials, opts.Sim.Workers, opts.Sim.Seed)
		startTime := time.Now()

		res, err := sim.Simulate(cmd.Context(), ds.Sections, opts.Sim)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logrus.Fatalf("Simulation interrupted")
			}
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %v", time.Since(startTime))

		recs := sim.RecommendWith(ds.Sections, opts.Thresholds)
		report := newReport(opts, ds, res, recs)
		if err := report.Write(cmd.OutOrStdout(), opts.Output); err != nil {
			logrus.Fatalf("Writing report: %v", err)
		}
	},
}

// conflictsCmd lists every conflicting pair and the roster kept if every section were won
var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "List conflicting sections without simulating",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
		if inputPath == "" {
			logrus.Fatalf("No input file: pass --input")
		}
		if outputFmt != OutputText && outputFmt != OutputJSON {
			logrus.Fatalf("Unknown output format %q", outputFmt)
		}
		ds := mustLoadDataset(inputPath)
		report := newConflictReport(ds.Sections)
		if err := report.Write(cmd.OutOrStdout(), outputFmt); err != nil {
			logrus.Fatalf("Writing report: %v", err)
		}
	},
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// mustLoadDataset reads the section CSV, exiting on dataset-level failures.
func mustLoadDataset(path string) *dataset.Dataset {
	ds, err := dataset.LoadFile(path)
	switch {
	case err == nil:
		return ds
	case errors.Is(err, dataset.ErrDataSourceNotFound):
		logrus.Fatalf("The CSV file '%s' was not found", path)
	case errors.Is(err, dataset.ErrEmptyDataset):
		logrus.Fatalf("No valid class data found in '%s'. Please check the file format and content.", path)
	default:
		logrus.Fatalf("Could not read '%s': %v", path, err)
	}
	return nil
}

// Execute runs the CLI root command. An interrupt cancels a running simulation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "CSV file of desired class sections")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", OutputText, "Report format (text, json)")

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config; explicit flags override its values")
	runCmd.Flags().IntVar(&trials, "trials", sim.DefaultTrials, "Number of simulated enlistment draws")
	runCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for the enlistment draws")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Goroutines sharing the trials (results depend on seed and worker count)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Per-trial trace level (none, trials)")
	runCmd.Flags().IntVar(&topMissed, "top-missed", 5, "Most frequently missed subjects to list when tracing (0 lists all)")
	runCmd.Flags().Float64Var(&highThresh, "high-threshold", sim.DefaultThresholds().High, "Minimum probability for the HIGH tier")
	runCmd.Flags().Float64Var(&medThresh, "medium-threshold", sim.DefaultThresholds().Medium, "Minimum probability for the MEDIUM tier")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(conflictsCmd)
}
