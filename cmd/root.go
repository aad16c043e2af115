package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/srtfsim/srtf-sim/sim"
	"github.com/srtfsim/srtf-sim/sim/report"
	"github.com/srtfsim/srtf-sim/sim/trace"
	"github.com/srtfsim/srtf-sim/sim/workload"
)

var (
	// CLI flags for the run command
	processesPath string   // YAML or CSV process file
	inlineProcs   []string // processes given as [id:]arrival:burst
	advanceMode   string   // "unit" or "jump"
	maxProcesses  int      // upper bound on process count
	ceilingFactor int64    // iteration ceiling multiplier
	maxEvents     int      // Gantt log capacity (0 = unbounded)
	traceLevel    string   // decision trace verbosity
	outputFormat  string   // "table" or "json"
	resultsPath   string   // optional JSON results file
	showRemaining bool     // show the remaining-time column as supplied
	showTimeline  bool     // show one row per Gantt segment
	logLevel      string   // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "srtf-sim",
	Short: "Preemptive Shortest-Remaining-Time-First CPU scheduling simulator",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the SRTF simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		specs, cfg, err := buildRunInputs(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(cmd.OutOrStdout(), specs, cfg); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// buildRunInputs merges the process file with CLI flags. Flags override file
// values only when explicitly set.
func buildRunInputs(cmd *cobra.Command) ([]sim.ProcessSpec, sim.SimConfig, error) {
	cfg := sim.DefaultSimConfig()
	var specs []sim.ProcessSpec

	if processesPath != "" {
		f, err := workload.LoadProcesses(processesPath)
		if err != nil {
			return nil, cfg, err
		}
		specs = f.Specs()
		if f.Advance != "" {
			cfg.Advance = sim.AdvanceMode(f.Advance)
		}
		if f.MaxProcesses > 0 {
			cfg.MaxProcesses = f.MaxProcesses
		}
		logrus.Infof("Loaded %d processes from %s", len(specs), processesPath)
	}
	for _, raw := range inlineProcs {
		spec, err := parseInlineProcess(raw, len(specs))
		if err != nil {
			return nil, cfg, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, cfg, fmt.Errorf("%w: no processes given; use --processes or --process", sim.ErrConfiguration)
	}

	if cmd.Flags().Changed("advance") {
		cfg.Advance = sim.AdvanceMode(advanceMode)
	}
	if cmd.Flags().Changed("max-processes") {
		cfg.MaxProcesses = maxProcesses
	}
	cfg.CeilingFactor = ceilingFactor
	cfg.MaxEvents = maxEvents
	cfg.Trace = trace.TraceLevel(traceLevel)
	return specs, cfg, cfg.Validate()
}

// parseInlineProcess parses "[id:]arrival:burst". Missing IDs get the
// default name for their position.
func parseInlineProcess(raw string, index int) (sim.ProcessSpec, error) {
	parts := strings.Split(raw, ":")
	spec := sim.ProcessSpec{ID: sim.DefaultProcessID(index)}
	switch len(parts) {
	case 2:
	case 3:
		spec.ID = strings.TrimSpace(parts[0])
		parts = parts[1:]
	default:
		return spec, fmt.Errorf("%w: --process %q: expected [id:]arrival:burst", sim.ErrConfiguration, raw)
	}
	arrival, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return spec, fmt.Errorf("%w: --process %q: invalid arrival time", sim.ErrConfiguration, raw)
	}
	burst, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return spec, fmt.Errorf("%w: --process %q: invalid burst time", sim.ErrConfiguration, raw)
	}
	spec.ArrivalTime, spec.BurstTime = arrival, burst
	return spec, nil
}

// runSimulation runs the engine and renders the result to w.
func runSimulation(w io.Writer, specs []sim.ProcessSpec, cfg sim.SimConfig) error {
	s, err := sim.NewSimulator(specs, cfg)
	if err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		if err := report.WriteJSON(w, res); err != nil {
			return err
		}
	default:
		report.WriteTable(w, res, showRemaining)
		_, _ = fmt.Fprintln(w)
		report.WriteGantt(w, res)
		if showTimeline {
			_, _ = fmt.Fprintln(w)
			report.WriteTimeline(w, res)
		}
		if res.Trace != nil {
			_, _ = fmt.Fprintf(w, "\nContext switches: %d, preemptions: %d, idle ticks: %d\n",
				res.Trace.ContextSwitches, res.Trace.Preemptions, res.Trace.IdleTicks)
		}
	}

	if resultsPath != "" {
		if err := report.SaveJSON(res, resultsPath); err != nil {
			return err
		}
	}
	logrus.Info("Simulation complete.")
	return nil
}

var validOutputFormats = map[string]bool{"table": true, "json": true}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVarP(&processesPath, "processes", "p", "", "Path to a YAML or CSV process file")
	runCmd.Flags().StringArrayVar(&inlineProcs, "process", nil, "Process as [id:]arrival:burst (repeatable, appended after --processes)")
	runCmd.Flags().StringVar(&advanceMode, "advance", string(sim.AdvanceUnit), "Time advance mode (unit, jump)")
	runCmd.Flags().IntVar(&maxProcesses, "max-processes", sim.DefaultMaxProcesses, "Maximum number of processes accepted")
	runCmd.Flags().Int64Var(&ceilingFactor, "ceiling-factor", sim.DefaultCeilingFactor, "Iteration ceiling as a multiple of total burst plus latest arrival")
	runCmd.Flags().IntVar(&maxEvents, "max-events", 0, "Gantt log capacity (0 = unbounded)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Also write JSON results to this file")
	runCmd.Flags().BoolVar(&showRemaining, "show-remaining", false, "Show the remaining time column as supplied")
	runCmd.Flags().BoolVar(&showTimeline, "timeline", false, "Show one table row per Gantt segment")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !validOutputFormats[outputFormat] {
			return fmt.Errorf("unknown output format %q; valid: table, json", outputFormat)
		}
		return nil
	}

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
