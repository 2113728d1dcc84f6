package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/enlist-sim/enlist-sim/sim"
	"github.com/enlist-sim/enlist-sim/sim/trace"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// FileConfig is the optional YAML run configuration passed with --config.
// Pointer fields distinguish "absent" from a zero value.
type FileConfig struct {
	InputPath  string            `yaml:"input_path"`
	Trials     *int              `yaml:"trials"`
	Seed       *int64            `yaml:"seed"`
	Workers    *int              `yaml:"workers"`
	Log        string            `yaml:"log"`
	Output     string            `yaml:"output"`
	Trace      string            `yaml:"trace"`
	TopMissed  *int              `yaml:"top_missed"`
	Thresholds *ThresholdsConfig `yaml:"thresholds"`
}

// ThresholdsConfig overrides the recommendation tier boundaries.
type ThresholdsConfig struct {
	High   *float64 `yaml:"high"`
	Medium *float64 `yaml:"medium"`
}

// loadFileConfig parses a run config with strict field checking so that a
// misspelled key is an error rather than a silently ignored setting.
func loadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// An empty file decodes to io.EOF; treat it as "no overrides".
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// runFlags holds every setting of the run command after flag parsing.
type runFlags struct {
	input      string
	trials     int
	seed       int64
	workers    int
	logLevel   string
	output     string
	trace      string
	topMissed  int
	highThresh float64
	medThresh  float64
}

// merge fills settings from the config file. A flag the user set explicitly
// always wins over the file.
func (f runFlags) merge(file *FileConfig, changed func(name string) bool) runFlags {
	if file == nil {
		return f
	}
	if file.InputPath != "" && !changed("input") {
		f.input = file.InputPath
	}
	if file.Trials != nil && !changed("trials") {
		f.trials = *file.Trials
	}
	if file.Seed != nil && !changed("seed") {
		f.seed = *file.Seed
	}
	if file.Workers != nil && !changed("workers") {
		f.workers = *file.Workers
	}
	if file.Log != "" && !changed("log") {
		f.logLevel = file.Log
	}
	if file.Output != "" && !changed("output") {
		f.output = file.Output
	}
	if file.Trace != "" && !changed("trace") {
		f.trace = file.Trace
	}
	if file.TopMissed != nil && !changed("top-missed") {
		f.topMissed = *file.TopMissed
	}
	if th := file.Thresholds; th != nil {
		if th.High != nil && !changed("high-threshold") {
			f.highThresh = *th.High
		}
		if th.Medium != nil && !changed("medium-threshold") {
			f.medThresh = *th.Medium
		}
	}
	return f
}

// RunOptions is the validated configuration of one run.
type RunOptions struct {
	InputPath  string
	Output     string
	TopMissed  int
	Sim        sim.SimConfig
	Thresholds sim.Thresholds
}

func (f runFlags) options() (RunOptions, error) {
	opts := RunOptions{
		InputPath:  f.input,
		Output:     f.output,
		TopMissed:  f.topMissed,
		Sim:        sim.NewSimConfig(f.trials, f.workers, f.seed),
		Thresholds: sim.Thresholds{High: f.highThresh, Medium: f.medThresh},
	}
	opts.Sim.Trace = trace.TraceConfig{Level: trace.TraceLevel(f.trace)}

	if opts.InputPath == "" {
		return opts, errors.New("no input file: pass --input or set input_path in the config file")
	}
	if opts.Output != OutputText && opts.Output != OutputJSON {
		return opts, fmt.Errorf("unknown output format %q (valid: %s, %s)", opts.Output, OutputText, OutputJSON)
	}
	if opts.TopMissed < 0 {
		return opts, fmt.Errorf("top-missed must be >= 0, got %d", opts.TopMissed)
	}
	if err := opts.Sim.Validate(); err != nil {
		return opts, err
	}
	if err := opts.Thresholds.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
