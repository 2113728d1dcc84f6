package sim

import (
	"fmt"
	"math"

	"github.com/enlist-sim/enlist-sim/sim/trace"
)

const (
	// DefaultTrials is the number of simulated draws per run.
	DefaultTrials = 100000
	// DefaultSeed seeds the partitioned RNG when none is given.
	DefaultSeed int64 = 42
)

// SimConfig groups Monte Carlo run parameters.
type SimConfig struct {
	Trials  int               // independent draws (must be > 0)
	Workers int               // trial partitions run in parallel (must be > 0)
	Seed    int64             // master seed; same seed and worker count reproduce a run
	Trace   trace.TraceConfig // per-trial recording (off by default)
}

// NewSimConfig creates a SimConfig with tracing disabled.
func NewSimConfig(trials, workers int, seed int64) SimConfig {
	return SimConfig{
		Trials:  trials,
		Workers: workers,
		Seed:    seed,
		Trace:   trace.TraceConfig{Level: trace.TraceLevelNone},
	}
}

// DefaultSimConfig is a single-worker run of DefaultTrials draws.
func DefaultSimConfig() SimConfig {
	return NewSimConfig(DefaultTrials, 1, DefaultSeed)
}

// Validate checks that the run can proceed.
func (c SimConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q; valid: none, trials", c.Trace.Level)
	}
	return nil
}

// Thresholds are the lower bounds of the HIGH and MEDIUM recommendation tiers.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds returns HIGH at 0.81 and MEDIUM at 0.61.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.81, Medium: 0.61}
}

// Validate requires 0 <= Medium <= High <= 1.
func (t Thresholds) Validate() error {
	for name, v := range map[string]float64{"high": t.High, "medium": t.Medium} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s threshold must be in [0, 1], got %f", name, v)
		}
	}
	if t.Medium > t.High {
		return fmt.Errorf("medium threshold %f exceeds high threshold %f", t.Medium, t.High)
	}
	return nil
}
