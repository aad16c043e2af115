package sim

import (
	"fmt"

	"github.com/srtfsim/srtf-sim/sim/trace"
)

// AdvanceMode selects how the driver moves the clock forward.
type AdvanceMode string

const (
	// AdvanceUnit advances one time unit per loop iteration (reference behavior).
	AdvanceUnit AdvanceMode = "unit"
	// AdvanceJump skips ahead to the next arrival or completion boundary.
	// Events and metrics are identical to AdvanceUnit.
	AdvanceJump AdvanceMode = "jump"
)

// validAdvanceModes maps accepted advance mode strings.
var validAdvanceModes = map[AdvanceMode]bool{
	AdvanceUnit: true,
	AdvanceJump: true,
	"":          true, // empty defaults to unit
}

// IsValidAdvanceMode returns true if the given mode string is recognized.
func IsValidAdvanceMode(mode string) bool {
	return validAdvanceModes[AdvanceMode(mode)]
}

const (
	// DefaultMaxProcesses bounds the input size accepted by ValidateSpecs.
	DefaultMaxProcesses = 10
	// DefaultCeilingFactor multiplies the worst-case tick count to form the
	// iteration ceiling.
	DefaultCeilingFactor = 2
)

// SimConfig groups the knobs of a single simulation run.
type SimConfig struct {
	Advance       AdvanceMode      // "unit" (default) or "jump"
	MaxProcesses  int              // upper bound on input size (0 = DefaultMaxProcesses)
	CeilingFactor int64            // iteration ceiling multiplier (0 = DefaultCeilingFactor)
	MaxEvents     int              // EventLog capacity (0 = unbounded)
	Trace         trace.TraceLevel // "none" (default) or "decisions"
}

// DefaultSimConfig returns the configuration matching the reference engine.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Advance:       AdvanceUnit,
		MaxProcesses:  DefaultMaxProcesses,
		CeilingFactor: DefaultCeilingFactor,
		Trace:         trace.TraceLevelNone,
	}
}

// withDefaults fills zero-valued fields.
func (c SimConfig) withDefaults() SimConfig {
	if c.Advance == "" {
		c.Advance = AdvanceUnit
	}
	if c.MaxProcesses == 0 {
		c.MaxProcesses = DefaultMaxProcesses
	}
	if c.CeilingFactor == 0 {
		c.CeilingFactor = DefaultCeilingFactor
	}
	if c.Trace == "" {
		c.Trace = trace.TraceLevelNone
	}
	return c
}

// Validate checks the configuration itself, not the process list.
func (c SimConfig) Validate() error {
	if !IsValidAdvanceMode(string(c.Advance)) {
		return fmt.Errorf("%w: unknown advance mode %q", ErrConfiguration, c.Advance)
	}
	if c.MaxProcesses < 0 {
		return fmt.Errorf("%w: max processes must be >= 0, got %d", ErrConfiguration, c.MaxProcesses)
	}
	if c.CeilingFactor < 0 {
		return fmt.Errorf("%w: ceiling factor must be >= 0, got %d", ErrConfiguration, c.CeilingFactor)
	}
	if c.MaxEvents < 0 {
		return fmt.Errorf("%w: max events must be >= 0, got %d", ErrConfiguration, c.MaxEvents)
	}
	if !trace.IsValidTraceLevel(string(c.Trace)) {
		return fmt.Errorf("%w: unknown trace level %q", ErrConfiguration, c.Trace)
	}
	return nil
}
