// Defines the Process struct that models one schedulable process in the simulation.
// Tracks arrival, burst and remaining time plus the write-once start and completion stamps.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateWaiting     ProcessState = "waiting"
	StateRunning     ProcessState = "running"
	StateCompleted   ProcessState = "completed"
	StatePreResolved ProcessState = "pre-resolved"
)

// ProcessSpec is an input descriptor as handed over by the loading/validation layer.
// RemainingTime and CompletionTime are optional overrides; a non-nil
// CompletionTime marks the process as pre-resolved.
type ProcessSpec struct {
	ID             string
	ArrivalTime    int64
	BurstTime      int64
	RemainingTime  *int64
	CompletionTime *int64
}

// Process models a single process's lifecycle in the simulation.
type Process struct {
	ID    string // Unique identifier for the process
	Index int    // Position in the input ordering, used as the final tie-break

	ArrivalTime      int64 // Tick at which the process becomes eligible
	BurstTime        int64 // Total required execution
	RemainingTime    int64 // Execution still owed; decreases by one per executed tick
	InitialRemaining int64 // RemainingTime as supplied at load time, kept for display

	Started        bool  // Becomes true on first execution
	StartTime      int64 // Tick of first execution
	ResponseTime   int64 // StartTime - ArrivalTime
	Completed      bool  // True once RemainingTime reaches 0
	CompletionTime int64 // Tick at which RemainingTime reached 0
	PreResolved    bool  // Completion supplied externally; never scheduled
}

// NewProcess builds a Process from a spec at the given input position.
// The descriptor is assumed valid (see ValidateSpecs).
func NewProcess(spec ProcessSpec, index int) *Process {
	p := &Process{
		ID:            spec.ID,
		Index:         index,
		ArrivalTime:   spec.ArrivalTime,
		BurstTime:     spec.BurstTime,
		RemainingTime: spec.BurstTime,
	}
	if spec.RemainingTime != nil {
		p.RemainingTime = *spec.RemainingTime
	}
	if spec.CompletionTime != nil {
		p.RemainingTime = 0
		p.Completed = true
		p.PreResolved = true
		p.CompletionTime = *spec.CompletionTime
	}
	p.InitialRemaining = p.RemainingTime
	return p
}

// State derives the lifecycle state from the bookkeeping flags.
func (p *Process) State() ProcessState {
	switch {
	case p.PreResolved:
		return StatePreResolved
	case p.Completed:
		return StateCompleted
	case p.Started:
		return StateRunning
	default:
		return StateWaiting
	}
}

// Eligible reports whether the selector may pick p at time now.
func (p *Process) Eligible(now int64) bool {
	return p.ArrivalTime <= now && !p.Completed && !p.PreResolved
}

// markStarted records the first execution. Panics if called twice.
func (p *Process) markStarted(now int64) {
	if p.Started {
		panic(fmt.Sprintf("process %s started twice (at %d and %d)", p.ID, p.StartTime, now))
	}
	p.Started = true
	p.StartTime = now
	p.ResponseTime = now - p.ArrivalTime
}

// execute applies n units of execution ending at time end.
// Returns true if the process completed.
func (p *Process) execute(n, end int64) bool {
	if n <= 0 || n > p.RemainingTime {
		panic(fmt.Sprintf("process %s: cannot execute %d units with %d remaining", p.ID, n, p.RemainingTime))
	}
	p.RemainingTime -= n
	if p.RemainingTime > 0 {
		return false
	}
	if p.Completed {
		panic(fmt.Sprintf("process %s completed twice", p.ID))
	}
	p.Completed = true
	p.CompletionTime = end
	return true
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %s, State: %s, Remaining: %d, ArrivalTime: %d)", p.ID, p.State(), p.RemainingTime, p.ArrivalTime)
}

// DefaultProcessID names the process at a 0-based input position.
func DefaultProcessID(index int) string {
	return fmt.Sprintf("P%d", index+1)
}

// ValidateSpecs rejects descriptor lists the core must not run.
// Empty IDs are filled in place with DefaultProcessID.
func ValidateSpecs(specs []ProcessSpec, maxProcesses int) error {
	if maxProcesses <= 0 {
		maxProcesses = DefaultMaxProcesses
	}
	if len(specs) < 1 || len(specs) > maxProcesses {
		return fmt.Errorf("%w: process count must be between 1 and %d, got %d",
			ErrConfiguration, maxProcesses, len(specs))
	}
	seen := make(map[string]int, len(specs))
	for i := range specs {
		s := &specs[i]
		if s.ID == "" {
			s.ID = DefaultProcessID(i)
		}
		if prev, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: process %d reuses ID %q of process %d", ErrConfiguration, i, s.ID, prev)
		}
		seen[s.ID] = i
		if s.ArrivalTime < 0 {
			return fmt.Errorf("%w: process %s: arrival time must be >= 0, got %d", ErrConfiguration, s.ID, s.ArrivalTime)
		}
		if s.BurstTime <= 0 {
			return fmt.Errorf("%w: process %s: burst time must be > 0, got %d", ErrConfiguration, s.ID, s.BurstTime)
		}
		if s.CompletionTime != nil {
			if *s.CompletionTime < s.ArrivalTime+s.BurstTime {
				return fmt.Errorf("%w: process %s: completion time %d is before arrival+burst (%d)",
					ErrConfiguration, s.ID, *s.CompletionTime, s.ArrivalTime+s.BurstTime)
			}
			continue
		}
		if s.RemainingTime != nil && (*s.RemainingTime <= 0 || *s.RemainingTime > s.BurstTime) {
			return fmt.Errorf("%w: process %s: remaining time must be in (0, %d], got %d",
				ErrConfiguration, s.ID, s.BurstTime, *s.RemainingTime)
		}
	}
	return nil
}
