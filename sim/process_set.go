// Implements the ProcessSet, which owns every process record for one run.
// Records are kept in input order; that order is the final selection tie-break.

package sim

import (
	"fmt"
	"strings"
)

// ProcessSet holds the mutable per-process records of a simulation and the
// bookkeeping the driver needs to decide termination.
type ProcessSet struct {
	procs     []*Process // input order
	completed int        // includes pre-resolved processes
}

// NewProcessSet builds a ProcessSet from validated specs.
func NewProcessSet(specs []ProcessSpec) *ProcessSet {
	ps := &ProcessSet{procs: make([]*Process, 0, len(specs))}
	for i, spec := range specs {
		p := NewProcess(spec, i)
		if p.Completed {
			ps.completed++
		}
		ps.procs = append(ps.procs, p)
	}
	return ps
}

func (ps *ProcessSet) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range ps.procs {
		sb.WriteString(fmt.Sprint(*val))
		if i < len(ps.procs)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes, pre-resolved ones included.
func (ps *ProcessSet) Len() int {
	return len(ps.procs)
}

// Items returns the processes in input order.
// The returned slice is the set's internal storage -- callers within the
// sim package may iterate over it but MUST NOT append to or reslice it.
func (ps *ProcessSet) Items() []*Process {
	return ps.procs
}

// Get returns the process with the given ID, or nil.
func (ps *ProcessSet) Get(id string) *Process {
	for _, p := range ps.procs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Completed returns the number of completed processes.
func (ps *ProcessSet) Completed() int {
	return ps.completed
}

// Done reports whether every process has completed.
func (ps *ProcessSet) Done() bool {
	return ps.completed >= len(ps.procs)
}

// markCompleted is called by the driver when a scheduled process finishes.
func (ps *ProcessSet) markCompleted() {
	ps.completed++
	if ps.completed > len(ps.procs) {
		panic(fmt.Sprintf("completed count %d exceeds process count %d", ps.completed, len(ps.procs)))
	}
}

// TotalRemaining sums the execution still owed by schedulable processes.
func (ps *ProcessSet) TotalRemaining() int64 {
	var sum int64
	for _, p := range ps.procs {
		if !p.PreResolved {
			sum += p.RemainingTime
		}
	}
	return sum
}

// MaxArrival returns the latest arrival among schedulable processes.
func (ps *ProcessSet) MaxArrival() int64 {
	var latest int64
	for _, p := range ps.procs {
		if !p.PreResolved && p.ArrivalTime > latest {
			latest = p.ArrivalTime
		}
	}
	return latest
}

// NextArrival returns the earliest arrival strictly after now among processes
// that are still owed execution. ok is false if there is none.
func (ps *ProcessSet) NextArrival(now int64) (next int64, ok bool) {
	for _, p := range ps.procs {
		if p.Completed || p.PreResolved || p.ArrivalTime <= now {
			continue
		}
		if !ok || p.ArrivalTime < next {
			next, ok = p.ArrivalTime, true
		}
	}
	return next, ok
}
