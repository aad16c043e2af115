package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// proc builds a plain descriptor.
func proc(id string, arrival, burst int64) ProcessSpec {
	return ProcessSpec{ID: id, ArrivalTime: arrival, BurstTime: burst}
}

// preResolved builds a descriptor with an externally supplied completion time.
func preResolved(id string, arrival, burst, completion int64) ProcessSpec {
	return ProcessSpec{ID: id, ArrivalTime: arrival, BurstTime: burst, CompletionTime: &completion}
}

func int64Ptr(v int64) *int64 {
	return &v
}

// scenarioA is the canonical four-process SRTF example.
func scenarioA() []ProcessSpec {
	return []ProcessSpec{
		proc("P1", 0, 8),
		proc("P2", 1, 4),
		proc("P3", 2, 9),
		proc("P4", 3, 5),
	}
}

// mustRun runs specs to completion with the given advance mode.
func mustRun(t *testing.T, specs []ProcessSpec, mode AdvanceMode) (*Simulator, *Result) {
	t.Helper()
	cfg := DefaultSimConfig()
	cfg.Advance = mode
	s, err := NewSimulator(specs, cfg)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	return s, res
}

// eventStrings renders events with GanttEvent.String for compact comparison.
func eventStrings(events []GanttEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

func completionsByID(res *Result) map[string]int64 {
	out := make(map[string]int64, len(res.Processes))
	for _, p := range res.Processes {
		out[p.ID] = p.CompletionTime
	}
	return out
}

var advanceModes = []AdvanceMode{AdvanceUnit, AdvanceJump}
