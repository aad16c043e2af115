package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions  int
	TotalTicks      int64
	IdleTicks       int64
	ContextSwitches int // occupant changes between consecutive decisions, idle included
	Preemptions     int
	Completions     int
	TicksByProcess  map[string]int64 // process ID → executed ticks
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TicksByProcess: make(map[string]int64),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	for i, d := range st.Decisions {
		summary.TotalTicks += d.Span
		if d.Idle() {
			summary.IdleTicks += d.Span
		} else {
			summary.TicksByProcess[d.Chosen] += d.Span
		}
		if d.Preempted != "" {
			summary.Preemptions++
		}
		if d.Completed {
			summary.Completions++
		}
		if i > 0 && st.Decisions[i-1].Chosen != d.Chosen {
			summary.ContextSwitches++
		}
	}

	return summary
}
