// Package trace provides decision-trace recording for selector analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DecisionRecord captures one selector decision and the span it covered.
type DecisionRecord struct {
	Clock     int64  // time at which the decision was taken
	Span      int64  // time units the decision stayed in force
	Chosen    string // process ID, empty when the CPU idled
	Eligible  int    // number of eligible candidates considered
	Preempted string // process displaced while still owed execution, if any
	Completed bool   // the chosen process finished at the end of the span
}

// Idle reports whether the decision left the CPU idle.
func (r DecisionRecord) Idle() bool {
	return r.Chosen == ""
}
