package sim

import "errors"

// Failure kinds surfaced by the engine. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrConfiguration reports invalid process descriptors, a process count out
	// of bounds, or an aggregate computed over zero completed processes.
	ErrConfiguration = errors.New("configuration error")

	// ErrNonConvergence reports a run that exceeded its iteration ceiling.
	ErrNonConvergence = errors.New("simulation did not converge")

	// ErrAllocation reports an EventLog that could not grow past its capacity.
	ErrAllocation = errors.New("event log allocation failed")
)
