package sim

import "context"

// Outcome is the single value delivered by RunAsync.
type Outcome struct {
	Result *Result
	Err    error
}

// RunAsync runs the simulation on its own goroutine and delivers exactly one
// Outcome on the returned channel, which is then closed. The simulator must
// not be touched by the caller until the Outcome has been received.
func (sim *Simulator) RunAsync(ctx context.Context) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		res, err := sim.RunContext(ctx)
		done <- Outcome{Result: res, Err: err}
	}()
	return done
}

// Simulate is the one-call entry point: validate, run, compute metrics.
func Simulate(specs []ProcessSpec, cfg SimConfig) (*Result, error) {
	s, err := NewSimulator(specs, cfg)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
