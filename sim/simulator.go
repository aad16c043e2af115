// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/srtfsim/srtf-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the process set,
// the Gantt log and the tick loop.
type Simulator struct {
	Clock int64
	// Processes owns every process record; mutated only by the tick loop.
	Processes *ProcessSet
	// Log is the compressed execution timeline. Closed when the run completes.
	Log      *EventLog
	Selector Selector
	Config   SimConfig
	// Trace is nil unless Config.Trace is TraceLevelDecisions.
	Trace *trace.SimulationTrace
	// Ticks counts simulated time units; Ceiling bounds it.
	Ticks   int64
	Ceiling int64

	prev     *Process    // occupant of the previous tick, nil when idle or before the first tick
	prevKind SegmentKind // "" before the first tick
	finished bool
}

// NewSimulator validates the configuration and descriptors and prepares a run.
// specs is not modified.
func NewSimulator(specs []ProcessSpec, cfg SimConfig) (*Simulator, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	specs = append([]ProcessSpec(nil), specs...)
	if err := ValidateSpecs(specs, cfg.MaxProcesses); err != nil {
		return nil, err
	}

	ps := NewProcessSet(specs)
	s := &Simulator{
		Processes: ps,
		Log:       NewEventLog(cfg.MaxEvents),
		Selector:  NewSelector("srtf"),
		Config:    cfg,
		Ceiling:   max(cfg.CeilingFactor*(ps.TotalRemaining()+ps.MaxArrival()), 1),
	}
	if tc := (trace.TraceConfig{Level: cfg.Trace}); tc.Enabled() {
		s.Trace = trace.NewSimulationTrace(tc)
	}
	if ps.Completed() == ps.Len() {
		logrus.Warnf("all %d processes are pre-resolved; nothing to schedule", ps.Len())
	}
	return s, nil
}

// Run executes the simulation to completion and returns its Result.
func (sim *Simulator) Run() (*Result, error) {
	return sim.RunContext(context.Background())
}

// RunContext is Run with cancellation. ctx is checked only between loop
// iterations, so on cancellation Processes and Log hold a fully applied
// prefix of the run. No Result is returned on error.
func (sim *Simulator) RunContext(ctx context.Context) (*Result, error) {
	if sim.finished {
		panic("Simulator.Run called twice")
	}
	logrus.Infof("Starting simulation: %d processes, advance=%s, ceiling=%d ticks",
		sim.Processes.Len(), sim.Config.Advance, sim.Ceiling)

	for !sim.Processes.Done() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation cancelled at tick %d: %w", sim.Clock, err)
		}
		if err := sim.Step(); err != nil {
			return nil, err
		}
	}
	if err := sim.Log.Close(sim.Clock); err != nil {
		return nil, err
	}
	sim.finished = true
	logrus.Infof("[tick %07d] Simulation ended after %d events", sim.Clock, sim.Log.Len())

	return NewResult(sim.Processes, sim.Log, sim.Trace)
}

// Step advances the simulation by one decision: a single tick in unit mode,
// or up to the next arrival/completion boundary in jump mode.
func (sim *Simulator) Step() error {
	p := sim.Selector.Select(sim.Processes, sim.Clock)
	if p == nil {
		return sim.idle()
	}
	return sim.execute(p)
}

func (sim *Simulator) idle() error {
	span := int64(1)
	if sim.Config.Advance == AdvanceJump {
		next, ok := sim.Processes.NextArrival(sim.Clock)
		if !ok {
			return fmt.Errorf("%w: CPU idle at tick %d with %d processes unfinished and none arriving",
				ErrNonConvergence, sim.Clock, sim.Processes.Len()-sim.Processes.Completed())
		}
		span = next - sim.Clock
	}
	if err := sim.checkCeiling(span); err != nil {
		return err
	}

	if sim.prevKind != SegmentIdle {
		if _, err := sim.Log.Append(GanttEvent{Time: sim.Clock, Kind: SegmentIdle}); err != nil {
			return err
		}
		logrus.Debugf("[tick %07d] CPU idle", sim.Clock)
	}
	sim.record(trace.DecisionRecord{Clock: sim.Clock, Span: span})

	sim.prev, sim.prevKind = nil, SegmentIdle
	sim.Clock += span
	sim.Ticks += span
	return nil
}

func (sim *Simulator) execute(p *Process) error {
	span := int64(1)
	if sim.Config.Advance == AdvanceJump {
		span = p.RemainingTime
		if next, ok := sim.Processes.NextArrival(sim.Clock); ok && next-sim.Clock < span {
			span = next - sim.Clock
		}
	}
	if err := sim.checkCeiling(span); err != nil {
		return err
	}

	if !p.Started {
		p.markStarted(sim.Clock)
	}
	var preempted string
	if sim.prev != p {
		if _, err := sim.Log.Append(GanttEvent{Time: sim.Clock, Kind: SegmentBusy, ProcessID: p.ID}); err != nil {
			return err
		}
		if sim.prev != nil && !sim.prev.Completed {
			preempted = sim.prev.ID
			logrus.Debugf("[tick %07d] %s preempts %s (remaining %d < %d)",
				sim.Clock, p.ID, preempted, p.RemainingTime, sim.prev.RemainingTime)
		} else {
			logrus.Debugf("[tick %07d] %s dispatched (remaining %d)", sim.Clock, p.ID, p.RemainingTime)
		}
	}
	start := sim.Clock

	completed := p.execute(span, sim.Clock+span)
	sim.prev, sim.prevKind = p, SegmentBusy
	sim.Clock += span
	sim.Ticks += span
	if completed {
		sim.Processes.markCompleted()
		logrus.Debugf("[tick %07d] %s completed", sim.Clock, p.ID)
	}
	sim.record(trace.DecisionRecord{Clock: start, Span: span, Chosen: p.ID, Preempted: preempted, Completed: completed})
	return nil
}

func (sim *Simulator) checkCeiling(span int64) error {
	if sim.Ticks+span > sim.Ceiling {
		return fmt.Errorf("%w: exceeded ceiling of %d ticks at tick %d (%d of %d processes completed)",
			ErrNonConvergence, sim.Ceiling, sim.Clock, sim.Processes.Completed(), sim.Processes.Len())
	}
	return nil
}

// record appends a decision to the trace, filling the candidate count.
func (sim *Simulator) record(r trace.DecisionRecord) {
	if sim.Trace == nil {
		return
	}
	for _, p := range sim.Processes.Items() {
		if p.Eligible(r.Clock) || (p.ID == r.Chosen && r.Completed) {
			r.Eligible++
		}
	}
	sim.Trace.RecordDecision(r)
}
