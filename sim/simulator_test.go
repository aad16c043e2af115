package sim

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtfsim/srtf-sim/sim/trace"
)

func TestSimulator_ScenarioA_CanonicalSRTF(t *testing.T) {
	for _, mode := range advanceModes {
		t.Run(string(mode), func(t *testing.T) {
			// GIVEN the canonical four-process workload
			// WHEN simulated
			_, res := mustRun(t, scenarioA(), mode)

			// THEN completions match the textbook SRTF schedule
			assert.Equal(t, map[string]int64{"P1": 17, "P2": 5, "P3": 26, "P4": 10}, completionsByID(res))
			assert.Equal(t,
				[]string{"0:P1", "1:P2", "5:P4", "10:P1", "17:P3", "26:END"},
				eventStrings(res.Events))
			assert.Equal(t, int64(26), res.EndTime)
			assert.Equal(t, 6.5, res.AvgWaitingTime)
			assert.Equal(t, 13.0, res.AvgTurnaroundTime)
			assert.Equal(t, 4.25, res.AvgResponseTime)
			assert.Equal(t, 1.0, res.CPUUtilization)
			assert.InDelta(t, 4.0/26.0, res.Throughput, 1e-12)
		})
	}
}

func TestSimulator_ScenarioA_PerProcessMetrics(t *testing.T) {
	_, res := mustRun(t, scenarioA(), AdvanceUnit)

	want := map[string][3]int64{ // turnaround, waiting, response
		"P1": {17, 9, 0},
		"P2": {4, 0, 0},
		"P3": {24, 15, 15},
		"P4": {7, 2, 2},
	}
	for _, pm := range res.Processes {
		w := want[pm.ID]
		assert.Equal(t, w[0], pm.TurnaroundTime, "%s turnaround", pm.ID)
		assert.Equal(t, w[1], pm.WaitingTime, "%s waiting", pm.ID)
		assert.Equal(t, w[2], pm.ResponseTime, "%s response", pm.ID)
		assert.True(t, pm.Started)
	}
}

func TestSimulator_ScenarioB_IdleGap(t *testing.T) {
	for _, mode := range advanceModes {
		t.Run(string(mode), func(t *testing.T) {
			s, res := mustRun(t, []ProcessSpec{proc("P1", 5, 3)}, mode)

			segs := SegmentsOf(res.Events)
			require.Len(t, segs, 2)
			assert.Equal(t, SegmentIdle, segs[0].Kind)
			assert.Equal(t, int64(5), segs[0].Duration())
			assert.Equal(t, SegmentBusy, segs[1].Kind)
			assert.Equal(t, int64(3), segs[1].Duration())

			pm := res.Processes[0]
			assert.Equal(t, int64(8), pm.CompletionTime)
			assert.Equal(t, int64(0), pm.WaitingTime)
			assert.Equal(t, int64(5), s.Processes.Get("P1").StartTime)
			assert.Equal(t, int64(0), pm.ResponseTime, "response is start minus arrival")
			assert.Equal(t, 0.375, res.CPUUtilization)
		})
	}
}

func TestSimulator_ScenarioC_PreResolved(t *testing.T) {
	for _, mode := range advanceModes {
		t.Run(string(mode), func(t *testing.T) {
			// GIVEN a process whose completion is supplied up front
			specs := []ProcessSpec{proc("P1", 0, 4), preResolved("P2", 0, 5, 20), proc("P3", 1, 2)}

			s, res := mustRun(t, specs, mode)

			// THEN it never appears in the log
			for _, ev := range res.Events {
				assert.NotEqual(t, "P2", ev.ProcessID)
			}
			// AND contributes its supplied completion to the metrics
			assert.Equal(t, map[string]int64{"P1": 6, "P2": 20, "P3": 3}, completionsByID(res))
			assert.Equal(t, []string{"0:P1", "1:P3", "3:P1", "6:END"}, eventStrings(res.Events))
			assert.False(t, s.Processes.Get("P2").Started)
			assert.Equal(t, int64(20), res.Makespan)
			assert.Equal(t, 3, res.CompletedProcesses)
			// Response is averaged over the two processes that ran: P1=0, P3=0
			assert.Equal(t, 0.0, res.AvgResponseTime)
		})
	}
}

func TestSimulator_AllPreResolved_ReturnsEmptyTimeline(t *testing.T) {
	res, err := Simulate([]ProcessSpec{preResolved("P1", 0, 2, 4)}, DefaultSimConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{"0:END"}, eventStrings(res.Events))
	assert.Equal(t, 2.0, res.AvgWaitingTime)
	assert.Equal(t, 0.0, res.CPUUtilization)
}

func TestSimulator_RemainingOverride_RunsOnlyRemaining(t *testing.T) {
	specs := []ProcessSpec{{ID: "P1", BurstTime: 10, RemainingTime: int64Ptr(3)}, proc("P2", 0, 4)}

	s, res := mustRun(t, specs, AdvanceJump)

	assert.Equal(t, int64(3), completionsByID(res)["P1"])
	assert.Equal(t, int64(7), completionsByID(res)["P2"])
	assert.Equal(t, int64(3), s.Processes.Get("P1").InitialRemaining)
	assert.Equal(t, int64(3), res.Processes[0].InitialRemaining)
}

func TestSimulator_Step_UnitMode_DecrementsOneTickAtATime(t *testing.T) {
	s, err := NewSimulator([]ProcessSpec{proc("P1", 2, 3), proc("P2", 3, 1)}, DefaultSimConfig())
	require.NoError(t, err)

	for !s.Processes.Done() {
		before := s.Processes.TotalRemaining()
		clock := s.Clock
		require.NoError(t, s.Step())

		assert.Equal(t, clock+1, s.Clock)
		delta := before - s.Processes.TotalRemaining()
		assert.True(t, delta == 0 || delta == 1, "tick at %d removed %d units", clock, delta)
	}
	assert.Equal(t, int64(6), s.Clock)
}

func TestSimulator_SegmentDurationsCoverTimeline(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		specs := randomSpecs(seed)
		_, res := mustRun(t, specs, AdvanceUnit)

		var total, busy, owed int64
		for _, seg := range SegmentsOf(res.Events) {
			total += seg.Duration()
			if seg.Kind == SegmentBusy {
				busy += seg.Duration()
			}
		}
		var maxArrival int64
		for _, sp := range specs {
			if sp.CompletionTime != nil {
				continue
			}
			if sp.RemainingTime != nil {
				owed += *sp.RemainingTime
			} else {
				owed += sp.BurstTime
			}
			maxArrival = max(maxArrival, sp.ArrivalTime)
		}
		assert.Equal(t, res.EndTime, total, "seed %d", seed)
		assert.Equal(t, owed, busy, "seed %d: busy time equals executed work", seed)
		assert.LessOrEqual(t, res.EndTime, owed+maxArrival, "seed %d: termination bound", seed)
	}
}

func TestSimulator_UnitAndJumpProduceIdenticalResults(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		specs := randomSpecs(seed)

		_, unit := mustRun(t, specs, AdvanceUnit)
		_, jump := mustRun(t, specs, AdvanceJump)

		assert.Equal(t, unit.Events, jump.Events, "seed %d", seed)
		assert.Equal(t, unit.Metrics, jump.Metrics, "seed %d", seed)
	}
}

func TestSimulator_TieBreakStableAcrossRuns(t *testing.T) {
	specs := []ProcessSpec{proc("C", 0, 2), proc("B", 0, 2), proc("A", 0, 2)}

	_, first := mustRun(t, specs, AdvanceUnit)
	for i := 0; i < 10; i++ {
		_, again := mustRun(t, specs, AdvanceUnit)
		assert.Equal(t, first.Events, again.Events)
	}
	assert.Equal(t, []string{"0:C", "2:B", "4:A", "6:END"}, eventStrings(first.Events))
}

func TestSimulator_InputNotMutated(t *testing.T) {
	specs := []ProcessSpec{{ArrivalTime: 0, BurstTime: 1}}

	_, res := mustRun(t, specs, AdvanceUnit)

	assert.Equal(t, "", specs[0].ID)
	assert.Equal(t, "P1", res.Processes[0].ID)
}

func TestNewSimulator_RejectsInvalidInput(t *testing.T) {
	_, err := NewSimulator(nil, DefaultSimConfig())
	assert.True(t, errors.Is(err, ErrConfiguration))

	cfg := DefaultSimConfig()
	cfg.Advance = "warp"
	_, err = NewSimulator(scenarioA(), cfg)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestNewSimulator_Ceiling(t *testing.T) {
	s, err := NewSimulator(scenarioA(), DefaultSimConfig())
	require.NoError(t, err)
	// 2 * (26 + 3)
	assert.Equal(t, int64(58), s.Ceiling)

	s, err = NewSimulator([]ProcessSpec{preResolved("P1", 0, 1, 1)}, DefaultSimConfig())
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Ceiling, "ceiling never drops below 1")
}

func TestSimulator_ExceedingCeiling_ReturnsErrNonConvergence(t *testing.T) {
	for _, mode := range advanceModes {
		t.Run(string(mode), func(t *testing.T) {
			cfg := DefaultSimConfig()
			cfg.Advance = mode
			s, err := NewSimulator(scenarioA(), cfg)
			require.NoError(t, err)
			s.Ceiling = 3

			res, err := s.Run()

			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrNonConvergence), "got %v", err)
			assert.LessOrEqual(t, s.Ticks, int64(3))
			assert.False(t, s.Log.Closed())
		})
	}
}

func TestSimulator_EventCapacity_ReturnsErrAllocation(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.MaxEvents = 3

	_, err := Simulate(scenarioA(), cfg)

	assert.True(t, errors.Is(err, ErrAllocation), "got %v", err)
}

func TestSimulator_RunTwice_Panics(t *testing.T) {
	s, _ := mustRun(t, scenarioA(), AdvanceUnit)
	assert.Panics(t, func() { _, _ = s.Run() })
}

// cancellingSelector cancels its context after a fixed number of selections.
type cancellingSelector struct {
	inner  Selector
	after  int
	calls  int
	cancel context.CancelFunc
}

func (c *cancellingSelector) Select(ps *ProcessSet, now int64) *Process {
	c.calls++
	if c.calls == c.after {
		c.cancel()
	}
	return c.inner.Select(ps, now)
}

func TestSimulator_RunContext_CancelLeavesConsistentPrefix(t *testing.T) {
	// GIVEN a run that is cancelled during its 7th tick
	s, err := NewSimulator(scenarioA(), DefaultSimConfig())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	s.Selector = &cancellingSelector{inner: s.Selector, after: 7, cancel: cancel}

	// WHEN run
	res, err := s.RunContext(ctx)

	// THEN the in-flight tick is fully applied and the loop stops at the boundary
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int64(7), s.Clock)
	var executed int64
	for _, p := range s.Processes.Items() {
		executed += p.BurstTime - p.RemainingTime
	}
	assert.Equal(t, s.Clock, executed)
	assert.Equal(t, 1, s.Processes.Completed(), "P2 finished at 5")
	assert.False(t, s.Log.Closed())
	assert.Equal(t, []string{"0:P1", "1:P2", "5:P4"}, eventStrings(s.Log.Events()))

	// AND resuming produces the uninterrupted schedule
	res, err = s.RunContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0:P1", "1:P2", "5:P4", "10:P1", "17:P3", "26:END"}, eventStrings(res.Events))
}

func TestSimulator_TraceDecisions(t *testing.T) {
	tests := []struct {
		mode      AdvanceMode
		decisions int
	}{
		{AdvanceUnit, 26},
		{AdvanceJump, 7},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			cfg := DefaultSimConfig()
			cfg.Advance = tt.mode
			cfg.Trace = trace.TraceLevelDecisions
			s, err := NewSimulator(scenarioA(), cfg)
			require.NoError(t, err)

			res, err := s.Run()
			require.NoError(t, err)

			require.NotNil(t, res.Trace)
			assert.Len(t, s.Trace.Decisions, tt.decisions)
			assert.Equal(t, tt.decisions, res.Trace.TotalDecisions)
			assert.Equal(t, int64(26), res.Trace.TotalTicks)
			assert.Equal(t, 4, res.Trace.ContextSwitches)
			assert.Equal(t, 1, res.Trace.Preemptions)
			assert.Equal(t, 4, res.Trace.Completions)
			assert.Equal(t, int64(8), res.Trace.TicksByProcess["P1"])

			assert.Equal(t, 1, s.Trace.Decisions[0].Eligible)
			assert.Equal(t, 2, s.Trace.Decisions[1].Eligible)
			assert.Equal(t, "P1", s.Trace.Decisions[1].Preempted)
		})
	}
}

func TestSimulator_TraceDisabledByDefault(t *testing.T) {
	s, res := mustRun(t, scenarioA(), AdvanceUnit)
	assert.Nil(t, s.Trace)
	assert.Nil(t, res.Trace)
}

// randomSpecs builds a reproducible workload of 1..10 processes, some of them
// pre-resolved or carrying a partial remaining time.
func randomSpecs(seed int64) []ProcessSpec {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	arr := rng.ForSubsystem(SubsystemArrivals)
	bur := rng.ForSubsystem(SubsystemBursts)

	n := 1 + arr.Intn(DefaultMaxProcesses)
	specs := make([]ProcessSpec, n)
	for i := range specs {
		s := ProcessSpec{
			ID:          fmt.Sprintf("P%d", i+1),
			ArrivalTime: int64(arr.Intn(20)),
			BurstTime:   1 + int64(bur.Intn(9)),
		}
		switch bur.Intn(8) {
		case 0:
			if i > 0 {
				s.CompletionTime = int64Ptr(s.ArrivalTime + s.BurstTime + int64(bur.Intn(5)))
			}
		case 1:
			s.RemainingTime = int64Ptr(1 + int64(bur.Int63n(s.BurstTime)))
		}
		specs[i] = s
	}
	return specs
}
