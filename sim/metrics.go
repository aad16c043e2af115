// Derives per-process and aggregate statistics from a finished ProcessSet:
// turnaround, waiting and response times plus their means.

package sim

import (
	"fmt"

	"github.com/srtfsim/srtf-sim/sim/trace"
)

// ProcessMetrics is the per-process output record.
type ProcessMetrics struct {
	ID               string `json:"id"`
	ArrivalTime      int64  `json:"arrival_time"`
	BurstTime        int64  `json:"burst_time"`
	InitialRemaining int64  `json:"initial_remaining"`
	CompletionTime   int64  `json:"completion_time"`
	TurnaroundTime   int64  `json:"turnaround_time"`
	WaitingTime      int64  `json:"waiting_time"`
	ResponseTime     int64  `json:"response_time"`
	Started          bool   `json:"started"` // false: ResponseTime is undefined
	PreResolved      bool   `json:"pre_resolved"`
}

// Metrics aggregates statistics about a finished simulation.
type Metrics struct {
	Processes []ProcessMetrics `json:"processes"`

	CompletedProcesses int     `json:"completed_processes"`
	AvgTurnaroundTime  float64 `json:"avg_turnaround_time"`
	AvgWaitingTime     float64 `json:"avg_waiting_time"`
	AvgResponseTime    float64 `json:"avg_response_time"` // over started processes only
	Makespan           int64   `json:"makespan"`          // latest completion time
}

// ComputeMetrics derives turnaround and waiting times for every completed
// process and their arithmetic means. Returns ErrConfiguration if no process
// has a completion time.
func ComputeMetrics(ps *ProcessSet) (*Metrics, error) {
	m := &Metrics{Processes: make([]ProcessMetrics, 0, ps.Len())}
	var turnarounds, waits, responses []int64

	for _, p := range ps.Items() {
		pm := ProcessMetrics{
			ID:               p.ID,
			ArrivalTime:      p.ArrivalTime,
			BurstTime:        p.BurstTime,
			InitialRemaining: p.InitialRemaining,
			Started:          p.Started,
			PreResolved:      p.PreResolved,
		}
		if p.Started {
			pm.ResponseTime = p.ResponseTime
			responses = append(responses, p.ResponseTime)
		}
		if p.Completed {
			pm.CompletionTime = p.CompletionTime
			pm.TurnaroundTime = p.CompletionTime - p.ArrivalTime
			pm.WaitingTime = pm.TurnaroundTime - p.BurstTime
			turnarounds = append(turnarounds, pm.TurnaroundTime)
			waits = append(waits, pm.WaitingTime)
			m.Makespan = max(m.Makespan, p.CompletionTime)
		}
		m.Processes = append(m.Processes, pm)
	}

	if len(turnarounds) == 0 {
		return nil, fmt.Errorf("%w: no completed processes to average over", ErrConfiguration)
	}
	m.CompletedProcesses = len(turnarounds)
	m.AvgTurnaroundTime = CalculateMean(turnarounds)
	m.AvgWaitingTime = CalculateMean(waits)
	m.AvgResponseTime = CalculateMean(responses)
	return m, nil
}

// Result is everything a renderer needs, without access to engine internals.
type Result struct {
	Metrics
	Events         []GanttEvent        `json:"events"`
	EndTime        int64               `json:"end_time"`
	CPUUtilization float64             `json:"cpu_utilization"` // busy time / timeline span from the first event
	Throughput     float64             `json:"throughput"`      // completed processes per time unit
	Trace          *trace.TraceSummary `json:"trace,omitempty"`
}

// NewResult assembles the output of a finished run.
// st may be nil when tracing is disabled.
func NewResult(ps *ProcessSet, log *EventLog, st *trace.SimulationTrace) (*Result, error) {
	m, err := ComputeMetrics(ps)
	if err != nil {
		return nil, err
	}
	r := &Result{Metrics: *m, Events: log.Events()}
	if last, ok := log.Last(); ok {
		r.EndTime = last.Time
	}

	var busy int64
	for _, seg := range log.Segments() {
		if seg.Kind == SegmentBusy {
			busy += seg.Duration()
		}
	}
	if len(r.Events) > 1 {
		if span := r.EndTime - r.Events[0].Time; span > 0 {
			r.CPUUtilization = float64(busy) / float64(span)
		}
	}
	if r.EndTime > 0 {
		r.Throughput = float64(r.CompletedProcesses) / float64(r.EndTime)
	}
	if st != nil {
		r.Trace = trace.Summarize(st)
	}
	return r, nil
}
