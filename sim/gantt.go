package sim

import "fmt"

// SegmentKind tells what occupied the CPU from a GanttEvent onwards.
type SegmentKind string

const (
	SegmentBusy SegmentKind = "busy" // a process ran
	SegmentIdle SegmentKind = "idle" // no eligible process
	SegmentEnd  SegmentKind = "end"  // terminal sentinel; carries only the final time
)

// GanttEvent marks the tick at which a new occupant took the CPU.
// Its duration is the next event's Time minus its own.
type GanttEvent struct {
	Time      int64       `json:"time"`
	Kind      SegmentKind `json:"kind"`
	ProcessID string      `json:"process_id,omitempty"` // set only for SegmentBusy
}

// sameOccupant reports whether two events describe the same CPU occupant.
func (e GanttEvent) sameOccupant(o GanttEvent) bool {
	return e.Kind == o.Kind && e.ProcessID == o.ProcessID
}

func (e GanttEvent) String() string {
	switch e.Kind {
	case SegmentBusy:
		return fmt.Sprintf("%d:%s", e.Time, e.ProcessID)
	case SegmentIdle:
		return fmt.Sprintf("%d:IDLE", e.Time)
	default:
		return fmt.Sprintf("%d:END", e.Time)
	}
}

// Segment is a contiguous interval with a single occupant, derived from the log.
type Segment struct {
	Start     int64
	End       int64
	Kind      SegmentKind
	ProcessID string
}

// Duration returns End - Start.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

// EventLog is the append-only, run-length-encoded execution timeline.
type EventLog struct {
	events   []GanttEvent
	capacity int // 0 = unbounded
	closed   bool
}

// NewEventLog creates an EventLog holding at most capacity events (0 = unbounded).
func NewEventLog(capacity int) *EventLog {
	return &EventLog{capacity: capacity}
}

// Append adds ev if its occupant differs from the last event's.
// Returns true if the event was stored.
func (l *EventLog) Append(ev GanttEvent) (bool, error) {
	if l.closed {
		panic("EventLog.Append: log already closed")
	}
	if ev.Kind == SegmentEnd {
		panic("EventLog.Append: use Close for the terminal event")
	}
	if n := len(l.events); n > 0 {
		last := l.events[n-1]
		if last.sameOccupant(ev) {
			return false, nil
		}
		if ev.Time <= last.Time {
			panic(fmt.Sprintf("EventLog.Append: time %d not after previous event at %d", ev.Time, last.Time))
		}
	}
	if err := l.grow(); err != nil {
		return false, err
	}
	l.events = append(l.events, ev)
	return true, nil
}

// Close appends the terminal sentinel at end. The log is read-only afterwards.
func (l *EventLog) Close(end int64) error {
	if l.closed {
		panic("EventLog.Close: log already closed")
	}
	if err := l.grow(); err != nil {
		return err
	}
	l.events = append(l.events, GanttEvent{Time: end, Kind: SegmentEnd})
	l.closed = true
	return nil
}

func (l *EventLog) grow() error {
	if l.capacity > 0 && len(l.events) >= l.capacity {
		return fmt.Errorf("%w: capacity of %d events exhausted", ErrAllocation, l.capacity)
	}
	return nil
}

// Len returns the number of events, the terminal sentinel included.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Closed reports whether the terminal sentinel has been appended.
func (l *EventLog) Closed() bool {
	return l.closed
}

// Last returns the most recent event; ok is false for an empty log.
func (l *EventLog) Last() (ev GanttEvent, ok bool) {
	if len(l.events) == 0 {
		return GanttEvent{}, false
	}
	return l.events[len(l.events)-1], true
}

// Events returns a copy of the log.
func (l *EventLog) Events() []GanttEvent {
	out := make([]GanttEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Duration returns the length of the i-th segment, or 0 for the sentinel
// and for the last event of an open log.
func (l *EventLog) Duration(i int) int64 {
	if i < 0 || i+1 >= len(l.events) {
		return 0
	}
	return l.events[i+1].Time - l.events[i].Time
}

// Segments expands the log into explicit intervals. Only closed segments
// are returned, so an open log omits its last event.
func (l *EventLog) Segments() []Segment {
	return SegmentsOf(l.events)
}

// SegmentsOf expands an event sequence into explicit intervals.
func SegmentsOf(events []GanttEvent) []Segment {
	if len(events) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(events)-1)
	for i := 0; i+1 < len(events); i++ {
		segs = append(segs, Segment{
			Start:     events[i].Time,
			End:       events[i+1].Time,
			Kind:      events[i].Kind,
			ProcessID: events[i].ProcessID,
		})
	}
	return segs
}
