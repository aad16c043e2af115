package sim

import "fmt"

// Selector picks the process to run at a given time.
// Implementations are stateless and must be deterministic.
type Selector interface {
	// Select returns the process to run at now, or nil if the CPU idles.
	Select(ps *ProcessSet, now int64) *Process
}

// SRTFSelector implements Shortest-Remaining-Time-First.
// Among eligible processes it picks the minimum by remaining time,
// then by arrival time (ascending), then by input order (ascending).
type SRTFSelector struct{}

func (s *SRTFSelector) Select(ps *ProcessSet, now int64) *Process {
	var best *Process
	for _, p := range ps.Items() {
		if !p.Eligible(now) {
			continue
		}
		if best == nil || srtfLess(p, best) {
			best = p
		}
	}
	return best
}

// srtfLess is the strict ordering behind SRTFSelector.
func srtfLess(a, b *Process) bool {
	if a.RemainingTime != b.RemainingTime {
		return a.RemainingTime < b.RemainingTime
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.Index < b.Index
}

// validSelectors maps accepted selector names.
var validSelectors = map[string]bool{
	"":     true, // empty defaults to srtf
	"srtf": true,
}

// IsValidSelector returns true if the given name is a recognized selector.
func IsValidSelector(name string) bool {
	return validSelectors[name]
}

// NewSelector creates a Selector by name.
// Valid names: "srtf" (default). Panics on unrecognized names.
func NewSelector(name string) Selector {
	if !IsValidSelector(name) {
		panic(fmt.Sprintf("unknown selector %q", name))
	}
	return &SRTFSelector{}
}
