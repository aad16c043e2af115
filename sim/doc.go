// Package sim provides the preemptive Shortest-Remaining-Time-First (SRTF)
// simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (waiting → running → completed) and input validation
//   - selector.go: the SRTF selection policy and its tie-break order
//   - simulator.go: the tick loop, Gantt logging and completion detection
//   - metrics.go: turnaround/waiting/response derivation and the Result handed to renderers
//
// # Architecture
//
// The engine is single-threaded and deterministic. A Simulator owns one
// ProcessSet and one EventLog; nothing is shared between runs. RunAsync wraps a
// run in a one-shot goroutine for callers that need to stay responsive.
// Implementations around the engine live in sub-packages:
//   - sim/workload/: process descriptors from YAML, CSV or a seeded generator
//   - sim/report/: table, Gantt chart and JSON renderers
//   - sim/trace/: selector decision recording
//
// # Time advance
//
// AdvanceUnit moves the clock one unit per iteration. AdvanceJump moves it to
// the next arrival or completion; both produce identical event logs and metrics.
package sim
