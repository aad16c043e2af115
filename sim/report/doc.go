// Package report renders a finished simulation for humans and machines.
// It depends only on sim.Result, never on engine internals.
package report
