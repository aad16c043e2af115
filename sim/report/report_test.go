package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srtfsim/srtf-sim/sim"
)

// canonicalResult runs the four-process textbook workload.
func canonicalResult(t *testing.T) *sim.Result {
	t.Helper()
	res, err := sim.Simulate([]sim.ProcessSpec{
		{ID: "P1", ArrivalTime: 0, BurstTime: 8},
		{ID: "P2", ArrivalTime: 1, BurstTime: 4},
		{ID: "P3", ArrivalTime: 2, BurstTime: 9},
		{ID: "P4", ArrivalTime: 3, BurstTime: 5},
	}, sim.DefaultSimConfig())
	require.NoError(t, err)
	return res
}
