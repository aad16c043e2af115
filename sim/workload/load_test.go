package workload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtfsim/srtf-sim/sim"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProcesses_YAML(t *testing.T) {
	path := writeFile(t, "procs.yml", "advance: jump\nprocesses:\n  - arrival_time: 0\n    burst_time: 2\n")

	f, err := LoadProcesses(path)

	require.NoError(t, err)
	assert.Equal(t, "jump", f.Advance)
	assert.Len(t, f.Processes, 1)
}

func TestLoadProcesses_CSV(t *testing.T) {
	path := writeFile(t, "procs.CSV", "P1,0,8\nP2,1,4\n")

	f, err := LoadProcesses(path)

	require.NoError(t, err)
	assert.Len(t, f.Specs(), 2)
}

func TestLoadProcesses_InvalidContent_Rejected(t *testing.T) {
	path := writeFile(t, "procs.csv", "P1,0,8\nP1,1,4\n")

	_, err := LoadProcesses(path)

	assert.True(t, errors.Is(err, sim.ErrConfiguration))
	assert.Contains(t, err.Error(), "procs.csv")
}

func TestLoadProcesses_UnknownExtension(t *testing.T) {
	_, err := LoadProcesses("procs.json")
	assert.True(t, errors.Is(err, sim.ErrConfiguration))
}

func TestLoadProcesses_BundledExamples(t *testing.T) {
	f, err := LoadProcesses(filepath.Join("..", "..", "examples", "canonical.yaml"))
	require.NoError(t, err)
	res, err := sim.Simulate(f.Specs(), sim.SimConfig{Advance: sim.AdvanceMode(f.Advance)})
	require.NoError(t, err)
	assert.Equal(t, int64(26), res.EndTime)

	f, err = LoadProcesses(filepath.Join("..", "..", "examples", "partial.csv"))
	require.NoError(t, err)
	res, err = sim.Simulate(f.Specs(), sim.DefaultSimConfig())
	require.NoError(t, err)
	// P3 (2 left) preempts P1 at t=1, P1 resumes and finishes at 6
	assert.Equal(t, []string{"0:P1", "1:P3", "3:P1", "6:END"}, eventStrings(res.Events))
	assert.Equal(t, int64(20), res.Makespan)
}

func eventStrings(events []sim.GanttEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}
