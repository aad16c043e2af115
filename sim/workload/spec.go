package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/srtfsim/srtf-sim/sim"
)

// ProcessFile is the top-level YAML process configuration.
// Loaded from YAML via LoadProcessFile(path).
type ProcessFile struct {
	Version      string         `yaml:"version"`
	Advance      string         `yaml:"advance,omitempty"`       // "unit" (default) or "jump"
	MaxProcesses int            `yaml:"max_processes,omitempty"` // 0 = sim.DefaultMaxProcesses
	Processes    []ProcessEntry `yaml:"processes"`
}

// ProcessEntry is one process descriptor.
// A non-nil CompletionTime marks the process as pre-resolved.
type ProcessEntry struct {
	ID             string `yaml:"id,omitempty"`
	ArrivalTime    int64  `yaml:"arrival_time"`
	BurstTime      int64  `yaml:"burst_time"`
	RemainingTime  *int64 `yaml:"remaining_time,omitempty"`
	CompletionTime *int64 `yaml:"completion_time,omitempty"`
}

// currentVersion is written by SaveProcessFile and accepted (with "") by Validate.
const currentVersion = "1"

// LoadProcessFile reads and parses a YAML process file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadProcessFile(path string) (*ProcessFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading process file: %w", err)
	}
	return ParseProcessFile(data)
}

// ParseProcessFile parses YAML bytes with strict field checking.
func ParseProcessFile(data []byte) (*ProcessFile, error) {
	var f ProcessFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing process file: %w", err)
	}
	return &f, nil
}

// SaveProcessFile writes f as YAML.
func SaveProcessFile(path string, f *ProcessFile) error {
	if f.Version == "" {
		f.Version = currentVersion
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling process file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing process file: %w", err)
	}
	return nil
}

// Validate checks the file-level fields and every descriptor.
// Descriptor errors wrap sim.ErrConfiguration.
func (f *ProcessFile) Validate() error {
	if f.Version != "" && f.Version != currentVersion {
		return fmt.Errorf("%w: unsupported process file version %q; valid: %q", sim.ErrConfiguration, f.Version, currentVersion)
	}
	if !sim.IsValidAdvanceMode(f.Advance) {
		return fmt.Errorf("%w: unknown advance mode %q; valid: unit, jump", sim.ErrConfiguration, f.Advance)
	}
	if f.MaxProcesses < 0 {
		return fmt.Errorf("%w: max_processes must be non-negative, got %d", sim.ErrConfiguration, f.MaxProcesses)
	}
	return sim.ValidateSpecs(f.Specs(), f.MaxProcesses)
}

// Specs converts the entries to engine descriptors in file order.
func (f *ProcessFile) Specs() []sim.ProcessSpec {
	specs := make([]sim.ProcessSpec, len(f.Processes))
	for i, e := range f.Processes {
		specs[i] = sim.ProcessSpec{
			ID:             e.ID,
			ArrivalTime:    e.ArrivalTime,
			BurstTime:      e.BurstTime,
			RemainingTime:  e.RemainingTime,
			CompletionTime: e.CompletionTime,
		}
	}
	return specs
}

// FromSpecs builds a ProcessFile around engine descriptors.
func FromSpecs(specs []sim.ProcessSpec) *ProcessFile {
	f := &ProcessFile{Version: currentVersion, Processes: make([]ProcessEntry, len(specs))}
	for i, s := range specs {
		f.Processes[i] = ProcessEntry{
			ID:             s.ID,
			ArrivalTime:    s.ArrivalTime,
			BurstTime:      s.BurstTime,
			RemainingTime:  s.RemainingTime,
			CompletionTime: s.CompletionTime,
		}
	}
	return f
}
