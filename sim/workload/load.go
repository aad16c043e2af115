package workload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/srtfsim/srtf-sim/sim"
)

// LoadProcesses reads a process list from a .yaml/.yml or .csv file.
// CSV files carry no file-level settings, so the returned ProcessFile has
// only Processes populated. The result is validated.
func LoadProcesses(path string) (*ProcessFile, error) {
	var f *ProcessFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		var err error
		if f, err = LoadProcessFile(path); err != nil {
			return nil, err
		}
	case ".csv":
		specs, err := LoadProcessCSV(path)
		if err != nil {
			return nil, err
		}
		f = FromSpecs(specs)
	default:
		return nil, fmt.Errorf("%w: unsupported process file extension %q; valid: .yaml, .yml, .csv", sim.ErrConfiguration, ext)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid process file %s: %w", path, err)
	}
	return f, nil
}
