package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/srtfsim/srtf-sim/sim"
)

// CSV column headers for process lists. The last two columns are optional.
var processColumns = []string{"id", "arrival_time", "burst_time", "remaining_time", "completion_time"}

// minProcessColumns is the number of mandatory columns.
const minProcessColumns = 3

// LoadProcessCSV reads a CSV process list from path.
func LoadProcessCSV(path string) ([]sim.ProcessSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process CSV: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadProcessCSV(file)
}

// ReadProcessCSV parses rows of id,arrival_time,burst_time[,remaining_time[,completion_time]].
// A first row starting with "id" is treated as a header. Empty optional cells are allowed.
func ReadProcessCSV(r io.Reader) ([]sim.ProcessSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var specs []sim.ProcessSpec
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), processColumns[0]) {
			continue
		}
		spec, err := parseProcessRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: CSV row %d: %v", sim.ErrConfiguration, line, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseProcessRow(row []string) (sim.ProcessSpec, error) {
	if len(row) < minProcessColumns || len(row) > len(processColumns) {
		return sim.ProcessSpec{}, fmt.Errorf("expected %d to %d columns, got %d",
			minProcessColumns, len(processColumns), len(row))
	}
	var spec sim.ProcessSpec
	spec.ID = strings.TrimSpace(row[0])

	var err error
	if spec.ArrivalTime, err = parseInt(processColumns[1], row[1]); err != nil {
		return spec, err
	}
	if spec.BurstTime, err = parseInt(processColumns[2], row[2]); err != nil {
		return spec, err
	}
	if len(row) > 3 {
		if spec.RemainingTime, err = parseOptionalInt(processColumns[3], row[3]); err != nil {
			return spec, err
		}
	}
	if len(row) > 4 {
		if spec.CompletionTime, err = parseOptionalInt(processColumns[4], row[4]); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func parseInt(column, cell string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", column, cell)
	}
	return v, nil
}

func parseOptionalInt(column, cell string) (*int64, error) {
	if strings.TrimSpace(cell) == "" {
		return nil, nil
	}
	v, err := parseInt(column, cell)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteProcessCSV writes specs with a header row.
func WriteProcessCSV(w io.Writer, specs []sim.ProcessSpec) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(processColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, s := range specs {
		row := []string{
			s.ID,
			strconv.FormatInt(s.ArrivalTime, 10),
			strconv.FormatInt(s.BurstTime, 10),
			formatOptionalInt(s.RemainingTime),
			formatOptionalInt(s.CompletionTime),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatOptionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
