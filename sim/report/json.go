package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/srtfsim/srtf-sim/sim"
)

// WriteJSON writes the Result as indented JSON.
func WriteJSON(w io.Writer, res *sim.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// SaveJSON writes the Result to fileName.
func SaveJSON(res *sim.Result, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	if err := WriteJSON(file, res); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", fileName, err)
	}
	logrus.Debugf("Successfully wrote results to '%s'", fileName)
	return nil
}
