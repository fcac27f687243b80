package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/imishinist/logger-dev/internal/apierr"
	"github.com/imishinist/logger-dev/internal/models"
)

// ParseRunFile reads the run file at path and builds its time series.
func ParseRunFile(path string) (*models.Payload, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("missing run file %s: %w", path, apierr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open run file: %w", err)
	}
	defer file.Close()

	return ParseRun(file)
}

// ParseRun builds a time series from newline-delimited JSON records.
//
// Lines that are blank, not JSON objects, or lack a numeric "t" are skipped:
// the file may still be written to while it is read. A record with a string
// "tUnit" declares the time unit (last one wins) and contributes no sample.
// Lines may end in "\n", "\r\n" or a bare "\r". JSON booleans are not
// numbers here: a boolean "t" skips the line and boolean fields add no value.
func ParseRun(reader io.Reader) (*models.Payload, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read run: %w", err)
	}

	payload := models.NewPayload()
	for _, line := range splitLines(string(body)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil || record == nil {
			continue
		}

		if unit, ok := record["tUnit"].(string); ok {
			payload.TUnit = unit
			continue
		}

		t, ok := record["t"].(float64)
		if !ok {
			continue
		}
		payload.T = append(payload.T, t)

		for key, value := range record {
			if key == "t" {
				continue
			}
			if v, ok := value.(float64); ok {
				payload.Series[key] = append(payload.Series[key], v)
			}
		}
	}

	return payload, nil
}

// splitLines splits text on "\r\n", "\n" and "\r".
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
