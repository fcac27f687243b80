package logstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const defaultRunIDWidth = 4

// Writer appends samples to a fresh run file named with the next numeric run
// identifier. The time unit header is written once, before the first sample.
type Writer struct {
	mu    sync.Mutex
	file  *os.File
	buf   *bufio.Writer
	name  string
	tUnit string
}

// NewWriter creates the store directory if needed and opens a new run file.
func NewWriter(s *Store) (*Writer, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	name, err := nextRunID(s.dir)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(s.path(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run file: %w", err)
	}

	return &Writer{
		file: file,
		buf:  bufio.NewWriter(file),
		name: name,
	}, nil
}

// Name returns the run identifier being written.
func (w *Writer) Name() string {
	return w.name
}

// Path returns the path of the run file being written.
func (w *Writer) Path() string {
	return w.file.Name()
}

// Log writes one sample at time t. The first call fixes the unit of the run;
// later units are ignored.
func (w *Writer) Log(unit string, t float64, fields map[string]float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tUnit == "" && unit != "" {
		w.tUnit = unit
		if err := w.writeLine(map[string]any{"tUnit": unit}); err != nil {
			return err
		}
	}

	record := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		if key == "t" || key == "tUnit" || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		record[key] = value
	}
	record["t"] = t
	return w.writeLine(record)
}

func (w *Writer) writeLine(record map[string]any) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if _, err := w.buf.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return w.buf.Flush()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// nextRunID returns max+1 over the numeric run identifiers in dir, zero padded.
// When the next id no longer fits the current width every numeric run is
// re-padded to one more digit.
func nextRunID(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read run directory: %w", err)
	}

	highest, width := -1, defaultRunIDWidth
	for _, entry := range entries {
		stem, ok := numericStem(entry.Name())
		if !ok || !entry.Type().IsRegular() {
			continue
		}
		v, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}
		if v > highest {
			highest = v
		}
		if len(stem) > width {
			width = len(stem)
		}
	}

	next := highest + 1
	if next < 1 {
		next = 1
	}
	if float64(next) >= math.Pow10(width) {
		width++
		if err := zeroPadRuns(dir, width); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%0*d", width, next), nil
}

func zeroPadRuns(dir string, width int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read run directory: %w", err)
	}
	for _, entry := range entries {
		stem, ok := numericStem(entry.Name())
		if !ok || !entry.Type().IsRegular() {
			continue
		}
		v, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}
		padded := fmt.Sprintf("%0*d", width, v) + RunExt
		if padded == entry.Name() {
			continue
		}
		if err := os.Rename(filepath.Join(dir, entry.Name()), filepath.Join(dir, padded)); err != nil {
			return fmt.Errorf("failed to re-pad run %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func numericStem(filename string) (string, bool) {
	stem, ok := strings.CutSuffix(filename, RunExt)
	if !ok || stem == "" {
		return "", false
	}
	for _, r := range stem {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return stem, true
}
