package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/imishinist/logger-dev/internal/logstore"
	"github.com/imishinist/logger-dev/internal/models"
	"github.com/imishinist/logger-dev/internal/parser"
)

func TestWriteDemoRun(t *testing.T) {
	store := logstore.New(filepath.Join(t.TempDir(), "runs"))
	writer, err := logstore.NewWriter(store)
	require.NoError(t, err)

	samples, err := writeDemoRun(writer, DemoRun{Duration: time.Second, Interval: 100 * time.Millisecond, Seed: 7})
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	assert.Equal(t, 10, samples)

	payload, err := parser.ParseRunFile(writer.Path())
	require.NoError(t, err)
	assert.Equal(t, "ms", payload.TUnit)
	assert.Len(t, payload.T, 10)
	assert.Equal(t, float64(0), payload.T[0])
	assert.Equal(t, float64(900), payload.T[9])
	assert.Len(t, payload.Series["x"], 10)
	assert.Len(t, payload.Series["y"], 10)
}

func TestWriteDemoRun_InvalidInterval(t *testing.T) {
	writer, err := logstore.NewWriter(logstore.New(t.TempDir()))
	require.NoError(t, err)
	defer writer.Close()

	_, err = writeDemoRun(writer, DemoRun{Duration: time.Second})
	assert.Error(t, err)
}

func TestSummarizeRun(t *testing.T) {
	payload := &models.Payload{
		T:      []float64{0, 500, 1500},
		Series: map[string][]float64{"x": {1, 2, 3}, "y": {4}},
		TUnit:  "ms",
	}

	summary, err := summarizeRun("0001", payload)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Samples)
	assert.Equal(t, "1.5s", summary.Duration)
	assert.Equal(t, map[string]int{"x": 3, "y": 1}, summary.Series)
}

func TestWriteOutput(t *testing.T) {
	tree := &models.FSResponse{
		OpModes: []models.OpModeRuns{{
			Name: models.OpModeDevTest,
			Runs: []models.RunMeta{{Name: "0001", Bytes: 42, Modified: 1700000000000}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, "yaml", tree, nil))
	var decoded models.FSResponse
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *tree, decoded)

	buf.Reset()
	require.NoError(t, writeOutput(&buf, "json", tree, nil))
	assert.Contains(t, buf.String(), `"opModes"`)

	buf.Reset()
	require.NoError(t, writeOutput(&buf, "table", tree, func(w io.Writer) error {
		return writeRunTable(w, tree)
	}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "OPMODE"))
	assert.Contains(t, lines[1], "DEV_TEST")
	assert.Contains(t, lines[1], "0001")
	assert.Contains(t, lines[1], "42")
}

func TestValidateOutput(t *testing.T) {
	assert.NoError(t, validateOutput("table"))
	assert.NoError(t, validateOutput("yaml"))
	assert.Error(t, validateOutput("csv"))
}
