package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/imishinist/logger-dev/internal/logstore"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a synthetic demo run",
	Long: `Write a demo run to the runs directory so --fake has data to serve.
The run logs a noisy steady signal x and a noisy ramp y against a millisecond
time base.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

// DemoRun describes the synthetic run written by seed.
type DemoRun struct {
	Duration time.Duration
	Interval time.Duration
	Seed     int64
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Duration("duration", 10*time.Second, "Length of the run")
	seedCmd.Flags().Duration("interval", 10*time.Millisecond, "Time between samples")
	seedCmd.Flags().Int64("seed", 0, "Random seed (default: current time)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	duration, _ := cmd.Flags().GetDuration("duration")
	interval, _ := cmd.Flags().GetDuration("interval")
	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	writer, err := logstore.NewWriter(logstore.New(cfg.RunsDir))
	if err != nil {
		return err
	}

	samples, err := writeDemoRun(writer, DemoRun{Duration: duration, Interval: interval, Seed: seed})
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write demo run: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote run %s (%d samples) to %s\n", writer.Name(), samples, writer.Path())
	return nil
}

// writeDemoRun logs x = 500 + 20N and y = 0.5t + 1 + 40N every interval,
// with N standard normal noise and t in milliseconds.
func writeDemoRun(writer *logstore.Writer, demo DemoRun) (int, error) {
	if demo.Interval <= 0 {
		return 0, fmt.Errorf("invalid interval: %s (must be positive)", demo.Interval)
	}
	if demo.Duration < 0 {
		return 0, fmt.Errorf("invalid duration: %s (must not be negative)", demo.Duration)
	}

	rng := rand.New(rand.NewSource(demo.Seed))
	samples := 0
	for elapsed := time.Duration(0); elapsed < demo.Duration; elapsed += demo.Interval {
		t := float64(elapsed) / float64(time.Millisecond)
		fields := map[string]float64{
			"x": 500.0 + 20.0*rng.NormFloat64(),
			"y": 0.5*t + 1.0 + 40.0*rng.NormFloat64(),
		}
		if err := writer.Log("ms", t, fields); err != nil {
			return samples, err
		}
		samples++
	}
	return samples, nil
}
