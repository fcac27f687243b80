package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/imishinist/logger-dev/internal/controller"
	"github.com/imishinist/logger-dev/internal/logstore"
	"github.com/imishinist/logger-dev/internal/models"
	"github.com/imishinist/logger-dev/internal/parser"
	timeutils "github.com/imishinist/logger-dev/internal/time"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage logged runs",
	Long:  "List, inspect, rename, and delete run files in the local runs directory",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List runs",
	Long:  "List local runs, or the runs on the robot controller with --remote",
	Args:  cobra.NoArgs,
	RunE:  runsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run>",
	Short: "Summarize a run",
	Long:  "Print the sample count, time span, and series lengths of a local run",
	Args:  cobra.ExactArgs(1),
	RunE:  runsShow,
}

var runsRenameCmd = &cobra.Command{
	Use:   "rename <run>",
	Short: "Rename a run",
	Long:  "Replace the text after the first space of a run name with a sanitized suffix",
	Args:  cobra.ExactArgs(1),
	RunE:  runsRename,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [run]",
	Short: "Delete runs",
	Long:  "Delete one run, or every run in the runs directory with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runsDelete,
}

// RunSummary is the output of runs show.
type RunSummary struct {
	Run      string         `json:"run" yaml:"run"`
	Samples  int            `json:"samples" yaml:"samples"`
	TUnit    string         `json:"tUnit,omitempty" yaml:"tUnit,omitempty"`
	Duration string         `json:"duration" yaml:"duration"`
	Series   map[string]int `json:"series" yaml:"series"`
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsRenameCmd)
	runsCmd.AddCommand(runsDeleteCmd)

	// List command flags
	runsListCmd.Flags().Bool("remote", false, "List runs on the robot controller instead of the local directory")
	runsListCmd.Flags().StringP("output", "o", "table", "Output format (table/json/yaml)")

	// Show command flags
	runsShowCmd.Flags().StringP("output", "o", "table", "Output format (table/json/yaml)")

	// Rename command flags
	runsRenameCmd.Flags().String("suffix", "", "New suffix (empty removes it)")
	runsRenameCmd.Flags().String("base", "", "Base name to use instead of the text before the first space")

	// Delete command flags
	runsDeleteCmd.Flags().Bool("all", false, "Delete every run in the runs directory")
}

func runsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	remote, _ := cmd.Flags().GetBool("remote")
	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}

	var tree *models.FSResponse
	if remote {
		client, err := controller.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to create controller client: %w", err)
		}
		tree, err = client.FileTree(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list remote runs: %w", err)
		}
	} else {
		metas, err := logstore.New(cfg.RunsDir).ListRunMeta("")
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		tree = &models.FSResponse{
			OpModes: []models.OpModeRuns{{Name: models.OpModeDevTest, Runs: metas}},
		}
	}

	return writeOutput(cmd.OutOrStdout(), output, tree, func(w io.Writer) error {
		return writeRunTable(w, tree)
	})
}

func writeRunTable(w io.Writer, tree *models.FSResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPMODE\tRUN\tBYTES\tMODIFIED")
	for _, mode := range tree.OpModes {
		for _, run := range mode.Runs {
			modified := time.UnixMilli(run.Modified).Local().Format(time.DateTime)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", mode.Name, run.Name, run.Bytes, modified)
		}
	}
	return tw.Flush()
}

func runsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}

	path, err := logstore.New(cfg.RunsDir).ResolveRunFile("", args[0])
	if err != nil {
		return err
	}
	payload, err := parser.ParseRunFile(path)
	if err != nil {
		return err
	}

	summary, err := summarizeRun(args[0], payload)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), output, summary, func(w io.Writer) error {
		fmt.Fprintf(w, "Run:      %s\n", summary.Run)
		fmt.Fprintf(w, "Samples:  %d\n", summary.Samples)
		fmt.Fprintf(w, "Duration: %s\n", summary.Duration)
		if summary.TUnit != "" {
			fmt.Fprintf(w, "Time unit: %s\n", summary.TUnit)
		}
		fmt.Fprintln(w, "Series:")
		names := make([]string, 0, len(summary.Series))
		for name := range summary.Series {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d values\n", name, summary.Series[name])
		}
		return nil
	})
}

func summarizeRun(run string, payload *models.Payload) (*RunSummary, error) {
	span, err := timeutils.Span(payload)
	if err != nil {
		return nil, err
	}

	series := make(map[string]int, len(payload.Series))
	for name, values := range payload.Series {
		series[name] = len(values)
	}

	return &RunSummary{
		Run:      run,
		Samples:  len(payload.T),
		TUnit:    payload.TUnit,
		Duration: span.String(),
		Series:   series,
	}, nil
}

func runsRename(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suffix, _ := cmd.Flags().GetString("suffix")
	base, _ := cmd.Flags().GetString("base")

	renamed, err := logstore.New(cfg.RunsDir).Rename("", args[0], suffix, base)
	if err != nil {
		return fmt.Errorf("failed to rename run: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", renamed)
	return nil
}

func runsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")
	var run string
	if len(args) == 1 {
		run = args[0]
	}
	if run == "" && !all {
		return fmt.Errorf("specify a run or pass --all to delete every run in %s", cfg.RunsDir)
	}
	if run != "" && all {
		return fmt.Errorf("--all cannot be combined with a run name")
	}

	if err := logstore.New(cfg.RunsDir).Delete("", run); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	if run == "" {
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "Deleted every run in %s\n", cfg.RunsDir)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", run)
	return nil
}
