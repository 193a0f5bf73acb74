package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentic-research/treegraft/internal/history"
)

var applyCmd = &cobra.Command{
	Use:   "apply [tree-file] [target-dir]",
	Short: "Merge a tree description into a project directory",
	Long: `Parses the tree description and reconciles it against the target
directory. Pass "-" as the tree file to read from stdin.

Existing files with content are never touched; empty or placeholder files
are repopulated with boilerplate; protected folders are never created.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTreeText(args[0])
		if err != nil {
			return err
		}
		report, err := runPipeline(cmd.Context(), text, args[1], flagOptions(false))
		if err != nil {
			return err
		}

		if !noHistory {
			recordHistory(report)
		}

		if jsonOutput {
			fmt.Println(oj.JSON(report, 2))
			return nil
		}
		printReport(cmd, report)
		return nil
	},
}

func recordHistory(report *runReport) {
	path, err := history.DefaultPath()
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		return
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		return
	}
	defer func() { _ = store.Close() }()
	if _, err := store.Record(report.Target, report.Result); err != nil {
		logger.Warn("history write failed", zap.Error(err))
	}
}

func printReport(cmd *cobra.Command, report *runReport) {
	for _, w := range report.Warnings {
		cmd.Printf("warning: line %d: %s\n", w.Line, w.Message)
	}
	for _, i := range report.Issues {
		cmd.Printf("issue: %s\n", i)
	}
	for _, d := range report.Dropped {
		cmd.Printf("kept as-is: %s (%s)\n", d.Path, d.Reason)
	}
	for _, e := range report.Result.Errors {
		cmd.Printf("error: %s %s: %s\n", e.Op, e.Path, e.Err)
	}
	cmd.Println(report.Result.Stats.Summary())
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
