package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [tree-file] [target-dir]",
	Short: "Preview a merge without touching the filesystem",
	Long: `Runs the full pipeline (parse, adjust, decide) but performs no
mutation. Prints the per-node outcome so the merge can be inspected before
an apply.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTreeText(args[0])
		if err != nil {
			return err
		}
		report, err := runPipeline(cmd.Context(), text, args[1], flagOptions(true))
		if err != nil {
			return err
		}

		if jsonOutput {
			fmt.Println(oj.JSON(report, 2))
			return nil
		}
		for _, d := range report.Result.Decisions {
			kind := "file"
			if d.Folder {
				kind = "dir"
			}
			cmd.Printf("%-8s %-4s %s\n", d.Outcome, kind, d.Path)
		}
		printReport(cmd, report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
