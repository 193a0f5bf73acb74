package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/treegraft/internal/tree"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tree-file]",
	Short: "Parse a tree description and report problems without merging",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readTreeText(args[0])
		if err != nil {
			return err
		}
		roots, warnings := tree.NewParser(logger).Parse(text)
		issues := tree.Validate(roots)
		folders, files := tree.Count(roots)

		if jsonOutput {
			fmt.Println(oj.JSON(map[string]any{
				"folders":  folders,
				"files":    files,
				"warnings": warnings,
				"issues":   issues,
			}, 2))
			return nil
		}

		for _, w := range warnings {
			cmd.Printf("warning: line %d: %s\n", w.Line, w.Message)
		}
		for _, i := range issues {
			cmd.Printf("issue: %s\n", i)
		}
		cmd.Printf("parsed %d folders, %d files (%d warnings, %d issues)\n",
			folders, files, len(warnings), len(issues))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
