package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/treegraft/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent merge runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := history.DefaultPath()
		if err != nil {
			return err
		}
		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			fmt.Println(oj.JSON(entries, 2))
			return nil
		}
		if len(entries) == 0 {
			cmd.Println("no recorded runs")
			return nil
		}
		for _, e := range entries {
			cmd.Printf("%s  %s  %s  %s",
				e.RanAt.Format("2006-01-02 15:04"), e.ID[:8], e.Target, e.Stats.Summary())
			if e.ErrorCount > 0 {
				cmd.Printf("  (%d errors)", e.ErrorCount)
			}
			cmd.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
