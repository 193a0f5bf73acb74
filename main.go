package main

import (
	"fmt"
	"os"

	"github.com/agentic-research/treegraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treegraft:", err)
		os.Exit(1)
	}
}
