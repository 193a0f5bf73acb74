package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/treegraft/internal/adjust"
	"github.com/agentic-research/treegraft/internal/config"
	"github.com/agentic-research/treegraft/internal/content"
	"github.com/agentic-research/treegraft/internal/merge"
	"github.com/agentic-research/treegraft/internal/project"
	"github.com/agentic-research/treegraft/internal/safety"
	"github.com/agentic-research/treegraft/internal/tree"
)

// runReport bundles everything one pipeline run produced, for rendering.
type runReport struct {
	Target   string           `json:"target"`
	Warnings []tree.Warning   `json:"warnings,omitempty"`
	Issues   []tree.Issue     `json:"issues,omitempty"`
	Dropped  []adjust.Dropped `json:"dropped,omitempty"`
	Result   *merge.Result    `json:"result"`
}

// runOptions carries per-invocation modes into the pipeline, so callers
// (CLI commands, MCP requests) do not have to route state through the flag
// globals.
type runOptions struct {
	dirsOnly        bool
	includeCritical bool
	dryRun          bool
}

// flagOptions snapshots the persistent CLI flags.
func flagOptions(dryRun bool) runOptions {
	return runOptions{dirsOnly: dirsOnly, includeCritical: includeCritical, dryRun: dryRun}
}

// runPipeline is the full reconciliation: safety check, config, detection,
// parse, validate, adjust, merge. A dry run routes through the same
// executor with mutation disabled.
func runPipeline(ctx context.Context, treeText, target string, ropts runOptions) (*runReport, error) {
	if err := safety.CheckRoot(target); err != nil {
		return nil, err
	}
	base, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("ensure target exists: %w", err)
	}

	cfg, err := config.Load(base)
	if err != nil {
		return nil, err
	}
	cfg.Apply()

	pctx, err := project.NewFSDetector(logger).Detect(base)
	if err != nil {
		return nil, err
	}

	parser := tree.NewParser(logger)
	roots, warnings := parser.Parse(treeText)
	if len(roots) == 0 {
		return nil, fmt.Errorf("no tree entries found in input")
	}
	issues := tree.Validate(roots)

	fs := osfs.New(base)
	adjusted, dropped := adjust.New(fs, logger).Adjust(roots, pctx)

	opts := merge.Options{
		DirsOnly:     ropts.dirsOnly || cfg.DirsOnly,
		SkipCritical: !(ropts.includeCritical || cfg.IncludeCritical),
		DryRun:       ropts.dryRun,
	}
	exec := merge.NewExecutor(fs, content.NewDefaultProvider(), opts, logger)
	res, err := exec.Merge(ctx, adjusted, pctx)
	if err != nil {
		return nil, err
	}

	// Files the adjuster withheld are existing work left untouched; at the
	// run boundary they count as preserved.
	res.Stats.Preserved.Files += len(dropped)

	return &runReport{
		Target:   base,
		Warnings: warnings,
		Issues:   issues,
		Dropped:  dropped,
		Result:   res,
	}, nil
}

// readTreeText loads the tree description from a file argument, or stdin
// when the argument is "-".
func readTreeText(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read tree file: %w", err)
	}
	return string(data), nil
}
