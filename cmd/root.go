package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agentic-research/treegraft/internal/policy"
)

const version = "0.3.0"

var (
	// Global flags
	verbose         bool
	jsonOutput      bool
	dirsOnly        bool
	includeCritical bool
	noHistory       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "treegraft",
	Short: "Graft a pasted directory-tree description onto a real project",
	Long: `treegraft parses a freeform text description of a directory tree — the
kind humans sketch and AI assistants emit — and reconciles it against a real,
possibly non-empty project directory.

It creates what is missing, never touches files that already carry work,
repopulates empty placeholders, and refuses to create or enter protected
folders like node_modules or .git. Running the same tree twice is a no-op.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return policy.ValidateTables()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&dirsOnly, "dirs-only", false, "create directories only, never files")
	rootCmd.PersistentFlags().BoolVar(&includeCritical, "include-critical", false,
		"let existing critical files fall through to content classification")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record the run in history")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
