// Package config loads the optional .treegraft.yaml run options. Absence of
// the file is not an error; every field has a safe default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agentic-research/treegraft/internal/policy"
)

// FileName is looked up in the merge target directory.
const FileName = ".treegraft.yaml"

// Config mirrors the yaml file.
type Config struct {
	// DirsOnly suppresses all file creation.
	DirsOnly bool `yaml:"dirs_only"`

	// IncludeCritical disables the skip-critical mode, letting existing
	// critical files fall through to content classification.
	IncludeCritical bool `yaml:"include_critical"`

	// ExtraCriticalFiles extends the universal critical set.
	ExtraCriticalFiles []string `yaml:"extra_critical_files"`

	// ExtraSensitiveFolders extends the sensitive folder set.
	ExtraSensitiveFolders []string `yaml:"extra_sensitive_folders"`
}

// Default returns the zero configuration: full merge, critical files
// protected.
func Default() Config { return Config{} }

// Load reads dir/.treegraft.yaml when present. A missing file returns the
// defaults; a malformed file is an error, since silently ignoring a safety
// configuration would be worse than stopping.
func Load(dir string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", FileName, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return cfg, nil
}

// Apply installs the config's table extensions into the policy package.
// Called once per run, before any classification happens.
func (c Config) Apply() {
	policy.AddCriticalFiles(c.ExtraCriticalFiles)
	policy.AddSensitiveFolders(c.ExtraSensitiveFolders)
}
