package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// knownPackages maps dependency names from package.json to framework tags,
// normalized to the closed set the policy tables understand.
var knownPackages = map[string]string{
	"next":          "nextjs",
	"react":         "react",
	"react-dom":     "react",
	"vue":           "vue",
	"nuxt":          "nextjs",
	"@angular/core": "angular",
	"svelte":        "svelte",
	"express":       "node",
	"fastify":       "node",
	"koa":           "node",
}

// typePriority orders competing detections: a project with both next and
// react is a nextjs project.
var typePriority = []string{"nextjs", "react", "vue", "angular", "svelte", "node"}

// FSDetector is the reference Detector implementation. It sniffs manifest
// files in the directory itself — it does not walk up the tree, since the
// merge root is already chosen by the caller.
type FSDetector struct {
	log *zap.Logger
}

func NewFSDetector(log *zap.Logger) *FSDetector {
	if log == nil {
		log = zap.NewNop()
	}
	return &FSDetector{log: log}
}

// Detect inspects dir and returns its Context. Detection never fails on
// missing or malformed manifests; the fallback is a "generic" context.
func (d *FSDetector) Detect(dir string) (Context, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Context{}, fmt.Errorf("resolve %s: %w", dir, err)
	}

	ctx := Context{Type: "generic", BasePath: abs}

	if pkg, ok := readPackageJSON(abs); ok {
		ctx.Type = "node"
		detected := map[string]bool{}
		for name := range pkg.Dependencies {
			if tag, known := knownPackages[name]; known {
				detected[tag] = true
			}
		}
		for name := range pkg.DevDependencies {
			if tag, known := knownPackages[name]; known {
				detected[tag] = true
			}
		}
		for _, tag := range typePriority {
			if detected[tag] {
				ctx.Type = tag
				break
			}
		}
		switch ctx.Type {
		case "react", "nextjs", "vue":
			ctx.Framework = ctx.Type
		case "node":
			ctx.Framework = "node-layered"
		}
	} else if exists(filepath.Join(abs, "go.mod")) {
		ctx.Type = "go"
	} else if exists(filepath.Join(abs, "pyproject.toml")) || exists(filepath.Join(abs, "requirements.txt")) {
		ctx.Type = "python"
	}

	if info, err := os.Stat(filepath.Join(abs, "src")); err == nil && info.IsDir() {
		ctx.IsNested = true
	}

	d.log.Debug("detected project",
		zap.String("dir", abs),
		zap.String("type", ctx.Type),
		zap.String("framework", ctx.Framework),
		zap.Bool("nested", ctx.IsNested))
	return ctx, nil
}

type packageManifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readPackageJSON(dir string) (packageManifest, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return packageManifest{}, false
	}
	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		// Present but unparseable still marks a node project.
		return packageManifest{}, true
	}
	return pkg, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
