// Package policy holds the static predicate tables shared by the adjuster
// and the merge executor: critical file names, sensitive folder names, and
// per-framework layout conventions. Everything here is data; the packages
// that consume it make the decisions.
package policy

import "strings"

// universalCritical lists file names (case-insensitive) that must never be
// overwritten regardless of project type or content: package and lock
// manifests, environment files, VCS metadata files, license/readme, and
// type-checker configuration.
var universalCritical = map[string]bool{
	"package.json":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"bun.lockb":         true,
	"go.mod":            true,
	"go.sum":            true,
	"cargo.toml":        true,
	"cargo.lock":        true,
	"requirements.txt":  true,
	"pyproject.toml":    true,
	"composer.json":     true,
	"composer.lock":     true,
	"gemfile":           true,
	"gemfile.lock":      true,
	".env":              true,
	".env.local":        true,
	".env.development":  true,
	".env.production":   true,
	".gitignore":        true,
	".gitattributes":    true,
	".npmrc":            true,
	"license":           true,
	"license.md":        true,
	"license.txt":       true,
	"readme":            true,
	"readme.md":         true,
	"tsconfig.json":     true,
	"tsconfig.node.json": true,
	"jsconfig.json":     true,
}

// typeCritical extends the universal set per detected project type with
// framework entry points and build-tool configuration.
var typeCritical = map[string][]string{
	"react": {
		"vite.config.js", "vite.config.ts",
		"index.html", "main.jsx", "main.tsx", "app.jsx", "app.tsx",
	},
	"nextjs": {
		"next.config.js", "next.config.mjs", "next.config.ts",
		"middleware.ts", "middleware.js",
	},
	"vue": {
		"vite.config.js", "vite.config.ts", "vue.config.js",
		"main.js", "main.ts", "app.vue",
	},
	"node": {
		"index.js", "server.js", "app.js",
	},
	"go": {
		"main.go",
	},
	"python": {
		"main.py", "setup.py", "setup.cfg", "manage.py",
	},
}

// IsCritical reports whether name must never be overwritten for the given
// project type. The check is case-insensitive and ignores any path prefix.
func IsCritical(name, projectType string) bool {
	base := strings.ToLower(baseName(name))
	if universalCritical[base] {
		return true
	}
	for _, c := range typeCritical[strings.ToLower(projectType)] {
		if base == c {
			return true
		}
	}
	return false
}

func baseName(name string) string {
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		return name[i+1:]
	}
	return name
}
