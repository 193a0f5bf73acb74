package policy

import "strings"

// sensitiveFolders are never auto-created, and when present they are left
// entirely alone — the merge does not even recurse into them. They cover
// VCS metadata, editor state, dependency caches, and build output.
var sensitiveFolders = map[string]bool{
	".git":          true,
	".svn":          true,
	".hg":           true,
	".idea":         true,
	".vscode":       true,
	".vs":           true,
	"node_modules":  true,
	"bower_components": true,
	"vendor":        true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	"dist":          true,
	"build":         true,
	"out":           true,
	"coverage":      true,
	".next":         true,
	".nuxt":         true,
	".cache":        true,
	".turbo":        true,
	"target":        true,
}

// IsSensitiveFolder reports whether a folder name belongs to the protected
// set. Case-insensitive on the basename only.
func IsSensitiveFolder(name string) bool {
	return sensitiveFolders[strings.ToLower(baseName(name))]
}

// knownFolderNames help the parser classify dotless-or-not labels: these
// basenames are folders even without a trailing slash.
var knownFolderNames = map[string]bool{
	"src": true, "public": true, "dist": true, "build": true,
	"components": true, "pages": true, "hooks": true, "utils": true,
	"lib": true, "libs": true, "assets": true, "styles": true,
	"tests": true, "test": true, "__tests__": true, "spec": true,
	"api": true, "config": true, "configs": true, "docs": true,
	"scripts": true, "static": true, "images": true, "img": true,
	"fonts": true, "icons": true, "layouts": true, "views": true,
	"store": true, "stores": true, "services": true, "models": true,
	"controllers": true, "routes": true, "middleware": true,
	"helpers": true, "types": true, "constants": true, "context": true,
	"features": true, "modules": true, "shared": true, "common": true,
	"node_modules": true, ".git": true, ".github": true, ".vscode": true,
	"cmd": true, "internal": true, "pkg": true,
}

// KnownFolderName reports whether the label is a well-known folder basename.
func KnownFolderName(label string) bool {
	return knownFolderNames[strings.ToLower(label)]
}
