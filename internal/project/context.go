// Package project defines the context record the merge core consumes and a
// reference detector that produces it. The core packages never perform
// detection themselves; they read a Context handed to them.
package project

// Context carries externally supplied facts about the target directory.
// It is immutable for the duration of a merge run.
type Context struct {
	// Type is the primary project type tag: "react", "nextjs", "vue",
	// "node", "go", "python", or "generic".
	Type string

	// BasePath is the absolute path of the merge root.
	BasePath string

	// Framework, when non-empty, selects a layout convention table.
	Framework string

	// IsNested is true when the real sources live one level down (a src/
	// directory already carries the layout).
	IsNested bool

	// Architecture is a free-form hint ("layered", "feature-sliced", ...).
	Architecture string
}

// Detector produces a Context for a working directory.
type Detector interface {
	Detect(dir string) (Context, error)
}
