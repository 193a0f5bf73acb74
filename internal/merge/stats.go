package merge

import "fmt"

// Outcome is the per-node decision of the merge state machine.
type Outcome int

const (
	Create Outcome = iota
	Preserve
	Skip
	Update
)

func (o Outcome) String() string {
	switch o {
	case Create:
		return "create"
	case Preserve:
		return "preserve"
	case Skip:
		return "skip"
	case Update:
		return "update"
	default:
		return "unknown"
	}
}

// Tally splits a counter by node kind.
type Tally struct {
	Folders int `json:"folders"`
	Files   int `json:"files"`
}

// Stats accumulates the counters of one merge run. It is created per
// top-level invocation, threaded explicitly through the walk, and read-only
// once the walk finishes. An Update increments Created.Files: the node
// transitions from exists-empty to has-content, which is semantically a
// creation.
type Stats struct {
	Created   Tally `json:"created"`
	Preserved Tally `json:"preserved"`
	Skipped   Tally `json:"skipped"`
}

// Summary renders the human-readable boundary report.
func (s Stats) Summary() string {
	return fmt.Sprintf(
		"created %d folders, %d files | preserved %d folders, %d files | skipped %d folders, %d files",
		s.Created.Folders, s.Created.Files,
		s.Preserved.Folders, s.Preserved.Files,
		s.Skipped.Folders, s.Skipped.Files,
	)
}

// OpError records a single node's filesystem failure. The walk continues;
// siblings and unrelated subtrees are unaffected.
type OpError struct {
	Path string `json:"path"`
	Op   string `json:"op"`
	Err  string `json:"error"`
}

// Decision is one resolved node, reported for dry runs and logging.
type Decision struct {
	Path    string `json:"path"`
	Folder  bool   `json:"folder"`
	Outcome string `json:"outcome"`
}

// Result is what one merge run returns to the caller.
type Result struct {
	Stats     Stats      `json:"stats"`
	Decisions []Decision `json:"decisions,omitempty"`
	Errors    []OpError  `json:"errors,omitempty"`
}
