package tree

import (
	"fmt"
	"strings"

	"github.com/agentic-research/treegraft/internal/safety"
)

// Issue is a non-blocking problem found by Validate. Issues are reported to
// the caller and never stop a merge.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string { return fmt.Sprintf("%s: %s", i.Path, i.Message) }

// Validate reports duplicate sibling names and filesystem-illegal characters
// without mutating the forest.
func Validate(roots []*Node) []Issue {
	var issues []Issue
	validateSiblings("", roots, &issues)
	return issues
}

func validateSiblings(prefix string, siblings []*Node, issues *[]Issue) {
	seen := make(map[string]bool, len(siblings))
	for _, n := range siblings {
		path := n.Name
		if prefix != "" {
			path = prefix + "/" + n.Name
		}
		key := strings.ToLower(n.Name)
		if seen[key] {
			*issues = append(*issues, Issue{Path: path, Message: "duplicate sibling name"})
		}
		seen[key] = true

		if err := safety.ValidateSegment(n.Name); err != nil {
			*issues = append(*issues, Issue{Path: path, Message: err.Error()})
		}
		if n.IsFolder() {
			validateSiblings(path, n.Children, issues)
		}
	}
}
