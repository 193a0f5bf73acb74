// Package tree parses freeform tree-drawing text into a structured node
// model. Parsing is best-effort and line-local: a malformed line produces a
// Warning and is skipped, it never aborts the document.
package tree

// Kind discriminates folder nodes from file nodes.
type Kind int

const (
	Folder Kind = iota
	File
)

func (k Kind) String() string {
	switch k {
	case Folder:
		return "folder"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Node is one entry in a parsed directory tree. Names are opaque strings;
// sibling uniqueness is not enforced at construction (Validate reports
// duplicates). Only Folder nodes carry children.
type Node struct {
	Name     string
	Kind     Kind
	Children []*Node

	// TargetPath, when set by the adjuster, overrides the node's position:
	// it is resolved relative to the merge root instead of the parent chain.
	TargetPath string
}

// IsFolder reports whether the node is a directory entry.
func (n *Node) IsFolder() bool { return n.Kind == Folder }

// Warning records a recoverable parse problem. The offending line is
// skipped; parsing continues.
type Warning struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// Count returns the number of folder and file nodes in the forest.
func Count(roots []*Node) (folders, files int) {
	for _, r := range roots {
		f, fi := countNode(r)
		folders += f
		files += fi
	}
	return folders, files
}

func countNode(n *Node) (folders, files int) {
	if n.IsFolder() {
		folders = 1
		for _, c := range n.Children {
			f, fi := countNode(c)
			folders += f
			files += fi
		}
		return folders, files
	}
	return 0, 1
}
