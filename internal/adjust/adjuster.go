// Package adjust reshapes a parsed tree against the live project before the
// merge runs: it drops incoming files that would collide with real work and
// remaps folders onto the framework's canonical layout.
package adjust

import (
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/agentic-research/treegraft/internal/content"
	"github.com/agentic-research/treegraft/internal/policy"
	"github.com/agentic-research/treegraft/internal/project"
	"github.com/agentic-research/treegraft/internal/tree"
)

// Dropped records one incoming file excluded by conflict filtering.
type Dropped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Adjuster applies conflict filtering and convention remapping. The
// filesystem is rooted at the merge base path; all probes use relative
// paths.
type Adjuster struct {
	fs  billy.Filesystem
	log *zap.Logger
}

func New(fs billy.Filesystem, log *zap.Logger) *Adjuster {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adjuster{fs: fs, log: log}
}

// Adjust returns a tree with fewer or equal nodes. Folders are always
// retained — an existing folder is merged into, never blocked. A file is
// dropped only when its on-disk counterpart exists and is either critical
// for the project type or already carries meaningful content; empty and
// placeholder files stay in so the executor repopulates them.
func (a *Adjuster) Adjust(roots []*tree.Node, ctx project.Context) ([]*tree.Node, []Dropped) {
	var dropped []Dropped
	rootBase := path.Base(ctx.BasePath)

	kept := make([]*tree.Node, 0, len(roots))
	for _, r := range roots {
		if !r.IsFolder() {
			if reason, drop := a.fileConflicts(r.Name, r.Name, ctx); drop {
				dropped = append(dropped, Dropped{Path: r.Name, Reason: reason})
				a.log.Debug("dropping conflicting file",
					zap.String("path", r.Name), zap.String("reason", reason))
				continue
			}
			kept = append(kept, r)
			continue
		}
		base := r.Name
		if base == rootBase {
			// Collapsed onto the merge root: children resolve at top level.
			base = ""
		}
		a.filterNode(r, base, ctx, &dropped)
		kept = append(kept, r)
	}

	a.remap(kept, ctx, rootBase)
	return kept, dropped
}

func (a *Adjuster) filterNode(n *tree.Node, nodePath string, ctx project.Context, dropped *[]Dropped) {
	if !n.IsFolder() {
		return
	}
	filtered := n.Children[:0]
	for _, c := range n.Children {
		childPath := path.Join(nodePath, c.Name)
		if c.IsFolder() {
			a.filterNode(c, childPath, ctx, dropped)
			filtered = append(filtered, c)
			continue
		}
		if reason, drop := a.fileConflicts(childPath, c.Name, ctx); drop {
			*dropped = append(*dropped, Dropped{Path: childPath, Reason: reason})
			a.log.Debug("dropping conflicting file",
				zap.String("path", childPath), zap.String("reason", reason))
			continue
		}
		filtered = append(filtered, c)
	}
	n.Children = filtered
}

// fileConflicts classifies an incoming file against its on-disk
// counterpart. An existing file that cannot be read is treated as
// meaningful — the fail-safe is preservation, never overwrite.
func (a *Adjuster) fileConflicts(relPath, name string, ctx project.Context) (string, bool) {
	if _, err := a.fs.Stat(relPath); err != nil {
		return "", false // nothing on disk, nothing to protect
	}
	if policy.IsCritical(name, ctx.Type) {
		return "existing critical file", true
	}
	data, err := readAll(a.fs, relPath)
	if err != nil {
		return "existing file unreadable, preserved", true
	}
	if content.IsMeaningful(data) {
		return "existing file has content", true
	}
	return "", false
}

// remap rewrites TargetPath on top-level folders the framework convention
// claims, but only when the canonical parent directory already exists on
// disk. Conventions are table lookups; nothing is invented.
func (a *Adjuster) remap(roots []*tree.Node, ctx project.Context, rootBase string) {
	conv, ok := policy.ConventionFor(ctx.Framework)
	if !ok {
		return
	}
	if info, err := a.fs.Stat(conv.CanonicalParent); err != nil || !info.IsDir() {
		return
	}

	claimed := make(map[string]bool, len(conv.Folders))
	for _, f := range conv.Folders {
		claimed[f] = true
	}

	// Top level means the roots themselves, plus the children of a root
	// folder that collapses onto the merge root.
	topLevel := make([]*tree.Node, 0, len(roots))
	for _, r := range roots {
		if r.IsFolder() && r.Name == rootBase {
			topLevel = append(topLevel, r.Children...)
			continue
		}
		topLevel = append(topLevel, r)
	}

	for _, n := range topLevel {
		if n.IsFolder() && claimed[n.Name] && n.Name != conv.CanonicalParent {
			n.TargetPath = path.Join(conv.CanonicalParent, n.Name)
			a.log.Debug("remapped folder by convention",
				zap.String("folder", n.Name), zap.String("target", n.TargetPath))
		}
	}
}

func readAll(fs billy.Filesystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
