// Package merge walks an adjusted tree against the live filesystem and
// reconciles the two: create what is missing, preserve what carries work,
// skip what is protected. The walk is sequential, depth-first and pre-order:
// a folder's own decision lands before its children are visited, because a
// child write needs its parent directory.
package merge

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/agentic-research/treegraft/internal/content"
	"github.com/agentic-research/treegraft/internal/policy"
	"github.com/agentic-research/treegraft/internal/project"
	"github.com/agentic-research/treegraft/internal/tree"
)

// Options are the run modes of the executor.
type Options struct {
	// DirsOnly suppresses all file creation; folder handling is unchanged.
	DirsOnly bool

	// SkipCritical short-circuits existing critical files to preservation
	// without inspecting their content. On by default at the CLI.
	SkipCritical bool

	// DryRun records decisions without performing any mutation. Existence
	// checks and content reads still happen.
	DryRun bool
}

// Executor performs one merge run. The filesystem is rooted at the merge
// base path; every node path is relative to it.
type Executor struct {
	fs       billy.Filesystem
	provider content.Provider
	opts     Options
	log      *zap.Logger
}

func NewExecutor(fs billy.Filesystem, provider content.Provider, opts Options, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{fs: fs, provider: provider, opts: opts, log: log}
}

// Merge reconciles the adjusted tree against the filesystem and returns the
// run's stats, decisions and per-node errors. The only error returned
// directly is context cancellation, checked between sibling visits; every
// filesystem failure is recorded in Result.Errors and does not stop the
// walk. Completed steps are idempotent, so a cancelled run can simply be
// re-run.
func (e *Executor) Merge(ctx context.Context, roots []*tree.Node, pctx project.Context) (*Result, error) {
	res := &Result{}
	rootBase := path.Base(pctx.BasePath)

	for _, r := range roots {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := e.visit(ctx, r, "", rootBase, pctx, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// visit resolves one node and recurses. parentPath is "" at the top level.
func (e *Executor) visit(ctx context.Context, n *tree.Node, parentPath, rootBase string, pctx project.Context, res *Result) error {
	p := e.resolve(n, parentPath, rootBase)
	if n.IsFolder() {
		return e.visitFolder(ctx, n, p, rootBase, pctx, res)
	}
	e.visitFile(n, p, pctx, res)
	return nil
}

// resolve applies the target path rule: an explicit TargetPath wins, a
// top-level folder named like the merge root collapses onto the root
// (preventing target/target nesting), everything else lands under its
// parent.
func (e *Executor) resolve(n *tree.Node, parentPath, rootBase string) string {
	if n.TargetPath != "" {
		return n.TargetPath
	}
	if parentPath == "" && n.IsFolder() && n.Name == rootBase {
		return ""
	}
	return path.Join(parentPath, n.Name)
}

func (e *Executor) visitFolder(ctx context.Context, n *tree.Node, p, rootBase string, pctx project.Context, res *Result) error {
	recurse := true

	switch {
	case p == "":
		// The collapsed merge root always exists.
		e.record(res, p, true, Preserve)
		res.Stats.Preserved.Folders++

	case policy.IsSensitiveFolder(n.Name):
		if e.pathExists(p) {
			e.record(res, p, true, Preserve)
			res.Stats.Preserved.Folders++
		} else {
			e.record(res, p, true, Skip)
			res.Stats.Skipped.Folders++
		}
		// Sensitive folders are left entirely alone either way.
		recurse = false

	case !e.pathExists(p):
		if !e.opts.DryRun {
			if err := e.fs.MkdirAll(p, 0o755); err != nil {
				res.Errors = append(res.Errors, OpError{Path: p, Op: "mkdir", Err: err.Error()})
				e.log.Warn("mkdir failed", zap.String("path", p), zap.Error(err))
				return nil // children have no parent to land in
			}
		}
		e.record(res, p, true, Create)
		res.Stats.Created.Folders++

	default:
		e.record(res, p, true, Preserve)
		res.Stats.Preserved.Folders++
	}

	if !recurse {
		return nil
	}
	for _, c := range n.Children {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.visit(ctx, c, p, rootBase, pctx, res); err != nil {
			return err
		}
	}
	return nil
}

// visitFile runs the file decision table in order; the first match wins.
func (e *Executor) visitFile(n *tree.Node, p string, pctx project.Context, res *Result) {
	if e.opts.DirsOnly {
		e.log.Debug("directories-only mode, skipping file", zap.String("path", p))
		e.record(res, p, false, Skip)
		res.Stats.Skipped.Files++
		return
	}

	exists := e.pathExists(p)

	if e.opts.SkipCritical && exists && policy.IsCritical(n.Name, pctx.Type) {
		e.record(res, p, false, Preserve)
		res.Stats.Preserved.Files++
		return
	}

	if exists {
		data, err := readAll(e.fs, p)
		if err != nil {
			// Unclassifiable content fails toward preservation.
			res.Errors = append(res.Errors, OpError{Path: p, Op: "read", Err: err.Error()})
			e.record(res, p, false, Preserve)
			res.Stats.Preserved.Files++
			return
		}
		if content.IsMeaningful(data) {
			e.record(res, p, false, Preserve)
			res.Stats.Preserved.Files++
			return
		}
		desired := []byte(e.provider.DefaultContent(p))
		if bytes.Equal(data, desired) {
			// The placeholder is already exactly what a write would
			// produce; rewriting it would count as a change on every run.
			e.record(res, p, false, Preserve)
			res.Stats.Preserved.Files++
			return
		}
		if e.write(p, desired, res) {
			e.record(res, p, false, Update)
			res.Stats.Created.Files++
		}
		return
	}

	if e.write(p, []byte(e.provider.DefaultContent(p)), res) {
		e.record(res, p, false, Create)
		res.Stats.Created.Files++
	}
}

// write fills p with data and reports success. A failed write is recorded
// and counts nothing.
func (e *Executor) write(p string, data []byte, res *Result) bool {
	if e.opts.DryRun {
		return true
	}
	f, err := e.fs.Create(p)
	if err != nil {
		res.Errors = append(res.Errors, OpError{Path: p, Op: "create", Err: err.Error()})
		e.log.Warn("create failed", zap.String("path", p), zap.Error(err))
		return false
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		res.Errors = append(res.Errors, OpError{Path: p, Op: "write", Err: werr.Error()})
		return false
	}
	if cerr != nil {
		res.Errors = append(res.Errors, OpError{Path: p, Op: "close", Err: cerr.Error()})
		return false
	}
	return true
}

func (e *Executor) record(res *Result, p string, folder bool, o Outcome) {
	display := p
	if display == "" {
		display = "."
	}
	res.Decisions = append(res.Decisions, Decision{Path: display, Folder: folder, Outcome: o.String()})
	e.log.Debug("decision",
		zap.String("path", display), zap.Bool("folder", folder), zap.Stringer("outcome", o))
}

func (e *Executor) pathExists(p string) bool {
	_, err := e.fs.Stat(p)
	return err == nil
}

func readAll(fs billy.Filesystem, name string) ([]byte, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
