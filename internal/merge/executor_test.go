package merge

import (
	"context"
	"io"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/treegraft/internal/content"
	"github.com/agentic-research/treegraft/internal/project"
	"github.com/agentic-research/treegraft/internal/tree"
)

func folder(name string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.Folder, Children: children}
}

func file(name string) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.File}
}

func seedFile(t *testing.T, fs billy.Filesystem, path, data string) {
	t.Helper()
	f, err := fs.Create(path)
	require.NoError(t, err)
	_, err = f.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func readBack(t *testing.T, fs billy.Filesystem, path string) string {
	t.Helper()
	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func exec(fs billy.Filesystem, opts Options) *Executor {
	return NewExecutor(fs, content.DefaultProvider{}, opts, nil)
}

func pctx() project.Context {
	return project.Context{Type: "react", BasePath: "/work/my-app"}
}

func defaultOpts() Options {
	return Options{SkipCritical: true}
}

// Tree targets a folder that does not exist yet. Both the folder and the
// file inside it are created.
func TestMerge_CreatesMissingFolderAndFile(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{folder("src", file("app.js"))}

	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Created.Folders)
	assert.Equal(t, 1, res.Stats.Created.Files)
	assert.Equal(t, 0, res.Stats.Preserved.Files)
	assert.Empty(t, res.Errors)

	info, err := fs.Stat("src")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NotEmpty(t, readBack(t, fs, "src/app.js"))
}

// An existing file with real content is never touched, byte for byte.
func TestMerge_PreservesMeaningfulFile(t *testing.T) {
	fs := memfs.New()
	const body = "export const answer = 42;\n"
	require.NoError(t, fs.MkdirAll("src", 0o755))
	seedFile(t, fs, "src/app.js", body)

	roots := []*tree.Node{folder("src", file("app.js"))}
	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Preserved.Files)
	assert.Equal(t, 0, res.Stats.Created.Files)
	assert.Equal(t, body, readBack(t, fs, "src/app.js"))
}

// An existing empty file is repopulated with default content. The outcome
// is an update, tallied under created files.
func TestMerge_UpdatesEmptyFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("src", 0o755))
	seedFile(t, fs, "src/app.js", "")

	roots := []*tree.Node{folder("src", file("app.js"))}
	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Created.Files)
	assert.Equal(t, 0, res.Stats.Preserved.Files)
	assert.NotEmpty(t, readBack(t, fs, "src/app.js"))

	require.Len(t, res.Decisions, 2)
	assert.Equal(t, "update", res.Decisions[1].Outcome)
}

// A comment-only file counts as empty and is repopulated too.
func TestMerge_UpdatesPlaceholderFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("src", 0o755))
	seedFile(t, fs, "src/config.js", "// TODO: fill me in\n")

	roots := []*tree.Node{folder("src", file("config.js"))}
	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Created.Files)
	body := readBack(t, fs, "src/config.js")
	assert.NotContains(t, body, "TODO")
}

// A placeholder that already equals the default content is preserved, not
// rewritten, so repeated runs of comment-only boilerplate stay a no-op.
func TestMerge_PreservesPlaceholderMatchingDefault(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "notes.md", content.DefaultProvider{}.DefaultContent("notes.md"))

	roots := []*tree.Node{file("notes.md")}
	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Stats.Created.Files)
	assert.Equal(t, 1, res.Stats.Preserved.Files)
}

// A missing sensitive folder is skipped, not created.
func TestMerge_SkipsMissingSensitiveFolder(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{folder("node_modules", folder("react"))}

	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Skipped.Folders)
	assert.Equal(t, 0, res.Stats.Created.Folders)
	assert.Empty(t, res.Errors)
	_, serr := fs.Stat("node_modules")
	assert.Error(t, serr)
}

// An existing sensitive folder is preserved and its subtree left alone.
func TestMerge_NeverRecursesIntoSensitiveFolder(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("node_modules", 0o755))

	roots := []*tree.Node{folder("node_modules", folder("react"), file("stray.js"))}
	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Preserved.Folders)
	assert.Equal(t, 0, res.Stats.Created.Folders)
	assert.Equal(t, 0, res.Stats.Created.Files)
	_, serr := fs.Stat("node_modules/react")
	assert.Error(t, serr)
}

// Existing critical files are preserved without content inspection, even
// when empty.
func TestMerge_PreservesEmptyCriticalFile(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "package.json", "")

	roots := []*tree.Node{file("package.json")}
	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Preserved.Files)
	assert.Equal(t, "", readBack(t, fs, "package.json"))
}

// With SkipCritical off the critical file falls through to the content
// check like any other file.
func TestMerge_IncludeCriticalRepopulatesEmptyFile(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "package.json", "")

	roots := []*tree.Node{file("package.json")}
	res, err := exec(fs, Options{SkipCritical: false}).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Created.Files)
	assert.NotEmpty(t, readBack(t, fs, "package.json"))
}

// A missing critical file is still created; the protection applies only to
// existing ones.
func TestMerge_CreatesMissingCriticalFile(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{file(".gitignore")}

	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Created.Files)
	assert.NotEmpty(t, readBack(t, fs, ".gitignore"))
}

// A top-level folder named like the merge root collapses onto it instead
// of nesting target/target.
func TestMerge_RootCollapse(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{folder("my-app", folder("src", file("app.js")))}

	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	_, nested := fs.Stat("my-app")
	assert.Error(t, nested, "the root folder must not nest under itself")
	_, err = fs.Stat("src/app.js")
	assert.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Preserved.Folders) // the collapsed root
	assert.Equal(t, 1, res.Stats.Created.Folders)
}

// TargetPath set by the adjuster overrides the tree position.
func TestMerge_HonorsTargetPath(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("src", 0o755))

	comp := folder("components", file("Button.tsx"))
	comp.TargetPath = "src/components"
	roots := []*tree.Node{comp}

	_, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	_, serr := fs.Stat("src/components/Button.tsx")
	assert.NoError(t, serr)
	_, serr = fs.Stat("components")
	assert.Error(t, serr)
}

func TestMerge_DirsOnly(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{folder("src", file("app.js"), folder("components"))}

	res, err := exec(fs, Options{DirsOnly: true, SkipCritical: true}).
		Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Stats.Created.Folders)
	assert.Equal(t, 0, res.Stats.Created.Files)
	assert.Equal(t, 1, res.Stats.Skipped.Files)
	_, serr := fs.Stat("src/app.js")
	assert.Error(t, serr)
}

func TestMerge_DryRunMutatesNothing(t *testing.T) {
	fs := memfs.New()
	seedFile(t, fs, "empty.js", "")
	roots := []*tree.Node{folder("src", file("app.js")), file("empty.js")}

	res, err := exec(fs, Options{SkipCritical: true, DryRun: true}).
		Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	// Decisions and stats look like a real run.
	assert.Equal(t, 1, res.Stats.Created.Folders)
	assert.Equal(t, 2, res.Stats.Created.Files) // one create, one update
	require.Len(t, res.Decisions, 3)

	// The filesystem is untouched.
	_, serr := fs.Stat("src")
	assert.Error(t, serr)
	assert.Equal(t, "", readBack(t, fs, "empty.js"))
}

// Running the same merge twice changes nothing the second time: everything
// created by the first run is preserved by the second.
func TestMerge_Idempotent(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{
		folder("src", file("app.js"), folder("components", file("Button.tsx"))),
		file("README.md"),
	}

	first, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)
	require.Empty(t, first.Errors)
	appJS := readBack(t, fs, "src/app.js")

	second, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	assert.Equal(t, 0, second.Stats.Created.Folders)
	assert.Equal(t, 0, second.Stats.Created.Files)
	assert.Equal(t, first.Stats.Created.Folders, second.Stats.Preserved.Folders)
	assert.Equal(t, first.Stats.Created.Files, second.Stats.Preserved.Files)
	assert.Equal(t, appJS, readBack(t, fs, "src/app.js"))
}

func TestMerge_Cancellation(t *testing.T) {
	fs := memfs.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	roots := []*tree.Node{folder("src", file("app.js"))}
	res, err := exec(fs, defaultOpts()).Merge(ctx, roots, pctx())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Decisions)
}

func TestMerge_DecisionOrderIsPreOrder(t *testing.T) {
	fs := memfs.New()
	roots := []*tree.Node{folder("src", folder("components", file("Button.tsx")), file("app.js"))}

	res, err := exec(fs, defaultOpts()).Merge(context.Background(), roots, pctx())
	require.NoError(t, err)

	paths := make([]string, len(res.Decisions))
	for i, d := range res.Decisions {
		paths[i] = d.Path
	}
	assert.Equal(t, []string{"src", "src/components", "src/components/Button.tsx", "src/app.js"}, paths)
}

func TestStats_Summary(t *testing.T) {
	s := Stats{
		Created:   Tally{Folders: 2, Files: 3},
		Preserved: Tally{Files: 1},
		Skipped:   Tally{Folders: 1},
	}
	sum := s.Summary()
	assert.Contains(t, sum, "2 folders")
	assert.Contains(t, sum, "3 files")
}
