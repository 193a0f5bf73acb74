package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = `my-app/
├── src/
│   ├── components/
│   │   └── Button.jsx
│   └── app.js
└── README.md
`

func TestRunPipeline_EndToEnd(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(target, 0o755))

	report, err := runPipeline(context.Background(), sampleTree, target, runOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Result.Stats.Created.Folders)
	assert.Equal(t, 3, report.Result.Stats.Created.Files)
	assert.Empty(t, report.Result.Errors)

	// The root line collapsed onto the target instead of nesting.
	_, serr := os.Stat(filepath.Join(target, "my-app"))
	assert.Error(t, serr)
	_, serr = os.Stat(filepath.Join(target, "src", "components", "Button.jsx"))
	assert.NoError(t, serr)

	// Second run is a no-op.
	again, err := runPipeline(context.Background(), sampleTree, target, runOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Result.Stats.Created.Folders)
	assert.Equal(t, 0, again.Result.Stats.Created.Files)
}

// A pre-existing file with real content counts as preserved in the run
// report even though the adjuster withholds it before the executor runs.
func TestRunPipeline_ExistingWorkCountsAsPreserved(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "src"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(target, "src", "app.js"), []byte(`console.log("x")`), 0o644))

	report, err := runPipeline(context.Background(), "src/\n└── app.js\n", target, runOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Result.Stats.Created.Files)
	assert.Equal(t, 1, report.Result.Stats.Preserved.Files)
	require.Len(t, report.Dropped, 1)

	data, err := os.ReadFile(filepath.Join(target, "src", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, `console.log("x")`, string(data))
}

func TestRunPipeline_DryRun(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.MkdirAll(target, 0o755))

	report, err := runPipeline(context.Background(), sampleTree, target, runOptions{dryRun: true})
	require.NoError(t, err)
	assert.NotEmpty(t, report.Result.Decisions)

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunPipeline_EmptyInput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "my-app")
	_, err := runPipeline(context.Background(), "# just a comment\n", target, runOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tree entries")
}

func TestRunPipeline_RefusesProtectedRoot(t *testing.T) {
	_, err := runPipeline(context.Background(), sampleTree, "/", runOptions{})
	require.Error(t, err)
}
