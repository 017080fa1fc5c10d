package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newhook/ci-feedback/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSource_StepLogs(t *testing.T) {
	h := testutil.NewArtifactsHarness(t)
	h.AddStep("build", "2-archive", "archive")
	h.AddStep("build", "1-compile", "compile")
	h.AddFile("build", "notes.txt", "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(h.JobDir("build"), "nested.log"), 0755))

	src := NewDirSource(h.Root, h.JobDirSuffix, h.Extension)
	steps, err := src.StepLogs("build")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "1-compile", steps[0].Name)
	assert.Equal(t, "2-archive", steps[1].Name)

	content, err := src.ReadStep(steps[0])
	require.NoError(t, err)
	assert.Equal(t, "compile", content)
}

func TestDirSource_MissingJobDir(t *testing.T) {
	src := NewDirSource(t.TempDir(), "-logs", ".log")

	steps, err := src.StepLogs("lint")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestDirSource_ReadStepMissingFile(t *testing.T) {
	src := NewDirSource(t.TempDir(), "-logs", ".log")

	_, err := src.ReadStep(StepLog{Name: "gone", Path: filepath.Join(t.TempDir(), "gone.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
