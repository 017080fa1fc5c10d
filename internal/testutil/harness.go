package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ArtifactsHarness builds an artifacts directory for a test run.
type ArtifactsHarness struct {
	T *testing.T
	// Root is the artifacts directory.
	Root string
	// JobDirSuffix and Extension describe the layout. They default to
	// "-logs" and ".log".
	JobDirSuffix string
	Extension    string
}

// NewArtifactsHarness creates a harness rooted at a fresh temp directory.
func NewArtifactsHarness(t *testing.T) *ArtifactsHarness {
	t.Helper()
	return &ArtifactsHarness{
		T:            t,
		Root:         t.TempDir(),
		JobDirSuffix: "-logs",
		Extension:    ".log",
	}
}

// JobDir returns the directory holding a job's step logs.
func (h *ArtifactsHarness) JobDir(job string) string {
	return filepath.Join(h.Root, job+h.JobDirSuffix)
}

// AddStep writes a step log for job and returns its path.
func (h *ArtifactsHarness) AddStep(job, step, content string) string {
	h.T.Helper()
	return h.AddFile(job, step+h.Extension, content)
}

// AddFile writes an arbitrary file into a job's log directory.
func (h *ArtifactsHarness) AddFile(job, name, content string) string {
	h.T.Helper()
	dir := h.JobDir(job)
	require.NoError(h.T, os.MkdirAll(dir, 0755), "failed to create job dir")
	path := filepath.Join(dir, name)
	require.NoError(h.T, os.WriteFile(path, []byte(content), 0644), "failed to write %s", path)
	return path
}

// AddLines writes a step log from individual lines.
func (h *ArtifactsHarness) AddLines(job, step string, lines ...string) string {
	h.T.Helper()
	return h.AddStep(job, step, strings.Join(lines, "\n")+"\n")
}

// SetResult sets the job's conclusion variable for the rest of the test.
func (h *ArtifactsHarness) SetResult(job, conclusion string) {
	h.T.Helper()
	h.T.Setenv(ResultEnv(job), conclusion)
}

// ResultEnv returns the default conclusion variable for a job name.
func ResultEnv(job string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToUpper(job))
	return name + "_RESULT"
}
