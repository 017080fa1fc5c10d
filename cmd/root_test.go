package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/newhook/ci-feedback/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeForTest(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig, flagLogFile, flagLogLevel = "", "", "warn"
		rootCmd.SetArgs(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func TestExecute_FailedRunReleasesResources(t *testing.T) {
	h := testutil.NewArtifactsHarness(t)
	h.AddStep("build", "1_Build", "/src/a.swift:10:3: error: missing return")
	h.SetResult("build", "failure")
	h.SetResult("test", "success")
	h.SetResult("lint", "success")

	logPath := filepath.Join(t.TempDir(), "debug.log")
	output := t.TempDir()

	_, err := executeForTest(t, "generate", h.Root, output, "5", "https://ci.example/run/5", "abc", "main", "none",
		"--log-level", "error", "--log-file", logPath)
	require.ErrorIs(t, err, ErrRunFailed)

	assert.ErrorIs(t, GetContext().Err(), context.Canceled)
	assert.FileExists(t, filepath.Join(output, "summary.json"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generated CI feedback")
	assert.NotContains(t, string(data), "command failed")
}

func TestExecute_LogsCommandErrors(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")

	_, err := executeForTest(t, "config", "show",
		"--config", filepath.Join(t.TempDir(), "missing.toml"),
		"--log-level", "error", "--log-file", logPath)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRunFailed)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "command failed")
}
