package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactsHarness_AddStep(t *testing.T) {
	h := NewArtifactsHarness(t)

	path := h.AddStep("build", "1_Compile", "error: boom")
	assert.Equal(t, filepath.Join(h.Root, "build-logs", "1_Compile.log"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "error: boom", string(data))
}

func TestArtifactsHarness_AddLines(t *testing.T) {
	h := NewArtifactsHarness(t)

	data, err := os.ReadFile(h.AddLines("lint", "1_Lint", "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}

func TestArtifactsHarness_SetResult(t *testing.T) {
	h := NewArtifactsHarness(t)
	h.SetResult("unit-tests", "failure")
	assert.Equal(t, "failure", os.Getenv("UNIT_TESTS_RESULT"))
}

func TestResultEnv(t *testing.T) {
	assert.Equal(t, "BUILD_RESULT", ResultEnv("build"))
	assert.Equal(t, "UI_TESTS_2_RESULT", ResultEnv("ui tests.2"))
}
