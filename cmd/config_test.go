package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/newhook/ci-feedback/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveConfig_FillsDefaults(t *testing.T) {
	got := effectiveConfig(&config.Config{Jobs: []config.JobConfig{{Name: "unit-tests"}}})

	require.NotNil(t, got.Extract.MaxExcerptLines)
	assert.Equal(t, 10, *got.Extract.MaxExcerptLines)
	assert.Equal(t, 4, *got.Extract.Workers)
	assert.Equal(t, "-logs", *got.Layout.JobDirSuffix)
	assert.Equal(t, "summary.json", got.Output.JSONFile)

	require.Len(t, got.Jobs, 1)
	assert.Equal(t, "test", got.Jobs[0].Kind)
	assert.Equal(t, "UNIT_TESTS_RESULT", got.Jobs[0].ResultEnv)
	assert.Len(t, got.Artifacts, len(config.DefaultArtifactNames))
}

func TestEffectiveConfig_DoesNotMutateInput(t *testing.T) {
	in := &config.Config{Jobs: []config.JobConfig{{Name: "lint"}}}
	_ = effectiveConfig(in)
	assert.Empty(t, in.Jobs[0].ResultEnv)
	assert.Nil(t, in.Extract.Workers)
}

func TestEffectiveConfig_RoundTripsThroughTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, toml.NewEncoder(&buf).Encode(effectiveConfig(&config.Config{})))

	var decoded config.Config
	_, err := toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	assert.NoError(t, decoded.Validate())
	assert.Len(t, decoded.Jobs, 3)
}

func TestConfigShow_Output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effective.toml")
	t.Cleanup(func() { flagShowOutput = "" })

	out, err := executeForTest(t, "config", "show", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Extract.GetMaxExcerptLines())
	require.NotNil(t, loaded.Extract.Workers)
	assert.Equal(t, 4, *loaded.Extract.Workers)
	assert.Len(t, loaded.Jobs, 3)
	assert.Equal(t, "BUILD_RESULT", loaded.Jobs[0].ResultEnv)
}
