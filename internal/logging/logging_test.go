package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "", expected: slog.LevelInfo},
		{input: "WARN", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "loud", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestInit_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, slog.LevelWarn)
	t.Cleanup(func() { Init(nil, slog.LevelInfo) })

	Info("hidden")
	Warn("skipping unreadable log", "path", "build-logs/compile.log")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "skipping unreadable log")
	assert.Contains(t, out, "path=build-logs/compile.log")
}

func TestInitFile_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	require.NoError(t, InitFile(&buf, slog.LevelWarn, path))
	Debug("analyzed step", "step", "compile")
	require.NoError(t, Close())
	t.Cleanup(func() { Init(nil, slog.LevelInfo) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"analyzed step"`)
	assert.Empty(t, buf.String())
}
