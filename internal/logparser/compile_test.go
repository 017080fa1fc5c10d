package logparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCompilationErrors_Single(t *testing.T) {
	e := newTestExtractor()

	input := `CompileSwift normal arm64 /src/a.swift
/src/a.swift:10:3: error: missing return
    }
    ^`

	errs := e.ExtractCompilationErrors(e.Lines(input))
	require.Len(t, errs, 1)

	assert.Equal(t, "/src/a.swift", errs[0].File)
	assert.Equal(t, 10, errs[0].Line)
	assert.Equal(t, 3, errs[0].Column)
	assert.Equal(t, KindError, errs[0].Kind)
	assert.Equal(t, "missing return", errs[0].Message)
	assert.Equal(t, []string{
		"CompileSwift normal arm64 /src/a.swift",
		"/src/a.swift:10:3: error: missing return",
		"    }",
		"    ^",
	}, errs[0].Context)
}

func TestExtractCompilationErrors_Warning(t *testing.T) {
	e := newTestExtractor()

	errs := e.ExtractCompilationErrors(e.Lines(`/src/b.swift:4:12: warning: variable 'x' was never used`))
	require.Len(t, errs, 1)
	assert.Equal(t, KindWarning, errs[0].Kind)
	assert.Equal(t, 4, errs[0].Line)
	assert.Equal(t, 12, errs[0].Column)
}

func TestExtractCompilationErrors_RepeatedDiagnostics(t *testing.T) {
	e := newTestExtractor()

	input := `/src/a.swift:10:3: error: missing return
/src/a.swift:10:3: error: missing return`

	errs := e.ExtractCompilationErrors(e.Lines(input))
	assert.Len(t, errs, 2)
}

func TestExtractCompilationErrors_RejectsLooseMatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "relative path", input: "src/a.swift:10:3: error: missing return"},
		{name: "not at line start", input: "note /src/a.swift:10:3: error: missing return"},
		{name: "missing column", input: "/src/a.swift:10: error: missing return"},
		{name: "unknown kind", input: "/src/a.swift:10:3: note: see declaration"},
		{name: "generic error", input: "error: linker command failed"},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, e.ExtractCompilationErrors(e.Lines(tt.input)))
		})
	}
}

func TestExtractCompilationErrors_ContextClampedAtEdges(t *testing.T) {
	e := newTestExtractor()

	errs := e.ExtractCompilationErrors(e.Lines("/src/a.swift:1:1: error: first\ntrailer"))
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"/src/a.swift:1:1: error: first", "trailer"}, errs[0].Context)
}

func TestExtractCompilationErrors_TimestampedLog(t *testing.T) {
	e := newTestExtractor()

	input := "2026-01-26T14:49:40.7760945Z /src/a.swift:10:3: error: missing return"
	errs := e.ExtractCompilationErrors(e.Lines(input))
	require.Len(t, errs, 1)
	assert.Equal(t, "/src/a.swift", errs[0].File)
}
