package logparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NegativeLimitsClamped(t *testing.T) {
	e := New(nil, Options{
		MaxExcerptLines:       10,
		ContextBefore:         -3,
		ContextAfter:          -5,
		TailLines:             -1,
		CompilerContextBefore: -2,
		CompilerContextAfter:  -4,
		TestSearchWindow:      -20,
	})

	opts := e.Options()
	assert.Zero(t, opts.ContextBefore)
	assert.Zero(t, opts.ContextAfter)
	assert.Zero(t, opts.TailLines)
	assert.Zero(t, opts.CompilerContextBefore)
	assert.Zero(t, opts.CompilerContextAfter)
	assert.Zero(t, opts.TestSearchWindow)

	lines := e.Lines("before\nerror: boom\n/src/a.swift:1:2: error: bad\nafter")
	require.NotPanics(t, func() {
		excerpt := e.ExtractErrors(lines)
		assert.Equal(t, []string{"error: boom", "/src/a.swift:1:2: error: bad"}, excerpt.Lines)
	})
	require.NotPanics(t, func() {
		errs := e.ExtractCompilationErrors(lines)
		require.Len(t, errs, 1)
		assert.Equal(t, []string{"/src/a.swift:1:2: error: bad"}, errs[0].Context)
	})
	assert.Empty(t, e.ExtractTail(lines))
}
