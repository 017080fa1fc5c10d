package logparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLintViolations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LintViolation
	}{
		{
			name:  "rule before message",
			input: `/src/a.swift:12:5: warning: (line_length) Line should be 120 characters or less`,
			expected: LintViolation{
				File: "/src/a.swift", Line: 12, Column: 5,
				Rule: "line_length", Message: "Line should be 120 characters or less", Severity: KindWarning,
			},
		},
		{
			name:  "rule after message",
			input: `/src/a.swift:3:1: error: Force Cast Violation: Force casts should be avoided (force_cast)`,
			expected: LintViolation{
				File: "/src/a.swift", Line: 3, Column: 1,
				Rule: "force_cast", Message: "Force Cast Violation: Force casts should be avoided", Severity: KindError,
			},
		},
		{
			name:  "no column",
			input: `/src/b.swift:7: warning: (trailing_whitespace) Lines should not have trailing whitespace`,
			expected: LintViolation{
				File: "/src/b.swift", Line: 7,
				Rule: "trailing_whitespace", Message: "Lines should not have trailing whitespace", Severity: KindWarning,
			},
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := e.ExtractLintViolations(e.Lines(tt.input))
			require.Len(t, violations, 1)
			assert.Equal(t, tt.expected, violations[0])
		})
	}
}

func TestExtractLintViolations_NoDedup(t *testing.T) {
	e := newTestExtractor()

	input := `/src/a.swift:12:5: warning: (line_length) too long
/src/a.swift:12:5: warning: (line_length) too long
Linting Swift files
Done linting! Found 2 violations.`

	violations := e.ExtractLintViolations(e.Lines(input))
	assert.Len(t, violations, 2)
}

func TestExtractLintViolations_RelativePathIgnored(t *testing.T) {
	e := newTestExtractor()

	assert.Empty(t, e.ExtractLintViolations(e.Lines(`src/a.swift:12:5: warning: (line_length) too long`)))
}

func TestLintViolationString(t *testing.T) {
	v := LintViolation{File: "/a.swift", Line: 1, Column: 2, Rule: "r", Message: "m", Severity: KindError}
	assert.Equal(t, "/a.swift:1:2: error: m (r)", v.String())

	v.Column = 0
	assert.Equal(t, "/a.swift:1: error: m (r)", v.String())
}

func TestGroupByRule(t *testing.T) {
	groups := GroupByRule([]LintViolation{
		{Rule: "a", Line: 1},
		{Rule: "b", Line: 2},
		{Rule: "a", Line: 3},
	})
	require.Len(t, groups, 2)
	assert.Len(t, groups["a"], 2)
	assert.Equal(t, 3, groups["a"][1].Line)
}
