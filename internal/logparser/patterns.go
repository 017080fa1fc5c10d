package logparser

import (
	"regexp"
	"sync"
)

// Library is the fixed set of recognizers used by the extractors. It is
// built once and only read afterwards, so one Library may be shared by any
// number of goroutines.
type Library struct {
	// ErrorMarkers are the loose, case-insensitive generic error markers.
	ErrorMarkers []*regexp.Regexp
	// Exclude matches lines that never count as error lines.
	Exclude []*regexp.Regexp

	// Compiler diagnostic: /abs/path:line:col: error|warning: message
	Compiler *regexp.Regexp
	// TestCase result marker: Test Case '-[Target.Class method]' failed|passed
	TestCase *regexp.Regexp
	// TestCaseAny matches any test case marker line, including "started".
	TestCaseAny *regexp.Regexp
	// Assertion: /abs/path:line: error: -[method] : message
	Assertion *regexp.Regexp
	// Lint: /abs/path:line[:col]: error|warning: (rule) message
	Lint *regexp.Regexp
	// LintTrailing: /abs/path:line[:col]: error|warning: message (rule)
	LintTrailing *regexp.Regexp
}

var (
	defaultLibrary     *Library
	defaultLibraryOnce sync.Once
)

// DefaultLibrary returns the process-wide pattern library.
func DefaultLibrary() *Library {
	defaultLibraryOnce.Do(func() {
		defaultLibrary = NewLibrary()
	})
	return defaultLibrary
}

// NewLibrary compiles the pattern library.
func NewLibrary() *Library {
	return &Library{
		ErrorMarkers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)error:`),
			regexp.MustCompile(`(?i)failed:`),
			regexp.MustCompile(`(?i)failure:`),
			regexp.MustCompile(`(?i)\*\*\s*BUILD FAILED\s*\*\*`),
			regexp.MustCompile(`(?i)\*\*\s*TEST FAILED\s*\*\*`),
			regexp.MustCompile(`(?i)fatal:`),
			regexp.MustCompile(`(?i)exception:`),
			regexp.MustCompile(`(?i)traceback`),
			regexp.MustCompile(`❌`),
			regexp.MustCompile(`⚠\x{FE0F}?.*(?i:error|fail)`),
		},
		Exclude: []*regexp.Regexp{
			regexp.MustCompile(`^\s*$`),
			regexp.MustCompile(`^[\s\-=]+$`),
		},
		Compiler:     regexp.MustCompile(`^(/[^:]+):(\d+):(\d+): (error|warning): (.+)$`),
		TestCase:     regexp.MustCompile(`^Test Case '-\[([^\]\s]+) ([^\]\s]+)\]' (failed|passed)`),
		TestCaseAny:  regexp.MustCompile(`^Test Case '-\[`),
		Assertion:    regexp.MustCompile(`^(/[^:]+):(\d+): error: -\[([^\]]+)\] : (.+)$`),
		Lint:         regexp.MustCompile(`^(/[^:]+):(\d+):(?:(\d+):)? (error|warning): \(([^)\s]+)\) (.+)$`),
		LintTrailing: regexp.MustCompile(`^(/[^:]+):(\d+):(?:(\d+):)? (error|warning): (.+) \(([\w.\-]+)\)$`),
	}
}

// IsErrorLine reports whether line carries any generic error marker.
func (l *Library) IsErrorLine(line string) bool {
	for _, p := range l.ErrorMarkers {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether line is noise (blank or separator-only).
func (l *Library) IsExcluded(line string) bool {
	for _, p := range l.Exclude {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
