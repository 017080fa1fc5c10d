// Package logparser turns raw CI log text into typed error records.
//
// Every extractor is a pure function of the log text and the Extractor's
// options: running one twice over identical input yields identical output.
package logparser

// Kind values shared by compiler diagnostics and lint violations.
const (
	KindError   = "error"
	KindWarning = "warning"
)

// CompilationError is a compiler diagnostic with file location.
type CompilationError struct {
	File    string   `json:"file"`
	Line    int      `json:"line,omitempty"`   // 0 when unknown
	Column  int      `json:"column,omitempty"` // 0 when unknown
	Kind    string   `json:"error_type"`       // "error" or "warning"
	Message string   `json:"message"`
	Context []string `json:"context"`
}

// TestFailure is a failed test case and the best message found for it.
type TestFailure struct {
	TestName string `json:"test_name"` // e.g. "MyAppTests.FooTests"
	TestCase string `json:"test_case"` // e.g. "testBar"
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// LintViolation is a single linter finding.
type LintViolation struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"` // 0 when unknown
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error" or "warning"
}

// Excerpt is the result of generic error-line extraction.
type Excerpt struct {
	Lines []string
	// Matched reports whether any generic error marker was found. When false,
	// Lines holds the tail fallback.
	Matched bool
}
