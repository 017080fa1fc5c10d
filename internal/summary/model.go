// Package summary rolls per-step log findings up into job and run reports.
package summary

import (
	"strings"

	"github.com/newhook/ci-feedback/internal/logparser"
)

// Conclusion is the terminal status of a job or run.
type Conclusion string

const (
	ConclusionSuccess   Conclusion = "success"
	ConclusionFailure   Conclusion = "failure"
	ConclusionCancelled Conclusion = "cancelled"
	ConclusionSkipped   Conclusion = "skipped"
	ConclusionPartial   Conclusion = "partial"
	ConclusionUnknown   Conclusion = "unknown"
)

// ParseConclusion normalizes a job result string. Anything that is not a
// known job conclusion becomes ConclusionUnknown.
func ParseConclusion(s string) Conclusion {
	switch c := Conclusion(strings.ToLower(strings.TrimSpace(s))); c {
	case ConclusionSuccess, ConclusionFailure, ConclusionCancelled, ConclusionSkipped:
		return c
	default:
		return ConclusionUnknown
	}
}

// Error kind keys used in FailedStep.ErrorSummary.
const (
	KindCompilationError     = "compilation_error"
	KindCompilationWarning   = "compilation_warning"
	KindTestFailure          = "test_failure"
	KindLintError            = "lint_error"
	KindLintWarning          = "lint_warning"
	KindUncategorizedFailure = "uncategorized_failure"
)

// FailedStep is one step log that carried error signal.
type FailedStep struct {
	StepName          string                       `json:"step_name"`
	LogExcerpt        []string                     `json:"log_excerpt"`
	LogTail           []string                     `json:"log_tail"`
	CompilationErrors []logparser.CompilationError `json:"compilation_errors"`
	TestFailures      []logparser.TestFailure      `json:"test_failures"`
	LintViolations    []logparser.LintViolation    `json:"lint_violations"`
	ErrorSummary      map[string]int               `json:"error_summary"`
}

// JobResult is the report for one CI job.
type JobResult struct {
	JobName      string       `json:"job_name"`
	Conclusion   Conclusion   `json:"conclusion"`
	FailedSteps  []FailedStep `json:"failed_steps"`
	ErrorCount   int          `json:"error_count"`
	WarningCount int          `json:"warning_count"`
}

// ArtifactInfo references an artifact the CI run is expected to publish.
type ArtifactInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// RunSummary is the report for a whole CI run.
type RunSummary struct {
	RunID                  string         `json:"run_id"`
	RunURL                 string         `json:"run_url"`
	SHA                    string         `json:"sha"`
	Branch                 string         `json:"branch"`
	PRNumber               *string        `json:"pr_number"`
	OverallConclusion      Conclusion     `json:"overall_conclusion"`
	Timestamp              string         `json:"timestamp"`
	Jobs                   []JobResult    `json:"jobs"`
	Artifacts              []ArtifactInfo `json:"artifacts"`
	TotalCompilationErrors int            `json:"total_compilation_errors"`
	TotalTestFailures      int            `json:"total_test_failures"`
	TotalLintViolations    int            `json:"total_lint_violations"`
}

// RunMetadata identifies the CI run being summarized.
type RunMetadata struct {
	RunID    string
	RunURL   string
	SHA      string
	Branch   string
	PRNumber *string
}

// ParsePRNumber maps the "none" sentinel and empty input to no PR.
func ParsePRNumber(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil
	}
	return &s
}
