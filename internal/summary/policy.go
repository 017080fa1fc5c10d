package summary

import (
	"fmt"
	"strings"

	"github.com/newhook/ci-feedback/internal/logparser"
)

// JobKind selects which dialect extractors run over a job's logs.
type JobKind string

const (
	JobKindBuild   JobKind = "build"
	JobKindTest    JobKind = "test"
	JobKindLint    JobKind = "lint"
	JobKindGeneric JobKind = "generic"
)

// InferJobKind returns the configured kind, or guesses it from the job name.
func InferJobKind(name, configured string) JobKind {
	switch k := JobKind(strings.ToLower(configured)); k {
	case JobKindBuild, JobKindTest, JobKindLint, JobKindGeneric:
		return k
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "lint"):
		return JobKindLint
	case strings.Contains(lower, "test"):
		return JobKindTest
	case strings.Contains(lower, "build"):
		return JobKindBuild
	default:
		return JobKindGeneric
	}
}

// RunsCompiler reports whether compiler diagnostics are extracted for the kind.
// Test jobs compile too, so both build and test jobs do.
func (k JobKind) RunsCompiler() bool {
	return k == JobKindBuild || k == JobKindTest
}

// RunsTests reports whether test failures are extracted for the kind.
func (k JobKind) RunsTests() bool {
	return k == JobKindTest
}

// RunsLint reports whether lint violations are extracted for the kind.
func (k JobKind) RunsLint() bool {
	return k == JobKindLint
}

// PlaceholderStep is the step reported for a failed job that produced no
// step with extractable detail.
func PlaceholderStep(jobName string) FailedStep {
	return FailedStep{
		StepName:          fmt.Sprintf("%s (general)", jobName),
		LogExcerpt:        []string{fmt.Sprintf("Job %s failed but no detailed logs were captured", jobName)},
		LogTail:           []string{},
		CompilationErrors: []logparser.CompilationError{},
		TestFailures:      []logparser.TestFailure{},
		LintViolations:    []logparser.LintViolation{},
		ErrorSummary:      map[string]int{KindUncategorizedFailure: 1},
	}
}

// OverallConclusion derives the run conclusion from its jobs: any failure
// wins, then any cancellation; all-success is success; anything else is
// partial.
func OverallConclusion(jobs []JobResult) Conclusion {
	allSuccess := true
	cancelled := false
	for _, job := range jobs {
		switch job.Conclusion {
		case ConclusionFailure:
			return ConclusionFailure
		case ConclusionCancelled:
			cancelled = true
		}
		if job.Conclusion != ConclusionSuccess {
			allSuccess = false
		}
	}
	if cancelled {
		return ConclusionCancelled
	}
	if allSuccess {
		return ConclusionSuccess
	}
	return ConclusionPartial
}

// stepCounts returns the errors and warnings a step contributes to its job.
func stepCounts(step FailedStep) (errors, warnings int) {
	for _, ce := range step.CompilationErrors {
		switch ce.Kind {
		case logparser.KindError:
			errors++
		case logparser.KindWarning:
			warnings++
		}
	}
	for _, lv := range step.LintViolations {
		switch lv.Severity {
		case logparser.KindError:
			errors++
		case logparser.KindWarning:
			warnings++
		}
	}
	errors += len(step.TestFailures)
	errors += step.ErrorSummary[KindUncategorizedFailure]
	return errors, warnings
}

// errorSummary counts a step's records by kind. Zero counts are omitted.
func errorSummary(step FailedStep) map[string]int {
	out := make(map[string]int)
	for _, ce := range step.CompilationErrors {
		if ce.Kind == logparser.KindWarning {
			out[KindCompilationWarning]++
		} else {
			out[KindCompilationError]++
		}
	}
	if n := len(step.TestFailures); n > 0 {
		out[KindTestFailure] = n
	}
	for _, lv := range step.LintViolations {
		if lv.Severity == logparser.KindWarning {
			out[KindLintWarning]++
		} else {
			out[KindLintError]++
		}
	}
	return out
}
