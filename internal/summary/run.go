package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/newhook/ci-feedback/internal/logparser"
)

// TimestampFormat is the layout of RunSummary.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Totals are run-wide record counts.
type Totals struct {
	CompilationErrors int
	TestFailures      int
	LintViolations    int
}

// RunTotals counts error-kind compiler diagnostics, test failures and
// error-severity lint violations across every step of every job.
func RunTotals(jobs []JobResult) Totals {
	var t Totals
	for _, job := range jobs {
		for _, step := range job.FailedSteps {
			for _, ce := range step.CompilationErrors {
				if ce.Kind == logparser.KindError {
					t.CompilationErrors++
				}
			}
			t.TestFailures += len(step.TestFailures)
			for _, lv := range step.LintViolations {
				if lv.Severity == logparser.KindError {
					t.LintViolations++
				}
			}
		}
	}
	return t
}

// Generator produces the RunSummary for one CI run.
type Generator struct {
	jobs      *JobAggregator
	artifacts []ArtifactInfo
	now       func() time.Time
}

// NewGenerator creates a Generator. artifacts is the declared artifact list
// attached to every summary as is.
func NewGenerator(jobs *JobAggregator, artifacts []ArtifactInfo) *Generator {
	return &Generator{jobs: jobs, artifacts: artifacts, now: time.Now}
}

// WithClock replaces the clock used for the summary timestamp.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds one JobResult per declared job, in declaration order, and
// the run-level conclusion and totals.
func (g *Generator) Generate(ctx context.Context, meta RunMetadata, jobs []JobInput) (*RunSummary, error) {
	results := make([]JobResult, 0, len(jobs))
	for _, job := range jobs {
		result, err := g.jobs.BuildJobResult(ctx, job)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize job %s: %w", job.Name, err)
		}
		results = append(results, result)
	}

	totals := RunTotals(results)
	artifacts := append([]ArtifactInfo{}, g.artifacts...)

	return &RunSummary{
		RunID:                  meta.RunID,
		RunURL:                 meta.RunURL,
		SHA:                    meta.SHA,
		Branch:                 meta.Branch,
		PRNumber:               meta.PRNumber,
		OverallConclusion:      OverallConclusion(results),
		Timestamp:              g.now().UTC().Format(TimestampFormat),
		Jobs:                   results,
		Artifacts:              artifacts,
		TotalCompilationErrors: totals.CompilationErrors,
		TotalTestFailures:      totals.TestFailures,
		TotalLintViolations:    totals.LintViolations,
	}, nil
}
