package summary

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/newhook/ci-feedback/internal/logging"
)

// JobInput declares one job of the run.
type JobInput struct {
	Name       string
	Conclusion Conclusion
	Kind       JobKind
}

// JobAggregator builds JobResults from a job's step logs.
type JobAggregator struct {
	source   LogSource
	analyzer *Analyzer
	workers  int
}

// NewJobAggregator creates a JobAggregator analyzing up to workers step logs
// at once.
func NewJobAggregator(source LogSource, analyzer *Analyzer, workers int) *JobAggregator {
	return &JobAggregator{source: source, analyzer: analyzer, workers: max(1, workers)}
}

// BuildJobResult analyzes every step log of the job.
//
// A step is kept when it produced a record, or when the job failed and the
// step has any excerpt at all. A failed job with no kept step gets a single
// placeholder step. Unreadable logs are logged and skipped. The only error
// returned is ctx's.
func (j *JobAggregator) BuildJobResult(ctx context.Context, job JobInput) (JobResult, error) {
	log := logging.With("job", job.Name, "kind", job.Kind)

	steps, err := j.source.StepLogs(job.Name)
	if err != nil {
		logging.WarnContext(ctx, "could not list step logs", "job", job.Name, "error", err)
		steps = nil
	}

	// Each task owns one slot; counts are reduced afterwards.
	found := make([]*FailedStep, len(steps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)
	for i, step := range steps {
		i, step := i, step
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := j.source.ReadStep(step)
			if err != nil {
				logging.WarnContext(gctx, "could not parse step log", "job", job.Name, "step", step.Name, "path", step.Path, "error", err)
				return nil
			}
			analysis := j.analyzer.Analyze(gctx, job.Kind, content)
			if !retainStep(analysis, job.Conclusion) {
				log.Debug("step has no records", "step", step.Name)
				return nil
			}
			fs := newFailedStep(step.Name, analysis, job.Conclusion)
			found[i] = &fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return JobResult{}, err
	}

	return reduceJob(job, found), nil
}

// retainStep decides whether a step appears in its job's report.
func retainStep(analysis StepAnalysis, conclusion Conclusion) bool {
	if analysis.HasRecords() {
		return true
	}
	if conclusion != ConclusionFailure {
		return false
	}
	return len(analysis.Excerpt.Lines) > 0
}

// reduceJob assembles a JobResult from per-step results in step order.
func reduceJob(job JobInput, found []*FailedStep) JobResult {
	result := JobResult{
		JobName:     job.Name,
		Conclusion:  job.Conclusion,
		FailedSteps: []FailedStep{},
	}
	for _, fs := range found {
		if fs != nil {
			result.FailedSteps = append(result.FailedSteps, *fs)
		}
	}

	if job.Conclusion == ConclusionFailure && len(result.FailedSteps) == 0 {
		logging.Info("failed job has no step detail, using placeholder", "job", job.Name)
		result.FailedSteps = append(result.FailedSteps, PlaceholderStep(job.Name))
	}

	for _, fs := range result.FailedSteps {
		errs, warns := stepCounts(fs)
		result.ErrorCount += errs
		result.WarningCount += warns
	}
	return result
}

// newFailedStep builds the reported step. A step of a failed job that
// produced no record counts as one uncategorized failure.
func newFailedStep(name string, analysis StepAnalysis, conclusion Conclusion) FailedStep {
	fs := FailedStep{
		StepName:          name,
		LogExcerpt:        orEmpty(analysis.Excerpt.Lines),
		LogTail:           orEmpty(analysis.Tail),
		CompilationErrors: orEmpty(analysis.CompilationErrors),
		TestFailures:      orEmpty(analysis.TestFailures),
		LintViolations:    orEmpty(analysis.LintViolations),
	}
	fs.ErrorSummary = errorSummary(fs)
	if conclusion == ConclusionFailure && !analysis.HasRecords() {
		fs.ErrorSummary[KindUncategorizedFailure] = 1
	}
	return fs
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
