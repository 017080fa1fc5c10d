package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/newhook/ci-feedback/internal/cachemanager"
	"github.com/newhook/ci-feedback/internal/logparser"
)

// StepAnalysis holds everything extracted from one step log.
type StepAnalysis struct {
	Excerpt           logparser.Excerpt
	Tail              []string
	CompilationErrors []logparser.CompilationError
	TestFailures      []logparser.TestFailure
	LintViolations    []logparser.LintViolation
}

// HasRecords reports whether any dialect extractor matched.
func (s StepAnalysis) HasRecords() bool {
	return len(s.CompilationErrors) > 0 || len(s.TestFailures) > 0 || len(s.LintViolations) > 0
}

// Analyzer runs the extractors appropriate to a job kind over step logs.
// Analyses are memoized by job kind and content digest, so byte-identical
// logs are scanned once.
type Analyzer struct {
	extractor *logparser.Extractor
	cache     cachemanager.CacheManager[string, StepAnalysis]
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(extractor *logparser.Extractor) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		cache: cachemanager.NewInMemoryCacheManager[string, StepAnalysis](
			cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval),
	}
}

// Analyze extracts records from content for a job of the given kind.
func (a *Analyzer) Analyze(ctx context.Context, kind JobKind, content string) StepAnalysis {
	sum := sha256.Sum256([]byte(content))
	key := string(kind) + ":" + hex.EncodeToString(sum[:])
	if cached, ok := a.cache.Get(ctx, key); ok {
		return cached
	}

	analysis := a.analyze(kind, content)
	a.cache.Set(ctx, key, analysis, cachemanager.NoExpiration)
	return analysis
}

func (a *Analyzer) analyze(kind JobKind, content string) StepAnalysis {
	e := a.extractor
	lines := e.Lines(content)

	analysis := StepAnalysis{
		Excerpt: e.ExtractErrors(lines),
		Tail:    e.ExtractTail(lines),
	}
	if kind.RunsTests() {
		analysis.TestFailures = e.ExtractTestFailures(lines)
	}
	if kind.RunsCompiler() {
		analysis.CompilationErrors = e.ExtractCompilationErrors(lines)
	}
	if kind.RunsLint() {
		analysis.LintViolations = e.ExtractLintViolations(lines)
	}
	return analysis
}
