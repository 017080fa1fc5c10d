package render

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/newhook/ci-feedback/internal/logparser"
	"github.com/newhook/ci-feedback/internal/summary"
)

const (
	// topErrorsPerStep and topErrorsTotal bound the "Top Errors" list.
	topErrorsPerStep = 5
	topErrorsTotal   = 30
	// topErrorWidth is the display width of one "Top Errors" entry.
	topErrorWidth = 100
	// CommentMarker identifies digests posted as CI comments.
	CommentMarker = "<!-- ci-feedback -->"
)

// Markdown renders the human-readable digest.
func Markdown(s *summary.RunSummary, jsonFile string) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	if s.OverallConclusion == summary.ConclusionSuccess {
		line("# ✅ CI Passed")
	} else {
		line("# ❌ CI Failed (%s)", s.OverallConclusion)
	}
	line("")
	line("**Run**: [%s](%s)", s.RunID, s.RunURL)
	line("**Commit**: `%s`", shortSHA(s.SHA))
	line("**Branch**: `%s`", s.Branch)
	if s.PRNumber != nil {
		line("**PR**: #%s", *s.PRNumber)
	}
	line("**Time**: %s", s.Timestamp)
	line("")

	line("## Job Results")
	line("")
	for _, job := range s.Jobs {
		line("- %s **%s**: %s%s", conclusionIcon(job.Conclusion), job.JobName, job.Conclusion, countsSuffix(job))
	}
	line("")

	if s.TotalCompilationErrors+s.TotalTestFailures+s.TotalLintViolations > 0 {
		line("## 📊 Totals")
		line("")
		line("| Compilation errors | Test failures | Lint violations |")
		line("|---|---|---|")
		line("| %d | %d | %d |", s.TotalCompilationErrors, s.TotalTestFailures, s.TotalLintViolations)
		line("")
	}

	var failed []summary.JobResult
	for _, job := range s.Jobs {
		if len(job.FailedSteps) > 0 {
			failed = append(failed, job)
		}
	}

	if len(failed) > 0 {
		line("## ❌ Failures")
		line("")
		for _, job := range failed {
			line("### %s", job.JobName)
			line("")
			for _, step := range job.FailedSteps {
				writeStep(&b, step)
			}
		}
		writeTopErrors(&b, failed)
	}

	line("## 📦 Artifacts")
	line("")
	line("The following artifacts may be available:")
	for _, a := range s.Artifacts {
		line("- `%s` (`%s`)", a.Name, a.Path)
	}
	line("")

	line("## 📄 Detailed Results")
	line("")
	line("Full structured results: `%s` in branch `%s`", jsonFile, s.Branch)
	line("")
	line("---")
	b.WriteString(CommentMarker)
	b.WriteByte('\n')
	return b.String()
}

func writeStep(b *strings.Builder, step summary.FailedStep) {
	fmt.Fprintf(b, "#### Step: `%s`\n\n", step.StepName)

	if len(step.LogExcerpt) > 0 {
		fence := codeFence(step.LogExcerpt)
		b.WriteString(fence + "\n")
		for _, l := range step.LogExcerpt {
			b.WriteString(l)
			b.WriteByte('\n')
		}
		b.WriteString(fence + "\n\n")
	}

	if len(step.CompilationErrors) > 0 {
		b.WriteString("**Compilation diagnostics**\n\n")
		for _, ce := range step.CompilationErrors {
			fmt.Fprintf(b, "- %s `%s` %s\n", ce.Kind, location(ce.File, ce.Line, ce.Column), ce.Message)
		}
		b.WriteByte('\n')
	}

	if len(step.TestFailures) > 0 {
		b.WriteString("**Test failures**\n\n")
		for _, tf := range step.TestFailures {
			fmt.Fprintf(b, "- `%s.%s`", tf.TestName, tf.TestCase)
			if tf.File != "" {
				fmt.Fprintf(b, " at `%s`", location(tf.File, tf.Line, 0))
			}
			fmt.Fprintf(b, ": %s\n", strings.ReplaceAll(tf.Message, "\n", "; "))
		}
		b.WriteByte('\n')
	}

	if len(step.LintViolations) > 0 {
		b.WriteString("**Lint violations**\n\n")
		groups := logparser.GroupByRule(step.LintViolations)
		rules := make([]string, 0, len(groups))
		for rule := range groups {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			fmt.Fprintf(b, "- `%s` (%d)\n", rule, len(groups[rule]))
			for _, v := range groups[rule] {
				fmt.Fprintf(b, "  - `%s`\n", v.String())
			}
		}
		b.WriteByte('\n')
	}
}

func writeTopErrors(b *strings.Builder, failed []summary.JobResult) {
	total := 0
	for _, job := range failed {
		for _, step := range job.FailedSteps {
			total += len(step.LogExcerpt)
		}
	}

	b.WriteString("## 🔍 Top Errors\n\n")
	count := 0
	for _, job := range failed {
		for _, step := range job.FailedSteps {
			for i, l := range step.LogExcerpt {
				if i >= topErrorsPerStep {
					break
				}
				if count >= topErrorsTotal {
					fmt.Fprintf(b, "- _(... and %d more errors)_\n\n", total-count)
					return
				}
				fmt.Fprintf(b, "- `%s`\n", truncate.StringWithTail(l, topErrorWidth, "..."))
				count++
			}
		}
	}
	b.WriteByte('\n')
}

// codeFence returns a backtick fence longer than any backtick run in lines.
func codeFence(lines []string) string {
	longest := 0
	for _, l := range lines {
		run := 0
		for _, r := range l {
			if r != '`' {
				run = 0
				continue
			}
			run++
			longest = max(longest, run)
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

// WriteMarkdownFile writes the digest to path.
func WriteMarkdownFile(path string, s *summary.RunSummary, jsonFile string) error {
	if err := os.WriteFile(path, []byte(Markdown(s, jsonFile)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func conclusionIcon(c summary.Conclusion) string {
	switch c {
	case summary.ConclusionSuccess:
		return "✅"
	case summary.ConclusionFailure:
		return "❌"
	case summary.ConclusionCancelled:
		return "🚫"
	default:
		return "⚠️"
	}
}

func countsSuffix(job summary.JobResult) string {
	if job.ErrorCount == 0 && job.WarningCount == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d errors, %d warnings)", job.ErrorCount, job.WarningCount)
}

func location(file string, line, col int) string {
	switch {
	case line > 0 && col > 0:
		return fmt.Sprintf("%s:%d:%d", file, line, col)
	case line > 0:
		return fmt.Sprintf("%s:%d", file, line)
	default:
		return file
	}
}
