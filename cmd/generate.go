package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/newhook/ci-feedback/internal/config"
	"github.com/newhook/ci-feedback/internal/logging"
	"github.com/newhook/ci-feedback/internal/logparser"
	"github.com/newhook/ci-feedback/internal/render"
	"github.com/newhook/ci-feedback/internal/summary"
	"github.com/spf13/cobra"
)

// ErrRunFailed is returned when the summarized run concluded with failure.
var ErrRunFailed = errors.New("CI run concluded with failure")

var (
	flagJobs []string
	flagHTML bool

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var generateCmd = &cobra.Command{
	Use:   "generate <artifacts-dir> <output-dir> <run-id> <run-url> <sha> <branch> <pr-number>",
	Short: "Generate summary.json and summary.md for a CI run",
	Long: `Generate the CI feedback reports for one run.

Step logs are read from <artifacts-dir>/<job>-logs/*.log. Job conclusions come
from the environment (BUILD_RESULT, TEST_RESULT, LINT_RESULT by default) and
may be overridden with --job name=conclusion. pr-number is "none" when the run
is not for a pull request.

Exits non-zero when the overall conclusion is failure.`,
	Args: cobra.ExactArgs(7),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&flagJobs, "job", nil, "job conclusion as name=conclusion (repeatable)")
	generateCmd.Flags().BoolVar(&flagHTML, "html", false, "also write an HTML digest")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := GetContext()
	cmd.SilenceUsage = true

	artifactsDir, outputDir := args[0], args[1]
	meta := summary.RunMetadata{
		RunID:    args[2],
		RunURL:   args[3],
		SHA:      args[4],
		Branch:   args[5],
		PRNumber: summary.ParsePRNumber(args[6]),
	}

	jobs, err := resolveJobs(cfg, flagJobs, os.Getenv)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating CI feedback for run %s\n", meta.RunID)
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("  Artifacts: %s", artifactsDir)))
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("  Output: %s", outputDir)))
	for _, job := range jobs {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("  Job %s (%s): %s", job.Name, job.Kind, job.Conclusion)))
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	generator := newGenerator(cfg, artifactsDir)
	runSummary, err := generator.Generate(ctx, meta, jobs)
	if err != nil {
		return err
	}

	jsonPath := filepath.Join(outputDir, cfg.Output.GetJSONFile())
	if err := render.WriteJSONFile(jsonPath, runSummary); err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render("✓ Wrote JSON summary to "+jsonPath))

	jsonRef := cfg.Output.GetArtifactPrefix() + "/" + cfg.Output.GetJSONFile()
	mdPath := filepath.Join(outputDir, cfg.Output.GetMarkdownFile())
	if err := render.WriteMarkdownFile(mdPath, runSummary, jsonRef); err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render("✓ Wrote markdown summary to "+mdPath))

	htmlFile := cfg.Output.HTMLFile
	if htmlFile == "" && flagHTML {
		htmlFile = "summary.html"
	}
	if htmlFile != "" {
		htmlPath := filepath.Join(outputDir, htmlFile)
		title := fmt.Sprintf("CI run %s: %s", meta.RunID, runSummary.OverallConclusion)
		if err := render.WriteHTMLFile(htmlPath, title, render.Markdown(runSummary, jsonRef)); err != nil {
			return err
		}
		fmt.Fprintln(out, okStyle.Render("✓ Wrote HTML summary to "+htmlPath))
	}

	logging.Info("generated CI feedback", "run_id", meta.RunID, "conclusion", runSummary.OverallConclusion,
		"compilation_errors", runSummary.TotalCompilationErrors,
		"test_failures", runSummary.TotalTestFailures,
		"lint_violations", runSummary.TotalLintViolations)

	if runSummary.OverallConclusion == summary.ConclusionFailure {
		fmt.Fprintln(out, failStyle.Render("✗ CI run failed"))
		return ErrRunFailed
	}
	fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("✓ CI feedback generation complete (%s)", runSummary.OverallConclusion)))
	return nil
}

// newGenerator wires the extraction pipeline from the configuration.
func newGenerator(c *config.Config, artifactsDir string) *summary.Generator {
	extractor := logparser.New(nil, c.Extract.Options())
	source := summary.NewDirSource(artifactsDir, c.Layout.GetJobDirSuffix(), c.Layout.GetLogExtension())
	aggregator := summary.NewJobAggregator(source, summary.NewAnalyzer(extractor), c.Extract.GetWorkers())

	var artifacts []summary.ArtifactInfo
	for _, a := range c.GetArtifacts() {
		artifacts = append(artifacts, summary.ArtifactInfo{Name: a.Name, Path: a.Path})
	}
	return summary.NewGenerator(aggregator, artifacts)
}

// resolveJobs builds the ordered job list: configured jobs with conclusions
// read from the environment, then --job overrides replacing or appending.
func resolveJobs(c *config.Config, overrides []string, getenv func(string) string) ([]summary.JobInput, error) {
	var jobs []summary.JobInput
	index := make(map[string]int)
	for _, jc := range c.GetJobs() {
		index[jc.Name] = len(jobs)
		jobs = append(jobs, summary.JobInput{
			Name:       jc.Name,
			Conclusion: summary.ParseConclusion(getenv(jc.GetResultEnv())),
			Kind:       summary.InferJobKind(jc.Name, jc.Kind),
		})
	}

	for _, o := range overrides {
		name, result, ok := strings.Cut(o, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --job %q: expected name=conclusion", o)
		}
		conclusion := summary.ParseConclusion(result)
		if i, exists := index[name]; exists {
			jobs[i].Conclusion = conclusion
			continue
		}
		index[name] = len(jobs)
		jobs = append(jobs, summary.JobInput{
			Name:       name,
			Conclusion: conclusion,
			Kind:       summary.InferJobKind(name, ""),
		})
	}
	return jobs, nil
}
