package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/newhook/ci-feedback/internal/logparser"
	"github.com/newhook/ci-feedback/internal/summary"
	"github.com/spf13/cobra"
)

var flagKind string

var extractCmd = &cobra.Command{
	Use:   "extract <log-file>",
	Short: "Print the records extracted from a single log file",
	Long: `Run the extractors for one job kind over a single log file and print the
result as JSON. Useful for checking how a log will be classified.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&flagKind, "kind", "generic", "job kind: build, test, lint or generic")
}

// extractOutput is the JSON shape printed by the extract command.
type extractOutput struct {
	Kind              summary.JobKind              `json:"kind"`
	ErrorMarkerFound  bool                         `json:"error_marker_found"`
	LogExcerpt        []string                     `json:"log_excerpt"`
	LogTail           []string                     `json:"log_tail"`
	CompilationErrors []logparser.CompilationError `json:"compilation_errors,omitempty"`
	TestFailures      []logparser.TestFailure      `json:"test_failures,omitempty"`
	LintViolations    []logparser.LintViolation    `json:"lint_violations,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	kind := summary.InferJobKind("", flagKind)
	if string(kind) != strings.ToLower(flagKind) {
		return fmt.Errorf("unknown kind %q", flagKind)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}

	analyzer := summary.NewAnalyzer(logparser.New(nil, cfg.Extract.Options()))
	analysis := analyzer.Analyze(GetContext(), kind, string(data))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(extractOutput{
		Kind:              kind,
		ErrorMarkerFound:  analysis.Excerpt.Matched,
		LogExcerpt:        analysis.Excerpt.Lines,
		LogTail:           analysis.Tail,
		CompilationErrors: analysis.CompilationErrors,
		TestFailures:      analysis.TestFailures,
		LintViolations:    analysis.LintViolations,
	})
}
