// Package config loads the ci-feedback TOML configuration.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/newhook/ci-feedback/internal/logparser"
)

//go:embed templates/config.tmpl
var configTemplateText string

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".ci-feedback.toml"

// Config represents the tool configuration.
type Config struct {
	Extract   ExtractConfig    `toml:"extract"`
	Layout    LayoutConfig     `toml:"layout"`
	Output    OutputConfig     `toml:"output"`
	Jobs      []JobConfig      `toml:"jobs"`
	Artifacts []ArtifactConfig `toml:"artifacts"`
}

// ExtractConfig contains extraction limits. Unset fields use defaults.
type ExtractConfig struct {
	// MaxExcerptLines caps the generic error excerpt per step. Defaults to 10.
	MaxExcerptLines *int `toml:"max_excerpt_lines"`
	// ContextBefore is the lookback around generic error markers. Defaults to 1.
	ContextBefore *int `toml:"context_before"`
	// ContextAfter is the lookahead around generic error markers. Defaults to 2.
	ContextAfter *int `toml:"context_after"`
	// TailLines is the size of the per-step log tail. Defaults to 20.
	TailLines *int `toml:"tail_lines"`
	// CompilerContextBefore defaults to 2.
	CompilerContextBefore *int `toml:"compiler_context_before"`
	// CompilerContextAfter defaults to 4.
	CompilerContextAfter *int `toml:"compiler_context_after"`
	// TestSearchWindow is the lookahead after a failed test marker. Defaults to 20.
	TestSearchWindow *int `toml:"test_search_window"`
	// StripPrefixes removes CI timestamp prefixes before matching. Defaults to true.
	StripPrefixes *bool `toml:"strip_prefixes"`
	// Workers bounds parallel step analysis within a job. Defaults to 4.
	Workers *int `toml:"workers"`
}

func intOr(v *int, def int) int {
	if v != nil && *v >= 0 {
		return *v
	}
	return def
}

// GetMaxExcerptLines returns the excerpt budget.
func (e *ExtractConfig) GetMaxExcerptLines() int { return intOr(e.MaxExcerptLines, 10) }

// GetContextBefore returns the generic-marker lookback.
func (e *ExtractConfig) GetContextBefore() int { return intOr(e.ContextBefore, 1) }

// GetContextAfter returns the generic-marker lookahead.
func (e *ExtractConfig) GetContextAfter() int { return intOr(e.ContextAfter, 2) }

// GetTailLines returns the tail size.
func (e *ExtractConfig) GetTailLines() int { return intOr(e.TailLines, 20) }

// GetCompilerContextBefore returns the diagnostic lookback.
func (e *ExtractConfig) GetCompilerContextBefore() int { return intOr(e.CompilerContextBefore, 2) }

// GetCompilerContextAfter returns the diagnostic lookahead.
func (e *ExtractConfig) GetCompilerContextAfter() int { return intOr(e.CompilerContextAfter, 4) }

// GetTestSearchWindow returns the failed-test lookahead.
func (e *ExtractConfig) GetTestSearchWindow() int { return intOr(e.TestSearchWindow, 20) }

// ShouldStripPrefixes returns true unless prefix stripping was disabled.
func (e *ExtractConfig) ShouldStripPrefixes() bool {
	if e.StripPrefixes == nil {
		return true
	}
	return *e.StripPrefixes
}

// GetWorkers returns the parallelism for step analysis, at least 1.
func (e *ExtractConfig) GetWorkers() int {
	if e.Workers == nil || *e.Workers < 1 {
		return 4
	}
	return *e.Workers
}

// LayoutConfig describes where step logs live inside the artifacts directory.
type LayoutConfig struct {
	// JobDirSuffix is appended to the job name to form its log directory.
	// Defaults to "-logs".
	JobDirSuffix *string `toml:"job_dir_suffix"`
	// LogExtension selects step log files. Defaults to ".log".
	LogExtension string `toml:"log_extension"`
}

// GetJobDirSuffix returns the job log directory suffix.
func (l *LayoutConfig) GetJobDirSuffix() string {
	if l.JobDirSuffix == nil {
		return "-logs"
	}
	return *l.JobDirSuffix
}

// GetLogExtension returns the step log extension including the dot.
func (l *LayoutConfig) GetLogExtension() string {
	if l.LogExtension == "" {
		return ".log"
	}
	if !strings.HasPrefix(l.LogExtension, ".") {
		return "." + l.LogExtension
	}
	return l.LogExtension
}

// OutputConfig names the generated report files.
type OutputConfig struct {
	JSONFile     string `toml:"json_file"`
	MarkdownFile string `toml:"markdown_file"`
	// HTMLFile enables the HTML digest when set.
	HTMLFile string `toml:"html_file"`
	// ArtifactPrefix is the directory artifact references point into.
	// Defaults to ".ci".
	ArtifactPrefix string `toml:"artifact_prefix"`
}

// GetJSONFile returns the summary file name.
func (o *OutputConfig) GetJSONFile() string {
	if o.JSONFile == "" {
		return "summary.json"
	}
	return o.JSONFile
}

// GetMarkdownFile returns the digest file name.
func (o *OutputConfig) GetMarkdownFile() string {
	if o.MarkdownFile == "" {
		return "summary.md"
	}
	return o.MarkdownFile
}

// GetArtifactPrefix returns the artifact reference directory.
func (o *OutputConfig) GetArtifactPrefix() string {
	if o.ArtifactPrefix == "" {
		return ".ci"
	}
	return strings.TrimSuffix(o.ArtifactPrefix, "/")
}

// JobConfig declares a CI job.
type JobConfig struct {
	Name string `toml:"name"`
	// Kind is "build", "test", "lint" or "generic". Inferred from the name
	// when empty.
	Kind string `toml:"kind"`
	// ResultEnv names the environment variable holding the job conclusion.
	// Defaults to the upper-cased name followed by "_RESULT".
	ResultEnv string `toml:"result_env"`
}

// GetResultEnv returns the environment variable for the job conclusion.
func (j *JobConfig) GetResultEnv() string {
	if j.ResultEnv != "" {
		return j.ResultEnv
	}
	name := strings.ToUpper(j.Name)
	name = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	return name + "_RESULT"
}

// ArtifactConfig declares an expected artifact.
type ArtifactConfig struct {
	Name string `toml:"name"`
	// Path defaults to "<artifact_prefix>/<name>".
	Path string `toml:"path"`
}

// DefaultJobs are the jobs declared when the config names none.
var DefaultJobs = []JobConfig{
	{Name: "build", Kind: "build", ResultEnv: "BUILD_RESULT"},
	{Name: "test", Kind: "test", ResultEnv: "TEST_RESULT"},
	{Name: "lint", Kind: "lint", ResultEnv: "LINT_RESULT"},
}

// DefaultArtifactNames are the artifacts referenced when the config names none.
var DefaultArtifactNames = []string{
	"test-results",
	"failed-snapshots",
	"lint-results",
	"build-logs",
	"test-logs",
	"lint-logs",
}

// GetJobs returns the declared jobs, or DefaultJobs.
func (c *Config) GetJobs() []JobConfig {
	if len(c.Jobs) == 0 {
		return append([]JobConfig(nil), DefaultJobs...)
	}
	return c.Jobs
}

// GetArtifacts returns the declared artifacts with paths filled in.
func (c *Config) GetArtifacts() []ArtifactConfig {
	var out []ArtifactConfig
	if len(c.Artifacts) == 0 {
		for _, name := range DefaultArtifactNames {
			out = append(out, ArtifactConfig{Name: name})
		}
	} else {
		out = append(out, c.Artifacts...)
	}
	for i := range out {
		if out[i].Path == "" {
			out[i].Path = c.Output.GetArtifactPrefix() + "/" + out[i].Name
		}
	}
	return out
}

// Validate checks the job declarations.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, job := range c.Jobs {
		if job.Name == "" {
			return fmt.Errorf("jobs[%d]: name is required", i)
		}
		if seen[job.Name] {
			return fmt.Errorf("jobs[%d]: duplicate job %q", i, job.Name)
		}
		seen[job.Name] = true
		switch job.Kind {
		case "", "build", "test", "lint", "generic":
		default:
			return fmt.Errorf("jobs[%d]: unknown kind %q", i, job.Kind)
		}
	}
	for i, a := range c.Artifacts {
		if a.Name == "" {
			return fmt.Errorf("artifacts[%d]: name is required", i)
		}
	}
	return nil
}

// LoadConfig reads and parses a config.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads path, or returns the default configuration when path is the
// default file name and it does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if path == DefaultFileName && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the config to the specified path.
func (c *Config) SaveConfig(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// configTemplateData holds the data used to render the config template.
type configTemplateData struct {
	Jobs      []JobConfig
	Artifacts []string
}

// tomlString formats a string for TOML output with proper escaping.
func tomlString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}

var configTemplate = template.Must(template.New("config").Funcs(template.FuncMap{
	"tomlString": tomlString,
}).Parse(configTemplateText))

// GenerateDocumentedConfig renders a config file with every option
// commented, declaring the default jobs and artifacts.
func GenerateDocumentedConfig() string {
	data := configTemplateData{
		Jobs:      DefaultJobs,
		Artifacts: DefaultArtifactNames,
	}

	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, data); err != nil {
		return "[extract]\nmax_excerpt_lines = 10\n"
	}
	return buf.String()
}

// SaveDocumentedConfig writes GenerateDocumentedConfig to path.
func SaveDocumentedConfig(path string) error {
	return os.WriteFile(path, []byte(GenerateDocumentedConfig()), 0644)
}

// Options converts the extraction settings into extractor limits.
func (e *ExtractConfig) Options() logparser.Options {
	return logparser.Options{
		MaxExcerptLines:       e.GetMaxExcerptLines(),
		ContextBefore:         e.GetContextBefore(),
		ContextAfter:          e.GetContextAfter(),
		TailLines:             e.GetTailLines(),
		CompilerContextBefore: e.GetCompilerContextBefore(),
		CompilerContextAfter:  e.GetCompilerContextAfter(),
		TestSearchWindow:      e.GetTestSearchWindow(),
		StripPrefixes:         e.ShouldStripPrefixes(),
	}
}
