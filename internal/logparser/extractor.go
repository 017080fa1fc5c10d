package logparser

import "strings"

// Options bounds the extractors' output.
type Options struct {
	// MaxExcerptLines caps the generic error excerpt.
	MaxExcerptLines int
	// ContextBefore and ContextAfter size the window captured around each
	// generic error marker.
	ContextBefore int
	ContextAfter  int
	// TailLines is the size of the log tail.
	TailLines int
	// CompilerContextBefore and CompilerContextAfter size the window stored
	// with each compiler diagnostic.
	CompilerContextBefore int
	CompilerContextAfter  int
	// TestSearchWindow is how many lines after a failed test marker are
	// searched for its failure message.
	TestSearchWindow int
	// StripPrefixes removes CI timestamp prefixes before matching.
	StripPrefixes bool
}

// DefaultOptions returns the stock extraction limits.
func DefaultOptions() Options {
	return Options{
		MaxExcerptLines:       10,
		ContextBefore:         1,
		ContextAfter:          2,
		TailLines:             20,
		CompilerContextBefore: 2,
		CompilerContextAfter:  4,
		TestSearchWindow:      20,
		StripPrefixes:         true,
	}
}

// Extractor runs the dialect extractors with a shared pattern library.
type Extractor struct {
	lib  *Library
	opts Options
}

// New creates an Extractor. A nil library selects DefaultLibrary. Negative
// limits are treated as zero.
func New(lib *Library, opts Options) *Extractor {
	if lib == nil {
		lib = DefaultLibrary()
	}
	return &Extractor{lib: lib, opts: opts.clamped()}
}

func (o Options) clamped() Options {
	o.MaxExcerptLines = max(0, o.MaxExcerptLines)
	o.ContextBefore = max(0, o.ContextBefore)
	o.ContextAfter = max(0, o.ContextAfter)
	o.TailLines = max(0, o.TailLines)
	o.CompilerContextBefore = max(0, o.CompilerContextBefore)
	o.CompilerContextAfter = max(0, o.CompilerContextAfter)
	o.TestSearchWindow = max(0, o.TestSearchWindow)
	return o
}

// Options returns the extractor's limits.
func (e *Extractor) Options() Options {
	return e.opts
}

// Lines cleans content and splits it into lines.
func (e *Extractor) Lines(content string) []string {
	return SplitLines(CleanLog(content, e.opts.StripPrefixes))
}

// ExtractTail returns the last TailLines non-blank lines, trimmed.
func (e *Extractor) ExtractTail(lines []string) []string {
	return tailLines(lines, e.opts.TailLines)
}

func tailLines(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	var out []string
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	// collected newest-first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
