package logparser

import "strings"

// ExtractErrors collects the lines around every generic error marker.
//
// Each context line is trimmed and kept only the first time it is seen.
// Collection stops as soon as MaxExcerptLines lines are held. When no marker
// matches, the excerpt falls back to the log's last MaxExcerptLines non-blank
// lines and Matched is false.
func (e *Extractor) ExtractErrors(lines []string) Excerpt {
	budget := e.opts.MaxExcerptLines
	if budget <= 0 || len(lines) == 0 {
		return Excerpt{}
	}

	var out []string
	seen := make(map[string]bool)
	matched := false

	for i, line := range lines {
		if e.lib.IsExcluded(line) {
			continue
		}
		if !e.lib.IsErrorLine(line) {
			continue
		}
		matched = true

		start := max(0, i-e.opts.ContextBefore)
		end := min(len(lines), i+e.opts.ContextAfter+1)
		for _, ctx := range lines[start:end] {
			cleaned := strings.TrimSpace(ctx)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			out = append(out, cleaned)
			if len(out) >= budget {
				return Excerpt{Lines: out, Matched: true}
			}
		}
	}

	if !matched {
		return Excerpt{Lines: tailLines(lines, budget)}
	}
	return Excerpt{Lines: out, Matched: true}
}
