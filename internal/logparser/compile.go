package logparser

import (
	"strconv"
	"strings"
)

// ExtractCompilationErrors returns one record per compiler diagnostic line,
// in log order. Identical diagnostics on different lines are kept apart.
func (e *Extractor) ExtractCompilationErrors(lines []string) []CompilationError {
	var out []CompilationError
	for i, line := range lines {
		matches := e.lib.Compiler.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if len(matches) != 6 {
			continue
		}
		lineNum, _ := strconv.Atoi(matches[2])
		col, _ := strconv.Atoi(matches[3])

		start := max(0, i-e.opts.CompilerContextBefore)
		end := min(len(lines), i+e.opts.CompilerContextAfter+1)
		context := make([]string, end-start)
		copy(context, lines[start:end])

		out = append(out, CompilationError{
			File:    matches[1],
			Line:    lineNum,
			Column:  col,
			Kind:    matches[4],
			Message: strings.TrimSpace(matches[5]),
			Context: context,
		})
	}
	return out
}
