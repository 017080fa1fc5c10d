package logparser

import (
	"strconv"
	"strings"
)

// ExtractLintViolations returns one record per lint violation line, in log
// order. Both "(rule) message" and "message (rule)" layouts are accepted.
func (e *Extractor) ExtractLintViolations(lines []string) []LintViolation {
	var out []LintViolation
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")

		// Rule before the message
		if matches := e.lib.Lint.FindStringSubmatch(line); len(matches) == 7 {
			out = append(out, newLintViolation(matches[1], matches[2], matches[3], matches[4], matches[5], matches[6]))
			continue
		}

		// Rule after the message, as SwiftLint and golangci-lint print it
		if matches := e.lib.LintTrailing.FindStringSubmatch(line); len(matches) == 7 {
			out = append(out, newLintViolation(matches[1], matches[2], matches[3], matches[4], matches[6], matches[5]))
		}
	}
	return out
}

func newLintViolation(file, line, col, severity, rule, message string) LintViolation {
	lineNum, _ := strconv.Atoi(line)
	colNum, _ := strconv.Atoi(col)
	return LintViolation{
		File:     file,
		Line:     lineNum,
		Column:   colNum,
		Rule:     rule,
		Message:  strings.TrimSpace(message),
		Severity: severity,
	}
}

// String returns a human-readable representation of the violation.
func (v LintViolation) String() string {
	loc := v.File + ":" + strconv.Itoa(v.Line)
	if v.Column > 0 {
		loc += ":" + strconv.Itoa(v.Column)
	}
	return loc + ": " + v.Severity + ": " + v.Message + " (" + v.Rule + ")"
}

// GroupByRule groups violations by rule identifier.
func GroupByRule(violations []LintViolation) map[string][]LintViolation {
	groups := make(map[string][]LintViolation)
	for _, v := range violations {
		groups[v.Rule] = append(groups[v.Rule], v)
	}
	return groups
}
