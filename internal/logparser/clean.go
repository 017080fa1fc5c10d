package logparser

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var (
	// timestampPattern matches GitHub Actions log timestamp prefixes.
	// Format: 2026-01-26T14:49:40.7760945Z
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z\s?`)

	// jobPrefixPattern matches GitHub Actions job/step prefixes.
	// Format: "JobName\tStepName\t2026-01-26..."
	jobPrefixPattern = regexp.MustCompile(`^[^\t]+\t[^\t]+\t\d{4}-\d{2}-\d{2}T\S+\s?`)
)

// SplitLines splits log content into lines, accepting both \n and \r\n endings.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}

// StripPrefixes removes CI job/step and timestamp prefixes from each line.
// Input:  "Test\tRun tests\t2026-01-26T14:49:40.7760945Z --- FAIL: TestName"
// Output: "--- FAIL: TestName"
func StripPrefixes(log string) string {
	lines := strings.Split(log, "\n")
	for i, line := range lines {
		line = jobPrefixPattern.ReplaceAllString(line, "")
		lines[i] = timestampPattern.ReplaceAllString(line, "")
	}
	return strings.Join(lines, "\n")
}

// CleanLog normalizes raw log bytes for matching: invalid UTF-8 is replaced,
// ANSI escape sequences are removed and, when stripPrefixes is set, CI
// timestamp prefixes are dropped.
func CleanLog(log string, stripPrefixes bool) string {
	log = strings.ToValidUTF8(log, "�")
	log = ansi.Strip(log)
	if stripPrefixes {
		log = StripPrefixes(log)
	}
	return log
}
