package logparser

import (
	"strconv"
	"strings"
)

// NoMessagePlaceholder is the message of a test failure for which no
// failure text was found near its marker.
const NoMessagePlaceholder = "Test failed (no failure message captured)"

// ExtractTestFailures returns exactly one record per distinct failed test.
//
// The first pass indexes every test reported as failed. Records are ordered
// by the first time each test was seen, but the message search starts at the
// test's last failed marker. The second pass looks forward from that marker,
// bounded by TestSearchWindow and the next test case marker, for an assertion
// line. Without one, any line mentioning "error:" or "failed:" becomes the
// message.
func (e *Extractor) ExtractTestFailures(lines []string) []TestFailure {
	type failedTest struct {
		name   string
		method string
		index  int
	}

	var order []string
	failed := make(map[string]*failedTest)

	for i, line := range lines {
		matches := e.lib.TestCase.FindStringSubmatch(strings.TrimSpace(line))
		if len(matches) != 4 || matches[3] != "failed" {
			continue
		}
		id := matches[1] + "." + matches[2]
		if ft, ok := failed[id]; ok {
			ft.index = i
			continue
		}
		failed[id] = &failedTest{name: matches[1], method: matches[2], index: i}
		order = append(order, id)
	}

	out := make([]TestFailure, 0, len(order))
	for _, id := range order {
		ft := failed[id]
		out = append(out, e.describeFailure(lines, ft.name, ft.method, ft.index))
	}
	return out
}

// describeFailure searches forward from the marker at index for the failure
// detail of one test.
func (e *Extractor) describeFailure(lines []string, name, method string, index int) TestFailure {
	failure := TestFailure{TestName: name, TestCase: method}

	var loose []string
	end := min(len(lines), index+1+e.opts.TestSearchWindow)
	for j := index + 1; j < end; j++ {
		line := strings.TrimSpace(lines[j])
		if e.lib.TestCaseAny.MatchString(line) {
			break
		}
		if matches := e.lib.Assertion.FindStringSubmatch(line); len(matches) == 5 {
			failure.File = matches[1]
			failure.Line, _ = strconv.Atoi(matches[2])
			failure.Message = strings.TrimSpace(matches[4])
			return failure
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error:") || strings.Contains(lower, "failed:") {
			loose = append(loose, line)
		}
	}

	if len(loose) > 0 {
		failure.Message = strings.Join(loose, "\n")
	} else {
		failure.Message = NoMessagePlaceholder
	}
	return failure
}
