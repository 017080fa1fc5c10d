package summary

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/newhook/ci-feedback/internal/logparser"
	"github.com/stretchr/testify/require"
)

// memSource is an in-memory LogSource keyed by job then step name.
type memSource struct {
	logs       map[string]map[string]string
	unreadable map[string]bool
}

func (m *memSource) StepLogs(jobName string) ([]StepLog, error) {
	var steps []StepLog
	for name := range m.logs[jobName] {
		steps = append(steps, StepLog{Name: name, Path: jobName + "/" + name})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Name < steps[j].Name })
	return steps, nil
}

func (m *memSource) ReadStep(step StepLog) (string, error) {
	if m.unreadable[step.Path] {
		return "", errors.New("permission denied")
	}
	for job, steps := range m.logs {
		if content, ok := steps[step.Name]; ok && job+"/"+step.Name == step.Path {
			return content, nil
		}
	}
	return "", errors.New("not found")
}

func newTestAggregator(src LogSource) *JobAggregator {
	return NewJobAggregator(src, NewAnalyzer(logparser.New(nil, logparser.DefaultOptions())), 2)
}

func buildJob(t *testing.T, src LogSource, job JobInput) JobResult {
	t.Helper()
	result, err := newTestAggregator(src).BuildJobResult(context.Background(), job)
	require.NoError(t, err)
	return result
}
