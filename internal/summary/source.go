package summary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// StepLog locates one step's log.
type StepLog struct {
	// Name is the step identifier, the log file name without extension.
	Name string
	Path string
}

// LogSource finds and reads the step logs of a job.
type LogSource interface {
	// StepLogs lists a job's step logs in a stable order. A job without
	// logs returns an empty list and no error.
	StepLogs(jobName string) ([]StepLog, error)
	// ReadStep returns the raw text of one step log.
	ReadStep(step StepLog) (string, error)
}

// DirSource reads step logs from <Root>/<job><JobDirSuffix>/*<Extension>.
type DirSource struct {
	Root         string
	JobDirSuffix string
	Extension    string
}

// NewDirSource creates a DirSource.
func NewDirSource(root, jobDirSuffix, extension string) *DirSource {
	return &DirSource{Root: root, JobDirSuffix: jobDirSuffix, Extension: extension}
}

// JobDir returns the directory holding a job's step logs.
func (d *DirSource) JobDir(jobName string) string {
	return filepath.Join(d.Root, jobName+d.JobDirSuffix)
}

// StepLogs lists the job's log files sorted by file name.
func (d *DirSource) StepLogs(jobName string) ([]StepLog, error) {
	dir := d.JobDir(jobName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log directory %s: %w", dir, err)
	}

	var steps []StepLog
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, d.Extension) {
			continue
		}
		steps = append(steps, StepLog{
			Name: strings.TrimSuffix(name, d.Extension),
			Path: filepath.Join(dir, name),
		})
	}
	return steps, nil
}

// ReadStep reads a step log file.
func (d *DirSource) ReadStep(step StepLog) (string, error) {
	data, err := os.ReadFile(step.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", step.Path, err)
	}
	return string(data), nil
}
