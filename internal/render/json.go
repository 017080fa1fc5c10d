// Package render writes a RunSummary as JSON, a markdown digest and an
// optional HTML digest.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/newhook/ci-feedback/internal/summary"
)

// WriteJSON encodes the summary as indented JSON.
func WriteJSON(w io.Writer, s *summary.RunSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}

// WriteJSONFile writes the JSON summary to path.
func WriteJSONFile(path string, s *summary.RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(f, s); err != nil {
		return err
	}
	return f.Close()
}
