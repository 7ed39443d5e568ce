// Package render — JSON renderer.
// Emits the processed page snapshot: metadata, section outline with
// progress, and the per-block formula report. The document markup itself
// is left out; use the HTML renderer for that.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/tutorpage/core"
)

// JSONRenderer produces structured JSON output from a processed page.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the page snapshot.
func (r *JSONRenderer) Render(page *core.Page) ([]byte, error) {
	out := *page
	if out.Sections == nil {
		out.Sections = []core.SectionInfo{}
	}
	if out.Formulas == nil {
		out.Formulas = []core.Formula{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
