package render

import "github.com/gaurav-prasanna/tutorpage/core"

// HTMLRenderer writes the processed document as-is.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns the serialized document (passthrough).
func (r *HTMLRenderer) Render(page *core.Page) ([]byte, error) {
	return []byte(page.HTML), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
