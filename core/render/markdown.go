// Package render provides output renderers for the tutorpage pipeline.
// This file implements the Markdown renderer, which converts the processed
// main content with html-to-markdown. Formula blocks are already KaTeX
// display math by the time they get here.
package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/tutorpage/core"
)

// MarkdownRenderer converts the processed page content into Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the main content (or the whole page when no content
// container was found) into Markdown.
func (r *MarkdownRenderer) Render(page *core.Page) ([]byte, error) {
	html := page.Content
	if html == "" {
		html = page.HTML
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
