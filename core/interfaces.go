// Package core defines the page view abstraction and pipeline interfaces
// for tutorpage. Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	Source     string
	StatusCode int
	HTML       string
}

// PageMetadata holds metadata extracted from the page and its source.
type PageMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	ProcessedAt string `json:"processed_at"` // ISO8601
}

// SectionInfo describes one entry of the page's declared section order.
type SectionInfo struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Position int     `json:"position"` // 1-based
	Progress float64 `json:"progress"` // percent
	Active   bool    `json:"active"`
}

// Formula reports what happened to a single formula block.
type Formula struct {
	Index   int    `json:"index"`
	Raw     string `json:"raw"`
	LaTeX   string `json:"latex"`
	Changed bool   `json:"changed"`
}

// Page is the processed snapshot handed to renderers.
type Page struct {
	Metadata        PageMetadata  `json:"metadata"`
	ChapterProgress string        `json:"chapter_progress,omitempty"`
	ActiveSection   string        `json:"active_section,omitempty"`
	Sections        []SectionInfo `json:"sections"`
	Formulas        []Formula     `json:"formulas"`
	HTML            string        `json:"-"`
	// Content is the main content container without navigation chrome.
	Content string `json:"-"`
}

// Element is a single node of the page tree.
type Element interface {
	Attr(name string) (string, bool)
	Text() string
	InnerHTML() string
	SetInnerHTML(markup string)
	AddClass(class string)
	RemoveClass(class string)
	HasClass(class string) bool
	Style(property string) string
	SetStyle(property, value string)
}

// PageView exposes only the parts of the page tree that the formula
// normalizer and the navigator touch.
type PageView interface {
	FormulaBlocks() []Element
	NavButtons() []Element
	ContentSections() []Element
	ElementByID(id string) (Element, bool)
	SectionProgressFill() (Element, bool)
	ChapterProgressFill() (Element, bool)
}

// Fetcher retrieves raw HTML from a URL or file path.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Renderer converts a processed page into a final output format.
type Renderer interface {
	Render(page *Page) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
