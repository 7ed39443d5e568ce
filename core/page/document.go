// Package page implements core.PageView on top of a goquery document.
// It is the only package that knows how tutorial pages are marked up:
//  1. Selectors locate formula blocks, nav buttons, sections and progress fills
//  2. Elements wrap single goquery nodes and edit classes, styles and markup
package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/tutorpage/core"
)

// Selectors are the CSS selectors used to find the page parts.
type Selectors struct {
	Formula         string `yaml:"formula,omitempty"`
	NavButton       string `yaml:"nav_button,omitempty"`
	ContentSection  string `yaml:"content_section,omitempty"`
	SectionProgress string `yaml:"section_progress,omitempty"`
	ChapterProgress string `yaml:"chapter_progress,omitempty"`
}

// DefaultSelectors returns the markup conventions of the tutorial pages.
func DefaultSelectors() Selectors {
	return Selectors{
		Formula:         ".formula-display",
		NavButton:       ".section-nav-btn",
		ContentSection:  ".content-section",
		SectionProgress: ".section-progress-fill",
		ChapterProgress: ".chapter-progress-fill",
	}
}

// withDefaults fills empty selectors from DefaultSelectors.
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if s.Formula == "" {
		s.Formula = d.Formula
	}
	if s.NavButton == "" {
		s.NavButton = d.NavButton
	}
	if s.ContentSection == "" {
		s.ContentSection = d.ContentSection
	}
	if s.SectionProgress == "" {
		s.SectionProgress = d.SectionProgress
	}
	if s.ChapterProgress == "" {
		s.ChapterProgress = d.ChapterProgress
	}
	return s
}

// noiseSelectors are removed before the main content is exported.
// These contribute no meaningful content to the chapter text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// Document is a parsed tutorial page.
type Document struct {
	doc *goquery.Document
	sel Selectors
}

var _ core.PageView = (*Document)(nil)

// Parse reads an HTML page. Empty fields of sel fall back to the defaults.
func Parse(r io.Reader, sel Selectors) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Document{doc: doc, sel: sel.withDefaults()}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(html string, sel Selectors) (*Document, error) {
	return Parse(strings.NewReader(html), sel)
}

// FormulaBlocks returns every formula container in document order.
func (d *Document) FormulaBlocks() []core.Element {
	return elements(d.doc.Find(d.sel.Formula))
}

// NavButtons returns every section navigation button in document order.
func (d *Document) NavButtons() []core.Element {
	return elements(d.doc.Find(d.sel.NavButton))
}

// ContentSections returns every switchable content section.
func (d *Document) ContentSections() []core.Element {
	return elements(d.doc.Find(d.sel.ContentSection))
}

// ElementByID finds the first element whose id attribute equals id exactly.
// Ids are compared as strings so that ids which are not valid CSS
// identifiers still resolve.
func (d *Document) ElementByID(id string) (core.Element, bool) {
	var found *goquery.Selection
	d.doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr("id"); v == id {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return &Element{s: found}, true
}

// SectionProgressFill returns the per-section progress bar fill.
func (d *Document) SectionProgressFill() (core.Element, bool) {
	return first(d.doc.Find(d.sel.SectionProgress))
}

// ChapterProgressFill returns the chapter progress bar fill.
func (d *Document) ChapterProgressFill() (core.Element, bool) {
	return first(d.doc.Find(d.sel.ChapterProgress))
}

// Title returns the trimmed <title> text.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Lang returns the lang attribute of <html>, or "en".
func (d *Document) Lang() string {
	if lang, ok := d.doc.Find("html").First().Attr("lang"); ok && lang != "" {
		return lang
	}
	return "en"
}

// HTML serializes the whole document, including any edits.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing document: %w", err)
	}
	return out, nil
}

// MainContent returns the best content container (<main>, <article> or
// <body>) of a copy of the document with noise elements removed.
func (d *Document) MainContent() (string, error) {
	root := d.doc.Selection.Clone()

	for _, sel := range noiseSelectors {
		root.Find(sel).Remove()
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := root.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

func elements(s *goquery.Selection) []core.Element {
	out := make([]core.Element, 0, s.Length())
	s.Each(func(_ int, node *goquery.Selection) {
		out = append(out, &Element{s: node})
	})
	return out
}

func first(s *goquery.Selection) (core.Element, bool) {
	if s.Length() == 0 {
		return nil, false
	}
	return &Element{s: s.First()}, true
}
