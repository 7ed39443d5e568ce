// Package render — PDF renderer.
// Produces a chapter report using gofpdf: the title and source, the chapter
// progress, the section outline with per-section progress, and a listing
// of every formula block as LaTeX source.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/tutorpage/core"
	"github.com/gaurav-prasanna/tutorpage/core/navigate"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a processed page as a PDF report.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render builds the report and returns the PDF bytes.
func (r *PDFRenderer) Render(page *core.Page) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; anything outside it prints as '.'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title from metadata.
	if page.Metadata.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(page.Metadata.Title), "", "L", false)
		pdf.Ln(4)
	}

	// Source.
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+page.Metadata.Source), "", "L", false)
	if page.ChapterProgress != "" {
		pdf.MultiCell(0, 5, tr("Chapter progress: "+page.ChapterProgress+"%"), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	renderHeading(pdf, "Sections", 2)
	if len(page.Sections) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, "No sections declared.", "", "L", false)
	}
	for _, s := range page.Sections {
		style := ""
		marker := "  "
		if s.Active {
			style = "B"
			marker = "> "
		}
		pdf.SetFont("Helvetica", style, 10)
		line := fmt.Sprintf("%s%d. %s (%s)  %s", marker, s.Position, s.Label, s.ID, navigate.FormatPercent(s.Progress))
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	renderHeading(pdf, "Formulas", 2)
	if len(page.Formulas) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, "No formula blocks.", "", "L", false)
	}
	for _, f := range page.Formulas {
		pdf.SetFont("Helvetica", "", 9)
		note := "normalized"
		if !f.Changed {
			note = "already LaTeX"
		}
		pdf.MultiCell(0, 5, fmt.Sprintf("#%d (%s)", f.Index+1, note), "", "L", false)

		// Render LaTeX source with monospace font and background.
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(0, 4.5, tr(f.LaTeX), "", "L", true)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}
