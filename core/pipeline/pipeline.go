// Package pipeline runs one tutorial page through
// fetch → parse → normalize formulas → init progress → show section → snapshot.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gaurav-prasanna/tutorpage/core"
	"github.com/gaurav-prasanna/tutorpage/core/navigate"
	"github.com/gaurav-prasanna/tutorpage/core/page"
)

// Options controls a processing run.
type Options struct {
	Selectors page.Selectors
	// Section, when set, is shown after initialization as if its nav
	// button had been clicked.
	Section string
	Logger  *slog.Logger
	// Now stamps the metadata; nil means time.Now.
	Now func() time.Time
}

// Process fetches source and applies the page-load behaviour to it.
func Process(ctx context.Context, source string, fetcher core.Fetcher, opts Options) (*core.Page, error) {
	result, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return ProcessHTML(source, result.HTML, opts)
}

// ProcessHTML applies the page-load behaviour to an already loaded page.
func ProcessHTML(source, html string, opts Options) (*core.Page, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	doc, err := page.ParseString(html, opts.Selectors)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	ctrl := navigate.New(doc, logger.With("source", source))
	ctrl.Init()
	if opts.Section != "" {
		ctrl.ShowSection(opts.Section)
	}

	out, err := doc.HTML()
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	content, err := doc.MainContent()
	if err != nil {
		// Fragments without a body still render as HTML and JSON.
		logger.Debug("no main content", "source", source, "err", err)
		content = ""
	}

	return &core.Page{
		Metadata: core.PageMetadata{
			Source:      source,
			Title:       doc.Title(),
			Language:    doc.Lang(),
			ProcessedAt: now().UTC().Format(time.RFC3339),
		},
		ChapterProgress: ctrl.ChapterProgress(),
		ActiveSection:   ctrl.ActiveSection(),
		Sections:        ctrl.Outline(),
		Formulas:        ctrl.Formulas(),
		HTML:            out,
		Content:         content,
	}, nil
}
