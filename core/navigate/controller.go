// Package navigate owns the section state of a tutorial page.
//
// The declared section order comes from the nav buttons and is read once,
// when the Controller is built. Showing a section and updating progress
// bars then work against that explicit state rather than rescanning the page.
package navigate

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/tutorpage/core"
	"github.com/gaurav-prasanna/tutorpage/core/normalize"
)

const (
	activeClass   = "active"
	sectionAttr   = "data-section"
	progressAttr  = "data-progress"
	widthProperty = "width"
)

// Controller switches sections and keeps progress bars in step.
type Controller struct {
	view     core.PageView
	logger   *slog.Logger
	sections []string
	labels   []string
	formulas []core.Formula
}

// New reads the section order and labels from the nav buttons of view.
// A nil logger discards output.
func New(view core.PageView, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{view: view, logger: logger}

	for _, button := range view.NavButtons() {
		id, _ := button.Attr(sectionAttr)
		c.sections = append(c.sections, id)
		c.labels = append(c.labels, strings.TrimSpace(button.Text()))
	}

	logger.Debug("initialized sections", "sections", c.sections, "labels", c.labels)
	return c
}

// Init runs the page-load sequence: formula blocks are normalized first,
// then the progress bars are initialized.
func (c *Controller) Init() {
	c.logger.Debug("initializing page")
	c.formulas = normalize.NormalizeBlocks(c.view)
	c.InitProgressBars()
	c.logger.Debug("initialization complete", "formulas", len(c.formulas))
}

// Formulas returns the normalization report of the last Init.
func (c *Controller) Formulas() []core.Formula { return c.formulas }

// Sections returns the declared section order.
func (c *Controller) Sections() []string { return append([]string(nil), c.sections...) }

// Labels returns the nav button labels, parallel to Sections.
func (c *Controller) Labels() []string { return append([]string(nil), c.labels...) }

// ShowSection deactivates every section and nav button, then activates the
// section whose id equals id along with its nav buttons, and updates the
// section progress. It reports whether the section element exists; a
// missing section is logged and leaves no section active.
func (c *Controller) ShowSection(id string) bool {
	c.logger.Debug("showing section", "section", id)

	for _, section := range c.view.ContentSections() {
		section.RemoveClass(activeClass)
	}
	buttons := c.view.NavButtons()
	for _, button := range buttons {
		button.RemoveClass(activeClass)
	}

	target, found := c.view.ElementByID(id)
	if found {
		target.AddClass(activeClass)
		c.logger.Debug("section shown", "section", id)
	} else {
		c.logger.Error("section not found", "section", id)
	}

	for _, button := range buttons {
		if v, _ := button.Attr(sectionAttr); v == id {
			button.AddClass(activeClass)
		}
	}

	c.UpdateSectionProgress(id)
	return found
}

// Progress returns the fill percentage for id, position/total*100.
func (c *Controller) Progress(id string) (float64, bool) {
	idx := c.indexOf(id)
	if idx == -1 {
		return 0, false
	}
	return float64(idx+1) / float64(len(c.sections)) * 100, true
}

// UpdateSectionProgress sets the section progress fill width for id.
// Unknown ids are a no-op.
func (c *Controller) UpdateSectionProgress(id string) (float64, bool) {
	progress, ok := c.Progress(id)
	if !ok {
		return 0, false
	}
	if fill, exists := c.view.SectionProgressFill(); exists {
		fill.SetStyle(widthProperty, FormatPercent(progress))
	}
	return progress, true
}

// InitProgressBars copies the chapter fill's data-progress into its width
// and shows the progress of the first section.
func (c *Controller) InitProgressBars() {
	if fill, ok := c.view.ChapterProgressFill(); ok {
		if progress, _ := fill.Attr(progressAttr); progress != "" {
			fill.SetStyle(widthProperty, progress+"%")
		}
	}

	if len(c.sections) > 0 {
		c.UpdateSectionProgress(c.sections[0])
	}
}

// ActiveSection returns the id of the first active content section.
func (c *Controller) ActiveSection() string {
	for _, section := range c.view.ContentSections() {
		if section.HasClass(activeClass) {
			id, _ := section.Attr("id")
			return id
		}
	}
	return ""
}

// Outline describes every declared section with its position and progress.
func (c *Controller) Outline() []core.SectionInfo {
	active := c.ActiveSection()
	out := make([]core.SectionInfo, 0, len(c.sections))
	for i, id := range c.sections {
		progress, _ := c.Progress(id)
		out = append(out, core.SectionInfo{
			ID:       id,
			Label:    c.labels[i],
			Position: i + 1,
			Progress: progress,
			Active:   active != "" && id == active,
		})
	}
	return out
}

// ChapterProgress returns the chapter fill's data-progress, or "".
func (c *Controller) ChapterProgress() string {
	fill, ok := c.view.ChapterProgressFill()
	if !ok {
		return ""
	}
	progress, _ := fill.Attr(progressAttr)
	return progress
}

func (c *Controller) indexOf(id string) int {
	for i, s := range c.sections {
		if s == id {
			return i
		}
	}
	return -1
}

// FormatPercent renders a percentage the shortest way that round-trips,
// so 60 prints as "60%" and one third as "33.33333333333333%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
