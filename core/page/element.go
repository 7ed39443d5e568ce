package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/tutorpage/core"
)

// Element wraps a single goquery node.
type Element struct {
	s *goquery.Selection
}

var _ core.Element = (*Element)(nil)

func (e *Element) Attr(name string) (string, bool) { return e.s.Attr(name) }

// Text returns the combined text content of the element and its descendants.
func (e *Element) Text() string { return e.s.Text() }

// InnerHTML returns the serialized children of the element, escaped
// the way a browser serializes them.
func (e *Element) InnerHTML() string {
	if e.s.Length() == 0 {
		return ""
	}
	return innerHTML(e.s.Get(0))
}

// SetInnerHTML replaces the children of the element with parsed markup.
func (e *Element) SetInnerHTML(markup string) { e.s.SetHtml(markup) }

// AddClass appends class to the class list unless it is already there.
// The attribute is rewritten with single spaces between tokens.
func (e *Element) AddClass(class string) {
	tokens := e.classes()
	for _, t := range tokens {
		if t == class {
			e.setClasses(tokens)
			return
		}
	}
	e.setClasses(append(tokens, class))
}

// RemoveClass drops every occurrence of class from the class list.
func (e *Element) RemoveClass(class string) {
	tokens := e.classes()
	kept := tokens[:0]
	for _, t := range tokens {
		if t != class {
			kept = append(kept, t)
		}
	}
	e.setClasses(kept)
}

func (e *Element) HasClass(class string) bool { return e.s.HasClass(class) }

// Style returns the value of one inline style property, or "".
func (e *Element) Style(property string) string {
	for _, d := range parseStyle(e.s.AttrOr("style", "")) {
		if d.prop == property {
			return d.value
		}
	}
	return ""
}

// SetStyle sets one inline style property, keeping the others in place.
func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(e.s.AttrOr("style", ""))
	replaced := false
	for i := range decls {
		if decls[i].prop == property {
			decls[i].value = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, declaration{prop: property, value: value})
	}
	e.s.SetAttr("style", formatStyle(decls))
}

// classes returns the class tokens without duplicates, in order.
func (e *Element) classes() []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, t := range strings.Fields(e.s.AttrOr("class", "")) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	return tokens
}

func (e *Element) setClasses(tokens []string) {
	if _, ok := e.s.Attr("class"); !ok && len(tokens) == 0 {
		return
	}
	e.s.SetAttr("class", strings.Join(tokens, " "))
}

type declaration struct {
	prop  string
	value string
}

// parseStyle splits an inline style attribute into declarations.
// Property names are lower-cased; malformed entries are dropped.
func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value+";")
	}
	return strings.Join(parts, " ")
}
