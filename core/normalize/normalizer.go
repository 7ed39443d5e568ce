// Package normalize rewrites ad-hoc formula markup into KaTeX display math.
//
// A formula block written with <sub>, <sup>, <br> and Unicode math symbols
// is flattened into a single \[ ... \] expression. Blocks that already
// carry a display or inline math delimiter are left alone.
package normalize

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/tutorpage/core"
)

const (
	displayOpen  = `\[`
	displayClose = `\]`
	inlineOpen   = `\(`

	// lineBreak stands in for structural breaks until whitespace is collapsed.
	lineBreak = "__BR__"
	// mathBreak is what lineBreak finally becomes.
	mathBreak = ` \\ `
)

var (
	brTag        = regexp.MustCompile(`(?i)<br\s*/?>`)
	paragraphGap = regexp.MustCompile(`(?i)</p>\s*<p[^>]*>`)
	emphasisTag  = regexp.MustCompile(`(?i)</?(?:strong|b|em)>`)
	subTag       = regexp.MustCompile(`(?i)<sub>(.*?)</sub>`)
	supTag       = regexp.MustCompile(`(?i)<sup>(.*?)</sup>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)

	// whitespace matches what a browser treats as \s: ASCII space and
	// control whitespace, every Unicode separator, and the BOM.
	whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// Substitutions is the symbol table, literal first then replacement.
var Substitutions = [][2]string{
	{"Σ", `\sum`},
	{"×", `\times`},
	{"≥", `\ge`},
	{"≤", `\le`},
	{"→", `\rightarrow`},
	{"…", `\ldots`},
	{"∂", `\partial`},
	{"δ", `\delta`},
	{"λ", `\lambda`},
	{"β", `\beta`},
	{"η", `\eta`},
	{"∇", `\nabla`},
	{"√", `\sqrt`},
	{"⊙", `\odot`},
	{"ᵀ", "^T"},
	{"²", "^2"},
	{"ᵢ", "_i"},
	{"₀", "_0"},
	{"₁", "_1"},
	{"₂", "_2"},
	{"₃", "_3"},
	{"₄", "_4"},
	{"₅", "_5"},
	{"₆", "_6"},
	{"₇", "_7"},
	{"₈", "_8"},
	{"₉", "_9"},
}

// symbols applies Substitutions in one simultaneous pass, so a replacement
// is never rescanned for another entry's literal.
var symbols = newSymbolReplacer(Substitutions)

func newSymbolReplacer(table [][2]string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(table))
	for _, p := range table {
		pairs = append(pairs, p[0], p[1])
	}
	return strings.NewReplacer(pairs...)
}

// IsNormalized reports whether markup already contains a display or
// inline math opening delimiter.
func IsNormalized(markup string) bool {
	return strings.Contains(markup, displayOpen) || strings.Contains(markup, inlineOpen)
}

// Normalize converts formula markup into a display math expression.
// It returns markup untouched and false when IsNormalized holds.
// Malformed markup is not an error; it just yields odd LaTeX.
func Normalize(markup string) (string, bool) {
	if IsNormalized(markup) {
		return markup, false
	}

	latex := markup
	latex = brTag.ReplaceAllLiteralString(latex, " "+lineBreak+" ")
	latex = paragraphGap.ReplaceAllLiteralString(latex, " "+lineBreak+" ")
	latex = emphasisTag.ReplaceAllLiteralString(latex, "")
	latex = subTag.ReplaceAllString(latex, "_{${1}}")
	latex = supTag.ReplaceAllString(latex, "^{${1}}")
	latex = anyTag.ReplaceAllLiteralString(latex, "")

	latex = symbols.Replace(latex)

	latex = strings.TrimSpace(whitespace.ReplaceAllLiteralString(latex, " "))
	latex = strings.ReplaceAll(latex, lineBreak, mathBreak)

	return displayOpen + latex + displayClose, true
}

// NormalizeBlocks rewrites every formula block of view in place and
// reports the outcome per block, in document order.
func NormalizeBlocks(view core.PageView) []core.Formula {
	blocks := view.FormulaBlocks()
	if len(blocks) == 0 {
		return nil
	}

	report := make([]core.Formula, 0, len(blocks))
	for i, block := range blocks {
		raw := block.InnerHTML()
		latex, changed := Normalize(raw)
		if changed {
			block.SetInnerHTML(latex)
		}
		report = append(report, core.Formula{
			Index:   i,
			Raw:     raw,
			LaTeX:   latex,
			Changed: changed,
		})
	}
	return report
}
