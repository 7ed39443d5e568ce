package normalize

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// fragments are the pieces tutorial formula markup is built from.
var fragments = []string{
	"x", "W", "b", " ", "\n", "\t", " ", "=", "+", "(", ")",
	"Σ", "×", "≥", "≤", "→", "…", "∂", "δ", "λ", "β", "η", "∇", "√", "⊙",
	"ᵀ", "²", "ᵢ", "₀", "₁", "₉",
	"<br>", "<br/>", "<BR />", "</p><p>", "</p>\n<p class=\"step\">", "<p>", "</p>",
	"<strong>", "</strong>", "<em>", "</em>",
	"<sub>i</sub>", "<sup>2</sup>", "<SUB>t</SUB>", "<span class=\"v\">", "</span>",
}

func markup() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOf(rapid.SampledFrom(fragments)).Draw(t, "parts")
		return strings.Join(parts, "")
	})
}

func TestNormalizeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := markup().Draw(t, "markup")

		out, changed := Normalize(in)
		if !changed {
			t.Fatalf("generated markup has no delimiters, expected a change: %q", in)
		}
		if !strings.HasPrefix(out, displayOpen) || !strings.HasSuffix(out, displayClose) {
			t.Fatalf("output not wrapped in display math: %q", out)
		}
		if strings.ContainsAny(out, "<>") {
			t.Fatalf("markup survived: %q", out)
		}
		for _, p := range Substitutions {
			if strings.Contains(out, p[0]) {
				t.Fatalf("literal %q survived in %q", p[0], out)
			}
		}
		if strings.Contains(out, lineBreak) {
			t.Fatalf("sentinel survived in %q", out)
		}

		again, changed := Normalize(out)
		if changed || again != out {
			t.Fatalf("second pass changed %q to %q", out, again)
		}
	})
}

func TestDelimitedMarkupIsUntouchedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := markup().Draw(t, "before") +
			rapid.SampledFrom([]string{displayOpen, inlineOpen}).Draw(t, "delim") +
			markup().Draw(t, "after")

		out, changed := Normalize(in)
		if changed || out != in {
			t.Fatalf("delimited markup changed: %q -> %q", in, out)
		}
	})
}
