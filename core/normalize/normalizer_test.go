package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"symbols", "Σ x ≥ 0", `\[\sum x \ge 0\]`},
		{"subscript", "a<sub>1</sub>", `\[a_{1}\]`},
		{"superscript", "x<sup>2</sup>", `\[x^{2}\]`},
		{"paragraph break", "a</p><p>b", `\[a  \\  b\]`},
		{"paragraph break with attributes", "a</p>\n  <P class=\"step\">b", `\[a  \\  b\]`},
		{"line breaks", "line1<br/>line2<BR>line3<br />", `\[line1  \\  line2  \\  line3  \\ \]`},
		{"wrapping paragraph", "<p>y = Wx + b</p>", `\[y = Wx + b\]`},
		{"emphasis", "<strong>L</strong> = <em>f</em>(<b>x</b>)", `\[L = f(x)\]`},
		{"case insensitive sub", "a<SUB>k</SUB>", `\[a_{k}\]`},
		{"non-greedy sub", "x<sub>1</sub>+x<sub>2</sub>", `\[x_{1}+x_{2}\]`},
		{"unicode subscripts", "W₁₂ᵀ h₀", `\[W_1_2^T h_0\]`},
		{
			"loss",
			"<strong>L</strong> = Σ<sub>i</sub> (y<sub>i</sub> − ŷ<sub>i</sub>)²",
			`\[L = \sum_{i} (y_{i} − ŷ_{i})^2\]`,
		},
		{
			"gradient step",
			"<p>w ← w − η ∇<sub>w</sub>L</p>",
			`\[w ← w − \eta \nabla_{w}L\]`,
		},
		{"span stripped", `<span class="var">θ</span> → 0`, `\[θ \rightarrow 0\]`},
		{"whitespace collapsed", "  a \n\t b  ", `\[a b\]`},
		{"non-breaking spaces", "a\u00a0\u00a0b\u2003c\ufeff", `\[a b c\]`},
		{"empty", "", `\[\]`},
		{"only whitespace", " \n\t ", `\[\]`},
		{"only tags", "<p></p>", `\[\]`},
		{"unclosed sub", "x<sub>1", `\[x1\]`},
		{"stray angle bracket", "a < b", `\[a < b\]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Normalize(tt.in)
			if !changed {
				t.Fatalf("Normalize(%q) reported unchanged", tt.in)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNormalizeLeavesDelimitedMarkup(t *testing.T) {
	inputs := []string{
		`\[\frac{\partial L}{\partial w}\]`,
		`inline \(a<sub>1</sub>\) stays <strong>as is</strong>`,
		`<p>Σ x</p> then \[x\]`,
		`\(`,
	}
	for _, in := range inputs {
		got, changed := Normalize(in)
		if changed {
			t.Errorf("Normalize(%q) reported a change", in)
		}
		if got != in {
			t.Errorf("Normalize(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestNormalizeTwiceIsNoop(t *testing.T) {
	first, changed := Normalize("<p>δ = σ′(z) ⊙ ∂C/∂a</p><p>λ ≤ 1</p>")
	if !changed {
		t.Fatal("expected first pass to change the markup")
	}
	second, changed := Normalize(first)
	if changed {
		t.Fatal("expected second pass to short-circuit")
	}
	if second != first {
		t.Errorf("second pass changed output: %q -> %q", first, second)
	}
}

func TestSubstitutionTable(t *testing.T) {
	if len(Substitutions) != 27 {
		t.Fatalf("expected 27 substitutions, got %d", len(Substitutions))
	}
	for _, pair := range Substitutions {
		got, _ := Normalize(pair[0])
		want := `\[` + pair[1] + `\]`
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", pair[0], got, want)
		}
	}
}

func TestSubstitutionReplacesAllOccurrences(t *testing.T) {
	got, _ := Normalize("β β β")
	if got != `\[\beta \beta \beta\]` {
		t.Errorf("got %q", got)
	}
}

func TestIsNormalized(t *testing.T) {
	cases := map[string]bool{
		`\[x\]`:         true,
		`\(x\)`:         true,
		`x \] y`:        false,
		`[x]`:           false,
		`a<sub>1</sub>`: false,
	}
	for in, want := range cases {
		if got := IsNormalized(in); got != want {
			t.Errorf("IsNormalized(%q) = %v, want %v", in, got, want)
		}
	}
}
