package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const chapterHTML = `<html><head><title>Chapter 1</title></head><body>
<button class="section-nav-btn" data-section="intro">Intro</button>
<button class="section-nav-btn" data-section="math">Math</button>
<div class="section-progress-fill"></div>
<div id="intro" class="content-section active"><div class="formula-display">x<sup>2</sup></div></div>
<div id="math" class="content-section"></div>
</body></html>`

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	flagOnly, flagAll = false, false
	flagHTML, flagMarkdown, flagJSON, flagPDF = false, false, false, false
	flagSection, flagOutputDir, flagShow = "", "", ""
	flagConfig = filepath.Join(os.TempDir(), "tutorpage-test-missing-config.yaml")
}

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chapter1.html")
	if err := os.WriteFile(path, []byte(chapterHTML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormulaCommand(t *testing.T) {
	out, err := execute(t, "", "formula", "Σ", "x", "≥", "0")
	if err != nil {
		t.Fatal(err)
	}
	if out != "\\[\\sum x \\ge 0\\]\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFormulaCommandStdin(t *testing.T) {
	out, err := execute(t, "a</p><p>b\n", "formula")
	if err != nil {
		t.Fatal(err)
	}
	if out != `\[a  \\  b\]`+"\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSectionsCommand(t *testing.T) {
	path := writePage(t)
	out, err := execute(t, "", "sections", path, "--section", "math")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"intro", "50%", "math", "100%", "*"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestProcessCommandJSON(t *testing.T) {
	path := writePage(t)
	outDir := t.TempDir()

	out, err := execute(t, "", "process", path, "--json", "--section", "math", "--output_dir", outDir)
	if err != nil {
		t.Fatal(err)
	}
	if want := "✓ Written: " + filepath.Join(outDir, "chapter1.json"); !strings.Contains(out, want) {
		t.Errorf("expected %q in output, got %q", want, out)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "chapter1.json"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	var got struct {
		ActiveSection string `json:"active_section"`
		Formulas      []struct {
			LaTeX string `json:"latex"`
		} `json:"formulas"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ActiveSection != "math" {
		t.Errorf("unexpected active section %q", got.ActiveSection)
	}
	if len(got.Formulas) != 1 || got.Formulas[0].LaTeX != `\[x^{2}\]` {
		t.Errorf("unexpected formulas %+v", got.Formulas)
	}
}

func TestProcessCommandAllDirectory(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.html", filepath.Join("nn", "b.html")} {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(chapterHTML), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	outDir := t.TempDir()

	out, err := execute(t, "", "process", root, "--all", "--html", "--output_dir", outDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Found 2 pages to process", "[2/2] Processing", "✓ Written: "} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	for _, name := range []string{"a.html", filepath.Join("nn", "b.html")} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Errorf("expected %s: %v", name, err)
			continue
		}
		if !strings.Contains(string(data), `\[x^{2}\]`) {
			t.Errorf("expected normalized formula in %s", name)
		}
	}
}

func TestProcessCommandRejectsDirectoryWithoutAll(t *testing.T) {
	if _, err := execute(t, "", "process", t.TempDir(), "--html"); err == nil {
		t.Error("expected an error for a directory without --all")
	}
}

func TestValidateFlags(t *testing.T) {
	resetFlags()
	if err := validateFlags(); err == nil {
		t.Error("expected an error with no format")
	}

	flagJSON, flagPDF = true, true
	if err := validateFlags(); err == nil || !strings.Contains(err.Error(), "only one output format") {
		t.Errorf("expected a multiple-format error, got %v", err)
	}

	resetFlags()
	flagMarkdown, flagOnly, flagAll = true, true, true
	if err := validateFlags(); err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("expected a mode error, got %v", err)
	}

	resetFlags()
	flagPDF = true
	if err := validateFlags(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	r, err := selectRenderer()
	if err != nil || r.Extension() != ".pdf" {
		t.Errorf("expected PDF renderer, got %v (%v)", r, err)
	}
}
