// Package cmd — process command.
// This is the main command that orchestrates the pipeline:
// fetch → normalize formulas → init progress → show section → render → write.
//
// It handles flag validation, renderer selection, and the --only / --all modes.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/tutorpage/config"
	"github.com/gaurav-prasanna/tutorpage/core"
	"github.com/gaurav-prasanna/tutorpage/core/fetch"
	"github.com/gaurav-prasanna/tutorpage/core/output"
	"github.com/gaurav-prasanna/tutorpage/core/pipeline"
	"github.com/gaurav-prasanna/tutorpage/core/render"
	"github.com/gaurav-prasanna/tutorpage/crawl"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagOnly      bool
	flagAll       bool
	flagHTML      bool
	flagMarkdown  bool
	flagJSON      bool
	flagPDF       bool
	flagSection   string
	flagOutputDir string
)

var processCmd = &cobra.Command{
	Use:   "process <file|dir|url>",
	Short: "Process a tutorial page and write it in the specified output format",
	Long: `Process loads a tutorial page, rewrites its formula blocks into KaTeX display
math, fills in the progress bars, optionally activates a section, and writes
the result in the specified output format (HTML, Markdown, JSON, or PDF).

Examples:
  tutorpage process chapter1.html --html --output_dir ./out
  tutorpage process chapter1.html --section backprop --html --output_dir ./out
  tutorpage process https://example.com/nn/chapter1.html --json
  tutorpage process ./site/nn --all --markdown --output_dir ./md`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Mode flags.
	processCmd.Flags().BoolVar(&flagOnly, "only", false, "Process only the given page (default)")
	processCmd.Flags().BoolVar(&flagAll, "all", false, "Process every chapter next to the URL, or every page in the directory")

	// Output format flags (mutually exclusive).
	processCmd.Flags().BoolVar(&flagHTML, "html", false, "Output processed HTML")
	processCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	processCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	processCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF report")

	processCmd.Flags().StringVar(&flagSection, "section", "", "Section id to activate after initialization")

	// Output directory.
	processCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: config output.dir, then current directory)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	source := args[0]

	// --- Validate flags ---
	if err := validateFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Select renderer.
	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	outDir := flagOutputDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	writer, err := output.New(outDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fetcher := fetch.ForSource(source, cfg.FetchOptions())
	opts := pipeline.Options{
		Selectors: cfg.Selectors,
		Section:   flagSection,
		Logger:    logger,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagAll {
		return runAll(ctx, cmd, source, fetcher, opts, renderer, writer)
	}
	return runOnly(ctx, cmd, source, fetcher, opts, renderer, writer)
}

// runOnly processes a single page through the pipeline.
func runOnly(
	ctx context.Context,
	cmd *cobra.Command,
	source string,
	fetcher core.Fetcher,
	opts pipeline.Options,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory; use --all to process every page in it", source)
	}

	data, err := processSource(ctx, source, fetcher, opts, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteOnly(source, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// runAll discovers every chapter and processes each through the pipeline.
func runAll(
	ctx context.Context,
	cmd *cobra.Command,
	source string,
	fetcher core.Fetcher,
	opts pipeline.Options,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fmt.Fprintf(stdout, "Discovering pages from %s...\n", source)

	pages, root, err := discover(ctx, source, fetcher)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(stdout, "Found %d pages to process\n", len(pages))

	var errCount int
	for i, pageSource := range pages {
		fmt.Fprintf(stdout, "[%d/%d] Processing %s\n", i+1, len(pages), pageSource)

		data, err := processSource(ctx, pageSource, fetcher, opts, renderer)
		if err != nil {
			fmt.Fprintf(stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteAll(pageSource, root, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(stderr, "\n%d/%d pages failed\n", errCount, len(pages))
	}
	return nil
}

// discover lists the pages for --all mode along with the root that
// output paths are made relative to.
func discover(ctx context.Context, source string, fetcher core.Fetcher) ([]string, string, error) {
	if fetch.IsURL(source) {
		urls, err := crawl.DiscoverAll(ctx, source, fetcher)
		return urls, "", err
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, "", err
	}
	if !info.IsDir() {
		return []string{source}, "", nil
	}
	files, err := crawl.DiscoverFiles(source)
	return files, source, err
}

// processSource runs a single page through the pipeline and renders it.
func processSource(
	ctx context.Context,
	source string,
	fetcher core.Fetcher,
	opts pipeline.Options,
	renderer core.Renderer,
) ([]byte, error) {
	page, err := pipeline.Process(ctx, source, fetcher, opts)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(page)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// validateFlags checks that exactly one output format is chosen and
// that --only and --all are not both specified.
func validateFlags() error {
	// Check mutually exclusive mode flags.
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	// Count output formats.
	formatCount := 0
	for _, set := range []bool{flagHTML, flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --html, --markdown, --json, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagHTML:
		return render.NewHTMLRenderer(), nil
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}

// newPage is shared by commands that only inspect a single page.
func newPage(ctx context.Context, source string, cfg config.Config, section string) (*core.Page, error) {
	return pipeline.Process(ctx, source, fetch.ForSource(source, cfg.FetchOptions()), pipeline.Options{
		Selectors: cfg.Selectors,
		Section:   section,
		Logger:    logger,
	})
}
