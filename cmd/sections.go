package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/gaurav-prasanna/tutorpage/core/navigate"
	"github.com/spf13/cobra"
)

var flagShow string

var sectionsCmd = &cobra.Command{
	Use:   "sections <file|url>",
	Short: "List the declared sections of a page with their progress",
	Long: `Sections prints the page's section order as declared by its navigation
buttons, with each section's 1-based position and progress-bar fill.

Examples:
  tutorpage sections chapter1.html
  tutorpage sections chapter1.html --section backprop`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().StringVar(&flagShow, "section", "", "Section id to mark active")
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	page, err := newPage(ctx, args[0], cfg, flagShow)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tLABEL\tPROGRESS\tACTIVE")
	for _, s := range page.Sections {
		active := ""
		if s.Active {
			active = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.Position, s.ID, s.Label, navigate.FormatPercent(s.Progress), active)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.ChapterProgress != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "chapter progress: %s%%\n", page.ChapterProgress)
	}
	return nil
}
