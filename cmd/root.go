// Package cmd implements the CLI commands for tutorpage using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gaurav-prasanna/tutorpage/config"
	"github.com/spf13/cobra"
)

// Global flag variables.
var (
	flagConfig  string
	flagVerbose bool
)

// logger is configured from --verbose before any command runs.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "tutorpage",
	Short: "tutorpage — prepare paginated tutorial pages for KaTeX",
	Long: `tutorpage applies a tutorial page's load-time behaviour ahead of time:
formula blocks are rewritten into KaTeX display math, progress bars are
filled in, and a chosen section can be made active. The processed page is
written as HTML, Markdown, JSON, or a PDF report.

Usage:
  tutorpage process <file|dir|url> [flags]
  tutorpage formula [markup...]
  tutorpage sections <file|url>`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/tutorpage/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig reads the configuration selected by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
