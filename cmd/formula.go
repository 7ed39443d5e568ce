package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/tutorpage/core/normalize"
	"github.com/spf13/cobra"
)

var formulaCmd = &cobra.Command{
	Use:   "formula [markup...]",
	Short: "Rewrite formula markup into KaTeX display math",
	Long: `Formula runs a single piece of formula markup through the same rewrite used
for .formula-display blocks and prints the result. Arguments are joined with
spaces; with no arguments the markup is read from stdin.

Examples:
  tutorpage formula 'Σ x ≥ 0'
  tutorpage formula 'W<sup>T</sup>x + b<sub>i</sub>'
  echo 'a</p><p>b' | tutorpage formula`,
	RunE: runFormula,
}

func init() {
	rootCmd.AddCommand(formulaCmd)
}

func runFormula(cmd *cobra.Command, args []string) error {
	markup := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		markup = strings.TrimRight(string(data), "\r\n")
	}

	latex, changed := normalize.Normalize(markup)
	if !changed {
		logger.Debug("markup already delimited, left unchanged")
	}
	fmt.Fprintln(cmd.OutOrStdout(), latex)
	return nil
}
