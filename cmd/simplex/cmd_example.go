package main

import (
	"fmt"

	"simplex/internal/lp"

	"github.com/spf13/cobra"
)

var (
	examplePlain   bool
	exampleGrammar bool
)

// exampleCmd prints the bundled example program
var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example LP program",
	Long: `Prints the bundled example with notes on each part. Use --plain for the
program alone, ready to pipe into "simplex solve".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch {
		case exampleGrammar:
			fmt.Fprintln(out, lp.Grammar)
		case examplePlain:
			fmt.Fprintln(out, lp.Example)
		default:
			fmt.Fprint(out, lp.AnnotatedExample())
		}
		return nil
	},
}

func init() {
	exampleCmd.Flags().BoolVar(&examplePlain, "plain", false, "Print the program without notes")
	exampleCmd.Flags().BoolVar(&exampleGrammar, "grammar", false, "Print the grammar the solver accepts")
}
