package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomic-ehr/fhirpath-go/internal/parser"
	"github.com/atomic-ehr/fhirpath-go/pkg/perror"
)

var printEval string

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Parse and re-print a FHIRPath expression",
	Long: `Parse a FHIRPath expression and print it back out in its
source-equivalent, reparseable form (AstToString).

This round-trips the expression through the parser and printer, which
is useful for checking that an expression parses the way you expect
and for normalizing whitespace/comments away.

If no file is provided and -e is not used, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().StringVarP(&printEval, "eval", "e", "", "print inline text instead of reading from a file")
}

func runPrint(cmd *cobra.Command, args []string) error {
	input, err := readSource(printEval, args)
	if err != nil {
		return err
	}

	node, err := parser.Parse(input)
	if err != nil {
		if perr, ok := err.(*perror.ParseError); ok {
			fmt.Fprint(os.Stderr, perr.Error())
			return fmt.Errorf("parsing failed")
		}
		return err
	}

	fmt.Println(node.String())
	return nil
}
