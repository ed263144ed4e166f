package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomic-ehr/fhirpath-go/internal/parser"
	"github.com/atomic-ehr/fhirpath-go/pkg/perror"
	"github.com/atomic-ehr/fhirpath-go/pkg/printer"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a FHIRPath expression and display the AST",
	Long: `Parse a FHIRPath expression and display its abstract syntax tree.

If no file is provided and -e is not used, reads from stdin.
Use --dump-ast to show the full indented tree instead of the
source-equivalent rendering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline text instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full indented AST tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readSource(parseEval, args)
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

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		fmt.Println(printer.PrettyPrint(node, 0))
	} else {
		fmt.Println(printer.AstToString(node))
	}

	return nil
}
