// Package printer renders a pkg/ast tree back to text: AstToString for a
// reparseable, source-equivalent form, and PrettyPrint for a human-readable
// indented tree dump.
package printer

import (
	"fmt"
	"os"
	"strings"

	"github.com/atomic-ehr/fhirpath-go/pkg/ast"
)

// AstToString renders node as a source-equivalent expression. It simply
// delegates to the node's own String(), which every ast variant already
// implements with the correct parenthesization rules (Binary/Is/As
// parenthesize themselves; Dot/Indexer/Function do not).
func AstToString(node ast.Node) string {
	if node == nil {
		return ""
	}
	return node.String()
}

// PrintAST writes PrettyPrint(node, 0) to stdout, as a convenience for
// demo tools.
func PrintAST(node ast.Node) {
	fmt.Fprintln(os.Stdout, PrettyPrint(node, 0))
}

// PrettyPrint renders an indented, multi-line tree view of node, labelling
// each node's kind and key fields. depth controls the starting indent
// (each level is 2 spaces), so callers recursing manually can nest output
// inside their own formatting.
func PrettyPrint(node ast.Node, depth int) string {
	var b strings.Builder
	printNode(&b, node, depth)
	return strings.TrimRight(b.String(), "\n")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func printNode(b *strings.Builder, node ast.Node, depth int) {
	if node == nil {
		indent(b, depth)
		b.WriteString("<nil>\n")
		return
	}

	switch n := node.(type) {
	case *ast.Literal:
		indent(b, depth)
		fmt.Fprintf(b, "Literal(%s) %s\n", n.Kind, n.String())

	case *ast.Null:
		indent(b, depth)
		b.WriteString("Null\n")

	case *ast.Identifier:
		indent(b, depth)
		fmt.Fprintf(b, "Identifier %s\n", n.Value)

	case *ast.Variable:
		indent(b, depth)
		fmt.Fprintf(b, "Variable $%s\n", n.Name)

	case *ast.EnvVariable:
		indent(b, depth)
		fmt.Fprintf(b, "EnvVariable %%%s\n", n.Name)

	case *ast.Unary:
		indent(b, depth)
		fmt.Fprintf(b, "Unary %s\n", n.Op)
		printNode(b, n.Operand, depth+1)

	case *ast.Binary:
		indent(b, depth)
		fmt.Fprintf(b, "Binary %s\n", n.Op)
		printNode(b, n.Left, depth+1)
		printNode(b, n.Right, depth+1)

	case *ast.Dot:
		indent(b, depth)
		b.WriteString("Dot\n")
		printNode(b, n.Left, depth+1)
		printNode(b, n.Right, depth+1)

	case *ast.Indexer:
		indent(b, depth)
		b.WriteString("Indexer\n")
		printNode(b, n.Left, depth+1)
		printNode(b, n.Index, depth+1)

	case *ast.Function:
		indent(b, depth)
		fmt.Fprintf(b, "Function %s\n", n.Name)
		for _, a := range n.Args {
			printNode(b, a, depth+1)
		}

	case *ast.Is:
		indent(b, depth)
		fmt.Fprintf(b, "Is %s\n", n.Type.String())
		printNode(b, n.Left, depth+1)

	case *ast.As:
		indent(b, depth)
		fmt.Fprintf(b, "As %s\n", n.Type.String())
		printNode(b, n.Left, depth+1)

	default:
		indent(b, depth)
		fmt.Fprintf(b, "%T %s\n", node, node.String())
	}
}
