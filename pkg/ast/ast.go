// Package ast defines the FHIRPath abstract syntax tree: a closed set of
// exported node variants, each implementing Node (and Expression, since
// every FHIRPath construct is an expression — there are no statements).
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

// Node is anything that can appear in a parsed FHIRPath tree.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is a Node that produces a value. FHIRPath has no statement
// forms, so every Node in this package is also an Expression.
type Expression interface {
	Node
	expressionNode()
}

// LiteralKind classifies a Literal node's value without requiring full type
// inference — spec scope is limited to distinguishing the literal shapes the
// tokenizer already knows about.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralLongNumber
	LiteralBool
	LiteralDate
	LiteralDateTime
	LiteralTime
	LiteralQuantity
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "String"
	case LiteralNumber:
		return "Number"
	case LiteralLongNumber:
		return "LongNumber"
	case LiteralBool:
		return "Bool"
	case LiteralDate:
		return "Date"
	case LiteralDateTime:
		return "DateTime"
	case LiteralTime:
		return "Time"
	case LiteralQuantity:
		return "Quantity"
	default:
		return "Unknown"
	}
}

// Literal is a scalar constant: a string, number, long, boolean, date,
// datetime, time, or quantity token.
type Literal struct {
	Token token.Token
	Kind  LiteralKind
	Value string // raw surface text (string contents already unescaped)
}

func (l *Literal) expressionNode()      {}
func (l *Literal) Pos() token.Position  { return l.Token.Pos }
func (l *Literal) TokenLiteral() string { return l.Token.Value }
func (l *Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`, "\f", `\f`).Replace(l.Value) + "'"
	case LiteralBool, LiteralNumber, LiteralQuantity:
		return l.Value
	case LiteralLongNumber:
		return l.Value + "L"
	case LiteralDate, LiteralDateTime, LiteralTime:
		return "@" + l.Value
	default:
		return l.Value
	}
}

// Null is the FHIRPath empty-collection literal `{}`.
type Null struct {
	Token token.Token
}

func (n *Null) expressionNode()      {}
func (n *Null) Pos() token.Position  { return n.Token.Pos }
func (n *Null) TokenLiteral() string { return n.Token.Value }
func (n *Null) String() string       { return "{}" }

// Identifier is a bare (or backtick-quoted) name: a resource type, a
// property, or a function name used outside of call position.
type Identifier struct {
	Token  token.Token
	Value  string
	Quoted bool
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) TokenLiteral() string { return i.Token.Value }
func (i *Identifier) String() string {
	if i.Quoted {
		return "`" + strings.ReplaceAll(i.Value, "`", "``") + "`"
	}
	return i.Value
}

// Variable is a `$this`/`$index`/`$total`-style special variable.
type Variable struct {
	Token token.Token
	Name  string
}

func (v *Variable) expressionNode()      {}
func (v *Variable) Pos() token.Position  { return v.Token.Pos }
func (v *Variable) TokenLiteral() string { return v.Token.Value }
func (v *Variable) String() string       { return "$" + v.Name }

// EnvVariable is a `%resource`/`%'quoted const'`-style environment variable.
type EnvVariable struct {
	Token token.Token
	Name  string
}

func (e *EnvVariable) expressionNode()      {}
func (e *EnvVariable) Pos() token.Position  { return e.Token.Pos }
func (e *EnvVariable) TokenLiteral() string { return e.Token.Value }
func (e *EnvVariable) String() string       { return "%" + e.Name }

// Unary is a prefix `+`, `-`, or `not` applied to an operand.
type Unary struct {
	Token   token.Token
	Op      token.TokenType
	Operand Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) Pos() token.Position  { return u.Token.Pos }
func (u *Unary) TokenLiteral() string { return u.Token.Value }
func (u *Unary) String() string {
	return opSymbol(u.Op) + u.Operand.String()
}

// Binary is an infix operator expression: arithmetic, comparison,
// equality, logical, union, or `in`/`contains` membership.
type Binary struct {
	Token token.Token
	Op    token.TokenType
	Left  Expression
	Right Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) Pos() token.Position  { return b.Left.Pos() }
func (b *Binary) TokenLiteral() string { return b.Token.Value }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), opSymbol(b.Op), b.Right.String())
}

// Dot is member/path navigation: `Left.Right`.
type Dot struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (d *Dot) expressionNode()      {}
func (d *Dot) Pos() token.Position  { return d.Left.Pos() }
func (d *Dot) TokenLiteral() string { return d.Token.Value }
func (d *Dot) String() string {
	return d.Left.String() + "." + d.Right.String()
}

// Indexer is a postfix `Left[Index]` collection-index expression.
type Indexer struct {
	Token token.Token
	Left  Expression
	Index Expression
}

func (ix *Indexer) expressionNode()      {}
func (ix *Indexer) Pos() token.Position  { return ix.Left.Pos() }
func (ix *Indexer) TokenLiteral() string { return ix.Token.Value }
func (ix *Indexer) String() string {
	return fmt.Sprintf("%s[%s]", ix.Left.String(), ix.Index.String())
}

// Function is a call expression `Name(Args...)`, optionally invoked in
// member position (`Left.Name(Args...)` is represented as a Dot whose
// Right is the Function).
type Function struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (f *Function) expressionNode()      {}
func (f *Function) Pos() token.Position  { return f.Token.Pos }
func (f *Function) TokenLiteral() string { return f.Token.Value }
func (f *Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// TypeSpecifier is a (possibly qualified) type name used by `is`/`as`: one
// or more dot-separated identifier segments, e.g. `Integer`,
// `FHIR.Observation`, or `FHIR.Observation.Component`.
type TypeSpecifier struct {
	Token    token.Token
	Segments []string
}

func (t *TypeSpecifier) String() string { return strings.Join(t.Segments, ".") }

// Is is the `Expr is TypeSpecifier` type-testing expression.
type Is struct {
	Token token.Token
	Left  Expression
	Type  *TypeSpecifier
}

func (is *Is) expressionNode()      {}
func (is *Is) Pos() token.Position  { return is.Left.Pos() }
func (is *Is) TokenLiteral() string { return is.Token.Value }
func (is *Is) String() string {
	return fmt.Sprintf("(%s is %s)", is.Left.String(), is.Type.String())
}

// As is the `Expr as TypeSpecifier` type-casting expression.
type As struct {
	Token token.Token
	Left  Expression
	Type  *TypeSpecifier
}

func (a *As) expressionNode()      {}
func (a *As) Pos() token.Position  { return a.Left.Pos() }
func (a *As) TokenLiteral() string { return a.Token.Value }
func (a *As) String() string {
	return fmt.Sprintf("(%s as %s)", a.Left.String(), a.Type.String())
}

// opSymbol renders a token type back to its FHIRPath surface spelling for
// use by String(). Kept local to ast rather than on token.TokenType because
// it encodes stringifier formatting choices, not lexical identity.
func opSymbol(tt token.TokenType) string {
	switch tt {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.AMP:
		return "&"
	case token.PIPE:
		return "|"
	case token.EQUALS:
		return "="
	case token.NOT_EQUALS:
		return "!="
	case token.EQUIVALENCE:
		return "~"
	case token.NOT_EQUIVALENCE:
		return "!~"
	case token.LESS_THAN:
		return "<"
	case token.LESS_EQUALS:
		return "<="
	case token.GREATER_THAN:
		return ">"
	case token.GREATER_EQUALS:
		return ">="
	case token.AND:
		return "and"
	case token.OR:
		return "or"
	case token.XOR:
		return "xor"
	case token.IMPLIES:
		return "implies"
	case token.DIV:
		return "div"
	case token.MOD:
		return "mod"
	case token.IN:
		return "in"
	case token.CONTAINS:
		return "contains"
	case token.NOT:
		return "not "
	default:
		return tt.String()
	}
}

// Quote renders s as a Go string literal, for debug dumps of a token's raw
// value.
func Quote(s string) string { return strconv.Quote(s) }
