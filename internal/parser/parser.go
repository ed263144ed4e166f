// Package parser implements the FHIRPath expression parser: a Pratt
// (operator-precedence) parser producing a pkg/ast tree from the token
// stream an internal/lexer.Lexer produces.
//
// Unlike a multi-statement compiler front end, Parse stops at the first
// error and returns no partial tree — there is no synchronize-and-resume
// pass here, because a FHIRPath expression is a single production with no
// safe resumption point.
package parser

import (
	"github.com/atomic-ehr/fhirpath-go/internal/lexer"
	"github.com/atomic-ehr/fhirpath-go/pkg/ast"
	"github.com/atomic-ehr/fhirpath-go/pkg/perror"
	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

// Precedence levels, lowest to highest, per the FHIRPath grammar.
const (
	_ int = iota
	LOWEST
	IMPLIES_PREC // implies
	OR_PREC      // or xor
	AND_PREC     // and
	MEMBERSHIP   // in contains
	EQUALITY     // = != ~ !~
	RELATIONAL   // < <= > >=
	TYPE_TEST    // is as
	UNION        // |
	ADDITIVE     // + - &
	MULTIPLICATIVE
	PREFIX  // unary + - not
	POSTFIX // . [] ()
)

var precedences = map[token.TokenType]int{
	token.IMPLIES:         IMPLIES_PREC,
	token.OR:              OR_PREC,
	token.XOR:             OR_PREC,
	token.AND:             AND_PREC,
	token.IN:              MEMBERSHIP,
	token.CONTAINS:        MEMBERSHIP,
	token.EQUALS:          EQUALITY,
	token.NOT_EQUALS:      EQUALITY,
	token.EQUIVALENCE:     EQUALITY,
	token.NOT_EQUIVALENCE: EQUALITY,
	token.LESS_THAN:       RELATIONAL,
	token.LESS_EQUALS:     RELATIONAL,
	token.GREATER_THAN:    RELATIONAL,
	token.GREATER_EQUALS:  RELATIONAL,
	token.PIPE:            UNION,
	token.PLUS:            ADDITIVE,
	token.MINUS:           ADDITIVE,
	token.AMP:             ADDITIVE,
	token.STAR:            MULTIPLICATIVE,
	token.SLASH:           MULTIPLICATIVE,
	token.DIV:             MULTIPLICATIVE,
	token.MOD:             MULTIPLICATIVE,
	token.IS:              TYPE_TEST,
	token.AS:              TYPE_TEST,
	token.DOT:             POSTFIX,
	token.LBRACKET:        POSTFIX,
	token.LPAREN:          POSTFIX,
}

func getPrecedence(tt token.TokenType) int {
	if p, ok := precedences[tt]; ok {
		return p
	}
	return LOWEST
}

// maxRecursionDepth bounds parseExpression nesting so that a
// deeply (or maliciously) nested input fails with a clear diagnostic
// instead of overflowing the Go call stack.
const maxRecursionDepth = 500

type prefixParseFn func() ast.Expression
type infixParseFn func(left ast.Expression) ast.Expression

// Parser is a single-use recursive-descent/Pratt parser over one Lexer.
type Parser struct {
	l      *lexer.Lexer
	source string

	curToken  token.Token
	peekToken token.Token
	prevToken token.Token // curToken before the most recent nextToken(), for EOF diagnostics

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	err   *perror.ParseError
	depth int
	phase string // current operand context, for noPrefixParseFn's message
}

// New creates a Parser over l, reading the first two tokens to prime
// curToken/peekToken.
func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{l: l, source: source}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:        p.parseIdentifier,
		token.QUOTED_IDENT: p.parseQuotedIdentifier,
		token.NUMBER:       p.parseNumberLiteral,
		token.LONG_NUMBER:  p.parseLongLiteral,
		token.STRING:       p.parseStringLiteral,
		token.TRUE:         p.parseBoolLiteral,
		token.FALSE:        p.parseBoolLiteral,
		token.DATE:         p.parseDateLiteral,
		token.DATETIME:     p.parseDateTimeLiteral,
		token.TIME:         p.parseTimeLiteral,
		token.QUANTITY:     p.parseQuantityLiteral,
		token.VARIABLE:     p.parseVariable,
		token.ENV_VARIABLE: p.parseEnvVariable,
		token.LPAREN:       p.parseGroupedExpression,
		token.LBRACE:       p.parseNullLiteral,
		token.MINUS:        p.parseUnary,
		token.PLUS:         p.parseUnary,
		token.NOT:          p.parseUnary,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.AND:             p.parseBinary,
		token.OR:              p.parseBinary,
		token.XOR:             p.parseBinary,
		token.IMPLIES:         p.parseBinary,
		token.IN:              p.parseBinary,
		token.CONTAINS:        p.parseBinary,
		token.EQUALS:          p.parseBinary,
		token.NOT_EQUALS:      p.parseBinary,
		token.EQUIVALENCE:     p.parseBinary,
		token.NOT_EQUIVALENCE: p.parseBinary,
		token.LESS_THAN:       p.parseBinary,
		token.LESS_EQUALS:     p.parseBinary,
		token.GREATER_THAN:    p.parseBinary,
		token.GREATER_EQUALS:  p.parseBinary,
		token.PIPE:            p.parseBinary,
		token.PLUS:            p.parseBinary,
		token.MINUS:           p.parseBinary,
		token.AMP:             p.parseBinary,
		token.STAR:            p.parseBinary,
		token.SLASH:           p.parseBinary,
		token.DIV:             p.parseBinary,
		token.MOD:             p.parseBinary,
		token.DOT:             p.parseDot,
		token.LBRACKET:        p.parseIndexer,
		token.IS:              p.parseIs,
		token.AS:              p.parseAs,
	}

	p.nextToken()
	p.nextToken()
	p.prevToken = p.curToken
	return p
}

func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Parse consumes the entire token stream as a single expression. It
// returns the parsed tree, or (nil, *perror.ParseError) on the first
// lexical or syntactic failure.
func Parse(source string) (ast.Node, error) {
	l := lexer.New(source)
	p := New(l, source)
	expr := p.parseExpression(LOWEST)
	if p.err == nil && p.curToken.Type != token.EOF {
		p.unexpectedToken()
	}
	// A lexical error at or before the syntactic one is the first failure;
	// the syntactic error is then only a consequence of its ILLEGAL token.
	if lexErr := l.Err(); lexErr != nil && (p.err == nil || lexErr.Pos.Offset <= p.err.Position) {
		return nil, p.newLexError(lexErr)
	}
	if p.err != nil {
		return nil, p.err
	}
	return expr, nil
}

func (p *Parser) newLexError(le *lexer.LexError) *perror.ParseError {
	b := perror.NewBuilder(perror.KindLexical).
		WithMessage(le.Message).
		WithPosition(le.Pos, 1).
		WithSource(p.source)
	if delim, ok := unterminatedDelimiter(le.Message); ok {
		b = b.WithSuggestion(perror.SuggestUnterminatedLiteral(delim))
	}
	return b.Build()
}

// unterminatedDelimiter maps a lexical error message about an unterminated
// literal to the delimiter that was left unclosed, for
// SuggestUnterminatedLiteral. ok is false for lexical errors that aren't
// about an unterminated literal.
func unterminatedDelimiter(message string) (delim string, ok bool) {
	switch message {
	case "Unterminated string literal":
		return "'", true
	case "Unterminated quoted identifier":
		return "`", true
	case "Unterminated comment":
		return "*/", true
	default:
		return "", false
	}
}

func (p *Parser) fail(err *perror.ParseError) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) unexpectedToken() {
	p.fail(perror.NewBuilder(perror.KindUnexpected).
		WithMessage("Unexpected token").
		WithPosition(p.curToken.Pos, p.curToken.Length()).
		WithSource(p.source).
		WithActual(p.curToken.Type, p.curToken.Value).
		Build())
}

// operand-context messages, keyed by the named contexts the message
// dictionary defines: the default top-level "expression" context, and the
// narrower "binary-operator" context entered while parsing an operator's
// right-hand side.
const (
	phaseExpression    = ""
	phaseBinaryOperand = "binary-operator"
)

// noPrefixParseFn fails because curToken has no registered prefix parse
// function. When curToken is EOF, the lexer's own EOF position sits one rune
// past the last real character (there is nothing at EOF to underline), so
// the diagnostic instead points at the last real token consumed.
func (p *Parser) noPrefixParseFn() {
	msg := "Unexpected token in expression. Expected an operand, function, or identifier."
	if p.phase == phaseBinaryOperand {
		msg = "Unexpected token. Expected an expression after binary operator."
	}
	pos, length := p.curToken.Pos, p.curToken.Length()
	if p.curToken.Type == token.EOF && p.prevToken.Type != token.EOF {
		pos, length = p.prevToken.Pos, p.prevToken.Length()
	}
	p.fail(perror.NewBuilder(perror.KindUnexpected).
		WithMessage(msg).
		WithPosition(pos, length).
		WithSource(p.source).
		WithActual(p.curToken.Type, p.curToken.Value).
		WithSuggestion(perror.SuggestBracketBalance(p.source, p.curToken.Pos.Offset)).
		Build())
}

func (p *Parser) expect(tt token.TokenType, what string) bool {
	if p.curToken.Type == tt {
		return true
	}
	p.fail(perror.NewBuilder(perror.KindMissing).
		WithPosition(p.curToken.Pos, p.curToken.Length()).
		WithSource(p.source).
		WithExpectedString(what).
		WithActual(p.curToken.Type, p.curToken.Value).
		Build())
	return false
}

// parseExpression is the Pratt loop: one prefix parse followed by a
// left-associative climb over infix operators whose precedence exceeds the
// caller's floor.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	if p.err != nil {
		return nil
	}
	p.depth++
	if p.depth > maxRecursionDepth {
		p.fail(perror.NewBuilder(perror.KindInvalid).
			WithMessage("Expression too deeply nested").
			WithPosition(p.curToken.Pos, p.curToken.Length()).
			WithSource(p.source).
			Build())
		p.depth--
		return nil
	}
	defer func() { p.depth-- }()

	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.noPrefixParseFn()
		return nil
	}
	left := prefix()
	if p.err != nil {
		return nil
	}

	for precedence < getPrecedence(p.curToken.Type) {
		infix, ok := p.infixParseFns[p.curToken.Type]
		if !ok {
			break
		}
		left = infix(left)
		if p.err != nil {
			return nil
		}
	}

	return left
}
