package parser

import (
	"strings"

	"github.com/atomic-ehr/fhirpath-go/pkg/ast"
	"github.com/atomic-ehr/fhirpath-go/pkg/perror"
	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if p.curToken.Type == token.LPAREN {
		return p.finishFunctionCall(tok)
	}
	return &ast.Identifier{Token: tok, Value: tok.Value}
}

func (p *Parser) parseQuotedIdentifier() ast.Expression {
	tok := p.curToken
	p.nextToken()
	if p.curToken.Type == token.LPAREN {
		return p.finishFunctionCall(tok)
	}
	return &ast.Identifier{Token: tok, Value: tok.Value, Quoted: true}
}

// finishFunctionCall parses "(args...)" immediately following a name token
// already consumed into tok, and is shared by bare and backtick-quoted
// function names (any reserved word is a legal function name, per the
// after-dot/call-position carve-out in the tokenizer's keyword handling).
func (p *Parser) finishFunctionCall(nameTok token.Token) ast.Expression {
	p.nextToken() // consume '('
	var args []ast.Expression
	for p.curToken.Type != token.RPAREN {
		savedPhase := p.phase
		p.phase = phaseExpression
		arg := p.parseExpression(LOWEST)
		p.phase = savedPhase
		if p.err != nil {
			return nil
		}
		args = append(args, arg)
		if p.curToken.Type == token.COMMA {
			p.nextToken()
			continue
		}
		if p.curToken.Type != token.RPAREN {
			p.fail(perror.NewBuilder(perror.KindUnexpected).
				WithMessage("Unexpected token in function arguments. Expected an expression or closing parenthesis.").
				WithPosition(p.curToken.Pos, p.curToken.Length()).
				WithSource(p.source).
				WithActual(p.curToken.Type, p.curToken.Value).
				Build())
			return nil
		}
	}
	p.nextToken() // consume ')'
	return &ast.Function{Token: nameTok, Name: token.IdentifierText(nameTok), Args: args}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralNumber, Value: tok.Value}
}

func (p *Parser) parseLongLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralLongNumber, Value: tok.Value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralString, Value: tok.Value}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralBool, Value: tok.Value}
}

func (p *Parser) parseDateLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralDate, Value: tok.Value}
}

func (p *Parser) parseDateTimeLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralDateTime, Value: tok.Value}
}

func (p *Parser) parseTimeLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralTime, Value: tok.Value}
}

func (p *Parser) parseQuantityLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralQuantity, Value: tok.Value}
}

func (p *Parser) parseVariable() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.Variable{Token: tok, Name: tok.Value}
}

func (p *Parser) parseEnvVariable() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.EnvVariable{Token: tok, Name: tok.Value}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '{'
	if !p.expect(token.RBRACE, "'}'") {
		return nil
	}
	p.nextToken() // consume '}'
	return &ast.Null{Token: tok}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('
	savedPhase := p.phase
	p.phase = phaseExpression
	expr := p.parseExpression(LOWEST)
	p.phase = savedPhase
	if p.err != nil {
		return nil
	}
	if !p.expect(token.RPAREN, "')'") {
		return nil
	}
	p.nextToken() // consume ')'
	return expr
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.curToken
	op := tok.Type
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if p.err != nil {
		return nil
	}
	return &ast.Unary{Token: tok, Op: op, Operand: operand}
}

// parseBinary consumes an infix operator and its right-hand operand. Every
// binary operator is left-associative except `implies`, which is
// right-associative (spec §4.2): the right-hand recursion is given a floor
// one level lower than its own precedence so a chain of `implies` nests to
// the right instead of the left.
func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Type
	prec := getPrecedence(tok.Type)
	p.nextToken()
	rightFloor := prec
	if op == token.IMPLIES {
		rightFloor = prec - 1
	}
	savedPhase := p.phase
	p.phase = phaseBinaryOperand
	right := p.parseExpression(rightFloor)
	p.phase = savedPhase
	if p.err != nil {
		return nil
	}
	return &ast.Binary{Token: tok, Op: op, Left: left, Right: right}
}

// parseDot parses member navigation. The right-hand side of a dot may be a
// bare identifier, a backtick-quoted identifier, a function call, or the
// special $this/$index/$total variables — any reserved word is legal here
// as a plain property name (spec's after-dot carve-out).
func (p *Parser) parseDot(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '.'

	switch p.curToken.Type {
	case token.VARIABLE:
		right := p.parseVariable()
		return &ast.Dot{Token: tok, Left: left, Right: right}
	case token.IDENT, token.QUOTED_IDENT:
		quoted := p.curToken.Type == token.QUOTED_IDENT
		nameTok := p.curToken
		p.nextToken()
		if p.curToken.Type == token.LPAREN {
			fn := p.finishFunctionCall(nameTok)
			if p.err != nil {
				return nil
			}
			return &ast.Dot{Token: tok, Left: left, Right: fn}
		}
		return &ast.Dot{Token: tok, Left: left, Right: &ast.Identifier{Token: nameTok, Value: nameTok.Value, Quoted: quoted}}
	default:
		if p.curToken.Type.IsKeyword() {
			nameTok := p.curToken
			p.nextToken()
			if p.curToken.Type == token.LPAREN {
				fn := p.finishFunctionCall(nameTok)
				if p.err != nil {
					return nil
				}
				return &ast.Dot{Token: tok, Left: left, Right: fn}
			}
			return &ast.Dot{Token: tok, Left: left, Right: &ast.Identifier{Token: nameTok, Value: token.IdentifierText(nameTok)}}
		}
		p.fail(perror.NewBuilder(perror.KindMissing).
			WithMessage("Expected identifier after dot").
			WithPosition(p.curToken.Pos, p.curToken.Length()).
			WithSource(p.source).
			WithActual(p.curToken.Type, p.curToken.Value).
			WithSuggestion(perror.SuggestDotContinuation()).
			Build())
		return nil
	}
}

func (p *Parser) parseIndexer(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume '['
	if p.curToken.Type == token.RBRACKET {
		p.fail(perror.NewBuilder(perror.KindMissing).
			WithMessage("Expected expression in indexer").
			WithPosition(p.curToken.Pos, p.curToken.Length()).
			WithSource(p.source).
			Build())
		return nil
	}
	savedPhase := p.phase
	p.phase = phaseExpression
	index := p.parseExpression(LOWEST)
	p.phase = savedPhase
	if p.err != nil {
		return nil
	}
	if p.curToken.Type != token.RBRACKET {
		p.fail(perror.NewBuilder(perror.KindMissing).
			WithMessage("Expected closing bracket").
			WithPosition(p.curToken.Pos, p.curToken.Length()).
			WithSource(p.source).
			WithActual(p.curToken.Type, p.curToken.Value).
			WithSuggestion(perror.SuggestBracketBalance(p.source, p.curToken.Pos.Offset)).
			Build())
		return nil
	}
	p.nextToken() // consume ']'
	return &ast.Indexer{Token: tok, Left: left, Index: index}
}

// parseTypeSpecifier parses a type name of one or more dot-separated
// identifier segments: `Identifier`, `Identifier.Identifier`, or deeper
// (e.g. `FHIR.Observation.Component`). Any keyword is accepted as a
// segment, matching the after-dot carve-out.
func (p *Parser) parseTypeSpecifier() *ast.TypeSpecifier {
	if p.curToken.Type != token.IDENT && !p.curToken.Type.IsKeyword() {
		p.fail(perror.NewBuilder(perror.KindMissing).
			WithPosition(p.curToken.Pos, p.curToken.Length()).
			WithSource(p.source).
			WithExpectedString("type specifier").
			WithActual(p.curToken.Type, p.curToken.Value).
			Build())
		return nil
	}
	first := p.curToken
	segments := []string{token.IdentifierText(first)}
	p.nextToken()

	for p.curToken.Type == token.DOT {
		p.nextToken()
		if p.curToken.Type != token.IDENT && !p.curToken.Type.IsKeyword() {
			p.fail(perror.NewBuilder(perror.KindMissing).
				WithPosition(p.curToken.Pos, p.curToken.Length()).
				WithSource(p.source).
				WithExpectedString("type name").
				WithActual(p.curToken.Type, p.curToken.Value).
				Build())
			return nil
		}
		segments = append(segments, token.IdentifierText(p.curToken))
		p.nextToken()
	}

	return &ast.TypeSpecifier{Token: first, Segments: segments}
}

func (p *Parser) parseIs(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume 'is'
	ts := p.parseTypeSpecifier()
	if p.err != nil {
		return nil
	}
	return &ast.Is{Token: tok, Left: left, Type: ts}
}

func (p *Parser) parseAs(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken() // consume 'as'
	ts := p.parseTypeSpecifier()
	if p.err != nil {
		return nil
	}
	return &ast.As{Token: tok, Left: left, Type: ts}
}

// joinExpected is a small formatting helper that renders a multi-token
// "expected" list joined with "or".
func joinExpected(items []string) string {
	return strings.Join(items, " or ")
}
