package lexer

import (
	"testing"

	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

func collectTypes(t *testing.T, input string) []token.TokenType {
	t.Helper()
	l := New(input)
	var types []token.TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	return types
}

func TestLexerStructuralAndOperators(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{"parens", "()", []token.TokenType{token.LPAREN, token.RPAREN, token.EOF}},
		{"brackets", "[]", []token.TokenType{token.LBRACKET, token.RBRACKET, token.EOF}},
		{"braces", "{}", []token.TokenType{token.LBRACE, token.RBRACE, token.EOF}},
		{"dot-comma", "a.b,c", []token.TokenType{token.IDENT, token.DOT, token.IDENT, token.COMMA, token.IDENT, token.EOF}},
		{"arithmetic", "1+2-3*4/5", []token.TokenType{
			token.NUMBER, token.PLUS, token.NUMBER, token.MINUS, token.NUMBER,
			token.STAR, token.NUMBER, token.SLASH, token.NUMBER, token.EOF,
		}},
		{"comparisons", "a<=b>=c<d>e", []token.TokenType{
			token.IDENT, token.LESS_EQUALS, token.IDENT, token.GREATER_EQUALS,
			token.IDENT, token.LESS_THAN, token.IDENT, token.GREATER_THAN, token.IDENT, token.EOF,
		}},
		{"equality", "a=b!=c~d!~e", []token.TokenType{
			token.IDENT, token.EQUALS, token.IDENT, token.NOT_EQUALS, token.IDENT,
			token.EQUIVALENCE, token.IDENT, token.NOT_EQUIVALENCE, token.IDENT, token.EOF,
		}},
		{"union-concat", "a|b&c", []token.TokenType{token.IDENT, token.PIPE, token.IDENT, token.AMP, token.IDENT, token.EOF}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := collectTypes(t, tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("token count = %d, want %d (%v)", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token[%d] = %s, want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	l := New("Patient.name.given and true or false")
	want := []token.TokenType{
		token.IDENT, token.DOT, token.IDENT, token.DOT, token.IDENT,
		token.AND, token.TRUE, token.OR, token.FALSE, token.EOF,
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token[%d] = %s, want %s", i, tok.Type, w)
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("a.b")
	first := l.Peek(0)
	if first.Type != token.IDENT || first.Value != "a" {
		t.Fatalf("Peek(0) = %+v", first)
	}
	second := l.Peek(1)
	if second.Type != token.DOT {
		t.Fatalf("Peek(1) = %+v", second)
	}
	consumed := l.NextToken()
	if consumed.Type != token.IDENT || consumed.Value != "a" {
		t.Fatalf("NextToken() after Peek = %+v", consumed)
	}
	next := l.NextToken()
	if next.Type != token.DOT {
		t.Fatalf("second NextToken() = %+v", next)
	}
}

func TestLexerReset(t *testing.T) {
	l := New("a + b")
	l.NextToken()
	l.Reset("x - y")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Value != "x" {
		t.Fatalf("after Reset, first token = %+v", tok)
	}
}

func TestLexerLineAndColumnTracking(t *testing.T) {
	l := New("a\nbb\nccc")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("token 'a' pos = %+v", tok.Pos)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("token 'bb' pos = %+v", tok.Pos)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 3 || tok.Pos.Column != 1 {
		t.Fatalf("token 'ccc' pos = %+v", tok.Pos)
	}
}

func TestLexerComments(t *testing.T) {
	l := New("a // trailing comment\n+ /* block\ncomment */ b")
	want := []token.TokenType{token.IDENT, token.PLUS, token.IDENT, token.EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token[%d] = %s, want %s", i, tok.Type, w)
		}
	}
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	l := New("a /* never closed")
	l.NextToken() // a
	l.NextToken() // triggers the comment scan -> ILLEGAL
	if l.Err() == nil {
		t.Fatal("expected lex error for unterminated comment")
	}
}

func TestLexerUnicodeIdentifierColumns(t *testing.T) {
	l := New("héllo.wörld")
	tok := l.NextToken()
	if tok.Value != "héllo" {
		t.Fatalf("value = %q", tok.Value)
	}
	dot := l.NextToken()
	if dot.Type != token.DOT || dot.Pos.Column != 6 {
		t.Fatalf("dot pos = %+v", dot.Pos)
	}
}
