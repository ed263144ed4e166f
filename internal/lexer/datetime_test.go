package lexer

import (
	"testing"

	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

func TestLexerDateLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  string
		tt    token.TokenType
	}{
		{"@2020", "2020", token.DATE},
		{"@2020-01", "2020-01", token.DATE},
		{"@2020-01-02", "2020-01-02", token.DATE},
		{"@2020-01-02T10:00:00Z", "2020-01-02T10:00:00Z", token.DATETIME},
		{"@2020-01-02T10:00:00+01:00", "2020-01-02T10:00:00+01:00", token.DATETIME},
		{"@2020-01-02T", "2020-01-02T", token.DATETIME},
		{"@T10:00:00", "T10:00:00", token.TIME},
		{"@T10:00", "T10:00", token.TIME},
	}
	for _, tc := range cases {
		l := New(tc.input)
		tok := l.NextToken()
		if tok.Type != tc.tt {
			t.Errorf("%q: type = %s, want %s", tc.input, tok.Type, tc.tt)
			continue
		}
		if tok.Value != tc.want {
			t.Errorf("%q: value = %q, want %q", tc.input, tok.Value, tc.want)
		}
	}
}
