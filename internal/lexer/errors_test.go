package lexer

import (
	"strings"
	"testing"
)

func TestLexerErrorPositions(t *testing.T) {
	l := New("'unterminated")
	l.NextToken()
	err := l.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Pos.Line != 1 || err.Pos.Column != 1 {
		t.Fatalf("error pos = %+v, want 1:1", err.Pos)
	}
}

func TestLexerFirstErrorSticks(t *testing.T) {
	l := New(`"bad" "worse"`)
	l.NextToken()
	first := l.Err()
	if first == nil {
		t.Fatal("expected error")
	}
	l.NextToken()
	if l.Err() != first {
		t.Fatal("lexer should latch its first error and not overwrite it")
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	l := New("a ? b")
	l.NextToken()
	l.NextToken()
	if l.Err() == nil || !strings.Contains(l.Err().Error(), "Unexpected character") {
		t.Fatalf("err = %v, want Unexpected character message", l.Err())
	}
}
