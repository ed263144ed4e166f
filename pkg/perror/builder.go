package perror

import (
	"fmt"

	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

// Builder provides a fluent API for constructing a ParseError, mirroring
// the structured-error builder used elsewhere in the toolchain.
//
// Example:
//
//	err := NewBuilder(KindMissing).
//	    WithMessage("missing closing parenthesis").
//	    WithPosition(p.curToken.Pos, p.curToken.Length()).
//	    WithExpected(token.RPAREN).
//	    WithSuggestion("add ')' to close the expression").
//	    Build()
type Builder struct {
	kind     Kind
	message  string
	pos      token.Position
	length   int
	source   string
	expected []string
	actual   string
	suggs    []string
}

// NewBuilder starts a new ParseError of the given Kind.
func NewBuilder(kind Kind) *Builder {
	return &Builder{kind: kind}
}

// WithMessage sets the primary error message.
func (b *Builder) WithMessage(msg string) *Builder {
	b.message = msg
	return b
}

// WithPosition sets the primary error position and caret length.
func (b *Builder) WithPosition(pos token.Position, length int) *Builder {
	b.pos = pos
	b.length = length
	return b
}

// WithSource attaches the full source text so Format can render context.
func (b *Builder) WithSource(source string) *Builder {
	b.source = source
	return b
}

// WithExpected records an expected token kind.
func (b *Builder) WithExpected(tt token.TokenType) *Builder {
	b.expected = append(b.expected, tt.String())
	return b
}

// WithExpectedString records an expected construct described in prose
// ("expression", "identifier") rather than a token kind.
func (b *Builder) WithExpectedString(s string) *Builder {
	b.expected = append(b.expected, s)
	return b
}

// WithActual records what was actually found in place of what was expected.
func (b *Builder) WithActual(tt token.TokenType, literal string) *Builder {
	if literal != "" {
		b.actual = fmt.Sprintf("%s (%q)", tt, literal)
	} else {
		b.actual = tt.String()
	}
	return b
}

// WithSuggestion appends one fix suggestion. May be called repeatedly; an
// empty string is ignored so callers can unconditionally chain a
// Suggest* helper that returns "" when it has nothing to add.
func (b *Builder) WithSuggestion(s string) *Builder {
	if s != "" {
		b.suggs = append(b.suggs, s)
	}
	return b
}

// Build finalizes the ParseError, auto-generating a message from Kind and
// Expected/Actual if none was set explicitly, and rendering
// FormattedMessage per the spec's fixed layout.
func (b *Builder) Build() *ParseError {
	msg := b.message
	if msg == "" {
		msg = autoMessage(b.kind, b.expected, b.actual)
	}

	e := &ParseError{
		Name:            "ParseError",
		OriginalMessage: msg,
		Line:            b.pos.Line,
		Column:          b.pos.Column,
		Position:        b.pos.Offset,
		Expression:      b.source,
		Length:          b.length,
		Expected:        b.expected,
		Actual:          b.actual,
		Suggestions:     b.suggs,
	}
	e.FormattedMessage = format(msg, b.pos, b.length, b.source) + e.Details()
	return e
}

func autoMessage(kind Kind, expected []string, actual string) string {
	switch kind {
	case KindMissing:
		if len(expected) == 1 {
			return "missing " + expected[0]
		}
		return "missing expected element"
	case KindUnexpected:
		if len(expected) > 0 && actual != "" {
			return fmt.Sprintf("expected %s, got %s", expected[0], actual)
		}
		if actual != "" {
			return "unexpected " + actual
		}
		return "unexpected token"
	case KindInvalid:
		if actual != "" {
			return "invalid " + actual
		}
		return "invalid syntax"
	case KindLexical:
		return "lexical error"
	default:
		return "parse error"
	}
}
