// Package perror implements FHIRPath's single-error diagnostic: a
// ParseError carrying the offending position, the original source text,
// and a caret-rendered excerpt, plus (where one applies) a short list of
// fix suggestions.
//
// Unlike a multi-error compiler front end, a failed FHIRPath parse always
// surfaces exactly one ParseError and no partial AST — there is no
// accumulation or synchronize-and-resume behavior here.
package perror

import (
	"fmt"
	"strings"

	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

// Kind categorizes a ParseError for callers that want to branch on it
// without string-matching the message.
type Kind string

const (
	KindLexical    Kind = "lexical"
	KindUnexpected Kind = "unexpected"
	KindMissing    Kind = "missing"
	KindInvalid    Kind = "invalid"
)

// ParseError is a single lexical or syntactic failure. Name, OriginalMessage,
// Line, Column, Position, and Expression mirror the fields the spec's
// external ParseError shape names; FormattedMessage (returned by Error) is
// derived from them at construction time.
type ParseError struct {
	Name             string
	OriginalMessage  string
	Line             int
	Column           int
	Position         int // 0-based offset
	Expression       string
	FormattedMessage string

	Length      int
	Expected    []string
	Actual      string
	Suggestions []string
}

// Error returns the fully rendered, caret-annotated diagnostic — this IS
// the message callers see; structured fields remain available for
// programmatic inspection.
func (e *ParseError) Error() string {
	return e.FormattedMessage
}

// format renders the exact layout the spec's error reporter requires:
//
//	ParseError: <originalMessage>
//	  at line <L>, column <C>:
//
//	> <line-no> | <source line>
//	       | <C-1 spaces>^^^^^
func format(originalMessage string, pos token.Position, length int, source string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ParseError: %s\n", originalMessage)
	fmt.Fprintf(&b, "  at line %d, column %d:\n\n", pos.Line, pos.Column)

	if source != "" {
		lines := strings.Split(source, "\n")
		if pos.Line >= 1 && pos.Line <= len(lines) {
			start := pos.Line - 2
			if start < 1 {
				start = 1
			}
			end := pos.Line + 2
			if end > len(lines) {
				end = len(lines)
			}
			for ln := start; ln <= end; ln++ {
				text := lines[ln-1]
				gutter := fmt.Sprintf("%4d | ", ln)
				if ln == pos.Line {
					b.WriteString("> ")
					b.WriteString(gutter)
					b.WriteString(text)
					b.WriteString("\n")

					remaining := runeLen(text) - (pos.Column - 1)
					caretLen := length
					if caretLen < 1 {
						caretLen = 1
					}
					if caretLen > 5 {
						caretLen = 5
					}
					if remaining >= 0 && caretLen > remaining {
						caretLen = remaining
					}
					if caretLen < 1 {
						caretLen = 1
					}
					b.WriteString(strings.Repeat(" ", len("> ")+len(gutter)-len("| ")))
					b.WriteString("| ")
					b.WriteString(strings.Repeat(" ", pos.Column-1))
					b.WriteString(strings.Repeat("^", caretLen))
					b.WriteString("\n")
				} else {
					b.WriteString("  ")
					b.WriteString(gutter)
					b.WriteString(text)
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String()
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Details renders the expected/actual/suggestions tail that follows the
// caret block; Build appends it to FormattedMessage.
func (e *ParseError) Details() string {
	var b strings.Builder
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "  expected: %s\n", strings.Join(e.Expected, " or "))
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, "  found:    %s\n", e.Actual)
	}
	if len(e.Suggestions) > 0 {
		b.WriteString("  suggestions:\n")
		for _, s := range e.Suggestions {
			fmt.Fprintf(&b, "    - %s\n", s)
		}
	}
	return b.String()
}
