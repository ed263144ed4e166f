package perror

import "strings"

// SuggestBracketBalance inspects source up to the error offset and, if
// brackets/parens/braces are unbalanced, returns a suggestion naming the
// unclosed opener. Returns "" when balanced (no suggestion to add).
func SuggestBracketBalance(source string, uptoOffset int) string {
	if uptoOffset > len(source) {
		uptoOffset = len(source)
	}
	var stack []rune
	for _, r := range source[:uptoOffset] {
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return ""
	}
	open := stack[len(stack)-1]
	close := map[rune]rune{'(': ')', '[': ']', '{': '}'}[open]
	return "add a closing '" + string(close) + "' to match the '" + string(open) + "' opened earlier"
}

// SuggestDotContinuation returns a hint for the common "trailing dot with
// nothing after it" mistake, e.g. "Patient.name." with EOF or a non-name
// token immediately following the dot.
func SuggestDotContinuation() string {
	return "a '.' must be followed by a property name, function call, or '$this'"
}

// SuggestUnterminatedLiteral returns a hint naming the delimiter that was
// never closed, for unterminated strings/quoted identifiers/comments.
func SuggestUnterminatedLiteral(delimiter string) string {
	return "add a closing " + delimiter + " to terminate the literal"
}

// SuggestKeywordAsIdentifier hints that a reserved word can still be used
// as a property name if backtick-quoted, which resolves a common surprise
// when a resource has a field named "div", "as", "is", etc.
func SuggestKeywordAsIdentifier(word string) string {
	return "use `" + word + "` (backtick-quoted) to use the reserved word '" + word + "' as an identifier"
}

// joinOr is a small formatting helper that renders an expected-one-of list
// joined with "or".
func joinOr(items []string) string {
	return strings.Join(items, " or ")
}
