package token

// keywords maps the reserved operator-keyword spellings to their dedicated
// token kind. Every entry here is also a syntactically legal identifier
// (e.g. "Patient.where", "FHIR.is") — the tokenizer always emits the
// keyword kind; the parser reclassifies it back to an identifier in the
// narrow contexts that call for one (after a dot, as a function name, or as
// a qualified-type segment). See pkg/token.IdentifierText.
var keywords = map[string]TokenType{
	"true":     TRUE,
	"false":    FALSE,
	"and":      AND,
	"or":       OR,
	"xor":      XOR,
	"implies":  IMPLIES,
	"div":      DIV,
	"mod":      MOD,
	"in":       IN,
	"contains": CONTAINS,
	"is":       IS,
	"as":       AS,
	"not":      NOT,
}

// LookupIdent classifies a bare identifier-shaped lexeme: if it is one of
// the reserved operator-keywords it returns that keyword's TokenType,
// otherwise it returns IDENT.
func LookupIdent(literal string) TokenType {
	if tt, ok := keywords[literal]; ok {
		return tt
	}
	return IDENT
}

// IsKeywordLiteral reports whether literal is one of the reserved words.
func IsKeywordLiteral(literal string) bool {
	_, ok := keywords[literal]
	return ok
}

// calendarUnits is the closed set of unquoted calendar-duration words that
// may follow a NUMBER (optionally separated by spaces) to form a QUANTITY
// token (spec §4.1).
var calendarUnits = map[string]bool{
	"year": true, "years": true,
	"month": true, "months": true,
	"week": true, "weeks": true,
	"day": true, "days": true,
	"hour": true, "hours": true,
	"minute": true, "minutes": true,
	"second": true, "seconds": true,
	"millisecond": true, "milliseconds": true,
}

// IsCalendarUnit reports whether literal is a recognized unquoted
// calendar-duration unit word.
func IsCalendarUnit(literal string) bool {
	return calendarUnits[literal]
}
