package fhirpath_test

import (
	"strings"
	"testing"

	"github.com/atomic-ehr/fhirpath-go/pkg/fhirpath"
)

func TestParseRoundTripIdempotent(t *testing.T) {
	cases := []string{
		"Patient.name.given",
		"1 + 2 * 3",
		"a or b implies c",
		"value is FHIR.Observation",
		"{}",
		"5 'mg'",
		"12345L",
	}
	for _, src := range cases {
		fhirpath.ClearCache()
		tree, err := fhirpath.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		s := fhirpath.AstToString(tree)
		tree2, err := fhirpath.Parse(s)
		if err != nil {
			t.Fatalf("Parse(AstToString(Parse(%q))) failed: %v", src, err)
		}
		if fhirpath.AstToString(tree2) != s {
			t.Errorf("round trip not idempotent for %q: %q vs %q", src, s, fhirpath.AstToString(tree2))
		}
	}
}

func TestClearCacheYieldsStructurallyEqualRoots(t *testing.T) {
	const src = "Patient.name.given"
	fhirpath.ClearCache()
	first, err := fhirpath.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fhirpath.ClearCache()
	second, err := fhirpath.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fhirpath.AstToString(first) != fhirpath.AstToString(second) {
		t.Errorf("roots differ across cache clears: %q vs %q", fhirpath.AstToString(first), fhirpath.AstToString(second))
	}
}

func TestParseCachesSuccessfulResult(t *testing.T) {
	const src = "Patient.active"
	fhirpath.ClearCache()
	first, err := fhirpath.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := fhirpath.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fhirpath.AstToString(first) != fhirpath.AstToString(second) {
		t.Errorf("cached parse differs from original")
	}
}

func TestWhitespaceAndCommentsDoNotAffectAST(t *testing.T) {
	fhirpath.ClearCache()
	a, err := fhirpath.Parse("Patient.name.given")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, err := fhirpath.Parse("Patient . name /* comment */ . given // trailing\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fhirpath.AstToString(a) != fhirpath.AstToString(b) {
		t.Errorf("whitespace/comments affected AST: %q vs %q", fhirpath.AstToString(a), fhirpath.AstToString(b))
	}
}

func TestPrecedenceLaw(t *testing.T) {
	// '*' binds tighter than '+': "a + b * c" roots at '+'.
	node, err := fhirpath.Parse("a + b * c")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !strings.HasPrefix(fhirpath.AstToString(node), "(a + ") {
		t.Errorf("expected root at '+', got %q", fhirpath.AstToString(node))
	}
}

func TestFailingInputErrorShape(t *testing.T) {
	_, err := fhirpath.Parse("Patient.")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	perr, ok := err.(*fhirpath.ParseError)
	if !ok {
		t.Fatalf("error is not *ParseError: %T", err)
	}
	if perr.Expression != "Patient." {
		t.Errorf("Expression = %q, want source text", perr.Expression)
	}
	if perr.Line < 1 {
		t.Errorf("Line = %d, want >= 1", perr.Line)
	}
	if perr.Column < 1 {
		t.Errorf("Column = %d, want >= 1", perr.Column)
	}
	msg := perr.Error()
	for _, substr := range []string{"ParseError:", "at line", "^"} {
		if !strings.Contains(msg, substr) {
			t.Errorf("error message missing %q:\n%s", substr, msg)
		}
	}
}

func TestFailingInputReturnsNoPartialTree(t *testing.T) {
	node, err := fhirpath.Parse("1 +")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if node != nil {
		t.Errorf("expected nil node on error, got %v", node)
	}
}
