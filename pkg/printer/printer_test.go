package printer_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/atomic-ehr/fhirpath-go/internal/parser"
	"github.com/atomic-ehr/fhirpath-go/pkg/printer"
)

func mustParse(t *testing.T, source string) interface {
	String() string
} {
	t.Helper()
	node, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse(%q) failed: %v", source, err)
	}
	return node
}

func TestAstToStringRoundTrip(t *testing.T) {
	cases := []string{
		"Patient.name.given",
		"1 + 2 * 3",
		"a or b implies c",
		"value is FHIR.Observation",
		"{}",
		"5 'mg'",
		"Patient.name.where(use = 'official').given.first()",
		"name[0]",
		"not active",
		"-1",
	}
	for _, src := range cases {
		node := mustParse(t, src)
		out := printer.AstToString(node)
		reparsed, err := parser.Parse(out)
		if err != nil {
			t.Fatalf("re-parse of %q (from %q) failed: %v", out, src, err)
		}
		if printer.AstToString(reparsed) != out {
			t.Errorf("round-trip mismatch: %q -> %q -> %q", src, out, printer.AstToString(reparsed))
		}
	}
}

func TestAstToStringSnapshot(t *testing.T) {
	cases := map[string]string{
		"member_path":     "Patient.name.given",
		"arithmetic":      "1 + 2 * 3",
		"implies_chain":   "a or b implies c",
		"type_test":       "value is FHIR.Observation",
		"null_literal":    "{}",
		"quantity":        "5 'mg'",
		"nested_function": "Patient.name.where(use = 'official').given.first()",
		"indexer":         "name[0]",
		"negation":        "not active",
		"unary_minus":     "-1",
	}
	for name, src := range cases {
		node, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", name, err)
		}
		snaps.MatchSnapshot(t, name+"_string", printer.AstToString(node))
		snaps.MatchSnapshot(t, name+"_tree", printer.PrettyPrint(node, 0))
	}
}
