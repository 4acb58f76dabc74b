package rule

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSinkAllPreservesEmissionOrder(t *testing.T) {
	s := &Sink{}
	s.Warnf("lexer", 3, "unparseable line %q", "???")
	s.Warnf("offset", 5, "unimplemented offset type flag %q", 'i')
	s.Warnf("validate", 0, "no source line for this one")

	want := []Diagnostic{
		{Line: 3, Stage: "lexer", Message: `unparseable line "???"`},
		{Line: 5, Stage: "offset", Message: "unimplemented offset type flag 'i'"},
		{Line: 0, Stage: "validate", Message: "no source line for this one"},
	}

	if diff := cmp.Diff(want, s.All()); diff != "" {
		t.Errorf("Sink.All() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticStringFormatsLineVsLineless(t *testing.T) {
	withLine := Diagnostic{Line: 7, Stage: "tree", Message: "boom"}
	if got, want := withLine.String(), "tree:7: boom"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	lineless := Diagnostic{Stage: "prune", Message: "boom"}
	if got, want := lineless.String(), "prune: boom"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
