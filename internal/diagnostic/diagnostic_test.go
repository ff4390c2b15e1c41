package diagnostic

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/impala-lang/impala/internal/position"
)

func TestSinkSuccessWhenEmpty(t *testing.T) {
	s := NewSink()
	if !s.Success() {
		t.Fatalf("expected a fresh sink to report success")
	}

	if s.Err() != nil {
		t.Fatalf("expected Err() to be nil on an empty sink")
	}
}

func TestSinkReportAccumulates(t *testing.T) {
	s := NewSink()
	sp := position.Span{Start: position.Position{Filename: "m.ip", Line: 1, Column: 1}, End: position.Position{Filename: "m.ip", Line: 1, Column: 2}}

	s.Report(Undeclared, sp, "undeclared name: x")
	s.ReportBuilt(New(ArityMismatch, sp, "expected 2 arguments, got 1").Note("see declaration"))

	if s.Success() {
		t.Fatalf("expected Success() to be false after reporting")
	}

	diags := s.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(diags))
	}

	if diags[0].Kind != Undeclared {
		t.Errorf("diags[0].Kind = %v, want Undeclared", diags[0].Kind)
	}

	wantNotes := []string{"see declaration"}
	if diff := cmp.Diff(wantNotes, diags[1].Notes); diff != "" {
		t.Errorf("diags[1].Notes mismatch (-want +got):\n%s", diff)
	}

	if diags[1].Kind != ArityMismatch {
		t.Errorf("diags[1].Kind = %v, want ArityMismatch", diags[1].Kind)
	}

	if s.Err() == nil {
		t.Fatalf("expected Err() to aggregate the recorded diagnostics")
	}
}

func TestSinkRespectsMax(t *testing.T) {
	s := NewSink()
	s.SetMax(1)

	sp := position.Span{Start: position.Position{Filename: "m.ip", Line: 1, Column: 1}, End: position.Position{Filename: "m.ip", Line: 1, Column: 2}}

	s.Report(Undeclared, sp, "first")
	s.Report(Undeclared, sp, "second")
	s.ReportBuilt(New(ArityMismatch, sp, "third"))

	if diff := cmp.Diff(1, len(s.Diagnostics())); diff != "" {
		t.Errorf("diagnostic count mismatch after cap (-want +got):\n%s", diff)
	}
}
