package scope

import (
	"testing"

	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/position"
)

func span(line int) position.Span {
	p := position.Position{Filename: "m.ip", Line: line, Column: 1, Offset: 0}

	return position.Span{Start: p, End: p}
}

func TestInsertAndLookup(t *testing.T) {
	sink := diagnostic.NewSink()
	tb := NewTable(sink)

	decl := &ast.Decl{Name: "x", Kind: ast.DeclLocal, Span: span(1)}
	tb.Insert(decl)

	got, ok := tb.Lookup(span(2), "x")
	if !ok || got != decl {
		t.Fatalf("expected lookup to find the inserted declaration")
	}

	if !sink.Success() {
		t.Fatalf("expected no diagnostics, got %v", sink.Diagnostics())
	}
}

func TestLookupUndeclaredReportsAndFails(t *testing.T) {
	sink := diagnostic.NewSink()
	tb := NewTable(sink)

	if _, ok := tb.Lookup(span(1), "missing"); ok {
		t.Fatalf("expected lookup of an unbound name to fail")
	}

	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != diagnostic.Undeclared {
		t.Fatalf("expected one Undeclared diagnostic, got %v", diags)
	}
}

func TestDuplicateBindingInSameFrame(t *testing.T) {
	sink := diagnostic.NewSink()
	tb := NewTable(sink)

	tb.Insert(&ast.Decl{Name: "x", Kind: ast.DeclLocal, Span: span(1)})
	tb.Insert(&ast.Decl{Name: "x", Kind: ast.DeclLocal, Span: span(2)})

	diags := sink.Diagnostics()
	if len(diags) != 1 || diags[0].Kind != diagnostic.DuplicateBinding {
		t.Fatalf("expected one DuplicateBinding diagnostic, got %v", diags)
	}
}

func TestShadowingAcrossFrames(t *testing.T) {
	sink := diagnostic.NewSink()
	tb := NewTable(sink)

	outer := &ast.Decl{Name: "x", Kind: ast.DeclLocal, Span: span(1)}
	tb.Insert(outer)

	tb.PushScope()
	inner := &ast.Decl{Name: "x", Kind: ast.DeclLocal, Span: span(2)}
	tb.Insert(inner)

	got, ok := tb.Lookup(span(3), "x")
	if !ok || got != inner {
		t.Fatalf("expected the innermost binding to shadow the outer one")
	}

	tb.PopScope()

	got, ok = tb.Lookup(span(4), "x")
	if !ok || got != outer {
		t.Fatalf("expected the outer binding to resurface after PopScope")
	}

	if !sink.Success() {
		t.Fatalf("shadowing across distinct frames must not report DuplicateBinding, got %v", sink.Diagnostics())
	}
}

func TestPopScopeBeyondGlobalIsSafe(t *testing.T) {
	sink := diagnostic.NewSink()
	tb := NewTable(sink)

	tb.PopScope()
	tb.PopScope()

	if tb.Depth() != 0 {
		t.Fatalf("expected Depth() to bottom out at 0, got %d", tb.Depth())
	}
}
