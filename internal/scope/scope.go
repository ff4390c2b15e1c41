// Package scope implements the Scope Table: a stack of lexical frames
// mapping symbols to their most recent declaration, with shadowing and
// hierarchical lookup.
package scope

import (
	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/position"
)

// frame is one lexical scope: symbol name to its declaration.
type frame struct {
	bindings map[string]*ast.Decl
}

func newFrame() *frame {
	return &frame{bindings: make(map[string]*ast.Decl)}
}

// Table is the checker's stack of lexical frames.
type Table struct {
	frames []*frame
	sink   *diagnostic.Sink
}

// NewTable constructs a Scope Table reporting into sink, with a single
// global frame already pushed.
func NewTable(sink *diagnostic.Sink) *Table {
	t := &Table{sink: sink}
	t.PushScope()

	return t
}

// PushScope opens a new innermost frame.
func (t *Table) PushScope() {
	t.frames = append(t.frames, newFrame())
}

// PopScope closes the innermost frame. Callers must pair every
// PushScope with a PopScope on every exit path, including diagnostic
// returns, so a defer immediately after PushScope is the idiom.
func (t *Table) PopScope() {
	if len(t.frames) == 0 {
		return
	}

	t.frames = t.frames[:len(t.frames)-1]
}

// Insert binds decl.Name in the innermost frame. Re-binding the same
// name in the same frame reports DuplicateBinding and leaves the
// original binding in place.
func (t *Table) Insert(decl *ast.Decl) {
	top := t.frames[len(t.frames)-1]

	if existing, ok := top.bindings[decl.Name]; ok {
		t.sink.ReportBuilt(diagnostic.New(diagnostic.DuplicateBinding, decl.Span,
			"'"+decl.Name+"' is already declared in this scope").
			Note("previous declaration at " + existing.Span.String()))

		return
	}

	top.bindings[decl.Name] = decl
}

// Lookup scans frames innermost-to-outermost for name. On failure it
// reports Undeclared against at (the referencing node's span) and
// returns nil, false.
func (t *Table) Lookup(at position.Span, name string) (*ast.Decl, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if d, ok := t.frames[i].bindings[name]; ok {
			return d, true
		}
	}

	t.sink.Report(diagnostic.Undeclared, at, "undeclared name '"+name+"'")

	return nil, false
}

// Depth reports how many frames are currently open, mainly for tests.
func (t *Table) Depth() int { return len(t.frames) }
