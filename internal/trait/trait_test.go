package trait

import (
	"testing"

	"github.com/impala-lang/impala/internal/types"
)

type fakeDecl string

func (f fakeDecl) DeclName() string { return string(f) }

func TestDeclareAndInstantiate(t *testing.T) {
	tb := types.NewTable()
	reg := NewRegistry()

	eq := reg.DeclareTrait(fakeDecl("Eq"), nil)
	if err := eq.AddBoundVar(tb.VarType(0).(*types.Var)); err != nil {
		t.Fatalf("AddBoundVar: %v", err)
	}

	sig := tb.FnType(tb.TupleType([]types.Type{tb.VarType(0), tb.VarType(0), tb.FnType(tb.TupleType([]types.Type{tb.PrimType(types.Bool)}))})).(*types.Fn)
	if err := eq.AddMethod("eq", sig); err != nil {
		t.Fatalf("AddMethod: %v", err)
	}

	inst := reg.Instantiate(eq, []types.Type{tb.PrimType(types.I32)})
	if inst == ErrInstance {
		t.Fatalf("expected a valid instance, got ErrInstance")
	}

	again := reg.Instantiate(eq, []types.Type{tb.PrimType(types.I32)})
	if inst != again {
		t.Fatalf("expected repeated Instantiate with the same args to return the same handle")
	}

	wrongArity := reg.Instantiate(eq, nil)
	if wrongArity != ErrInstance {
		t.Fatalf("expected arity mismatch to yield ErrInstance")
	}
}

func TestAddBoundVarAfterInstantiationFails(t *testing.T) {
	tb := types.NewTable()
	reg := NewRegistry()

	tr := reg.DeclareTrait(fakeDecl("Marker"), nil)
	reg.Instantiate(tr, nil)

	if err := tr.AddBoundVar(tb.VarType(0).(*types.Var)); err == nil {
		t.Fatalf("expected adding a bound var after instantiation to fail")
	}
}

func TestAddMethodRejectsOpenSignature(t *testing.T) {
	tb := types.NewTable()
	reg := NewRegistry()

	tr := reg.DeclareTrait(fakeDecl("Into"), nil)
	_ = tr.AddBoundVar(tb.VarType(0).(*types.Var))

	// References Var(1), which is not bound by this trait (only Var(0) is).
	openSig := tb.FnType(tb.TupleType([]types.Type{tb.VarType(1)})).(*types.Fn)
	if err := tr.AddMethod("into", openSig); err == nil {
		t.Fatalf("expected an open method signature to be rejected")
	}
}

func TestSatisfiesPresenceOnly(t *testing.T) {
	tb := types.NewTable()
	reg := NewRegistry()

	eq := reg.DeclareTrait(fakeDecl("Eq"), nil)
	_ = eq.AddBoundVar(tb.VarType(0).(*types.Var))

	i32 := tb.PrimType(types.I32)
	inst := reg.Instantiate(eq, []types.Type{i32})

	if reg.Satisfies(i32, inst) {
		t.Fatalf("expected no impl recorded yet")
	}

	reg.RegisterImpl(i32, inst)

	if !reg.Satisfies(i32, inst) {
		t.Fatalf("expected i32 to satisfy Eq[i32] once the impl is recorded")
	}

	f64 := tb.PrimType(types.F64)
	if reg.Satisfies(f64, inst) {
		t.Fatalf("did not expect f64 to satisfy Eq[i32]")
	}
}
