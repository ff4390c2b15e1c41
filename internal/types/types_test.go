package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeDecl string

func (f fakeDecl) DeclName() string { return string(f) }

func TestHashConsing(t *testing.T) {
	tb := NewTable()

	a := tb.TupleType([]Type{tb.PrimType(I32), tb.PrimType(Bool)})
	b := tb.TupleType([]Type{tb.PrimType(I32), tb.PrimType(Bool)})

	if a != b {
		t.Fatalf("expected structurally equal tuples to be the same value, got %p and %p", a, b)
	}

	c := tb.TupleType([]Type{tb.PrimType(Bool), tb.PrimType(I32)})
	if a == c {
		t.Fatalf("expected differently-ordered tuples to be distinct values")
	}
}

func TestUnknownNeverDeduplicated(t *testing.T) {
	tb := NewTable()

	u1 := tb.UnknownType()
	u2 := tb.UnknownType()

	if u1 == u2 {
		t.Fatalf("expected two UnknownType() calls to yield distinct values")
	}
}

func TestNominalIdentity(t *testing.T) {
	tb := NewTable()

	declA := fakeDecl("Point")
	s1 := tb.StructTypeDecl(declA, 0)
	s1.Freeze()

	s2 := tb.StructTypeDecl(declA, 0)
	s2.Freeze()

	if Type(s1) == Type(s2) {
		t.Fatalf("two StructTypeDecl calls must return distinct handles even for the same declaration")
	}

	// Same shape, distinct declarations: never merged by construction.
	declB := fakeDecl("Vector")
	s3 := tb.StructTypeDecl(declB, 1)
	s3.SetStructField(0, tb.PrimType(F64))
	s3.Freeze()

	s4 := tb.StructTypeDecl(declA, 1)
	s4.SetStructField(0, tb.PrimType(F64))
	s4.Freeze()

	if Type(s3) == Type(s4) {
		t.Fatalf("structs with distinct declarations must never be the same handle")
	}
}

func TestAppReducesLambda(t *testing.T) {
	tb := NewTable()

	// Λ.'0 applied to i32 reduces to i32: the identity type-function.
	idFn := tb.LambdaType(tb.VarType(0), "T")
	reduced := tb.AppType(idFn, tb.PrimType(I32))

	if reduced != tb.PrimType(I32) {
		t.Fatalf("App(Lambda(Var(0)), i32) = %s, want i32", reduced)
	}
}

func TestReduceIdempotent(t *testing.T) {
	tb := NewTable()

	body := tb.TupleType([]Type{tb.VarType(0), tb.VarType(0)})
	lam := tb.LambdaType(body, "T")

	once := tb.Reduce(body, 0, tb.PrimType(Bool), map[Type]Type{})
	twice := tb.Reduce(once, 0, tb.PrimType(Bool), map[Type]Type{})

	if once != twice {
		t.Fatalf("reducing twice should be idempotent: %s vs %s", once, twice)
	}

	viaApp := tb.AppType(lam, tb.PrimType(Bool))
	if viaApp != once {
		t.Fatalf("App(lambda, bool) = %s, want substitution result %s", viaApp, once)
	}
}

func TestReduceRecursiveNominal(t *testing.T) {
	tb := NewTable()

	// struct List { head: 'T, tail: &List }  (generic over one type var)
	decl := fakeDecl("List")
	list := tb.StructTypeDecl(decl, 2)
	list.SetStructField(0, tb.VarType(0))
	list.SetStructField(1, tb.BorrowedPtrType(list, false, 0))
	list.Freeze()

	lam := tb.LambdaType(list, "T")
	instantiated := tb.AppType(lam, tb.PrimType(I32))

	inst, ok := instantiated.(*StructType)
	if !ok {
		t.Fatalf("expected instantiation to stay a StructType, got %T", instantiated)
	}

	if inst.Fields[0] != tb.PrimType(I32) {
		t.Fatalf("head field = %s, want i32", inst.Fields[0])
	}

	selfPtr, ok := inst.Fields[1].(*BorrowedPtr)
	if !ok {
		t.Fatalf("tail field = %T, want *BorrowedPtr", inst.Fields[1])
	}

	if selfPtr.Pointee != inst {
		t.Fatalf("recursive reference did not terminate at the rebuilt node: got %p want %p", selfPtr.Pointee, inst)
	}
}

func TestSubtypeReflexiveAndTransitive(t *testing.T) {
	tb := NewTable()

	i32 := tb.PrimType(I32)
	if !IsSubtype(i32, i32) {
		t.Fatalf("IsSubtype(i32, i32) = false, want true")
	}

	owned := tb.OwnedPtrType(i32, 0)
	borrowed := tb.BorrowedPtrType(i32, false, 0)
	doubleBorrowed := tb.BorrowedPtrType(borrowed, false, 0)

	// Transitivity: &i32 ⊒ &mut i32 and &mut i32 ⊒ ~i32, so &i32 ⊒ ~i32.
	mutBorrowed := tb.BorrowedPtrType(i32, true, 0)
	if !IsSubtype(borrowed, mutBorrowed) || !IsSubtype(mutBorrowed, owned) {
		t.Fatalf("expected &i32 to accept &mut i32 and &mut i32 to accept ~i32")
	}

	if !IsSubtype(borrowed, owned) {
		t.Fatalf("expected &i32 to accept ~i32")
	}

	// &(&i32) ⊒ &(~i32) by pointee covariance composed with the base case,
	// exercising a two-level chain rather than a single direct relation.
	ownedPointerToI32Borrowed := tb.BorrowedPtrType(owned, false, 0)
	if !IsSubtype(doubleBorrowed, ownedPointerToI32Borrowed) {
		t.Fatalf("expected &(&i32) to accept &(~i32) via pointee covariance")
	}
}

func TestSubtypeMutableBorrowedPtrNarrowing(t *testing.T) {
	tb := NewTable()

	i32 := tb.PrimType(I32)
	mutBorrowed := tb.BorrowedPtrType(i32, true, 0)
	immutBorrowed := tb.BorrowedPtrType(i32, false, 0)

	if !IsSubtype(immutBorrowed, mutBorrowed) {
		t.Fatalf("expected an immutable borrowed-pointer parameter to accept a mutable borrowed-pointer argument")
	}

	if IsSubtype(mutBorrowed, immutBorrowed) {
		t.Fatalf("expected a mutable borrowed-pointer parameter to reject an immutable borrowed-pointer argument")
	}
}

func TestSubtypeRefRequiresExactMutability(t *testing.T) {
	tb := NewTable()

	i32 := tb.PrimType(I32)
	mutRef := tb.RefType(i32, true, 0)
	immutRef := tb.RefType(i32, false, 0)

	if IsSubtype(immutRef, mutRef) {
		t.Fatalf("expected an immutable reference parameter to reject a mutable reference argument")
	}

	if IsSubtype(mutRef, immutRef) {
		t.Fatalf("expected a mutable reference parameter to reject an immutable reference argument")
	}

	if !IsSubtype(mutRef, tb.RefType(i32, true, 0)) {
		t.Fatalf("expected two mutable references to the same pointee to be mutually subtypes")
	}
}

func TestSubtypeIndefiniteArrayAcceptsDefinite(t *testing.T) {
	tb := NewTable()

	elem := tb.PrimType(U8)
	indef := tb.IndefiniteArrayType(elem)
	def := tb.DefiniteArrayType(elem, 4)

	if !IsSubtype(indef, def) {
		t.Fatalf("expected [u8] to accept [u8; 4]")
	}
}

func TestFnSubtypeContravariantCovariant(t *testing.T) {
	tb := NewTable()

	i32 := tb.PrimType(I32)
	owned := tb.OwnedPtrType(i32, 0)     // narrower: only accepts owned pointers
	borrowed := tb.BorrowedPtrType(i32, false, 0) // wider: also accepts owned pointers

	// dst takes the narrower argument and returns the wider type; src takes
	// the wider argument and returns the narrower type. Parameter
	// contravariance plus return covariance make dst a supertype of src.
	dst := tb.FnType(tb.TupleType([]Type{owned, tb.FnType(tb.TupleType([]Type{borrowed}))}))
	src := tb.FnType(tb.TupleType([]Type{borrowed, tb.FnType(tb.TupleType([]Type{owned}))}))

	if !IsSubtype(dst, src) {
		t.Fatalf("expected the narrow-arg/wide-return function type to accept the wide-arg/narrow-return one")
	}

	if IsSubtype(src, dst) {
		t.Fatalf("did not expect the reverse direction to hold")
	}
}

func TestIsReturningAndReturnType(t *testing.T) {
	tb := NewTable()

	i32 := tb.PrimType(I32)
	ret := tb.FnType(tb.TupleType([]Type{i32}))
	fn := tb.FnType(tb.TupleType([]Type{i32, ret})).(*Fn)

	if !IsReturning(fn) {
		t.Fatalf("expected fn(i32, fn(i32)) to be returning")
	}

	if got := ReturnType(tb, fn); got != i32 {
		t.Fatalf("ReturnType = %s, want i32", got)
	}

	nonReturning := tb.FnType(tb.TupleType([]Type{i32})).(*Fn)
	if IsReturning(nonReturning) {
		t.Fatalf("expected fn(i32) with no continuation to be non-returning")
	}

	if got := ReturnType(tb, nonReturning); got != tb.noRet {
		t.Fatalf("ReturnType of a non-returning function = %s, want !", got)
	}
}

func TestStringGolden(t *testing.T) {
	tb := NewTable()

	idLike := tb.FnType(tb.TupleType([]Type{tb.VarType(0), tb.FnType(tb.TupleType([]Type{tb.VarType(0)}))}))

	want := "fn('0, fn('0))"
	if diff := cmp.Diff(want, idLike.String()); diff != "" {
		t.Errorf("generic identity function string mismatch (-want +got):\n%s", diff)
	}
}
