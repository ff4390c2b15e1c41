package ast

import (
	"github.com/impala-lang/impala/internal/position"
)

type typeExprBase struct {
	Sp position.Span
}

func (t *typeExprBase) Span() position.Span { return t.Sp }

// PrimTypeExpr names a primitive type, e.g. `i32`, `bool`, `f64`.
type PrimTypeExpr struct {
	typeExprBase
	Name string
}

// PathTypeExpr names a nominal or type-variable reference, optionally
// with type arguments (`List[i32]`, `T`).
type PathTypeExpr struct {
	typeExprBase
	Name     string
	TypeArgs []TypeExpr
}

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr struct {
	typeExprBase
	Elems []TypeExpr
}

// FnTypeExpr is `fn(T1, T2, ...)`; by convention the last element, if
// itself an FnTypeExpr, is the return continuation (see IsReturning).
type FnTypeExpr struct {
	typeExprBase
	Params []TypeExpr
}

// DefiniteArrayTypeExpr is `[T; N]`.
type DefiniteArrayTypeExpr struct {
	typeExprBase
	Elem TypeExpr
	Len  int
}

// IndefiniteArrayTypeExpr is `[T]`.
type IndefiniteArrayTypeExpr struct {
	typeExprBase
	Elem TypeExpr
}

// SimdTypeExpr is `simd[T; N]`.
type SimdTypeExpr struct {
	typeExprBase
	Elem TypeExpr
	Lanes int
}

// BorrowedPtrTypeExpr is `&T` or `&mut T`.
type BorrowedPtrTypeExpr struct {
	typeExprBase
	Pointee TypeExpr
	Mut     bool
}

// OwnedPtrTypeExpr is `~T`.
type OwnedPtrTypeExpr struct {
	typeExprBase
	Pointee TypeExpr
}

// RefTypeExpr is `ref T` / `ref mut T`, the l-value storage-cell kind
// distinct from a borrowed pointer: subtyping between two refs requires
// equal mutability, whereas `&mut T` narrows to `&T`.
type RefTypeExpr struct {
	typeExprBase
	Pointee TypeExpr
	Mut     bool
}

func (*PrimTypeExpr) typeExprNode()            {}
func (*PathTypeExpr) typeExprNode()             {}
func (*TupleTypeExpr) typeExprNode()            {}
func (*FnTypeExpr) typeExprNode()               {}
func (*DefiniteArrayTypeExpr) typeExprNode()    {}
func (*IndefiniteArrayTypeExpr) typeExprNode()  {}
func (*SimdTypeExpr) typeExprNode()             {}
func (*BorrowedPtrTypeExpr) typeExprNode()      {}
func (*OwnedPtrTypeExpr) typeExprNode()         {}
func (*RefTypeExpr) typeExprNode()              {}
