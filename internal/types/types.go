// Package types implements the Impala type universe: a hash-consing
// interner of canonical type terms together with unification,
// reduction, and subtype operations over them.
//
// Structural types (everything but StructType, EnumType, and
// UnknownType) are interned: two structurally equal terms are always
// the same Go value. Nominal types are not interned: every
// StructTypeDecl/EnumTypeDecl call (including the rebuilds Reduce makes
// when instantiating a generic nominal) allocates a distinct handle,
// even for the same declaration, with mutable operand slots during
// construction so that recursive struct/enum definitions can refer to
// themselves before their fields are known.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies a type variant.
type Kind int

const (
	KindPrim Kind = iota
	KindTuple
	KindFn
	KindStruct
	KindEnum
	KindDefiniteArray
	KindIndefiniteArray
	KindSimd
	KindBorrowedPtr
	KindOwnedPtr
	KindRef
	KindVar
	KindLambda
	KindApp
	KindUnknown
	KindInferError
	KindNoRet
	KindTypeError
)

// PrimTag enumerates the primitive scalar types.
type PrimTag int

const (
	I8 PrimTag = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
	Bool
)

func (t PrimTag) String() string {
	switch t {
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Bool:
		return "bool"
	default:
		return "<bad-prim>"
	}
}

// Type is the handle every component of the front end passes around.
// Values are either canonical (structural types, returned by Table's
// constructors) or identity-based (UnknownType, StructType, EnumType).
type Type interface {
	Kind() Kind
	String() string
}

// Decl is the minimal declaration-site identity a nominal type is
// keyed on. The checker's ast.Decl satisfies this.
type Decl interface {
	DeclName() string
}

// ====== concrete variants ======

type Prim struct{ Tag PrimTag }

func (p *Prim) Kind() Kind     { return KindPrim }
func (p *Prim) String() string { return p.Tag.String() }

type Tuple struct{ Elems []Type }

func (t *Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Fn is a continuation-passing-style function: a single parameter
// type, conventionally a Tuple whose last element is the return
// continuation. See IsReturning/ReturnType.
type Fn struct{ Param Type }

func (f *Fn) Kind() Kind     { return KindFn }
func (f *Fn) String() string { return "fn" + f.Param.String() }

// StructType is nominal: identity is the declaration, not the fields.
type StructType struct {
	Decl   Decl
	Fields []Type
	frozen bool
}

func (s *StructType) Kind() Kind { return KindStruct }
func (s *StructType) String() string {
	if s.Decl != nil {
		return s.Decl.DeclName()
	}

	return "struct{}"
}

// EnumType is nominal: identity is the declaration, not the variants.
type EnumType struct {
	Decl     Decl
	Variants []Type
	frozen   bool
}

func (e *EnumType) Kind() Kind { return KindEnum }
func (e *EnumType) String() string {
	if e.Decl != nil {
		return e.Decl.DeclName()
	}

	return "enum{}"
}

type DefiniteArray struct {
	Elem Type
	Dim  int
}

func (a *DefiniteArray) Kind() Kind     { return KindDefiniteArray }
func (a *DefiniteArray) String() string { return fmt.Sprintf("[%s; %d]", a.Elem.String(), a.Dim) }

type IndefiniteArray struct{ Elem Type }

func (a *IndefiniteArray) Kind() Kind     { return KindIndefiniteArray }
func (a *IndefiniteArray) String() string { return "[" + a.Elem.String() + "]" }

type Simd struct {
	Elem Type
	Dim  int
}

func (s *Simd) Kind() Kind     { return KindSimd }
func (s *Simd) String() string { return fmt.Sprintf("simd<%s; %d>", s.Elem.String(), s.Dim) }

type BorrowedPtr struct {
	Pointee   Type
	Mut       bool
	AddrSpace int
}

func (p *BorrowedPtr) Kind() Kind { return KindBorrowedPtr }
func (p *BorrowedPtr) String() string {
	if p.Mut {
		return "&mut " + p.Pointee.String()
	}

	return "&" + p.Pointee.String()
}

type OwnedPtr struct {
	Pointee   Type
	AddrSpace int
}

func (p *OwnedPtr) Kind() Kind     { return KindOwnedPtr }
func (p *OwnedPtr) String() string { return "~" + p.Pointee.String() }

type RefType struct {
	Pointee   Type
	Mut       bool
	AddrSpace int
}

func (r *RefType) Kind() Kind { return KindRef }
func (r *RefType) String() string {
	if r.Mut {
		return "ref mut " + r.Pointee.String()
	}

	return "ref " + r.Pointee.String()
}

// Var is a de Bruijn-indexed type variable bound by an enclosing Lambda.
type Var struct{ Depth int }

func (v *Var) Kind() Kind     { return KindVar }
func (v *Var) String() string { return fmt.Sprintf("'%d", v.Depth) }

// Lambda is type-level abstraction used to represent generic items.
type Lambda struct {
	Body Type
	Name string
}

func (l *Lambda) Kind() Kind { return KindLambda }
func (l *Lambda) String() string {
	if l.Name != "" {
		return "Λ" + l.Name + "." + l.Body.String()
	}

	return "Λ." + l.Body.String()
}

// App is type-level application. When Callee is a Lambda it eagerly
// beta-reduces; Reduced caches that result (or, when Callee is not a
// Lambda, the unified App node itself).
type App struct {
	Callee  Type
	Arg     Type
	Reduced Type
}

func (a *App) Kind() Kind     { return KindApp }
func (a *App) String() string { return a.Callee.String() + "[" + a.Arg.String() + "]" }

// Unknown is a unification placeholder; every instance is fresh and
// compared by identity, never deduplicated.
type Unknown struct{ id int }

func (u *Unknown) Kind() Kind     { return KindUnknown }
func (u *Unknown) String() string { return fmt.Sprintf("?%d", u.id) }

// InferError records a failed unification for diagnostics.
type InferError struct{ Dst, Src Type }

func (e *InferError) Kind() Kind { return KindInferError }
func (e *InferError) String() string {
	return fmt.Sprintf("<infer-error %s <- %s>", e.Dst.String(), e.Src.String())
}

// NoRetT is the result type of non-returning functions.
type NoRetT struct{}

func (NoRetT) Kind() Kind     { return KindNoRet }
func (NoRetT) String() string { return "!" }

// TypeErrorT is accepted by IsSubtype against anything, in either
// position, including as a component of a structural type compared
// componentwise, letting the checker keep going past a mistyped
// subterm. Constructors do not collapse a term that contains it: a
// tuple, pointer, array or function type with a TypeErrorT operand is
// interned as an ordinary term of that variant.
type TypeErrorT struct{}

func (TypeErrorT) Kind() Kind     { return KindTypeError }
func (TypeErrorT) String() string { return "<type-error>" }

// ====== Table: the hash-consing interner ======

// Table owns every type created during one compilation unit. A new
// unit starts with a fresh Table so memory is bounded by that unit's
// size alone.
type Table struct {
	prims    [Bool + 1]*Prim
	interned map[string]Type
	noRet    *NoRetT
	typeErr  *TypeErrorT
	unit     *Tuple

	unknownSeq int
	nominalSeq int
}

// NewTable constructs a Table with the primitive singletons ready.
func NewTable() *Table {
	tb := &Table{interned: make(map[string]Type)}
	for tag := PrimTag(0); tag <= Bool; tag++ {
		tb.prims[tag] = &Prim{Tag: tag}
	}

	tb.noRet = &NoRetT{}
	tb.typeErr = &TypeErrorT{}
	tb.unit = &Tuple{Elems: nil}

	return tb
}

func ptrKey(t Type) string {
	switch v := t.(type) {
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%p", v)
	}
}

// PrimType returns the canonical primitive for tag.
func (tb *Table) PrimType(tag PrimTag) Type { return tb.prims[tag] }

// Unit returns the canonical empty tuple.
func (tb *Table) Unit() Type { return tb.unit }

// TypeError returns the absorbing singleton.
func (tb *Table) TypeError() Type { return tb.typeErr }

// NoRetType returns the non-returning singleton.
func (tb *Table) NoRetType() Type { return tb.noRet }

// UnknownType returns a fresh, never-deduplicated placeholder.
func (tb *Table) UnknownType() Type {
	tb.unknownSeq++

	return &Unknown{id: tb.unknownSeq}
}

func (tb *Table) intern(key string, build func() Type) Type {
	if existing, ok := tb.interned[key]; ok {
		return existing
	}

	t := build()
	tb.interned[key] = t

	return t
}

// TupleType interns a tuple of elements. An empty slice denotes unit.
func (tb *Table) TupleType(elems []Type) Type {
	if len(elems) == 0 {
		return tb.unit
	}

	var key strings.Builder

	fmt.Fprintf(&key, "tuple(%d)", len(elems))

	for _, e := range elems {
		key.WriteByte(':')
		key.WriteString(ptrKey(e))
	}

	return tb.intern(key.String(), func() Type { return &Tuple{Elems: append([]Type(nil), elems...)} })
}

// FnType interns fn(param).
func (tb *Table) FnType(param Type) Type {
	key := "fn:" + ptrKey(param)

	return tb.intern(key, func() Type { return &Fn{Param: param} })
}

// DefiniteArrayType interns [elem; dim].
func (tb *Table) DefiniteArrayType(elem Type, dim int) Type {
	key := fmt.Sprintf("defarr:%s:%d", ptrKey(elem), dim)

	return tb.intern(key, func() Type { return &DefiniteArray{Elem: elem, Dim: dim} })
}

// IndefiniteArrayType interns [elem].
func (tb *Table) IndefiniteArrayType(elem Type) Type {
	key := "indefarr:" + ptrKey(elem)

	return tb.intern(key, func() Type { return &IndefiniteArray{Elem: elem} })
}

// SimdType interns simd<elem; dim>.
func (tb *Table) SimdType(elem Type, dim int) Type {
	key := fmt.Sprintf("simd:%s:%d", ptrKey(elem), dim)

	return tb.intern(key, func() Type { return &Simd{Elem: elem, Dim: dim} })
}

// BorrowedPtrType interns a shared reference.
func (tb *Table) BorrowedPtrType(pointee Type, mut bool, addrSpace int) Type {
	key := fmt.Sprintf("bptr:%s:%v:%d", ptrKey(pointee), mut, addrSpace)

	return tb.intern(key, func() Type { return &BorrowedPtr{Pointee: pointee, Mut: mut, AddrSpace: addrSpace} })
}

// OwnedPtrType interns a unique reference.
func (tb *Table) OwnedPtrType(pointee Type, addrSpace int) Type {
	key := fmt.Sprintf("optr:%s:%d", ptrKey(pointee), addrSpace)

	return tb.intern(key, func() Type { return &OwnedPtr{Pointee: pointee, AddrSpace: addrSpace} })
}

// RefType interns an l-value storage cell type.
func (tb *Table) RefType(pointee Type, mut bool, addrSpace int) Type {
	key := fmt.Sprintf("ref:%s:%v:%d", ptrKey(pointee), mut, addrSpace)

	return tb.intern(key, func() Type { return &RefType{Pointee: pointee, Mut: mut, AddrSpace: addrSpace} })
}

// VarType interns a de Bruijn type variable.
func (tb *Table) VarType(depth int) Type {
	key := fmt.Sprintf("var:%d", depth)

	return tb.intern(key, func() Type { return &Var{Depth: depth} })
}

// LambdaType interns a type-level abstraction.
func (tb *Table) LambdaType(body Type, name string) Type {
	key := "lambda:" + ptrKey(body) + ":" + name

	return tb.intern(key, func() Type { return &Lambda{Body: body, Name: name} })
}

// App applies callee to arg, eagerly beta-reducing when callee is a
// Lambda. The reduction is cached on the returned App-shaped key so
// repeated applications of the same callee/arg share work.
func (tb *Table) AppType(callee, arg Type) Type {
	key := "app:" + ptrKey(callee) + ":" + ptrKey(arg)

	return tb.intern(key, func() Type {
		app := &App{Callee: callee, Arg: arg}
		if lam, ok := callee.(*Lambda); ok {
			app.Reduced = tb.Reduce(lam.Body, 0, arg, map[Type]Type{})
		} else {
			app.Reduced = app
		}

		return app
	}).(*App).Reduced
}

// StructTypeDecl allocates a new nominal struct with n empty operand
// slots. The caller must call SetStructField for each slot exactly
// once and then Freeze before the type is used elsewhere; this is how
// recursive struct definitions refer to themselves mid-construction.
func (tb *Table) StructTypeDecl(decl Decl, n int) *StructType {
	tb.nominalSeq++

	return &StructType{Decl: decl, Fields: make([]Type, n)}
}

// SetStructField sets field i exactly once.
func (s *StructType) SetStructField(i int, t Type) {
	if s.frozen {
		panic("types: SetStructField on frozen StructType")
	}

	s.Fields[i] = t
}

// Freeze forbids further mutation of s.
func (s *StructType) Freeze() { s.frozen = true }

// EnumTypeDecl allocates a new nominal enum with n empty variant slots.
func (tb *Table) EnumTypeDecl(decl Decl, n int) *EnumType {
	tb.nominalSeq++

	return &EnumType{Decl: decl, Variants: make([]Type, n)}
}

// SetEnumVariant sets variant i exactly once.
func (e *EnumType) SetEnumVariant(i int, t Type) {
	if e.frozen {
		panic("types: SetEnumVariant on frozen EnumType")
	}

	e.Variants[i] = t
}

// Freeze forbids further mutation of e.
func (e *EnumType) Freeze() { e.frozen = true }

// InferErrorType returns dst if it already records a failed unification
// against src (symmetrically for src), otherwise interns a fresh
// InferError(dst, src).
func (tb *Table) InferErrorType(dst, src Type) Type {
	if ie, ok := dst.(*InferError); ok && ie.Src == src {
		return dst
	}

	if ie, ok := src.(*InferError); ok && ie.Src == dst {
		return src
	}

	key := "infer:" + ptrKey(dst) + ":" + ptrKey(src)

	return tb.intern(key, func() Type { return &InferError{Dst: dst, Src: src} })
}

// ====== function return-continuation convention ======

// IsReturning reports whether fn's parameter tuple ends in a
// continuation describing the call's result, per the CPS convention:
// the last element of the parameter tuple is itself an Fn.
func IsReturning(fn *Fn) bool {
	tup, ok := fn.Param.(*Tuple)
	if !ok || len(tup.Elems) == 0 {
		return false
	}

	_, ok = tup.Elems[len(tup.Elems)-1].(*Fn)

	return ok
}

// ReturnType interprets the return continuation's parameter tuple by
// the arity rule used for call results: 0 elements -> unit, 1 -> that
// element, n -> a tuple of all n.
func ReturnType(tb *Table, fn *Fn) Type {
	if !IsReturning(fn) {
		return tb.noRet
	}

	tup := fn.Param.(*Tuple)
	cont := tup.Elems[len(tup.Elems)-1].(*Fn)

	contTup, ok := cont.Param.(*Tuple)
	if !ok {
		return cont.Param
	}

	switch len(contTup.Elems) {
	case 0:
		return tb.unit
	case 1:
		return contTup.Elems[0]
	default:
		return tb.TupleType(contTup.Elems)
	}
}

// ====== subtype relation ======

// IsSubtype reports whether dst accepts src: a value of type src may
// be used wherever dst is expected. Reflexive; nominal types are only
// subtypes of themselves (identity).
func IsSubtype(dst, src Type) bool {
	if dst == src {
		return true
	}

	if _, ok := dst.(*TypeErrorT); ok {
		return true
	}

	if _, ok := src.(*TypeErrorT); ok {
		return true
	}

	switch d := dst.(type) {
	case *StructType, *EnumType, *Unknown:
		return false // nominal / identity-only: already excluded above
	case *BorrowedPtr:
		switch s := src.(type) {
		case *BorrowedPtr:
			if !(s.Mut || !d.Mut) {
				return false
			}

			return d.AddrSpace == s.AddrSpace && IsSubtype(d.Pointee, s.Pointee)
		case *OwnedPtr:
			return d.AddrSpace == s.AddrSpace && IsSubtype(d.Pointee, s.Pointee)
		}

		return false
	case *RefType:
		s, ok := src.(*RefType)
		if !ok {
			return false
		}

		if d.AddrSpace != s.AddrSpace {
			return false
		}

		if d.Mut != s.Mut {
			return false
		}

		return refPointeeCompatible(d.Pointee, s.Pointee)
	case *IndefiniteArray:
		switch s := src.(type) {
		case *IndefiniteArray:
			return typeEqual(d.Elem, s.Elem)
		case *DefiniteArray:
			return typeEqual(d.Elem, s.Elem)
		}

		return false
	case *Fn:
		s, ok := src.(*Fn)
		if !ok {
			return false
		}

		return fnSubtype(d, s)
	default:
		return structuralCongruentSubtype(dst, src)
	}
}

// refPointeeCompatible governs the pointee of an l-value storage cell:
// either an exact structural match, or (nominal) identity.
func refPointeeCompatible(dst, src Type) bool {
	return typeEqual(dst, src)
}

// fnSubtype implements contravariant parameters and covariant return.
// A non-returning function's return continuation is itself an Fn, so
// recursing on it with dst/src swapped turns contravariance in the
// continuation's parameter back into covariance of the return value,
// and so on for its own continuation.
func fnSubtype(dst, src *Fn) bool {
	dstArgs, dstCont := splitParams(dst)
	srcArgs, srcCont := splitParams(src)

	if len(dstArgs) != len(srcArgs) {
		return false
	}

	for i := range dstArgs {
		if !IsSubtype(srcArgs[i], dstArgs[i]) { // contravariant
			return false
		}
	}

	if dstCont == nil && srcCont == nil {
		return true
	}

	if dstCont == nil || srcCont == nil {
		return false
	}

	return fnSubtype(srcCont, dstCont) // swapped: covariant return
}

// splitParams separates a Fn's ordinary arguments from its trailing
// return continuation, if any.
func splitParams(fn *Fn) ([]Type, *Fn) {
	tup, ok := fn.Param.(*Tuple)
	if !ok {
		return []Type{fn.Param}, nil
	}

	if len(tup.Elems) == 0 {
		return nil, nil
	}

	last, ok := tup.Elems[len(tup.Elems)-1].(*Fn)
	if !ok {
		return tup.Elems, nil
	}

	return tup.Elems[:len(tup.Elems)-1], last
}

// structuralCongruentSubtype handles every remaining structural kind:
// equal tag and arity required, recursing componentwise, with the
// variant-specific attributes (dim, mut, addr_space, depth, name)
// compared for exact equality.
func structuralCongruentSubtype(dst, src Type) bool {
	if dst.Kind() != src.Kind() {
		return false
	}

	switch d := dst.(type) {
	case *Prim:
		return d.Tag == src.(*Prim).Tag
	case *Tuple:
		s := src.(*Tuple)
		if len(d.Elems) != len(s.Elems) {
			return false
		}

		for i := range d.Elems {
			if !IsSubtype(d.Elems[i], s.Elems[i]) {
				return false
			}
		}

		return true
	case *DefiniteArray:
		s := src.(*DefiniteArray)

		return d.Dim == s.Dim && IsSubtype(d.Elem, s.Elem)
	case *Simd:
		s := src.(*Simd)

		return d.Dim == s.Dim && IsSubtype(d.Elem, s.Elem)
	case *OwnedPtr:
		s := src.(*OwnedPtr)

		return d.AddrSpace == s.AddrSpace && IsSubtype(d.Pointee, s.Pointee)
	case *Var:
		return d.Depth == src.(*Var).Depth
	case *Lambda:
		s := src.(*Lambda)

		return IsSubtype(d.Body, s.Body)
	case *App:
		s := src.(*App)

		return IsSubtype(d.Reduced, s.Reduced)
	case *InferError:
		s := src.(*InferError)

		return IsSubtype(d.Dst, s.Dst) && IsSubtype(d.Src, s.Src)
	case *NoRetT:
		return true
	default:
		return dst == src
	}
}

// typeEqual is mutual subtyping; used where the spec calls for
// "matching"/"compatible" rather than one-directional coercion.
func typeEqual(a, b Type) bool {
	return IsSubtype(a, b) && IsSubtype(b, a)
}

// ====== reduction (de Bruijn substitution) ======

// Reduce walks t, replacing Var(depth) with repl, decrementing
// Var(d) for d > depth, and leaving Var(d) for d < depth unchanged.
// memo preserves sharing across recursive nominal types: it must be
// consulted (and populated) before recursing into a nominal's
// operands, so that a cycle through a struct/enum terminates.
func (tb *Table) Reduce(t Type, depth int, repl Type, memo map[Type]Type) Type {
	if existing, ok := memo[t]; ok {
		return existing
	}

	switch v := t.(type) {
	case *Var:
		switch {
		case v.Depth == depth:
			return repl
		case v.Depth > depth:
			return tb.VarType(v.Depth - 1)
		default:
			return v
		}
	case *Prim, *Unknown, *NoRetT, *TypeErrorT:
		return t
	case *Tuple:
		elems := make([]Type, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = tb.Reduce(e, depth, repl, memo)
		}

		return tb.TupleType(elems)
	case *Fn:
		return tb.FnType(tb.Reduce(v.Param, depth, repl, memo))
	case *DefiniteArray:
		return tb.DefiniteArrayType(tb.Reduce(v.Elem, depth, repl, memo), v.Dim)
	case *IndefiniteArray:
		return tb.IndefiniteArrayType(tb.Reduce(v.Elem, depth, repl, memo))
	case *Simd:
		return tb.SimdType(tb.Reduce(v.Elem, depth, repl, memo), v.Dim)
	case *BorrowedPtr:
		return tb.BorrowedPtrType(tb.Reduce(v.Pointee, depth, repl, memo), v.Mut, v.AddrSpace)
	case *OwnedPtr:
		return tb.OwnedPtrType(tb.Reduce(v.Pointee, depth, repl, memo), v.AddrSpace)
	case *RefType:
		return tb.RefType(tb.Reduce(v.Pointee, depth, repl, memo), v.Mut, v.AddrSpace)
	case *Lambda:
		return tb.LambdaType(tb.Reduce(v.Body, depth+1, repl, memo), v.Name)
	case *App:
		return tb.AppType(tb.Reduce(v.Callee, depth, repl, memo), tb.Reduce(v.Arg, depth, repl, memo))
	case *InferError:
		return tb.InferErrorType(tb.Reduce(v.Dst, depth, repl, memo), tb.Reduce(v.Src, depth, repl, memo))
	case *StructType:
		rebuilt := tb.StructTypeDecl(v.Decl, len(v.Fields))
		memo[t] = rebuilt

		for i, f := range v.Fields {
			rebuilt.SetStructField(i, tb.Reduce(f, depth, repl, memo))
		}

		rebuilt.Freeze()

		return rebuilt
	case *EnumType:
		rebuilt := tb.EnumTypeDecl(v.Decl, len(v.Variants))
		memo[t] = rebuilt

		for i, variant := range v.Variants {
			rebuilt.SetEnumVariant(i, tb.Reduce(variant, depth, repl, memo))
		}

		rebuilt.Freeze()

		return rebuilt
	default:
		return t
	}
}

// VRebuild reconstructs t in dst using the already-rebuilt operands in
// ops (in the same order the variant's fields are declared); nominal
// and absorbing nodes rebuild to themselves regardless of dst.
func VRebuild(dst *Table, t Type, ops []Type) Type {
	switch v := t.(type) {
	case *Prim:
		return dst.PrimType(v.Tag)
	case *Tuple:
		return dst.TupleType(ops)
	case *Fn:
		return dst.FnType(ops[0])
	case *DefiniteArray:
		return dst.DefiniteArrayType(ops[0], v.Dim)
	case *IndefiniteArray:
		return dst.IndefiniteArrayType(ops[0])
	case *Simd:
		return dst.SimdType(ops[0], v.Dim)
	case *BorrowedPtr:
		return dst.BorrowedPtrType(ops[0], v.Mut, v.AddrSpace)
	case *OwnedPtr:
		return dst.OwnedPtrType(ops[0], v.AddrSpace)
	case *RefType:
		return dst.RefType(ops[0], v.Mut, v.AddrSpace)
	case *Var:
		return dst.VarType(v.Depth)
	case *Lambda:
		return dst.LambdaType(ops[0], v.Name)
	case *App:
		return dst.AppType(ops[0], ops[1])
	case *InferError:
		return dst.InferErrorType(ops[0], ops[1])
	case *StructType, *EnumType, *Unknown, *NoRetT, *TypeErrorT:
		return t
	default:
		return t
	}
}
