package checker

import (
	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/types"
)

// checkBlockExpr runs check_head on every contained item statement
// first (so nested declarations can be mutually recursive), then
// checks statements in order, then the tail expression; the block's
// type is the tail's type, or unit if there is none.
func (c *Checker) checkBlockExpr(b *ast.BlockExpr) types.Type {
	var items []ast.Item

	for _, st := range b.Stmts {
		if is, ok := st.(*ast.ItemStmt); ok {
			items = append(items, is.Item)
		}
	}

	if len(items) > 0 {
		c.checkItems(items)
	}

	for _, st := range b.Stmts {
		c.checkStmt(st)
	}

	tailType := c.Types.Unit()
	if b.Tail != nil {
		tailType = c.checkExpr(b.Tail)
	}

	b.SetType(tailType)

	return tailType
}

// checkExpr dispatches to every Expr variant, attaching the resolved
// type (and, for PathExpr, the resolved declaration) before returning
// it.
func (c *Checker) checkExpr(e ast.Expr) types.Type {
	var t types.Type

	switch v := e.(type) {
	case *ast.LiteralExpr:
		t = c.checkLiteral(v)
	case *ast.PathExpr:
		t = c.checkPath(v)
	case *ast.PrefixExpr:
		t = c.checkPrefix(v)
	case *ast.InfixExpr:
		t = c.checkInfix(v)
	case *ast.PostfixExpr:
		t = c.checkPostfix(v)
	case *ast.BlockExpr:
		t = c.checkBlockExpr(v)
	case *ast.IfExpr:
		t = c.checkIf(v)
	case *ast.ForExpr:
		t = c.checkFor(v)
	case *ast.FieldExpr:
		t = c.checkField(v)
	case *ast.CastExpr:
		t = c.checkCast(v)
	case *ast.TupleExpr:
		t = c.checkTuple(v)
	case *ast.ArrayExpr:
		t = c.checkArray(v)
	case *ast.StructExpr:
		t = c.checkStruct(v)
	case *ast.MapExpr:
		t = c.checkMap(v)
	default:
		c.Sink.Report(diagnostic.IllegalType, e.Span(), "unrecognized expression")

		t = c.Types.TypeError()
	}

	e.SetType(t)

	return t
}

func (c *Checker) checkLiteral(l *ast.LiteralExpr) types.Type {
	switch l.Kind {
	case ast.LitInt:
		return c.Types.PrimType(types.I32)
	case ast.LitFloat:
		return c.Types.PrimType(types.F64)
	case ast.LitBool:
		return c.Types.PrimType(types.Bool)
	case ast.LitString:
		return c.Types.IndefiniteArrayType(c.Types.PrimType(types.U8))
	default:
		return c.Types.TypeError()
	}
}

// checkPath resolves the path via scope; when explicit type arguments
// are supplied, it checks them against the declaration's recorded
// trait bounds and instantiates the declaration's type with them,
// whatever kind of declaration it is; otherwise the declaration's type
// is used as-is.
func (c *Checker) checkPath(p *ast.PathExpr) types.Type {
	decl, ok := c.Scope.Lookup(p.Span(), p.Name)
	if !ok {
		return c.Types.TypeError()
	}

	p.ResolvedDecl = decl

	if decl.Type == nil {
		return c.Types.TypeError()
	}

	concreteArgs := make([]types.Type, len(p.TypeArgs))
	for i, arg := range p.TypeArgs {
		concreteArgs[i] = c.toType(arg.Type)
	}

	c.checkBounds(p.Span(), decl, concreteArgs)

	result := decl.Type
	for _, arg := range concreteArgs {
		result = c.Types.AppType(result, arg)
	}

	return result
}

func (c *Checker) checkPrefix(p *ast.PrefixExpr) types.Type {
	operand := c.checkExpr(p.Operand)

	switch p.Op {
	case ast.PrefixNeg:
		v := valueType(operand)
		if !isNumeric(v) {
			c.Sink.Report(diagnostic.TypeMismatch, p.Span(), "unary '-' requires a numeric operand")

			return c.Types.TypeError()
		}

		return v
	case ast.PrefixNot:
		v := valueType(operand)
		if v != c.Types.PrimType(types.Bool) {
			c.Sink.Report(diagnostic.TypeMismatch, p.Span(), "unary '!' requires a bool operand")

			return c.Types.TypeError()
		}

		return v
	case ast.PrefixDeref:
		switch pt := operand.(type) {
		case *types.OwnedPtr:
			return c.Types.RefType(pt.Pointee, true, pt.AddrSpace)
		case *types.BorrowedPtr:
			return c.Types.RefType(pt.Pointee, pt.Mut, pt.AddrSpace)
		case *types.RefType:
			return pt
		default:
			c.Sink.Report(diagnostic.TypeMismatch, p.Span(), "'*' requires a pointer or reference operand")

			return c.Types.TypeError()
		}
	case ast.PrefixAddrOf:
		return c.Types.BorrowedPtrType(operand, false, 0)
	case ast.PrefixAddrOfMut:
		return c.Types.BorrowedPtrType(operand, true, 0)
	default:
		return c.Types.TypeError()
	}
}

func (c *Checker) checkInfix(i *ast.InfixExpr) types.Type {
	if i.Op.IsAssign() {
		return c.checkAssign(i)
	}

	lt := valueType(c.checkExpr(i.Left))
	rt := valueType(c.checkExpr(i.Right))

	switch i.Op {
	case ast.InfixAnd, ast.InfixOr:
		b := c.Types.PrimType(types.Bool)
		if lt != b || rt != b {
			c.Sink.Report(diagnostic.TypeMismatch, i.Span(), "logical operator requires bool operands")

			return c.Types.TypeError()
		}

		return b
	case ast.InfixEq, ast.InfixNe, ast.InfixLt, ast.InfixLe, ast.InfixGt, ast.InfixGe:
		if !types.IsSubtype(lt, rt) && !types.IsSubtype(rt, lt) {
			c.Sink.Report(diagnostic.TypeMismatch, i.Span(), "comparison operands must have compatible types")

			return c.Types.TypeError()
		}

		return c.Types.PrimType(types.Bool)
	default: // arithmetic
		if !isNumeric(lt) || !isNumeric(rt) || lt != rt {
			c.Sink.Report(diagnostic.TypeMismatch, i.Span(), "arithmetic operator requires matching numeric operands")

			return c.Types.TypeError()
		}

		return lt
	}
}

// checkAssign requires the left operand to be addressable: a mutable
// reference, or a path/field rooted in a mutable binding.
func (c *Checker) checkAssign(i *ast.InfixExpr) types.Type {
	lt := c.checkExpr(i.Left)
	rt := c.checkExpr(i.Right)

	if !c.isAddressable(i.Left) {
		c.Sink.Report(diagnostic.TypeMismatch, i.Left.Span(), "left side of assignment is not addressable")

		return c.Types.TypeError()
	}

	lv, rv := valueType(lt), valueType(rt)
	if !types.IsSubtype(lv, rv) {
		c.Sink.Report(diagnostic.TypeMismatch, i.Span(), "cannot assign "+rv.String()+" to "+lv.String())

		return c.Types.TypeError()
	}

	return lv
}

// isAddressable reports whether e denotes a mutable storage location:
// a RefType-typed expression, or a path/field rooted in a binding
// declared mutable.
func (c *Checker) isAddressable(e ast.Expr) bool {
	if ref, ok := e.Type().(*types.RefType); ok {
		return ref.Mut
	}

	switch v := e.(type) {
	case *ast.PathExpr:
		return v.ResolvedDecl != nil && v.ResolvedDecl.Mut
	case *ast.FieldExpr:
		return c.isAddressable(v.Base)
	default:
		return false
	}
}

func (c *Checker) checkPostfix(p *ast.PostfixExpr) types.Type {
	t := valueType(c.checkExpr(p.Operand))

	if !isNumeric(t) {
		c.Sink.Report(diagnostic.TypeMismatch, p.Span(), "increment/decrement requires a numeric operand")

		return c.Types.TypeError()
	}

	if !c.isAddressable(p.Operand) {
		c.Sink.Report(diagnostic.TypeMismatch, p.Span(), "increment/decrement operand is not addressable")

		return c.Types.TypeError()
	}

	return t
}

func (c *Checker) checkIf(i *ast.IfExpr) types.Type {
	cond := valueType(c.checkExpr(i.Cond))
	if cond != c.Types.PrimType(types.Bool) {
		c.Sink.Report(diagnostic.TypeMismatch, i.Cond.Span(), "if condition must be bool")
	}

	thenType := valueType(c.checkBlockExpr(i.Then))

	if i.Else == nil {
		return c.Types.Unit()
	}

	elseType := valueType(c.checkExpr(i.Else))
	if !types.IsSubtype(thenType, elseType) && !types.IsSubtype(elseType, thenType) {
		c.Sink.Report(diagnostic.TypeMismatch, i.Span(), "if branches have incompatible types")

		return c.Types.TypeError()
	}

	return thenType
}

func (c *Checker) checkFor(f *ast.ForExpr) types.Type {
	iterType := valueType(c.checkExpr(f.Iter))

	var elem types.Type

	switch it := iterType.(type) {
	case *types.DefiniteArray:
		elem = it.Elem
	case *types.IndefiniteArray:
		elem = it.Elem
	default:
		c.Sink.Report(diagnostic.TypeMismatch, f.Iter.Span(), "for-loop source must be an array")
		elem = c.Types.TypeError()
	}

	c.Scope.PushScope()
	c.Scope.Insert(&ast.Decl{Name: f.Binding, Kind: ast.DeclLocal, Span: f.Span(), Type: elem})
	c.checkBlockExpr(f.Body)
	c.Scope.PopScope()

	return c.Types.Unit()
}

func (c *Checker) checkField(f *ast.FieldExpr) types.Type {
	baseType := valueType(c.checkExpr(f.Base))

	st, ok := baseType.(*types.StructType)
	if !ok {
		c.Sink.Report(diagnostic.TypeMismatch, f.Span(), "field access requires a struct operand")

		return c.Types.TypeError()
	}

	idx, ok := c.structFieldIndex(st, f.Name)
	if !ok {
		c.Sink.Report(diagnostic.Undeclared, f.Span(), "struct '"+st.String()+"' has no field '"+f.Name+"'")

		return c.Types.TypeError()
	}

	return st.Fields[idx]
}

func (c *Checker) checkCast(cx *ast.CastExpr) types.Type {
	c.checkExpr(cx.Operand)

	return c.toType(cx.Target)
}

func (c *Checker) checkTuple(t *ast.TupleExpr) types.Type {
	elems := make([]types.Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = valueType(c.checkExpr(e))
	}

	return c.Types.TupleType(elems)
}

func (c *Checker) checkArray(a *ast.ArrayExpr) types.Type {
	switch a.Kind {
	case ast.ArrayRepeated:
		elem := valueType(c.checkExpr(a.Repeat))

		return c.Types.DefiniteArrayType(elem, a.RepeatN)

	default:
		if len(a.Elems) == 0 {
			return c.Types.IndefiniteArrayType(c.Types.UnknownType())
		}

		elem := valueType(c.checkExpr(a.Elems[0]))
		for _, e := range a.Elems[1:] {
			et := valueType(c.checkExpr(e))
			if !types.IsSubtype(elem, et) {
				c.Sink.Report(diagnostic.TypeMismatch, e.Span(), "array elements must have a common type")
			}
		}

		if a.Kind == ast.ArrayDefinite {
			return c.Types.DefiniteArrayType(elem, len(a.Elems))
		}

		return c.Types.IndefiniteArrayType(elem)
	}
}

func (c *Checker) checkStruct(s *ast.StructExpr) types.Type {
	decl, ok := c.Scope.Lookup(s.Span(), s.Name)
	if !ok {
		return c.Types.TypeError()
	}

	st, ok := decl.Type.(*types.StructType)
	if !ok {
		c.Sink.Report(diagnostic.TypeMismatch, s.Span(), "'"+s.Name+"' does not name a struct")

		for _, fi := range s.Fields {
			c.checkExpr(fi.Value)
		}

		return c.Types.TypeError()
	}

	for _, fi := range s.Fields {
		valType := valueType(c.checkExpr(fi.Value))

		idx, ok := c.structFieldIndex(st, fi.Name)
		if !ok {
			c.Sink.Report(diagnostic.Undeclared, s.Span(), "struct '"+s.Name+"' has no field '"+fi.Name+"'")

			continue
		}

		want := valueType(st.Fields[idx])
		if !types.IsSubtype(want, valType) {
			c.Sink.Report(diagnostic.TypeMismatch, fi.Value.Span(), "field '"+fi.Name+"' expects "+want.String()+", got "+valType.String())
		}
	}

	return st
}

// checkMap checks a call or index expression: the callee must have
// FnType, and the argument count must match either the parameter
// tuple's size or that size minus one (the trailing return
// continuation is implicit at the call site).
func (c *Checker) checkMap(m *ast.MapExpr) types.Type {
	calleeType := c.checkExpr(m.Callee)

	fn, ok := calleeType.(*types.Fn)
	if !ok {
		c.Sink.Report(diagnostic.TypeMismatch, m.Span(), "call target must have function type")

		for _, a := range m.Args {
			c.checkExpr(a)
		}

		return c.Types.TypeError()
	}

	params := fn.Param
	tup, isTuple := params.(*types.Tuple)

	var declared []types.Type
	if isTuple {
		declared = tup.Elems
	} else {
		declared = []types.Type{params}
	}

	withoutCont := declared
	if types.IsReturning(fn) {
		withoutCont = declared[:len(declared)-1]
	}

	argTypes := make([]types.Type, len(m.Args))
	for i, a := range m.Args {
		argTypes[i] = valueType(c.checkExpr(a))
	}

	if len(argTypes) != len(declared) && len(argTypes) != len(withoutCont) {
		c.Sink.Report(diagnostic.ArityMismatch, m.Span(), "call has the wrong number of arguments")

		return c.Types.TypeError()
	}

	for i, at := range argTypes {
		want := valueType(declared[i])
		if !types.IsSubtype(want, at) {
			c.Sink.Report(diagnostic.TypeMismatch, m.Args[i].Span(), "argument "+want.String()+" expected, got "+at.String())
		}
	}

	return types.ReturnType(c.Types, fn)
}

// structFieldIndex maps a struct field name to its index using the
// declaring StructDecl, since *types.StructType itself only carries
// positional field types.
func (c *Checker) structFieldIndex(st *types.StructType, name string) (int, bool) {
	decl, ok := st.Decl.(declKey)
	if !ok {
		return -1, false
	}

	sd, ok := c.structDeclsByName[string(decl)]
	if !ok {
		return -1, false
	}

	for i, f := range sd.Fields {
		if f.Name == name {
			return i, true
		}
	}

	return -1, false
}

func isNumeric(t types.Type) bool {
	p, ok := t.(*types.Prim)

	return ok && p.Tag != types.Bool
}

// valueType strips the RefType wrapper a dereference expression's type
// carries (see checkPrefix's PrefixDeref case), for contexts that read
// a value out of an expression rather than its storage location.
func valueType(t types.Type) types.Type {
	if r, ok := t.(*types.RefType); ok {
		return r.Pointee
	}

	return t
}
