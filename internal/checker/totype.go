package checker

import (
	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/types"
)

var primNames = map[string]types.PrimTag{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64,
	"f16": types.F16, "f32": types.F32, "f64": types.F64, "bool": types.Bool,
}

// toType converts a syntactic type expression to a Type Table handle,
// resolving PathTypeExpr through the Scope Table.
func (c *Checker) toType(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case *ast.PrimTypeExpr:
		tag, ok := primNames[t.Name]
		if !ok {
			c.Sink.Report(diagnostic.IllegalType, t.Span(), "unknown primitive type '"+t.Name+"'")

			return c.Types.TypeError()
		}

		return c.Types.PrimType(tag)

	case *ast.PathTypeExpr:
		return c.resolveTypePath(t)

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.toType(e)
		}

		return c.Types.TupleType(elems)

	case *ast.FnTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.toType(p)
		}

		return c.Types.FnType(c.Types.TupleType(params))

	case *ast.DefiniteArrayTypeExpr:
		return c.Types.DefiniteArrayType(c.toType(t.Elem), t.Len)

	case *ast.IndefiniteArrayTypeExpr:
		return c.Types.IndefiniteArrayType(c.toType(t.Elem))

	case *ast.SimdTypeExpr:
		return c.Types.SimdType(c.toType(t.Elem), t.Lanes)

	case *ast.BorrowedPtrTypeExpr:
		return c.Types.BorrowedPtrType(c.toType(t.Pointee), t.Mut, 0)

	case *ast.OwnedPtrTypeExpr:
		return c.Types.OwnedPtrType(c.toType(t.Pointee), 0)

	case *ast.RefTypeExpr:
		return c.Types.RefType(c.toType(t.Pointee), t.Mut, 0)

	default:
		c.Sink.Report(diagnostic.IllegalType, te.Span(), "unrecognized type expression")

		return c.Types.TypeError()
	}
}

// resolveTypePath resolves a named type reference: a type parameter
// resolves to its Var, a struct/enum/alias to its declared type, and a
// trait name in type position is a MisplacedTrait error. An
// unresolved name yields type_error (the Scope Table itself reports
// Undeclared).
func (c *Checker) resolveTypePath(t *ast.PathTypeExpr) types.Type {
	decl, ok := c.Scope.Lookup(t.Span(), t.Name)
	if !ok {
		return c.Types.TypeError()
	}

	var base types.Type

	switch decl.Kind {
	case ast.DeclTypeParam, ast.DeclStruct, ast.DeclEnum, ast.DeclTypeAlias:
		base = decl.Type
	case ast.DeclTrait:
		c.Sink.Report(diagnostic.MisplacedTrait, t.Span(), "trait '"+t.Name+"' cannot be used as a type")

		return c.Types.TypeError()
	default:
		c.Sink.Report(diagnostic.IllegalType, t.Span(), "'"+t.Name+"' does not name a type")

		return c.Types.TypeError()
	}

	if base == nil {
		return c.Types.TypeError()
	}

	concreteArgs := make([]types.Type, len(t.TypeArgs))
	for i, arg := range t.TypeArgs {
		concreteArgs[i] = c.toType(arg)
	}

	c.checkBounds(t.Span(), decl, concreteArgs)

	applied := base
	for _, arg := range concreteArgs {
		applied = c.Types.AppType(applied, arg)
	}

	return applied
}
