package checker

import (
	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/trait"
	"github.com/impala-lang/impala/internal/types"
)

// checkItems is the module-level (and nested-module-level) check: a
// three-pass walk over items in the same scope that generalizes
// spec's two-phase head/body discipline to cover mutual recursion
// between nominal types as well as between functions.
//
// Pass 1 (declare) allocates each item's declaration stub — a name and,
// for structs/enums, an unfrozen nominal identity — and inserts it
// into scope, so every item can see every other item's name.
// Pass 2 (resolve) fills in field/signature types now that every name
// in this scope resolves, using the stubs pass 1 installed for
// self- and mutually-recursive references.
// Pass 3 (bodies) type-checks statement/expression bodies, which may
// call or reference anything resolved in pass 2.
func (c *Checker) checkItems(items []ast.Item) {
	decls := make(map[ast.Item]*ast.Decl, len(items))

	for _, it := range items {
		decls[it] = c.declareHead(it)
	}

	for _, it := range items {
		c.resolveHead(it, decls[it])
	}

	for _, it := range items {
		c.checkBody(it, decls[it])
	}
}

// declareHead installs it's name (and, for nominal types, an unfrozen
// identity) into the current scope, without yet resolving field or
// signature types.
func (c *Checker) declareHead(it ast.Item) *ast.Decl {
	switch v := it.(type) {
	case *ast.Module:
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclModule, Span: v.Sp, Node: v}
		c.Scope.Insert(decl)

		return decl

	case *ast.ForeignModule:
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclForeignMod, Span: v.Sp, Node: v}
		c.Scope.Insert(decl)

		return decl

	case *ast.FnDecl:
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclFunction, Span: v.Sp, Node: v}
		c.Scope.Insert(decl)

		return decl

	case *ast.StructDecl:
		raw := c.Types.StructTypeDecl(declKey(v.Name), len(v.Fields))
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclStruct, Span: v.Sp, Node: v, Type: raw}
		c.Scope.Insert(decl)

		if c.structDeclsByName == nil {
			c.structDeclsByName = make(map[string]*ast.StructDecl)
		}

		c.structDeclsByName[v.Name] = v

		return decl

	case *ast.EnumDecl:
		raw := c.Types.EnumTypeDecl(declKey(v.Name), len(v.Variants))
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclEnum, Span: v.Sp, Node: v, Type: raw}
		c.Scope.Insert(decl)

		return decl

	case *ast.TypeAlias:
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclTypeAlias, Span: v.Sp, Node: v}
		c.Scope.Insert(decl)

		return decl

	case *ast.StaticItem:
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclStatic, Span: v.Sp, Node: v}
		c.Scope.Insert(decl)

		return decl

	case *ast.TraitDecl:
		tr := c.Traits.DeclareTrait(declKey(v.Name), nil)
		decl := &ast.Decl{Name: v.Name, Kind: ast.DeclTrait, Span: v.Sp, Node: v}
		c.Scope.Insert(decl)
		c.traitByDecl(v, tr)

		return decl

	case *ast.Impl:
		// Impls introduce no name of their own.
		return nil

	default:
		return nil
	}
}

// declKey adapts a plain name to the types.Decl / trait.Decl interfaces.
type declKey string

func (d declKey) DeclName() string { return string(d) }

// traitByDecl and traitFor round-trip an *ast.TraitDecl to its
// registered *trait.Trait using the checker's own side table.
func (c *Checker) traitByDecl(v *ast.TraitDecl, tr *trait.Trait) {
	if c.traitOf == nil {
		c.traitOf = make(map[*ast.TraitDecl]*trait.Trait)
	}

	c.traitOf[v] = tr
}

func (c *Checker) traitFor(v *ast.TraitDecl) *trait.Trait {
	return c.traitOf[v]
}

// resolveHead fills in the declaration's type now that every sibling
// name in this scope is visible.
func (c *Checker) resolveHead(it ast.Item, decl *ast.Decl) {
	switch v := it.(type) {
	case *ast.FnDecl:
		sig, bounds := c.fnSignature(v)
		decl.Type = sig
		c.recordGenericBounds(decl, v.TypeParams, bounds)

	case *ast.StructDecl:
		c.checkFieldUniqueness(v)

		c.Scope.PushScope()
		bounds := c.checkTypeParams(v.TypeParams)
		c.recordGenericBounds(decl, v.TypeParams, bounds)

		raw := decl.Type.(*types.StructType)
		for i, f := range v.Fields {
			raw.SetStructField(i, c.toType(f.Type))
		}

		raw.Freeze()
		c.Scope.PopScope()

		decl.Type = c.wrapGeneric(v.TypeParams, raw)

	case *ast.EnumDecl:
		c.checkVariantUniqueness(v)

		c.Scope.PushScope()
		bounds := c.checkTypeParams(v.TypeParams)
		c.recordGenericBounds(decl, v.TypeParams, bounds)

		raw := decl.Type.(*types.EnumType)
		for i, variant := range v.Variants {
			fields := make([]types.Type, len(variant.Fields))
			for j, f := range variant.Fields {
				fields[j] = c.toType(f.Type)
			}

			raw.SetEnumVariant(i, c.Types.TupleType(fields))
		}

		raw.Freeze()
		c.Scope.PopScope()

		decl.Type = c.wrapGeneric(v.TypeParams, raw)

	case *ast.TypeAlias:
		c.Scope.PushScope()
		bounds := c.checkTypeParams(v.TypeParams)
		c.recordGenericBounds(decl, v.TypeParams, bounds)
		target := c.toType(v.Target)
		c.Scope.PopScope()

		decl.Type = c.wrapGeneric(v.TypeParams, target)

	case *ast.StaticItem:
		decl.Type = c.toType(v.Type)

	case *ast.ForeignModule:
		c.Scope.PushScope()
		c.checkItems(v.Items)
		c.Scope.PopScope()

	case *ast.TraitDecl:
		tr := c.traitFor(v)

		c.Scope.PushScope()
		boundVars := c.bindTraitVars(v.TypeParams)

		for _, bv := range boundVars {
			_ = tr.AddBoundVar(bv)
		}

		for _, m := range v.Methods {
			sig, _ := c.fnSignature(m)
			if fn, ok := sig.(*types.Fn); ok {
				if err := tr.AddMethod(m.Name, fn); err != nil {
					c.Sink.Report(diagnostic.BoundViolation, m.Span(), err.Error())
				}
			}
		}

		c.Scope.PopScope()

	case *ast.Impl:
		c.resolveImpl(v)
	}
}

// checkFieldUniqueness reports DuplicateBinding for any repeated field
// name within a single struct declaration.
func (c *Checker) checkFieldUniqueness(v *ast.StructDecl) {
	seen := make(map[string]bool, len(v.Fields))

	for _, f := range v.Fields {
		if seen[f.Name] {
			c.Sink.Report(diagnostic.DuplicateBinding, f.Sp, "duplicate field '"+f.Name+"' in struct '"+v.Name+"'")

			continue
		}

		seen[f.Name] = true
	}
}

// checkVariantUniqueness reports DuplicateBinding for any repeated
// variant name within a single enum declaration.
func (c *Checker) checkVariantUniqueness(v *ast.EnumDecl) {
	seen := make(map[string]bool, len(v.Variants))

	for _, variant := range v.Variants {
		if seen[variant.Name] {
			c.Sink.Report(diagnostic.DuplicateBinding, v.Span(), "duplicate variant '"+variant.Name+"' in enum '"+v.Name+"'")

			continue
		}

		seen[variant.Name] = true
	}
}

// bindTraitVars inserts each type parameter as a fresh Var (same
// depth convention as checkTypeParams) and returns the Vars in order,
// for AddBoundVar.
func (c *Checker) bindTraitVars(params []*ast.TypeParam) []*types.Var {
	n := len(params)
	vars := make([]*types.Var, n)

	for i, p := range params {
		depth := n - 1 - i
		v := c.Types.VarType(depth).(*types.Var)
		vars[i] = v
		c.Scope.Insert(&ast.Decl{Name: p.Name, Kind: ast.DeclTypeParam, Span: p.Sp, Type: v})
	}

	return vars
}

// resolveImpl resolves the target type and, if present, the trait
// being implemented, then checks that each method signature refines
// the trait's declared signature (modulo substitution of the trait's
// type arguments), and records the impl in the Trait Registry.
func (c *Checker) resolveImpl(v *ast.Impl) {
	c.Scope.PushScope()
	defer c.Scope.PopScope()

	c.checkTypeParams(v.TypeParams)

	forType := c.toType(v.For)

	if v.Trait == "" {
		return
	}

	tr, ok := c.Traits.Lookup(v.Trait)
	if !ok {
		c.Sink.Report(diagnostic.Undeclared, v.Span(), "undeclared trait '"+v.Trait+"'")

		return
	}

	args := make([]types.Type, len(v.TraitArgs))
	for i, a := range v.TraitArgs {
		args[i] = c.toType(a)
	}

	inst := c.Traits.Instantiate(tr, args)
	if inst == trait.ErrInstance {
		c.Sink.Report(diagnostic.BoundViolation, v.Span(), "trait '"+v.Trait+"' applied with the wrong number of type arguments")

		return
	}

	c.Traits.RegisterImpl(forType, inst)

	implMethods := make(map[string]*types.Fn, len(v.Methods))
	for _, m := range v.Methods {
		sig, _ := c.fnSignature(m)
		if fn, ok := sig.(*types.Fn); ok {
			implMethods[m.Name] = fn
		}
	}

	for _, want := range tr.Methods {
		got, ok := implMethods[want.Name]
		if !ok {
			c.Sink.Report(diagnostic.BoundViolation, v.Span(), "impl is missing method '"+want.Name+"' required by trait '"+v.Trait+"'")

			continue
		}

		// Wrap one Lambda per trait argument before applying any, so
		// args[i] replaces the Var bindTraitVars gave parameter i.
		substituted := want.Sig.Param
		for range args {
			substituted = c.Types.LambdaType(substituted, "")
		}

		for _, a := range args {
			substituted = c.Types.AppType(substituted, a)
		}

		if !types.IsSubtype(substituted, got.Param) && !types.IsSubtype(got.Param, substituted) {
			c.Sink.Report(diagnostic.TypeMismatch, v.Span(), "method '"+want.Name+"' does not refine the signature required by trait '"+v.Trait+"'")
		}
	}
}

// fnSignature converts an ast.FnDecl's params and return type to a
// types.Fn following the continuation-passing convention: the return
// type is wrapped as a single-argument continuation (0-argument for a
// void return), appended as the parameter tuple's last element. It
// also returns the trait bounds checkTypeParams computed for fn's type
// parameters, for the caller to record against fn's declaration.
func (c *Checker) fnSignature(fn *ast.FnDecl) (types.Type, [][]*trait.Instance) {
	c.Scope.PushScope()
	defer c.Scope.PopScope()

	bounds := c.checkTypeParams(fn.TypeParams)

	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = c.toType(p.Type)
	}

	var contArgs []types.Type
	if fn.RetType != nil {
		contArgs = []types.Type{c.toType(fn.RetType)}
	}

	cont := c.Types.FnType(c.Types.TupleType(contArgs))
	params = append(params, cont)

	sig := c.Types.FnType(c.Types.TupleType(params))

	return c.wrapGeneric(fn.TypeParams, sig), bounds
}

// checkBody type-checks it's body, if any: a function's block, a
// nested module's item list, an impl's method blocks, or (for
// everything else) nothing further.
func (c *Checker) checkBody(it ast.Item, decl *ast.Decl) {
	switch v := it.(type) {
	case *ast.Module:
		c.Scope.PushScope()
		c.checkItems(v.Items)
		c.Scope.PopScope()

	case *ast.FnDecl:
		c.checkFnBody(v)

	case *ast.Impl:
		for _, m := range v.Methods {
			c.checkFnBody(m)
		}
	}
}

// checkFnBody re-enters the signature's scope, binds each parameter as
// a local, and checks the body block under the assumption that the
// declared return type equals the body's tail expression type.
func (c *Checker) checkFnBody(fn *ast.FnDecl) {
	if fn.Body == nil {
		return
	}

	c.Scope.PushScope()
	defer c.Scope.PopScope()

	c.checkTypeParams(fn.TypeParams)

	for _, p := range fn.Params {
		pt := c.toType(p.Type)
		c.Scope.Insert(&ast.Decl{Name: p.Name, Kind: ast.DeclParameter, Span: p.Sp, Type: pt, Mut: p.Mut})
	}

	retType := c.Types.Unit()
	if fn.RetType != nil {
		retType = c.toType(fn.RetType)
	}

	bodyType := valueType(c.checkBlockExpr(fn.Body))
	if !types.IsSubtype(valueType(retType), bodyType) {
		c.Sink.Report(diagnostic.TypeMismatch, fn.Body.Span(),
			"function '"+fn.Name+"' returns "+bodyType.String()+", expected "+retType.String())
	}
}
