// Package checker implements the Type Checker: a tree walk over AST
// items, statements, and expressions that assigns types, validates
// constraints, and records bindings, reporting into an Error Sink.
package checker

import (
	"github.com/hashicorp/go-hclog"

	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/config"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/edition"
	"github.com/impala-lang/impala/internal/position"
	"github.com/impala-lang/impala/internal/scope"
	"github.com/impala-lang/impala/internal/trait"
	"github.com/impala-lang/impala/internal/types"
)

// Checker walks a Module, consulting the Type Table for type
// construction and equality, the Trait Registry for bound checks, and
// the Scope Table for resolution, attaching inferred types and
// resolved declarations onto the AST as it goes.
type Checker struct {
	Types  *types.Table
	Traits *trait.Registry
	Scope  *scope.Table
	Sink   *diagnostic.Sink
	Opts   *config.Options
	Log    hclog.Logger

	traitOf map[*ast.TraitDecl]*trait.Trait

	// structDeclsByName maps a struct's declared name back to its
	// ast.StructDecl, since *types.StructType only carries positional
	// field types and field-name lookup needs the source-level shape.
	structDeclsByName map[string]*ast.StructDecl

	// generics records, for every declaration that binds type
	// parameters, the trait bounds declared on each parameter, so a
	// later instantiation site (checkPath, resolveTypePath) can check
	// the concrete type arguments against them.
	generics map[*ast.Decl]genericBinding
}

// genericBinding is one declaration's type parameters together with
// the trait bounds checkTypeParams computed for them, indexed the
// same way: bounds[i] holds params[i]'s bounds.
type genericBinding struct {
	params []*ast.TypeParam
	bounds [][]*trait.Instance
}

// New constructs a Checker with fresh, empty Type Table, Trait
// Registry, and Error Sink. opts may be nil, in which case
// config.Default() is used.
func New(opts *config.Options) *Checker {
	if opts == nil {
		opts = config.Default()
	}

	sink := diagnostic.NewSink()
	sink.SetMax(opts.MaxDiagnostics)

	return &Checker{
		Types:  types.NewTable(),
		Traits: trait.NewRegistry(),
		Scope:  scope.NewTable(sink),
		Sink:   sink,
		Opts:   opts,
		Log:    hclog.New(&hclog.LoggerOptions{Name: "checker", Level: hclog.Warn}),
	}
}

// Check is the public entry point: it returns true iff the run
// produced no diagnostics. Every check_* routine writes into the sink
// instead of aborting, so a single Check call surfaces every problem
// in the module, not just the first.
func (c *Checker) Check(m *ast.Module) bool {
	c.Log.Debug("checking module", "name", m.Name, "edition", m.Edition)

	ok, err := edition.Check(m.Edition, c.Opts.EditionConstraint)

	switch {
	case err != nil:
		c.Sink.Report(diagnostic.IllegalType, m.Span(), "invalid edition constraint: "+err.Error())

		return c.Sink.Success()
	case !ok:
		c.Sink.Report(diagnostic.IllegalType, m.Span(), "module edition '"+m.Edition+"' is not supported by this checker's configured range '"+c.Opts.EditionConstraint+"'")

		return c.Sink.Success()
	}

	c.checkItems(m.Items)

	return c.Sink.Success()
}

// checkTypeParams allocates a fresh Var for each parameter (innermost
// binds last, matching nested-Lambda construction order), inserts it
// into scope, then converts each bound expression to a trait
// instance. Non-trait bounds are rejected with BoundViolation. The
// returned slice is indexed the same way as params: bounds[i] holds
// every trait instance params[i] must satisfy.
func (c *Checker) checkTypeParams(params []*ast.TypeParam) [][]*trait.Instance {
	n := len(params)
	bounds := make([][]*trait.Instance, n)

	for i, p := range params {
		depth := n - 1 - i
		decl := &ast.Decl{Name: p.Name, Kind: ast.DeclTypeParam, Span: p.Sp, Type: c.Types.VarType(depth)}
		c.Scope.Insert(decl)
	}

	for i, p := range params {
		for _, boundExpr := range p.Bounds {
			path, ok := boundExpr.(*ast.PathTypeExpr)
			if !ok {
				c.Sink.Report(diagnostic.BoundViolation, boundExpr.Span(), "type parameter bounds must name a trait")

				continue
			}

			tr, ok := c.Traits.Lookup(path.Name)
			if !ok {
				c.Sink.Report(diagnostic.Undeclared, path.Span(), "undeclared trait '"+path.Name+"'")

				continue
			}

			args := make([]types.Type, len(path.TypeArgs))
			for j, a := range path.TypeArgs {
				args[j] = c.toType(a)
			}

			inst := c.Traits.Instantiate(tr, args)
			if inst == trait.ErrInstance {
				c.Sink.Report(diagnostic.BoundViolation, path.Span(), "trait '"+path.Name+"' applied with the wrong number of type arguments")

				continue
			}

			bounds[i] = append(bounds[i], inst)
		}
	}

	return bounds
}

// wrapGeneric wraps body in one Lambda per type parameter, outermost
// first, so App applied in declaration order instantiates params left
// to right.
func (c *Checker) wrapGeneric(params []*ast.TypeParam, body types.Type) types.Type {
	result := body
	for i := len(params) - 1; i >= 0; i-- {
		result = c.Types.LambdaType(result, params[i].Name)
	}

	return result
}

// recordGenericBounds remembers decl's type parameters and their
// bounds so a later instantiation site can check concrete type
// arguments against them. A declaration with no type parameters is
// not recorded; checkBounds is a no-op for such a declaration anyway.
func (c *Checker) recordGenericBounds(decl *ast.Decl, params []*ast.TypeParam, bounds [][]*trait.Instance) {
	if len(params) == 0 {
		return
	}

	if c.generics == nil {
		c.generics = make(map[*ast.Decl]genericBinding)
	}

	c.generics[decl] = genericBinding{params: params, bounds: bounds}
}

// checkBounds verifies that concreteArgs, supplied at an
// instantiation site (a PathExpr's or PathTypeExpr's explicit type
// arguments), satisfy decl's declared trait bounds. Reports
// BoundViolation at span — the instantiation site, not decl's own
// declaration, per spec.md §8 scenario 5.
func (c *Checker) checkBounds(span position.Span, decl *ast.Decl, concreteArgs []types.Type) {
	binding, ok := c.generics[decl]
	if !ok {
		return
	}

	for i, paramBounds := range binding.bounds {
		if i >= len(concreteArgs) {
			break
		}

		for _, tmpl := range paramBounds {
			inst := c.substituteInstance(binding.params, tmpl, concreteArgs)
			if !c.Traits.Satisfies(concreteArgs[i], inst) {
				c.Sink.Report(diagnostic.BoundViolation, span,
					"type argument "+concreteArgs[i].String()+" does not satisfy bound "+inst.String())
			}
		}
	}
}

// substituteInstance replaces every reference to params within tmpl's
// type arguments with the corresponding concrete type from
// concreteArgs, using the same wrap-then-apply technique a direct
// generic-item instantiation uses.
func (c *Checker) substituteInstance(params []*ast.TypeParam, tmpl *trait.Instance, concreteArgs []types.Type) *trait.Instance {
	args := make([]types.Type, len(tmpl.Args))

	for i, a := range tmpl.Args {
		substituted := c.wrapGeneric(params, a)
		for _, ca := range concreteArgs {
			substituted = c.Types.AppType(substituted, ca)
		}

		args[i] = substituted
	}

	return &trait.Instance{Trait: tmpl.Trait, Args: args}
}
