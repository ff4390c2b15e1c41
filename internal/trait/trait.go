// Package trait implements the Trait Registry: trait declarations,
// their bound type variables and method signatures, and the trait
// instances (trait + concrete type arguments) the checker unifies
// against recorded impls.
package trait

import (
	"fmt"

	"github.com/impala-lang/impala/internal/types"
)

// Decl identifies a trait's declaration site, matching types.Decl so a
// trait can stand in wherever a nominal declaration is expected.
type Decl interface {
	DeclName() string
}

// Method is one signature a trait requires; Sig's position 0 is always
// the receiver, per spec.
type Method struct {
	Name string
	Sig  *types.Fn
}

// Trait is a named, bounded-polymorphic interface.
type Trait struct {
	Decl        Decl
	Super       []*Trait
	BoundVars   []*types.Var
	Methods     []Method
	instantiated bool
}

func (t *Trait) DeclName() string { return t.Decl.DeclName() }

// Instance is a trait paired with a concrete type-argument vector.
type Instance struct {
	Trait *Trait
	Args  []types.Type
}

func (i *Instance) String() string {
	if i.Trait == nil {
		return "<illegal-trait-instance>"
	}

	s := i.Trait.DeclName() + "["
	for idx, a := range i.Args {
		if idx > 0 {
			s += ", "
		}

		s += a.String()
	}

	return s + "]"
}

// Equal compares trait instances component-wise.
func (i *Instance) Equal(o *Instance) bool {
	if i.Trait != o.Trait || len(i.Args) != len(o.Args) {
		return false
	}

	for idx := range i.Args {
		if i.Args[idx] != o.Args[idx] {
			return false
		}
	}

	return true
}

// ErrInstance is the distinguished value Instantiate returns on failure,
// and the checker's trait-bound conversion (checkTypeParams) treats it
// as its error result (see spec.md §9: the source's missing fallthrough
// is specified to return this rather than being undefined behavior).
var ErrInstance = &Instance{Trait: nil}

// ImplRecord is one recorded `impl Trait[Args] for ForType`.
type ImplRecord struct {
	ForType  types.Type
	Instance *Instance
}

// Registry declares traits and records impls, the data the bound
// check and the checker's Impl-item validation both query.
type Registry struct {
	traits map[string]*Trait
	impls  []ImplRecord
	instCache map[string]*Instance
}

// NewRegistry constructs an empty Trait Registry.
func NewRegistry() *Registry {
	return &Registry{
		traits:    make(map[string]*Trait),
		instCache: make(map[string]*Instance),
	}
}

// DeclareTrait creates a trait entity bound to decl, with its
// super-trait set fixed at declaration time.
func (r *Registry) DeclareTrait(decl Decl, super []*Trait) *Trait {
	tr := &Trait{Decl: decl, Super: super}
	r.traits[decl.DeclName()] = tr

	return tr
}

// Lookup finds a previously declared trait by name.
func (r *Registry) Lookup(name string) (*Trait, bool) {
	tr, ok := r.traits[name]

	return tr, ok
}

// AddBoundVar registers the next bound type variable, in order.
// Registering after the trait has been instantiated is an error.
func (t *Trait) AddBoundVar(v *types.Var) error {
	if t.instantiated {
		return fmt.Errorf("trait: cannot add bound variable to %s after instantiation", t.DeclName())
	}

	t.BoundVars = append(t.BoundVars, v)

	return nil
}

// AddMethod attaches a signature, which must be closed: it may
// reference only the type variables the trait itself bound.
func (t *Trait) AddMethod(name string, sig *types.Fn) error {
	if !isClosedUnder(sig.Param, len(t.BoundVars), 0) {
		return fmt.Errorf("trait: method %s.%s references a type variable outside the trait's bound variables", t.DeclName(), name)
	}

	t.Methods = append(t.Methods, Method{Name: name, Sig: sig})

	return nil
}

// isClosedUnder reports whether every Var in t is bound either by an
// enclosing Lambda within t itself (tracked by binderDepth) or by one
// of the trait's own numBound variables.
func isClosedUnder(t types.Type, numBound, binderDepth int) bool {
	switch v := t.(type) {
	case *types.Var:
		return v.Depth < numBound+binderDepth
	case *types.Tuple:
		for _, e := range v.Elems {
			if !isClosedUnder(e, numBound, binderDepth) {
				return false
			}
		}

		return true
	case *types.Fn:
		return isClosedUnder(v.Param, numBound, binderDepth)
	case *types.DefiniteArray:
		return isClosedUnder(v.Elem, numBound, binderDepth)
	case *types.IndefiniteArray:
		return isClosedUnder(v.Elem, numBound, binderDepth)
	case *types.Simd:
		return isClosedUnder(v.Elem, numBound, binderDepth)
	case *types.BorrowedPtr:
		return isClosedUnder(v.Pointee, numBound, binderDepth)
	case *types.OwnedPtr:
		return isClosedUnder(v.Pointee, numBound, binderDepth)
	case *types.RefType:
		return isClosedUnder(v.Pointee, numBound, binderDepth)
	case *types.Lambda:
		return isClosedUnder(v.Body, numBound, binderDepth+1)
	case *types.App:
		return isClosedUnder(v.Callee, numBound, binderDepth) && isClosedUnder(v.Arg, numBound, binderDepth)
	default:
		return true // Prim, nominal, Unknown, NoRet, TypeError carry no bare Var
	}
}

// Instantiate returns the canonical instance of trait with the given
// type arguments when the arity matches, or ErrInstance otherwise.
func (r *Registry) Instantiate(tr *Trait, args []types.Type) *Instance {
	if tr == nil || len(args) != len(tr.BoundVars) {
		return ErrInstance
	}

	tr.instantiated = true

	key := tr.DeclName()
	for _, a := range args {
		key += fmt.Sprintf(":%p", a)
	}

	if cached, ok := r.instCache[key]; ok {
		return cached
	}

	inst := &Instance{Trait: tr, Args: append([]types.Type(nil), args...)}
	r.instCache[key] = inst

	return inst
}

// RegisterImpl records that ForType implements inst.
func (r *Registry) RegisterImpl(forType types.Type, inst *Instance) {
	r.impls = append(r.impls, ImplRecord{ForType: forType, Instance: inst})
}

// Satisfies reports whether t satisfies inst: the only discipline
// enforced here is presence of a matching impl; overlap/coherence
// checking is out of scope (spec.md §1 Non-goals).
func (r *Registry) Satisfies(t types.Type, inst *Instance) bool {
	if inst == ErrInstance || inst.Trait == nil {
		return false
	}

	for _, rec := range r.impls {
		if rec.Instance.Trait != inst.Trait {
			continue
		}

		if !types.IsSubtype(rec.ForType, t) && !types.IsSubtype(t, rec.ForType) {
			continue
		}

		if len(rec.Instance.Args) != len(inst.Args) {
			continue
		}

		match := true

		for i := range inst.Args {
			if rec.Instance.Args[i] != inst.Args[i] {
				match = false

				break
			}
		}

		if match {
			return true
		}
	}

	return false
}
