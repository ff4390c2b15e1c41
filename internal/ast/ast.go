// Package ast defines the Impala abstract syntax tree: the owned tree
// of items, statements, expressions, and type expressions the parser
// (out of scope for this front end) produces and the checker consumes.
//
// Every node carries a source Span. Once checked, expression and path
// nodes additionally cache a resolved types.Type and, for paths, a
// resolved *Decl — caches the parser must never observe.
package ast

import (
	"github.com/impala-lang/impala/internal/position"
	"github.com/impala-lang/impala/internal/types"
)

// Node is the root interface every AST node implements.
type Node interface {
	Span() position.Span
}

// Item is a top-level or nested declaration: module, function, struct,
// enum, trait, impl, type alias, static, or foreign module.
type Item interface {
	Node
	itemNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression; after checking, Type() returns its type.
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// TypeExpr is a type as written in source, before resolution.
type TypeExpr interface {
	Node
	typeExprNode()
}

// DeclKind classifies what introduced a Decl.
type DeclKind int

const (
	DeclModule DeclKind = iota
	DeclFunction
	DeclParameter
	DeclLocal
	DeclStruct
	DeclEnum
	DeclTypeAlias
	DeclStatic
	DeclTrait
	DeclTypeParam
	DeclForeignMod
)

// Decl is a declaration site: the Scope Table's value type, and what a
// resolved PathExpr points to.
type Decl struct {
	Name string
	Kind DeclKind
	Span position.Span
	Node Item // the declaring item, nil for parameters/locals/type params
	Type types.Type
	Mut  bool // true for a `mut` parameter or `let mut` local
}

func (d *Decl) DeclName() string { return d.Name }

// exprBase factors the Span/Type bookkeeping every expression needs.
type exprBase struct {
	Sp position.Span
	Ty types.Type
}

func (e *exprBase) Span() position.Span { return e.Sp }
func (e *exprBase) Type() types.Type    { return e.Ty }
func (e *exprBase) SetType(t types.Type) { e.Ty = t }

// ====== Items ======

// Module is the root of the AST: a compilation unit's item list.
type Module struct {
	Sp      position.Span
	Name    string
	Edition string // declared module edition (a concrete version, e.g. "1.0.0"), "" defaults to edition.Current
	Items   []Item
}

func (m *Module) Span() position.Span { return m.Sp }
func (*Module) itemNode()             {}

// ForeignModule declares externally-provided functions.
type ForeignModule struct {
	Sp    position.Span
	Name  string
	Items []Item
}

func (f *ForeignModule) Span() position.Span { return f.Sp }
func (*ForeignModule) itemNode()             {}

// TypeParam is one generic parameter of a function, struct, enum, or trait.
type TypeParam struct {
	Sp     position.Span
	Name   string
	Bounds []TypeExpr // trait bounds, converted to trait.Instance by the checker
}

// Field is a struct field or foreign-function parameter's declared shape.
type Field struct {
	Sp   position.Span
	Name string
	Type TypeExpr
}

// Param is a function parameter.
type Param struct {
	Sp   position.Span
	Name string
	Type TypeExpr
	Mut  bool
}

// FnDecl is a function item (including impl and trait methods, which
// reuse this node and stash their receiver as Params[0]).
type FnDecl struct {
	Sp         position.Span
	Name       string
	TypeParams []*TypeParam
	Params     []*Param
	RetType    TypeExpr // nil means unit
	Body       *BlockExpr
	Public     bool
}

func (f *FnDecl) Span() position.Span { return f.Sp }
func (*FnDecl) itemNode()             {}

// StructDecl declares a nominal struct type.
type StructDecl struct {
	Sp         position.Span
	Name       string
	TypeParams []*TypeParam
	Fields     []*Field
}

func (s *StructDecl) Span() position.Span { return s.Sp }
func (*StructDecl) itemNode()             {}

// EnumVariantDecl is one variant of an enum, with 0..n payload fields.
type EnumVariantDecl struct {
	Sp     position.Span
	Name   string
	Fields []*Field
}

// EnumDecl declares a nominal enum type.
type EnumDecl struct {
	Sp         position.Span
	Name       string
	TypeParams []*TypeParam
	Variants   []*EnumVariantDecl
}

func (e *EnumDecl) Span() position.Span { return e.Sp }
func (*EnumDecl) itemNode()             {}

// TypeAlias declares a type synonym.
type TypeAlias struct {
	Sp         position.Span
	Name       string
	TypeParams []*TypeParam
	Target     TypeExpr
}

func (t *TypeAlias) Span() position.Span { return t.Sp }
func (*TypeAlias) itemNode()             {}

// StaticItem declares a module-level constant/variable.
type StaticItem struct {
	Sp   position.Span
	Name string
	Type TypeExpr
	Init Expr
	Mut  bool
}

func (s *StaticItem) Span() position.Span { return s.Sp }
func (*StaticItem) itemNode()             {}

// TraitDecl declares a trait: bound type parameters and method signatures.
type TraitDecl struct {
	Sp         position.Span
	Name       string
	TypeParams []*TypeParam
	Super      []string // super-trait names
	Methods    []*FnDecl
}

func (t *TraitDecl) Span() position.Span { return t.Sp }
func (*TraitDecl) itemNode()             {}

// Impl implements a trait (or, when Trait == "", an inherent impl) for
// a target type.
type Impl struct {
	Sp         position.Span
	TypeParams []*TypeParam
	Trait      string // "" for an inherent impl
	TraitArgs  []TypeExpr
	For        TypeExpr
	Methods    []*FnDecl
}

func (i *Impl) Span() position.Span { return i.Sp }
func (*Impl) itemNode()             {}

// ====== Statements ======

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Sp   position.Span
	Expr Expr
}

func (s *ExprStmt) Span() position.Span { return s.Sp }
func (*ExprStmt) stmtNode()             {}

// LetStmt binds a new local.
type LetStmt struct {
	Sp   position.Span
	Name string
	Type TypeExpr // nil means infer from Init
	Init Expr
	Mut  bool
}

func (s *LetStmt) Span() position.Span { return s.Sp }
func (*LetStmt) stmtNode()             {}

// ItemStmt is a nested item declared inside a block.
type ItemStmt struct {
	Sp   position.Span
	Item Item
}

func (s *ItemStmt) Span() position.Span { return s.Sp }
func (*ItemStmt) stmtNode()             {}
