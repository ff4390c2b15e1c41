package checker

import (
	"github.com/impala-lang/impala/internal/ast"
	"github.com/impala-lang/impala/internal/diagnostic"
	"github.com/impala-lang/impala/internal/types"
)

// checkStmt checks one statement in the current scope. ItemStmt is a
// no-op here: checkBlockExpr already ran the item's three-pass
// declare/resolve/body sequence before reaching the statement list.
func (c *Checker) checkStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.ExprStmt:
		c.checkExpr(v.Expr)

	case *ast.LetStmt:
		c.checkLet(v)

	case *ast.ItemStmt:
		// already handled by checkBlockExpr's item pre-pass
	}
}

// checkLet checks the initializer, converts the declared type (if
// any), unifies the two, and binds the new local — carrying Mut so
// later assignment checks can tell whether it is addressable.
func (c *Checker) checkLet(s *ast.LetStmt) {
	initType := c.Types.TypeError()
	if s.Init != nil {
		initType = c.checkExpr(s.Init)
	}

	declType := initType
	if s.Type != nil {
		declType = c.toType(s.Type)

		if !types.IsSubtype(valueType(declType), valueType(initType)) {
			c.Sink.Report(diagnostic.TypeMismatch, s.Span(),
				"let '"+s.Name+"' declared as "+declType.String()+", initializer has type "+initType.String())
		}
	}

	c.Scope.Insert(&ast.Decl{Name: s.Name, Kind: ast.DeclLocal, Span: s.Span(), Type: declType, Mut: s.Mut})
}
