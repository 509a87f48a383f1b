// Package cst defines the type-solver's working tree: structurally
// identical to the AST, but every Expression carries a mutable Type slot
// (spec.md §3).
package cst

import (
	"fmt"

	"github.com/solventlang/solvent/internal/source"
	"github.com/solventlang/solvent/internal/token"
)

// TypeKind is the closed set of CST type variants.
type TypeKind int

const (
	// KindVariable is a placeholder standing for an unknown ground type.
	// Variable(0) is the sentinel "unassigned" value and is never minted
	// by the solver.
	KindVariable TypeKind = iota
	KindInteger
	KindBool
)

// Type is a type-solver value: either a type variable (identified by a
// dense, monotonically minted positive id) or a ground type.
type Type struct {
	Kind TypeKind
	Var  int // meaningful when Kind == KindVariable
}

// Unassigned is the sentinel Variable(0) every expression slot starts with
// after lowering.
var Unassigned = Type{Kind: KindVariable, Var: 0}

// IsGround reports whether t is Integer or Bool — never Variable(_).
func (t Type) IsGround() bool {
	return t.Kind != KindVariable
}

func (t Type) String() string {
	switch t.Kind {
	case KindInteger:
		return "Integer"
	case KindBool:
		return "Bool"
	default:
		return fmt.Sprintf("Variable(%d)", t.Var)
	}
}

func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == KindVariable {
		return t.Var == other.Var
	}
	return true
}

// StatementBlock mirrors ast.StatementBlock.
type StatementBlock struct {
	Stmts []Statement
	Loc   source.Location
	Sp    source.Span
}

func (b *StatementBlock) Location() source.Location { return b.Loc }
func (b *StatementBlock) Span() source.Span         { return b.Sp }

// Statement is the sum type of CST statement forms.
type Statement interface {
	Location() source.Location
	Span() source.Span
	statementNode()
}

// NameDeclaration mirrors ast.NameDeclaration.
type NameDeclaration struct {
	Name  string
	Value *Expression
	Loc   source.Location
	Sp    source.Span
}

func (*NameDeclaration) statementNode()              {}
func (n *NameDeclaration) Location() source.Location { return n.Loc }
func (n *NameDeclaration) Span() source.Span         { return n.Sp }

// While mirrors ast.While.
type While struct {
	Pred *Expression
	Body *StatementBlock
	Loc  source.Location
	Sp   source.Span
}

func (*While) statementNode()              {}
func (w *While) Location() source.Location { return w.Loc }
func (w *While) Span() source.Span         { return w.Sp }

// ExpressionStmt mirrors ast.ExpressionStmt.
type ExpressionStmt struct {
	Expr *Expression
	Loc  source.Location
	Sp   source.Span
}

func (*ExpressionStmt) statementNode()              {}
func (e *ExpressionStmt) Location() source.Location { return e.Loc }
func (e *ExpressionStmt) Span() source.Span         { return e.Sp }

// ExprKind is the sum type of CST expression forms, mirroring ast's
// Expression variants but addressed through Expression.Kind rather than a
// Go interface, so the solver can mutate the Ty slot in place without
// juggling interface identity.
type ExprKind int

const (
	KindIntegerLiteral ExprKind = iota
	KindName
	KindBinop
	KindGrouping
	KindFunctionApplication
)

// Expression is the CST's mutable expression node: every instance carries
// a Ty slot the solver refines in place.
type Expression struct {
	Ty   Type
	Kind ExprKind

	// KindIntegerLiteral
	Digits string
	// KindName
	Ident string
	// KindBinop
	Op       token.Op
	Lhs, Rhs *Expression
	// KindGrouping
	Inner *Expression
	// KindFunctionApplication
	Func *Expression
	Args []*Expression

	Loc source.Location
	Sp  source.Span
}

func (e *Expression) Location() source.Location { return e.Loc }
func (e *Expression) Span() source.Span         { return e.Sp }

// AllGround reports whether every expression reachable from block has a
// ground type — the completeness predicate of spec.md §4.5.
func AllGround(block *StatementBlock) bool {
	complete := true
	WalkStatements(block, func(e *Expression) {
		if !e.Ty.IsGround() {
			complete = false
		}
	})
	return complete
}

// Walk visits e and, for composite kinds, its children, pre-order.
func Walk(e *Expression, visit func(*Expression)) {
	visit(e)
	switch e.Kind {
	case KindBinop:
		Walk(e.Lhs, visit)
		Walk(e.Rhs, visit)
	case KindGrouping:
		Walk(e.Inner, visit)
	case KindFunctionApplication:
		Walk(e.Func, visit)
		for _, a := range e.Args {
			Walk(a, visit)
		}
	}
}

// WalkStatements visits every expression reachable from block, pre-order,
// statement by statement.
func WalkStatements(block *StatementBlock, visit func(*Expression)) {
	for _, stmt := range block.Stmts {
		walkStatement(stmt, visit)
	}
}

func walkStatement(stmt Statement, visit func(*Expression)) {
	switch s := stmt.(type) {
	case *NameDeclaration:
		Walk(s.Value, visit)
	case *While:
		Walk(s.Pred, visit)
		WalkStatements(s.Body, visit)
	case *ExpressionStmt:
		Walk(s.Expr, visit)
	}
}
