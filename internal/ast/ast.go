// Package ast defines the untyped syntax tree produced by the parser
// (spec.md §3, §4.3). Every node exposes its Location (of its first
// character) and Span (full extent); composite node spans must contain
// every child's span.
package ast

import (
	"github.com/solventlang/solvent/internal/source"
	"github.com/solventlang/solvent/internal/token"
)

// Node is implemented by every AST type, AST or CST.
type Node interface {
	Location() source.Location
	Span() source.Span
}

// StatementBlock is an ordered sequence of statements.
type StatementBlock struct {
	Stmts []Statement
	Loc   source.Location
	Sp    source.Span
}

func (b *StatementBlock) Location() source.Location { return b.Loc }
func (b *StatementBlock) Span() source.Span          { return b.Sp }

// Statement is the sum type of statement forms.
type Statement interface {
	Node
	statementNode()
}

// NameDeclaration is `let <name> = <value>`.
type NameDeclaration struct {
	Name  string
	Value Expression
	Loc   source.Location
	Sp    source.Span
}

func (*NameDeclaration) statementNode()              {}
func (n *NameDeclaration) Location() source.Location { return n.Loc }
func (n *NameDeclaration) Span() source.Span         { return n.Sp }

// While is `while <pred>: NEWLINE INDENT <body> DEDENT`.
type While struct {
	Pred Expression
	Body *StatementBlock
	Loc  source.Location
	Sp   source.Span
}

func (*While) statementNode()              {}
func (w *While) Location() source.Location { return w.Loc }
func (w *While) Span() source.Span         { return w.Sp }

// ExpressionStmt is a bare expression used as a statement.
type ExpressionStmt struct {
	Expr Expression
	Loc  source.Location
	Sp   source.Span
}

func (*ExpressionStmt) statementNode()              {}
func (e *ExpressionStmt) Location() source.Location { return e.Loc }
func (e *ExpressionStmt) Span() source.Span         { return e.Sp }

// Expression is the sum type of expression forms.
type Expression interface {
	Node
	expressionNode()
}

// IntegerLiteral is a run of digits/underscores, lexical only.
type IntegerLiteral struct {
	Digits string
	Loc    source.Location
	Sp     source.Span
}

func (*IntegerLiteral) expressionNode()              {}
func (i *IntegerLiteral) Location() source.Location { return i.Loc }
func (i *IntegerLiteral) Span() source.Span         { return i.Sp }

// Name is a bare identifier reference.
type Name struct {
	Ident string
	Loc   source.Location
	Sp    source.Span
}

func (*Name) expressionNode()              {}
func (n *Name) Location() source.Location { return n.Loc }
func (n *Name) Span() source.Span         { return n.Sp }

// Binop is a binary-operator expression produced by the shunting-yard
// engine.
type Binop struct {
	Op  token.Op
	Lhs Expression
	Rhs Expression
	Loc source.Location
	Sp  source.Span
}

func (*Binop) expressionNode()              {}
func (b *Binop) Location() source.Location { return b.Loc }
func (b *Binop) Span() source.Span         { return b.Sp }

// Grouping is a parenthesised expression, `( inner )`.
type Grouping struct {
	Inner Expression
	Loc   source.Location
	Sp    source.Span
}

func (*Grouping) expressionNode()              {}
func (g *Grouping) Location() source.Location { return g.Loc }
func (g *Grouping) Span() source.Span         { return g.Sp }

// FunctionApplication is `IDENT primary+`.
type FunctionApplication struct {
	Func Expression
	Args []Expression
	Loc  source.Location
	Sp   source.Span
}

func (*FunctionApplication) expressionNode()              {}
func (f *FunctionApplication) Location() source.Location { return f.Loc }
func (f *FunctionApplication) Span() source.Span         { return f.Sp }
