package cst

import "github.com/solventlang/solvent/internal/ast"

// Lower is a total, structure-preserving conversion from AST to CST: every
// expression slot starts at the sentinel Unassigned type (spec.md §4.4).
// It is idempotent given a fresh AST, since lowering never reads or
// depends on prior CST state.
func Lower(block *ast.StatementBlock) *StatementBlock {
	stmts := make([]Statement, len(block.Stmts))
	for i, s := range block.Stmts {
		stmts[i] = lowerStatement(s)
	}
	return &StatementBlock{Stmts: stmts, Loc: block.Loc, Sp: block.Sp}
}

func lowerStatement(stmt ast.Statement) Statement {
	switch s := stmt.(type) {
	case *ast.NameDeclaration:
		return &NameDeclaration{Name: s.Name, Value: lowerExpr(s.Value), Loc: s.Loc, Sp: s.Sp}
	case *ast.While:
		return &While{Pred: lowerExpr(s.Pred), Body: Lower(s.Body), Loc: s.Loc, Sp: s.Sp}
	case *ast.ExpressionStmt:
		return &ExpressionStmt{Expr: lowerExpr(s.Expr), Loc: s.Loc, Sp: s.Sp}
	default:
		panic("cst: unknown statement variant")
	}
}

func lowerExpr(expr ast.Expression) *Expression {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &Expression{Ty: Unassigned, Kind: KindIntegerLiteral, Digits: e.Digits, Loc: e.Loc, Sp: e.Sp}
	case *ast.Name:
		return &Expression{Ty: Unassigned, Kind: KindName, Ident: e.Ident, Loc: e.Loc, Sp: e.Sp}
	case *ast.Binop:
		return &Expression{
			Ty: Unassigned, Kind: KindBinop, Op: e.Op,
			Lhs: lowerExpr(e.Lhs), Rhs: lowerExpr(e.Rhs),
			Loc: e.Loc, Sp: e.Sp,
		}
	case *ast.Grouping:
		return &Expression{Ty: Unassigned, Kind: KindGrouping, Inner: lowerExpr(e.Inner), Loc: e.Loc, Sp: e.Sp}
	case *ast.FunctionApplication:
		args := make([]*Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = lowerExpr(a)
		}
		return &Expression{
			Ty: Unassigned, Kind: KindFunctionApplication,
			Func: lowerExpr(e.Func), Args: args,
			Loc: e.Loc, Sp: e.Sp,
		}
	default:
		panic("cst: unknown expression variant")
	}
}
