package infer

import (
	"testing"

	"github.com/solventlang/solvent/internal/cst"
	"github.com/solventlang/solvent/internal/layout"
	"github.com/solventlang/solvent/internal/lexer"
	"github.com/solventlang/solvent/internal/parser"
	"github.com/stretchr/testify/require"
)

func solveSrc(t *testing.T, src string) *cst.StatementBlock {
	t.Helper()
	raw, err := lexer.Tokenize(src)
	require.NoError(t, err)
	normalized, err := layout.Normalize(raw)
	require.NoError(t, err)
	astBlock, err := parser.Parse(normalized)
	require.NoError(t, err)
	tree := cst.Lower(astBlock)
	require.NoError(t, Solve(tree))
	return tree
}

func TestSolveIntegerLiteral(t *testing.T) {
	tree := solveSrc(t, "let x = 2\n")
	decl := tree.Stmts[0].(*cst.NameDeclaration)
	require.Equal(t, cst.KindInteger, decl.Value.Ty.Kind)
	require.True(t, cst.AllGround(tree))
}

func TestSolveBinopBothOperandsInteger(t *testing.T) {
	tree := solveSrc(t, "let y = 2 + 3 * 4\n")
	decl := tree.Stmts[0].(*cst.NameDeclaration)
	require.Equal(t, cst.KindInteger, decl.Value.Ty.Kind)
	require.Equal(t, cst.KindInteger, decl.Value.Lhs.Ty.Kind)
	require.Equal(t, cst.KindInteger, decl.Value.Rhs.Ty.Kind)
}

func TestSolveNameResolvesThroughSymbolTable(t *testing.T) {
	tree := solveSrc(t, "let a = 1\nlet b = a + 2\n")
	a := tree.Stmts[0].(*cst.NameDeclaration)
	b := tree.Stmts[1].(*cst.NameDeclaration)
	require.Equal(t, cst.KindInteger, a.Value.Ty.Kind)
	require.Equal(t, cst.KindInteger, b.Value.Ty.Kind)
	require.Equal(t, cst.KindInteger, b.Value.Lhs.Ty.Kind) // Name("a")
}

func TestSolveWhilePredicateIsComparison(t *testing.T) {
	tree := solveSrc(t, "while 1 > 0:\n    let x = 1\n")
	w := tree.Stmts[0].(*cst.While)
	require.True(t, w.Pred.Ty.IsGround())
	require.True(t, cst.AllGround(tree))
}

func TestSolveGroupingAndPrecedence(t *testing.T) {
	tree := solveSrc(t, "let z = (1 + 2) * 3\n")
	decl := tree.Stmts[0].(*cst.NameDeclaration)
	require.Equal(t, cst.KindGrouping, decl.Value.Lhs.Kind)
	require.Equal(t, cst.KindInteger, decl.Value.Lhs.Ty.Kind)
	require.Equal(t, cst.KindInteger, decl.Value.Ty.Kind)
}

func TestSolveUnknownIdentifierIsFatal(t *testing.T) {
	raw, err := lexer.Tokenize("let b = a + 2\n")
	require.NoError(t, err)
	normalized, err := layout.Normalize(raw)
	require.NoError(t, err)
	astBlock, err := parser.Parse(normalized)
	require.NoError(t, err)
	tree := cst.Lower(astBlock)

	err = Solve(tree)
	require.Error(t, err)
	var unknownErr *UnknownIdentifierError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "a", unknownErr.Ident)
}

func TestApplyConstraintsIsNoOpOnCompleteTree(t *testing.T) {
	raw, err := lexer.Tokenize("let x = 2 + 3\n")
	require.NoError(t, err)
	normalized, err := layout.Normalize(raw)
	require.NoError(t, err)
	astBlock, err := parser.Parse(normalized)
	require.NoError(t, err)
	tree := cst.Lower(astBlock)

	s := New()
	require.NoError(t, s.Run(tree))
	require.True(t, cst.AllGround(tree))

	before := tree.Stmts[0].(*cst.NameDeclaration).Value.Ty
	require.NoError(t, s.applyConstraints(tree))
	after := tree.Stmts[0].(*cst.NameDeclaration).Value.Ty
	require.Equal(t, before, after)
}

func TestSolveTypeVariableIdsAreDenseAndPositive(t *testing.T) {
	s := New()
	v1 := s.mintVar()
	v2 := s.mintVar()
	require.Equal(t, 1, v1.Var)
	require.Equal(t, 2, v2.Var)
	require.NotEqual(t, cst.Unassigned, v1)
}
