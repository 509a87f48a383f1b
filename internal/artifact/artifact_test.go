package artifact

import (
	"testing"

	"github.com/solventlang/solvent/internal/cst"
	"github.com/solventlang/solvent/internal/infer"
	"github.com/solventlang/solvent/internal/layout"
	"github.com/solventlang/solvent/internal/lexer"
	"github.com/solventlang/solvent/internal/parser"
	"github.com/stretchr/testify/require"
)

func solvedTree(t *testing.T, src string) *cst.StatementBlock {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	require.NoError(t, err)
	normalized, err := layout.Normalize(tokens)
	require.NoError(t, err)
	tree, err := parser.Parse(normalized)
	require.NoError(t, err)
	lowered := cst.Lower(tree)
	require.NoError(t, infer.Solve(lowered))
	return lowered
}

func TestDumpIsDeterministicAcrossRepeatedRuns(t *testing.T) {
	block := solvedTree(t, "let x = 1 + 2\n")
	data1, addr1, err := Dump(block)
	require.NoError(t, err)
	data2, addr2, err := Dump(block)
	require.NoError(t, err)
	require.Equal(t, data1, data2)
	require.Equal(t, addr1, addr2)
}

func TestDumpProducesDistinctAddressesForDistinctPrograms(t *testing.T) {
	_, addrA, err := Dump(solvedTree(t, "let x = 1\n"))
	require.NoError(t, err)
	_, addrB, err := Dump(solvedTree(t, "let x = 2\n"))
	require.NoError(t, err)
	require.NotEqual(t, addrA, addrB)
}

func TestContentAddressHasBlake2bPrefix(t *testing.T) {
	_, addr, err := Dump(solvedTree(t, "let x = 1\n"))
	require.NoError(t, err)
	require.Regexp(t, `^blake2b:[0-9a-f]{64}$`, addr)
}

func TestCanonicalizeCapturesDeclarationNameAndGroundType(t *testing.T) {
	block := solvedTree(t, "let count = 5\n")
	snap := Canonicalize(block)
	require.Len(t, snap.Stmts, 1)
	decl := snap.Stmts[0]
	require.Equal(t, "decl", decl.Kind)
	require.Equal(t, "count", decl.Name)
	require.Equal(t, "int", decl.Value.Kind)
	require.Equal(t, "Integer", decl.Value.Type)
}

func TestCanonicalizeWhileCarriesPredicateAndBody(t *testing.T) {
	block := solvedTree(t, "let x = 1\nwhile x < 10:\n    let x = x + 1\n")
	snap := Canonicalize(block)
	require.Len(t, snap.Stmts, 2)
	loop := snap.Stmts[1]
	require.Equal(t, "while", loop.Kind)
	require.Equal(t, "binop", loop.Pred.Kind)
	require.Equal(t, "<", loop.Pred.Op)
	require.Len(t, loop.Body, 1)
}

func TestEncodeProducesNonEmptyCBOR(t *testing.T) {
	snap := Canonicalize(solvedTree(t, "let x = 1\n"))
	data, err := Encode(snap)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
