package compiler

import (
	"strings"
	"testing"

	"github.com/solventlang/solvent/internal/infer"
	"github.com/solventlang/solvent/internal/layout"
	"github.com/solventlang/solvent/internal/lexer"
	"github.com/solventlang/solvent/internal/parser"
	"github.com/stretchr/testify/require"
)

func TestCompileWellFormedProgramSolvesEveryType(t *testing.T) {
	result, err := Compile("let x = 1\nlet y = x + 2\n", Options{})
	require.NoError(t, err)
	require.Len(t, result.Tree.Stmts, 2)
}

func TestCompilePropagatesLexError(t *testing.T) {
	_, err := Compile("@\n", Options{})
	require.Error(t, err)
	var lexErr *lexer.Error
	require.ErrorAs(t, err, &lexErr)
}

func TestCompilePropagatesLayoutError(t *testing.T) {
	_, err := Compile("let x = 1\n        let y = 2\n", Options{})
	require.Error(t, err)
	var layoutErr *layout.Error
	require.ErrorAs(t, err, &layoutErr)
}

func TestCompilePropagatesParserFault(t *testing.T) {
	_, err := Compile("let = 1\n", Options{})
	require.Error(t, err)
	var fault *parser.Fault
	require.ErrorAs(t, err, &fault)
}

func TestCompilePropagatesUnknownIdentifier(t *testing.T) {
	_, err := Compile("let x = y\n", Options{})
	require.Error(t, err)
	var unknown *infer.UnknownIdentifierError
	require.ErrorAs(t, err, &unknown)
}

func TestCompileEmitDotProducesGraphvizOutput(t *testing.T) {
	result, err := Compile("let x = 1\n", Options{EmitDot: true})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(result.Dot, "digraph {\n"))
}

func TestCompileEmitArtifactProducesContentAddress(t *testing.T) {
	result, err := Compile("let x = 1\n", Options{EmitArtifact: true})
	require.NoError(t, err)
	require.NotEmpty(t, result.ArtifactData)
	require.Regexp(t, `^blake2b:[0-9a-f]{64}$`, result.ArtifactAddr)
}

func TestCompileOmitsArtifactsWhenNotRequested(t *testing.T) {
	result, err := Compile("let x = 1\n", Options{})
	require.NoError(t, err)
	require.Empty(t, result.Dot)
	require.Empty(t, result.ArtifactData)
}
