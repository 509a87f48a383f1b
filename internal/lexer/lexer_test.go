package lexer

import (
	"testing"

	"github.com/solventlang/solvent/internal/token"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	return toks
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks := collect(t, "let while letx")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.KeywordLet, token.Whitespace, token.KeywordWhile, token.Whitespace,
		token.KeywordLet, token.Identifier, token.End,
	}, kinds)
	// The keyword rule has no word boundary and is tried before the
	// identifier rule, so "letx" lexes as `let` followed by `x`.
	require.Equal(t, "x", toks[5].Text)
}

func TestTokenizeCompoundBeforeSingleOperator(t *testing.T) {
	toks := collect(t, "+=")
	require.Equal(t, token.CompoundOperator, toks[0].Kind)
	require.Equal(t, token.OpAdd, toks[0].Op)
	require.Equal(t, token.End, toks[1].Kind)
}

func TestTokenizeSpanMatchesSourceSubstring(t *testing.T) {
	src := "let x = 2 + 3"
	toks := collect(t, src)
	for _, tok := range toks {
		if tok.Kind == token.End {
			continue
		}
		require.Equal(t, tok.Text, tok.Span.Text(src), "token %v span mismatch", tok)
	}
}

func TestTokenizeNonTokenizableSubstring(t *testing.T) {
	_, err := Tokenize("@")
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, 0, lexErr.Span.Start)
	require.Equal(t, 1, lexErr.Span.End)
}

func TestTokenizeEmptySourceEmitsOnlyEnd(t *testing.T) {
	toks := collect(t, "")
	require.Len(t, toks, 1)
	require.Equal(t, token.End, toks[0].Kind)
}

func TestTokenizeLineAndColumnAdvance(t *testing.T) {
	toks := collect(t, "let\nx")
	// "let" -> Newline -> "x" -> End
	require.Equal(t, 1, toks[0].Loc.Line)
	require.Equal(t, 1, toks[0].Loc.Column)
	nameTok := toks[2]
	require.Equal(t, token.Identifier, nameTok.Kind)
	require.Equal(t, 2, nameTok.Loc.Line)
	require.Equal(t, 1, nameTok.Loc.Column)
}
