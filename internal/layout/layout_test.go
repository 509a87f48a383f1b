package layout

import (
	"testing"

	"github.com/solventlang/solvent/internal/lexer"
	"github.com/solventlang/solvent/internal/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func normalizeSrc(t *testing.T, src string) []token.Token {
	t.Helper()
	raw, err := lexer.Tokenize(src)
	require.NoError(t, err)
	out, err := Normalize(raw)
	require.NoError(t, err)
	return out
}

func TestNormalizeSingleIndentBlock(t *testing.T) {
	src := "while 1 > 0:\n    let x = 1\n"
	got := kinds(normalizeSrc(t, src))

	require.Contains(t, got, token.Indent)
	require.Contains(t, got, token.Dedent)

	indents, dedents := 0, 0
	for _, k := range got {
		if k == token.Indent {
			indents++
		}
		if k == token.Dedent {
			dedents++
		}
	}
	require.Equal(t, indents, dedents, "indent/dedent must balance overall")
}

func TestNormalizeNoSpuriousDedentOnTrailingNewline(t *testing.T) {
	src := "let x = 1\n"
	got := kinds(normalizeSrc(t, src))
	for _, k := range got {
		require.NotEqual(t, token.Dedent, k)
	}
}

func TestNormalizeTrailingDedentsAtEOF(t *testing.T) {
	src := "while 1 > 0:\n    let x = 1"
	got := kinds(normalizeSrc(t, src))
	require.Equal(t, token.Dedent, got[len(got)-1])
}

func TestNormalizeRejectsMultiStepIndent(t *testing.T) {
	src := "while 1 > 0:\n        let x = 1\n"
	_, err := normalizeWithErr(t, src)
	require.Error(t, err)
	var layoutErr *Error
	require.ErrorAs(t, err, &layoutErr)
}

func normalizeWithErr(t *testing.T, src string) ([]token.Token, error) {
	t.Helper()
	raw, err := lexer.Tokenize(src)
	require.NoError(t, err)
	return Normalize(raw)
}

func TestNormalizeDropsWhitespace(t *testing.T) {
	got := kinds(normalizeSrc(t, "let x = 1 + 2\n"))
	for _, k := range got {
		require.NotEqual(t, token.Whitespace, k)
	}
}

func TestNormalizeDedentToZeroOnUnindentedFollowup(t *testing.T) {
	src := "while 1 > 0:\n    let x = 1\nlet y = 2\n"
	got := kinds(normalizeSrc(t, src))

	// Exactly one dedent should appear before the second `let` statement,
	// closing the while-body block.
	dedentCount := 0
	for _, k := range got {
		if k == token.Dedent {
			dedentCount++
		}
	}
	require.Equal(t, 1, dedentCount)
}
