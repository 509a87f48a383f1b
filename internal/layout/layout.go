// Package layout implements the indentation normaliser from spec.md §4.2:
// it rewrites a raw token stream into one where every block boundary is an
// explicit Indent/Dedent token, and strips Whitespace tokens afterward.
package layout

import (
	"fmt"
	"log/slog"

	"github.com/solventlang/solvent/internal/source"
	"github.com/solventlang/solvent/internal/token"
)

// defaultUnitWidth is the number of spaces that make up one indentation
// level, absent an override from solvent.yaml's maxIndentUnit field.
const defaultUnitWidth = 4

// Error reports a jump in indentation of more than one level, the one
// rejected shape in spec.md §4.2.
type Error struct {
	Loc      source.Location
	Got      int
	Expected int
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout: indentation jumped to level %d (expected at most %d) at %s", e.Got, e.Expected, e.Loc.String())
}

// Normalize consumes a raw token stream (as produced by the lexer) and
// returns one with explicit Indent/Dedent/Newline markers and no
// Whitespace tokens. It assumes the input is already fully materialised,
// matching "the layout output is consumed once" in spec.md §3.
func Normalize(tokens []token.Token, opts ...Option) ([]token.Token, error) {
	n := &normalizer{log: slog.Default(), unitWidth: defaultUnitWidth}
	for _, opt := range opts {
		opt(n)
	}
	return n.run(tokens)
}

// Option configures the normaliser.
type Option func(*normalizer)

// WithLogger overrides the normaliser's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *normalizer) { n.log = logger }
}

// WithUnitWidth overrides the spaces-per-indent-level unit, driven by
// solvent.yaml's maxIndentUnit field. Values below 1 are ignored.
func WithUnitWidth(width int) Option {
	return func(n *normalizer) {
		if width >= 1 {
			n.unitWidth = width
		}
	}
}

type normalizer struct {
	log            *slog.Logger
	unitWidth      int
	currentIndent  int
	out            []token.Token
	sawNewlineLast bool
}

func (n *normalizer) run(tokens []token.Token) ([]token.Token, error) {
	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if tok.Kind == token.Newline {
			n.out = append(n.out, tok)
			// Look at what follows the newline, if anything.
			if i+1 < len(tokens) && tokens[i+1].Kind == token.Whitespace {
				ws := tokens[i+1]
				level := ws.Count / n.unitWidth
				if err := n.onIndentedLine(level, ws.Loc); err != nil {
					return nil, err
				}
				i += 2
				continue
			}
			if i+1 < len(tokens) && tokens[i+1].Kind != token.Whitespace {
				n.dedentToZero()
			}
			i++
			continue
		}

		if tok.Kind == token.Whitespace {
			// Whitespace not immediately following a Newline is interior
			// horizontal space; drop it, it carries no layout meaning.
			i++
			continue
		}

		n.out = append(n.out, tok)
		i++
	}

	n.emitDedents(n.currentIndent)
	n.currentIndent = 0
	return n.out, nil
}

// onIndentedLine handles a Newline immediately followed by Whitespace(k):
// compute level = k/unitWidth and react per spec.md §4.2.
func (n *normalizer) onIndentedLine(level int, loc source.Location) error {
	switch {
	case level == n.currentIndent+1:
		n.emitIndents(1)
		n.currentIndent = level
	case level < n.currentIndent:
		n.emitDedents(n.currentIndent - level)
		n.currentIndent = level
	case level == n.currentIndent:
		// Only the Newline already emitted; nothing further.
	default:
		return &Error{Loc: loc, Got: level, Expected: n.currentIndent + 1}
	}
	return nil
}

// dedentToZero handles a Newline followed directly by a non-whitespace
// token: if currently indented, close every open block.
func (n *normalizer) dedentToZero() {
	if n.currentIndent > 0 {
		n.emitDedents(n.currentIndent)
		n.currentIndent = 0
	}
}

func (n *normalizer) emitIndents(count int) {
	for j := 0; j < count; j++ {
		n.out = append(n.out, token.Token{Kind: token.Indent})
	}
	n.log.Debug("layout: indent", "count", count, "level", n.currentIndent+count)
}

func (n *normalizer) emitDedents(count int) {
	for j := 0; j < count; j++ {
		n.out = append(n.out, token.Token{Kind: token.Dedent})
	}
	if count > 0 {
		n.log.Debug("layout: dedent", "count", count)
	}
}
