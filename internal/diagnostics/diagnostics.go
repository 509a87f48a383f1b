// Package diagnostics renders the taxonomy of lexer/parser/type errors
// from spec.md §7 into human-readable, source-context messages: a caret
// under the offending column, the way compiler front ends conventionally
// report errors — the exact rendering isn't specified in spec.md §6, only
// that "kind, span, line/column" are present.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/solventlang/solvent/internal/infer"
	"github.com/solventlang/solvent/internal/layout"
	"github.com/solventlang/solvent/internal/lexer"
	"github.com/solventlang/solvent/internal/parser"
	"github.com/solventlang/solvent/internal/source"
)

// Render formats err against the original source, prefixed with its
// taxonomy kind, and followed by the offending line with a caret under
// the column. err is unwrapped with errors.As throughout, since
// compiler.Compile wraps every stage error with its stage name
// ("lex: %w", "layout: %w", ...) before it ever reaches Render.
// Unrecognised error types fall back to a plain message.
func Render(src string, err error) string {
	kind, loc, span := classify(err)
	if kind == "" {
		return err.Error()
	}

	var b strings.Builder
	message := err.Error()
	var unknown *infer.UnknownIdentifierError
	if errors.As(err, &unknown) {
		message += suggestionHint(unknown.Ident, unknown.Known)
	}
	fmt.Fprintf(&b, "%s: %s\n", kind, message)
	fmt.Fprintf(&b, "  --> %s %s\n", loc.String(), span.String())
	if line, ok := sourceLine(src, loc.Line); ok {
		fmt.Fprintf(&b, "  %s\n", line)
		fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", loc.Column-1))
	}
	return b.String()
}

func classify(err error) (kind string, loc source.Location, span source.Span) {
	var lexErr *lexer.Error
	var layoutErr *layout.Error
	var fault *parser.Fault
	var unknown *infer.UnknownIdentifierError
	var mismatch *infer.MismatchError
	var nonConv *infer.NonConvergenceError

	switch {
	case errors.As(err, &lexErr):
		return "LexError", lexErr.Loc, lexErr.Span
	case errors.As(err, &layoutErr):
		return "LayoutError", layoutErr.Loc, source.Span{Start: layoutErr.Loc.Index, End: layoutErr.Loc.Index}
	case errors.As(err, &fault):
		return "ParserFault", fault.Loc, source.Span{Start: fault.Loc.Index, End: fault.Loc.Index}
	case errors.As(err, &unknown):
		return "TypeError", unknown.Loc, unknown.Sp
	case errors.As(err, &mismatch):
		return "TypeError", source.Location{}, mismatch.Sp
	case errors.As(err, &nonConv):
		if len(nonConv.Unsolved) > 0 {
			return "TypeError", source.Location{}, nonConv.Unsolved[0]
		}
		return "TypeError", source.Location{}, source.Span{}
	default:
		return "", source.Location{}, source.Span{}
	}
}

func sourceLine(src string, line1Based int) (string, bool) {
	lines := strings.Split(src, "\n")
	idx := line1Based - 1
	if idx < 0 || idx >= len(lines) {
		return "", false
	}
	return lines[idx], true
}
