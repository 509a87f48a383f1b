// Package compiler wires the lexer, layout normaliser, parser, CST lowering,
// and type solver into the single synchronous pipeline spec.md §5 describes
// ("each stage either completes or fails synchronously"; no stage re-enters
// an earlier one). It is the one place that owns the whole front end, the
// way the teacher's cli/main.go owns the whole plan/apply pipeline.
package compiler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/solventlang/solvent/internal/artifact"
	"github.com/solventlang/solvent/internal/config"
	"github.com/solventlang/solvent/internal/cst"
	"github.com/solventlang/solvent/internal/graphviz"
	"github.com/solventlang/solvent/internal/infer"
	"github.com/solventlang/solvent/internal/layout"
	"github.com/solventlang/solvent/internal/lexer"
	"github.com/solventlang/solvent/internal/parser"
)

// Result is everything a successful Compile call can hand back: the solved
// CST, plus whichever optional artifacts were requested.
type Result struct {
	Tree *cst.StatementBlock

	Dot          string // non-empty when Options.EmitDot is set
	ArtifactData []byte // non-empty when Options.EmitArtifact is set
	ArtifactAddr string // non-empty when Options.EmitArtifact is set
}

// Options configures one Compile call.
type Options struct {
	Config       *config.Config
	Logger       *slog.Logger
	EmitDot      bool
	EmitArtifact bool
}

// Compile runs the whole front end over src and returns the solved CST plus
// any requested side artifacts. A stage failure is returned wrapped with
// its stage name ("lex: ", "layout: ", "parse: ", "infer: ") around one of
// *lexer.Error, *layout.Error, *parser.Fault, *infer.UnknownIdentifierError,
// *infer.MismatchError, or *infer.NonConvergenceError, which
// internal/diagnostics.Render unwraps with errors.As. A failure while
// producing a requested dump is wrapped as "graphviz: " or "artifact: ".
func Compile(src string, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default("v0.0.0")
	}

	tokens, err := lexer.Tokenize(src, lexer.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}

	layoutOpts := []layout.Option{layout.WithLogger(log)}
	if cfg.MaxIndentUnit > 0 {
		layoutOpts = append(layoutOpts, layout.WithUnitWidth(cfg.MaxIndentUnit))
	}
	normalized, err := layout.Normalize(tokens, layoutOpts...)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	tree, err := parser.Parse(normalized, parser.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	lowered := cst.Lower(tree)

	solveOpts := []infer.Option{infer.WithLogger(log)}
	if cfg.SolveIterationCap > 0 {
		solveOpts = append(solveOpts, infer.WithMaxIterations(cfg.SolveIterationCap))
	}
	if err := infer.Solve(lowered, solveOpts...); err != nil {
		return nil, fmt.Errorf("infer: %w", err)
	}

	result := &Result{Tree: lowered}

	if opts.EmitDot {
		g := graphviz.Fold(lowered)
		var b strings.Builder
		if err := g.Dump(&b); err != nil {
			return nil, fmt.Errorf("graphviz: %w", err)
		}
		result.Dot = b.String()
	}

	if opts.EmitArtifact {
		data, addr, err := artifact.Dump(lowered)
		if err != nil {
			return nil, fmt.Errorf("artifact: %w", err)
		}
		result.ArtifactData = data
		result.ArtifactAddr = addr
	}

	return result, nil
}
