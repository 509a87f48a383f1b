// Package infer implements the constraint-based type solver of spec.md
// §4.5: not Hindley-Milner, but a small fixpoint of substitution rules over
// a symbol table, a constraint map, and a monotonically minted id counter.
package infer

import (
	"fmt"
	"log/slog"

	"github.com/solventlang/solvent/internal/cst"
	"github.com/solventlang/solvent/internal/source"
)

// defaultMaxIterations is the solve-loop's iteration cap (spec.md §4.5
// phase 3), absent an override from solvent.yaml's solveIterationCap field.
const defaultMaxIterations = 10

// UnknownIdentifierError reports a Name that no declaration anywhere in the
// program binds. The symbol table is filled from every declaration before
// solving starts, so a use that appears before its declaration is not
// reported. Known holds every name bound in the symbol table at the time of failure,
// for diagnostics to offer a "did you mean" suggestion from.
type UnknownIdentifierError struct {
	Ident string
	Known []string
	Loc   source.Location
	Sp    source.Span
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("type error: unknown identifier %q at %s", e.Ident, e.Loc.String())
}

// NonConvergenceError reports that the solve loop hit its iteration cap
// without every slot reaching ground.
type NonConvergenceError struct {
	Unsolved   []source.Span
	iterations int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("type error: solver did not converge after %d iterations, %d node(s) unsolved", e.iterations, len(e.Unsolved))
}

// MismatchError reports a binop whose operands are both ground but unequal.
type MismatchError struct {
	Lhs, Rhs cst.Type
	Sp       source.Span
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type error: operand mismatch (%s vs %s) at %s", e.Lhs, e.Rhs, e.Sp.String())
}

// Solver owns the constraint map, the flat (unscoped) symbol table, and
// the monotonic id counter. Build one with New; the zero value has no maps
// or logger and is not usable.
type Solver struct {
	constraints   map[int]cst.Type
	symbols       map[string]cst.Type
	counter       int
	log           *slog.Logger
	maxIterations int
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger overrides the solver's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) { s.log = logger }
}

// WithMaxIterations overrides the fixpoint loop's iteration cap, driven by
// solvent.yaml's solveIterationCap field. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		if n >= 1 {
			s.maxIterations = n
		}
	}
}

// New builds a Solver ready to run over a freshly-lowered CST.
func New(opts ...Option) *Solver {
	s := &Solver{
		constraints:   make(map[int]cst.Type),
		symbols:       make(map[string]cst.Type),
		log:           slog.Default(),
		maxIterations: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs every phase of spec.md §4.5 over block and returns the first
// error encountered, or nil once block is complete.
func Solve(block *cst.StatementBlock, opts ...Option) error {
	s := New(opts...)
	return s.Run(block)
}

// Run executes the solver's phases in order: emplace variables, emplace
// statement bindings, then iterate the solve/apply loop to a fixpoint.
func (s *Solver) Run(block *cst.StatementBlock) error {
	s.emplaceVariables(block)
	s.emplaceStatementBindings(block)

	for i := 0; i < s.maxIterations; i++ {
		if cst.AllGround(block) {
			s.log.Debug("infer: reached fixpoint", "iteration", i)
			return nil
		}
		if err := s.solveIteration(block); err != nil {
			return err
		}
		if err := s.applyConstraints(block); err != nil {
			return err
		}
	}

	if cst.AllGround(block) {
		return nil
	}

	var unsolved []source.Span
	cst.WalkStatements(block, func(e *cst.Expression) {
		if !e.Ty.IsGround() {
			unsolved = append(unsolved, e.Sp)
		}
	})
	return &NonConvergenceError{Unsolved: unsolved, iterations: s.maxIterations}
}

// mintVar allocates a fresh, dense, positive type-variable id and records
// its identity constraint (id ↦ Variable(id)), matching spec.md's
// "constraints starts as identity".
func (s *Solver) mintVar() cst.Type {
	s.counter++
	v := cst.Type{Kind: cst.KindVariable, Var: s.counter}
	s.constraints[s.counter] = v
	return v
}

// emplaceVariables is phase 1: visit every expression, assigning Integer
// literals their ground type directly, minting a fresh variable for every
// Name occurrence's own type slot, and minting a fresh variable for every
// composite node's own slot after recursing into its children. A Name's
// occurrence does not itself write the symbol table — only a declaration
// does, in emplaceStatementBindings — so a name that is used but never
// declared stays absent from the table for phase 3 to catch.
func (s *Solver) emplaceVariables(block *cst.StatementBlock) {
	for _, stmt := range block.Stmts {
		s.emplaceStatement(stmt)
	}
}

func (s *Solver) emplaceStatement(stmt cst.Statement) {
	switch st := stmt.(type) {
	case *cst.NameDeclaration:
		s.emplaceExpr(st.Value)
	case *cst.While:
		s.emplaceExpr(st.Pred)
		s.emplaceVariables(st.Body)
	case *cst.ExpressionStmt:
		s.emplaceExpr(st.Expr)
	}
}

func (s *Solver) emplaceExpr(e *cst.Expression) {
	switch e.Kind {
	case cst.KindIntegerLiteral:
		e.Ty = cst.Type{Kind: cst.KindInteger}
	case cst.KindName:
		e.Ty = s.mintVar()
	case cst.KindBinop:
		s.emplaceExpr(e.Lhs)
		s.emplaceExpr(e.Rhs)
		e.Ty = s.mintVar()
	case cst.KindGrouping:
		s.emplaceExpr(e.Inner)
		e.Ty = s.mintVar()
	case cst.KindFunctionApplication:
		s.emplaceExpr(e.Func)
		for _, a := range e.Args {
			s.emplaceExpr(a)
		}
		// Function application has no ground-type rule (spec.md Non-goals
		// exclude user-defined functions): the slot is minted so the tree
		// stays well-formed, but it is never resolved by solveIteration.
		e.Ty = s.mintVar()
	}
}

// emplaceStatementBindings is phase 2: for each NameDeclaration, bind the
// declared name to its value's current type slot — ground already (an
// Integer literal) or still a variable (a binop, grouping, or another
// name) — so later uses of the name unify with the bound expression's
// eventual type rather than a dangling, self-referential placeholder. The
// first declaration of a name, in source order, supplies its binding; a
// redeclaration such as `let x = x + 1` keeps it, so the name is not bound
// to an expression that depends on the name itself.
func (s *Solver) emplaceStatementBindings(block *cst.StatementBlock) {
	for _, stmt := range block.Stmts {
		switch st := stmt.(type) {
		case *cst.NameDeclaration:
			if _, bound := s.symbols[st.Name]; !bound {
				s.symbols[st.Name] = st.Value.Ty
			}
		case *cst.While:
			s.emplaceStatementBindings(st.Body)
		}
	}
}

// solveIteration is one read pass of phase 3: for every still-variable
// expression slot, try to compute its ground (or chained-variable)
// constraint from its own shape. cst.WalkStatements visits a node before
// its children, and types are only written back by applyConstraints, so a
// composite node whose children become ground in this pass is resolved on
// a later iteration.
func (s *Solver) solveIteration(block *cst.StatementBlock) error {
	var firstErr error
	cst.WalkStatements(block, func(e *cst.Expression) {
		if firstErr != nil {
			return
		}
		if e.Ty.Kind != cst.KindVariable {
			return
		}
		n := e.Ty.Var
		switch e.Kind {
		case cst.KindIntegerLiteral:
			s.constraints[n] = cst.Type{Kind: cst.KindInteger}
		case cst.KindName:
			bound, ok := s.symbols[e.Ident]
			if !ok {
				firstErr = &UnknownIdentifierError{Ident: e.Ident, Known: s.knownNames(), Loc: e.Loc, Sp: e.Sp}
				return
			}
			// After an apply pass the slot can already be the bound
			// variable itself; rewriting that variable's constraint to
			// itself would discard what the bound expression solved to.
			if bound.Kind == cst.KindVariable && bound.Var == n {
				return
			}
			s.constraints[n] = bound
		case cst.KindBinop:
			if e.Lhs.Ty.IsGround() && e.Rhs.Ty.IsGround() {
				if e.Lhs.Ty.Equal(e.Rhs.Ty) {
					s.constraints[n] = e.Lhs.Ty
				} else {
					firstErr = &MismatchError{Lhs: e.Lhs.Ty, Rhs: e.Rhs.Ty, Sp: e.Sp}
				}
			}
		case cst.KindGrouping:
			if e.Inner.Ty.IsGround() {
				s.constraints[n] = e.Inner.Ty
			}
		}
	})
	return firstErr
}

// applyConstraints is phase 3's write pass: for every variable-typed slot,
// look up its constraint and replace the slot in place if ground,
// following the chain if it points at another variable.
func (s *Solver) applyConstraints(block *cst.StatementBlock) error {
	var firstErr error
	cst.WalkStatements(block, func(e *cst.Expression) {
		if firstErr != nil || e.Ty.Kind != cst.KindVariable {
			return
		}
		resolved, err := s.resolve(e.Ty.Var, 0)
		if err != nil {
			firstErr = err
			return
		}
		e.Ty = resolved
	})
	return firstErr
}

// knownNames returns every name currently bound in the symbol table, for
// attaching "did you mean" suggestions to an UnknownIdentifierError.
func (s *Solver) knownNames() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	return names
}

// resolve follows the constraint chain for variable id n until it reaches
// a ground type or an unresolved variable, bounding the walk by the
// number of variables ever minted to guarantee termination on a cycle.
func (s *Solver) resolve(n int, depth int) (cst.Type, error) {
	if depth > s.counter+1 {
		return cst.Type{Kind: cst.KindVariable, Var: n}, nil
	}
	t, ok := s.constraints[n]
	if !ok {
		return cst.Type{Kind: cst.KindVariable, Var: n}, nil
	}
	if t.Kind != cst.KindVariable || t.Var == n {
		return t, nil
	}
	return s.resolve(t.Var, depth+1)
}
