package parser

import (
	"github.com/solventlang/solvent/internal/ast"
	"github.com/solventlang/solvent/internal/source"
	"github.com/solventlang/solvent/internal/token"
)

// parseBinopExpr implements the two-stack shunting machine of spec.md
// §4.3: binop_expr ↦ primary (OPERATOR primary)*. Lower numeric precedence
// binds tighter, and the pop condition `precedence(op) >= precedence(top)`
// yields left-associativity for equal-precedence operators.
func (p *Parser) parseBinopExpr() (ast.Expression, error) {
	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	output := []ast.Expression{first}
	var ops []token.Op

	for p.current().IsBinaryOperator() {
		op := p.current().Op
		for len(ops) > 0 && op.Precedence() >= ops[len(ops)-1].Precedence() {
			output, ops = foldOne(output, ops)
		}
		ops = append(ops, op)
		p.cursor++

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		output = append(output, rhs)
	}

	for len(ops) > 0 {
		output, ops = foldOne(output, ops)
	}

	if len(output) != 1 {
		// Unreachable given the loop invariant (one push per primary, one
		// fold per pushed operator), kept as a defensive bound check.
		return nil, &Fault{Loc: first.Location(), Message: "internal: shunting-yard did not reduce to one expression"}
	}
	return output[0], nil
}

// foldOne pops the top operator and its two operands, builds a Binop, and
// pushes it back onto the output stack.
func foldOne(output []ast.Expression, ops []token.Op) ([]ast.Expression, []token.Op) {
	op := ops[len(ops)-1]
	ops = ops[:len(ops)-1]

	rhs := output[len(output)-1]
	lhs := output[len(output)-2]
	output = output[:len(output)-2]

	sp := source.Span{Start: lhs.Span().Start, End: rhs.Span().End}
	node := &ast.Binop{Op: op, Lhs: lhs, Rhs: rhs, Loc: lhs.Location(), Sp: sp}
	return append(output, node), ops
}
