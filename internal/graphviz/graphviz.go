// Package graphviz implements the visualiser collaborator named in
// spec.md §6: a pure fold from a CST to (nodes, edges), rendered as a
// Graphviz digraph. Per the design notes (spec.md §9), this replaces the
// original's dynamic visitor-trait dispatch with pattern-matching fold
// functions over the tagged-variant tree.
package graphviz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/solventlang/solvent/internal/cst"
)

// Graph is the fold's accumulated (nodes, type nodes, edges) result.
type Graph struct {
	nodes     []idLabel
	typeNodes []idLabel
	edges     []edge
	counter   int
}

type idLabel struct {
	id    int
	label string
}

type edge struct {
	from, to int
	label    string
}

func (g *Graph) newNode(label string) int {
	g.counter++
	g.nodes = append(g.nodes, idLabel{id: g.counter, label: label})
	return g.counter
}

func (g *Graph) newTypeNode(label string) int {
	g.counter++
	g.typeNodes = append(g.typeNodes, idLabel{id: g.counter, label: label})
	return g.counter
}

// typeNodeLabel renders ty as its ground name, or T<n> for a still-open
// variable (cst.Type.String, used in solver errors, writes Variable(n)).
func typeNodeLabel(ty cst.Type) string {
	switch ty.Kind {
	case cst.KindInteger:
		return "Integer"
	case cst.KindBool:
		return "Bool"
	default:
		return fmt.Sprintf("T%d", ty.Var)
	}
}

func (g *Graph) newEdge(from, to int, label string) {
	g.edges = append(g.edges, edge{from: from, to: to, label: label})
}

func (g *Graph) isTypeNode(id int) bool {
	for _, n := range g.typeNodes {
		if n.id == id {
			return true
		}
	}
	return false
}

// Fold walks a CST statement block and returns the accumulated graph.
func Fold(block *cst.StatementBlock) *Graph {
	g := &Graph{}
	foldBlock(g, block)
	return g
}

func foldBlock(g *Graph, block *cst.StatementBlock) int {
	this := g.newNode("Block")
	for i, stmt := range block.Stmts {
		child := foldStatement(g, stmt)
		g.newEdge(this, child, strconv.Itoa(i+1))
	}
	return this
}

func foldStatement(g *Graph, stmt cst.Statement) int {
	switch s := stmt.(type) {
	case *cst.NameDeclaration:
		this := g.newNode("Name Declaration")
		name := g.newNode(s.Name)
		value := foldExpression(g, s.Value)
		g.newEdge(this, name, "name")
		g.newEdge(this, value, "value")
		return this
	case *cst.While:
		this := g.newNode("While")
		pred := foldExpression(g, s.Pred)
		body := foldBlock(g, s.Body)
		g.newEdge(this, pred, "pred")
		g.newEdge(this, body, "body")
		return this
	case *cst.ExpressionStmt:
		return foldExpression(g, s.Expr)
	default:
		return g.newNode("?")
	}
}

func foldExpression(g *Graph, e *cst.Expression) int {
	var this int
	switch e.Kind {
	case cst.KindIntegerLiteral:
		this = g.newNode(e.Digits)
	case cst.KindName:
		this = g.newNode(e.Ident)
	case cst.KindBinop:
		this = g.newNode(string(e.Op))
		lhs := foldExpression(g, e.Lhs)
		rhs := foldExpression(g, e.Rhs)
		g.newEdge(this, lhs, "lhs")
		g.newEdge(this, rhs, "rhs")
	case cst.KindGrouping:
		this = g.newNode("Grouping")
		inner := foldExpression(g, e.Inner)
		g.newEdge(this, inner, "inner")
	case cst.KindFunctionApplication:
		this = g.newNode("Function Application")
		fn := foldExpression(g, e.Func)
		g.newEdge(this, fn, "func")
		for i, a := range e.Args {
			arg := foldExpression(g, a)
			g.newEdge(this, arg, strconv.Itoa(i+1))
		}
	default:
		this = g.newNode("?")
	}

	ty := g.newTypeNode(typeNodeLabel(e.Ty))
	g.newEdge(this, ty, "  : type")
	return this
}

// Dump writes the digraph text form to w, following the original CST
// visualiser's styling: type nodes render gray with no box, and the edge
// into a type node drops its label in favour of a hollow arrowhead.
func (g *Graph) Dump(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph {\n")
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "\t%d [label=%q]\n", n.id, n.label)
	}
	for _, n := range g.typeNodes {
		fmt.Fprintf(&b, "\t%d [label=%q shape=none color=gray fontcolor=gray]\n", n.id, n.label)
	}
	for _, e := range g.edges {
		if g.isTypeNode(e.to) {
			fmt.Fprintf(&b, "\t%d->%d [arrowhead=onormal color=gray fontcolor=gray]\n", e.from, e.to)
		} else {
			fmt.Fprintf(&b, "\t%d->%d [label=%q]\n", e.from, e.to, e.label)
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
