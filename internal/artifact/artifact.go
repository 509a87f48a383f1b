// Package artifact serializes a solved CST into a deterministic,
// content-addressed snapshot for the `--dump-cst` flag — a complement to
// the `--dot` Graphviz dump, aimed at later back-end stages that want a
// stable wire form rather than a human-rendered graph (spec.md §1: "ready
// for later back-end stages"). The encoding follows the teacher's
// planfmt.CanonicalPlan pattern: lower the live tree into a flat,
// CBOR-friendly shape first, then hash the encoded bytes with BLAKE2b-256
// the way planfmt.Plan.Digest does, rather than hashing the live tree
// directly.
package artifact

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/solventlang/solvent/internal/cst"
)

// Snapshot is the canonical, CBOR-encodable form of a solved CST.
type Snapshot struct {
	Version uint8
	Stmts   []Statement
}

// Statement is the canonical form of a cst.Statement.
type Statement struct {
	Kind  string // "decl", "while", "expr"
	Name  string // Kind == "decl"
	Value *Expression
	Pred  *Expression // Kind == "while"
	Body  []Statement // Kind == "while"
	Expr  *Expression // Kind == "expr"
}

// Expression is the canonical form of a cst.Expression.
type Expression struct {
	Kind   string // "int", "name", "binop", "grouping", "apply"
	Type   string // rendered Type, e.g. "Integer", "Bool", "Variable(3)"
	Digits string
	Ident  string
	Op     string
	Lhs    *Expression
	Rhs    *Expression
	Inner  *Expression
	Func   *Expression
	Args   []Expression
}

// snapshotFormatVersion is bumped whenever the canonical shape changes in a
// way that would change existing artifacts' content address.
const snapshotFormatVersion uint8 = 1

// Canonicalize lowers a solved CST into its canonical, hashable form.
func Canonicalize(block *cst.StatementBlock) *Snapshot {
	return &Snapshot{Version: snapshotFormatVersion, Stmts: canonicalizeStatements(block)}
}

func canonicalizeStatements(block *cst.StatementBlock) []Statement {
	out := make([]Statement, 0, len(block.Stmts))
	for _, stmt := range block.Stmts {
		out = append(out, canonicalizeStatement(stmt))
	}
	return out
}

func canonicalizeStatement(stmt cst.Statement) Statement {
	switch s := stmt.(type) {
	case *cst.NameDeclaration:
		value := canonicalizeExpression(s.Value)
		return Statement{Kind: "decl", Name: s.Name, Value: &value}
	case *cst.While:
		pred := canonicalizeExpression(s.Pred)
		return Statement{Kind: "while", Pred: &pred, Body: canonicalizeStatements(s.Body)}
	case *cst.ExpressionStmt:
		expr := canonicalizeExpression(s.Expr)
		return Statement{Kind: "expr", Expr: &expr}
	default:
		return Statement{Kind: "unknown"}
	}
}

func canonicalizeExpression(e *cst.Expression) Expression {
	out := Expression{Type: e.Ty.String()}
	switch e.Kind {
	case cst.KindIntegerLiteral:
		out.Kind = "int"
		out.Digits = e.Digits
	case cst.KindName:
		out.Kind = "name"
		out.Ident = e.Ident
	case cst.KindBinop:
		out.Kind = "binop"
		out.Op = string(e.Op)
		lhs := canonicalizeExpression(e.Lhs)
		rhs := canonicalizeExpression(e.Rhs)
		out.Lhs, out.Rhs = &lhs, &rhs
	case cst.KindGrouping:
		out.Kind = "grouping"
		inner := canonicalizeExpression(e.Inner)
		out.Inner = &inner
	case cst.KindFunctionApplication:
		out.Kind = "apply"
		fn := canonicalizeExpression(e.Func)
		out.Func = &fn
		out.Args = make([]Expression, len(e.Args))
		for i, a := range e.Args {
			out.Args[i] = canonicalizeExpression(a)
		}
	default:
		out.Kind = "unknown"
	}
	return out
}

// Encode produces the deterministic CBOR encoding of a Snapshot, using
// CBOR's canonical encoding mode (sorted map keys, shortest-form integers)
// so identical trees always produce identical bytes.
func Encode(snap *Snapshot) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("artifact: building CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("artifact: CBOR encoding failed: %w", err)
	}
	return data, nil
}

// ContentAddress returns the hex-encoded BLAKE2b-256 digest of data,
// prefixed the way the teacher's Plan.Digest formats a content address.
func ContentAddress(data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("blake2b:%x", sum), nil
}

// Dump canonicalizes, encodes, and content-addresses block in one call,
// returning the CBOR bytes and their content address.
func Dump(block *cst.StatementBlock) (data []byte, address string, err error) {
	snap := Canonicalize(block)
	data, err = Encode(snap)
	if err != nil {
		return nil, "", err
	}
	address, err = ContentAddress(data)
	if err != nil {
		return nil, "", err
	}
	return data, address, nil
}
