// Package token defines the closed set of lexical atoms the lexer emits.
package token

import (
	"fmt"

	"github.com/solventlang/solvent/internal/source"
)

// Kind tags the variant of a Token. Rather than the teacher's dynamic
// dispatch, every stage downstream switches on Kind directly.
type Kind int

const (
	Illegal Kind = iota
	End

	// Keywords
	KeywordLet
	KeywordWhile

	Identifier
	Integer

	// Operators
	Operator
	CompoundOperator

	// Punctuation
	Colon
	Semicolon

	LeftParen
	RightParen

	Whitespace
	Newline
	Indent
	Dedent
)

var kindNames = map[Kind]string{
	Illegal:          "ILLEGAL",
	End:              "END",
	KeywordLet:       "let",
	KeywordWhile:     "while",
	Identifier:       "IDENTIFIER",
	Integer:          "INTEGER",
	Operator:         "OPERATOR",
	CompoundOperator: "COMPOUND_OPERATOR",
	Colon:            ":",
	Semicolon:        ";",
	LeftParen:        "(",
	RightParen:       ")",
	Whitespace:       "WHITESPACE",
	Newline:          "NEWLINE",
	Indent:           "INDENT",
	Dedent:           "DEDENT",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op identifies a concrete binary/compound operator, independent of
// whether it was lexed as Operator or CompoundOperator.
type Op string

const (
	OpAdd     Op = "+"
	OpSub     Op = "-"
	OpMul     Op = "*"
	OpDiv     Op = "/"
	OpMod     Op = "%"
	OpGreater Op = ">"
	OpLess    Op = "<"
	OpEquals  Op = "="
)

// Precedence returns the binding strength of a binary operator, lower
// values binding tighter (spec.md §4.3).
func (o Op) Precedence() int {
	switch o {
	case OpMul, OpDiv, OpMod:
		return 5
	case OpAdd, OpSub:
		return 6
	case OpGreater, OpLess:
		return 9
	case OpEquals:
		return 10
	default:
		return 1 << 30
	}
}

// Token is a tagged lexical value carrying its source location, span, and
// the literal text it was captured from.
type Token struct {
	Kind  Kind
	Text  string // captured text, meaningful for Identifier/Integer/Operator/Whitespace-length tokens
	Op    Op     // valid when Kind is Operator or CompoundOperator
	Loc   source.Location
	Span  source.Span
	Count int // Whitespace run length in bytes
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier, Integer:
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Loc)
	case Operator, CompoundOperator:
		return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Op, t.Loc)
	default:
		return fmt.Sprintf("%s@%s", t.Kind, t.Loc)
	}
}

// IsBinaryOperator reports whether t can appear in the shunting-yard
// binary-operator engine (spec.md §4.3). Compound operators (+=, etc.) are
// lexically recognised but never consumed by the expression grammar.
func (t Token) IsBinaryOperator() bool {
	return t.Kind == Operator
}
