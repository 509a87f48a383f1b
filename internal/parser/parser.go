// Package parser implements the recursive-descent parser with a
// precedence-climbing operator engine described in spec.md §4.3. It
// consumes a materialised, layout-normalised token vector and produces the
// untyped AST.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/solventlang/solvent/internal/ast"
	"github.com/solventlang/solvent/internal/source"
	"github.com/solventlang/solvent/internal/token"
)

// Fault is a parser fault: an unmet grammar expectation at the cursor.
type Fault struct {
	Loc     source.Location
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("parse error at %s: %s", f.Loc.String(), f.Message)
}

// Parser holds the token vector and cursor. Alternatives backtrack by
// saving and restoring the cursor; there is no token re-lexing.
type Parser struct {
	tokens []token.Token
	cursor int
	log    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger overrides the parser's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.log = logger }
}

// New builds a Parser over a layout-normalised token vector.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the whole token stream as a top-level statement block.
func Parse(tokens []token.Token, opts ...Option) (*ast.StatementBlock, error) {
	p := New(tokens, opts...)
	block, err := p.parseStatementBlock()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.End {
		return nil, &Fault{Loc: p.current().Loc, Message: fmt.Sprintf("unexpected trailing token %s", p.current().Kind)}
	}
	return block, nil
}

func (p *Parser) current() token.Token {
	if p.cursor >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.cursor]
}

func (p *Parser) save() int { return p.cursor }

func (p *Parser) restore(mark int) { p.cursor = mark }

// eatKind consumes the current token if its Kind matches, else fails
// without advancing.
func (p *Parser) eatKind(kind token.Kind, context string) (token.Token, error) {
	cur := p.current()
	if cur.Kind != kind {
		return token.Token{}, &Fault{Loc: cur.Loc, Message: fmt.Sprintf("expected %s %s, found %s", kind, context, cur.Kind)}
	}
	p.cursor++
	return cur, nil
}

// stmt_block ↦ stmt+
func (p *Parser) parseStatementBlock() (*ast.StatementBlock, error) {
	stmts, err := repeatOneOrMore(p, (*Parser).parseStatement)
	if err != nil {
		return nil, err
	}
	sp := stmts[0].Span()
	for _, s := range stmts[1:] {
		sp = source.Join(sp, s.Span())
	}
	return &ast.StatementBlock{Stmts: stmts, Loc: stmts[0].Location(), Sp: sp}, nil
}

// stmt ↦ while_stmt | name_decl NEWLINE | expr NEWLINE
func (p *Parser) parseStatement() (ast.Statement, error) {
	mark := p.save()
	if p.current().Kind == token.KeywordWhile {
		return p.parseWhile()
	}

	if p.current().Kind == token.KeywordLet {
		decl, err := p.parseNameDecl()
		if err != nil {
			p.restore(mark)
			return nil, err
		}
		if _, err := p.eatKind(token.Newline, "after name declaration"); err != nil {
			return nil, err
		}
		return decl, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		p.restore(mark)
		return nil, err
	}
	if _, err := p.eatKind(token.Newline, "after expression statement"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr, Loc: expr.Location(), Sp: expr.Span()}, nil
}

// while_stmt ↦ 'while' expr ':' NEWLINE INDENT stmt_block DEDENT
func (p *Parser) parseWhile() (ast.Statement, error) {
	kw, err := p.eatKind(token.KeywordWhile, "to start a while-statement")
	if err != nil {
		return nil, err
	}
	pred, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eatKind(token.Colon, "after while-predicate"); err != nil {
		return nil, err
	}
	if _, err := p.eatKind(token.Newline, "after ':'"); err != nil {
		return nil, err
	}
	if _, err := p.eatKind(token.Indent, "to start while-body"); err != nil {
		return nil, err
	}
	body, err := p.parseStatementBlock()
	if err != nil {
		return nil, err
	}
	dedent, err := p.eatKind(token.Dedent, "to close while-body")
	if err != nil {
		return nil, err
	}
	sp := source.Span{Start: kw.Span.Start, End: dedent.Span.End}
	return &ast.While{Pred: pred, Body: body, Loc: kw.Loc, Sp: sp}, nil
}

// name_decl ↦ 'let' IDENT '=' expr
func (p *Parser) parseNameDecl() (ast.Statement, error) {
	kw, err := p.eatKind(token.KeywordLet, "to start a declaration")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.eatKind(token.Identifier, "as declaration name")
	if err != nil {
		return nil, err
	}
	if err := p.eatOperator(token.OpEquals); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	sp := source.Span{Start: kw.Span.Start, End: value.Span().End}
	return &ast.NameDeclaration{Name: nameTok.Text, Value: value, Loc: kw.Loc, Sp: sp}, nil
}

// eatOperator consumes an Operator token carrying exactly op, used for the
// explicit '=' declaration separator (spec.md §4.3 note: '=' is consumed
// explicitly here, never by the binop engine).
func (p *Parser) eatOperator(op token.Op) error {
	cur := p.current()
	if cur.Kind != token.Operator || cur.Op != op {
		return &Fault{Loc: cur.Loc, Message: fmt.Sprintf("expected operator %q, found %s", op, cur.Kind)}
	}
	p.cursor++
	return nil
}

// expr ↦ func_app | binop_expr
//
// Function application is tried first; on failure, backtrack to
// binop_expr, per spec.md §4.3 ("If that fails, backtrack to binop_expr").
func (p *Parser) parseExpr() (ast.Expression, error) {
	return oneOf(p, (*Parser).parseFunctionApplication, (*Parser).parseBinopExpr)
}

// func_app ↦ IDENT primary+
func (p *Parser) parseFunctionApplication() (ast.Expression, error) {
	head, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := head.(*ast.Name); !ok {
		return nil, &Fault{Loc: head.Location(), Message: "function application requires an identifier head"}
	}

	args := repeatNoneOrMore(p, (*Parser).parsePrimary)
	if len(args) == 0 {
		return nil, &Fault{Loc: head.Location(), Message: "function application requires at least one argument"}
	}
	sp := source.Span{Start: head.Span().Start, End: args[len(args)-1].Span().End}
	return &ast.FunctionApplication{Func: head, Args: args, Loc: head.Location(), Sp: sp}, nil
}

// primary ↦ INTEGER | IDENT | '(' expr ')'
func (p *Parser) parsePrimary() (ast.Expression, error) {
	cur := p.current()
	switch cur.Kind {
	case token.Integer:
		p.cursor++
		return &ast.IntegerLiteral{Digits: cur.Text, Loc: cur.Loc, Sp: cur.Span}, nil
	case token.Identifier:
		p.cursor++
		return &ast.Name{Ident: cur.Text, Loc: cur.Loc, Sp: cur.Span}, nil
	case token.LeftParen:
		p.cursor++
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.eatKind(token.RightParen, "to close grouping")
		if err != nil {
			return nil, err
		}
		sp := source.Span{Start: cur.Span.Start, End: closeTok.Span.End}
		return &ast.Grouping{Inner: inner, Loc: cur.Loc, Sp: sp}, nil
	default:
		return nil, &Fault{Loc: cur.Loc, Message: fmt.Sprintf("expected a primary expression, found %s", cur.Kind)}
	}
}
