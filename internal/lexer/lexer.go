// Package lexer implements the rule-driven, longest-prefix-at-position
// tokenizer described in spec.md §4.1. Each rule is an anchored regular
// expression paired with a constructor; rules are tried in a fixed order
// and the first match at the current offset wins.
package lexer

import (
	"log/slog"
	"regexp"

	"github.com/solventlang/solvent/internal/source"
	"github.com/solventlang/solvent/internal/token"
)

// rule is one (pattern, constructor) pair. The pattern must be anchored
// with ^ so Regexp.FindStringIndex only ever reports a match at offset 0.
type rule struct {
	name    string
	pattern *regexp.Regexp
	build   func(captured string, loc source.Location, span source.Span) token.Token
}

// opFromText maps a captured operator glyph to its Op value. Shared by the
// Operator and CompoundOperator rules.
func opFromText(text string) token.Op {
	switch text {
	case "+":
		return token.OpAdd
	case "-":
		return token.OpSub
	case "*":
		return token.OpMul
	case "/":
		return token.OpDiv
	case "%":
		return token.OpMod
	case ">":
		return token.OpGreater
	case "<":
		return token.OpLess
	case "=":
		return token.OpEquals
	default:
		return ""
	}
}

// defaultRules returns the fixed rule ordering from spec.md §4.1, highest
// priority first. Keyword precedes Identifier so "let"/"while" never lex as
// names (it has no word boundary, so "letx" lexes as `let` then `x`);
// CompoundOperator precedes Operator so "+=" is one token. Both the Integer
// and the Identifier rule accept a leading underscore; Integer comes first,
// so "_x" lexes as Integer("_") then Identifier("x").
func defaultRules() []rule {
	return []rule{
		{
			name:    "keyword",
			pattern: regexp.MustCompile(`^(let|while)`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				kind := token.KeywordLet
				if captured == "while" {
					kind = token.KeywordWhile
				}
				return token.Token{Kind: kind, Text: captured, Loc: loc, Span: span}
			},
		},
		{
			name:    "integer",
			pattern: regexp.MustCompile(`^[0-9_]+`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.Integer, Text: captured, Loc: loc, Span: span}
			},
		},
		{
			name:    "whitespace",
			pattern: regexp.MustCompile(`^[ \t]+`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.Whitespace, Text: captured, Count: len(captured), Loc: loc, Span: span}
			},
		},
		{
			name:    "newline",
			pattern: regexp.MustCompile(`^[\n\r]`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.Newline, Text: captured, Loc: loc, Span: span}
			},
		},
		{
			name:    "lparen",
			pattern: regexp.MustCompile(`^\(`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.LeftParen, Text: captured, Loc: loc, Span: span}
			},
		},
		{
			name:    "rparen",
			pattern: regexp.MustCompile(`^\)`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.RightParen, Text: captured, Loc: loc, Span: span}
			},
		},
		{
			name:    "identifier",
			pattern: regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.Identifier, Text: captured, Loc: loc, Span: span}
			},
		},
		{
			name:    "compound_operator",
			pattern: regexp.MustCompile(`^[-+*/%><]=`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.CompoundOperator, Text: captured, Op: opFromText(captured[:len(captured)-1]), Loc: loc, Span: span}
			},
		},
		{
			name:    "operator",
			pattern: regexp.MustCompile(`^[-+*/%><=]`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				return token.Token{Kind: token.Operator, Text: captured, Op: opFromText(captured), Loc: loc, Span: span}
			},
		},
		{
			name:    "punctuation",
			pattern: regexp.MustCompile(`^[;:]`),
			build: func(captured string, loc source.Location, span source.Span) token.Token {
				kind := token.Colon
				if captured == ";" {
					kind = token.Semicolon
				}
				return token.Token{Kind: kind, Text: captured, Loc: loc, Span: span}
			},
		},
	}
}

// Error reports a non-tokenisable substring: no rule matched at a
// non-empty prefix of the remaining input (spec.md §4.1).
type Error struct {
	Loc  source.Location
	Span source.Span
}

func (e *Error) Error() string {
	return "lexer: non-tokenisable substring at " + e.Loc.String()
}

// Lexer owns the remaining input, the current location, and the ordered
// rule list. It produces tokens lazily via Next, the way the lexer's lazy
// token sequence is described in spec.md §3.
type Lexer struct {
	input string
	loc   source.Location
	rules []rule
	done  bool
	log   *slog.Logger
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithLogger overrides the lexer's structured logger. Defaults to
// slog.Default(), matching the teacher's injected-logger convention.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) { l.log = logger }
}

// New builds a Lexer over src, starting at the beginning of the file.
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{input: src, loc: source.Start(), rules: defaultRules(), log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Next returns the next token, or a *Error if the remaining input cannot be
// tokenised. Once the input is exhausted, Next returns an End token on that
// call and on every later call; callers stop at the first End, as Tokenize
// does.
func (l *Lexer) Next() (token.Token, error) {
	if l.input == "" {
		if l.done {
			return token.Token{Kind: token.End, Loc: l.loc, Span: source.Span{Start: l.loc.Index, End: l.loc.Index}}, nil
		}
		l.done = true
		return token.Token{Kind: token.End, Loc: l.loc, Span: source.Span{Start: l.loc.Index, End: l.loc.Index}}, nil
	}

	for _, r := range l.rules {
		loc := r.pattern.FindStringIndex(l.input)
		if loc == nil || loc[0] != 0 {
			continue
		}
		matchLen := loc[1]
		captured := l.input[:matchLen]
		span := source.NewSpan(l.loc, matchLen)
		tok := r.build(captured, l.loc, span)
		l.log.Debug("lexer: matched rule", "rule", r.name, "text", captured, "loc", l.loc.String())
		l.loc = l.loc.Advance(l.input, matchLen)
		l.input = l.input[matchLen:]
		return tok, nil
	}

	err := &Error{Loc: l.loc, Span: source.Span{Start: l.loc.Index, End: l.loc.Index + len(l.input)}}
	l.log.Debug("lexer: no rule matched", "remaining", l.input, "loc", l.loc.String())
	l.input = ""
	return token.Token{}, err
}

// Tokenize drains the lexer into a slice, stopping after End or the first
// error. This is the eager materialisation the layout stage needs.
func Tokenize(src string, opts ...Option) ([]token.Token, error) {
	l := New(src, opts...)
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.End {
			return out, nil
		}
	}
}
