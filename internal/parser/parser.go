// Package parser implements the syntax analysis for the language.
//
// It is a recursive-descent parser over an immutable token slice. Every
// grammar rule is a method rule(start, end) that may only look at tokens
// in [start, end) and reports, through a Result, the index of the last
// token it consumed. There is no shared cursor: a failed rule cannot
// disturb its caller's position because positions travel by value.
package parser

import (
	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/span"
	"cminus/internal/token"

	"github.com/tliron/commonlog"
)

// DefaultMaxDepth bounds the nesting of statements and expressions.
const DefaultMaxDepth = 2000

var log = commonlog.GetLogger("cminus.parser")

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting ceiling. Zero or less disables it.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser holds a token sequence and runs grammar rules over ranges of it.
// The token slice is never modified. The nesting counter makes a Parser
// unsafe for concurrent use; create one per goroutine.
type Parser struct {
	tokens   []token.Token
	maxDepth int
	depth    int
}

// New creates a new parser from a token slice.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the program rule over all tokens.
func Parse(tokens []token.Token, opts ...Option) Result {
	return New(tokens, opts...).Parse()
}

// Tokens returns the sequence the parser reads.
func (p *Parser) Tokens() []token.Token {
	return p.tokens
}

// Parse parses the whole token sequence as a declaration list.
func (p *Parser) Parse() Result {
	if len(p.tokens) == 0 {
		return fail(diag.Errorf(diag.CodeEmptyInput, span.Span{}, "empty input: expected a declaration"))
	}
	log.Debugf("parsing %d tokens", len(p.tokens))
	r := p.DeclarationList(0, len(p.tokens))
	if !r.OK() {
		log.Debugf("parse failed: %s", r.Err)
	}
	return r
}

// rule is the shape shared by every grammar rule.
type rule func(start, end int) Result

// list applies item repeatedly until [start, end) is used up. The first
// failing item fails the list.
func (p *Parser) list(kind ast.Kind, start, end int, item rule) Result {
	var items []Result
	for i := start; i < end; {
		r := item(i, end)
		if !r.OK() {
			return r
		}
		items = append(items, r)
		i = r.Last + 1
	}
	return collect(kind, start, items)
}

// ---- nesting guard ----

// descend enters one nesting level. Callers must defer ascend.
func (p *Parser) descend(start, end int) (Result, bool) {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		log.Warningf("nesting limit %d exceeded", p.maxDepth)
		return fail(diag.Errorf(diag.CodeTooDeep, p.spanAt(start, end),
			"nesting deeper than %d levels", p.maxDepth)), false
	}
	return Result{}, true
}

func (p *Parser) ascend() {
	p.depth--
}

// ---- token tests ----

// is reports whether index i lies in the range and holds kind.
func (p *Parser) is(i, end int, kind token.Kind) bool {
	return i >= 0 && i < end && i < len(p.tokens) && p.tokens[i].Kind == kind
}

func (p *Parser) isTypeSpecifier(i, end int) bool {
	return i >= 0 && i < end && i < len(p.tokens) && p.tokens[i].Kind.IsTypeSpecifier()
}

func (p *Parser) isAddOp(i, end int) bool {
	return i >= 0 && i < end && i < len(p.tokens) && p.tokens[i].Kind.IsAddOp()
}

func (p *Parser) isMulOp(i, end int) bool {
	return i >= 0 && i < end && i < len(p.tokens) && p.tokens[i].Kind.IsMulOp()
}

func (p *Parser) isRelOp(i, end int) bool {
	return i >= 0 && i < end && i < len(p.tokens) && p.tokens[i].Kind.IsRelOp()
}

// ---- diagnostics ----

// spanAt locates token i, or the last token of the range when i is out of it.
func (p *Parser) spanAt(i, end int) span.Span {
	if end > len(p.tokens) {
		end = len(p.tokens)
	}
	switch {
	case i >= 0 && i < end:
		return p.tokens[i].Span
	case end > 0:
		return p.tokens[end-1].Span
	case len(p.tokens) > 0:
		return p.tokens[0].Span
	}
	return span.Span{}
}

// expect checks that token i is of the given kind.
func (p *Parser) expect(i, end int, kind token.Kind, what string) (Result, bool) {
	if p.is(i, end, kind) {
		return Result{}, true
	}
	return p.expected(i, end, what), false
}

// expected fails with "expected <what>" at token i.
func (p *Parser) expected(i, end int, what string) Result {
	if i >= end || i >= len(p.tokens) {
		return fail(diag.Errorf(diag.CodeIncomplete, p.spanAt(i, end), "expected %s, found end of range", what))
	}
	return fail(diag.Errorf(diag.CodeMismatch, p.tokens[i].Span, "expected %s, found %q", what, p.tokens[i].Lexeme))
}

// incomplete fails a rule whose range is shorter than its smallest shape.
func (p *Parser) incomplete(start, end int, what string) Result {
	return fail(diag.Errorf(diag.CodeIncomplete, p.spanAt(start, end), "incomplete %s", what))
}

// unmatched fails a rule whose closing delimiter is missing; it points at
// the last token of the range.
func (p *Parser) unmatched(end int, what string) Result {
	return fail(diag.Errorf(diag.CodeUnmatched, p.spanAt(end, end), "expected %s", what))
}
