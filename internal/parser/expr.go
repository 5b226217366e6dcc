package parser

import (
	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/token"
)

// Expression parses var '=' expression | simple-expression.
// Assignment is right-associative: a = b = c assigns b = c first.
func (p *Parser) Expression(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "expression")
	}
	defer p.ascend()
	if r, ok := p.descend(start, end); !ok {
		return r
	}

	if !p.assignAhead(start, end) {
		return p.SimpleExpression(start, end)
	}
	v := p.Var(start, end)
	if !v.OK() {
		return v
	}
	rhs := p.Expression(v.Last+2, end)
	if !rhs.OK() {
		return rhs
	}
	return success(rhs.Last, ast.New(ast.Expression, start, rhs.Last+1, v.Node, rhs.Node), v, rhs)
}

// assignAhead reports whether the range opens with a variable followed by
// '='. Only the brackets are matched, so the subscript is parsed once.
func (p *Parser) assignAhead(start, end int) bool {
	if !p.is(start, end, token.IDENT) {
		return false
	}
	next := start + 1
	if p.is(next, end, token.LBRACKET) {
		rb := BracketClose(p.tokens, next+1, end)
		if rb < 0 {
			return false
		}
		next = rb + 1
	}
	return p.is(next, end, token.ASSIGN)
}

// Var parses IDENT or IDENT '[' expression ']'.
func (p *Parser) Var(start, end int) Result {
	if r, ok := p.expect(start, end, token.IDENT, "variable"); !ok {
		return r
	}
	if !p.is(start+1, end, token.LBRACKET) {
		return success(start, ast.New(ast.Var, start, start+1))
	}

	rb := BracketClose(p.tokens, start+2, end)
	if rb < 0 {
		return p.unmatched(end, "']'")
	}
	sub := p.Expression(start+2, rb)
	if !sub.OK() {
		return sub
	}
	if sub.Last != rb-1 {
		return p.expected(sub.Last+1, rb, "']'")
	}
	return success(rb, ast.New(ast.Var, start, rb+1, sub.Node), sub)
}

// SimpleExpression parses additive-expression [ relop additive-expression ].
func (p *Parser) SimpleExpression(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "simple expression")
	}
	left := p.AdditiveExpression(start, end)
	if !left.OK() {
		return left
	}
	if !p.isRelOp(left.Last+1, end) {
		return success(left.Last, ast.New(ast.SimpleExpression, start, left.Last+1, left.Node), left)
	}

	right := p.AdditiveExpression(left.Last+2, end)
	if !right.OK() {
		return right
	}
	node := ast.New(ast.SimpleExpression, start, right.Last+1, left.Node, right.Node)
	return success(right.Last, node, left, right)
}

// AdditiveExpression parses term [ addop additive-expression ]. The
// recursion on the right makes a + b + c group as a + (b + c).
func (p *Parser) AdditiveExpression(start, end int) Result {
	return p.binary(ast.AdditiveExpression, start, end, p.Term, p.isAddOp, p.AdditiveExpression, "additive expression")
}

// Term parses factor [ mulop term ], grouping to the right like
// AdditiveExpression.
func (p *Parser) Term(start, end int) Result {
	return p.binary(ast.Term, start, end, p.Factor, p.isMulOp, p.Term, "term")
}

// binary parses operand [ op rest ] and labels the result kind. Without an
// operator the operand is still wrapped, so each precedence level shows up
// in the tree.
func (p *Parser) binary(kind ast.Kind, start, end int, operand rule, isOp func(i, end int) bool, rest rule, what string) Result {
	if start >= end {
		return p.expected(start, end, what)
	}
	defer p.ascend()
	if r, ok := p.descend(start, end); !ok {
		return r
	}

	left := operand(start, end)
	if !left.OK() {
		return left
	}
	if !isOp(left.Last+1, end) {
		return success(left.Last, ast.New(kind, start, left.Last+1, left.Node), left)
	}

	right := rest(left.Last+2, end)
	if !right.OK() {
		return right
	}
	return success(right.Last, ast.New(kind, start, right.Last+1, left.Node, right.Node), left, right)
}

// Factor parses NUMBER | '(' expression ')' | var | call.
func (p *Parser) Factor(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "factor")
	}

	switch p.tokens[start].Kind {
	case token.NUMBER:
		return success(start, ast.New(ast.Factor, start, start+1))
	case token.LPAREN:
		e := p.Expression(start+1, end)
		if !e.OK() {
			return e
		}
		if r, ok := p.expect(e.Last+1, end, token.RPAREN, "')'"); !ok {
			return r
		}
		return success(e.Last+1, ast.New(ast.Factor, start, e.Last+2, e.Node), e)
	case token.IDENT:
		if p.is(start+1, end, token.LPAREN) {
			return p.Call(start, end)
		}
		return p.Var(start, end)
	}

	v := p.Var(start, end)
	c := p.Call(start, end)
	return fail(diag.Either(*v.Err, *c.Err))
}

// Call parses IDENT '(' args ')'. The argument range is bounded by the
// matching ')' before it is parsed; f() has no Args child.
func (p *Parser) Call(start, end int) Result {
	if end-start < 3 {
		return p.incomplete(start, end, "function call")
	}
	if r, ok := p.expect(start, end, token.IDENT, "function name"); !ok {
		return r
	}
	if r, ok := p.expect(start+1, end, token.LPAREN, "'('"); !ok {
		return r
	}
	rp := ParenClose(p.tokens, start+2, end)
	if rp < 0 {
		return p.unmatched(end, "')' closing the argument list")
	}
	if rp == start+2 {
		return success(rp, ast.New(ast.Call, start, rp+1))
	}

	args := p.Args(start+2, rp)
	if !args.OK() {
		return args
	}
	if args.Last != rp-1 {
		return p.expected(args.Last+1, rp, "',' or ')'")
	}
	return success(rp, ast.New(ast.Call, start, rp+1, args.Node), args)
}

// Args parses expression { ',' expression } into one flat Args node.
func (p *Parser) Args(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "argument")
	}
	var items []Result
	for i := start; ; {
		e := p.Expression(i, end)
		if !e.OK() {
			return e
		}
		items = append(items, e)
		if !p.is(e.Last+1, end, token.COMMA) {
			break
		}
		i = e.Last + 2
		if i >= end {
			return p.expected(i, end, "argument after ','")
		}
	}

	last := items[len(items)-1].Last
	node := ast.New(ast.Args, start, last+1)
	for _, it := range items {
		node.AddChild(it.Node)
	}
	return success(last, node, items...)
}
