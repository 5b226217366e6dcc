package parser

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/token"
)

// CompoundStmt parses '{' local-declarations statement-list '}'.
func (p *Parser) CompoundStmt(start, end int) Result {
	if end-start < 2 {
		return p.incomplete(start, end, "compound statement")
	}
	if r, ok := p.expect(start, end, token.LBRACE, "'{'"); !ok {
		return r
	}
	rb := CompoundStatementClose(p.tokens, start+1, end)
	if rb < 0 {
		return p.unmatched(end, "closing brace")
	}

	decls, stop := p.localDeclarations(start+1, rb)
	if stop != nil {
		return fail(*stop)
	}
	stmts := p.StatementList(decls.Last+1, rb)
	if !stmts.OK() {
		return stmts
	}
	if r, ok := p.expect(stmts.Last+1, end, token.RBRACE, "'}'"); !ok {
		return r
	}

	node := ast.New(ast.CompoundStmt, start, stmts.Last+2, decls.Node, stmts.Node)
	return success(stmts.Last+1, node, decls, stmts)
}

// StatementList parses the statements filling [start, end). An empty
// range is an empty list.
func (p *Parser) StatementList(start, end int) Result {
	return p.list(ast.StatementList, start, end, p.Statement)
}

// Statement dispatches on the lead token. A statement that is just ';',
// or a single token ending the input, is an empty statement: it succeeds
// with a warning and no node. A lone token closing a narrower range, such
// as the last token before a block's '}', is parsed normally.
func (p *Parser) Statement(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "statement")
	}
	tok := p.tokens[start]
	if tok.Kind == token.SEMICOLON || (start == end-1 && end == len(p.tokens)) {
		w := diag.Warningf(diag.CodeEmptyStmt, tok.Span, "empty statement")
		if tok.Kind != token.SEMICOLON {
			w.Hint = fmt.Sprintf("%q is ignored", tok.Lexeme)
		}
		return Result{Last: start, Warnings: []diag.Diagnostic{w}}
	}

	defer p.ascend()
	if r, ok := p.descend(start, end); !ok {
		return r
	}

	switch tok.Kind {
	case token.LBRACE:
		return p.CompoundStmt(start, end)
	case token.KW_IF:
		return p.SelectionStmt(start, end)
	case token.KW_WHILE:
		return p.IterationStmt(start, end)
	case token.KW_RETURN:
		return p.ReturnStmt(start, end)
	}
	if tok.Kind.IsTypeSpecifier() {
		d := diag.Errorf(diag.CodeMismatch, tok.Span, "expected statement, found type specifier %q", tok.Lexeme)
		d.Hint = "declarations must come before the statements of a block"
		return fail(d)
	}
	return p.ExpressionStmt(start, end)
}

// ExpressionStmt parses expression ';'.
func (p *Parser) ExpressionStmt(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "expression statement")
	}
	e := p.Expression(start, end)
	if !e.OK() {
		return e
	}
	if r, ok := p.expect(e.Last+1, end, token.SEMICOLON, "';'"); !ok {
		return r
	}
	return success(e.Last+1, ast.New(ast.ExpressionStmt, start, e.Last+2, e.Node), e)
}

// SelectionStmt parses 'if' '(' expression ')' statement [ 'else' statement ].
// An 'else' right after the then-branch always binds to this 'if'.
func (p *Parser) SelectionStmt(start, end int) Result {
	if end-start < 5 {
		return p.incomplete(start, end, "if statement")
	}
	cond, r, ok := p.conditionHead(start, end, token.KW_IF, "'if'")
	if !ok {
		return r
	}

	then := p.Statement(cond.Last+2, end)
	if !then.OK() {
		return then
	}
	if !p.is(then.Last+1, end, token.KW_ELSE) {
		node := ast.New(ast.SelectionStmt, start, then.Last+1, cond.Node, then.Node)
		return success(then.Last, node, cond, then)
	}

	els := p.Statement(then.Last+2, end)
	if !els.OK() {
		return els
	}
	node := ast.New(ast.SelectionStmt, start, els.Last+1, cond.Node, then.Node, els.Node)
	return success(els.Last, node, cond, then, els)
}

// IterationStmt parses 'while' '(' expression ')' statement.
func (p *Parser) IterationStmt(start, end int) Result {
	if end-start < 5 {
		return p.incomplete(start, end, "while statement")
	}
	cond, r, ok := p.conditionHead(start, end, token.KW_WHILE, "'while'")
	if !ok {
		return r
	}

	body := p.Statement(cond.Last+2, end)
	if !body.OK() {
		return body
	}
	node := ast.New(ast.IterationStmt, start, body.Last+1, cond.Node, body.Node)
	return success(body.Last, node, cond, body)
}

// conditionHead parses keyword '(' expression ')'. On success the
// returned condition ends just before the ')'.
func (p *Parser) conditionHead(start, end int, keyword token.Kind, what string) (Result, Result, bool) {
	if r, ok := p.expect(start, end, keyword, what); !ok {
		return Result{}, r, false
	}
	if r, ok := p.expect(start+1, end, token.LPAREN, "'('"); !ok {
		return Result{}, r, false
	}
	cond := p.Expression(start+2, end)
	if !cond.OK() {
		return Result{}, cond, false
	}
	if r, ok := p.expect(cond.Last+1, end, token.RPAREN, "')'"); !ok {
		return Result{}, r, false
	}
	return cond, Result{}, true
}

// ReturnStmt parses 'return' ';' or 'return' expression ';'.
func (p *Parser) ReturnStmt(start, end int) Result {
	if end-start < 2 {
		return p.incomplete(start, end, "return statement")
	}
	if r, ok := p.expect(start, end, token.KW_RETURN, "'return'"); !ok {
		return r
	}
	if p.is(start+1, end, token.SEMICOLON) {
		return success(start+1, ast.New(ast.ReturnStmt, start, start+2))
	}

	e := p.Expression(start+1, end)
	if !e.OK() {
		return e
	}
	if r, ok := p.expect(e.Last+1, end, token.SEMICOLON, "';'"); !ok {
		return r
	}
	return success(e.Last+1, ast.New(ast.ReturnStmt, start, e.Last+2, e.Node), e)
}
