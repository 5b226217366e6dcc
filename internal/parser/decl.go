package parser

import (
	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/token"
)

// DeclarationList parses one or more declarations filling [start, end).
//
//	declaration-list := declaration { declaration }
func (p *Parser) DeclarationList(start, end int) Result {
	if start >= end {
		return p.expected(start, end, "declaration")
	}
	return p.list(ast.DeclarationList, start, end, p.Declaration)
}

// Declaration parses a variable declaration or, failing that, a function
// declaration, and wraps the match in a Declaration node.
func (p *Parser) Declaration(start, end int) Result {
	v := p.VarDeclaration(start, end)
	if v.OK() {
		return success(v.Last, ast.New(ast.Declaration, start, v.Last+1, v.Node), v)
	}
	f := p.FunDeclaration(start, end)
	if f.OK() {
		return success(f.Last, ast.New(ast.Declaration, start, f.Last+1, f.Node), f)
	}
	return fail(diag.Either(*v.Err, *f.Err))
}

// VarDeclaration parses
//
//	TYPE IDENT ';'
//	TYPE IDENT '[' NUMBER ']' ';'
func (p *Parser) VarDeclaration(start, end int) Result {
	if end-start < 3 {
		return p.incomplete(start, end, "variable declaration")
	}
	if !p.isTypeSpecifier(start, end) {
		return p.expected(start, end, "type specifier")
	}
	if r, ok := p.expect(start+1, end, token.IDENT, "variable name"); !ok {
		return r
	}
	if !p.is(start+2, end, token.LBRACKET) {
		if r, ok := p.expect(start+2, end, token.SEMICOLON, "';'"); !ok {
			return r
		}
		return success(start+2, ast.New(ast.VarDeclaration, start, start+3))
	}

	if end-start < 6 {
		return p.incomplete(start, end, "array declaration")
	}
	if r, ok := p.expect(start+3, end, token.NUMBER, "array size"); !ok {
		return r
	}
	if r, ok := p.expect(start+4, end, token.RBRACKET, "']'"); !ok {
		return r
	}
	if r, ok := p.expect(start+5, end, token.SEMICOLON, "';'"); !ok {
		return r
	}
	return success(start+5, ast.New(ast.VarDeclaration, start, start+6))
}

// FunDeclaration parses TYPE IDENT '(' params ')' compound-stmt.
//
// The parameter list ends at the first ')' after the '(' since parameters
// never nest. The body's closing brace is found with nesting tracked.
func (p *Parser) FunDeclaration(start, end int) Result {
	if end-start < 6 {
		return p.incomplete(start, end, "function declaration")
	}
	if !p.isTypeSpecifier(start, end) {
		return p.expected(start, end, "type specifier")
	}
	if r, ok := p.expect(start+1, end, token.IDENT, "function name"); !ok {
		return r
	}
	if r, ok := p.expect(start+2, end, token.LPAREN, "'('"); !ok {
		return r
	}

	rp := nextOf(p.tokens, start+3, end, token.RPAREN)
	if rp < 0 {
		return p.unmatched(end, "')' closing the parameter list")
	}
	params := p.Params(start+3, rp)
	if !params.OK() {
		return params
	}

	if r, ok := p.expect(rp+1, end, token.LBRACE, "'{' opening the function body"); !ok {
		return r
	}
	rb := CompoundStatementClose(p.tokens, rp+2, end)
	if rb < 0 {
		return p.unmatched(end, "closing brace")
	}
	body := p.CompoundStmt(rp+1, rb+1)
	if !body.OK() {
		return body
	}

	node := ast.New(ast.FunDeclaration, start, rb+1, params.Node, body.Node)
	return success(rb, node, params, body)
}

// Params parses the tokens strictly between a function's parentheses:
// nothing, a lone 'void', or comma-separated TYPE IDENT and TYPE IDENT '[' ']'.
// The ParamList node always covers the whole range.
func (p *Parser) Params(start, end int) Result {
	node := ast.New(ast.ParamList, start, end)
	if start >= end {
		return success(start-1, node)
	}
	if end-start == 1 && p.is(start, end, token.KW_VOID) {
		return success(start, node)
	}

	for i := start; i < end; {
		if !p.isTypeSpecifier(i, end) || !p.is(i+1, end, token.IDENT) {
			return p.badParams(end)
		}
		j := i + 2
		if p.is(j, end, token.LBRACKET) {
			if !p.is(j+1, end, token.RBRACKET) {
				return p.badParams(end)
			}
			j += 2
		}
		node.AddChild(ast.New(ast.Param, i, j))
		if j == end {
			break
		}
		if !p.is(j, end, token.COMMA) || j+1 == end {
			return p.badParams(end)
		}
		i = j + 1
	}
	return success(end-1, node)
}

func (p *Parser) badParams(end int) Result {
	return fail(diag.Errorf(diag.CodeMismatch, p.spanAt(end-1, end), "malformed function parameters"))
}

// LocalDeclarations parses the declarations that open a compound
// statement. They are optional: it stops at the first token that does not
// start a declaration and never fails.
func (p *Parser) LocalDeclarations(start, end int) Result {
	r, _ := p.localDeclarations(start, end)
	return r
}

// localDeclarations also returns the failure that stopped the scan when it
// stopped on a type specifier: no statement can start there, so that
// failure is the real error.
func (p *Parser) localDeclarations(start, end int) (Result, *diag.Diagnostic) {
	var items []Result
	for i := start; i < end; {
		r := p.Declaration(i, end)
		if !r.OK() {
			if p.isTypeSpecifier(i, end) {
				return collect(ast.DeclarationList, start, items), r.Err
			}
			break
		}
		items = append(items, r)
		i = r.Last + 1
	}
	return collect(ast.DeclarationList, start, items), nil
}
