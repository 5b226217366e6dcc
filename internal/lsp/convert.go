package lsp

import (
	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/source"
	"cminus/internal/span"
	"cminus/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics converts the diagnostics of an analysis. The slice is never
// nil so that an empty publish clears the client's list.
func Diagnostics(a *source.Analysis) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	for _, d := range a.Diagnostics() {
		out = append(out, toDiagnostic(d))
	}
	return out
}

func toDiagnostic(d diag.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Severity == diag.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}
	src := lsName
	message := d.Message
	if d.Hint != "" {
		message += " (hint: " + d.Hint + ")"
	}
	return protocol.Diagnostic{
		Range:    toRange(d.Span),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   &src,
		Message:  message,
	}
}

func toPosition(p span.Position) protocol.Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func toRange(s span.Span) protocol.Range {
	start := toPosition(s.Start)
	end := toPosition(s.End)
	if end.Line < start.Line || (end.Line == start.Line && end.Character < start.Character) {
		end = start
	}
	return protocol.Range{Start: start, End: end}
}

// tokenRange covers the source text of the tokens in r.
func tokenRange(tokens []token.Token, r span.Range) protocol.Range {
	if r.Empty() || r.Left < 0 || r.Right > len(tokens) {
		return protocol.Range{}
	}
	return toRange(span.Span{Start: tokens[r.Left].Span.Start, End: tokens[r.Right-1].Span.End})
}

// Symbols lists the declarations of a parsed program: global variables
// and functions, with parameters and local variables nested in the
// function that declares them.
func Symbols(a *source.Analysis) []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{}
	ast.Walk(a.Result.Node, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.VarDeclaration:
			out = append(out, symbol(a.Tokens, n, protocol.SymbolKindVariable))
			return false
		case ast.FunDeclaration:
			out = append(out, function(a.Tokens, n))
			return false
		}
		return true
	})
	return out
}

func function(tokens []token.Token, n *ast.Node) protocol.DocumentSymbol {
	sym := symbol(tokens, n, protocol.SymbolKindFunction)
	sym.Children = []protocol.DocumentSymbol{}
	ast.Walk(n, func(c *ast.Node) bool {
		switch c.Kind {
		case ast.Param:
			sym.Children = append(sym.Children, symbol(tokens, c, protocol.SymbolKindVariable))
		case ast.VarDeclaration:
			sym.Children = append(sym.Children, symbol(tokens, c, protocol.SymbolKindVariable))
		case ast.FunDeclaration:
			if c != n {
				sym.Children = append(sym.Children, function(tokens, c))
				return false
			}
		case ast.StatementList, ast.ExpressionStmt, ast.SelectionStmt, ast.IterationStmt, ast.ReturnStmt:
			return false
		}
		return true
	})
	return sym
}

// symbol names a declaration by its second token: every declaration
// shape starts with a type specifier followed by the identifier.
func symbol(tokens []token.Token, n *ast.Node, kind protocol.SymbolKind) protocol.DocumentSymbol {
	nameIdx := n.Range.Left + 1
	detail := tokens[n.Range.Left].Lexeme
	return protocol.DocumentSymbol{
		Name:           tokens[nameIdx].Lexeme,
		Detail:         &detail,
		Kind:           kind,
		Range:          tokenRange(tokens, n.Range),
		SelectionRange: tokenRange(tokens, span.R(nameIdx, nameIdx+1)),
	}
}
