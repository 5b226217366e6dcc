// Package token defines the token types produced by the lexer and consumed by the parser.
package token

import (
	"fmt"

	"cminus/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota

	// Literals
	IDENT  // identifiers: x, foo, total1
	NUMBER // numeric literals: 12, 3.5

	// Operators
	ADDOP  // + -
	MULOP  // * /
	RELOP  // < <= > >= == !=
	ASSIGN // =

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	SEMICOLON // ;
	COMMA     // ,

	// Keywords
	KW_VOID
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_RETURN
	KW_INT
	KW_REAL
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	ADDOP:  "ADDOP",
	MULOP:  "MULOP",
	RELOP:  "RELOP",
	ASSIGN: "=",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	SEMICOLON: ";",
	COMMA:     ",",

	KW_VOID:   "void",
	KW_IF:     "if",
	KW_ELSE:   "else",
	KW_WHILE:  "while",
	KW_RETURN: "return",
	KW_INT:    "int",
	KW_REAL:   "real",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindByName resolves the name printed by Kind.String back to a Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return ILLEGAL, false
}

// IsKeyword returns true if the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KW_VOID && k <= KW_REAL
}

// IsTypeSpecifier reports whether k can start a declaration: int, real or void.
func (k Kind) IsTypeSpecifier() bool {
	return k == KW_INT || k == KW_REAL || k == KW_VOID
}

// IsAddOp reports whether k is an additive operator.
func (k Kind) IsAddOp() bool { return k == ADDOP }

// IsMulOp reports whether k is a multiplicative operator.
func (k Kind) IsMulOp() bool { return k == MULOP }

// IsRelOp reports whether k is a relational operator.
func (k Kind) IsRelOp() bool { return k == RELOP }

// Token represents a lexical token with its kind, text, and source location.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

// New builds a token at the given line and column. It is mostly useful
// to hand-assemble token sequences.
func New(kind Kind, lexeme string, line, column int) Token {
	pos := span.Position{Line: line, Column: column}
	end := pos
	end.Column += len(lexeme)
	return Token{Kind: kind, Lexeme: lexeme, Span: span.Span{Start: pos, End: end}}
}

// Line returns the 1-based line the token starts on.
func (t Token) Line() int { return t.Span.Start.Line }

// Column returns the 1-based column the token starts on.
func (t Token) Column() int { return t.Span.Start.Column }

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
