// Package lexer implements the lexical analysis (tokenization) for the language.
package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"cminus/internal/diag"
	"cminus/internal/span"
	"cminus/internal/token"
)

// Option configures a Lexer.
type Option func(*Lexer)

// WithKeywords replaces the reserved-word spelling table.
func WithKeywords(kw token.Keywords) Option {
	return func(l *Lexer) {
		l.keywords = kw
	}
}

// Lexer tokenizes source code into a sequence of tokens.
type Lexer struct {
	source   string
	filename string
	keywords token.Keywords

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based, counted in runes)

	diags []diag.Diagnostic
}

// New creates a new Lexer for the given source text.
func New(source, filename string, opts ...Option) *Lexer {
	l := &Lexer{
		source:   source,
		filename: filename,
		keywords: token.DefaultKeywords(),
		pos:      0,
		line:     1,
		col:      1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Filename returns the name the lexer was created with.
func (l *Lexer) Filename() string {
	return l.filename
}

// Tokenize scans the entire source and returns all tokens and diagnostics.
// The token slice carries no end-of-file marker: its length is the end of
// the parseable range.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	var tokens []token.Token
	for {
		tok, ok := l.nextToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.diags
}

// ---- internal helpers ----

// peek returns the current rune without advancing, or 0 if at end.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

// peekNext returns the rune after current, or 0 if at end.
func (l *Lexer) peekNext() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if l.pos+size >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

// advance consumes the current rune and returns it.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) makeSpan(start span.Position) span.Span {
	return span.Span{Start: start, End: l.curPos()}
}

func (l *Lexer) makeToken(kind token.Kind, start span.Position) token.Token {
	return token.Token{Kind: kind, Lexeme: l.source[start.Offset:l.pos], Span: l.makeSpan(start)}
}

// skipTrivia skips whitespace and comments.
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.source) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekNext() == '/':
			for l.pos < len(l.source) && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekNext() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.curPos()
	l.advance() // /
	l.advance() // *
	for l.pos < len(l.source) {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
	l.addError(diag.CodeUnexpectedChar, l.makeSpan(start), "unterminated block comment")
}

func (l *Lexer) addError(code string, s span.Span, msg string) {
	l.diags = append(l.diags, diag.Errorf(code, s, "%s", msg))
}

// ---- token reading ----

func (l *Lexer) nextToken() (token.Token, bool) {
	l.skipTrivia()

	if l.pos >= len(l.source) {
		return token.Token{}, false
	}

	start := l.curPos()
	ch := l.peek()

	if isDigit(ch) {
		return l.readNumber(start), true
	}
	if isIdentStart(ch) {
		return l.readIdentifier(start), true
	}
	return l.readOperator(start), true
}

// readNumber reads a numeric literal. Trailing letters, digits and dots
// are swallowed into the same lexeme so "2.3a" or "1..2" is reported once
// as a malformed number rather than split into several tokens.
func (l *Lexer) readNumber(start span.Position) token.Token {
	for l.pos < len(l.source) && (isIdentPart(l.peek()) || l.peek() == '.') {
		l.advance()
	}
	tok := l.makeToken(token.NUMBER, start)
	if !IsNumber(tok.Lexeme) {
		l.addError(diag.CodeBadNumber, tok.Span, fmt.Sprintf("malformed number %q", tok.Lexeme))
		tok.Kind = token.ILLEGAL
	}
	return tok
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start span.Position) token.Token {
	for l.pos < len(l.source) && isIdentPart(l.peek()) {
		l.advance()
	}
	tok := l.makeToken(token.IDENT, start)
	tok.Kind = l.keywords.Lookup(tok.Lexeme)
	return tok
}

// readOperator reads an operator or delimiter token.
func (l *Lexer) readOperator(start span.Position) token.Token {
	ch := l.advance()

	switch ch {
	case '(':
		return l.makeToken(token.LPAREN, start)
	case ')':
		return l.makeToken(token.RPAREN, start)
	case '{':
		return l.makeToken(token.LBRACE, start)
	case '}':
		return l.makeToken(token.RBRACE, start)
	case '[':
		return l.makeToken(token.LBRACKET, start)
	case ']':
		return l.makeToken(token.RBRACKET, start)
	case ',':
		return l.makeToken(token.COMMA, start)
	case ';':
		return l.makeToken(token.SEMICOLON, start)
	case '+', '-':
		return l.makeToken(token.ADDOP, start)
	case '*', '/':
		return l.makeToken(token.MULOP, start)
	case '<', '>':
		if l.peek() == '=' {
			l.advance()
		}
		return l.makeToken(token.RELOP, start)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.makeToken(token.RELOP, start)
		}
		return l.makeToken(token.ASSIGN, start)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return l.makeToken(token.RELOP, start)
		}
		l.addError(diag.CodeUnexpectedChar, l.makeSpan(start), "unexpected character: '!', did you mean '!='?")
		return l.makeToken(token.ILLEGAL, start)
	default:
		l.addError(diag.CodeUnexpectedChar, l.makeSpan(start), fmt.Sprintf("unexpected character: '%c'", ch))
		return l.makeToken(token.ILLEGAL, start)
	}
}

// ---- character classification ----

// IsIdent reports whether s is a well-formed identifier: an identifier-start
// character followed by identifier characters, digits included.
func IsIdent(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return s != ""
}

// IsNumber reports whether s is a digit run with at most one decimal point
// and no letters.
func IsNumber(s string) bool {
	if s == "" || !isDigit(rune(s[0])) {
		return false
	}
	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
			if dots > 1 {
				return false
			}
		case !isDigit(r):
			return false
		}
	}
	return true
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	if ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') {
		return true
	}
	return ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch) || (ch >= utf8.RuneSelf && unicode.IsDigit(ch))
}
