package parser

import "cminus/internal/token"

// CompoundStatementClose returns the index of the '}' matching a '{' that
// sits just before i, scanning [i, end). Nested braces are skipped.
// It returns -1 when the brace is not closed inside the range.
func CompoundStatementClose(tokens []token.Token, i, end int) int {
	return matchClose(tokens, i, end, token.LBRACE, token.RBRACE)
}

// BracketClose is CompoundStatementClose for '[' and ']'.
func BracketClose(tokens []token.Token, i, end int) int {
	return matchClose(tokens, i, end, token.LBRACKET, token.RBRACKET)
}

// ParenClose is CompoundStatementClose for '(' and ')'.
func ParenClose(tokens []token.Token, i, end int) int {
	return matchClose(tokens, i, end, token.LPAREN, token.RPAREN)
}

func matchClose(tokens []token.Token, i, end int, open, close token.Kind) int {
	if end > len(tokens) {
		end = len(tokens)
	}
	depth := 1
	for ; i < end; i++ {
		switch tokens[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// nextOf returns the first index in [i, end) holding kind, ignoring
// nesting, or -1.
func nextOf(tokens []token.Token, i, end int, kind token.Kind) int {
	if end > len(tokens) {
		end = len(tokens)
	}
	for ; i < end; i++ {
		if tokens[i].Kind == kind {
			return i
		}
	}
	return -1
}
