package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	for _, k := range []Kind{KW_INT, KW_REAL, KW_VOID} {
		assert.True(t, k.IsTypeSpecifier(), k.String())
	}
	for _, k := range []Kind{IDENT, KW_IF, NUMBER} {
		assert.False(t, k.IsTypeSpecifier(), k.String())
	}
	assert.True(t, ADDOP.IsAddOp())
	assert.False(t, MULOP.IsAddOp())
	assert.True(t, MULOP.IsMulOp())
	assert.True(t, RELOP.IsRelOp())
	assert.False(t, ASSIGN.IsRelOp())
}

func TestKeywordLookup(t *testing.T) {
	assert.Equal(t, KW_WHILE, LookupIdent("while"))
	assert.Equal(t, IDENT, LookupIdent("While"))
	assert.Equal(t, IDENT, LookupIdent("whilex"))
	assert.Equal(t, KW_REAL, LookupIdent("real"))
}

func TestKeywordsFromNames(t *testing.T) {
	kw, err := KeywordsFromNames(map[string]string{
		"entier": "int",
		"si":     "if",
		"sinon":  "else",
	})
	require.NoError(t, err)
	assert.Equal(t, KW_INT, kw.Lookup("entier"))
	assert.Equal(t, KW_ELSE, kw.Lookup("sinon"))
	assert.Equal(t, IDENT, kw.Lookup("int"))

	_, err = KeywordsFromNames(map[string]string{"plus": "ADDOP"})
	assert.Error(t, err)
	_, err = KeywordsFromNames(map[string]string{"x": "nope"})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, ";", SEMICOLON.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())

	k, ok := KindByName("return")
	require.True(t, ok)
	assert.Equal(t, KW_RETURN, k)
}

func TestNewToken(t *testing.T) {
	tok := New(IDENT, "abc", 3, 7)
	assert.Equal(t, 3, tok.Line())
	assert.Equal(t, 7, tok.Column())
	assert.Equal(t, 10, tok.Span.End.Column)
	assert.Equal(t, `IDENT "abc" 3:7`, tok.String())
}
