package ast

import (
	"encoding/json"
	"testing"

	"cminus/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() *Node {
	// int x;  (tokens 0..2)
	return New(Declaration, 0, 3,
		New(VarDeclaration, 0, 3),
		nil,
	)
}

func TestNewDropsNilChildren(t *testing.T) {
	n := sample()
	require.Len(t, n.Children, 1)
	assert.Equal(t, VarDeclaration, n.Children[0].Kind)
	assert.NotNil(t, n.FirstChildOfKind(VarDeclaration))
	assert.Nil(t, n.FirstChildOfKind(FunDeclaration))
	assert.Len(t, n.ChildrenOfKind(VarDeclaration), 1)
}

func TestWalkOrder(t *testing.T) {
	root := New(StatementList, 0, 8,
		New(ExpressionStmt, 0, 4, New(Expression, 0, 3)),
		New(ReturnStmt, 4, 8),
	)
	var seen []Kind
	Walk(root, func(n *Node) bool {
		seen = append(seen, n.Kind)
		return n.Kind != ExpressionStmt
	})
	assert.Equal(t, []Kind{StatementList, ExpressionStmt, ReturnStmt}, seen)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(sample(), sample()))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(sample(), nil))

	other := sample()
	other.Children[0].Range.Right = 2
	assert.False(t, Equal(sample(), other))
}

func TestUncontained(t *testing.T) {
	assert.Nil(t, Uncontained(sample()))

	bad := New(CompoundStmt, 2, 6, New(StatementList, 3, 5, New(ExpressionStmt, 3, 7)))
	got := Uncontained(bad)
	require.NotNil(t, got)
	assert.Equal(t, ExpressionStmt, got.Kind)
}

func TestFormat(t *testing.T) {
	tokens := []token.Token{
		token.New(token.KW_INT, "int", 1, 1),
		token.New(token.IDENT, "x", 1, 5),
		token.New(token.SEMICOLON, ";", 1, 6),
	}
	assert.Equal(t, "Declaration [0,3)\n  VarDeclaration [0,3)\n", sample().String())
	assert.Equal(t, "Declaration [0,3)\n  VarDeclaration [0,3) int x ;\n", sample().Format(tokens))
	assert.Equal(t, "x", New(Var, 1, 2).Text(tokens))
}

func TestJSONShape(t *testing.T) {
	data, err := json.Marshal(sample())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "Declaration", "left": 0, "right": 3,
		"children": [{"kind": "VarDeclaration", "left": 0, "right": 3, "children": []}]
	}`, string(data))

	var back Node
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, Equal(sample(), &back))
}

func TestYAMLShape(t *testing.T) {
	data, err := yaml.Marshal(sample())
	require.NoError(t, err)
	assert.Equal(t, `kind: Declaration
left: 0
right: 3
children:
    - kind: VarDeclaration
      left: 0
      right: 3
`, string(data))
}
