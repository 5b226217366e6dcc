package grammar

import (
	"testing"

	"cminus/internal/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	g, err := Verify()
	require.NoError(t, err)
	assert.Contains(t, g, Start)
}

func TestEveryNodeKindHasAProduction(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	kinds := []ast.Kind{
		ast.Declaration, ast.VarDeclaration, ast.FunDeclaration, ast.ParamList, ast.Param,
		ast.CompoundStmt, ast.DeclarationList, ast.StatementList, ast.ExpressionStmt,
		ast.SelectionStmt, ast.IterationStmt, ast.ReturnStmt, ast.Expression, ast.Var,
		ast.SimpleExpression, ast.AdditiveExpression, ast.Term, ast.Factor, ast.Call, ast.Args,
	}
	for _, k := range kinds {
		assert.Contains(t, g, string(k))
	}
}

func TestProductionsOrder(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	names := Productions(g)
	require.Len(t, names, len(g))
	assert.Equal(t, "AdditiveExpression", names[0])
	assert.Equal(t, "addop", names[len(names)-7])
	assert.Equal(t, "relop", names[len(names)-1])
}

func TestSourceIsACopy(t *testing.T) {
	a := Source()
	a[0] = '#'
	assert.NotEqual(t, a[0], Source()[0])
}
