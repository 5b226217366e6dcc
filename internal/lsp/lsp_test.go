package lsp

import (
	"testing"

	"cminus/internal/diag"
	"cminus/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnosticsClean(t *testing.T) {
	a := source.Analyze("int x;", "t.cm", source.Options{})
	diags := Diagnostics(a)
	require.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDiagnosticsFailure(t *testing.T) {
	a := source.Analyze("int f(void) {\n  x = 1;\n", "t.cm", source.Options{})
	diags := Diagnostics(a)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, diag.CodeAlternatives, d.Code.Value)
	assert.Contains(t, d.Message, "expected closing brace")
	assert.Equal(t, protocol.Position{Line: 1, Character: 7}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 8}, d.Range.End)
}

func TestDiagnosticsWarningAndLexError(t *testing.T) {
	a := source.Analyze("void f(void) { ; }", "t.cm", source.Options{})
	diags := Diagnostics(a)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)

	a = source.Analyze("int x$;", "t.cm", source.Options{})
	diags = Diagnostics(a)
	require.Len(t, diags, 2)
	assert.Equal(t, diag.CodeUnexpectedChar, diags[0].Code.Value)
}

func TestDiagnosticsEmptyInput(t *testing.T) {
	diags := Diagnostics(source.Analyze("", "t.cm", source.Options{}))
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Position{}, diags[0].Range.Start)
}

func TestSymbols(t *testing.T) {
	a := source.Analyze(`
int count;
int gcd(int u, int v[]) {
  int t;
  return u;
}
`, "t.cm", source.Options{})
	require.True(t, a.OK(), a.Result.Diagnostic())

	syms := Symbols(a)
	require.Len(t, syms, 2)
	assert.Equal(t, "count", syms[0].Name)
	assert.Equal(t, protocol.SymbolKindVariable, syms[0].Kind)
	assert.Equal(t, protocol.Position{Line: 1, Character: 4}, syms[0].SelectionRange.Start)

	fn := syms[1]
	assert.Equal(t, "gcd", fn.Name)
	assert.Equal(t, "int", *fn.Detail)
	assert.Equal(t, protocol.SymbolKindFunction, fn.Kind)
	assert.Equal(t, protocol.UInteger(2), fn.Range.Start.Line)
	assert.Equal(t, protocol.UInteger(5), fn.Range.End.Line)

	var names []string
	for _, c := range fn.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"u", "v", "t"}, names)
}

func TestServerKeepsLatestAnalysis(t *testing.T) {
	s := NewServer("test", source.Options{})
	uri := "file:///tmp/a.cm"

	s.analyze(uri, "int x;")
	require.NotNil(t, s.analysis(uri))
	assert.True(t, s.analysis(uri).OK())

	s.analyze(uri, "int x")
	assert.False(t, s.analysis(uri).OK())
	assert.Equal(t, "/tmp/a.cm", s.analysis(uri).Filename)
	assert.Nil(t, s.analysis("file:///tmp/b.cm"))
}

func TestURIToPath(t *testing.T) {
	assert.Equal(t, "/home/me/x.cm", uriToPath("file:///home/me/./x.cm"))
	assert.Equal(t, "untitled:1", uriToPath("untitled:1"))
}
