package main

import (
	"bytes"
	"testing"

	"cminus/internal/config"
	"cminus/internal/source"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type run struct {
	stdout, stderr string
	err            error
}

// execute runs the CLI against an in-memory filesystem holding files.
func execute(t *testing.T, files map[string]string, args ...string) run {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}

	var stdout, stderr bytes.Buffer
	a := &app{fs: fs, stdout: &stdout, stderr: &stderr}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return run{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestParseTree(t *testing.T) {
	r := execute(t, map[string]string{"/a.cm": "int x;"}, "parse", "/a.cm")
	require.NoError(t, r.err)
	assert.Equal(t, "Declaration [0,3)\n  VarDeclaration [0,3) int x ;\n", r.stdout)
}

func TestParseJSON(t *testing.T) {
	r := execute(t, map[string]string{"/a.cm": "int x;"}, "parse", "--format", "json", "/a.cm")
	require.NoError(t, r.err)
	assert.JSONEq(t, `{
		"ok": true,
		"lastConsumed": 2,
		"diagnostic": "",
		"node": {"kind": "Declaration", "left": 0, "right": 3, "children": [
			{"kind": "VarDeclaration", "left": 0, "right": 3, "children": []}
		]}
	}`, r.stdout)
}

func TestParseYAML(t *testing.T) {
	r := execute(t, map[string]string{"/a.cm": "int x;"}, "parse", "-f", "yaml", "/a.cm")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "lastConsumed: 2\n")
	assert.Contains(t, r.stdout, "kind: VarDeclaration")
}

func TestParseFailure(t *testing.T) {
	r := execute(t, map[string]string{"/a.cm": "int x"}, "parse", "/a.cm")
	require.Error(t, r.err)
	assert.Empty(t, r.stdout)
	assert.Contains(t, r.stderr, "/a.cm:1:")
	assert.Contains(t, r.stderr, "error[E2004]")

	r = execute(t, map[string]string{"/a.cm": "int x"}, "parse", "-f", "json", "/a.cm")
	require.Error(t, r.err)
	assert.Contains(t, r.stdout, `"ok": false`)
	assert.Contains(t, r.stdout, `"lastConsumed": -1`)
	assert.Contains(t, r.stdout, `"node": null`)
}

func TestParseUnknownFormat(t *testing.T) {
	r := execute(t, map[string]string{"/a.cm": "int x;"}, "parse", "-f", "xml", "/a.cm")
	assert.ErrorContains(t, r.err, "unknown format")
}

func TestTokens(t *testing.T) {
	r := execute(t, map[string]string{"/a.cm": "int x;"}, "tokens", "/a.cm")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "IDENT")
	assert.Contains(t, r.stdout, "1:5")

	r = execute(t, map[string]string{"/a.cm": "int x;"}, "tokens", "--json", "/a.cm")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `"lexeme": "x"`)

	r = execute(t, map[string]string{"/a.cm": "int 3x;"}, "tokens", "/a.cm")
	assert.Error(t, r.err)
	assert.Contains(t, r.stderr, "E1002")
}

func TestCheck(t *testing.T) {
	files := map[string]string{
		"/src/good.cm": "int x;",
		"/src/warn.cm": "void f(void) { ; }",
		"/src/bad.cm":  "int f(void) {",
	}
	r := execute(t, files, "check", "/src/*.cm")
	assert.ErrorContains(t, r.err, "1 of 3 files failed")
	assert.Contains(t, r.stdout, "/src/good.cm: ok")
	assert.Contains(t, r.stdout, "/src/warn.cm: ok")
	assert.NotContains(t, r.stdout, "/src/bad.cm: ok")
	assert.Contains(t, r.stderr, "/src/warn.cm:1:16: warning[W2001]:")
	assert.Contains(t, r.stderr, "expected closing brace")

	r = execute(t, files, "check", "-q", "/src/good.cm", "/src/warn.cm")
	require.NoError(t, r.err)
	assert.Empty(t, r.stdout)

	r = execute(t, files, "check", "/src/missing.cm")
	assert.Error(t, r.err)
	assert.Contains(t, r.stderr, "cannot read file")
}

func TestGrammar(t *testing.T) {
	r := execute(t, nil, "grammar")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Program\n")
	assert.Contains(t, r.stderr, "start Program")

	r = execute(t, nil, "grammar", "--print")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "Program = DeclarationList .")
}

func TestConfigFlag(t *testing.T) {
	files := map[string]string{
		"/cminus.toml": "[lexer.keywords]\nentier = \"int\"\nvide = \"void\"\n\n[output]\nformat = \"json\"\n",
		"/a.cm":        "entier x; vide f(vide) { }",
	}
	r := execute(t, files, "--config", "/cminus.toml", "parse", "/a.cm")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `"kind": "DeclarationList"`)

	r = execute(t, files, "--config", "/missing.toml", "parse", "/a.cm")
	assert.Error(t, r.err)
}

func TestEvalInput(t *testing.T) {
	tests := []struct {
		mode, text string
		out        string
		errOut     string
	}{
		{"program", "int x;", "Declaration [0,3)\n  VarDeclaration [0,3) int x ;\n", ""},
		{"expr", "a + 1", "SimpleExpression [0,3)\n", ""},
		{"expr", "a b", "SimpleExpression [0,1)\n", `ignored input from "b"`},
		{"stmt", "return;", "ReturnStmt [0,2) return ;\n", ""},
		{"stmt", "x = ;", "", "error["},
		{"program", "int x = 1 ! 2;", "", "E1001"},
	}
	for _, tt := range tests {
		t.Run(tt.mode+" "+tt.text, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			evalInput(&stdout, &stderr, tt.mode, tt.text, source.Options{})
			if tt.out != "" {
				assert.Contains(t, stdout.String(), tt.out)
			} else {
				assert.Empty(t, stdout.String())
			}
			if tt.errOut != "" {
				assert.Contains(t, stderr.String(), tt.errOut)
			}
		})
	}
}

func TestSwitchMode(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, "expr", switchMode(&out, "program", "expr"))
	assert.Equal(t, "expr", switchMode(&out, "expr", "bogus"))
	assert.Contains(t, out.String(), ":expr, :program, :stmt")
}
