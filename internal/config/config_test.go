package config

import (
	"testing"

	"cminus/internal/parser"
	"cminus/internal/token"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, parser.DefaultMaxDepth, cfg.Limits.MaxDepth)
	assert.Equal(t, FormatTree, cfg.Output.Format)
	assert.Equal(t, "auto", cfg.Output.Color)

	kw, err := cfg.Keywords()
	require.NoError(t, err)
	assert.Equal(t, token.DefaultKeywords(), kw)
}

func TestLoadFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/cminus.toml", []byte(`
[lexer.keywords]
entier = "int"
si = "if"
sinon = "else"

[limits]
max_depth = 64

[output]
format = "yaml"
color = "never"

[log]
verbosity = 2
file = "/tmp/cminus.log"
`), 0o644))

	cfg, err := LoadFs(fs, "/etc/cminus.toml")
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Limits.MaxDepth)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "/tmp/cminus.log", cfg.Log.File)

	kw, err := cfg.Keywords()
	require.NoError(t, err)
	assert.Equal(t, token.KW_INT, kw.Lookup("entier"))
	assert.Equal(t, token.KW_ELSE, kw.Lookup("sinon"))
	assert.Equal(t, token.IDENT, kw.Lookup("int"))
}

func TestLoadFsErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/bad-syntax.toml":  `[limits`,
		"/bad-format.toml":  "[output]\nformat = \"xml\"\n",
		"/bad-color.toml":   "[output]\ncolor = \"sometimes\"\n",
		"/bad-keyword.toml": "[lexer.keywords]\nplus = \"+\"\n",
	}
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}

	for name := range files {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFs(fs, name)
			assert.Error(t, err)
		})
	}

	_, err := LoadFs(fs, "/missing.toml")
	assert.Error(t, err)
}

func TestMaxDepthSettings(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/zero.toml", []byte("[limits]\nmax_depth = 0\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/off.toml", []byte("[limits]\nmax_depth = -1\n"), 0o644))

	cfg, err := LoadFs(fs, "/zero.toml")
	require.NoError(t, err)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.Limits.MaxDepth)

	cfg, err = LoadFs(fs, "/off.toml")
	require.NoError(t, err)
	assert.Equal(t, -1, cfg.Limits.MaxDepth)
}

func TestLoadFromEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/conf/c.toml", []byte("[limits]\nmax_depth = 7\n"), 0o644))

	t.Setenv(EnvVar, "/conf/c.toml")
	cfg, err := LoadFromEnvFs(fs)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Limits.MaxDepth)

	t.Setenv(EnvVar, "")
	cfg, err = LoadFromEnvFs(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
