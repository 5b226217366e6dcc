// Package config loads the front end's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cminus/internal/parser"
	"cminus/internal/token"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CMINUS_CONFIG"

// Output formats accepted by [output] format.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the complete configuration.
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Limits LimitsConfig `toml:"limits"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// LexerConfig holds tokenizer settings.
type LexerConfig struct {
	// Keywords maps a reserved spelling to the canonical keyword it stands
	// for, e.g. "entier" = "int". Empty means the built-in table.
	Keywords map[string]string `toml:"keywords"`
}

// LimitsConfig holds parser resource limits.
type LimitsConfig struct {
	// MaxDepth is the parser nesting ceiling. Zero or absent means
	// parser.DefaultMaxDepth; a negative value disables the ceiling.
	MaxDepth int `toml:"max_depth"`
}

// OutputConfig holds CLI rendering settings.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"` // auto, always or never
}

// LogConfig holds logging settings.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load loads configuration from a TOML file on disk.
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs loads configuration from a TOML file in fs.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by CMINUS_CONFIG, or the first of the
// default locations that exists. Without any file it returns Default().
func LoadFromEnv() (*Config, error) {
	return LoadFromEnvFs(afero.NewOsFs())
}

// LoadFromEnvFs is LoadFromEnv over fs.
func LoadFromEnvFs(fs afero.Fs) (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return LoadFs(fs, path)
	}
	for _, p := range defaultPaths() {
		if ok, _ := afero.Exists(fs, p); ok {
			return LoadFs(fs, p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./cminus.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cminus", "config.toml"))
	}
	return paths
}

// Keywords returns the keyword table the lexer should use.
func (c *Config) Keywords() (token.Keywords, error) {
	if len(c.Lexer.Keywords) == 0 {
		return token.DefaultKeywords(), nil
	}
	return token.KeywordsFromNames(c.Lexer.Keywords)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Limits.MaxDepth == 0 {
		c.Limits.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatTree
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case FormatTree, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: want auto, always or never, got %q", c.Output.Color)
	}
	if _, err := c.Keywords(); err != nil {
		return fmt.Errorf("lexer.keywords: %w", err)
	}
	return nil
}
