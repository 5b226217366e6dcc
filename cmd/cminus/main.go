// Command cminus is the CLI entry point for the C-minus front end.
//
// Usage:
//
//	cminus tokens  <file> [--json]        Print tokens
//	cminus parse   <file> [--format f]    Print the parse result (tree, json, yaml)
//	cminus check   <file...>              Report diagnostics, fail on errors
//	cminus grammar [--print]              Verify or print the grammar
//	cminus repl                           Parse interactively
//	cminus lsp                            Serve diagnostics over LSP (stdio)
package main

import (
	"io"
	"os"

	"cminus/internal/config"
	"cminus/internal/source"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("cminus.cli")

// app carries what every subcommand shares.
type app struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    int
	cfg        *config.Config
}

func main() {
	a := &app{fs: afero.NewOsFs(), stdout: os.Stdout, stderr: os.Stderr}
	if err := a.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cminus",
		Short:         "Syntactic front end for the C-minus language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvVar+" or ./cminus.toml)")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(a.newTokensCmd())
	rootCmd.AddCommand(a.newParseCmd())
	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newGrammarCmd())
	rootCmd.AddCommand(a.newReplCmd())
	rootCmd.AddCommand(a.newLSPCmd())

	return rootCmd
}

// setup loads the configuration and configures logging and colors.
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFs(a.fs, a.configPath)
	} else {
		a.cfg, err = config.LoadFromEnvFs(a.fs)
	}
	if err != nil {
		return err
	}

	verbosity := a.cfg.Log.Verbosity
	if a.verbose > 0 {
		verbosity = a.verbose
	}
	var logPath *string
	if a.cfg.Log.File != "" {
		logPath = &a.cfg.Log.File
	}
	commonlog.Configure(verbosity, logPath)

	switch a.cfg.Output.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	log.Debugf("config loaded: max depth %d, format %s", a.cfg.Limits.MaxDepth, a.cfg.Output.Format)
	return nil
}

// options turns the configuration into front-end options.
func (a *app) options() (source.Options, error) {
	kw, err := a.cfg.Keywords()
	if err != nil {
		return source.Options{}, err
	}
	return source.Options{Keywords: kw, MaxDepth: a.cfg.Limits.MaxDepth}, nil
}

// analyzeFile loads and analyzes one file.
func (a *app) analyzeFile(path string) (*source.Analysis, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	f, err := source.NewLoader(a.fs).Load(path)
	if err != nil {
		return nil, err
	}
	return source.AnalyzeFile(f, opts), nil
}
