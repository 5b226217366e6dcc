package main

import (
	"fmt"

	"cminus/internal/lexer"
	"cminus/internal/source"

	"github.com/spf13/cobra"
)

func (a *app) newTokensCmd() *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a file and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			f, err := source.NewLoader(a.fs).Load(args[0])
			if err != nil {
				return err
			}

			tokens, diags := lexer.New(f.Text, f.Path, lexer.WithKeywords(opts.Keywords)).Tokenize()
			if jsonMode {
				if err := printTokensJSON(a.stdout, tokens, diags); err != nil {
					return err
				}
			} else {
				printTokensText(a.stdout, tokens)
				printDiags(a.stderr, f.Path, diags)
			}

			if len(diags) > 0 {
				return fmt.Errorf("%s: %d lexical errors", f.Path, len(diags))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "print tokens and diagnostics as JSON")

	return cmd
}
