package main

import (
	"fmt"

	"cminus/internal/grammar"

	"github.com/spf13/cobra"
)

func (a *app) newGrammarCmd() *cobra.Command {
	var printSource bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Verify the language grammar and list its productions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Verify()
			if err != nil {
				return err
			}
			if printSource {
				_, err := a.stdout.Write(grammar.Source())
				return err
			}

			for _, name := range grammar.Productions(g) {
				fmt.Fprintln(a.stdout, name)
			}
			fmt.Fprintf(a.stderr, "%s %d productions, start %s\n", okColor.Sprint("ok:"), len(g), grammar.Start)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printSource, "print", false, "print the EBNF source")

	return cmd
}
