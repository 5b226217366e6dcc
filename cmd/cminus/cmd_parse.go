package main

import (
	"fmt"

	"cminus/internal/config"

	"github.com/spf13/cobra"
)

func (a *app) newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print the parse result",
		Long: `Parse a file as a program and print the result.

The tree format prints one node per line as "Kind [left,right)", with the
source text of leaf nodes. The json and yaml formats print the result
object {lastConsumed, diagnostic, warnings, node}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}

			an, err := a.analyzeFile(args[0])
			if err != nil {
				return err
			}
			printDiags(a.stderr, an.Filename, an.LexDiags)

			switch format {
			case config.FormatJSON:
				err = printJSON(a.stdout, an.Result)
			case config.FormatYAML:
				err = printYAML(a.stdout, an.Result)
			case config.FormatTree:
				if an.Result.OK() && an.Result.Node != nil {
					fmt.Fprint(a.stdout, an.Result.Node.Format(an.Tokens))
				}
				printDiags(a.stderr, an.Filename, an.Result.Diagnostics())
			default:
				return fmt.Errorf("unknown format %q (want tree, json or yaml)", format)
			}
			if err != nil {
				return err
			}

			if !an.OK() {
				return fmt.Errorf("%s: parse failed", an.Filename)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: tree, json or yaml (default from config)")

	return cmd
}
