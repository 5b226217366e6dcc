package main

import (
	"fmt"

	"cminus/internal/source"

	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <file...>",
		Short: "Parse files and report their diagnostics",
		Long: `Parse every file and print its diagnostics.

Arguments may be glob patterns. The command fails when any file has a
lexical or syntax error; warnings alone do not fail it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := source.NewLoader(a.fs).Expand(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range paths {
				an, err := a.analyzeFile(path)
				if err != nil {
					fmt.Fprintf(a.stderr, "%s: %s\n", path, errorColor.Sprint(err))
					failed++
					continue
				}
				printDiags(a.stderr, path, an.Diagnostics())
				if !an.OK() {
					failed++
					continue
				}
				if !quiet {
					fmt.Fprintf(a.stdout, "%s: %s\n", path, okColor.Sprint("ok"))
				}
			}

			log.Infof("checked %d files, %d failed", len(paths), failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print diagnostics")

	return cmd
}
