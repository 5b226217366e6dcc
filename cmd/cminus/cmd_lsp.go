package main

import (
	"cminus/internal/lsp"

	"github.com/spf13/cobra"
)

func (a *app) newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options()
			if err != nil {
				return err
			}
			return lsp.NewServer(version, opts).RunStdio()
		},
	}
}
