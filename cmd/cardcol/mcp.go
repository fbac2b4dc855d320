package main

import (
	"github.com/spf13/cobra"

	"github.com/cardcol/cardcol/internal/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server over stdio, backed by the catalog API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vm, err := a.newCatalog(cmd.Context())
			if err != nil {
				return err
			}
			return mcp.NewServer(vm, version, a.log).Run(cmd.Context())
		},
	}
}
