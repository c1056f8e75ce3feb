package main

import (
	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/mcptool"
)

func (a *app) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the URL tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcptool.NewServer(a.info, mcptool.Options{
				MaxLength: a.cfg.MaxLength,
				RateLimit: a.cfg.MCP.RateLimit,
				Burst:     a.cfg.MCP.Burst,
			})
			return mcptool.Serve(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
