package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/nsl/internal/adapters/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve squad tools over MCP stdio",
		Long:  "Exposes the recommendation and squad tools to an MCP client on stdin/stdout. Logs go to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// stdout carries the protocol, so logs must not go there.
			st, err := bootstrap(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer st.Close()

			srv := mcpserver.NewServer(st.svc, Version, mcpserver.WithLogger(st.logger.Named("mcp")))
			st.logger.Info(ctx, "serving MCP over stdio")
			if err := srv.RunStdio(ctx); err != nil && !errors.Is(err, io.EOF) && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}
