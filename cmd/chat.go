package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/nsl/internal/adapters/console"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chatbot",
		Long:  "Runs the console chatbot: discover teams and players or build a fantasy squad. Logs go to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}
}

func runChat(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := bootstrap(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer st.Close()

	c := console.New(st.svc, cmd.InOrStdin(),
		console.WithOutput(cmd.OutOrStdout()),
		console.WithLogger(st.logger.Named("console")),
	)
	return c.Run(ctx)
}
