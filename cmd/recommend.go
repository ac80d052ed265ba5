package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/nsl/internal/adapters/console"
	"github.com/okian/nsl/internal/domain/model"
)

func newRecommendCmd() *cobra.Command {
	var position, q1, q2 string

	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Rank players for a position once and print the table",
		Example: "  nsl recommend --position Defender --q1 Tackling --q2 Marking",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := bootstrap(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer st.Close()

			ranked, err := st.svc.Recommend(ctx, position, q1, q2)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ranked) == 0 {
				fmt.Fprintf(out, "No %s matches %s.\n", position, model.Descriptor{First: q1, Second: q2})
				return nil
			}
			console.WriteRanking(out, ranked)
			return nil
		},
	}

	cmd.Flags().StringVarP(&position, "position", "p", "", "Goalkeeper, Defender, Midfielder or Forward")
	cmd.Flags().StringVar(&q1, "q1", "", "first quality")
	cmd.Flags().StringVar(&q2, "q2", "", "second quality")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("q1")
	_ = cmd.MarkFlagRequired("q2")
	return cmd
}
