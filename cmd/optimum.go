package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOptimumCmd(c *cli) *cobra.Command {
	var (
		party partyFlags
		sweep sweepFlags
	)
	cmd := &cobra.Command{
		Use:   "optimum",
		Short: "Rebelay spacing that minimizes the group's total time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, cavers, err := party.parse()
			if err != nil {
				return err
			}
			planner, err := c.planner()
			if err != nil {
				return err
			}
			res, err := planner.Optimize(d, party.rope, cavers, sweep.apply(cmd, planner.Defaults()))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Optimum rebelay length (%s): %.1f m\nMinimum time: %.1f minutes\n",
				d, res.Optimum, res.MinTime)
			return err
		},
	}
	party.register(cmd)
	sweep.register(cmd)
	return cmd
}
