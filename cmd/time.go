package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rebelay/core/timing"
)

func newTimeCmd(c *cli) *cobra.Command {
	var (
		party      partyFlags
		rebelays   int
		speed      float64
		transition float64
	)
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Total time for a group to pass a rope with a given number of rebelays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, cavers, err := party.parse()
			if err != nil {
				return err
			}
			defaults := c.cfg.Options(d)
			p := timing.Params{
				RopeLength:     party.rope,
				Cavers:         cavers,
				Rebelays:       rebelays,
				Speed:          defaults.Speed,
				TransitionTime: defaults.TransitionTime,
			}
			if cmd.Flags().Changed("speed") {
				p.Speed = speed
			}
			if cmd.Flags().Changed("transition") {
				p.TransitionTime = transition
			}
			planner, err := c.planner()
			if err != nil {
				return err
			}
			total, err := planner.TotalTime(p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Section length: %.1f m\nTotal time: %.1f minutes\n",
				timing.SectionLength(p.RopeLength, p.Rebelays), total)
			return err
		},
	}
	party.register(cmd)
	cmd.Flags().IntVarP(&rebelays, "rebelays", "k", 0, "number of rebelays")
	cmd.Flags().Float64Var(&speed, "speed", 0, "progression speed in m/min (default from config for the direction)")
	cmd.Flags().Float64Var(&transition, "transition", 0, "transition time per rebelay in minutes")
	return cmd
}
