package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rebelay/infra/plot"
)

func newPlotCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render charts to png, svg or pdf",
	}
	cmd.AddCommand(newPlotCurveCmd(c), newPlotStudyCmd(c))
	return cmd
}

func newPlotCurveCmd(c *cli) *cobra.Command {
	var (
		party partyFlags
		sweep sweepFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Plot total time against rebelay length and mark the optimum",
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
			p, err := plot.TimeCurve(res)
			if err != nil {
				return err
			}
			if err := plot.Save(p, out, c.cfg.Plot.WidthCm, c.cfg.Plot.HeightCm); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (optimum %.1f m)\n", out, res.Optimum)
			return err
		},
	}
	party.register(cmd)
	sweep.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "time_curve.png", "output image")
	return cmd
}

func newPlotStudyCmd(c *cli) *cobra.Command {
	var (
		rope      float64
		maxCavers int
		sweep     sweepFlags
		out       string
	)
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Plot the optimum spacing against the number of cavers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			planner, err := c.planner()
			if err != nil {
				return err
			}
			rows, err := planner.Study(cmd.Context(), rope, maxCavers, sweep.apply(cmd, planner.Defaults()))
			if err != nil {
				return err
			}
			p, err := plot.CaverStudy(rope, rows)
			if err != nil {
				return err
			}
			if err := plot.Save(p, out, c.cfg.Plot.WidthCm, c.cfg.Plot.HeightCm); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return err
		},
	}
	cmd.Flags().Float64VarP(&rope, "rope", "r", 0, "rope length in meters")
	cmd.Flags().IntVarP(&maxCavers, "max-cavers", "m", 8, "largest group size studied")
	_ = cmd.MarkFlagRequired("rope")
	sweep.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "caver_study.png", "output image")
	return cmd
}
