package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/optimizer"
	"github.com/kilianp07/rebelay/core/timing"
)

// partyFlags are the rope and group flags shared by several commands.
type partyFlags struct {
	rope      float64
	cavers    float64
	direction string
}

func (f *partyFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.rope, "rope", "r", 0, "rope length in meters")
	cmd.Flags().Float64VarP(&f.cavers, "cavers", "n", 0, "number of cavers in the group")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "ascent", "ascent, descent or both")
	_ = cmd.MarkFlagRequired("rope")
	_ = cmd.MarkFlagRequired("cavers")
}

func (f *partyFlags) parse() (model.Direction, int, error) {
	d, err := model.ParseDirection(f.direction)
	if err != nil {
		return 0, 0, err
	}
	n, err := timing.CaverCount(f.cavers)
	if err != nil {
		return 0, 0, err
	}
	return d, n, nil
}

// sweepFlags override the configured optimizer options when set.
type sweepFlags struct {
	ascentSpeed  float64
	descentSpeed float64
	transition   float64
	maxRebelays  int
	points       int
	method       string
}

func (f *sweepFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.ascentSpeed, "ascent-speed", 0, "ascent speed in m/min")
	cmd.Flags().Float64Var(&f.descentSpeed, "descent-speed", 0, "descent speed in m/min")
	cmd.Flags().Float64Var(&f.transition, "transition", 0, "transition time per rebelay in minutes")
	cmd.Flags().IntVar(&f.maxRebelays, "max-rebelays", 0, "number of rebelay counts swept")
	cmd.Flags().IntVar(&f.points, "points", 0, "evaluation points on the fitted curve")
	cmd.Flags().StringVar(&f.method, "method", "", "interpolation method")
}

func (f *sweepFlags) apply(cmd *cobra.Command, o optimizer.RoundTripOptions) optimizer.RoundTripOptions {
	flags := cmd.Flags()
	if flags.Changed("ascent-speed") {
		o.AscentSpeed = f.ascentSpeed
	}
	if flags.Changed("descent-speed") {
		o.DescentSpeed = f.descentSpeed
	}
	if flags.Changed("transition") {
		o.TransitionTime = f.transition
	}
	if flags.Changed("max-rebelays") {
		o.MaxRebelays = f.maxRebelays
	}
	if flags.Changed("points") {
		o.Points = f.points
	}
	if flags.Changed("method") {
		o.Method = f.method
	}
	return o
}
