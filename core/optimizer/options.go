package optimizer

import (
	"fmt"
	"math"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/timing"
)

const (
	// DefaultMaxRebelays is the number of rebelay counts swept, 0 to 99.
	DefaultMaxRebelays = 100
	// DefaultPoints is the number of points the fitted curve is evaluated at.
	DefaultPoints = 1000
)

// Options configures a single-direction optimization.
type Options struct {
	// Direction only labels the result; the speed decides the physics.
	Direction      model.Direction
	Speed          float64 // meters per minute, default 7
	TransitionTime float64 // minutes, default 2
	MaxRebelays    int     // candidate counts swept, default 100
	Points         int     // evaluation points on the fitted curve, default 1000
	Method         string  // interpolation method, default "not-a-knot"
}

// DefaultOptions returns the ascent defaults.
func DefaultOptions() Options {
	return Options{
		Direction:      model.DirectionAscent,
		Speed:          timing.DefaultAscentSpeed,
		TransitionTime: timing.DefaultTransitionTime,
		MaxRebelays:    DefaultMaxRebelays,
		Points:         DefaultPoints,
		Method:         DefaultMethod,
	}
}

// DescentOptions returns the defaults with the descent speed.
func DescentOptions() Options {
	o := DefaultOptions()
	o.Direction = model.DirectionDescent
	o.Speed = timing.DefaultDescentSpeed
	return o
}

// RoundTripOptions configures an optimization over ascent plus descent on a
// shared rebelay layout.
type RoundTripOptions struct {
	AscentSpeed    float64 // meters per minute, default 7
	DescentSpeed   float64 // meters per minute, default 70
	TransitionTime float64 // minutes, default 2
	MaxRebelays    int     // default 100
	Points         int     // default 1000
	Method         string  // default "not-a-knot"
}

// DefaultRoundTripOptions returns the round-trip defaults.
func DefaultRoundTripOptions() RoundTripOptions {
	return RoundTripOptions{
		AscentSpeed:    timing.DefaultAscentSpeed,
		DescentSpeed:   timing.DefaultDescentSpeed,
		TransitionTime: timing.DefaultTransitionTime,
		MaxRebelays:    DefaultMaxRebelays,
		Points:         DefaultPoints,
		Method:         DefaultMethod,
	}
}

// Single returns the single-direction options for one leg of the round trip.
// DirectionBoth is not a leg and yields the ascent leg.
func (o RoundTripOptions) Single(d model.Direction) Options {
	speed := o.AscentSpeed
	if d == model.DirectionDescent {
		speed = o.DescentSpeed
	} else {
		d = model.DirectionAscent
	}
	return Options{
		Direction:      d,
		Speed:          speed,
		TransitionTime: o.TransitionTime,
		MaxRebelays:    o.MaxRebelays,
		Points:         o.Points,
		Method:         o.Method,
	}
}

func (o Options) method() string {
	if o.Method == "" {
		return DefaultMethod
	}
	return o.Method
}

func (o RoundTripOptions) method() string {
	if o.Method == "" {
		return DefaultMethod
	}
	return o.Method
}

// checkSweep validates the parameters shared by both variants, before any
// evaluation takes place.
func checkSweep(ropeLength float64, cavers int, transitionTime float64, maxRebelays, points int, speeds ...float64) error {
	for _, s := range speeds {
		p := timing.Params{RopeLength: ropeLength, Cavers: cavers, Speed: s, TransitionTime: transitionTime}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	if maxRebelays <= 0 {
		return fmt.Errorf("%w: max rebelays must be positive, got %d", model.ErrInvalidArgument, maxRebelays)
	}
	if points < 2 {
		return fmt.Errorf("%w: at least 2 evaluation points required, got %d", model.ErrInvalidArgument, points)
	}
	if maxRebelays > math.MaxInt32 {
		return fmt.Errorf("%w: max rebelays too large: %d", model.ErrInvalidArgument, maxRebelays)
	}
	return nil
}
