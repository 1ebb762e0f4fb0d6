package optimizer

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/timing"
)

// Point is a value of the fitted time curve.
type Point struct {
	SectionLength float64 `json:"section_length"`
	Time          float64 `json:"time"`
}

// Result holds everything an optimization computed.
type Result struct {
	Direction  model.Direction `json:"direction"`
	RopeLength float64         `json:"rope_length"`
	Cavers     int             `json:"cavers"`
	Method     string          `json:"method"`
	// Samples are in sweep order, i.e. rebelay count ascending.
	Samples []model.Sample `json:"samples"`
	// Curve is the interpolant evaluated on the dense grid, section length ascending.
	Curve []Point `json:"curve,omitempty"`
	// Optimum is the best section length in meters, rounded to 0.1 m.
	Optimum float64 `json:"optimum"`
	// MinTime is the interpolated time at the unrounded optimum.
	MinTime float64 `json:"min_time"`
}

// Sweep evaluates the timing model for rebelay counts 0 to MaxRebelays-1.
func Sweep(ropeLength float64, cavers int, opts Options) ([]model.Sample, error) {
	if err := checkSweep(ropeLength, cavers, opts.TransitionTime, opts.MaxRebelays, 2, opts.Speed); err != nil {
		return nil, err
	}
	return sweep(ropeLength, opts.MaxRebelays, func(rebelays int) (float64, error) {
		return timing.ComputeTotalTime(ropeLength, cavers, rebelays, opts.Speed, opts.TransitionTime)
	})
}

// SweepRoundTrip evaluates ascent plus descent time for rebelay counts 0 to
// MaxRebelays-1.
func SweepRoundTrip(ropeLength float64, cavers int, opts RoundTripOptions) ([]model.Sample, error) {
	if err := checkSweep(ropeLength, cavers, opts.TransitionTime, opts.MaxRebelays, 2, opts.AscentSpeed, opts.DescentSpeed); err != nil {
		return nil, err
	}
	return sweep(ropeLength, opts.MaxRebelays, func(rebelays int) (float64, error) {
		up, err := timing.ComputeTotalTime(ropeLength, cavers, rebelays, opts.AscentSpeed, opts.TransitionTime)
		if err != nil {
			return 0, err
		}
		down, err := timing.ComputeTotalTime(ropeLength, cavers, rebelays, opts.DescentSpeed, opts.TransitionTime)
		if err != nil {
			return 0, err
		}
		return up + down, nil
	})
}

func sweep(ropeLength float64, maxRebelays int, eval func(rebelays int) (float64, error)) ([]model.Sample, error) {
	samples := make([]model.Sample, 0, maxRebelays)
	for k := 0; k < maxRebelays; k++ {
		t, err := eval(k)
		if err != nil {
			return nil, err
		}
		samples = append(samples, model.Sample{
			Rebelays:      k,
			SectionLength: ropeLength / float64(k+1),
			Time:          t,
		})
	}
	return samples, nil
}

// Optimize sweeps a single direction and locates the time-minimizing section length.
func Optimize(ropeLength float64, cavers int, opts Options) (Result, error) {
	if err := checkSweep(ropeLength, cavers, opts.TransitionTime, opts.MaxRebelays, opts.Points, opts.Speed); err != nil {
		return Result{}, err
	}
	c, err := prepareCurve(opts.method(), opts.MaxRebelays)
	if err != nil {
		return Result{}, err
	}
	samples, err := Sweep(ropeLength, cavers, opts)
	if err != nil {
		return Result{}, err
	}
	res := Result{Direction: opts.Direction, RopeLength: ropeLength, Cavers: cavers, Method: opts.method(), Samples: samples}
	if err := locate(&res, c, opts.Points); err != nil {
		return Result{}, err
	}
	return res, nil
}

// OptimizeRoundTrip locates the section length minimizing ascent plus descent time.
func OptimizeRoundTrip(ropeLength float64, cavers int, opts RoundTripOptions) (Result, error) {
	if err := checkSweep(ropeLength, cavers, opts.TransitionTime, opts.MaxRebelays, opts.Points, opts.AscentSpeed, opts.DescentSpeed); err != nil {
		return Result{}, err
	}
	c, err := prepareCurve(opts.method(), opts.MaxRebelays)
	if err != nil {
		return Result{}, err
	}
	samples, err := SweepRoundTrip(ropeLength, cavers, opts)
	if err != nil {
		return Result{}, err
	}
	res := Result{Direction: model.DirectionBoth, RopeLength: ropeLength, Cavers: cavers, Method: opts.method(), Samples: samples}
	if err := locate(&res, c, opts.Points); err != nil {
		return Result{}, err
	}
	return res, nil
}

// FindOptimumRebelayLength returns the section length in meters, rounded to
// 0.1 m, that minimizes the single-direction time.
//
// A lone caver gains nothing from rebelays, so the optimum is the whole rope.
// For larger groups the optimum grows with the square root of the rope
// length: doubling the rope moves it by about √2, not 2.
func FindOptimumRebelayLength(ropeLength float64, cavers int, opts Options) (float64, error) {
	res, err := Optimize(ropeLength, cavers, opts)
	if err != nil {
		return 0, err
	}
	return res.Optimum, nil
}

// FindOptimumRebelayLengthBothWays returns the section length in meters,
// rounded to 0.1 m, that minimizes combined ascent and descent time.
func FindOptimumRebelayLengthBothWays(ropeLength float64, cavers int, opts RoundTripOptions) (float64, error) {
	res, err := OptimizeRoundTrip(ropeLength, cavers, opts)
	if err != nil {
		return 0, err
	}
	return res.Optimum, nil
}

func prepareCurve(method string, samples int) (Curve, error) {
	c, err := newCurve(method)
	if err != nil {
		return nil, err
	}
	if samples < c.MinSamples() {
		return nil, fmt.Errorf("%w: method %s needs %d samples, sweep yields %d",
			model.ErrInsufficientSamples, method, c.MinSamples(), samples)
	}
	return c, nil
}

// locate fits c through res.Samples and fills Curve, Optimum and MinTime.
func locate(res *Result, c Curve, points int) error {
	n := len(res.Samples)
	if n < c.MinSamples() {
		return fmt.Errorf("%w: need %d samples, got %d", model.ErrInsufficientSamples, c.MinSamples(), n)
	}
	sorted := make([]model.Sample, n)
	copy(sorted, res.Samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SectionLength < sorted[j].SectionLength })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range sorted {
		xs[i] = s.SectionLength
		ys[i] = s.Time
		if i > 0 && !(xs[i] > xs[i-1]) {
			return fmt.Errorf("%w: section lengths not distinct at %v", model.ErrInvalidArgument, xs[i])
		}
	}
	if err := c.Fit(xs, ys); err != nil {
		return fmt.Errorf("fit %s: %w", res.Method, err)
	}

	grid := floats.Span(make([]float64, points), xs[0], xs[n-1])
	values := make([]float64, points)
	res.Curve = make([]Point, points)
	for i, x := range grid {
		values[i] = c.Predict(x)
		res.Curve[i] = Point{SectionLength: x, Time: values[i]}
	}
	best := floats.MinIdx(values)
	res.Optimum = roundTenth(grid[best])
	res.MinTime = values[best]
	return nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
