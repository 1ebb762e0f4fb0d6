package optimizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/interp"

	"github.com/kilianp07/rebelay/core/factory"
	"github.com/kilianp07/rebelay/core/model"
)

// analyticOptimum minimizes L/s + tL/x + (n-1)(x/s + t) over a continuous x.
func analyticOptimum(rope float64, cavers int, speed, transition float64) float64 {
	return math.Sqrt(transition * rope * speed / float64(cavers-1))
}

func TestSweep_OrderAndInvariant(t *testing.T) {
	samples, err := Sweep(100, 4, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, samples, DefaultMaxRebelays)
	for i, s := range samples {
		assert.Equal(t, i, s.Rebelays)
		assert.InEpsilon(t, 100.0, s.SectionLength*float64(s.Rebelays+1), 1e-12)
		if i > 0 {
			assert.Less(t, s.SectionLength, samples[i-1].SectionLength)
		}
	}
	assert.InDelta(t, 39.0, samples[3].Time, 1e-9)
}

func TestSweepRoundTrip_SumsBothLegs(t *testing.T) {
	opts := DefaultRoundTripOptions()
	opts.MaxRebelays = 5
	both, err := SweepRoundTrip(80, 3, opts)
	require.NoError(t, err)
	up, err := Sweep(80, 3, opts.Single(model.DirectionAscent))
	require.NoError(t, err)
	down, err := Sweep(80, 3, opts.Single(model.DirectionDescent))
	require.NoError(t, err)
	for i := range both {
		assert.Equal(t, up[i].Time+down[i].Time, both[i].Time)
	}
}

func TestFindOptimumRebelayLength_MatchesAnalytic(t *testing.T) {
	for _, n := range []int{2, 4, 8} {
		got, err := FindOptimumRebelayLength(100, n, DefaultOptions())
		require.NoError(t, err)
		assert.InDelta(t, analyticOptimum(100, n, 7, 2), got, 1.0, "cavers=%d", n)
	}
}

func TestFindOptimumRebelayLength_WithinRope(t *testing.T) {
	for _, rope := range []float64{40, 80, 150, 400} {
		for n := 2; n <= 8; n++ {
			got, err := FindOptimumRebelayLength(rope, n, DefaultOptions())
			require.NoError(t, err)
			assert.Greater(t, got, 0.0)
			assert.Less(t, got, rope)
		}
	}
}

func TestFindOptimumRebelayLength_SoloCaverUsesWholeRope(t *testing.T) {
	// Without followers there is nothing to pipeline, every rebelay only adds
	// transition time.
	got, err := FindOptimumRebelayLength(80, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 80.0, got)
}

func TestFindOptimumRebelayLength_RopeScaling(t *testing.T) {
	short, err := FindOptimumRebelayLength(100, 4, DefaultOptions())
	require.NoError(t, err)
	long, err := FindOptimumRebelayLength(200, 4, DefaultOptions())
	require.NoError(t, err)
	assert.Greater(t, long, short)
	assert.InDelta(t, math.Sqrt2, long/short, 0.05)
}

func TestFindOptimumRebelayLengthBothWays_EqualSpeeds(t *testing.T) {
	for _, n := range []int{2, 3, 6} {
		opts := DefaultRoundTripOptions()
		opts.DescentSpeed = opts.AscentSpeed
		both, err := FindOptimumRebelayLengthBothWays(90, n, opts)
		require.NoError(t, err)
		single, err := FindOptimumRebelayLength(90, n, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, single, both, "cavers=%d", n)
	}
}

func TestFindOptimumRebelayLengthBothWays_Defaults(t *testing.T) {
	got, err := FindOptimumRebelayLengthBothWays(100, 4, DefaultRoundTripOptions())
	require.NoError(t, err)
	want := math.Sqrt(2 * 2 * 100 / (3 * (1.0/7 + 1.0/70)))
	assert.InDelta(t, want, got, 1.0)

	up, err := FindOptimumRebelayLength(100, 4, DefaultOptions())
	require.NoError(t, err)
	down, err := FindOptimumRebelayLength(100, 4, DescentOptions())
	require.NoError(t, err)
	assert.Greater(t, got, up)
	assert.Less(t, got, down)
}

func TestOptimize_Result(t *testing.T) {
	res, err := Optimize(100, 4, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, model.DirectionAscent, res.Direction)
	assert.Equal(t, DefaultMethod, res.Method)
	require.Len(t, res.Curve, DefaultPoints)
	assert.InDelta(t, 1.0, res.Curve[0].SectionLength, 1e-9)
	assert.InDelta(t, 100.0, res.Curve[DefaultPoints-1].SectionLength, 1e-9)
	for i := 1; i < len(res.Curve); i++ {
		assert.Greater(t, res.Curve[i].SectionLength, res.Curve[i-1].SectionLength)
	}
	for _, p := range res.Curve {
		assert.GreaterOrEqual(t, p.Time, res.MinTime)
	}
	// the spline passes through the samples, so the minimum cannot beat the best sample by much
	best := math.Inf(1)
	for _, s := range res.Samples {
		best = math.Min(best, s.Time)
	}
	assert.LessOrEqual(t, res.MinTime, best+1e-9)
	assert.InDelta(t, best, res.MinTime, 0.5)
}

func TestOptimize_Idempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.Speed = 6.3
	opts.TransitionTime = 1.4
	first, err := Optimize(73.5, 5, opts)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Optimize(73.5, 5, opts)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(first.Optimum), math.Float64bits(again.Optimum))
		assert.Equal(t, math.Float64bits(first.MinTime), math.Float64bits(again.MinTime))
	}
}

func TestOptimize_Methods(t *testing.T) {
	for _, m := range []string{"not-a-knot", "natural", "akima", "fritsch-butland", "linear"} {
		t.Run(m, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Method = m
			got, err := FindOptimumRebelayLength(100, 4, opts)
			require.NoError(t, err)
			// the monotone and linear methods settle on the best sample, 20 m
			assert.InDelta(t, analyticOptimum(100, 4, 7, 2), got, 2.0)
		})
	}
}

func TestOptimize_Errors(t *testing.T) {
	cases := []struct {
		name   string
		rope   float64
		cavers int
		mutate func(*Options)
		want   error
	}{
		{"zero cavers", 100, 0, nil, model.ErrInvalidArgument},
		{"zero rope", 0, 2, nil, model.ErrInvalidArgument},
		{"negative speed", 100, 2, func(o *Options) { o.Speed = -7 }, model.ErrInvalidArgument},
		{"negative transition", 100, 2, func(o *Options) { o.TransitionTime = -2 }, model.ErrInvalidArgument},
		{"empty sweep", 100, 2, func(o *Options) { o.MaxRebelays = 0 }, model.ErrInvalidArgument},
		{"negative sweep", 100, 2, func(o *Options) { o.MaxRebelays = -4 }, model.ErrInvalidArgument},
		{"single sample", 100, 2, func(o *Options) { o.MaxRebelays = 1 }, model.ErrInsufficientSamples},
		{"three samples", 100, 2, func(o *Options) { o.MaxRebelays = 3 }, model.ErrInsufficientSamples},
		{"one point", 100, 2, func(o *Options) { o.Points = 1 }, model.ErrInvalidArgument},
		{"unknown method", 100, 2, func(o *Options) { o.Method = "quintic" }, model.ErrInvalidArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opts := DefaultOptions()
			if c.mutate != nil {
				c.mutate(&opts)
			}
			_, err := FindOptimumRebelayLength(c.rope, c.cavers, opts)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestOptimizeRoundTrip_Errors(t *testing.T) {
	opts := DefaultRoundTripOptions()
	opts.DescentSpeed = 0
	_, err := FindOptimumRebelayLengthBothWays(100, 2, opts)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	opts = DefaultRoundTripOptions()
	opts.MaxRebelays = 0
	_, err = FindOptimumRebelayLengthBothWays(100, 2, opts)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	opts = DefaultRoundTripOptions()
	opts.MaxRebelays = 2
	_, err = FindOptimumRebelayLengthBothWays(100, 2, opts)
	assert.ErrorIs(t, err, model.ErrInsufficientSamples)
}

func TestOptimize_LinearNeedsTwoSamples(t *testing.T) {
	opts := DefaultOptions()
	opts.Method = "linear"
	opts.MaxRebelays = 2
	got, err := FindOptimumRebelayLength(100, 20, opts)
	require.NoError(t, err)
	// linear between 50 m and 100 m, the 50 m end is faster for a large party
	assert.Equal(t, 50.0, got)
}

func TestRegisterMethod(t *testing.T) {
	require.NoError(t, RegisterMethod("test-pchip", func(map[string]any) (Curve, error) {
		return curve{FittablePredictor: &interp.FritschButland{}, min: 3}, nil
	}))
	assert.Contains(t, Methods(), "test-pchip")
	n, err := MinSamples("test-pchip")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Error(t, RegisterMethod("test-pchip", func(map[string]any) (Curve, error) { return nil, nil }))

	require.NoError(t, RegisterMethod("test-broken", func(map[string]any) (Curve, error) { return nil, nil }))
	_, err = MinSamples("test-broken")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestRegisterBuiltins(t *testing.T) {
	reg := factory.NewRegistry[Curve]()
	require.NoError(t, registerBuiltins(reg))
	assert.Equal(t, []string{"akima", "fritsch-butland", "linear", "natural", "not-a-knot"}, reg.Names())
	assert.Subset(t, Methods(), reg.Names())

	err := registerBuiltins(reg)
	assert.ErrorContains(t, err, "already registered")
}
