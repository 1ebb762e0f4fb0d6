package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/rebelay/core/model"
)

func TestTotalTime_SingleCaverNoRebelay(t *testing.T) {
	got, err := TotalTime(NewParams(100, 1))
	require.NoError(t, err)
	assert.InDelta(t, 100.0/7+2, got, 1e-12)
	assert.InDelta(t, 16.2857, got, 1e-4)
}

func TestTotalTime_FourCaversThreeRebelays(t *testing.T) {
	// section 25 m, section time 25/7+2, leader 4 sections, 3 followers.
	got, err := ComputeTotalTime(100, 4, 3, 7, 2)
	require.NoError(t, err)
	assert.InDelta(t, 39.0, got, 1e-9)
}

func TestTotalTime_SingleSectionClosedForm(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		for _, l := range []float64{10, 80, 333.3} {
			got, err := ComputeTotalTime(l, n, 0, 7, 2)
			require.NoError(t, err)
			assert.InEpsilon(t, (l/7+2)*float64(n), got, 1e-12, "L=%v n=%d", l, n)
		}
	}
}

func TestTotalTime_MonotonicInCavers(t *testing.T) {
	for rebelays := 0; rebelays < 20; rebelays++ {
		prev := math.Inf(-1)
		for n := 1; n <= 10; n++ {
			got, err := ComputeTotalTime(120, n, rebelays, 7, 2)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev, "rebelays=%d cavers=%d", rebelays, n)
			prev = got
		}
	}
}

func TestTotalTime_ZeroTransitionTime(t *testing.T) {
	got, err := ComputeTotalTime(70, 2, 6, 70, 0)
	require.NoError(t, err)
	// 7 sections of 10 m at 70 m/min for the leader, one extra section for the second caver.
	assert.InDelta(t, 8.0/7, got, 1e-12)
}

func TestTotalTime_InvalidArguments(t *testing.T) {
	cases := []struct {
		name string
		p    Params
	}{
		{"no cavers", Params{RopeLength: 100, Cavers: 0, Speed: 7, TransitionTime: 2}},
		{"negative cavers", Params{RopeLength: 100, Cavers: -3, Speed: 7, TransitionTime: 2}},
		{"negative rebelays", Params{RopeLength: 100, Cavers: 1, Rebelays: -1, Speed: 7, TransitionTime: 2}},
		{"zero rope", Params{RopeLength: 0, Cavers: 1, Speed: 7, TransitionTime: 2}},
		{"infinite rope", Params{RopeLength: math.Inf(1), Cavers: 1, Speed: 7, TransitionTime: 2}},
		{"zero speed", Params{RopeLength: 100, Cavers: 1, Speed: 0, TransitionTime: 2}},
		{"nan speed", Params{RopeLength: 100, Cavers: 1, Speed: math.NaN(), TransitionTime: 2}},
		{"negative transition", Params{RopeLength: 100, Cavers: 1, Speed: 7, TransitionTime: -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := TotalTime(c.p)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}
}

func TestTotalTime_Deterministic(t *testing.T) {
	p := Params{RopeLength: 93.7, Cavers: 6, Rebelays: 11, Speed: 6.5, TransitionTime: 1.75}
	first, err := TotalTime(p)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := TotalTime(p)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(first), math.Float64bits(got))
	}
}

func TestSectionLength(t *testing.T) {
	assert.Equal(t, 100.0, SectionLength(100, 0))
	assert.Equal(t, 25.0, SectionLength(100, 3))
	for k := 0; k < 100; k++ {
		assert.InEpsilon(t, 80.0, SectionLength(80, k)*float64(k+1), 1e-12)
	}
}

func TestCaverCount(t *testing.T) {
	n, err := CaverCount(4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, v := range []float64{0, 2.5, -1, math.NaN(), math.Inf(1)} {
		_, err := CaverCount(v)
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "value %v", v)
	}
}
