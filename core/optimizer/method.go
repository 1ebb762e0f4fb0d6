package optimizer

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/kilianp07/rebelay/core/factory"
	"github.com/kilianp07/rebelay/core/model"
)

// DefaultMethod is the not-a-knot cubic spline.
const DefaultMethod = "not-a-knot"

// Curve is an interpolant that knows how many samples it needs.
type Curve interface {
	interp.FittablePredictor
	MinSamples() int
}

type curve struct {
	interp.FittablePredictor
	min int
}

func (c curve) MinSamples() int { return c.min }

var methods = factory.NewRegistry[Curve]()

func init() {
	if err := registerBuiltins(methods); err != nil {
		panic(err)
	}
}

// registerBuiltins adds the gonum interpolants to reg. A name clash is a
// programming error.
func registerBuiltins(reg *factory.Registry[Curve]) error {
	builtin := []struct {
		name string
		min  int
		make func() interp.FittablePredictor
	}{
		{"not-a-knot", 4, func() interp.FittablePredictor { return &interp.NotAKnotCubic{} }},
		{"natural", 4, func() interp.FittablePredictor { return &interp.NaturalCubic{} }},
		{"akima", 4, func() interp.FittablePredictor { return &interp.AkimaSpline{} }},
		{"fritsch-butland", 4, func() interp.FittablePredictor { return &interp.FritschButland{} }},
		{"linear", 2, func() interp.FittablePredictor { return &interp.PiecewiseLinear{} }},
	}
	for _, b := range builtin {
		if err := reg.Register(b.name, func(map[string]any) (Curve, error) {
			return curve{FittablePredictor: b.make(), min: b.min}, nil
		}); err != nil {
			return fmt.Errorf("interpolation method %s: %w", b.name, err)
		}
	}
	return nil
}

// RegisterMethod adds an interpolation method. The factory must return a new
// Curve on each call.
func RegisterMethod(name string, f factory.Factory[Curve]) error {
	return methods.Register(name, f)
}

// Methods lists the registered interpolation methods.
func Methods() []string { return methods.Names() }

func newCurve(name string) (Curve, error) {
	if !methods.Has(name) {
		return nil, fmt.Errorf("%w: unknown interpolation method %q", model.ErrInvalidArgument, name)
	}
	c, err := methods.Create(factory.ModuleConfig{Type: name})
	if err != nil {
		return nil, err
	}
	if c == nil || c.MinSamples() < 2 {
		return nil, fmt.Errorf("%w: interpolation method %q is unusable", model.ErrInvalidArgument, name)
	}
	return c, nil
}

// MinSamples returns how many sweep samples the named method needs.
func MinSamples(method string) (int, error) {
	c, err := newCurve(method)
	if err != nil {
		return 0, err
	}
	return c.MinSamples(), nil
}
