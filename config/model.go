package config

import (
	"fmt"
	"math"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/optimizer"
)

// ModelConfig holds the physical parameters of the timing model.
type ModelConfig struct {
	AscentSpeed    float64 `json:"ascent_speed"`    // meters per minute
	DescentSpeed   float64 `json:"descent_speed"`   // meters per minute
	TransitionTime float64 `json:"transition_time"` // minutes per rebelay
}

// SetDefaults is a no-op: every model field has a meaningful zero that
// Validate must see, so Default() seeds the defaults before loading.
func (c *ModelConfig) SetDefaults() {}

func (c ModelConfig) Validate() error {
	if !(c.AscentSpeed > 0) || math.IsInf(c.AscentSpeed, 0) {
		return fmt.Errorf("model.ascent_speed must be positive, got %g", c.AscentSpeed)
	}
	if !(c.DescentSpeed > 0) || math.IsInf(c.DescentSpeed, 0) {
		return fmt.Errorf("model.descent_speed must be positive, got %g", c.DescentSpeed)
	}
	if !(c.TransitionTime >= 0) || math.IsInf(c.TransitionTime, 0) {
		return fmt.Errorf("model.transition_time must be non-negative, got %g", c.TransitionTime)
	}
	return nil
}

// SweepConfig controls the optimizer sweep.
type SweepConfig struct {
	MaxRebelays int    `json:"max_rebelays"`
	Points      int    `json:"points"`
	Method      string `json:"method"`
	// Workers bounds the concurrent party sizes of a caver study; 0 means one
	// goroutine per party size.
	Workers int `json:"workers"`
}

func (c *SweepConfig) SetDefaults() {
	if c.MaxRebelays == 0 {
		c.MaxRebelays = optimizer.DefaultMaxRebelays
	}
	if c.Points == 0 {
		c.Points = optimizer.DefaultPoints
	}
	if c.Method == "" {
		c.Method = optimizer.DefaultMethod
	}
}

func (c SweepConfig) Validate() error {
	if c.MaxRebelays < 1 {
		return fmt.Errorf("sweep.max_rebelays must be at least 1, got %d", c.MaxRebelays)
	}
	if c.Points < 2 {
		return fmt.Errorf("sweep.points must be at least 2, got %d", c.Points)
	}
	if c.Workers < 0 {
		return fmt.Errorf("sweep.workers must not be negative, got %d", c.Workers)
	}
	need, err := optimizer.MinSamples(c.Method)
	if err != nil {
		return fmt.Errorf("sweep.method: %w", err)
	}
	if c.MaxRebelays < need {
		return fmt.Errorf("sweep.max_rebelays must be at least %d for method %s", need, c.Method)
	}
	return nil
}

// Options returns the single-direction optimizer options for d. Both maps to
// the ascent leg; use RoundTrip for round trips.
func (c *Config) Options(d model.Direction) optimizer.Options {
	return c.RoundTrip().Single(d)
}

// RoundTrip returns the round-trip optimizer options.
func (c *Config) RoundTrip() optimizer.RoundTripOptions {
	return optimizer.RoundTripOptions{
		AscentSpeed:    c.Model.AscentSpeed,
		DescentSpeed:   c.Model.DescentSpeed,
		TransitionTime: c.Model.TransitionTime,
		MaxRebelays:    c.Sweep.MaxRebelays,
		Points:         c.Sweep.Points,
		Method:         c.Sweep.Method,
	}
}
