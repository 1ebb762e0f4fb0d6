// Package timing models how long a party of cavers needs to climb or descend
// a rope split into equal sections by rebelays.
//
// Cavers move as a pipeline: the leader traverses every section, and each
// following caver finishes exactly one section time later, because only one
// person may load a section at a time.
package timing

import (
	"fmt"
	"math"

	"github.com/kilianp07/rebelay/core/model"
)

const (
	// DefaultAscentSpeed is a typical prusik/frog ascent rate in meters per minute.
	DefaultAscentSpeed = 7.0
	// DefaultDescentSpeed is a typical descender rate in meters per minute.
	DefaultDescentSpeed = 70.0
	// DefaultTransitionTime is the time in minutes to pass a rebelay.
	DefaultTransitionTime = 2.0
)

// Params describes one rope configuration and party.
type Params struct {
	RopeLength     float64 // meters, > 0
	Cavers         int     // >= 1
	Rebelays       int     // >= 0, 0 means a single section
	Speed          float64 // meters per minute, > 0
	TransitionTime float64 // minutes per section, >= 0
}

// NewParams returns Params for the given rope and party with no rebelays and
// the default ascent speed and transition time.
func NewParams(ropeLength float64, cavers int) Params {
	return Params{
		RopeLength:     ropeLength,
		Cavers:         cavers,
		Speed:          DefaultAscentSpeed,
		TransitionTime: DefaultTransitionTime,
	}
}

// Validate reports the first parameter outside its domain.
func (p Params) Validate() error {
	if p.Cavers < 1 {
		return fmt.Errorf("%w: caver count must be an integer of at least 1, got %d", model.ErrInvalidArgument, p.Cavers)
	}
	if p.Rebelays < 0 {
		return fmt.Errorf("%w: rebelay count must not be negative, got %d", model.ErrInvalidArgument, p.Rebelays)
	}
	if !positive(p.RopeLength) {
		return fmt.Errorf("%w: rope length must be positive, got %v", model.ErrInvalidArgument, p.RopeLength)
	}
	if !positive(p.Speed) {
		return fmt.Errorf("%w: speed must be positive, got %v", model.ErrInvalidArgument, p.Speed)
	}
	if p.TransitionTime < 0 || math.IsNaN(p.TransitionTime) || math.IsInf(p.TransitionTime, 0) {
		return fmt.Errorf("%w: transition time must not be negative, got %v", model.ErrInvalidArgument, p.TransitionTime)
	}
	return nil
}

// SectionLength returns the length of one of the rebelays+1 equal sections.
func SectionLength(ropeLength float64, rebelays int) float64 {
	if rebelays > 0 {
		return ropeLength / float64(rebelays+1)
	}
	return ropeLength
}

// TotalTime returns the minutes needed for the whole party to traverse the rope.
func TotalTime(p Params) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	sectionTime := SectionLength(p.RopeLength, p.Rebelays)/p.Speed + p.TransitionTime
	leaderTime := sectionTime * float64(p.Rebelays+1)
	return leaderTime + sectionTime*float64(p.Cavers-1), nil
}

// ComputeTotalTime is the positional form of TotalTime.
func ComputeTotalTime(ropeLength float64, cavers, rebelays int, speed, transitionTime float64) (float64, error) {
	return TotalTime(Params{
		RopeLength:     ropeLength,
		Cavers:         cavers,
		Rebelays:       rebelays,
		Speed:          speed,
		TransitionTime: transitionTime,
	})
}

// CaverCount converts an externally supplied number into a caver count.
// Fractional values and values below one are rejected rather than rounded.
func CaverCount(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v < 1 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: caver count must be an integer of at least 1, got %v", model.ErrInvalidArgument, v)
	}
	return int(v), nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
