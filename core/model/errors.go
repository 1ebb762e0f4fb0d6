package model

import "errors"

// ErrInvalidArgument is returned when a parameter is outside its domain,
// e.g. a caver count below one or a non-positive rope length.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInsufficientSamples is returned when a sweep yields fewer points than the
// interpolation method needs to fit a curve.
var ErrInsufficientSamples = errors.New("insufficient samples")
