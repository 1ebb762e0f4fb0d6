package model

import "fmt"

// Sample is one evaluated rope configuration.
type Sample struct {
	Rebelays      int     `json:"rebelays"`
	SectionLength float64 `json:"section_length"` // meters
	Time          float64 `json:"time"`           // minutes
}

// Direction identifies which traverse a timing or optimum refers to.
type Direction int

const (
	DirectionAscent Direction = iota
	DirectionDescent
	// DirectionBoth sums ascent and descent over a shared rebelay layout.
	DirectionBoth
)

func (d Direction) String() string {
	switch d {
	case DirectionAscent:
		return "ascent"
	case DirectionDescent:
		return "descent"
	case DirectionBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseDirection converts a textual direction as accepted by the CLI and HTTP API.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "ascent", "up", "":
		return DirectionAscent, nil
	case "descent", "down":
		return DirectionDescent, nil
	case "both", "round-trip":
		return DirectionBoth, nil
	default:
		return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
	}
}

// MarshalText implements encoding.TextMarshaler so directions serialize by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
