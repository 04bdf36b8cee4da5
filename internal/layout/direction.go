package layout

import "fmt"

// Direction selects which way panes cycle through their slots.
type Direction int

const (
	// Clockwise moves every pane to the next slot in enumeration order;
	// the pane in the last slot wraps to the first.
	Clockwise Direction = iota
	// CounterClockwise is the inverse: every pane moves to the previous
	// slot, and the first wraps to the last.
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return "Unknown"
	}
}

// ParseDirection converts a config value to a Direction. Matching is
// case-sensitive and there is no default: anything other than the two
// exact values is a configuration error for the caller to surface at
// load time.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "Clockwise":
		return Clockwise, nil
	case "CounterClockwise":
		return CounterClockwise, nil
	default:
		return Clockwise, fmt.Errorf("unknown rotation direction %q (want Clockwise or CounterClockwise)", s)
	}
}
