package domain

import (
	"fmt"
	"strings"
)

// Direction is a head movement.
type Direction int

const (
	Left Direction = iota
	Right
	Stay
)

// String returns the short form used in transition labels: L, R or N.
func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Stay:
		return "N"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts L/R/N (and S, or the long names) case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	case "n", "s", "no", "stay", "none":
		return Stay, nil
	}
	return Stay, fmt.Errorf("invalid direction %q (expected L, R or N)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	dir, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}
