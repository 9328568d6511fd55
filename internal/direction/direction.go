// Package direction defines the text layout direction value type shared by
// the store, resolver, and presentation surfaces.
package direction

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is a text layout orientation.
// The string forms "ltr" and "rtl" are the serialized representation.
type Direction string

const (
	// LTR lays text out left to right.
	LTR Direction = "ltr"
	// RTL lays text out right to left.
	RTL Direction = "rtl"
)

// Default is the direction used when nothing else applies.
const Default = LTR

// ErrUnknownDirection is returned when parsing a value that is neither
// "ltr" nor "rtl".
var ErrUnknownDirection = errors.New("unknown direction")

// Parse converts a string into a Direction.
// Matching is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr":
		return LTR, nil
	case "rtl":
		return RTL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// IsValid returns true for the two recognized directions.
func (d Direction) IsValid() bool {
	return d == LTR || d == RTL
}

// String returns the serialized form.
func (d Direction) String() string {
	return string(d)
}

// Flip returns the opposite direction.
// Invalid values flip to LTR.
func (d Direction) Flip() Direction {
	if d == RTL {
		return LTR
	}
	if d == LTR {
		return RTL
	}
	return LTR
}
