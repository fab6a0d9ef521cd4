package pma

import (
	"errors"
	"fmt"
	"strings"
)

// Direction selects which way an image is converted.
type Direction int

const (
	// ToPma converts straight alpha images to premultiplied alpha.
	ToPma Direction = iota
	// FromPma converts premultiplied alpha images to straight alpha.
	FromPma
)

// ErrInvalidDirection is returned by ParseDirection for unknown names.
var ErrInvalidDirection = errors.New("invalid conversion direction")

func (d Direction) String() string {
	switch d {
	case ToPma:
		return "ToPma"
	case FromPma:
		return "FromPma"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == ToPma || d == FromPma
}

// Describe returns a sentence explaining what the direction does to an image.
func (d Direction) Describe() string {
	switch d {
	case ToPma:
		return "Images will be changed from non-premultiplied alpha to premultiplied alpha."
	case FromPma:
		return "Images will be changed from premultiplied alpha to non-premultiplied alpha."
	default:
		return "Images will be left unchanged."
	}
}

// ParseDirection accepts "ToPma" or "FromPma" in any letter case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "topma":
		return ToPma, nil
	case "frompma":
		return FromPma, nil
	default:
		return ToPma, fmt.Errorf("%w %q (use 'ToPma' or 'FromPma')", ErrInvalidDirection, s)
	}
}
