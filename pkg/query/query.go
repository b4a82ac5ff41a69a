// Package query provides the pure query functions over statutes: effective
// penalty selection, severity, filtering by name, sorting by severity and
// similarity by penalty proximity.
//
// Every function is side-effect free and returns new slices; inputs are never
// reordered in place.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultTolerance is the severity distance, in years, within which two
// statutes are considered similar.
const DefaultTolerance = 2

// ErrInvalidDirection is returned when a sort direction string is not recognised.
var ErrInvalidDirection = errors.New("invalid sort direction")

// Direction is the order in which statutes are sorted by severity.
type Direction string

const (
	// Descending puts the highest severity first.
	Descending Direction = "desc"
	// Ascending puts the lowest severity first.
	Ascending Direction = "asc"
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending" in any case.
// An empty string yields Descending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	default:
		return "", fmt.Errorf("%w: %q (expected asc or desc)", ErrInvalidDirection, value)
	}
}
