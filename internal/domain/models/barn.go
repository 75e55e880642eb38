package models

import "fmt"

// Barn identifies one of the two farm sub-locations. The wire values are the
// legacy Indonesian names used by the livestock API.
type Barn string

const (
	// BarnWest is the western barn ("barat" on the wire).
	BarnWest Barn = "barat"
	// BarnEast is the eastern barn ("timur" on the wire).
	BarnEast Barn = "timur"
)

// Valid reports whether b is one of the two known barns.
func (b Barn) Valid() bool {
	return b == BarnWest || b == BarnEast
}

// ParseBarn converts a wire value into a Barn.
func ParseBarn(s string) (Barn, error) {
	b := Barn(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown barn %q", s)
	}
	return b, nil
}
