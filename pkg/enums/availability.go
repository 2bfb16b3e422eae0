package enums

import (
	"fmt"
	"strings"
)

// Availability describes whether a book can currently be ordered.
type Availability string

const (
	AvailabilityAvailable    Availability = "Available"
	AvailabilityComing       Availability = "Coming"
	AvailabilityDiscontinued Availability = "Discontinued"
)

// validAvailabilities is the declared order; sorting by availability follows it.
var validAvailabilities = []Availability{
	AvailabilityAvailable,
	AvailabilityComing,
	AvailabilityDiscontinued,
}

// Availabilities returns the values in declared order.
func Availabilities() []Availability {
	out := make([]Availability, len(validAvailabilities))
	copy(out, validAvailabilities)
	return out
}

// String implements fmt.Stringer.
func (a Availability) String() string {
	return string(a)
}

// IsValid reports whether the value is a known Availability.
func (a Availability) IsValid() bool {
	return a.Rank() >= 0
}

// Rank returns the position of the value in declared order, or -1 when unknown.
func (a Availability) Rank() int {
	for i, candidate := range validAvailabilities {
		if candidate == a {
			return i
		}
	}
	return -1
}

// ParseAvailability converts raw input into an Availability, ignoring case.
func ParseAvailability(value string) (Availability, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validAvailabilities {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability %q", value)
}
