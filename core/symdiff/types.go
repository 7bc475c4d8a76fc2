package symdiff

import (
	"errors"
	"fmt"
)

// Record is a structured value with named fields.
type Record map[string]any

var (
	// ErrMissingField is returned when a record lacks one of the key properties.
	ErrMissingField = errors.New("record is missing key property")

	// ErrUnsupportedValue is returned when a key property holds a value that has no ordering.
	ErrUnsupportedValue = errors.New("unsupported key value")

	// ErrMixedKinds is returned when a key property holds values of incompatible kinds across records.
	ErrMixedKinds = errors.New("key property holds values of mixed kinds")
)

// Side identifies the input collection a record came from.
type Side int

const (
	// SideA is the first input collection.
	SideA Side = iota
	// SideB is the second input collection.
	SideB
)

// String returns "a" or "b".
func (s Side) String() string {
	if s == SideB {
		return "b"
	}
	return "a"
}

// MarshalText encodes the side as "a" or "b".
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "a" or "b".
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "a":
		*s = SideA
	case "b":
		*s = SideB
	default:
		return fmt.Errorf("invalid side %q", text)
	}
	return nil
}

// Entry is a single member of the symmetric difference.
type Entry struct {
	// Record is the representative record for the key.
	Record Record `json:"record"`

	// Side is the input collection the record was taken from.
	Side Side `json:"side"`

	// Key is the normalized key of Record.
	Key Key `json:"-"`
}
