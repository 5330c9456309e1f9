package feature

import (
	"errors"
	"fmt"
)

//go:generate go tool stringer -type=Value -output=value_string.go

// Value is a tri-state phonological feature value.
type Value int8

const (
	Negative   Value = -1
	Irrelevant Value = 0
	Positive   Value = 1
)

// ErrInvalidValue is returned for a feature cell outside {+, 0, -}.
var ErrInvalidValue = errors.New("invalid feature value")

// ParseValue converts a raw feature cell into a Value.
func ParseValue(s string) (Value, error) {
	switch s {
	case "+":
		return Positive, nil
	case "0":
		return Irrelevant, nil
	case "-":
		return Negative, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
}

// Symbol returns the raw cell form of the value.
func (v Value) Symbol() string {
	switch v {
	default:
		panic("feature value out of range: " + v.String())
	case Positive:
		return "+"
	case Irrelevant:
		return "0"
	case Negative:
		return "-"
	}
}

// IsValid reports whether v is one of the three defined values.
func (v Value) IsValid() bool {
	return v == Positive || v == Irrelevant || v == Negative
}
