// Package hal describes hardware channels: the direction and logical type of
// each channel kind, the units channels can be tagged with, and inputs that
// carry a scale and an offset.
package hal

import (
	"fmt"
	"slices"

	"github.com/sarchlab/unitflow/si"
)

// Direction tells whether a channel is read from or written to.
type Direction int

// Directions.
const (
	In Direction = iota
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Type is the logical type of the values a channel carries.
type Type int

// Types.
const (
	Logic Type = iota
	Real
)

func (t Type) String() string {
	switch t {
	case Logic:
		return "logic"
	case Real:
		return "real"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Channel kinds.
const (
	DigIn     = "DigIn"
	DigOut    = "DigOut"
	AnalogIn  = "AnalogIn"
	AnalogOut = "AnalogOut"
	Pwm       = "Pwm"
	Watchdog  = "Watchdog"
	Fqd       = "Fqd"
)

var directionOfChannel = map[string]Direction{
	DigIn:     In,
	DigOut:    Out,
	AnalogOut: Out,
	AnalogIn:  In,
	Pwm:       Out,
	Watchdog:  In,
	Fqd:       In,
}

var typeOfChannel = map[string]Type{
	DigIn:     Logic,
	DigOut:    Logic,
	AnalogOut: Real,
	AnalogIn:  Real,
	Pwm:       Real,
	Watchdog:  Logic,
	Fqd:       Real,
}

var unitOfSymbol = map[string]si.Unit{
	"W":   si.Watt,
	"N":   si.Newton,
	"J":   si.Joule,
	"V":   si.Volt,
	"rad": si.Radian,
}

// DirectionOf returns the direction of a channel kind.
func DirectionOf(kind string) (Direction, bool) {
	d, ok := directionOfChannel[kind]
	return d, ok
}

// TypeOf returns the logical type of a channel kind.
func TypeOf(kind string) (Type, bool) {
	t, ok := typeOfChannel[kind]
	return t, ok
}

// UnitOf returns the unit of a unit symbol. The empty symbol means
// dimensionless.
func UnitOf(symbol string) (si.Unit, bool) {
	if symbol == "" {
		return si.Dimensionless, true
	}

	u, ok := unitOfSymbol[symbol]

	return u, ok
}

// Kinds returns all channel kinds, sorted.
func Kinds() []string {
	return sortedKeys(directionOfChannel)
}

// Symbols returns all unit symbols, sorted.
func Symbols() []string {
	return sortedKeys(unitOfSymbol)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// ChannelKind is the description of a channel kind.
type ChannelKind struct {
	Name      string
	Direction Direction
	Type      Type
}

// DescribeKind returns the description of a channel kind.
func DescribeKind(kind string) (ChannelKind, error) {
	d, ok := DirectionOf(kind)
	if !ok {
		return ChannelKind{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	t, _ := TypeOf(kind)

	return ChannelKind{Name: kind, Direction: d, Type: t}, nil
}
