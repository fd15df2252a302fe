// Package si describes physical dimensions as exponents of the seven SI base
// units.
//
// A Unit with a length exponent of 2 and a time exponent of -1 means metre
// squared divided by second. The radian flag separates angular quantities
// from plain dimensionless ones, so that an angle cannot be wired into a
// port that expects a ratio.
package si

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the dimension of a physical quantity. Units are values. Two units
// are equal when all their exponents and their radian flags are equal, so
// the == operator can be used directly.
//
// The zero value is the dimensionless unit.
type Unit struct {
	length                   int8
	mass                     int8
	time                     int8
	electricCurrent          int8
	thermodynamicTemperature int8
	amountOfSubstance        int8
	luminousIntensity        int8
	radian                   bool
}

// A Dimension sets one component of a unit that is being created.
type Dimension func(d *dimensions)

type dimensions struct {
	exponents [7]int
	radian    bool
}

const (
	lengthIdx = iota
	massIdx
	timeIdx
	currentIdx
	temperatureIdx
	amountIdx
	luminosityIdx
)

// Length sets the exponent of the metre.
func Length(exp int) Dimension {
	return func(d *dimensions) { d.exponents[lengthIdx] = exp }
}

// Mass sets the exponent of the kilogram.
func Mass(exp int) Dimension {
	return func(d *dimensions) { d.exponents[massIdx] = exp }
}

// Time sets the exponent of the second.
func Time(exp int) Dimension {
	return func(d *dimensions) { d.exponents[timeIdx] = exp }
}

// Current sets the exponent of the ampere.
func Current(exp int) Dimension {
	return func(d *dimensions) { d.exponents[currentIdx] = exp }
}

// Temperature sets the exponent of the kelvin.
func Temperature(exp int) Dimension {
	return func(d *dimensions) { d.exponents[temperatureIdx] = exp }
}

// Amount sets the exponent of the mole.
func Amount(exp int) Dimension {
	return func(d *dimensions) { d.exponents[amountIdx] = exp }
}

// Luminosity sets the exponent of the candela.
func Luminosity(exp int) Dimension {
	return func(d *dimensions) { d.exponents[luminosityIdx] = exp }
}

// Angular marks the unit as measured in radians.
func Angular() Dimension {
	return func(d *dimensions) { d.radian = true }
}

// Create is the only way to build a Unit from exponents. Dimensions that are
// not given are zero. Create panics if an exponent does not fit into the
// range of an int8.
//
// Angular units may carry base exponents, so that angular velocity (rad/s)
// and angular acceleration can be expressed.
func Create(dims ...Dimension) Unit {
	d := dimensions{}
	for _, dim := range dims {
		dim(&d)
	}

	for i, e := range d.exponents {
		if e < math.MinInt8 || e > math.MaxInt8 {
			panic(fmt.Sprintf("exponent %d of %s is out of range",
				e, baseSymbols[i]))
		}
	}

	return Unit{
		length:                   int8(d.exponents[lengthIdx]),
		mass:                     int8(d.exponents[massIdx]),
		time:                     int8(d.exponents[timeIdx]),
		electricCurrent:          int8(d.exponents[currentIdx]),
		thermodynamicTemperature: int8(d.exponents[temperatureIdx]),
		amountOfSubstance:        int8(d.exponents[amountIdx]),
		luminousIntensity:        int8(d.exponents[luminosityIdx]),
		radian:                   d.radian,
	}
}

// Length returns the exponent of the metre.
func (u Unit) Length() int { return int(u.length) }

// Mass returns the exponent of the kilogram.
func (u Unit) Mass() int { return int(u.mass) }

// Time returns the exponent of the second.
func (u Unit) Time() int { return int(u.time) }

// Current returns the exponent of the ampere.
func (u Unit) Current() int { return int(u.electricCurrent) }

// Temperature returns the exponent of the kelvin.
func (u Unit) Temperature() int { return int(u.thermodynamicTemperature) }

// Amount returns the exponent of the mole.
func (u Unit) Amount() int { return int(u.amountOfSubstance) }

// Luminosity returns the exponent of the candela.
func (u Unit) Luminosity() int { return int(u.luminousIntensity) }

// Radian returns true if the unit is measured in radians.
func (u Unit) Radian() bool { return u.radian }

// IsDimensionless returns true if all exponents are zero and the unit is not
// angular.
func (u Unit) IsDimensionless() bool {
	return u == Dimensionless
}

func (u Unit) exponents() [7]int8 {
	return [7]int8{
		u.length,
		u.mass,
		u.time,
		u.electricCurrent,
		u.thermodynamicTemperature,
		u.amountOfSubstance,
		u.luminousIntensity,
	}
}

var baseSymbols = [7]string{"m", "kg", "s", "A", "K", "mol", "cd"}

// String formats the unit as a product of base symbols, for example
// "m^2·kg·s^-3". The dimensionless unit is printed as "1".
func (u Unit) String() string {
	parts := make([]string, 0, 8)

	if u.radian {
		parts = append(parts, "rad")
	}

	for i, e := range u.exponents() {
		switch e {
		case 0:
			continue
		case 1:
			parts = append(parts, baseSymbols[i])
		default:
			parts = append(parts, baseSymbols[i]+"^"+strconv.Itoa(int(e)))
		}
	}

	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, "·")
}

// Compare orders units by their exponents in base-unit order and then by the
// radian flag, a non-angular unit sorting first. It returns -1, 0, or +1.
func Compare(a, b Unit) int {
	ea, eb := a.exponents(), b.exponents()
	for i := range ea {
		if ea[i] < eb[i] {
			return -1
		}

		if ea[i] > eb[i] {
			return 1
		}
	}

	switch {
	case a.radian == b.radian:
		return 0
	case b.radian:
		return -1
	default:
		return 1
	}
}

// Broadcast returns n copies of the given unit. It is used to tag all the
// ports of a block with the same unit.
func Broadcast(n int, u Unit) []Unit {
	units := make([]Unit, n)
	for i := range units {
		units[i] = u
	}

	return units
}

// Uniform returns n dimensionless units.
func Uniform(n int) []Unit {
	return Broadcast(n, Dimensionless)
}

// AllEqual returns true if every unit in the list is the same. Lists with
// fewer than two entries are trivially homogeneous.
func AllEqual(units []Unit) bool {
	for _, u := range units {
		if u != units[0] {
			return false
		}
	}

	return true
}
