package control

import (
	"fmt"

	"github.com/sarchlab/unitflow/si"
	"github.com/sarchlab/unitflow/signal"
)

// Number is a type that supports multiplication.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Mul multiplies two inputs into one output. The output takes the timestamp
// of the first input.
type Mul[T Number] struct {
	noCopy noCopy
	*Blockio[Empty, *Single[*signal.Output[T]]]

	in1 *signal.Input[T]
	in2 *signal.Input[T]
}

// In1 returns the first factor.
func (m *Mul[T]) In1() *signal.Input[T] {
	return m.in1
}

// In2 returns the second factor.
func (m *Mul[T]) In2() *signal.Input[T] {
	return m.in2
}

// Run sets the output to the product of the inputs.
func (m *Mul[T]) Run() {
	a := m.in1.Signal()
	b := m.in2.Signal()

	m.Out().Port().Signal().Set(a.Value()*b.Value(), a.Timestamp())
}

// Inputs returns the two factors.
func (m *Mul[T]) Inputs() []signal.Port {
	return []signal.Port{m.in1, m.in2}
}

func (m *Mul[T]) String() string {
	return fmt.Sprintf("Block multiplier: '%s'", m.Name())
}

// MulBuilder builds multipliers.
type MulBuilder[T Number] struct {
	in1Unit si.Unit
	in2Unit si.Unit
	outUnit si.Unit
}

// MakeMulBuilder returns a builder of multipliers whose ports are all
// dimensionless.
func MakeMulBuilder[T Number]() MulBuilder[T] {
	return MulBuilder[T]{
		in1Unit: si.Dimensionless,
		in2Unit: si.Dimensionless,
		outUnit: si.Dimensionless,
	}
}

// WithInputUnits sets the units of the two inputs.
func (b MulBuilder[T]) WithInputUnits(in1, in2 si.Unit) MulBuilder[T] {
	b.in1Unit = in1
	b.in2Unit = in2
	return b
}

// WithOutputUnit sets the unit of the output.
func (b MulBuilder[T]) WithOutputUnit(u si.Unit) MulBuilder[T] {
	b.outUnit = u
	return b
}

// Build creates a multiplier.
func (b MulBuilder[T]) Build(name string) *Mul[T] {
	m := &Mul[T]{
		in1: signal.NewInput[T](b.in1Unit),
		in2: signal.NewInput[T](b.in2Unit),
	}
	m.Blockio = New(name, None(), SingleOutput[T](b.outUnit), WithOwner(m))

	m.in1.SetOwner(m)
	m.in1.SetName("In1")
	m.in2.SetOwner(m)
	m.in2.SetName("In2")

	return m
}
