package control

import (
	"fmt"

	"github.com/sarchlab/unitflow/si"
	"github.com/sarchlab/unitflow/signal"
)

// DeMux splits an input vector into individual outputs. Output i receives
// element i of the input together with the timestamp of the input.
//
// The input must hold at least as many elements as there are outputs.
type DeMux[T any] struct {
	noCopy noCopy
	*Blockio[*Single[*signal.Input[[]T]], Indexed[*signal.Output[T]]]
}

// Run copies every element of the input vector to its output.
func (d *DeMux[T]) Run() {
	in := d.In().Port().Signal()
	values := in.Value()
	ts := in.Timestamp()

	out := d.Out()
	for i := 0; i < out.Len(); i++ {
		out.Get(i).Signal().Set(values[i], ts)
	}
}

// OutVector returns the outputs as a vector if they all carry the same unit.
// Only vectors support runtime indexed access with At.
func (d *DeMux[T]) OutVector() (*Vector[*signal.Output[T]], bool) {
	return AsVector(d.Out())
}

func (d *DeMux[T]) String() string {
	return fmt.Sprintf("Block demultiplexer: '%s'", d.Name())
}

// DeMuxBuilder builds demultiplexers.
type DeMuxBuilder[T any] struct {
	inUnit   si.Unit
	outUnits []si.Unit
}

// MakeDeMuxBuilder returns a builder of demultiplexers with n dimensionless
// outputs and a dimensionless input.
func MakeDeMuxBuilder[T any](n int) DeMuxBuilder[T] {
	return DeMuxBuilder[T]{
		inUnit:   si.Dimensionless,
		outUnits: si.Uniform(n),
	}
}

// WithInputUnit sets the unit of the input vector.
func (b DeMuxBuilder[T]) WithInputUnit(u si.Unit) DeMuxBuilder[T] {
	b.inUnit = u
	return b
}

// WithOutputUnits sets the unit of every output. The number of units is the
// number of outputs.
func (b DeMuxBuilder[T]) WithOutputUnits(units ...si.Unit) DeMuxBuilder[T] {
	b.outUnits = append([]si.Unit(nil), units...)
	return b
}

// Build creates a demultiplexer. It panics if it has fewer than two outputs.
func (b DeMuxBuilder[T]) Build(name string) *DeMux[T] {
	d := &DeMux[T]{}
	d.Blockio = New(name,
		SingleInput[[]T](b.inUnit),
		Outputs[T](b.outUnits...),
		WithOwner(d),
	)

	return d
}
