package control

import (
	"fmt"

	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/si"
	"github.com/sarchlab/unitflow/signal"
)

// Shape identifies how the ports on one side of a block are stored.
type Shape int

// Shapes, selected by the number of ports and, for more than one port, by
// whether all ports carry the same unit.
const (
	ShapeEmpty Shape = iota
	ShapeSingle
	ShapeVector
	ShapeTuple
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeSingle:
		return "single"
	case ShapeVector:
		return "vector"
	case ShapeTuple:
		return "tuple"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// A PortSet stores the inputs or the outputs of a block. The accessors
// available depend on the concrete set: Empty has none, Single has Port,
// Vector has Get and At, and Tuple has Get only. Using an accessor that the
// shape does not provide does not compile.
//
// Port sets can only be created by this package.
type PortSet interface {
	// Len returns the number of ports in the set.
	Len() int

	// Shape returns how the ports are stored.
	Shape() Shape

	bind(owner naming.Named, side string)
	portList() []signal.Port
}

// Indexed is a port set of more than one port.
type Indexed[P signal.Port] interface {
	PortSet

	// Get returns the port at index i. It panics if i is out of range and
	// is meant to be used with constant indices.
	Get(i int) P
}

// Empty is the port set of a block side without ports.
type Empty struct{}

// None returns an empty port set.
func None() Empty {
	return Empty{}
}

// Len returns 0.
func (Empty) Len() int { return 0 }

// Shape returns ShapeEmpty.
func (Empty) Shape() Shape { return ShapeEmpty }

func (Empty) bind(naming.Named, string) {}

func (Empty) portList() []signal.Port { return nil }

// Single holds the only port of a block side.
type Single[P signal.Port] struct {
	port P
}

// NewSingle wraps a port into a port set.
func NewSingle[P signal.Port](port P) *Single[P] {
	return &Single[P]{port: port}
}

// SingleInput creates a set of one input.
func SingleInput[T any](unit si.Unit) *Single[*signal.Input[T]] {
	return NewSingle(signal.NewInput[T](unit))
}

// SingleOutput creates a set of one output.
func SingleOutput[T any](unit si.Unit) *Single[*signal.Output[T]] {
	return NewSingle(signal.NewOutput[T](unit))
}

// Port returns the port.
func (s *Single[P]) Port() P { return s.port }

// Len returns 1.
func (s *Single[P]) Len() int { return 1 }

// Shape returns ShapeSingle.
func (s *Single[P]) Shape() Shape { return ShapeSingle }

func (s *Single[P]) bind(owner naming.Named, side string) {
	s.port.SetOwner(owner)
	s.port.SetName(side)
	s.port.Reset()
}

func (s *Single[P]) portList() []signal.Port {
	return []signal.Port{s.port}
}

type multi[P signal.Port] struct {
	side  string
	owner naming.Named
	ports []P
}

func (m *multi[P]) Len() int {
	return len(m.ports)
}

func (m *multi[P]) Get(i int) P {
	if i < 0 || i >= len(m.ports) {
		panic(m.outOfBounds(i))
	}

	return m.ports[i]
}

func (m *multi[P]) outOfBounds(i int) *IndexOutOfBoundsError {
	blockName := ""
	if m.owner != nil {
		blockName = m.owner.Name()
	}

	return &IndexOutOfBoundsError{
		Block: blockName,
		Side:  m.side,
		Index: i,
		Len:   len(m.ports),
	}
}

func (m *multi[P]) bind(owner naming.Named, side string) {
	m.owner = owner
	m.side = side

	for i, p := range m.ports {
		p.SetOwner(owner)
		p.SetName(naming.JoinIndexed("", side, i))
		p.Reset()
	}
}

func (m *multi[P]) portList() []signal.Port {
	list := make([]signal.Port, len(m.ports))
	for i, p := range m.ports {
		list[i] = p
	}

	return list
}

func mustHaveMultiplePorts(n int) {
	if n < 2 {
		panic(fmt.Sprintf("a multi-port set needs at least 2 ports, got %d", n))
	}
}

// Vector holds two or more ports that all carry the same unit. Its ports can
// be accessed with an index computed at runtime.
type Vector[P signal.Port] struct {
	multi[P]
}

// NewVector creates a vector from ports. It panics if there are fewer than
// two ports or if the ports do not all carry the same unit.
func NewVector[P signal.Port](ports ...P) *Vector[P] {
	mustHaveMultiplePorts(len(ports))

	if !si.AllEqual(unitsOf(ports)) {
		panic("ports of a vector must carry the same unit, use a tuple")
	}

	return &Vector[P]{multi: multi[P]{ports: ports}}
}

// InputVector creates n inputs of the same unit.
func InputVector[T any](n int, unit si.Unit) *Vector[*signal.Input[T]] {
	ports := make([]*signal.Input[T], n)
	for i := range ports {
		ports[i] = signal.NewInput[T](unit)
	}

	return NewVector(ports...)
}

// OutputVector creates n outputs of the same unit.
func OutputVector[T any](n int, unit si.Unit) *Vector[*signal.Output[T]] {
	ports := make([]*signal.Output[T], n)
	for i := range ports {
		ports[i] = signal.NewOutput[T](unit)
	}

	return NewVector(ports...)
}

// Shape returns ShapeVector.
func (v *Vector[P]) Shape() Shape { return ShapeVector }

// At returns the port at index i. It returns an *IndexOutOfBoundsError that
// names the owning block if i is out of range.
func (v *Vector[P]) At(i int) (P, error) {
	if i < 0 || i >= len(v.ports) {
		var zero P
		return zero, v.outOfBounds(i)
	}

	return v.ports[i], nil
}

// Tuple holds two or more ports that do not all carry the same unit. Its
// ports can only be accessed with constant indices.
type Tuple[P signal.Port] struct {
	multi[P]
}

// NewTuple creates a tuple from ports. It panics if there are fewer than two
// ports or if all the ports carry the same unit.
func NewTuple[P signal.Port](ports ...P) *Tuple[P] {
	mustHaveMultiplePorts(len(ports))

	if si.AllEqual(unitsOf(ports)) {
		panic("ports of a tuple must not all carry the same unit, use a vector")
	}

	return &Tuple[P]{multi: multi[P]{ports: ports}}
}

// InputTuple creates one input per unit.
func InputTuple[T any](units ...si.Unit) *Tuple[*signal.Input[T]] {
	ports := make([]*signal.Input[T], len(units))
	for i, u := range units {
		ports[i] = signal.NewInput[T](u)
	}

	return NewTuple(ports...)
}

// OutputTuple creates one output per unit.
func OutputTuple[T any](units ...si.Unit) *Tuple[*signal.Output[T]] {
	ports := make([]*signal.Output[T], len(units))
	for i, u := range units {
		ports[i] = signal.NewOutput[T](u)
	}

	return NewTuple(ports...)
}

// Shape returns ShapeTuple.
func (t *Tuple[P]) Shape() Shape { return ShapeTuple }

// Inputs creates one input per unit, stored as a vector if all the units are
// equal and as a tuple otherwise.
func Inputs[T any](units ...si.Unit) Indexed[*signal.Input[T]] {
	mustHaveMultiplePorts(len(units))

	if si.AllEqual(units) {
		return InputVector[T](len(units), units[0])
	}

	return InputTuple[T](units...)
}

// Outputs creates one output per unit, stored as a vector if all the units
// are equal and as a tuple otherwise.
func Outputs[T any](units ...si.Unit) Indexed[*signal.Output[T]] {
	mustHaveMultiplePorts(len(units))

	if si.AllEqual(units) {
		return OutputVector[T](len(units), units[0])
	}

	return OutputTuple[T](units...)
}

// AsVector returns the set as a vector if its ports all carry the same
// unit.
func AsVector[P signal.Port](set Indexed[P]) (*Vector[P], bool) {
	v, ok := set.(*Vector[P])
	return v, ok
}

func unitsOf[P signal.Port](ports []P) []si.Unit {
	units := make([]si.Unit, len(ports))
	for i, p := range ports {
		units[i] = p.Unit()
	}

	return units
}
