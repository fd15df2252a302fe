package signal

import (
	"fmt"

	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/si"
)

// A Port is a connection point of a block. It is tagged with the unit of the
// values it carries and refers back to the block that owns it.
type Port interface {
	naming.Named

	// SetName sets the name of the port, relative to its owner.
	SetName(name string)

	// Unit returns the unit of the values carried by the port.
	Unit() si.Unit

	// Owner returns the block that owns the port, or nil if the port has
	// no owner yet.
	Owner() naming.Named

	// SetOwner sets the owner of the port. An owner can only be set once.
	SetOwner(owner naming.Named)

	// Reset brings the port to its initial state.
	Reset()
}

// A Sampler exposes the current signal of a port to observers that do not
// know its value type.
type Sampler interface {
	Port
	Sample() (value any, ts Timestamp)
}

// FullName returns the name of the port prefixed with the name of its
// owner.
func FullName(p Port) string {
	if p.Owner() == nil {
		return p.Name()
	}

	return naming.Join(p.Owner().Name(), p.Name())
}

type portBase struct {
	name  string
	unit  si.Unit
	owner naming.Named
}

func (p *portBase) Name() string {
	return p.name
}

func (p *portBase) SetName(name string) {
	p.name = name
}

func (p *portBase) Unit() si.Unit {
	return p.unit
}

func (p *portBase) Owner() naming.Named {
	return p.owner
}

// SetOwner panics if the port already belongs to another owner.
func (p *portBase) SetOwner(owner naming.Named) {
	if owner == nil {
		panic("port owner must not be nil")
	}

	if p.owner != nil && p.owner != owner {
		panic(fmt.Sprintf("port %s already owned by %s, cannot move to %s",
			p.name, p.owner.Name(), owner.Name()))
	}

	p.owner = owner
}

// Output is a port that owns a signal. The owning block writes the signal
// and connected inputs read it.
type Output[T any] struct {
	portBase

	signal Signal[T]
}

// NewOutput creates an output carrying values of the given unit.
func NewOutput[T any](unit si.Unit) *Output[T] {
	return &Output[T]{portBase: portBase{unit: unit}}
}

// Signal returns the signal owned by the output.
func (o *Output[T]) Signal() *Signal[T] {
	return &o.signal
}

// Reset clears the signal.
func (o *Output[T]) Reset() {
	o.signal.Clear()
}

// Sample returns the current value and timestamp.
func (o *Output[T]) Sample() (any, Timestamp) {
	return o.signal.value, o.signal.timestamp
}

// Input is a port that reads the signal of the output it is connected to.
type Input[T any] struct {
	portBase

	source *Output[T]
}

// NewInput creates an input accepting values of the given unit.
func NewInput[T any](unit si.Unit) *Input[T] {
	return &Input[T]{portBase: portBase{unit: unit}}
}

// Connect makes the input read the signal of the given output. The output
// must carry the same unit as the input. Connect panics if the input is
// already connected.
func (i *Input[T]) Connect(out *Output[T]) error {
	if i.source != nil {
		panic(fmt.Sprintf("input %s is already connected to %s",
			FullName(i), FullName(i.source)))
	}

	if out.Unit() != i.Unit() {
		return &UnitMismatchError{
			Input:      FullName(i),
			Output:     FullName(out),
			InputUnit:  i.Unit(),
			OutputUnit: out.Unit(),
		}
	}

	i.source = out

	return nil
}

// IsConnected returns true if the input reads from an output.
func (i *Input[T]) IsConnected() bool {
	return i.source != nil
}

// Source returns the output the input is connected to.
func (i *Input[T]) Source() *Output[T] {
	return i.source
}

// Signal returns a copy of the signal of the connected output. An input that
// has been connected but never driven reads the cleared signal of its
// source. Signal panics if the input is not connected.
func (i *Input[T]) Signal() Signal[T] {
	if i.source == nil {
		panic(fmt.Sprintf("input %s is not connected", FullName(i)))
	}

	return i.source.signal
}

// Reset does nothing. Inputs do not hold a signal of their own.
func (i *Input[T]) Reset() {}
