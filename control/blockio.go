package control

import (
	"fmt"

	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/signal"
)

// Blockio is a block with a fixed set of inputs and outputs.
//
// The algorithm of a Blockio can be given when the block is created. This is
// convenient for simple algorithms, such as scaling and offsetting a signal,
// that would otherwise need several blocks:
//
//	in := control.SingleInput[float64](si.Volt)
//	out := control.SingleOutput[float64](si.Volt)
//	scale := control.New("Scale", in, out, control.WithAlgorithm(func() {
//		s := in.Port().Signal()
//		out.Port().Signal().Set(s.Value()*2+0.5, s.Timestamp())
//	}))
//
// Blocks with more involved algorithms embed a *Blockio and define their own
// Run method instead. They pass themselves with WithOwner, so that the owner
// of every port is the block that runs.
//
// A Blockio must not be copied after creation.
type Blockio[I, O PortSet] struct {
	noCopy noCopy
	BlockBase

	in        I
	out       O
	algorithm func()
}

// Option configures a Blockio.
type Option func(c *blockioConfig)

type blockioConfig struct {
	algorithm func()
	owner     naming.Named
}

// WithAlgorithm sets the function that is called every time the block runs.
func WithAlgorithm(f func()) Option {
	return func(c *blockioConfig) {
		c.algorithm = f
	}
}

// WithOwner sets the block that owns the ports. It is the derived block that
// embeds the Blockio. The owner must not be used before New returns.
func WithOwner(owner naming.Named) Option {
	return func(c *blockioConfig) {
		c.owner = owner
	}
}

// New creates a Blockio that owns the given inputs and outputs. Every port
// is made owned by the new block, or by the block given with WithOwner, and
// every output signal is cleared. Without an algorithm, running the block
// does nothing.
func New[I, O PortSet](name string, in I, out O, opts ...Option) *Blockio[I, O] {
	c := blockioConfig{algorithm: func() {}}
	for _, o := range opts {
		o(&c)
	}

	b := &Blockio[I, O]{
		BlockBase: MakeBlockBase(name),
		in:        in,
		out:       out,
		algorithm: c.algorithm,
	}

	var owner naming.Named = b
	if c.owner != nil {
		owner = c.owner
	}

	b.out.bind(owner, "Out")
	b.in.bind(owner, "In")

	return b
}

// Run runs the algorithm of the block.
func (b *Blockio[I, O]) Run() {
	b.algorithm()
}

// In returns the inputs of the block.
func (b *Blockio[I, O]) In() I {
	return b.in
}

// Out returns the outputs of the block.
func (b *Blockio[I, O]) Out() O {
	return b.out
}

// Inputs returns all the inputs in index order.
func (b *Blockio[I, O]) Inputs() []signal.Port {
	return b.in.portList()
}

// Outputs returns all the outputs in index order.
func (b *Blockio[I, O]) Outputs() []signal.Port {
	return b.out.portList()
}

func (b *Blockio[I, O]) String() string {
	return fmt.Sprintf("Generic block: '%s'", b.Name())
}
