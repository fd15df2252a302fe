// Package control provides the blocks that control algorithms are built
// from.
//
// A block owns typed input and output ports. Every port is tagged with a
// physical unit, and connecting ports of different units fails. Blocks are
// run once per cycle by the scheduler of their time domain.
package control

import (
	"github.com/sarchlab/unitflow/core"
	"github.com/sarchlab/unitflow/id"
	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/signal"
)

// A Block is a named unit of a control algorithm.
type Block interface {
	core.NamedRunnable

	// ID returns the identifier generated for the block when it was created.
	ID() string
}

// A PortLister exposes the ports of a block to observers.
type PortLister interface {
	Inputs() []signal.Port
	Outputs() []signal.Port
}

// BlockBase provides the name and the ID of a block.
type BlockBase struct {
	name string
	id   string
}

// MakeBlockBase creates a BlockBase. It panics if the name does not follow
// the naming convention.
func MakeBlockBase(name string) BlockBase {
	naming.MustBeValid(name)

	return BlockBase{
		name: name,
		id:   id.Generate(),
	}
}

// Name returns the name of the block.
func (b *BlockBase) Name() string {
	return b.name
}

// ID returns the identifier of the block.
func (b *BlockBase) ID() string {
	return b.id
}

// noCopy may be embedded into structs which must not be copied after first
// use. The ports of a block refer back to it, so a copy would leave them
// pointing to the original.
//
// See https://golang.org/issues/8005#issuecomment-190753527 for details.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
