package hal

import (
	"fmt"

	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/si"
)

// Number is a type that a scalable input can carry.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// A RawInput is a hardware input as provided by a driver library.
type RawInput[T Number] interface {
	Get() T
}

// ScalableInput is a hardware input together with the scale, offset, and
// valid input range that a driver applies, and the unit of its values.
//
// A ScalableInput is a port. It is named after its channel until renamed
// and can be owned by a block.
type ScalableInput[T Number] struct {
	id     string
	name   string
	owner  naming.Named
	handle RawInput[T]
	scale  T
	offset T
	minIn  T
	maxIn  T
	unit   si.Unit
}

// NewScalableInput creates a scalable input. The unit is dimensionless until
// set.
func NewScalableInput[T Number](
	id string,
	handle RawInput[T],
	scale, offset, minIn, maxIn T,
) *ScalableInput[T] {
	return &ScalableInput[T]{
		id:     id,
		name:   id,
		handle: handle,
		scale:  scale,
		offset: offset,
		minIn:  minIn,
		maxIn:  maxIn,
		unit:   si.Dimensionless,
	}
}

// ID returns the identifier of the channel.
func (s *ScalableInput[T]) ID() string { return s.id }

// Get reads the hardware input.
func (s *ScalableInput[T]) Get() T { return s.handle.Get() }

// Scale returns the scale.
func (s *ScalableInput[T]) Scale() T { return s.scale }

// Offset returns the offset.
func (s *ScalableInput[T]) Offset() T { return s.offset }

// MinIn returns the lower bound of valid input values.
func (s *ScalableInput[T]) MinIn() T { return s.minIn }

// MaxIn returns the upper bound of valid input values.
func (s *ScalableInput[T]) MaxIn() T { return s.maxIn }

// Unit returns the unit of the values.
func (s *ScalableInput[T]) Unit() si.Unit { return s.unit }

// SetScale sets the scale.
func (s *ScalableInput[T]) SetScale(scale T) { s.scale = scale }

// SetOffset sets the offset.
func (s *ScalableInput[T]) SetOffset(offset T) { s.offset = offset }

// SetMinIn sets the lower bound of valid input values.
func (s *ScalableInput[T]) SetMinIn(minIn T) { s.minIn = minIn }

// SetMaxIn sets the upper bound of valid input values.
func (s *ScalableInput[T]) SetMaxIn(maxIn T) { s.maxIn = maxIn }

// SetUnit sets the unit of the values.
func (s *ScalableInput[T]) SetUnit(unit si.Unit) { s.unit = unit }

// Name returns the name of the port.
func (s *ScalableInput[T]) Name() string { return s.name }

// SetName renames the port.
func (s *ScalableInput[T]) SetName(name string) { s.name = name }

// Owner returns the block that owns the port.
func (s *ScalableInput[T]) Owner() naming.Named { return s.owner }

// SetOwner sets the owner. It panics if the input is already owned by
// another block.
func (s *ScalableInput[T]) SetOwner(owner naming.Named) {
	if owner == nil {
		panic("port owner must not be nil")
	}

	if s.owner != nil && s.owner != owner {
		panic(fmt.Sprintf("channel %s already owned by %s", s.id, s.owner.Name()))
	}

	s.owner = owner
}

// Reset does nothing. The value always comes from the hardware.
func (s *ScalableInput[T]) Reset() {}
