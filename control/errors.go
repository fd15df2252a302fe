package control

import "fmt"

// IndexOutOfBoundsError is returned when a port is accessed with an index
// outside of the port set.
type IndexOutOfBoundsError struct {
	Block string
	Side  string
	Index int
	Len   int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"index %d out of bounds for %s ports of length %d in block '%s'",
		e.Index, e.Side, e.Len, e.Block)
}
