package signal

import (
	"fmt"

	"github.com/sarchlab/unitflow/si"
)

// UnitMismatchError is returned when an input is connected to an output that
// carries a different unit.
type UnitMismatchError struct {
	Input      string
	Output     string
	InputUnit  si.Unit
	OutputUnit si.Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("cannot connect output %s [%s] to input %s [%s]",
		e.Output, e.OutputUnit, e.Input, e.InputUnit)
}
