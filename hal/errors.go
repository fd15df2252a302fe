package hal

import "errors"

// ErrUnknownKind is returned for channel kinds that are not in the channel
// tables.
var ErrUnknownKind = errors.New("unknown channel kind")

// ErrUnknownUnit is returned for unit symbols that are not in the unit table.
var ErrUnknownUnit = errors.New("unknown unit symbol")
