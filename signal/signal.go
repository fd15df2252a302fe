// Package signal provides timestamped values and the ports that carry them
// between blocks.
package signal

// Timestamp is the time, in nanoseconds, at which a value was produced.
type Timestamp uint64

// Signal is a value together with the time it was produced.
type Signal[T any] struct {
	value     T
	timestamp Timestamp
}

// Value returns the value of the signal.
func (s Signal[T]) Value() T {
	return s.value
}

// Timestamp returns the time at which the value was produced.
func (s Signal[T]) Timestamp() Timestamp {
	return s.timestamp
}

// SetValue replaces the value, keeping the timestamp.
func (s *Signal[T]) SetValue(v T) {
	s.value = v
}

// SetTimestamp replaces the timestamp, keeping the value.
func (s *Signal[T]) SetTimestamp(ts Timestamp) {
	s.timestamp = ts
}

// Set replaces both the value and the timestamp.
func (s *Signal[T]) Set(v T, ts Timestamp) {
	s.value = v
	s.timestamp = ts
}

// Clear resets the signal to the zero value at timestamp 0.
func (s *Signal[T]) Clear() {
	var zero T

	s.value = zero
	s.timestamp = 0
}
