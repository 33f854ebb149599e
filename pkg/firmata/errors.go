package firmata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected indicates the operation requires an open connection.
	ErrNotConnected = errors.New("not connected")
	// ErrAlreadyConnected indicates Connect is called on a running board.
	ErrAlreadyConnected = errors.New("already connected")
)

// PinRangeError indicates a pin index outside the range of its kind.
type PinRangeError struct {
	Pin  int
	Kind PinKind
}

// Error implements error.
func (e *PinRangeError) Error() string {
	return fmt.Sprintf("%s pin %d out of range [0, %d)", e.Kind, e.Pin, e.Kind.Limit())
}

// DecodeAbort indicates the channel ended in the middle of a frame.
// Byte alignment is lost and a new connection is required.
type DecodeAbort struct {
	State DecodeState
	Err   error
}

// Error implements error.
func (e *DecodeAbort) Error() string {
	return fmt.Sprintf("decode aborted %s: %v", e.State, e.Err)
}

// Unwrap returns the channel error.
func (e *DecodeAbort) Unwrap() error {
	return e.Err
}
