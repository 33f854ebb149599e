// Package transport provides byte channels carrying the Firmata protocol.
package transport

import "errors"

// Channel is a blocking, ordered, full-duplex byte channel.
type Channel interface {
	// Open opens the channel.
	Open() error
	// Close closes the channel, a blocked ReadByte returns with error.
	Close() error
	// IsOpen indicates the channel is open.
	IsOpen() bool
	// ReadByte blocks until one byte is available or the channel is closed.
	ReadByte() (byte, error)
	// Write writes all bytes, atomically with respect to other Write calls.
	Write([]byte) error
}

var (
	// ErrClosed indicates the channel is not open.
	ErrClosed = errors.New("channel closed")
	// ErrAlreadyOpen indicates Open is called on an open channel.
	ErrAlreadyOpen = errors.New("channel already open")
)
