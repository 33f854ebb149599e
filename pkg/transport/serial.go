package transport

import (
	"io"

	"go.bug.st/serial"
)

// DefaultBaud is the baud rate of StandardFirmata.
const DefaultBaud = 57600

// NewSerial creates a Stream on a serial port, 8N1.
func NewSerial(name string, baud int) *Stream {
	if baud <= 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	return NewStream("serial:"+name, func() (io.ReadWriteCloser, error) {
		port, err := serial.Open(name, mode)
		if err != nil {
			return nil, err
		}
		return port, nil
	})
}
