package transport

import (
	"io"
	"net"
	"time"

	"golang.org/x/net/websocket"
)

// DefaultDialTimeout is the timeout connecting network channels.
const DefaultDialTimeout = 5 * time.Second

// NewTCP creates a Stream on a TCP connection, e.g. to StandardFirmataWiFi
// or a serial-to-network bridge.
func NewTCP(addr string) *Stream {
	return NewStream("tcp:"+addr, func() (io.ReadWriteCloser, error) {
		conn, err := net.DialTimeout("tcp", addr, DefaultDialTimeout)
		if err != nil {
			return nil, err
		}
		return conn, nil
	})
}

// NewWebSocket creates a Stream on a websocket carrying binary frames.
func NewWebSocket(url, origin string) *Stream {
	return NewStream(url, func() (io.ReadWriteCloser, error) {
		conn, err := websocket.Dial(url, "", origin)
		if err != nil {
			return nil, err
		}
		conn.PayloadType = websocket.BinaryFrame
		return conn, nil
	})
}
