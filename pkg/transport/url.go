package transport

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const defaultOrigin = "http://localhost/"

// New creates a Stream from a URL:
//
//	/dev/ttyACM0, COM3                 serial port with baud
//	serial:///dev/ttyACM0?baud=115200  serial port
//	tcp://host:3030                    TCP
//	ws://host/path, wss://host/path    websocket, origin from ?origin=
func New(rawURL string, baud int) (*Stream, error) {
	if !strings.Contains(rawURL, "://") {
		if rawURL == "" {
			return nil, fmt.Errorf("empty channel URL")
		}
		return NewSerial(rawURL, baud), nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid channel URL: %w", err)
	}
	switch u.Scheme {
	case "serial":
		name := u.Path
		if u.Host != "" {
			name = u.Host + u.Path
		}
		if name == "" {
			return nil, fmt.Errorf("missing serial device in %q", rawURL)
		}
		if val := u.Query().Get("baud"); val != "" {
			if baud, err = strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("invalid baud %q: %w", val, err)
			}
		}
		return NewSerial(name, baud), nil
	case "tcp":
		if u.Host == "" {
			return nil, fmt.Errorf("missing host in %q", rawURL)
		}
		return NewTCP(u.Host), nil
	case "ws", "wss":
		origin := defaultOrigin
		if val := u.Query().Get("origin"); val != "" {
			origin = val
			q := u.Query()
			q.Del("origin")
			u.RawQuery = q.Encode()
		}
		return NewWebSocket(u.String(), origin), nil
	default:
		return nil, fmt.Errorf("unknown channel URL scheme: %q", u.Scheme)
	}
}
