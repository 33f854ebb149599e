package transport

import (
	"bufio"
	"io"
	"sync"
)

// DialFunc establishes the underlying connection of a Stream.
type DialFunc func() (io.ReadWriteCloser, error)

// Stream implements Channel over a dialed io.ReadWriteCloser.
type Stream struct {
	Name string
	Dial DialFunc

	lock      sync.Mutex
	writeLock sync.Mutex
	conn      io.ReadWriteCloser
	reader    *bufio.Reader
}

// NewStream creates a Stream.
func NewStream(name string, dial DialFunc) *Stream {
	return &Stream{Name: name, Dial: dial}
}

// NewPipe creates a Stream over an existing connection. Close closes rwc.
func NewPipe(name string, rwc io.ReadWriteCloser) *Stream {
	return NewStream(name, func() (io.ReadWriteCloser, error) {
		return rwc, nil
	})
}

func (s *Stream) String() string {
	return s.Name
}

// Open implements Channel.
func (s *Stream) Open() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.conn != nil {
		return ErrAlreadyOpen
	}
	conn, err := s.Dial()
	if err != nil {
		return err
	}
	s.conn, s.reader = conn, bufio.NewReader(conn)
	return nil
}

// Close implements Channel.
func (s *Stream) Close() error {
	s.lock.Lock()
	conn := s.conn
	s.conn, s.reader = nil, nil
	s.lock.Unlock()
	if conn == nil {
		return ErrClosed
	}
	return conn.Close()
}

// IsOpen implements Channel.
func (s *Stream) IsOpen() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.conn != nil
}

// ReadByte implements Channel. Only one reader is expected.
func (s *Stream) ReadByte() (byte, error) {
	s.lock.Lock()
	reader := s.reader
	s.lock.Unlock()
	if reader == nil {
		return 0, ErrClosed
	}
	b, err := reader.ReadByte()
	if err != nil && !s.IsOpen() {
		err = ErrClosed
	}
	return b, err
}

// Write implements Channel.
func (s *Stream) Write(p []byte) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()
	s.lock.Lock()
	conn := s.conn
	s.lock.Unlock()
	if conn == nil {
		return ErrClosed
	}
	_, err := conn.Write(p)
	return err
}
