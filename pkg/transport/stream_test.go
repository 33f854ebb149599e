package transport

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamReadWrite(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	s := NewPipe("pipe", local)
	require.False(t, s.IsOpen())
	require.NoError(t, s.Open())
	require.True(t, s.IsOpen())
	require.Equal(t, ErrAlreadyOpen, s.Open())

	go func() {
		remote.Write([]byte{0x90, 0x01, 0x00})
	}()
	for _, expected := range []byte{0x90, 0x01, 0x00} {
		b, err := s.ReadByte()
		require.NoError(t, err)
		require.Equal(t, expected, b)
	}

	recvCh := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 3)
		n, _ := remote.Read(buf)
		recvCh <- buf[:n]
	}()
	require.NoError(t, s.Write([]byte{0xf5, 0x0d, 0x01}))
	require.Equal(t, []byte{0xf5, 0x0d, 0x01}, <-recvCh)
}

func TestStreamCloseUnblocksRead(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	s := NewPipe("pipe", local)
	require.NoError(t, s.Open())

	errCh := make(chan error, 1)
	go func() {
		_, err := s.ReadByte()
		errCh <- err
	}()
	require.NoError(t, s.Close())
	require.Equal(t, ErrClosed, <-errCh)
	require.False(t, s.IsOpen())
	require.Equal(t, ErrClosed, s.Close())
	require.Equal(t, ErrClosed, s.Write([]byte{0}))
	_, err := s.ReadByte()
	require.Equal(t, ErrClosed, err)
}

func TestTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 2)
		if _, err := conn.Read(buf); err == nil {
			conn.Write(buf)
		}
	}()

	s := NewTCP(ln.Addr().String())
	require.NoError(t, s.Open())
	defer s.Close()
	require.NoError(t, s.Write([]byte{0xd1, 0x01}))
	for _, expected := range []byte{0xd1, 0x01} {
		b, err := s.ReadByte()
		require.NoError(t, err)
		require.Equal(t, expected, b)
	}
}

func TestNew(t *testing.T) {
	testCases := []struct {
		url  string
		name string
	}{
		{"/dev/ttyACM0", "serial:/dev/ttyACM0"},
		{"COM3", "serial:COM3"},
		{"serial:///dev/ttyUSB1?baud=115200", "serial:/dev/ttyUSB1"},
		{"serial://COM4", "serial:COM4"},
		{"tcp://192.168.1.20:3030", "tcp:192.168.1.20:3030"},
		{"ws://localhost:8080/firmata", "ws://localhost:8080/firmata"},
		{"wss://host/fw?origin=http://host/", "wss://host/fw"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			s, err := New(tc.url, 0)
			require.NoError(t, err)
			require.Equal(t, tc.name, s.Name)
			require.False(t, s.IsOpen())
		})
	}
}

func TestNewInvalid(t *testing.T) {
	for _, u := range []string{"", "http://host", "tcp://", "serial://", "serial:///dev/tty?baud=fast"} {
		t.Run(u, func(t *testing.T) {
			_, err := New(u, 0)
			require.Error(t, err)
		})
	}
}
