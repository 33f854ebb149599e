package firmata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitConcat7Bit(t *testing.T) {
	for v := 0; v <= MaxAnalogValue; v++ {
		low, high := Split7Bit(v)
		require.True(t, low < 0x80 && high < 0x80, "value %d", v)
		require.Equal(t, v, Concat7Bit(low, high))
	}
}

func TestSplit7BitTruncates(t *testing.T) {
	low, high := Split7Bit(MaxAnalogValue + 1 + 511)
	require.Equal(t, 511, Concat7Bit(low, high))
}

func TestPortOf(t *testing.T) {
	last := 0
	for pin := 0; pin < DigitalPins; pin++ {
		port := PortOf(pin)
		require.Equal(t, pin/8, port)
		require.True(t, port >= last)
		last = port
	}
	require.Equal(t, 7, last)
}

func TestAnalogReportPin(t *testing.T) {
	require.Equal(t, 0x40, AnalogReportPin(0xe0))
	require.Equal(t, 0x45, AnalogReportPin(0xe5))
	require.Equal(t, 0x4f, AnalogReportPin(0xef))
}

func TestPinState(t *testing.T) {
	var s PinState
	require.Equal(t, Low, s)
	require.Equal(t, High, PinStateOf(1))
	require.Equal(t, Low, PinStateOf(2))
	require.Equal(t, High, PinStateOf(0x81))
	require.Equal(t, byte(1), High.Bit())
	require.Equal(t, 0, Low.Int())
	require.Equal(t, "high", High.String())
	require.Equal(t, "low", Low.String())
}

func TestPinMode(t *testing.T) {
	for _, mode := range []PinMode{Input, Output, Analog, PwmOut, Servo} {
		parsed, err := ParsePinMode(mode.String())
		require.NoError(t, err)
		require.Equal(t, mode, parsed)
		require.True(t, mode.IsValid())
	}
	m, err := ParsePinMode("PWM")
	require.NoError(t, err)
	require.Equal(t, PwmOut, m)
	_, err = ParsePinMode("i2c")
	require.Error(t, err)
	require.False(t, PinMode(6).IsValid())
	require.Equal(t, "mode(6)", PinMode(6).String())
}

func TestPinKindCheck(t *testing.T) {
	require.NoError(t, KindDigital.Check(0))
	require.NoError(t, KindDigital.Check(63))
	require.NoError(t, KindAnalog.Check(15))
	for _, tc := range []struct {
		kind PinKind
		pin  int
	}{{KindDigital, 64}, {KindDigital, -1}, {KindAnalog, 16}, {KindAnalog, -1}} {
		err := tc.kind.Check(tc.pin)
		require.Error(t, err)
		rangeErr, ok := err.(*PinRangeError)
		require.True(t, ok)
		require.Equal(t, tc.pin, rangeErr.Pin)
		require.Equal(t, tc.kind, rangeErr.Kind)
	}
}
