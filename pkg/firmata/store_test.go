package firmata

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPinStoreDefaults(t *testing.T) {
	s := NewPinStore()
	for pin := 0; pin < DigitalPins; pin++ {
		st, err := s.Digital(pin)
		require.NoError(t, err)
		require.Equal(t, Low, st)
	}
	for pin := 0; pin < AnalogPins; pin++ {
		v, err := s.Analog(pin)
		require.NoError(t, err)
		require.Equal(t, AnalogValue(0), v)
	}
	_, err := s.Digital(64)
	require.IsType(t, &PinRangeError{}, err)
	_, err = s.Analog(16)
	require.IsType(t, &PinRangeError{}, err)
}

func TestPinStoreApply(t *testing.T) {
	s := NewPinStore()
	require.True(t, s.apply(ParseResult{Kind: FrameDigital, Port: 1, Value: 1}))
	for pin := 8; pin < 16; pin++ {
		st, err := s.Digital(pin)
		require.NoError(t, err)
		if pin == 8 {
			require.Equal(t, High, st)
		} else {
			require.Equal(t, Low, st, "pin %d", pin)
		}
	}

	require.True(t, s.apply(ParseResult{Kind: FrameDigital, Port: 7, Value: 0x80}))
	st, err := s.Digital(63)
	require.NoError(t, err)
	require.Equal(t, High, st)

	require.True(t, s.apply(ParseResult{Kind: FrameAnalog, Pin: 0x45, Value: 511}))
	v, err := s.Analog(5)
	require.NoError(t, err)
	require.Equal(t, AnalogValue(511), v)

	require.False(t, s.apply(ParseResult{Kind: FrameDigital, Port: 8, Value: 0xff}))
	require.False(t, s.apply(ParseResult{Kind: FrameAnalog, Pin: 0x3f, Value: 1}))
	require.False(t, s.apply(ParseResult{Kind: FrameSysex, Sysex: &Sysex{}}))

	snap := s.Snapshot()
	require.Equal(t, High, snap.Digital[8])
	require.Equal(t, High, snap.Digital[63])
	require.Equal(t, Low, snap.Digital[9])
	require.Equal(t, AnalogValue(511), snap.Analog[5])
}

func TestPinStoreConcurrentReaders(t *testing.T) {
	s := NewPinStore()
	var wg sync.WaitGroup
	stopCh := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stopCh:
					return
				default:
				}
				v, err := s.Analog(0)
				if err != nil || v > MaxAnalogValue {
					t.Errorf("unexpected analog read %d: %v", v, err)
					return
				}
				s.Snapshot()
			}
		}()
	}
	for v := 0; v <= MaxAnalogValue; v += 7 {
		s.setAnalog(0, AnalogValue(v))
		s.setDigitalPort(0, ParseResult{Value: v}.PinStates())
	}
	close(stopCh)
	wg.Wait()
}
