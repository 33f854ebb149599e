package firmata

import (
	"fmt"
	"strings"
)

// Pin counts.
const (
	DigitalPins = 64
	AnalogPins  = 16
	// PinsPerPort is the number of digital pins in a port.
	PinsPerPort = 8
	// MaxAnalogValue is the largest value carried in two 7-bit bytes.
	MaxAnalogValue = 0x3fff
)

// PinKind is the class of a pin index.
type PinKind int

// Pin kinds.
const (
	KindDigital PinKind = iota
	KindAnalog
)

func (k PinKind) String() string {
	if k == KindAnalog {
		return "analog"
	}
	return "digital"
}

// Limit returns the number of pins of the kind.
func (k PinKind) Limit() int {
	if k == KindAnalog {
		return AnalogPins
	}
	return DigitalPins
}

// Check validates pin against the range of the kind.
func (k PinKind) Check(pin int) error {
	if pin < 0 || pin >= k.Limit() {
		return &PinRangeError{Pin: pin, Kind: k}
	}
	return nil
}

// PinMode is the mode a pin is configured to.
type PinMode byte

// Pin modes, values are the wire codes.
const (
	Input  PinMode = 0x00
	Output PinMode = 0x01
	Analog PinMode = 0x02
	PwmOut PinMode = 0x03
	Servo  PinMode = 0x04
)

var pinModeNames = map[PinMode]string{
	Input:  "input",
	Output: "output",
	Analog: "analog",
	PwmOut: "pwm",
	Servo:  "servo",
}

func (m PinMode) String() string {
	if name, ok := pinModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", byte(m))
}

// IsValid indicates m is a known mode.
func (m PinMode) IsValid() bool {
	_, ok := pinModeNames[m]
	return ok
}

// ParsePinMode parses the name of a mode (case insensitive).
func ParsePinMode(s string) (PinMode, error) {
	s = strings.ToLower(s)
	for mode, name := range pinModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown pin mode %q", s)
}

// PinState is the level of a digital pin.
type PinState byte

// Pin states.
const (
	Low  PinState = 0
	High PinState = 1
)

// PinStateOf converts the lowest bit of v.
func PinStateOf(v int) PinState {
	return PinState(v & 1)
}

// Bit returns 0 or 1.
func (s PinState) Bit() byte {
	return byte(s) & 1
}

// Int returns 0 or 1.
func (s PinState) Int() int {
	return int(s.Bit())
}

func (s PinState) String() string {
	if s.Bit() != 0 {
		return "high"
	}
	return "low"
}

// AnalogValue is a 14-bit unsigned value.
type AnalogValue uint16
