package firmata

// Command bytes.
const (
	cmdDigitalReport byte = 0x90 // inbound, + port
	cmdAnalogMessage byte = 0xe0 // + pin
	cmdReportAnalog  byte = 0xc0 // + pin
	cmdReportDigital byte = 0xd0 // + port
	cmdSetPinMode    byte = 0xf4
	cmdSetDigitalPin byte = 0xf5
	cmdStartSysex    byte = 0xf0
	cmdEndSysex      byte = 0xf7
)

// Frame is an encoded command ready for writing.
type Frame []byte

// EncodePinMode encodes a set pin mode command. Input and Analog modes are
// followed by a frame enabling reporting for the pin, as the device doesn't
// report pins without it.
func EncodePinMode(pin int, mode PinMode) ([]Frame, error) {
	kind := KindDigital
	if mode == Analog {
		kind = KindAnalog
	}
	if err := kind.Check(pin); err != nil {
		return nil, err
	}
	frames := []Frame{{cmdSetPinMode, byte(pin), byte(mode)}}
	switch mode {
	case Input:
		frames = append(frames, reportingFrame(pin, KindDigital, true))
	case Analog:
		frames = append(frames, reportingFrame(pin, KindAnalog, true))
	}
	return frames, nil
}

// EncodeDigitalWrite encodes a single pin digital write.
func EncodeDigitalWrite(pin int, state PinState) (Frame, error) {
	if err := KindDigital.Check(pin); err != nil {
		return nil, err
	}
	return Frame{cmdSetDigitalPin, byte(pin), state.Bit()}, nil
}

// EncodeAnalogWrite encodes an analog (PWM) write. Negative values are
// written as 0.
func EncodeAnalogWrite(pin int, value int) (Frame, error) {
	if err := KindAnalog.Check(pin); err != nil {
		return nil, err
	}
	if value < 0 {
		value = 0
	}
	low, high := Split7Bit(value)
	return Frame{cmdAnalogMessage + byte(pin), low, high}, nil
}

// EncodeReporting encodes a reporting toggle. For digital pins, reporting
// applies to the whole port of the pin.
func EncodeReporting(pin int, kind PinKind, enable bool) (Frame, error) {
	if err := kind.Check(pin); err != nil {
		return nil, err
	}
	return reportingFrame(pin, kind, enable), nil
}

// EncodeSysex wraps a sysex command and its 7-bit payload.
func EncodeSysex(cmd byte, payload []byte) Frame {
	f := make(Frame, 0, len(payload)+3)
	f = append(f, cmdStartSysex, cmd&0x7f)
	for _, b := range payload {
		f = append(f, b&0x7f)
	}
	return append(f, cmdEndSysex)
}

func reportingFrame(pin int, kind PinKind, enable bool) Frame {
	var on byte
	if enable {
		on = 1
	}
	if kind == KindAnalog {
		return Frame{cmdReportAnalog + byte(pin), on}
	}
	return Frame{cmdReportDigital + byte(PortOf(pin)), on}
}
