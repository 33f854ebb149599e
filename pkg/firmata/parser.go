package firmata

// DecodeState is the state of the frame decoder.
type DecodeState int

const (
	// AwaitingLeadByte means the decoder is between frames.
	AwaitingLeadByte DecodeState = iota
	// InSysex means a sysex frame is being received.
	InSysex
	// InDigitalReport means a digital port report is being received.
	InDigitalReport
	// InAnalogReport means an analog pin report is being received.
	InAnalogReport
)

func (s DecodeState) String() string {
	switch s {
	case InSysex:
		return "in sysex"
	case InDigitalReport:
		return "in digital report"
	case InAnalogReport:
		return "in analog report"
	}
	return "awaiting lead byte"
}

// FrameKind is the kind of a decoded frame.
type FrameKind int

// Frame kinds.
const (
	FrameNone FrameKind = iota
	FrameDigital
	FrameAnalog
	FrameSysex
)

// Sysex is an opaque sysex frame.
type Sysex struct {
	Command byte
	Payload []byte
}

// ParseResult indicates the result after one parsing step.
// Kind is FrameNone until a frame completes.
type ParseResult struct {
	Kind FrameKind
	// Port is set for FrameDigital.
	Port int
	// Pin is set for FrameAnalog, as carried by the lead byte.
	Pin int
	// Value is the 14-bit value of FrameDigital and FrameAnalog.
	Value int
	// Sysex is set for FrameSysex.
	Sysex *Sysex
}

// PinStates expands the value of a digital port report into the states of
// the 8 pins of the port. Bits 0..6 come from the first data byte and bit
// 7 from the lowest bit of the second.
func (r ParseResult) PinStates() (states [PinsPerPort]PinState) {
	for i := range states {
		states[i] = PinStateOf(r.Value >> uint(i))
	}
	return
}

type parseState int

const (
	stateLead        parseState = iota // waiting for lead byte
	stateSysexCmd                      // waiting for sysex command
	stateSysexData                     // waiting for sysex payload or end
	stateDigitalLow                    // waiting for digital report low 7 bits
	stateDigitalHigh                   // waiting for digital report high 7 bits
	stateAnalogLow                     // waiting for analog report low 7 bits
	stateAnalogHigh                    // waiting for analog report high 7 bits
)

// Parser decodes the inbound byte stream, one byte at a time.
type Parser struct {
	state parseState
	lead  byte
	low   byte
	sysex *Sysex
}

// State gets the current decode state.
func (p *Parser) State() DecodeState {
	switch p.state {
	case stateSysexCmd, stateSysexData:
		return InSysex
	case stateDigitalLow, stateDigitalHigh:
		return InDigitalReport
	case stateAnalogLow, stateAnalogHigh:
		return InAnalogReport
	}
	return AwaitingLeadByte
}

// Pending indicates a frame is partially received.
func (p *Parser) Pending() bool {
	return p.state != stateLead
}

// Reset drops any partial frame.
func (p *Parser) Reset() {
	p.state, p.sysex = stateLead, nil
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case stateLead:
		p.lead = b
		switch {
		case b == cmdStartSysex:
			p.state = stateSysexCmd
		case b >= 0x90 && b <= 0x9f:
			p.state = stateDigitalLow
		case b >= 0xe0 && b <= 0xef:
			p.state = stateAnalogLow
		}
	case stateSysexCmd:
		p.sysex = &Sysex{Command: b}
		p.state = stateSysexData
	case stateSysexData:
		if b == cmdEndSysex {
			pr.Kind, pr.Sysex = FrameSysex, p.sysex
			p.Reset()
			return
		}
		p.sysex.Payload = append(p.sysex.Payload, b)
	case stateDigitalLow:
		p.low, p.state = b, stateDigitalHigh
	case stateDigitalHigh:
		pr.Kind = FrameDigital
		pr.Port = int(p.lead - cmdDigitalReport)
		pr.Value = Concat7Bit(p.low, b)
		p.state = stateLead
	case stateAnalogLow:
		p.low, p.state = b, stateAnalogHigh
	case stateAnalogHigh:
		pr.Kind = FrameAnalog
		pr.Pin = AnalogReportPin(p.lead)
		pr.Value = Concat7Bit(p.low, b)
		p.state = stateLead
	}
	return
}
