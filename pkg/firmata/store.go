package firmata

import "sync/atomic"

// analogReportBase is subtracted from the pin carried by an analog report
// to get the analog slot, so a report led by 0xe0+n lands in slot n.
const analogReportBase = 0x40

// PinStore holds the last known pin values. Each slot is written by the
// receive loop only and can be read concurrently.
type PinStore struct {
	digital [DigitalPins]atomic.Uint32
	analog  [AnalogPins]atomic.Uint32
}

// Snapshot is a copy of all values in a PinStore.
type Snapshot struct {
	Digital [DigitalPins]PinState
	Analog  [AnalogPins]AnalogValue
}

// NewPinStore creates a PinStore with all values Low/0.
func NewPinStore() *PinStore {
	return &PinStore{}
}

// Digital gets the state of a digital pin.
func (s *PinStore) Digital(pin int) (PinState, error) {
	if err := KindDigital.Check(pin); err != nil {
		return Low, err
	}
	return PinState(s.digital[pin].Load()), nil
}

// Analog gets the value of an analog pin.
func (s *PinStore) Analog(pin int) (AnalogValue, error) {
	if err := KindAnalog.Check(pin); err != nil {
		return 0, err
	}
	return AnalogValue(s.analog[pin].Load()), nil
}

// Snapshot copies all values. Slots are read one by one, the copy is not
// taken atomically as a whole.
func (s *PinStore) Snapshot() (snap Snapshot) {
	for i := range s.digital {
		snap.Digital[i] = PinState(s.digital[i].Load())
	}
	for i := range s.analog {
		snap.Analog[i] = AnalogValue(s.analog[i].Load())
	}
	return
}

// apply writes a decoded report. It returns false if the report addresses
// pins outside the store.
func (s *PinStore) apply(pr ParseResult) bool {
	switch pr.Kind {
	case FrameDigital:
		return s.setDigitalPort(pr.Port, pr.PinStates())
	case FrameAnalog:
		return s.setAnalog(pr.Pin-analogReportBase, AnalogValue(pr.Value))
	}
	return false
}

func (s *PinStore) setDigitalPort(port int, states [PinsPerPort]PinState) bool {
	base := port * PinsPerPort
	if base < 0 || base+PinsPerPort > DigitalPins {
		return false
	}
	for i, st := range states {
		s.digital[base+i].Store(uint32(st))
	}
	return true
}

func (s *PinStore) setAnalog(pin int, v AnalogValue) bool {
	if pin < 0 || pin >= AnalogPins {
		return false
	}
	s.analog[pin].Store(uint32(v))
	return true
}
