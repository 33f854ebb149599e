package firmata

// Concat7Bit assembles a 14-bit value from two 7-bit bytes.
// Both bytes must already be 7-bit.
func Concat7Bit(low, high byte) int {
	return int(low) | int(high)<<7
}

// Split7Bit splits a non-negative value into two 7-bit bytes.
// Bits above the 14th are dropped.
func Split7Bit(v int) (low, high byte) {
	return byte(v % 128), byte(v>>7) & 0x7f
}

// PortOf returns the port number of a digital pin.
func PortOf(pin int) int {
	return pin / 8
}

// AnalogReportPin returns the analog pin index carried by the lead byte of
// an analog report. Reports and writes use different base offsets.
func AnalogReportPin(lead byte) int {
	return int(lead) - 0xa0
}
