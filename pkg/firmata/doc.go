// Package firmata provides the client side of the Firmata protocol.
package firmata

// Firmata is spoken between a microcontroller running a Firmata sketch and
// a host over a reliable byte stream (usually a serial port). Each byte
// carries 7 usable bits; bytes with the top bit set are command bytes.
//
// Outbound: the host configures pins and writes values. Configuring a pin
// for input also enables reporting for it, otherwise the device never
// sends reports for that pin.
//
// Inbound: the device sends digital port reports (8 pins per port),
// analog pin reports and sysex frames. Reports are decoded by a single
// receive loop into a PinStore, which client calls poll.
//
// Producer (inbound): Firmata firmware
// Consumer: host
