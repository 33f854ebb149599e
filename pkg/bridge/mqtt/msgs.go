package mqtt

import (
	"github.com/golang/protobuf/proto"

	fx "github.com/robotalks/firmata.go/pkg/framework"
)

// DigitalState is published when a digital pin changes.
type DigitalState struct {
	Pin  uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	High bool   `protobuf:"varint,2,opt,name=high,proto3" json:"high,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *DigitalState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DigitalState) Reset() { *m = DigitalState{} }

// String implements proto.Message.
func (m *DigitalState) String() string { return proto.CompactTextString(m) }

// AnalogState is published when an analog pin changes.
type AnalogState struct {
	Pin   uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	Value uint32 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *AnalogState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *AnalogState) Reset() { *m = AnalogState{} }

// String implements proto.Message.
func (m *AnalogState) String() string { return proto.CompactTextString(m) }

// PinModeCommand sets the mode of a pin, Mode is the mode name.
type PinModeCommand struct {
	Pin  uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	Mode string `protobuf:"bytes,2,opt,name=mode,proto3" json:"mode,omitempty"`
}

// NewMessage implements Message.
func (m *PinModeCommand) NewMessage() fx.Message { return &PinModeCommand{} }

// ProtoMessage implements proto.Message.
func (m *PinModeCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PinModeCommand) Reset() { *m = PinModeCommand{} }

// String implements proto.Message.
func (m *PinModeCommand) String() string { return proto.CompactTextString(m) }

// DigitalWriteCommand writes a digital pin.
type DigitalWriteCommand struct {
	Pin  uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	High bool   `protobuf:"varint,2,opt,name=high,proto3" json:"high,omitempty"`
}

// NewMessage implements Message.
func (m *DigitalWriteCommand) NewMessage() fx.Message { return &DigitalWriteCommand{} }

// ProtoMessage implements proto.Message.
func (m *DigitalWriteCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DigitalWriteCommand) Reset() { *m = DigitalWriteCommand{} }

// String implements proto.Message.
func (m *DigitalWriteCommand) String() string { return proto.CompactTextString(m) }

// AnalogWriteCommand writes an analog pin.
type AnalogWriteCommand struct {
	Pin   uint32 `protobuf:"varint,1,opt,name=pin,proto3" json:"pin,omitempty"`
	Value int32  `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
}

// NewMessage implements Message.
func (m *AnalogWriteCommand) NewMessage() fx.Message { return &AnalogWriteCommand{} }

// ProtoMessage implements proto.Message.
func (m *AnalogWriteCommand) ProtoMessage() {}

// Reset implements proto.Message.
func (m *AnalogWriteCommand) Reset() { *m = AnalogWriteCommand{} }

// String implements proto.Message.
func (m *AnalogWriteCommand) String() string { return proto.CompactTextString(m) }

// command is a message received from a command topic.
type command interface {
	fx.Message
	proto.Message
}
