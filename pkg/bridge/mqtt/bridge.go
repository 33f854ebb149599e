package mqtt

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/firmata.go/pkg/firmata"
	fx "github.com/robotalks/firmata.go/pkg/framework"
)

// Command topics, relative to the topic prefix.
const (
	TopicModeCommand    = "cmd/mode"
	TopicDigitalCommand = "cmd/digital"
	TopicAnalogCommand  = "cmd/analog"
)

// DigitalTopic is the state topic of a digital pin.
func DigitalTopic(pin int) string {
	return fmt.Sprintf("digital/%d", pin)
}

// AnalogTopic is the state topic of an analog pin.
func AnalogTopic(pin int) string {
	return fmt.Sprintf("analog/%d", pin)
}

// Broker publishes and subscribes topics.
type Broker interface {
	Publish(topic string, payload []byte) error
	Subscribe(topic string, handler Handler) (io.Closer, error)
}

// Pins is the board operated by the bridge.
type Pins interface {
	SetPinMode(pin int, mode firmata.PinMode) error
	DigitalWrite(pin int, state firmata.PinState) error
	AnalogWrite(pin int, value int) error
	Snapshot() (firmata.Snapshot, error)
}

// Bridge publishes pin changes and applies commands received from the
// broker. Commands are posted into the loop and applied on its ticks.
type Bridge struct {
	Broker Broker
	Pins   Pins

	loop      fx.LoopControl
	subs      []io.Closer
	published firmata.Snapshot
	synced    bool
}

// NewBridge creates a Bridge.
func NewBridge(broker Broker, pins Pins) *Bridge {
	return &Bridge{Broker: broker, Pins: pins}
}

// Name implements framework.Named.
func (b *Bridge) Name() string {
	return "mqtt-bridge"
}

// AddToLoop implements framework.LoopAdder.
func (b *Bridge) AddToLoop(l *fx.Loop) {
	b.loop = l
	l.AddController(b)
}

// Run implements framework.Runnable. Command topics are subscribed until
// ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.Subscribe(); err != nil {
		b.Close()
		return err
	}
	<-ctx.Done()
	b.Close()
	return ctx.Err()
}

// Subscribe subscribes the command topics.
func (b *Bridge) Subscribe() error {
	topics := []struct {
		topic string
		msg   command
	}{
		{TopicModeCommand, &PinModeCommand{}},
		{TopicDigitalCommand, &DigitalWriteCommand{}},
		{TopicAnalogCommand, &AnalogWriteCommand{}},
	}
	for _, t := range topics {
		sub, err := b.Broker.Subscribe(t.topic, b.commandHandler(t.msg))
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", t.topic, err)
		}
		b.subs = append(b.subs, sub)
	}
	return nil
}

// Close unsubscribes the command topics.
func (b *Bridge) Close() error {
	var errs fx.AggregatedError
	for _, sub := range b.subs {
		errs.Add(sub.Close())
	}
	b.subs = nil
	return errs.Aggregate()
}

// Control implements framework.Controller.
func (b *Bridge) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	for _, msg := range cc.Messages() {
		errs.Add(b.apply(msg))
	}
	snap, err := b.Pins.Snapshot()
	if err == firmata.ErrNotConnected {
		return errs.Aggregate()
	}
	errs.Add(err)
	if err == nil {
		errs.Add(b.publish(snap))
	}
	return errs.Aggregate()
}

func (b *Bridge) commandHandler(prototype command) Handler {
	return func(topic string, payload []byte) {
		msg := prototype.NewMessage().(command)
		if err := proto.Unmarshal(payload, msg); err != nil {
			glog.Warningf("drop invalid %s payload: %v", topic, err)
			return
		}
		if b.loop != nil {
			b.loop.PostMessage(msg)
			b.loop.TriggerNext()
		}
	}
}

func (b *Bridge) apply(msg fx.Message) error {
	switch m := msg.(type) {
	case *PinModeCommand:
		mode, err := firmata.ParsePinMode(m.Mode)
		if err != nil {
			return err
		}
		return b.Pins.SetPinMode(int(m.Pin), mode)
	case *DigitalWriteCommand:
		state := firmata.Low
		if m.High {
			state = firmata.High
		}
		return b.Pins.DigitalWrite(int(m.Pin), state)
	case *AnalogWriteCommand:
		return b.Pins.AnalogWrite(int(m.Pin), int(m.Value))
	}
	return fmt.Errorf("unknown command %T", msg)
}

// publish sends the slots changed since the last publication. All slots
// are sent until one publication succeeds for every slot.
func (b *Bridge) publish(snap firmata.Snapshot) error {
	var errs fx.AggregatedError
	failed := false
	for pin, st := range snap.Digital {
		if b.synced && b.published.Digital[pin] == st {
			continue
		}
		err := b.publishMsg(DigitalTopic(pin), &DigitalState{Pin: uint32(pin), High: st == firmata.High})
		if err != nil {
			errs.Add(err)
			failed = true
			continue
		}
		b.published.Digital[pin] = st
	}
	for pin, v := range snap.Analog {
		if b.synced && b.published.Analog[pin] == v {
			continue
		}
		err := b.publishMsg(AnalogTopic(pin), &AnalogState{Pin: uint32(pin), Value: uint32(v)})
		if err != nil {
			errs.Add(err)
			failed = true
			continue
		}
		b.published.Analog[pin] = v
	}
	if !failed {
		b.synced = true
	}
	return errs.Aggregate()
}

func (b *Bridge) publishMsg(topic string, msg proto.Message) error {
	payload, err := proto.Marshal(msg)
	if err != nil {
		return err
	}
	return b.Broker.Publish(topic, payload)
}
