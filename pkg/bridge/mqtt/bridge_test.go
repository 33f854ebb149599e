package mqtt

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/firmata.go/pkg/firmata"
	fx "github.com/robotalks/firmata.go/pkg/framework"
)

type testBroker struct {
	published map[string][]byte
	handlers  map[string]Handler
	failPub   error
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func newTestBroker() *testBroker {
	return &testBroker{
		published: make(map[string][]byte),
		handlers:  make(map[string]Handler),
	}
}

func (b *testBroker) Publish(topic string, payload []byte) error {
	if b.failPub != nil {
		return b.failPub
	}
	b.published[topic] = payload
	return nil
}

func (b *testBroker) Subscribe(topic string, handler Handler) (io.Closer, error) {
	b.handlers[topic] = handler
	return closerFunc(func() error {
		delete(b.handlers, topic)
		return nil
	}), nil
}

func (b *testBroker) deliver(t *testing.T, topic string, msg proto.Message) {
	payload, err := proto.Marshal(msg)
	require.NoError(t, err)
	h := b.handlers[topic]
	require.NotNil(t, h, topic)
	h(topic, payload)
}

type testPins struct {
	calls []string
	snap  firmata.Snapshot
	err   error
}

func (p *testPins) SetPinMode(pin int, mode firmata.PinMode) error {
	if err := firmata.KindDigital.Check(pin); err != nil {
		return err
	}
	p.calls = append(p.calls, "mode "+mode.String())
	return nil
}

func (p *testPins) DigitalWrite(pin int, state firmata.PinState) error {
	p.calls = append(p.calls, "digital "+state.String())
	return nil
}

func (p *testPins) AnalogWrite(pin int, value int) error {
	p.calls = append(p.calls, "analog")
	return nil
}

func (p *testPins) Snapshot() (firmata.Snapshot, error) {
	return p.snap, p.err
}

func TestBridgeCommands(t *testing.T) {
	broker, pins := newTestBroker(), &testPins{}
	loop := fx.NewLoop()
	bridge := NewBridge(broker, pins)
	loop.Add(bridge)
	require.NoError(t, bridge.Subscribe())
	require.Len(t, broker.handlers, 3)

	broker.deliver(t, TopicModeCommand, &PinModeCommand{Pin: 13, Mode: "output"})
	broker.deliver(t, TopicDigitalCommand, &DigitalWriteCommand{Pin: 13, High: true})
	broker.deliver(t, TopicAnalogCommand, &AnalogWriteCommand{Pin: 3, Value: -5})
	broker.deliver(t, TopicModeCommand, &PinModeCommand{Pin: 2, Mode: "bogus"})
	broker.handlers[TopicDigitalCommand](TopicDigitalCommand, []byte{0xff, 0xff})
	require.Empty(t, pins.calls)

	loop.RunIteration(context.Background())
	require.Equal(t, []string{"mode output", "digital high", "analog"}, pins.calls)

	require.NoError(t, bridge.Close())
	require.Empty(t, broker.handlers)
}

func TestBridgePublishChanges(t *testing.T) {
	broker, pins := newTestBroker(), &testPins{}
	bridge := NewBridge(broker, pins)
	loop := fx.NewLoop().Add(bridge)

	loop.RunIteration(context.Background())
	require.Len(t, broker.published, firmata.DigitalPins+firmata.AnalogPins)

	broker.published = make(map[string][]byte)
	loop.RunIteration(context.Background())
	require.Empty(t, broker.published)

	pins.snap.Digital[8] = firmata.High
	pins.snap.Analog[5] = 511
	loop.RunIteration(context.Background())
	require.Len(t, broker.published, 2)

	var digital DigitalState
	require.NoError(t, proto.Unmarshal(broker.published[DigitalTopic(8)], &digital))
	require.Equal(t, uint32(8), digital.Pin)
	require.True(t, digital.High)
	var analog AnalogState
	require.NoError(t, proto.Unmarshal(broker.published[AnalogTopic(5)], &analog))
	require.Equal(t, uint32(5), analog.Pin)
	require.Equal(t, uint32(511), analog.Value)
}

func TestBridgeRetryPublish(t *testing.T) {
	broker, pins := newTestBroker(), &testPins{}
	bridge := NewBridge(broker, pins)
	broker.failPub = errors.New("offline")
	pins.snap.Digital[0] = firmata.High
	require.Error(t, bridge.publish(pins.snap))
	require.Empty(t, broker.published)

	broker.failPub = nil
	require.NoError(t, bridge.publish(pins.snap))
	require.Len(t, broker.published, firmata.DigitalPins+firmata.AnalogPins)
}

func TestBridgeNotConnected(t *testing.T) {
	broker := newTestBroker()
	pins := &testPins{err: firmata.ErrNotConnected}
	bridge := NewBridge(broker, pins)
	loop := fx.NewLoop().Add(bridge)
	loop.RunIteration(context.Background())
	require.Empty(t, broker.published)
}

func TestBridgeRun(t *testing.T) {
	broker := newTestBroker()
	bridge := NewBridge(broker, &testPins{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, bridge.Run(ctx))
	require.Empty(t, broker.handlers)
}
