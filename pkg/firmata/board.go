package firmata

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/firmata.go/pkg/transport"
)

// SysexHandler is called by the receive loop for each sysex frame.
type SysexHandler interface {
	HandleSysex(*Sysex)
}

// HandleSysexFunc is func type of SysexHandler.
type HandleSysexFunc func(*Sysex)

// HandleSysex implements SysexHandler.
func (f HandleSysexFunc) HandleSysex(s *Sysex) {
	f(s)
}

// Board is a connection to a Firmata device over a byte channel.
// Commands are written synchronously by callers, reports are decoded by
// a background receive loop into a PinStore.
type Board struct {
	Channel      transport.Channel
	SysexHandler SysexHandler

	store     atomic.Pointer[PinStore]
	writeLock sync.Mutex
	connLock  sync.Mutex

	lock sync.Mutex
	done chan struct{}
	err  error
}

// NewBoard creates a Board on a channel.
func NewBoard(ch transport.Channel) *Board {
	return &Board{Channel: ch}
}

// Name implements framework.Named.
func (b *Board) Name() string {
	return "firmata"
}

func (b *Board) String() string {
	return fmt.Sprintf("firmata board on %v", b.Channel)
}

// Connect opens the channel if needed and starts the receive loop with
// a fresh PinStore.
func (b *Board) Connect() error {
	b.connLock.Lock()
	defer b.connLock.Unlock()
	if b.running() {
		return ErrAlreadyConnected
	}
	if !b.Channel.IsOpen() {
		if err := b.Channel.Open(); err != nil {
			return fmt.Errorf("open channel: %w", err)
		}
	}
	store := NewPinStore()
	done := make(chan struct{})
	b.store.Store(store)
	b.lock.Lock()
	b.done, b.err = done, nil
	b.lock.Unlock()
	go b.run(store, done)
	glog.Infof("connected %v", b.Channel)
	return nil
}

// Disconnect closes the channel and waits for the receive loop to exit.
// A frame being received is aborted. The receive loop closes the channel
// itself when the device ends the stream, after which Disconnect returns
// ErrNotConnected.
func (b *Board) Disconnect() error {
	b.connLock.Lock()
	defer b.connLock.Unlock()
	if !b.Channel.IsOpen() {
		return ErrNotConnected
	}
	err := b.Channel.Close()
	if err == transport.ErrClosed {
		err = nil
	}
	b.lock.Lock()
	done := b.done
	b.lock.Unlock()
	if done != nil {
		<-done
	}
	return err
}

// Connected indicates the channel is open and the receive loop is running.
func (b *Board) Connected() bool {
	return b.running() && b.Channel.IsOpen()
}

// Done is closed when the receive loop exits.
func (b *Board) Done() <-chan struct{} {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.done == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return b.done
}

// Err returns a *DecodeAbort if the last receive loop ended in the middle
// of a frame, nil otherwise.
func (b *Board) Err() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.err
}

// Run implements framework.Runnable. It connects if not yet connected and
// disconnects when ctx is done.
func (b *Board) Run(ctx context.Context) error {
	if !b.Connected() {
		if err := b.Connect(); err != nil {
			return err
		}
	}
	select {
	case <-ctx.Done():
		if err := b.Disconnect(); err != nil && err != ErrNotConnected {
			return err
		}
		return ctx.Err()
	case <-b.Done():
		return b.Err()
	}
}

// SetPinMode configures a pin. Input and Analog modes also enable
// reporting for the pin.
func (b *Board) SetPinMode(pin int, mode PinMode) error {
	frames, err := EncodePinMode(pin, mode)
	if err != nil {
		return err
	}
	return b.write(frames...)
}

// DigitalWrite sets the level of a digital output pin.
func (b *Board) DigitalWrite(pin int, state PinState) error {
	frame, err := EncodeDigitalWrite(pin, state)
	if err != nil {
		return err
	}
	return b.write(frame)
}

// AnalogWrite writes a PWM value to an analog pin. Negative values are
// written as 0.
func (b *Board) AnalogWrite(pin int, value int) error {
	frame, err := EncodeAnalogWrite(pin, value)
	if err != nil {
		return err
	}
	return b.write(frame)
}

// SetReporting enables or disables reporting of a pin. Digital reporting
// applies to the port of the pin.
func (b *Board) SetReporting(pin int, kind PinKind, enable bool) error {
	frame, err := EncodeReporting(pin, kind, enable)
	if err != nil {
		return err
	}
	return b.write(frame)
}

// SendSysex sends a sysex command. Payload bytes are masked to 7 bits.
func (b *Board) SendSysex(cmd byte, payload []byte) error {
	return b.write(EncodeSysex(cmd, payload))
}

// DigitalRead returns the last reported state of a digital pin.
func (b *Board) DigitalRead(pin int) (PinState, error) {
	store := b.store.Load()
	if store == nil {
		return Low, ErrNotConnected
	}
	return store.Digital(pin)
}

// AnalogRead returns the last reported value of an analog pin.
func (b *Board) AnalogRead(pin int) (AnalogValue, error) {
	store := b.store.Load()
	if store == nil {
		return 0, ErrNotConnected
	}
	return store.Analog(pin)
}

// Snapshot copies all pin values.
func (b *Board) Snapshot() (Snapshot, error) {
	store := b.store.Load()
	if store == nil {
		return Snapshot{}, ErrNotConnected
	}
	return store.Snapshot(), nil
}

func (b *Board) running() bool {
	b.lock.Lock()
	done := b.done
	b.lock.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

func (b *Board) write(frames ...Frame) error {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	if !b.Connected() {
		return ErrNotConnected
	}
	for _, f := range frames {
		if glog.V(2) {
			glog.Infof("SEND % x", []byte(f))
		}
		if err := b.Channel.Write(f); err != nil {
			if err == transport.ErrClosed {
				return ErrNotConnected
			}
			return err
		}
	}
	return nil
}

func (b *Board) run(store *PinStore, done chan struct{}) {
	var parser Parser
	var err error
	for {
		var c byte
		if c, err = b.Channel.ReadByte(); err != nil {
			break
		}
		idle := !parser.Pending()
		pr := parser.Parse(c)
		switch pr.Kind {
		case FrameDigital, FrameAnalog:
			if !store.apply(pr) {
				glog.V(2).Infof("RECV report out of range: %+v", pr)
			} else if glog.V(2) {
				glog.Infof("RECV %+v", pr)
			}
		case FrameSysex:
			glog.V(2).Infof("RECV sysex 0x%02x len %d", pr.Sysex.Command, len(pr.Sysex.Payload))
			if h := b.SysexHandler; h != nil {
				h.HandleSysex(pr.Sysex)
			}
		default:
			if idle && !parser.Pending() {
				glog.V(3).Infof("RECV skip 0x%02x", c)
			}
		}
	}
	if parser.Pending() {
		abort := &DecodeAbort{State: parser.State(), Err: err}
		glog.Warningf("%v", abort)
		b.lock.Lock()
		b.err = abort
		b.lock.Unlock()
	} else {
		glog.Infof("disconnected %v: %v", b.Channel, err)
	}
	// the channel is released before done, so Connect redials it.
	if err := b.Channel.Close(); err != nil && err != transport.ErrClosed {
		glog.Warningf("close %v: %v", b.Channel, err)
	}
	close(done)
}
