// Package fp2 drives the PreSonus FaderPort, a USB MIDI control surface
// with a motorized fader, an endless rotary encoder and 26 lit buttons.
//
// The device speaks plain channel messages: buttons and lamps are note-ons
// keyed by the codes in Controls, the fader position rides on pitch bend,
// and the Pan encoder arrives as control change 16. FaderPort translates
// between those wire shapes and the semantic events of the Handler
// interface, and layers lighting primitives and display routines on top.
package fp2

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/EMATech/faderport/midi"
)

const (
	// DeviceName prefixes the port names the FaderPort registers with the
	// system MIDI driver.
	DeviceName = "PreSonus FP2"

	// FaderMin and FaderMax bound the fader position. The wire format is
	// a signed 14-bit pitch bend, so this is the native range of the
	// motor; some vendor documentation describes the same travel as
	// 0-1023 instead.
	FaderMin int16 = -8192
	FaderMax int16 = 8191

	// settleDelay gives the hardware a moment after the ports open before
	// the input callback is registered.
	settleDelay = 10 * time.Millisecond
)

var (
	// ErrDeviceNotFound is returned by Open when discovery yields fewer
	// devices than the requested ordinal.
	ErrDeviceNotFound = errors.New("fp2: no faderport is connected")

	// ErrAlreadyOpen is returned by Open on an open instance.
	ErrAlreadyOpen = errors.New("fp2: already open")
)

// Handler receives the semantic device events. Implement all six methods;
// every inbound message becomes exactly one call, made synchronously on
// the transport's callback context.
type Handler interface {
	// OnOpen is called after the device has been opened.
	OnOpen()

	// OnClose is called when the device is about to close. The ports are
	// still live, so the hook may still talk to the device.
	OnClose()

	// OnButton is called with pressed=true when a button goes down and
	// pressed=false when it comes back up.
	OnButton(control Control, pressed bool)

	// OnFader is called when the fader is moved.
	OnFader(value int16)

	// OnFaderTouch is called when the fader is touched and released.
	OnFaderTouch(touched bool)

	// OnRotary is called with +1 for a clockwise tick of the Pan encoder
	// and -1 for an anti-clockwise one.
	OnRotary(direction int)
}

// FaderPort drives one attached device through a midi.Transport.
type FaderPort struct {
	transport midi.Transport
	handler   Handler
	log       Logger

	// mu guards the lifecycle flags and the fader cache, all of which are
	// touched from the transport callback and from callers.
	mu      sync.Mutex
	open    bool
	closing bool
	fader   int16
	in      midi.In
	out     midi.Out
}

// Config carries the dependencies of a FaderPort.
type Config struct {
	// Transport provides the MIDI ports. Required.
	Transport midi.Transport

	// Handler receives device events. Required.
	Handler Handler

	// Logger receives diagnostics. Optional.
	Logger Logger
}

// New builds a FaderPort around the given transport and handler. The
// device is not touched until Open.
func New(config *Config) *FaderPort {
	f := &FaderPort{
		transport: config.Transport,
		handler:   config.Handler,
		log:       noopLogger{},
		fader:     FaderMin,
	}
	if config.Logger != nil {
		f.log = config.Logger
	}
	return f
}

// Open connects to the number-th attached FaderPort (0 unless more than
// one is plugged in) and starts delivering events to the handler.
func (f *FaderPort) Open(number int) error {
	// Claim the instance before the lock drops so a concurrent Open
	// fails fast instead of opening a second port pair.
	f.mu.Lock()
	if f.open || f.closing {
		f.mu.Unlock()
		return ErrAlreadyOpen
	}
	f.open = true
	f.mu.Unlock()

	release := func() {
		f.mu.Lock()
		f.open = false
		f.in = nil
		f.out = nil
		f.mu.Unlock()
	}

	inName, err := findPort(f.transport.Inputs, number)
	if err != nil {
		release()
		return err
	}
	outName, err := findPort(f.transport.Outputs, number)
	if err != nil {
		release()
		return err
	}

	in, err := f.transport.OpenInput(inName)
	if err != nil {
		release()
		return errors.Wrapf(err, "fp2: open input %q", inName)
	}
	out, err := f.transport.OpenOutput(outName)
	if err != nil {
		_ = in.Close()
		release()
		return errors.Wrapf(err, "fp2: open output %q", outName)
	}

	// Let the hardware settle before it sees the callback.
	time.Sleep(settleDelay)

	f.mu.Lock()
	f.in = in
	f.out = out
	f.mu.Unlock()

	if err := in.SetCallback(f.handleMessage); err != nil {
		_ = in.Close()
		_ = out.Close()
		release()
		return errors.Wrap(err, "fp2: register callback")
	}

	f.log.Infof("faderport open on %q", inName)
	f.handler.OnOpen()
	return nil
}

// Close resets the device and releases the ports: fader to its minimum,
// every lamp off, output quieted, both ports closed. Each teardown step
// runs even when an earlier one fails; the first failure is returned.
// Closing a closed instance is a no-op.
func (f *FaderPort) Close() error {
	// Claim the close so a concurrent Close returns without running
	// teardown a second time. The ports stay live for the OnClose hook.
	f.mu.Lock()
	if !f.open || f.closing {
		f.mu.Unlock()
		return nil
	}
	f.closing = true
	f.mu.Unlock()

	f.notifyClose()

	// Take the ports away from senders before anything is torn down.
	f.mu.Lock()
	in := f.in
	out := f.out
	f.open = false
	f.closing = false
	f.in = nil
	f.out = nil
	f.fader = FaderMin
	f.mu.Unlock()

	if in == nil || out == nil {
		return nil
	}

	in.ClearCallback()

	var firstErr error
	keep := func(err error) {
		if err != nil {
			f.log.Warnf("close: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	keep(out.Send(midi.PitchBend{Pitch: FaderMin}))
	keep(allLampsOff(out))
	keep(out.Reset())
	keep(in.Close())
	keep(out.Close())

	f.log.Infof("faderport closed")
	return firstErr
}

// notifyClose shields teardown from a failing OnClose hook.
func (f *FaderPort) notifyClose() {
	defer func() {
		if r := recover(); r != nil {
			f.log.Errorf("on-close handler panicked: %v", r)
		}
	}()
	f.handler.OnClose()
}

// Fader returns the last position the device reported or a caller set,
// in [FaderMin, FaderMax].
func (f *FaderPort) Fader() int16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fader
}

// SetFader moves the fader. The value is clamped to [FaderMin, FaderMax]
// and cached optimistically, without waiting for the motor.
func (f *FaderPort) SetFader(value int16) error {
	if value < FaderMin {
		value = FaderMin
	} else if value > FaderMax {
		value = FaderMax
	}

	f.mu.Lock()
	out := f.out
	if out == nil {
		f.mu.Unlock()
		return errors.New("fp2: not open")
	}
	f.fader = value
	f.mu.Unlock()

	return out.Send(midi.PitchBend{Pitch: value})
}

// send hands one message to the output port.
func (f *FaderPort) send(msg midi.Message) error {
	f.mu.Lock()
	out := f.out
	f.mu.Unlock()

	if out == nil {
		return errors.New("fp2: not open")
	}
	return out.Send(msg)
}

// findPort returns the number-th port whose name carries the FaderPort
// prefix, matched case-insensitively.
func findPort(list func() ([]string, error), number int) (string, error) {
	names, err := list()
	if err != nil {
		return "", errors.Wrap(err, "fp2: list ports")
	}

	prefix := strings.ToLower(DeviceName)
	n := 0
	for _, name := range names {
		if !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		if n == number {
			return name, nil
		}
		n++
	}
	return "", errors.Wrapf(ErrDeviceNotFound, "device %d", number)
}
