package fp2_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EMATech/faderport/fp2"
	"github.com/EMATech/faderport/midi"
)

// fakeTransport is an in-memory midi.Transport recording everything the
// driver does to it.
type fakeTransport struct {
	inputs  []string
	outputs []string
	in      *fakeIn
	out     *fakeOut

	mu          sync.Mutex
	openedIn    []string
	openedOut   []string
	listInError error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		inputs:  []string{"PreSonus FP2 MIDI 1"},
		outputs: []string{"PreSonus FP2 MIDI 1"},
		in:      &fakeIn{},
		out:     &fakeOut{},
	}
}

func (t *fakeTransport) Inputs() ([]string, error)  { return t.inputs, t.listInError }
func (t *fakeTransport) Outputs() ([]string, error) { return t.outputs, nil }

func (t *fakeTransport) OpenInput(name string) (midi.In, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.openedIn = append(t.openedIn, name)
	return t.in, nil
}

func (t *fakeTransport) OpenOutput(name string) (midi.Out, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.openedOut = append(t.openedOut, name)
	return t.out, nil
}

func (t *fakeTransport) Close() error { return nil }

type fakeIn struct {
	mu     sync.Mutex
	cb     func(midi.Message)
	closed bool
}

func (i *fakeIn) SetCallback(fn func(midi.Message)) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cb = fn
	return nil
}

func (i *fakeIn) ClearCallback() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cb = nil
}

func (i *fakeIn) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
	return nil
}

// deliver injects an inbound message as the transport would.
func (i *fakeIn) deliver(msg midi.Message) {
	i.mu.Lock()
	cb := i.cb
	i.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

func (i *fakeIn) hasCallback() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.cb != nil
}

type fakeOut struct {
	mu      sync.Mutex
	sent    []midi.Message
	sendErr error
	reset   bool
	closed  bool
}

func (o *fakeOut) Send(msg midi.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sendErr != nil {
		return o.sendErr
	}
	o.sent = append(o.sent, msg)
	return nil
}

func (o *fakeOut) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reset = true
	return nil
}

func (o *fakeOut) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

func (o *fakeOut) messages() []midi.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]midi.Message(nil), o.sent...)
}

func (o *fakeOut) clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = nil
}

// lit replays the lamp messages and returns the codes currently on.
func (o *fakeOut) lit() map[uint8]bool {
	lit := make(map[uint8]bool)
	for _, msg := range o.messages() {
		n, ok := msg.(midi.NoteOn)
		if !ok {
			continue
		}
		if n.Velocity != 0 {
			lit[n.Note] = true
		} else {
			delete(lit, n.Note)
		}
	}
	return lit
}

type buttonEvent struct {
	control fp2.Control
	pressed bool
}

// recordingHandler captures every hook call.
type recordingHandler struct {
	mu       sync.Mutex
	opened   int
	closed   int
	buttons  []buttonEvent
	faders   []int16
	touches  []bool
	rotaries []int
	onClose  func()
}

func (h *recordingHandler) OnOpen() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened++
}

func (h *recordingHandler) OnClose() {
	h.mu.Lock()
	onClose := h.onClose
	h.closed++
	h.mu.Unlock()
	if onClose != nil {
		onClose()
	}
}

func (h *recordingHandler) OnButton(control fp2.Control, pressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buttons = append(h.buttons, buttonEvent{control: control, pressed: pressed})
}

func (h *recordingHandler) OnFader(value int16) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.faders = append(h.faders, value)
}

func (h *recordingHandler) OnFaderTouch(touched bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.touches = append(h.touches, touched)
}

func (h *recordingHandler) OnRotary(direction int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rotaries = append(h.rotaries, direction)
}

// openFaderPort wires a FaderPort to fresh fakes and opens it.
func openFaderPort(t *testing.T) (*fp2.FaderPort, *fakeTransport, *recordingHandler) {
	t.Helper()

	transport := newFakeTransport()
	handler := &recordingHandler{}
	fp := fp2.New(&fp2.Config{
		Transport: transport,
		Handler:   handler,
	})
	require.NoError(t, fp.Open(0))
	t.Cleanup(func() { _ = fp.Close() })

	return fp, transport, handler
}
