package fp2

import "github.com/EMATech/faderport/midi"

// Wire constants fixed by the FaderPort protocol.
const (
	// NoteFaderTouch is the note the device sends when the fader is
	// touched and released. It has no lamp and no Controls entry.
	NoteFaderTouch uint8 = 104

	// CCRotary is the controller number carrying Pan encoder ticks.
	CCRotary uint8 = 16
)

// handleMessage translates one inbound message into a handler call. It
// runs on the transport's callback context; unknown codes and shapes are
// logged and dropped.
func (f *FaderPort) handleMessage(msg midi.Message) {
	switch m := msg.(type) {
	case midi.PitchBend:
		f.mu.Lock()
		f.fader = m.Pitch
		f.mu.Unlock()
		f.handler.OnFader(m.Pitch)

	case midi.NoteOn:
		if m.Note == NoteFaderTouch {
			f.handler.OnFaderTouch(m.Velocity != 0)
			return
		}
		control, ok := ControlByCode(m.Note)
		if !ok {
			f.log.Warnf("button not found: %d", m.Note)
			return
		}
		f.handler.OnButton(control, m.Velocity != 0)

	case midi.ControlChange:
		if m.Controller != CCRotary {
			f.log.Debugf("unhandled message: %v", m)
			return
		}
		// One tick per message, regardless of how many detents the
		// encoder packed into it.
		if m.Value > 64 {
			f.handler.OnRotary(-1)
		} else {
			f.handler.OnRotary(1)
		}

	default:
		f.log.Debugf("unhandled message: %v", msg)
	}
}
