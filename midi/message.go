package midi

import "fmt"

const (
	StatusNoteOff       = 0x80
	StatusNoteOn        = 0x90
	StatusControlChange = 0xb0
	StatusPitchBend     = 0xe0
	StatusCodeMask      = 0xf0
	ChannelMask         = 0x0f

	// PitchBendMin and PitchBendMax bound the signed 14-bit pitch value.
	PitchBendMin = -8192
	PitchBendMax = 8191
)

// Message is one typed channel message. Raw returns the three wire bytes,
// addressed to channel 0.
type Message interface {
	Raw() []byte
}

// NoteOn is a note-on message. The FaderPort reports button and fader
// touches with it (velocity 0 meaning release) and lights lamps with it.
type NoteOn struct {
	Note     uint8
	Velocity uint8
}

func (m NoteOn) Raw() []byte {
	return []byte{StatusNoteOn, m.Note & 0x7f, m.Velocity & 0x7f}
}

func (m NoteOn) String() string {
	return fmt.Sprintf("note_on note=%d velocity=%d", m.Note, m.Velocity)
}

// NoteOff is a note-off message. The FaderPort never emits one but other
// senders on the same port may.
type NoteOff struct {
	Note     uint8
	Velocity uint8
}

func (m NoteOff) Raw() []byte {
	return []byte{StatusNoteOff, m.Note & 0x7f, m.Velocity & 0x7f}
}

func (m NoteOff) String() string {
	return fmt.Sprintf("note_off note=%d velocity=%d", m.Note, m.Velocity)
}

// ControlChange is a control-change message, carrying rotary encoder
// ticks on the FaderPort.
type ControlChange struct {
	Controller uint8
	Value      uint8
}

func (m ControlChange) Raw() []byte {
	return []byte{StatusControlChange, m.Controller & 0x7f, m.Value & 0x7f}
}

func (m ControlChange) String() string {
	return fmt.Sprintf("control_change controller=%d value=%d", m.Controller, m.Value)
}

// PitchBend is a pitch-bend message carrying a signed 14-bit value. It is
// the fader position on the wire, in either direction.
type PitchBend struct {
	Pitch int16
}

func (m PitchBend) Raw() []byte {
	v := m.Pitch
	if v < PitchBendMin {
		v = PitchBendMin
	} else if v > PitchBendMax {
		v = PitchBendMax
	}
	u := uint16(v - PitchBendMin)
	return []byte{StatusPitchBend, byte(u & 0x7f), byte(u >> 7)}
}

func (m PitchBend) String() string {
	return fmt.Sprintf("pitchwheel pitch=%d", m.Pitch)
}

// Parse normalizes one raw channel message into its typed form. System
// messages and shapes outside the four channel types above return nil.
func Parse(raw []byte) Message {
	if len(raw) < 3 || raw[0] >= 0xf0 {
		return nil
	}
	d1 := raw[1] & 0x7f
	d2 := raw[2] & 0x7f
	switch raw[0] & StatusCodeMask {
	case StatusNoteOn:
		return NoteOn{Note: d1, Velocity: d2}
	case StatusNoteOff:
		return NoteOff{Note: d1, Velocity: d2}
	case StatusControlChange:
		return ControlChange{Controller: d1, Value: d2}
	case StatusPitchBend:
		return PitchBend{Pitch: int16(uint16(d1)|uint16(d2)<<7) + PitchBendMin}
	default:
		return nil
	}
}
