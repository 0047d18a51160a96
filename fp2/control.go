package fp2

import (
	"strings"

	"github.com/pkg/errors"
)

// Control is one physical button/lamp pair on the device face.
type Control struct {
	// Name is what is printed on the button.
	Name string

	// Code is the MIDI note the button sends when pressed and released,
	// and the note addressed to light its lamp.
	Code uint8
}

// Controls lists every FaderPort button, ordered to snake down the device
// face from the top. The glyph table and the snake animation index into
// this slice, so the order is part of the protocol here: do not reorder.
var Controls = []Control{
	{Name: "Solo", Code: 8},
	{Name: "Mute", Code: 16},
	{Name: "Arm", Code: 0},
	{Name: "Shift", Code: 70},
	{Name: "Bypass", Code: 3},
	{Name: "Touch", Code: 77},
	{Name: "Write", Code: 75},
	{Name: "Read", Code: 74},
	{Name: "Prev", Code: 46},
	{Name: "Knob", Code: 32},
	{Name: "Next", Code: 47},
	{Name: "Link", Code: 5},
	{Name: "Pan", Code: 42},
	{Name: "Channel", Code: 54},
	{Name: "Scroll", Code: 56},
	{Name: "Master", Code: 58},
	{Name: "Click", Code: 59},
	{Name: "Section", Code: 60},
	{Name: "Marker", Code: 61},
	{Name: "Loop", Code: 86},
	{Name: "Rewind", Code: 91},
	{Name: "Forward", Code: 92},
	{Name: "Stop", Code: 93},
	{Name: "Play", Code: 94},
	{Name: "Record", Code: 95},
	{Name: "Pedal", Code: 102},
}

// ErrUnknownControl is returned by ControlByName for names outside the
// Controls table.
var ErrUnknownControl = errors.New("fp2: unknown control")

var (
	controlsByName = indexControlsByName(Controls)
	controlsByCode = indexControlsByCode(Controls)
)

func indexControlsByName(controls []Control) map[string]Control {
	m := make(map[string]Control, len(controls))
	for _, c := range controls {
		m[strings.ToLower(c.Name)] = c
	}
	return m
}

func indexControlsByCode(controls []Control) map[uint8]Control {
	m := make(map[uint8]Control, len(controls))
	for _, c := range controls {
		m[c.Code] = c
	}
	return m
}

// ControlByName returns the control with the given name, matched
// case-insensitively.
func ControlByName(name string) (Control, error) {
	c, ok := controlsByName[strings.ToLower(name)]
	if !ok {
		return Control{}, errors.Wrapf(ErrUnknownControl, "name %q", name)
	}
	return c, nil
}

// ControlByCode returns the control that sends the given note. Unmapped
// codes arrive routinely from hardware elements without a control entry,
// so a miss reports ok=false rather than an error.
func ControlByCode(code uint8) (Control, bool) {
	c, ok := controlsByCode[code]
	return c, ok
}
