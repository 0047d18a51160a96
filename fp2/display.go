package fp2

import (
	"context"
	"time"

	"github.com/EMATech/faderport/midi"
)

const (
	lampOn  uint8 = 127
	lampOff uint8 = 0
)

// No lamp state is retained anywhere in this package: the display
// routines below are fire-and-forget and always finish in a defined end
// state (all-off), never restoring whatever was lit before they ran.

// LightOn lights the lamp behind control.
//
// Device quirk: while the "Off" lamp is lit the fader stops reporting
// position updates.
func (f *FaderPort) LightOn(control Control) error {
	return f.send(midi.NoteOn{Note: control.Code, Velocity: lampOn})
}

// LightOff darkens the lamp behind control.
func (f *FaderPort) LightOff(control Control) error {
	return f.send(midi.NoteOn{Note: control.Code, Velocity: lampOff})
}

// AllOn lights every lamp in Controls order.
func (f *FaderPort) AllOn() error {
	for _, c := range Controls {
		if err := f.LightOn(c); err != nil {
			return err
		}
	}
	return nil
}

// AllOff darkens every lamp in Controls order.
func (f *FaderPort) AllOff() error {
	for _, c := range Controls {
		if err := f.LightOff(c); err != nil {
			return err
		}
	}
	return nil
}

// allLampsOff darkens every lamp through the given port. Close uses it
// after the ports have been taken away from ordinary senders.
func allLampsOff(out midi.Out) error {
	for _, c := range Controls {
		if err := out.Send(midi.NoteOn{Note: c.Code, Velocity: lampOff}); err != nil {
			return err
		}
	}
	return nil
}

// CharOn draws a hex digit on the button matrix. Lamps outside the
// digit's pattern are left alone, so clear first for a clean glyph.
// Characters without a glyph do nothing.
func (f *FaderPort) CharOn(c rune) error {
	pattern, ok := GlyphFor(c)
	if !ok {
		return nil
	}
	for _, i := range pattern {
		if err := f.LightOn(Controls[i]); err != nil {
			return err
		}
	}
	return nil
}

// Snake lights each lamp in Controls order, then darkens them in reverse,
// holding each step for duration. Finishes all-off.
func (f *FaderPort) Snake(ctx context.Context, duration time.Duration) error {
	for _, c := range Controls {
		if err := f.LightOn(c); err != nil {
			return err
		}
		if err := wait(ctx, duration); err != nil {
			return err
		}
	}
	for i := len(Controls) - 1; i >= 0; i-- {
		if err := f.LightOff(Controls[i]); err != nil {
			return err
		}
		if err := wait(ctx, duration); err != nil {
			return err
		}
	}
	return nil
}

// Blink flashes every lamp together for n cycles of interval, half on and
// half off. Finishes all-off.
func (f *FaderPort) Blink(ctx context.Context, interval time.Duration, n int) error {
	for i := 0; i < n; i++ {
		if err := f.AllOn(); err != nil {
			return err
		}
		if err := wait(ctx, interval/2); err != nil {
			return err
		}
		if err := f.AllOff(); err != nil {
			return err
		}
		if err := wait(ctx, interval/2); err != nil {
			return err
		}
	}
	return nil
}

// Countdown draws the digits 9 down to 0, holding each for two thirds of
// interval and clearing the matrix for the remaining third.
func (f *FaderPort) Countdown(ctx context.Context, interval time.Duration) error {
	for _, c := range "9876543210" {
		if err := f.CharOn(c); err != nil {
			return err
		}
		if err := wait(ctx, interval*2/3); err != nil {
			return err
		}
		if err := f.AllOff(); err != nil {
			return err
		}
		if err := wait(ctx, interval/3); err != nil {
			return err
		}
	}
	return nil
}

// chaseSequence is the fixed ring of lamps Chase runs around.
var chaseSequence = mustControls(
	"Solo", "Mute", "Arm", "Shift", "Read", "Scroll",
	"Marker", "Section", "Click", "Master", "Link", "Bypass",
)

// Chase runs numLights points around a fixed 12-lamp ring for ticks steps
// of duration each. The points start evenly spaced, and every step lights
// them, holds, then clears the whole device before advancing, so the
// effect flashes in unison rather than leaving trailing heads. numLights
// is clamped to 1-4. Finishes all-off.
func (f *FaderPort) Chase(ctx context.Context, duration time.Duration, numLights, ticks int) error {
	if numLights < 1 {
		numLights = 1
	} else if numLights > 4 {
		numLights = 4
	}

	cursors := make([]int, numLights)
	for i := range cursors {
		cursors[i] = (i * (len(chaseSequence) / numLights)) % len(chaseSequence)
	}

	for t := 0; t < ticks; t++ {
		for _, cur := range cursors {
			if err := f.LightOn(chaseSequence[cur]); err != nil {
				return err
			}
		}
		if err := wait(ctx, duration); err != nil {
			return err
		}
		if err := f.AllOff(); err != nil {
			return err
		}
		for i := range cursors {
			cursors[i] = (cursors[i] + 1) % len(chaseSequence)
		}
	}
	return nil
}

// wait blocks for d or until ctx is canceled.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func mustControls(names ...string) []Control {
	controls := make([]Control, len(names))
	for i, name := range names {
		c, err := ControlByName(name)
		if err != nil {
			panic(err)
		}
		controls[i] = c
	}
	return controls
}
