// Command fadertest exercises an attached FaderPort: it runs the display
// routines, moves the fader, then echoes device events until the Mute
// button is released.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/EMATech/faderport/fp2"
	"github.com/EMATech/faderport/midi"
)

type options struct {
	Number int  `short:"n" long:"number" default:"0" description:"Which FaderPort to open when more than one is attached"`
	Debug  bool `long:"debug" description:"Enable debug logging"`
}

type demo struct {
	fp       *fp2.FaderPort
	shift    bool
	exit     chan struct{}
	exitOnce sync.Once
}

var _ fp2.Handler = (*demo)(nil)

func (d *demo) OnOpen()  { log.Info("FaderPort opened") }
func (d *demo) OnClose() { log.Info("FaderPort closing...") }

func (d *demo) OnButton(control fp2.Control, pressed bool) {
	log.Infof("button %s pressed=%v", control.Name, pressed)

	switch control.Name {
	case "Shift":
		if pressed {
			d.shift = !d.shift
		}
	case "Mute":
		if !pressed {
			d.exitOnce.Do(func() { close(d.exit) })
		}
	}

	if pressed {
		_ = d.fp.LightOn(control)
	} else {
		_ = d.fp.LightOff(control)
	}
}

func (d *demo) OnFader(value int16) {
	log.Infof("fader %d", value)
}

func (d *demo) OnFaderTouch(touched bool) {
	log.Infof("fader touched=%v", touched)
}

func (d *demo) OnRotary(direction int) {
	log.Infof("rotary %+d", direction)
	if d.shift {
		_ = d.fp.SetFader(d.fp.Fader() + int16(direction)*320)
	}
}

func fadertestMain() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil
		}
		return errors.Wrap(err, "parsing flags")
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	transport, err := midi.NewDriver(&midi.DriverConfig{Logger: log.StandardLogger()})
	if err != nil {
		return err
	}
	defer transport.Close()

	d := &demo{exit: make(chan struct{})}
	fp := fp2.New(&fp2.Config{
		Transport: transport,
		Handler:   d,
		Logger:    log.StandardLogger(),
	})
	d.fp = fp

	if err := fp.Open(opts.Number); err != nil {
		return err
	}
	defer fp.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runShow(ctx, fp); err != nil {
		if err == context.Canceled {
			return nil
		}
		return err
	}

	log.Info("Try the buttons, the rotary and the fader. Mute exits.")
	select {
	case <-ctx.Done():
	case <-d.exit:
	}
	return nil
}

func runShow(ctx context.Context, fp *fp2.FaderPort) error {
	if err := fp.Countdown(ctx, 500*time.Millisecond); err != nil {
		return err
	}
	_ = fp.SetFader(fp2.FaderMax)
	if err := fp.Snake(ctx, 30*time.Millisecond); err != nil {
		return err
	}
	_ = fp.SetFader(4095)
	if err := fp.Blink(ctx, 200*time.Millisecond, 3); err != nil {
		return err
	}
	_ = fp.SetFader(-4096)
	if err := fp.Chase(ctx, 80*time.Millisecond, 3, 20); err != nil {
		return err
	}
	return fp.SetFader(fp2.FaderMin)
}

func main() {
	if err := fadertestMain(); err != nil {
		log.Errorf("fadertest: %v", err)
		os.Exit(1)
	}
}
