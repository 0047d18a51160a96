package midi

import (
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const (
	ccResetAllControllers uint8 = 121
	ccAllNotesOff         uint8 = 123
)

// Driver is a Transport over the system MIDI ports via rtmidi.
type Driver struct {
	drv *rtmididrv.Driver
	log Logger
}

// DriverConfig carries the optional settings of NewDriver.
type DriverConfig struct {
	// Logger receives diagnostics. Optional.
	Logger Logger
}

var _ Transport = (*Driver)(nil)

// NewDriver opens the system MIDI driver.
func NewDriver(config *DriverConfig) (*Driver, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, errors.Wrap(err, "midi: open rtmidi driver")
	}
	d := &Driver{drv: drv, log: noopLogger{}}
	if config != nil && config.Logger != nil {
		d.log = config.Logger
	}
	return d, nil
}

func (d *Driver) Inputs() ([]string, error) {
	ins, err := d.drv.Ins()
	if err != nil {
		return nil, errors.Wrap(err, "midi: list inputs")
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

func (d *Driver) Outputs() ([]string, error) {
	outs, err := d.drv.Outs()
	if err != nil {
		return nil, errors.Wrap(err, "midi: list outputs")
	}
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names, nil
}

func (d *Driver) OpenInput(name string) (In, error) {
	ins, err := d.drv.Ins()
	if err != nil {
		return nil, errors.Wrap(err, "midi: list inputs")
	}
	for _, port := range ins {
		if port.String() != name {
			continue
		}
		if err := port.Open(); err != nil {
			return nil, errors.Wrapf(err, "midi: open input %q", name)
		}
		return &rtIn{port: port, log: d.log}, nil
	}
	return nil, errors.Errorf("midi: no input port %q", name)
}

func (d *Driver) OpenOutput(name string) (Out, error) {
	outs, err := d.drv.Outs()
	if err != nil {
		return nil, errors.Wrap(err, "midi: list outputs")
	}
	for _, port := range outs {
		if port.String() != name {
			continue
		}
		if err := port.Open(); err != nil {
			return nil, errors.Wrapf(err, "midi: open output %q", name)
		}
		return &rtOut{port: port}, nil
	}
	return nil, errors.Errorf("midi: no output port %q", name)
}

func (d *Driver) Close() error {
	if err := d.drv.Close(); err != nil {
		return errors.Wrap(err, "midi: close driver")
	}
	return nil
}

type rtIn struct {
	port drivers.In
	log  Logger

	mu   sync.Mutex
	stop func()
}

func (i *rtIn) SetCallback(fn func(Message)) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stop != nil {
		i.stop()
		i.stop = nil
	}

	stop, err := i.port.Listen(func(raw []byte, milliseconds int32) {
		if msg := Parse(raw); msg != nil {
			fn(msg)
		}
	}, drivers.ListenConfig{
		OnErr: func(err error) {
			i.log.Errorf("midi: input error: %v", err)
		},
	})
	if err != nil {
		return errors.Wrap(err, "midi: listen")
	}
	i.stop = stop
	return nil
}

func (i *rtIn) ClearCallback() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.stop != nil {
		i.stop()
		i.stop = nil
	}
}

func (i *rtIn) Close() error {
	i.ClearCallback()
	if err := i.port.Close(); err != nil {
		return errors.Wrap(err, "midi: close input")
	}
	return nil
}

type rtOut struct {
	port drivers.Out

	mu sync.Mutex
}

func (o *rtOut) Send(msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.port.Send(msg.Raw()); err != nil {
		return errors.Wrapf(err, "midi: send %v", msg)
	}
	return nil
}

func (o *rtOut) Reset() error {
	for _, controller := range []uint8{ccResetAllControllers, ccAllNotesOff} {
		if err := o.Send(ControlChange{Controller: controller}); err != nil {
			return err
		}
	}
	return nil
}

func (o *rtOut) Close() error {
	if err := o.port.Close(); err != nil {
		return errors.Wrap(err, "midi: close output")
	}
	return nil
}
