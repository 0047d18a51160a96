// Package midi is the transport boundary between a device driver and the
// MIDI ports it talks through. It defines the typed channel messages the
// FaderPort protocol uses, the port interfaces the driver consumes, and an
// rtmidi-backed implementation of those interfaces.
package midi

// Transport enumerates and opens MIDI ports by name.
type Transport interface {
	// Inputs returns the names of the available input ports.
	Inputs() ([]string, error)

	// Outputs returns the names of the available output ports.
	Outputs() ([]string, error)

	// OpenInput opens the input port with the given name.
	OpenInput(name string) (In, error)

	// OpenOutput opens the output port with the given name.
	OpenOutput(name string) (Out, error)

	// Close releases the underlying driver. Ports opened through the
	// transport must be closed separately.
	Close() error
}

// In is an open input port carrying at most one inbound callback.
type In interface {
	// SetCallback registers fn for inbound messages, replacing any
	// earlier callback. fn runs on the transport's own context.
	SetCallback(fn func(Message)) error

	// ClearCallback unregisters the inbound callback.
	ClearCallback()

	Close() error
}

// Out is an open output port.
type Out interface {
	// Send transmits one message.
	Send(msg Message) error

	// Reset quiets the port: all notes off and reset all controllers.
	Reset() error

	Close() error
}

// Logger is the logging interface of this package, satisfied by
// logrus-style loggers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
