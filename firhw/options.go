package firhw

import (
	"io"
	"log"
)

// Option defines a functional option for the driver. It returns an option
// restoring the previous value.
type Option func(d *Driver) Option

// Options applies options and returns the previous value of the last option
// passed.
func (d *Driver) Options(options ...Option) Option {
	var old Option
	for _, opt := range options {
		old = opt(d)
	}

	return old
}

// WithDiagnostics sets the sink receiving the progress markers. By default,
// markers are discarded.
func WithDiagnostics(diag Diagnostics) Option {
	return func(d *Driver) Option {
		old := d.diag
		if diag == nil {
			diag = Discard
		}
		d.diag = diag
		return WithDiagnostics(old)
	}
}

// WithWait sets how the driver waits for the done bit. By default, it spins
// forever.
func WithWait(wait WaitPolicy) Option {
	return func(d *Driver) Option {
		old := d.wait
		if wait == nil {
			wait = Spin()
		}
		d.wait = wait
		return WithWait(old)
	}
}

// WithLogger sets the logger used to trace the driver steps. By default,
// nothing is logged.
func WithLogger(msg *log.Logger) Option {
	return func(d *Driver) Option {
		old := d.msg
		if msg == nil {
			msg = log.New(io.Discard, "", 0)
		}
		d.msg = msg
		return WithLogger(old)
	}
}

// WithPhases sets the phases executed by Run.
func WithPhases(phases ...Phase) Option {
	return func(d *Driver) Option {
		old := d.phases
		d.phases = append([]Phase(nil), phases...)
		return WithPhases(old...)
	}
}
