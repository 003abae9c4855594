// Package core provides the runtime tier of gearbox.
// Options for configuring Driver instances.
package core

import "go.uber.org/zap"

// WithPublisher adds a Publisher. Publishers are called in the order added.
func WithPublisher(p Publisher) Option {
	return func(d *Driver) {
		if p != nil {
			d.publishers = append(d.publishers, p)
		}
	}
}

// WithLogger configures the Driver's logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRunID sets the identifier stamped on every published step.
func WithRunID(id string) Option {
	return func(d *Driver) {
		d.runID = id
	}
}

// WithMaxSteps caps the number of operations the Driver will apply.
// Values below 1 keep DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxSteps = n
		}
	}
}
