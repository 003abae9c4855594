// Package extensibility provides sources of transmission operations that can
// be attached to a running realtime.Runtime.
package extensibility

import (
	"sync"
	"time"

	"github.com/comalice/gearbox/internal/core"
)

// OpSource produces operations until its channel is closed.
type OpSource interface {
	Ops() <-chan core.Op
}

// ChannelOpSource is an OpSource backed by a Go channel.
// Provides a simple way to feed external input, such as a pedal or a
// shifter, into the runtime.
type ChannelOpSource struct {
	ch chan core.Op
}

// NewChannelOpSource creates a new ChannelOpSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelOpSource(ch chan core.Op) *ChannelOpSource {
	return &ChannelOpSource{ch: ch}
}

// Ops returns the receive-only channel for operations.
func (s *ChannelOpSource) Ops() <-chan core.Op {
	return s.ch
}

// TimerOpSource emits the same operation every period, e.g. a held
// accelerator pedal.
type TimerOpSource struct {
	ch     chan core.Op
	op     core.Op
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewTimerOpSource creates a TimerOpSource that emits op every d.
func NewTimerOpSource(op core.Op, d time.Duration) *TimerOpSource {
	t := &TimerOpSource{
		ch:     make(chan core.Op, 10),
		op:     op,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerOpSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.op:
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Ops returns the operation channel.
func (t *TimerOpSource) Ops() <-chan core.Op {
	return t.ch
}

// Stop stops the ticker and closes the channel. It is safe to call twice.
func (t *TimerOpSource) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// ScriptOpSource emits every operation of a script once, in order, then
// closes its channel. Operations are produced on demand, so the repeat
// counts of the script do not bound memory use.
type ScriptOpSource struct {
	ch   chan core.Op
	stop chan struct{}
	once sync.Once
}

// NewScriptOpSource starts emitting script.
func NewScriptOpSource(script []core.Command) *ScriptOpSource {
	s := &ScriptOpSource{
		ch:   make(chan core.Op, 10),
		stop: make(chan struct{}),
	}
	go s.run(script)
	return s
}

func (s *ScriptOpSource) run(script []core.Command) {
	defer close(s.ch)
	for _, cmd := range script {
		for i := 0; i < cmd.Repeat; i++ {
			select {
			case s.ch <- cmd.Op:
			case <-s.stop:
				return
			}
		}
	}
}

// Ops returns the operation channel.
func (s *ScriptOpSource) Ops() <-chan core.Op {
	return s.ch
}

// Stop abandons the rest of the script and closes the channel. It is safe
// to call twice and after the script has finished.
func (s *ScriptOpSource) Stop() {
	s.once.Do(func() { close(s.stop) })
}
