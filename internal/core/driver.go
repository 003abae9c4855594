// Package core provides the runtime tier of gearbox: a Driver that feeds
// operation scripts and an auto-drive policy into a Transmission and
// publishes every resulting step.
//
// The Driver is synchronous. The context passed to Run and DriveTo is only
// checked between steps so long scripts can be abandoned.
package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/comalice/gearbox"
)

var (
	ErrStepLimit   = errors.New("step limit exceeded")
	ErrUnreachable = errors.New("target speed unreachable")
)

// DefaultMaxSteps caps the number of operations a single Driver applies.
const DefaultMaxSteps = 10000

// StateView is the serializable part of a Transmission snapshot.
type StateView struct {
	Speed  int    `json:"speed" yaml:"speed"`
	Gear   int    `json:"gear" yaml:"gear"`
	Status string `json:"status" yaml:"status"`
}

// ViewOf captures speed, gear and status of tr.
func ViewOf(tr gearbox.Transmission) StateView {
	return StateView{Speed: tr.Speed(), Gear: tr.Gear(), Status: tr.Status()}
}

// Step records one applied operation.
type Step struct {
	RunID    string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Index    int       `json:"index" yaml:"index"`
	Op       Op        `json:"op" yaml:"op"`
	Before   StateView `json:"before" yaml:"before"`
	After    StateView `json:"after" yaml:"after"`
	Accepted bool      `json:"accepted" yaml:"accepted"`
}

// Publisher receives every step a Driver applies, in order.
type Publisher interface {
	Publish(ctx context.Context, step Step) error
}

// Option applies configuration to Driver via functional options pattern.
type Option func(*Driver)

// Driver applies operations to a Transmission and publishes each step.
// A Driver numbers steps across calls, so use one Driver per run; it is not
// safe for concurrent use.
type Driver struct {
	publishers []Publisher
	logger     *zap.Logger
	runID      string
	maxSteps   int
	steps      int
}

// NewDriver creates a Driver with the given options.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		logger:   zap.NewNop(),
		maxSteps: DefaultMaxSteps,
	}

	// Apply functional options
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Steps returns how many operations the driver has applied so far.
func (d *Driver) Steps() int {
	return d.steps
}

// RunID returns the identifier stamped on every published step.
func (d *Driver) RunID() string {
	return d.runID
}

// Apply runs a single operation and publishes the step.
func (d *Driver) Apply(ctx context.Context, tr gearbox.Transmission, op Op) (gearbox.Transmission, error) {
	if err := ctx.Err(); err != nil {
		return tr, err
	}
	if d.steps >= d.maxSteps {
		return tr, fmt.Errorf("%w: %d", ErrStepLimit, d.maxSteps)
	}

	next := op.Apply(tr)
	d.steps++
	step := Step{
		RunID:    d.runID,
		Index:    d.steps,
		Op:       op,
		Before:   ViewOf(tr),
		After:    ViewOf(next),
		Accepted: next.Accepted(),
	}

	for _, p := range d.publishers {
		if err := p.Publish(ctx, step); err != nil {
			return next, fmt.Errorf("publish step %d: %w", step.Index, err)
		}
	}
	return next, nil
}

// Run applies every command in order and returns the final transmission.
// Rejected operations do not stop the run; they are reported through the
// published steps.
func (d *Driver) Run(ctx context.Context, tr gearbox.Transmission, script []Command) (gearbox.Transmission, error) {
	d.logger.Debug("run script", zap.String("run_id", d.runID), zap.Int("commands", len(script)))

	for _, cmd := range script {
		for i := 0; i < cmd.Repeat; i++ {
			var err error
			tr, err = d.Apply(ctx, tr, cmd.Op)
			if err != nil {
				return tr, fmt.Errorf("command %q: %w", cmd, err)
			}
		}
	}
	return tr, nil
}

// DriveTo changes speed one step at a time until target is reached,
// shifting only when the transmission demands it.
func (d *Driver) DriveTo(ctx context.Context, tr gearbox.Transmission, target int) (gearbox.Transmission, error) {
	table := tr.Table()
	if target < table.MinSpeed() || target > table.MaxSpeed() {
		return tr, fmt.Errorf("%w: %d outside [%d, %d]", ErrUnreachable, target, table.MinSpeed(), table.MaxSpeed())
	}

	d.logger.Debug("drive", zap.String("run_id", d.runID), zap.Int("from", tr.Speed()), zap.Int("target", target))

	for tr.Speed() != target {
		speedOp, shiftOp, demand := IncreaseSpeed, IncreaseGear, gearbox.StatusIncreaseGearFirst
		if target < tr.Speed() {
			speedOp, shiftOp, demand = DecreaseSpeed, DecreaseGear, gearbox.StatusDecreaseGearFirst
		}

		next, err := d.Apply(ctx, tr, speedOp)
		if err != nil {
			return next, err
		}
		if next.Accepted() {
			tr = next
			continue
		}
		if next.Status() != demand {
			return next, fmt.Errorf("%w: %s", ErrUnreachable, next.Status())
		}

		shifted, err := d.Apply(ctx, next, shiftOp)
		if err != nil {
			return shifted, err
		}
		if !shifted.Accepted() {
			return shifted, fmt.Errorf("%w: %s", ErrUnreachable, shifted.Status())
		}
		tr = shifted
	}

	d.logger.Debug("target reached", zap.String("run_id", d.runID), zap.Int("speed", tr.Speed()), zap.Int("gear", tr.Gear()))
	return tr, nil
}
