// Package production provides production integrations: step publishing,
// metrics, visualization and scenario/report files.
package production

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/comalice/gearbox/internal/core"
)

// LogPublisher writes each step to a zap logger. Accepted steps are logged
// at debug level, rejected ones at info so a default logger shows only the
// interesting part of a run.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher; a nil logger discards everything.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, step core.Step) error {
	fields := []zap.Field{
		zap.Int("step", step.Index),
		zap.Stringer("op", step.Op),
		zap.Int("speed", step.After.Speed),
		zap.Int("gear", step.After.Gear),
		zap.String("status", step.After.Status),
	}
	if step.RunID != "" {
		fields = append(fields, zap.String("run_id", step.RunID))
	}

	if step.Accepted {
		p.logger.Debug("step accepted", fields...)
	} else {
		p.logger.Info("step rejected", fields...)
	}
	return nil
}

// Journal keeps every published step in memory, in order.
type Journal struct {
	mu    sync.Mutex
	steps []core.Step
}

// NewJournal creates an empty Journal.
func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Publish(ctx context.Context, step core.Step) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.steps = append(j.steps, step)
	return nil
}

// Steps returns a copy of the recorded steps.
func (j *Journal) Steps() []core.Step {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]core.Step, len(j.steps))
	copy(out, j.steps)
	return out
}

// Counts returns the number of accepted and rejected steps.
func (j *Journal) Counts() (accepted, rejected int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, s := range j.steps {
		if s.Accepted {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}

// MultiPublisher fans a step out to several publishers. Every publisher sees
// the step even if an earlier one fails; the errors are joined.
type MultiPublisher []core.Publisher

func (m MultiPublisher) Publish(ctx context.Context, step core.Step) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, step); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
