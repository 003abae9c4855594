package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/gearbox"
	"github.com/comalice/gearbox/internal/core"
	"github.com/comalice/gearbox/internal/extensibility"
)

var (
	ErrQueueFull      = errors.New("op queue full")
	ErrAlreadyStarted = errors.New("runtime already started")
	ErrNotStarted     = errors.New("runtime not started")
)

// Runtime applies queued operations to a Transmission at fixed tick
// boundaries.
type Runtime struct {
	driver *core.Driver
	logger *zap.Logger

	// mu guards the transmission and the driver, which is not safe for
	// concurrent use.
	mu      sync.Mutex
	tr      gearbox.Transmission
	tickNum uint64

	tickRate time.Duration
	ticker   *time.Ticker

	// Op batching
	batch       []OpWithMeta
	batchMu     sync.Mutex
	sequenceNum uint64

	// Control
	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
	sources    sync.WaitGroup
}

// Config configures the runtime.
type Config struct {
	TickRate      time.Duration // Fixed tick rate (default and for values <= 0: 10ms)
	MaxOpsPerTick int           // Op queue capacity (default and for values <= 0: 1000)
	Logger        *zap.Logger   // Tick errors and dropped ops (default: no-op)
}

// NewRuntime creates a runtime that starts from tr and applies operations
// through driver. A nil driver gets core.NewDriver().
func NewRuntime(tr gearbox.Transmission, driver *core.Driver, cfg Config) *Runtime {
	if cfg.MaxOpsPerTick <= 0 {
		cfg.MaxOpsPerTick = 1000
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 10 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if driver == nil {
		driver = core.NewDriver()
	}

	return &Runtime{
		driver:   driver,
		logger:   cfg.Logger,
		tr:       tr,
		tickRate: cfg.TickRate,
		batch:    make([]OpWithMeta, 0, cfg.MaxOpsPerTick),
		stopped:  make(chan struct{}),
	}
}

// Start begins tick-based execution. The tick loop runs until ctx is done
// or Stop is called.
func (rt *Runtime) Start(ctx context.Context) error {
	if rt.tickCtx != nil {
		return ErrAlreadyStarted
	}

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)

	go rt.tickLoop()

	return nil
}

// Stop halts the tick loop and waits for it and every attached source to
// exit. Operations still queued are discarded.
func (rt *Runtime) Stop() error {
	if rt.tickCancel == nil {
		return ErrNotStarted
	}
	rt.tickCancel()
	rt.ticker.Stop()

	<-rt.stopped
	rt.sources.Wait()
	return nil
}

func (rt *Runtime) tickLoop() {
	defer close(rt.stopped)

	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			if err := rt.safeTick(); err != nil {
				rt.logger.Warn("tick failed", zap.Uint64("tick", rt.TickNumber()), zap.Error(err))
			}
		}
	}
}

// safeTick runs one tick, turning a panic into an error so the loop keeps
// running.
func (rt *Runtime) safeTick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panic: %v", r)
		}
	}()
	return rt.ProcessTick(rt.tickCtx)
}

// ProcessTick applies every queued operation in priority order and advances
// the tick counter. It is called by the tick loop and may be called directly
// on a runtime that was never started.
//
// Rejected operations are not errors. A driver error (context done, step
// limit, publisher failure) stops the tick; the remaining operations of the
// batch are dropped.
func (rt *Runtime) ProcessTick(ctx context.Context) error {
	ops := rt.collectOps()
	sortOps(ops)

	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.tickNum++

	for _, meta := range ops {
		next, err := rt.driver.Apply(ctx, rt.tr, meta.Op)
		if err != nil {
			return fmt.Errorf("tick %d: %w", rt.tickNum, err)
		}
		rt.tr = next
	}
	return nil
}

// collectOps atomically retrieves and clears the batch.
func (rt *Runtime) collectOps() []OpWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	ops := rt.batch
	rt.batch = make([]OpWithMeta, 0, cap(rt.batch))

	return ops
}

// SendOp queues op for the next tick. Safe for concurrent use.
func (rt *Runtime) SendOp(op core.Op) error {
	return rt.SendOpWithPriority(op, 0)
}

// SendOpWithPriority queues op ahead of lower-priority operations of the
// same tick.
func (rt *Runtime) SendOpWithPriority(op core.Op, priority int) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if len(rt.batch) >= cap(rt.batch) {
		return ErrQueueFull
	}

	rt.batch = append(rt.batch, OpWithMeta{
		Op:          op,
		SequenceNum: rt.sequenceNum,
		Priority:    priority,
	})
	rt.sequenceNum++

	return nil
}

// Attach forwards every operation from src into the queue at the given
// priority until src closes its channel or the runtime stops. Operations
// that find the queue full are dropped and logged.
func (rt *Runtime) Attach(src extensibility.OpSource, priority int) error {
	if rt.tickCtx == nil {
		return ErrNotStarted
	}

	rt.sources.Add(1)
	go func() {
		defer rt.sources.Done()
		ops := src.Ops()
		for {
			select {
			case <-rt.tickCtx.Done():
				return
			case op, ok := <-ops:
				if !ok {
					return
				}
				if err := rt.SendOpWithPriority(op, priority); err != nil {
					rt.logger.Warn("op dropped", zap.Stringer("op", op), zap.Error(err))
				}
			}
		}
	}()
	return nil
}

// State returns the transmission as of the last completed tick.
func (rt *Runtime) State() gearbox.Transmission {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.tr
}

// TickNumber returns the number of ticks processed.
func (rt *Runtime) TickNumber() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.tickNum
}
