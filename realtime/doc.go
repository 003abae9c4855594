// Package realtime provides a tick-based runtime for a Transmission.
//
// Operations may be queued from any goroutine with SendOp. They are batched
// and applied at fixed tick boundaries through a core.Driver, so every
// queued operation is published like a scripted step.
//
// # Example Usage
//
//	tr, _ := gearbox.New(0, 20, 20, 40, 40, 60, 60, 80, 80, 100)
//	rt := realtime.NewRuntime(tr, core.NewDriver(), realtime.Config{
//		TickRate: 10 * time.Millisecond,
//	})
//	rt.Start(ctx)
//	defer rt.Stop()
//	rt.SendOp(core.IncreaseSpeed)
//
// # Operation Ordering Guarantees
//
// Operations within one tick are ordered deterministically using:
//  1. Priority (higher priority applied first)
//  2. Sequence number (FIFO for same priority)
//
// Given the same sequence of SendOp calls between two ticks, the
// transmission always ends in the same state regardless of which goroutines
// made the calls.
//
// # Use Cases
//
//   - Interactive control loops (pedals and shifter as separate sources)
//   - Replaying recorded input at a fixed rate
//   - Tests that need a reproducible interleaving (call ProcessTick directly)
package realtime
