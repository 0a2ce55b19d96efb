package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rangefire/engine/status"
)

// Ticker is the simulation driven by ClockScheduler
type Ticker interface {
	Tick()
}

// ClockScheduler runs the simulation on a fixed tick
// Ticks keep firing while the game clock is paused so intents (resume, menu) are still drained;
// the simulation decides what a paused tick does
type ClockScheduler struct {
	target       Ticker
	clock        *PausableClock
	tickInterval time.Duration

	// Next tick deadline in real time for drift correction
	nextTickDeadline time.Time

	tickCount atomic.Uint64

	// Signals the render loop that a tick completed, never blocks
	updateDone chan struct{}

	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler for target with the specified tick interval
func NewClockScheduler(target Ticker, clock *PausableClock, tickInterval time.Duration, reg *status.Registry) *ClockScheduler {
	return &ClockScheduler{
		target:       target,
		clock:        clock,
		tickInterval: tickInterval,
		updateDone:   make(chan struct{}, 1),
		statTicks:    reg.Ints.Get("engine.ticks"),
	}
}

// Updates returns the tick completion signal channel
func (cs *ClockScheduler) Updates() <-chan struct{} {
	return cs.updateDone
}

// TickCount returns ticks processed since Run started
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Run blocks, ticking until ctx is cancelled
func (cs *ClockScheduler) Run(ctx context.Context) error {
	cs.nextTickDeadline = cs.clock.RealTime().Add(cs.tickInterval)

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		cs.processTick()

		now := cs.clock.RealTime()
		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

		// Too far behind (suspend, debugger): skip ahead instead of bursting
		if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
			cs.nextTickDeadline = now.Add(cs.tickInterval)
		}

		sleep := cs.nextTickDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// processTick executes one clock cycle
func (cs *ClockScheduler) processTick() {
	cs.target.Tick()

	ticks := cs.tickCount.Add(1)
	cs.statTicks.Store(int64(ticks))

	select {
	case cs.updateDone <- struct{}{}:
	default:
	}
}
