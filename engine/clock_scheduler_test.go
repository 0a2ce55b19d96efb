package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/rangefire/engine/status"
)

type countingTicker struct {
	ticks atomic.Int32
}

func (c *countingTicker) Tick() { c.ticks.Add(1) }

func TestClockSchedulerTicksUntilCancelled(t *testing.T) {
	target := &countingTicker{}
	reg := status.NewRegistry()
	cs := NewClockScheduler(target, NewPausableClock(), 2*time.Millisecond, reg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cs.Run(ctx) }()

	select {
	case <-cs.Updates():
	case <-time.After(time.Second):
		t.Fatal("no tick signalled within 1s")
	}

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	n := target.ticks.Load()
	if n < 2 {
		t.Errorf("expected several ticks, got %d", n)
	}
	if got := reg.Ints.Get("engine.ticks").Load(); got != int64(n) {
		t.Errorf("engine.ticks = %d, want %d", got, n)
	}
	if cs.TickCount() != uint64(n) {
		t.Errorf("TickCount = %d, want %d", cs.TickCount(), n)
	}
}

func TestClockSchedulerTicksWhilePaused(t *testing.T) {
	target := &countingTicker{}
	clock := NewPausableClock()
	clock.Pause()
	cs := NewClockScheduler(target, clock, time.Millisecond, status.NewRegistry())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = cs.Run(ctx)

	if target.ticks.Load() == 0 {
		t.Error("paused game clock should not stop the tick loop")
	}
}
