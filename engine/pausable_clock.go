package engine

import (
	"sync"
	"time"
)

// PausableClock provides pausable game time on top of a real time source
// Game time = source time - cumulative paused duration, frozen while paused
type PausableClock struct {
	mu     sync.RWMutex
	source TimeProvider

	paused      bool
	pausedAt    time.Time     // Source time when the current pause started
	totalPaused time.Duration // Cumulative completed pause duration
}

// NewPausableClock creates a running clock over the monotonic system time
func NewPausableClock() *PausableClock {
	return NewPausableClockWithSource(NewMonotonicTimeProvider())
}

// NewPausableClockWithSource creates a running clock over an injected source (MockTimeProvider in tests)
func NewPausableClockWithSource(source TimeProvider) *PausableClock {
	return &PausableClock{source: source}
}

// Now returns current game time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pausedAt.Add(-pc.totalPaused)
	}
	return pc.source.Now().Add(-pc.totalPaused)
}

// RealTime returns source time (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Pause stops game time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.source.Now()
}

// Resume continues game time advancement, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	if d := pc.source.Now().Sub(pc.pausedAt); d > 0 {
		pc.totalPaused += d
	}
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including the current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused {
		if d := pc.source.Now().Sub(pc.pausedAt); d > 0 {
			total += d
		}
	}
	return total
}
