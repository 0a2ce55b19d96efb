package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/event"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// testRig bundles the shared collaborators of a single-threaded simulation
type testRig struct {
	src   *engine.MockTimeProvider
	clock *engine.PausableClock
	bus   *event.Bus
	reg   *status.Registry
	world *engine.World
}

func newRig() *testRig {
	src := engine.NewMockTimeProvider(testEpoch)
	return &testRig{
		src:   src,
		clock: engine.NewPausableClockWithSource(src),
		bus:   event.NewBus(),
		reg:   status.NewRegistry(),
		world: engine.NewWorld(),
	}
}

func (r *testRig) advance(d time.Duration) {
	r.src.Advance(d)
}

// eventLog records every published event of the watched types
type eventLog struct {
	events []event.GameEvent
}

func (r *testRig) record(types ...event.EventType) *eventLog {
	l := &eventLog{}
	for _, t := range types {
		r.bus.Subscribe(t, func(ev event.GameEvent) { l.events = append(l.events, ev) })
	}
	return l
}

func (l *eventLog) count(t event.EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (l *eventLog) last(t event.EventType) (event.GameEvent, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Type == t {
			return l.events[i], true
		}
	}
	return event.GameEvent{}, false
}

func (l *eventLog) reset() {
	l.events = nil
}

func scoringProfile(kind string) component.TargetProfile {
	return component.TargetProfile{
		Kind:    kind,
		Variant: component.VariantScoring,
		Points:  1,
		Accepts: component.CategoryAny,
	}
}

func hazardProfile(kind string) component.TargetProfile {
	return component.TargetProfile{
		Kind:    kind,
		Variant: component.VariantHazard,
		Damage:  1,
		Accepts: component.CategoryAny,
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// scoreRecorder is a ScoreSink that only counts what it receives
type scoreRecorder struct {
	points int
	damage int
}

func (s *scoreRecorder) AddPoints(n int) error {
	s.points += n
	return nil
}

func (s *scoreRecorder) ApplyDamage(n int) error {
	s.damage += n
	return nil
}
