package physics

import (
	"maps"
	"slices"
	"sync"

	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/vmath"
)

// AimAssist is a muzzle that points at the nearest live target
// It tracks targets from bus events, so Pose never calls back into the session
type AimAssist struct {
	mu      sync.Mutex
	origin  vmath.Vec3F
	forward vmath.Vec3F
	targets map[core.Entity]vmath.Vec3F
	subs    []event.Subscription
}

// NewAimAssist aims from origin, falling back to forward with no target in sight
func NewAimAssist(origin, forward vmath.Vec3F) *AimAssist {
	return &AimAssist{
		origin:  origin,
		forward: forward,
		targets: make(map[core.Entity]vmath.Vec3F),
	}
}

func (a *AimAssist) Attach(bus *event.Bus) {
	a.subs = append(a.subs, bus.Register(a)...)
}

func (a *AimAssist) Detach(bus *event.Bus) {
	for _, s := range a.subs {
		bus.Unsubscribe(s)
	}
	a.subs = nil
}

func (a *AimAssist) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTargetSpawned,
		event.EventTargetHit,
		event.EventTargetExpired,
		event.EventTargetDestroyed,
	}
}

func (a *AimAssist) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.TargetPayload)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if ev.Type == event.EventTargetSpawned {
		a.targets[p.Entity] = p.Position
		return
	}
	delete(a.targets, p.Entity)
}

// Pose returns the muzzle origin and the direction to the nearest tracked target
func (a *AimAssist) Pose() (vmath.Vec3F, vmath.Vec3F) {
	a.mu.Lock()
	defer a.mu.Unlock()

	best, bestDist := vmath.Vec3F{}, -1.0
	// Entity order keeps ties deterministic
	for _, e := range slices.Sorted(maps.Keys(a.targets)) {
		pos := a.targets[e]
		if d := vmath.V3FDistSq(a.origin, pos); bestDist < 0 || d < bestDist {
			best, bestDist = pos, d
		}
	}
	if bestDist <= 0 {
		return a.origin, a.forward
	}
	return a.origin, vmath.V3FSub(best, a.origin)
}

// Tracked returns the number of live targets being tracked
func (a *AimAssist) Tracked() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.targets)
}
