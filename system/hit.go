package system

import (
	"sync/atomic"

	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/vmath"
)

// Collision is one contact reported by the physics layer, duplicates are allowed
type Collision struct {
	Projectile core.Entity
	Other      core.Entity
	Point      vmath.Vec3F
	Normal     vmath.Vec3F
}

// HitOutcome classifies what Resolve did with a contact
type HitOutcome uint8

const (
	HitIgnoredUnknown  HitOutcome = iota // not a tracked projectile
	HitIgnoredSelf                       // struck its own weapon, projectile kept
	HitIgnoredResolved                   // projectile already consumed
	HitMiss                              // projectile consumed, struck entity rejected or not shootable
	HitAccepted                          // projectile consumed, effect applied
	HitIgnoredInactive                   // session not playing
)

func (o HitOutcome) String() string {
	switch o {
	case HitIgnoredUnknown:
		return "ignored-unknown"
	case HitIgnoredSelf:
		return "ignored-self"
	case HitIgnoredResolved:
		return "ignored-resolved"
	case HitMiss:
		return "miss"
	case HitAccepted:
		return "hit"
	case HitIgnoredInactive:
		return "ignored-inactive"
	default:
		return "unknown"
	}
}

// ShootableLookup finds the hit-acceptance capability of an entity
type ShootableLookup interface {
	Lookup(e core.Entity) (Shootable, bool)
}

// HitResolver maps a projectile contact to the struck entity's acceptance logic
type HitResolver struct {
	projectiles *ProjectileSystem
	shootables  ShootableLookup
	hierarchy   Hierarchy
	bus         *event.Bus
	clock       engine.TimeProvider

	// Telemetry
	statResolved *atomic.Int64
	statIgnored  *atomic.Int64
}

func NewHitResolver(projectiles *ProjectileSystem, shootables ShootableLookup, hierarchy Hierarchy, bus *event.Bus, clock engine.TimeProvider, reg *status.Registry) *HitResolver {
	return &HitResolver{
		projectiles:  projectiles,
		shootables:   shootables,
		hierarchy:    hierarchy,
		bus:          bus,
		clock:        clock,
		statResolved: reg.Ints.Get("hit.resolved"),
		statIgnored:  reg.Ints.Get("hit.ignored"),
	}
}

// Resolve processes one contact
// The projectile resolves at most once; the struck entity decides acceptance
func (r *HitResolver) Resolve(c Collision) HitOutcome {
	rec, ok := r.projectiles.Get(c.Projectile)
	if !ok {
		r.statIgnored.Add(1)
		return HitIgnoredUnknown
	}
	if rec.Resolved {
		r.statIgnored.Add(1)
		return HitIgnoredResolved
	}
	if c.Other == rec.SourceWeapon || (rec.SourceWeapon != core.NoEntity && r.hierarchy.IsDescendant(c.Other, rec.SourceWeapon)) {
		r.statIgnored.Add(1)
		return HitIgnoredSelf
	}

	// Copy before CheckHit: the effect may end the episode and clear the record
	info := ProjectileInfo{
		Projectile:   rec.Entity,
		SourceWeapon: rec.SourceWeapon,
		WeaponID:     rec.WeaponID,
		Category:     rec.Category,
		Point:        c.Point,
	}

	// Latch first so a reentrant duplicate from an observer is ignored
	rec.Resolved = true

	accepted := false
	if target, ok := r.shootables.Lookup(c.Other); ok {
		accepted = target.CheckHit(info)
	}

	r.projectiles.Destroy(c.Projectile)
	r.statResolved.Add(1)

	r.bus.Emit(event.EventProjectileImpact, &event.ImpactPayload{
		Projectile: c.Projectile,
		Struck:     c.Other,
		Point:      c.Point,
		Normal:     c.Normal,
		Accepted:   accepted,
	}, r.clock.Now())

	if accepted {
		return HitAccepted
	}
	return HitMiss
}
