package system

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"slices"
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/vmath"
)

var ErrUnknownKind = errors.New("no target profile for kind")

// ProjectileInfo is what a struck entity sees of the projectile
type ProjectileInfo struct {
	Projectile   core.Entity
	SourceWeapon core.Entity
	WeaponID     string
	Category     component.WeaponCategory
	Point        vmath.Vec3F
}

// Shootable is the hit-acceptance capability of a struck entity
// CheckHit validates the hit and, on acceptance, applies the effect exactly once
type Shootable interface {
	Entity() core.Entity
	CheckHit(info ProjectileInfo) bool
}

// target is the shared state of both variants
type target struct {
	comp    component.TargetComponent
	profile component.TargetProfile

	score ScoreSink
	bus   *event.Bus
	clock engine.TimeProvider
}

func (t *target) Entity() core.Entity {
	return t.comp.Entity
}

// accept flips Active once for a hit from an accepted category
func (t *target) accept(info ProjectileInfo) bool {
	if !t.comp.Active || !t.profile.Accepts.Accepts(info.Category) {
		return false
	}
	t.comp.Active = false
	t.comp.Removing = true
	return true
}

func (t *target) payload() *event.TargetPayload {
	return &event.TargetPayload{
		Entity:   t.comp.Entity,
		Kind:     t.comp.Kind,
		Variant:  t.profile.Variant,
		Position: t.comp.Position,
	}
}

// expire deactivates a target whose lifetime elapsed
func (t *target) expire(now time.Time) {
	if !t.comp.Active || t.comp.ExpiresAt.IsZero() || now.Before(t.comp.ExpiresAt) {
		return
	}
	t.comp.Active = false
	t.comp.Removing = true
	t.bus.Emit(event.EventTargetExpired, t.payload(), now)

	if t.profile.DamageOnExpire {
		if err := t.score.ApplyDamage(1); err != nil {
			log.Printf("[target] %s expiry damage: %v", t.comp.Kind, err)
		}
	}
}

func (t *target) state() *target {
	return t
}

// ScoringTarget awards points on an accepted hit
type ScoringTarget struct {
	target
}

func (t *ScoringTarget) CheckHit(info ProjectileInfo) bool {
	if !t.accept(info) {
		return false
	}
	t.bus.Emit(event.EventTargetHit, t.payload(), t.clock.Now())
	if err := t.score.AddPoints(t.profile.Points); err != nil {
		log.Printf("[target] %s add points: %v", t.comp.Kind, err)
	}
	return true
}

// Hazard damages the player on an accepted hit
type Hazard struct {
	target
}

func (t *Hazard) CheckHit(info ProjectileInfo) bool {
	if !t.accept(info) {
		return false
	}
	t.bus.Emit(event.EventTargetHit, t.payload(), t.clock.Now())
	if err := t.score.ApplyDamage(t.profile.Damage); err != nil {
		log.Printf("[target] %s damage: %v", t.comp.Kind, err)
	}
	return true
}

type targetEntity interface {
	Shootable
	state() *target
}

// TargetSystem creates targets from profiles, expires them and sweeps removed ones
type TargetSystem struct {
	spawner EntitySpawner
	score   ScoreSink
	bus     *event.Bus
	clock   engine.TimeProvider

	profiles map[string]component.TargetProfile
	targets  map[core.Entity]targetEntity
}

func NewTargetSystem(profiles []component.TargetProfile, spawner EntitySpawner, score ScoreSink, bus *event.Bus, clock engine.TimeProvider) *TargetSystem {
	s := &TargetSystem{
		spawner:  spawner,
		score:    score,
		bus:      bus,
		clock:    clock,
		profiles: make(map[string]component.TargetProfile, len(profiles)),
		targets:  make(map[core.Entity]targetEntity),
	}
	for _, p := range profiles {
		s.profiles[p.Kind] = p
	}
	return s
}

// HasProfile reports whether kind can be created
func (s *TargetSystem) HasProfile(kind string) bool {
	_, ok := s.profiles[kind]
	return ok
}

// Create spawns a target of kind at position
func (s *TargetSystem) Create(kind string, position vmath.Vec3F) (core.Entity, error) {
	profile, ok := s.profiles[kind]
	if !ok {
		return core.NoEntity, fmt.Errorf("create %q: %w", kind, ErrUnknownKind)
	}

	e, err := s.spawner.Spawn(kind, position)
	if err != nil {
		return core.NoEntity, fmt.Errorf("spawn %q: %w", kind, err)
	}

	now := s.clock.Now()
	base := target{
		comp: component.TargetComponent{
			Entity:    e,
			Kind:      kind,
			Position:  position,
			Active:    true,
			SpawnedAt: now,
		},
		profile: profile,
		score:   s.score,
		bus:     s.bus,
		clock:   s.clock,
	}
	if profile.Lifetime > 0 {
		base.comp.ExpiresAt = now.Add(profile.Lifetime)
	}

	var t targetEntity
	switch profile.Variant {
	case component.VariantHazard:
		t = &Hazard{target: base}
	default:
		t = &ScoringTarget{target: base}
	}
	s.targets[e] = t

	s.bus.Emit(event.EventTargetSpawned, t.state().payload(), now)
	return e, nil
}

// Lookup returns the Shootable registered for e
func (s *TargetSystem) Lookup(e core.Entity) (Shootable, bool) {
	t, ok := s.targets[e]
	if !ok {
		return nil, false
	}
	return t, true
}

// Update expires due targets, then destroys every target marked for removal
func (s *TargetSystem) Update() {
	now := s.clock.Now()

	// Expiry damage may end the episode and clear the map mid-loop
	for _, e := range s.sortedEntities() {
		if t, ok := s.targets[e]; ok {
			t.state().expire(now)
		}
	}

	for _, e := range s.sortedEntities() {
		if t, ok := s.targets[e]; ok && t.state().comp.Removing {
			s.remove(e, t, now)
		}
	}
}

// Clear destroys every target
func (s *TargetSystem) Clear() {
	now := s.clock.Now()
	for _, e := range s.sortedEntities() {
		if t, ok := s.targets[e]; ok {
			s.remove(e, t, now)
		}
	}
}

// LiveCount returns targets that can still be hit
func (s *TargetSystem) LiveCount() int {
	n := 0
	for _, t := range s.targets {
		if t.state().comp.Active {
			n++
		}
	}
	return n
}

// Targets returns copies of all registered targets in entity order
func (s *TargetSystem) Targets() []component.TargetComponent {
	out := make([]component.TargetComponent, 0, len(s.targets))
	for _, e := range s.sortedEntities() {
		out = append(out, s.targets[e].state().comp)
	}
	return out
}

// Profile returns the profile for kind
func (s *TargetSystem) Profile(kind string) (component.TargetProfile, bool) {
	p, ok := s.profiles[kind]
	return p, ok
}

func (s *TargetSystem) remove(e core.Entity, t targetEntity, now time.Time) {
	delete(s.targets, e)
	s.spawner.Destroy(e)
	s.bus.Emit(event.EventTargetDestroyed, t.state().payload(), now)
}

func (s *TargetSystem) sortedEntities() []core.Entity {
	return slices.Sorted(maps.Keys(s.targets))
}
