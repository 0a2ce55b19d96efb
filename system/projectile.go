package system

import (
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

// LaunchSpec describes one projectile to create
type LaunchSpec struct {
	Template     string
	SourceWeapon core.Entity
	WeaponID     string
	Category     component.WeaponCategory
	Origin       vmath.Vec3F
	Direction    vmath.Vec3F
	Speed        float64
	Lifetime     time.Duration // <= 0 = no timeout
}

// ProjectileSystem owns projectile records from launch to resolution or timeout
// Resolved records stay until the next Update so same-tick duplicate contacts see them as resolved
type ProjectileSystem struct {
	spawner EntitySpawner
	clock   engine.TimeProvider
	bus     *event.Bus

	records map[core.Entity]*component.ProjectileComponent
}

func NewProjectileSystem(spawner EntitySpawner, bus *event.Bus, clock engine.TimeProvider) *ProjectileSystem {
	return &ProjectileSystem{
		spawner: spawner,
		clock:   clock,
		bus:     bus,
		records: make(map[core.Entity]*component.ProjectileComponent),
	}
}

// Launch spawns the projectile entity and records its source
func (s *ProjectileSystem) Launch(launch LaunchSpec) (core.Entity, error) {
	e, err := s.spawner.Spawn(launch.Template, launch.Origin)
	if err != nil {
		return core.NoEntity, err
	}

	now := s.clock.Now()
	rec := &component.ProjectileComponent{
		Entity:       e,
		SourceWeapon: launch.SourceWeapon,
		WeaponID:     launch.WeaponID,
		Category:     launch.Category,
		Origin:       launch.Origin,
		Direction:    launch.Direction,
		Speed:        launch.Speed,
		FiredAt:      now,
	}
	if launch.Lifetime > 0 {
		rec.ExpiresAt = now.Add(launch.Lifetime)
	}
	s.records[e] = rec
	return e, nil
}

// Get returns the live record for e
func (s *ProjectileSystem) Get(e core.Entity) (*component.ProjectileComponent, bool) {
	rec, ok := s.records[e]
	return rec, ok
}

// Destroy marks e resolved and removes its entity, the record stays until the next Update
func (s *ProjectileSystem) Destroy(e core.Entity) {
	rec, ok := s.records[e]
	if !ok {
		return
	}
	rec.Resolved = true
	s.spawner.Destroy(e)
}

// Update drops resolved records and times out expired projectiles
func (s *ProjectileSystem) Update() {
	now := s.clock.Now()

	for _, e := range s.sortedEntities() {
		rec, ok := s.records[e]
		if !ok {
			continue
		}

		if rec.Resolved {
			delete(s.records, e)
			continue
		}

		if !rec.ExpiresAt.IsZero() && !now.Before(rec.ExpiresAt) {
			delete(s.records, e)
			s.spawner.Destroy(e)
			s.bus.Emit(event.EventProjectileExpired, &event.ProjectilePayload{Projectile: e, WeaponID: rec.WeaponID}, now)
		}
	}
}

// Clear destroys every in-flight projectile without resolving hits
func (s *ProjectileSystem) Clear() {
	n := 0
	for _, e := range s.sortedEntities() {
		if !s.records[e].Resolved {
			n++
		}
		delete(s.records, e)
		s.spawner.Destroy(e)
	}
	if n > 0 {
		log.Printf("[projectile] cleared %d in flight", n)
	}
}

// Count returns unresolved projectiles
func (s *ProjectileSystem) Count() int {
	n := 0
	for _, rec := range s.records {
		if !rec.Resolved {
			n++
		}
	}
	return n
}

// InFlight returns copies of unresolved records in entity order
func (s *ProjectileSystem) InFlight() []component.ProjectileComponent {
	out := make([]component.ProjectileComponent, 0, len(s.records))
	for _, e := range s.sortedEntities() {
		if rec := s.records[e]; !rec.Resolved {
			out = append(out, *rec)
		}
	}
	return out
}

// PositionAt returns where a projectile is at time t along its straight flight path
func PositionAt(rec component.ProjectileComponent, t time.Time) vmath.Vec3F {
	elapsed := t.Sub(rec.FiredAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	return vmath.V3FAdd(rec.Origin, vmath.V3FScale(rec.Direction, rec.Speed*elapsed))
}

func (s *ProjectileSystem) sortedEntities() []core.Entity {
	return slices.Sorted(maps.Keys(s.records))
}
