package system

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/vmath"
)

var ErrWeaponMisconfigured = errors.New("weapon has no projectile template or muzzle")

// WeaponConfig holds the static tuning of one weapon
type WeaponConfig struct {
	ID       string
	Category component.WeaponCategory

	MagazineSize int
	ReserveAmmo  int // -1 = unlimited

	FireCooldown   time.Duration
	ReloadDuration time.Duration
	AutoReload     bool

	ProjectileSpeed    float64
	ProjectileLifetime time.Duration // <= 0 = no timeout
}

// Muzzle supplies the launch pose at fire time
type Muzzle interface {
	Pose() (origin, direction vmath.Vec3F)
}

// FixedMuzzle is a static launch pose
type FixedMuzzle struct {
	Origin    vmath.Vec3F
	Direction vmath.Vec3F
}

func (m FixedMuzzle) Pose() (vmath.Vec3F, vmath.Vec3F) {
	return m.Origin, m.Direction
}

// ProjectileLauncher creates projectile entities for a weapon
type ProjectileLauncher interface {
	Launch(launch LaunchSpec) (core.Entity, error)
}

// Weapon is the per-weapon ammo, cooldown and reload state machine
// Reload and cooldown are deadlines against the shared clock; a due reload completes
// on Update and on every accessor, whichever observes it first
type Weapon struct {
	cfg   WeaponConfig
	state component.WeaponComponent

	clock    engine.TimeProvider
	bus      *event.Bus
	launcher ProjectileLauncher

	template        string
	muzzle          Muzzle
	misconfigLogged bool

	// Telemetry
	statAmmo *atomic.Int64
}

// NewWeapon creates a weapon with a full magazine, bound to its scene entity
// It cannot fire until Configure supplies a projectile template and a muzzle
func NewWeapon(cfg WeaponConfig, entity core.Entity, launcher ProjectileLauncher, bus *event.Bus, clock engine.TimeProvider, reg *status.Registry) *Weapon {
	cfg.MagazineSize = max(cfg.MagazineSize, 1)
	if cfg.ReserveAmmo < 0 {
		cfg.ReserveAmmo = -1
	}

	w := &Weapon{
		cfg:      cfg,
		clock:    clock,
		bus:      bus,
		launcher: launcher,
		state: component.WeaponComponent{
			Entity:       entity,
			ID:           cfg.ID,
			Category:     cfg.Category,
			MagazineSize: cfg.MagazineSize,
			CurrentAmmo:  cfg.MagazineSize,
			ReserveAmmo:  cfg.ReserveAmmo,
		},
		statAmmo: reg.Ints.Get(fmt.Sprintf("weapon.%s.ammo", cfg.ID)),
	}
	w.statAmmo.Store(int64(w.state.CurrentAmmo))
	return w
}

// Configure supplies the projectile template and muzzle, both required to fire
func (w *Weapon) Configure(template string, muzzle Muzzle) {
	w.template = template
	w.muzzle = muzzle
	w.misconfigLogged = false
}

// Configured reports whether the weapon can launch projectiles
func (w *Weapon) Configured() bool {
	return w.template != "" && w.muzzle != nil
}

func (w *Weapon) ID() string {
	return w.cfg.ID
}

func (w *Weapon) Entity() core.Entity {
	return w.state.Entity
}

func (w *Weapon) Category() component.WeaponCategory {
	return w.cfg.Category
}

// Fire launches one projectile when Ready
// Returns the projectile entity and true on a shot; every other outcome is a no-op
func (w *Weapon) Fire() (core.Entity, bool) {
	now := w.clock.Now()
	w.completeReload(now)

	if !w.Configured() {
		w.reportMisconfigured()
		return core.NoEntity, false
	}
	if w.state.Reload == component.ReloadReloading || now.Before(w.state.CooldownUntil) {
		return core.NoEntity, false
	}

	if w.state.CurrentAmmo == 0 {
		if w.cfg.AutoReload {
			w.startReload(now)
		}
		return core.NoEntity, false
	}

	origin, dir := w.muzzle.Pose()
	dir = vmath.V3FNormalize(dir)
	projectile, err := w.launcher.Launch(LaunchSpec{
		Template:     w.template,
		SourceWeapon: w.state.Entity,
		WeaponID:     w.cfg.ID,
		Category:     w.cfg.Category,
		Origin:       origin,
		Direction:    dir,
		Speed:        w.cfg.ProjectileSpeed,
		Lifetime:     w.cfg.ProjectileLifetime,
	})
	if err != nil {
		log.Printf("[weapon] %s launch failed: %v", w.cfg.ID, err)
		return core.NoEntity, false
	}

	w.state.CurrentAmmo--
	w.state.CooldownUntil = now.Add(w.cfg.FireCooldown)
	w.statAmmo.Store(int64(w.state.CurrentAmmo))

	w.bus.Emit(event.EventWeaponFired, &event.WeaponFiredPayload{
		WeaponPayload: w.payload(),
		Projectile:    projectile,
		Category:      w.cfg.Category,
		Origin:        origin,
		Direction:     dir,
		Speed:         w.cfg.ProjectileSpeed,
	}, now)

	if w.state.CurrentAmmo == 0 && w.cfg.AutoReload {
		w.startReload(now)
	}
	return projectile, true
}

// Reload starts a reload unless one is running, the magazine is full, or the reserve is exactly 0
func (w *Weapon) Reload() bool {
	now := w.clock.Now()
	w.completeReload(now)

	if w.state.Reload == component.ReloadReloading {
		return false
	}
	return w.startReload(now)
}

// RestartReload cancels an in-flight reload and starts the timer over
// Without an in-flight reload it behaves like Reload
func (w *Weapon) RestartReload() bool {
	now := w.clock.Now()
	w.completeReload(now)

	if w.state.Reload == component.ReloadReloading {
		w.cancel(now)
	}
	return w.startReload(now)
}

// CancelReload abandons an in-flight reload without loading anything
func (w *Weapon) CancelReload() bool {
	now := w.clock.Now()
	w.completeReload(now)

	if w.state.Reload != component.ReloadReloading {
		return false
	}
	w.cancel(now)
	return true
}

// Update completes a due reload
func (w *Weapon) Update() {
	w.completeReload(w.clock.Now())
}

// State returns the derived weapon state at the current time
func (w *Weapon) State() component.WeaponState {
	now := w.clock.Now()
	w.completeReload(now)
	return derivedState(w.state, now)
}

// Snapshot returns a copy of the weapon component
func (w *Weapon) Snapshot() component.WeaponComponent {
	w.completeReload(w.clock.Now())
	return w.state
}

// View is a read-only Snapshot and State at now
// A due reload is shown loaded but left for Update to complete and announce
func (w *Weapon) View(now time.Time) (component.WeaponComponent, component.WeaponState) {
	st := w.state
	if reloadDue(st, now) {
		st = loaded(st, w.cfg.FireCooldown)
	}
	return st, derivedState(st, now)
}

func derivedState(st component.WeaponComponent, now time.Time) component.WeaponState {
	switch {
	case st.Reload == component.ReloadReloading:
		return component.WeaponReloading
	case st.CurrentAmmo == 0:
		return component.WeaponEmpty
	case now.Before(st.CooldownUntil):
		return component.WeaponCooldown
	default:
		return component.WeaponReady
	}
}

func reloadDue(st component.WeaponComponent, now time.Time) bool {
	return st.Reload == component.ReloadReloading && !now.Before(st.ReloadUntil)
}

// loaded returns st with its reload finished at the deadline
func loaded(st component.WeaponComponent, cooldown time.Duration) component.WeaponComponent {
	if st.UnlimitedReserve() {
		st.CurrentAmmo = st.MagazineSize
	} else {
		load := min(st.MagazineSize-st.CurrentAmmo, st.ReserveAmmo)
		st.CurrentAmmo += load
		st.ReserveAmmo -= load
	}
	st.CooldownUntil = st.ReloadUntil.Add(cooldown)
	st.Reload = component.ReloadIdle
	st.ReloadUntil = time.Time{}
	return st
}

func (w *Weapon) startReload(now time.Time) bool {
	if w.state.CurrentAmmo >= w.state.MagazineSize || w.state.ReserveAmmo == 0 {
		return false
	}

	w.state.Reload = component.ReloadReloading
	w.state.ReloadUntil = now.Add(w.cfg.ReloadDuration)
	w.bus.Emit(event.EventWeaponReloadStarted, w.payloadPtr(), now)
	return true
}

func (w *Weapon) cancel(now time.Time) {
	w.state.Reload = component.ReloadIdle
	w.state.ReloadUntil = time.Time{}
	w.bus.Emit(event.EventWeaponReloadCancelled, w.payloadPtr(), now)
}

// completeReload loads the magazine once the deadline passed
// The cooldown restarts at the deadline, not at the observation time
func (w *Weapon) completeReload(now time.Time) {
	if !reloadDue(w.state, now) {
		return
	}

	completedAt := w.state.ReloadUntil
	w.state = loaded(w.state, w.cfg.FireCooldown)
	w.statAmmo.Store(int64(w.state.CurrentAmmo))

	w.bus.Emit(event.EventWeaponReloaded, w.payloadPtr(), completedAt)
}

func (w *Weapon) reportMisconfigured() {
	if w.misconfigLogged {
		return
	}
	w.misconfigLogged = true
	log.Printf("[weapon] %s: %v", w.cfg.ID, ErrWeaponMisconfigured)
	w.bus.Emit(event.EventWeaponMisconfigured, w.payloadPtr(), w.clock.Now())
}

func (w *Weapon) payload() event.WeaponPayload {
	return event.WeaponPayload{
		Weapon:      w.state.Entity,
		WeaponID:    w.cfg.ID,
		CurrentAmmo: w.state.CurrentAmmo,
		ReserveAmmo: w.state.ReserveAmmo,
	}
}

func (w *Weapon) payloadPtr() *event.WeaponPayload {
	p := w.payload()
	return &p
}
