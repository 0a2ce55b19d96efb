package system

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/config"
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/event"
)

type sessionRig struct {
	*testRig
	intents *event.IntentQueue
	session *Session
	fired   *eventLog
	states  *eventLog
}

func newSessionRig(t *testing.T, mutate func(*config.Config), contacts ContactSource) *sessionRig {
	t.Helper()
	cfg := config.Default()
	cfg.Spawn.MaxPerTick = 0
	cfg.Spawn.Candidates = []config.CandidateConfig{{Kind: "target", Weight: 1}}
	if mutate != nil {
		mutate(cfg)
	}
	mustNoErr(t, cfg.Validate())

	r := newRig()
	sr := &sessionRig{testRig: r, intents: event.NewIntentQueue()}
	sr.fired = r.record(event.EventWeaponFired)
	sr.states = r.record(event.EventSessionStateChanged)

	s, err := NewSession(cfg, SessionDeps{
		Clock:    r.clock,
		Bus:      r.bus,
		Intents:  sr.intents,
		Scene:    r.world,
		Status:   r.reg,
		Contacts: contacts,
	})
	mustNoErr(t, err)
	t.Cleanup(s.Close)
	sr.session = s
	return sr
}

func (sr *sessionRig) send(intents ...event.Intent) {
	for _, in := range intents {
		sr.intents.Push(in)
	}
	sr.session.Tick()
}

// shoot fires through the intent path and feeds a contact with the first live target
func (sr *sessionRig) shoot(t *testing.T) HitOutcome {
	t.Helper()
	before := sr.fired.count(event.EventWeaponFired)
	sr.send(event.IntentFire)
	if sr.fired.count(event.EventWeaponFired) == before {
		t.Fatal("weapon did not fire")
	}
	ev, _ := sr.fired.last(event.EventWeaponFired)
	projectile := ev.Payload.(*event.WeaponFiredPayload).Projectile

	target := sr.firstTarget(t)
	return sr.session.Collide(Collision{Projectile: projectile, Other: target})
}

func (sr *sessionRig) firstTarget(t *testing.T) core.Entity {
	t.Helper()
	for _, tc := range sr.session.Snapshot().Targets {
		if tc.Active {
			return tc.Entity
		}
	}
	t.Fatal("no live target")
	return core.NoEntity
}

func TestSessionStartsInMenu(t *testing.T) {
	sr := newSessionRig(t, nil, nil)

	snap := sr.session.Snapshot()
	if snap.State != component.SessionMenu {
		t.Fatalf("initial state = %v", snap.State)
	}
	if snap.Episode != "" || snap.LiveTargets != 0 {
		t.Errorf("menu snapshot = %+v", snap)
	}
	if snap.Score.Lives != 3 {
		t.Errorf("lives = %d, want 3", snap.Score.Lives)
	}

	// Menu does not simulate
	sr.advance(time.Minute)
	sr.session.Tick()
	if sr.session.Snapshot().LiveTargets != 0 {
		t.Error("targets spawned in menu")
	}
}

func TestSessionLifecycle(t *testing.T) {
	sr := newSessionRig(t, nil, nil)

	if !sr.session.StartSession() {
		t.Fatal("StartSession from menu failed")
	}
	sr.session.Tick()
	snap := sr.session.Snapshot()
	if snap.State != component.SessionPlaying || snap.Episode == "" {
		t.Fatalf("after start = %v episode %q", snap.State, snap.Episode)
	}
	if snap.Plan.RequiredCount != 1 || snap.LiveTargets != 1 {
		t.Errorf("required=%d live=%d, want 1/1", snap.Plan.RequiredCount, snap.LiveTargets)
	}

	if sr.session.StartSession() {
		t.Error("StartSession while playing should be rejected")
	}

	sr.session.ReturnToMenu()
	snap = sr.session.Snapshot()
	if snap.State != component.SessionMenu || snap.LiveTargets != 0 {
		t.Errorf("after menu state=%v live=%d", snap.State, snap.LiveTargets)
	}
	// Only the weapon entity survives an abandoned episode
	if sr.world.Count() != 1 {
		t.Errorf("world entities = %d, want 1", sr.world.Count())
	}

	want := []component.SessionState{component.SessionPlaying, component.SessionMenu}
	if len(sr.states.events) != len(want) {
		t.Fatalf("state events = %d, want %d", len(sr.states.events), len(want))
	}
	for i, ev := range sr.states.events {
		if got := ev.Payload.(*event.SessionStatePayload).To; got != want[i] {
			t.Errorf("transition %d to %v, want %v", i, got, want[i])
		}
	}
}

func TestPauseFreezesEscalation(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	sr.session.StartSession()
	sr.session.Tick()

	sr.advance(5 * time.Second)
	sr.send(event.IntentPauseToggle)
	if sr.session.State() != component.SessionPaused {
		t.Fatalf("state = %v, want paused", sr.session.State())
	}

	sr.advance(time.Hour)
	sr.session.Tick()
	if got := sr.session.Snapshot().Plan.RequiredCount; got != 1 {
		t.Errorf("RequiredCount while paused = %d, want 1", got)
	}

	sr.send(event.IntentPauseToggle)
	if got := sr.session.Snapshot().Plan.RequiredCount; got != 1 {
		t.Errorf("RequiredCount right after resume = %d, want 1", got)
	}

	sr.advance(5 * time.Second)
	sr.session.Tick()
	if got := sr.session.Snapshot().Plan.RequiredCount; got != 2 {
		t.Errorf("RequiredCount after 10s of play = %d, want 2", got)
	}
}

func TestPauseToggleOutsideEpisode(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	if sr.session.PauseToggle() {
		t.Error("PauseToggle in menu should be a no-op")
	}
	if sr.clock.IsPaused() {
		t.Error("clock paused from menu")
	}
}

func TestFireOnlyWhilePlaying(t *testing.T) {
	sr := newSessionRig(t, nil, nil)

	sr.send(event.IntentFire, event.IntentReload)
	if sr.fired.count(event.EventWeaponFired) != 0 {
		t.Fatal("fired in menu")
	}

	sr.session.StartSession()
	sr.send(event.IntentFire)
	snap := sr.session.Snapshot()
	if snap.Weapon.CurrentAmmo != 11 || len(snap.Projectiles) != 1 {
		t.Errorf("ammo=%d projectiles=%d, want 11/1", snap.Weapon.CurrentAmmo, len(snap.Projectiles))
	}

	sr.send(event.IntentPauseToggle)
	sr.advance(time.Second)
	sr.send(event.IntentFire)
	if sr.fired.count(event.EventWeaponFired) != 1 {
		t.Error("fired while paused")
	}
}

func TestHitAwardsScore(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	sr.session.StartSession()
	sr.session.Tick()

	if got := sr.shoot(t); got != HitAccepted {
		t.Fatalf("outcome = %v, want hit", got)
	}
	snap := sr.session.Snapshot()
	if snap.Score.Score != 1 || snap.Score.MaxScore != 1 {
		t.Errorf("score = %+v", snap.Score)
	}

	// The hit target is swept and replaced on the next tick
	sr.session.Tick()
	if got := sr.session.Snapshot().LiveTargets; got != 1 {
		t.Errorf("live after replacement = %d, want 1", got)
	}
}

func TestLevelLostOnce(t *testing.T) {
	sr := newSessionRig(t, func(c *config.Config) {
		c.Score.StartingLives = 1
		c.Spawn.Candidates = []config.CandidateConfig{{Kind: "bomb", Weight: 1}}
	}, nil)
	lost := sr.record(event.EventLevelLost)

	sr.session.StartSession()
	sr.session.Tick()
	firstEpisode := sr.session.Snapshot().Episode

	if got := sr.shoot(t); got != HitAccepted {
		t.Fatalf("outcome = %v, want hit", got)
	}
	snap := sr.session.Snapshot()
	if snap.State != component.SessionLost {
		t.Fatalf("state = %v, want lost", snap.State)
	}
	if snap.LiveTargets != 0 || len(snap.Projectiles) != 0 {
		t.Errorf("lost episode left live=%d projectiles=%d", snap.LiveTargets, len(snap.Projectiles))
	}
	if sr.session.OnLevelLost() {
		t.Error("second level-lost accepted")
	}
	if lost.count(event.EventLevelLost) != 1 {
		t.Errorf("level-lost events = %d", lost.count(event.EventLevelLost))
	}

	// Contacts after the loss are inert
	if got := sr.session.Collide(Collision{Projectile: 999, Other: 1}); got != HitIgnoredInactive {
		t.Errorf("collide in lost = %v", got)
	}

	if !sr.session.StartSession() {
		t.Fatal("restart from lost failed")
	}
	snap = sr.session.Snapshot()
	if snap.State != component.SessionPlaying || snap.Score.Lives != 1 {
		t.Errorf("after restart state=%v lives=%d", snap.State, snap.Score.Lives)
	}
	if snap.Episode == firstEpisode {
		t.Error("restart reused the episode id")
	}
}

func TestCountdownCompletesAndAdvances(t *testing.T) {
	sr := newSessionRig(t, func(c *config.Config) {
		c.Score.Mode = "countdown"
		c.Score.Levels = []config.LevelConfig{{Target: 2}, {Target: 3}}
	}, nil)
	complete := sr.record(event.EventLevelComplete)

	sr.session.StartSession()
	sr.session.Tick()
	if got := sr.session.Snapshot().Score.TargetsLeft; got != 2 {
		t.Fatalf("TargetsLeft = %d, want 2", got)
	}

	sr.shoot(t)
	if got := sr.session.Snapshot().Score.TargetsLeft; got != 1 {
		t.Fatalf("TargetsLeft after one hit = %d", got)
	}

	// Two shots in flight and a reload running when the level completes
	reloads := sr.record(event.EventWeaponReloadCancelled, event.EventWeaponReloaded)
	sr.advance(time.Second)
	sr.send(event.IntentFire)
	ev, _ := sr.fired.last(event.EventWeaponFired)
	first := ev.Payload.(*event.WeaponFiredPayload).Projectile
	sr.advance(300 * time.Millisecond)
	sr.send(event.IntentFire, event.IntentReload)
	if got := sr.session.Snapshot(); got.WeaponState != component.WeaponReloading || len(got.Projectiles) != 2 {
		t.Fatalf("before completion weapon=%v in flight=%d, want reloading/2", got.WeaponState, len(got.Projectiles))
	}
	sr.session.Collide(Collision{Projectile: first, Other: sr.firstTarget(t)})

	snap := sr.session.Snapshot()
	if snap.State != component.SessionComplete {
		t.Fatalf("state = %v, want complete", snap.State)
	}
	if snap.Level != 1 {
		t.Errorf("level = %d, want 1", snap.Level)
	}
	if complete.count(event.EventLevelComplete) != 1 {
		t.Errorf("complete events = %d", complete.count(event.EventLevelComplete))
	}
	if snap.WeaponState == component.WeaponReloading || len(snap.Projectiles) != 0 {
		t.Errorf("after completion weapon=%v in flight=%d, want no reload and no projectiles", snap.WeaponState, len(snap.Projectiles))
	}
	if sr.world.Count() != 1 {
		t.Errorf("world entities = %d, want only the weapon", sr.world.Count())
	}

	// The cancelled reload never loads while the session waits in Complete
	ammo := snap.Weapon.CurrentAmmo
	sr.advance(5 * time.Second)
	sr.session.Tick()
	if got := sr.session.Snapshot().Weapon.CurrentAmmo; got != ammo {
		t.Errorf("ammo in complete = %d, want %d", got, ammo)
	}
	if reloads.count(event.EventWeaponReloadCancelled) != 1 || reloads.count(event.EventWeaponReloaded) != 0 {
		t.Errorf("cancelled=%d reloaded=%d, want 1/0",
			reloads.count(event.EventWeaponReloadCancelled), reloads.count(event.EventWeaponReloaded))
	}

	sr.send(event.IntentStart)
	snap = sr.session.Snapshot()
	if snap.State != component.SessionPlaying || snap.Score.TargetsLeft != 3 {
		t.Errorf("next level state=%v targets_left=%d, want playing/3", snap.State, snap.Score.TargetsLeft)
	}
}

func TestScoreboardIgnoresLevelComplete(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	sr.session.StartSession()
	if sr.session.OnLevelComplete() {
		t.Error("level-complete accepted in scoreboard mode")
	}
	if sr.session.State() != component.SessionPlaying {
		t.Errorf("state = %v", sr.session.State())
	}
}

func TestQuitClosesDone(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	sr.send(event.IntentQuit, event.IntentQuit)

	select {
	case <-sr.session.Done():
	default:
		t.Fatal("Done not closed after quit")
	}
}

func TestCycleWeapon(t *testing.T) {
	sr := newSessionRig(t, func(c *config.Config) {
		rifle := c.Weapons[0]
		rifle.ID = "rifle"
		rifle.Category = "rifle"
		rifle.MagazineSize = 30
		c.Weapons = append(c.Weapons, rifle)
	}, nil)

	sr.send(event.IntentCycleWeapon)
	snap := sr.session.Snapshot()
	if snap.ActiveWeapon != 1 || snap.Weapon.ID != "rifle" || snap.WeaponCount != 2 {
		t.Errorf("after cycle active=%d id=%q count=%d", snap.ActiveWeapon, snap.Weapon.ID, snap.WeaponCount)
	}

	sr.session.StartSession()
	sr.send(event.IntentFire)
	if got := sr.session.Snapshot().Weapon.CurrentAmmo; got != 29 {
		t.Errorf("rifle ammo = %d, want 29", got)
	}

	sr.send(event.IntentCycleWeapon)
	if got := sr.session.Snapshot().Weapon.ID; got != "sidearm" {
		t.Errorf("wrapped to %q, want sidearm", got)
	}
}

// pairContacts reports every in-flight projectile touching the first live target
type pairContacts struct {
	calls int
}

func (p *pairContacts) Contacts(_ time.Time, projectiles []component.ProjectileComponent, targets []component.TargetComponent) []Collision {
	p.calls++
	var out []Collision
	for _, tc := range targets {
		if !tc.Active {
			continue
		}
		for _, pc := range projectiles {
			out = append(out, Collision{Projectile: pc.Entity, Other: tc.Entity, Point: tc.Position})
		}
		break
	}
	return out
}

func TestContactSourceDrivesHits(t *testing.T) {
	contacts := &pairContacts{}
	sr := newSessionRig(t, nil, contacts)

	sr.session.Tick()
	if contacts.calls != 0 {
		t.Fatal("contacts polled outside play")
	}

	sr.session.StartSession()
	sr.session.Tick()
	sr.send(event.IntentFire)

	snap := sr.session.Snapshot()
	if snap.Score.Score != 1 {
		t.Errorf("score = %d, want 1", snap.Score.Score)
	}
	if len(snap.Projectiles) != 0 {
		t.Errorf("projectiles = %d, want 0", len(snap.Projectiles))
	}
	if contacts.calls != 2 {
		t.Errorf("contact polls = %d, want 2", contacts.calls)
	}
}

func TestSnapshotProjectilePositions(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	sr.session.StartSession()
	sr.send(event.IntentFire)

	start := sr.session.Snapshot().Projectiles
	sr.advance(100 * time.Millisecond)
	moved := sr.session.Snapshot().Projectiles
	if len(start) != 1 || len(moved) != 1 {
		t.Fatalf("projectiles = %d/%d, want 1", len(start), len(moved))
	}
	// Default muzzle faces +Z at 25 u/s
	if dz := moved[0].Z - start[0].Z; dz < 2.49 || dz > 2.51 {
		t.Errorf("moved %.3f along Z, want 2.5", dz)
	}
}

func TestNewSessionRejectsUnusableConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Weapons = nil

	r := newRig()
	s, err := NewSession(cfg, SessionDeps{
		Clock:   r.clock,
		Bus:     r.bus,
		Intents: event.NewIntentQueue(),
		Scene:   r.world,
		Status:  r.reg,
	})
	if !errors.Is(err, config.ErrUnusable) {
		t.Fatalf("NewSession() error = %v, want ErrUnusable", err)
	}
	if s != nil {
		t.Error("expected no session for an unusable config")
	}
	if r.world.Count() != 0 {
		t.Errorf("world entities = %d, want 0", r.world.Count())
	}
}

func TestSnapshotLeavesReloadToTick(t *testing.T) {
	sr := newSessionRig(t, nil, nil)
	reloaded := sr.record(event.EventWeaponReloaded)
	sr.session.StartSession()
	sr.send(event.IntentFire, event.IntentReload)

	sr.advance(2 * time.Second)
	snap := sr.session.Snapshot()
	if snap.Weapon.CurrentAmmo != snap.Weapon.MagazineSize || snap.WeaponState != component.WeaponReady {
		t.Errorf("snapshot weapon %d/%d %v, want full and ready",
			snap.Weapon.CurrentAmmo, snap.Weapon.MagazineSize, snap.WeaponState)
	}
	if reloaded.count(event.EventWeaponReloaded) != 0 {
		t.Fatal("Snapshot completed the reload")
	}

	sr.session.Tick()
	if reloaded.count(event.EventWeaponReloaded) != 1 {
		t.Errorf("reload events after tick = %d, want 1", reloaded.count(event.EventWeaponReloaded))
	}
}
