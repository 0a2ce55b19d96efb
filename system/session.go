package system

import (
	_ "embed"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/config"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/engine/fsm"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/parameter"
	"github.com/lixenwraith/rangefire/vmath"
)

//go:embed session.toml
var sessionGraph []byte

// Session triggers
const (
	TriggerStart         fsm.Trigger = "Start"
	TriggerPauseToggle   fsm.Trigger = "PauseToggle"
	TriggerMenu          fsm.Trigger = "Menu"
	TriggerLevelLost     fsm.Trigger = "LevelLost"
	TriggerLevelComplete fsm.Trigger = "LevelComplete"
)

var stateByName = map[string]component.SessionState{
	"Menu":     component.SessionMenu,
	"Playing":  component.SessionPlaying,
	"Paused":   component.SessionPaused,
	"Lost":     component.SessionLost,
	"Complete": component.SessionComplete,
}

// ContactSource produces collisions for the current tick
type ContactSource interface {
	Contacts(now time.Time, projectiles []component.ProjectileComponent, targets []component.TargetComponent) []Collision
}

// SessionDeps are the collaborators a Session is built on
type SessionDeps struct {
	Clock   *engine.PausableClock
	Bus     *event.Bus
	Intents *event.IntentQueue
	Scene   Scene
	Status  *status.Registry

	Placer   Placer        // nil = disk placer from config
	Muzzle   Muzzle        // nil = fixed muzzle above the spawn anchor facing +Z
	Contacts ContactSource // nil = collisions only through Collide
}

// Snapshot is a consistent read-only view for presentation
type Snapshot struct {
	Now     time.Time
	State   component.SessionState
	Episode string
	Level   int
	Mode    component.ScoreMode
	Score   component.ScoreComponent

	Weapon       component.WeaponComponent
	WeaponState  component.WeaponState
	ActiveWeapon int
	WeaponCount  int

	Plan        component.SpawnPlan
	LiveTargets int
	Targets     []component.TargetComponent
	Projectiles []vmath.Vec3F
}

// Session is the explicitly constructed combat loop context and its controller
// All state changes happen on the goroutine calling Tick and Collide; Snapshot may be called from any goroutine
// Public methods lock the session: do not call them from bus observers
type Session struct {
	mu sync.Mutex

	cfg     *config.Config
	clock   *engine.PausableClock
	bus     *event.Bus
	intents *event.IntentQueue
	scene   Scene

	fsm *fsm.Machine[*Session]

	score       *ScoreTracker
	weapons     []*Weapon
	active      int
	projectiles *ProjectileSystem
	targets     *TargetSystem
	spawner     *SpawnScheduler
	resolver    *HitResolver
	contacts    ContactSource

	level    int
	episode  string
	lastTick time.Time

	subs     []event.Subscription
	done     chan struct{}
	doneOnce sync.Once
}

// NewSession wires every component and enters Menu
// cfg is validated in place; an unusable configuration is rejected before anything is built
func NewSession(cfg *config.Config, deps SessionDeps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	s := &Session{
		cfg:      cfg,
		clock:    deps.Clock,
		bus:      deps.Bus,
		intents:  deps.Intents,
		scene:    deps.Scene,
		contacts: deps.Contacts,
		level:    cfg.Score.Level,
		done:     make(chan struct{}),
	}

	target, level := cfg.Score.LevelTarget(s.level)
	s.level = level
	s.score = NewScoreTracker(ScoreConfig{
		Mode:          cfg.Score.ModeValue(),
		StartingLives: cfg.Score.StartingLives,
		LevelTarget:   target,
	}, s.bus, s.clock, deps.Status)
	s.score.SetLevel(level, target)

	s.projectiles = NewProjectileSystem(s.scene, s.bus, s.clock)
	s.targets = NewTargetSystem(cfg.Profiles(), s.scene, s.score, s.bus, s.clock)

	anchor := vmath.Vec3F{X: cfg.Spawn.Anchor[0], Y: cfg.Spawn.Anchor[1], Z: cfg.Spawn.Anchor[2]}
	placer := deps.Placer
	if placer == nil {
		placer = DiskPlacer{
			Anchor:    anchor,
			Radius:    cfg.Spawn.Radius,
			MinHeight: cfg.Spawn.MinHeight,
			MaxHeight: cfg.Spawn.MaxHeight,
		}
	}
	s.spawner = NewSpawnScheduler(SpawnConfig{
		InitialInterval:   cfg.Spawn.InitialInterval,
		AdvancedInterval:  cfg.Spawn.AdvancedInterval,
		AdvancedThreshold: cfg.Spawn.AdvancedThreshold,
		MaxPerTick:        cfg.Spawn.MaxPerTick,
		Candidates:        cfg.Spawn.CandidateList(),
	}, s.targets, placer, vmath.NewFastRand(cfg.Spawn.Seed), s.bus, s.clock, deps.Status)

	s.resolver = NewHitResolver(s.projectiles, s.targets, s.scene, s.bus, s.clock, deps.Status)

	muzzle := deps.Muzzle
	muzzleOrigin := vmath.V3FAdd(anchor, vmath.Vec3F{Y: parameter.MuzzleHeight})
	if muzzle == nil {
		muzzle = FixedMuzzle{Origin: muzzleOrigin, Direction: vmath.Vec3F{Z: 1}}
	}
	for _, wc := range cfg.Weapons {
		e, err := s.scene.Spawn(parameter.KindWeapon, muzzleOrigin)
		if err != nil {
			return nil, fmt.Errorf("spawn weapon %q: %w", wc.ID, err)
		}
		w := NewWeapon(WeaponConfig{
			ID:                 wc.ID,
			Category:           wc.CategoryValue(),
			MagazineSize:       wc.MagazineSize,
			ReserveAmmo:        wc.ReserveAmmo,
			FireCooldown:       wc.FireCooldown,
			ReloadDuration:     wc.ReloadDuration,
			AutoReload:         wc.AutoReload,
			ProjectileSpeed:    wc.ProjectileSpeed,
			ProjectileLifetime: wc.ProjectileLifetime,
		}, e, s.projectiles, s.bus, s.clock, deps.Status)
		w.Configure(wc.Projectile, muzzle)
		s.weapons = append(s.weapons, w)
	}

	s.fsm = fsm.NewMachine[*Session]()
	s.registerGraph()
	if err := s.fsm.LoadConfig(sessionGraph); err != nil {
		return nil, fmt.Errorf("load session graph: %w", err)
	}

	s.subs = append(s.subs,
		s.bus.Subscribe(event.EventLevelLost, func(event.GameEvent) { s.trigger(TriggerLevelLost) }),
		s.bus.Subscribe(event.EventLevelComplete, func(event.GameEvent) { s.trigger(TriggerLevelComplete) }),
	)

	s.lastTick = s.clock.Now()
	if err := s.fsm.Init(s); err != nil {
		return nil, fmt.Errorf("init session graph: %w", err)
	}
	return s, nil
}

func (s *Session) registerGraph() {
	s.fsm.RegisterGuard("Countdown", func(s *Session) bool {
		return s.score.Mode() == component.ScoreModeCountdown
	})

	s.fsm.RegisterAction("BeginEpisode", func(s *Session, _ map[string]any) { s.beginEpisode() })
	s.fsm.RegisterAction("StopSpawner", func(s *Session, _ map[string]any) { s.spawner.StopGame() })
	s.fsm.RegisterAction("Simulate", func(s *Session, _ map[string]any) { s.simulate() })
	s.fsm.RegisterAction("PauseClock", func(s *Session, _ map[string]any) { s.clock.Pause() })
	s.fsm.RegisterAction("ResumeClock", func(s *Session, _ map[string]any) { s.clock.Resume() })
	s.fsm.RegisterAction("ClearProjectiles", func(s *Session, _ map[string]any) { s.projectiles.Clear() })
	s.fsm.RegisterAction("CancelReloads", func(s *Session, _ map[string]any) {
		for _, w := range s.weapons {
			w.CancelReload()
		}
	})
	s.fsm.RegisterAction("ResetScore", func(s *Session, _ map[string]any) {
		if err := s.score.Reset(); err != nil {
			log.Printf("[session] reset score: %v", err)
		}
	})
	s.fsm.RegisterAction("AdvanceLevel", func(s *Session, _ map[string]any) {
		_, next := s.cfg.Score.LevelTarget(s.level + 1)
		log.Printf("[session] level %d complete, next level %d", s.level, next)
		s.level = next
	})
}

// Tick drains pending intents, then advances the active state by one step
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range s.intents.Consume() {
		s.handleIntent(in)
	}

	now := s.clock.Now()
	dt := max(now.Sub(s.lastTick), 0)
	s.lastTick = now
	s.fsm.Update(s, dt)
}

// Collide feeds one physics contact, ignored unless Playing
func (s *Session) Collide(c Collision) HitOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collide(c)
}

// StartSession begins a new episode from Menu, Lost or Complete
func (s *Session) StartSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger(TriggerStart)
}

// PauseToggle flips Playing and Paused, no-op elsewhere
func (s *Session) PauseToggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger(TriggerPauseToggle)
}

// ReturnToMenu abandons the episode from any state
func (s *Session) ReturnToMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trigger(TriggerMenu)
}

// OnLevelLost ends the episode as lost, once per episode
func (s *Session) OnLevelLost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger(TriggerLevelLost)
}

// OnLevelComplete ends a countdown episode as complete, once per episode
func (s *Session) OnLevelComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trigger(TriggerLevelComplete)
}

// State returns the current session state
func (s *Session) State() component.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Done is closed after a Quit intent
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// SetMuzzle re-aims every weapon, keeping its configured projectile template
func (s *Session) SetMuzzle(m Muzzle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.weapons {
		w.Configure(s.cfg.Weapons[i].Projectile, m)
	}
}

// Close detaches the session from the bus
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		s.bus.Unsubscribe(sub)
	}
	s.subs = nil
}

// Snapshot captures the presentation view
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	weapon, weaponState := s.weapons[s.active].View(now)

	snap := Snapshot{
		Now:          now,
		State:        s.state(),
		Episode:      s.episode,
		Level:        s.level,
		Mode:         s.score.Mode(),
		Score:        s.score.State(),
		WeaponState:  weaponState,
		Weapon:       weapon,
		ActiveWeapon: s.active,
		WeaponCount:  len(s.weapons),
		Plan:         s.spawner.Plan(),
		LiveTargets:  s.targets.LiveCount(),
		Targets:      s.targets.Targets(),
	}
	for _, p := range s.projectiles.InFlight() {
		snap.Projectiles = append(snap.Projectiles, PositionAt(p, now))
	}
	return snap
}

func (s *Session) handleIntent(in event.Intent) {
	switch in {
	case event.IntentFire:
		if s.state() == component.SessionPlaying {
			s.weapons[s.active].Fire()
		}
	case event.IntentReload:
		if s.state() == component.SessionPlaying {
			s.weapons[s.active].Reload()
		}
	case event.IntentCycleWeapon:
		s.active = (s.active + 1) % len(s.weapons)
		log.Printf("[session] active weapon %s", s.weapons[s.active].ID())
	case event.IntentPauseToggle:
		s.trigger(TriggerPauseToggle)
	case event.IntentStart:
		s.trigger(TriggerStart)
	case event.IntentMenu:
		s.trigger(TriggerMenu)
	case event.IntentQuit:
		s.doneOnce.Do(func() { close(s.done) })
	}
}

// trigger routes a transition and announces the state change
func (s *Session) trigger(t fsm.Trigger) bool {
	from := s.state()
	if !s.fsm.HandleEvent(s, t) {
		return false
	}

	to := s.state()
	if from != to {
		log.Printf("[session] %s -> %s (episode %s)", from, to, s.episode)
		s.bus.Emit(event.EventSessionStateChanged, &event.SessionStatePayload{
			From:    from,
			To:      to,
			Episode: s.episode,
			Level:   s.level,
		}, s.clock.Now())
	}
	return true
}

func (s *Session) state() component.SessionState {
	return stateByName[s.fsm.StateName()]
}

func (s *Session) beginEpisode() {
	target, level := s.cfg.Score.LevelTarget(s.level)
	s.level = level
	s.score.SetLevel(level, target)
	if err := s.score.Reset(); err != nil {
		log.Printf("[session] reset score: %v", err)
	}

	s.projectiles.Clear()
	s.spawner.StartGame()
	s.episode = uuid.NewString()
	s.clock.Resume()
	s.lastTick = s.clock.Now()

	log.Printf("[session] episode %s started, level %d", s.episode, s.level)
}

// simulate runs one Playing step: weapons, projectiles, targets, contacts, spawner
func (s *Session) simulate() {
	for _, w := range s.weapons {
		w.Update()
	}
	s.projectiles.Update()
	s.targets.Update()

	if s.contacts != nil && s.state() == component.SessionPlaying {
		contacts := s.contacts.Contacts(s.clock.Now(), s.projectiles.InFlight(), s.targets.Targets())
		for _, c := range contacts {
			s.collide(c)
		}
	}

	s.spawner.Update()
}

func (s *Session) collide(c Collision) HitOutcome {
	if s.state() != component.SessionPlaying {
		return HitIgnoredInactive
	}
	return s.resolver.Resolve(c)
}
