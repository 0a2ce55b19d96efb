package system

import (
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

// SpawnConfig holds the difficulty curve and the weighted kind table
type SpawnConfig struct {
	InitialInterval   time.Duration
	AdvancedInterval  time.Duration
	AdvancedThreshold int
	MaxPerTick        int // 0 = fill the whole deficit in one tick
	Candidates        []component.SpawnCandidate
}

// TargetFactory is the target population the scheduler keeps topped up
type TargetFactory interface {
	HasProfile(kind string) bool
	Create(kind string, position vmath.Vec3F) (core.Entity, error)
	LiveCount() int
	Clear()
}

// Placer picks spawn positions
type Placer interface {
	Place(rng *vmath.FastRand) vmath.Vec3F
}

// DiskPlacer places uniformly on a disk around Anchor on the XZ plane, Y in [MinHeight, MaxHeight)
type DiskPlacer struct {
	Anchor    vmath.Vec3F
	Radius    float64
	MinHeight float64
	MaxHeight float64
}

func (p DiskPlacer) Place(rng *vmath.FastRand) vmath.Vec3F {
	return vmath.DiskBandPoint(rng, p.Anchor, p.Radius, p.MinHeight, p.MaxHeight)
}

// SpawnScheduler is the time-driven target count controller
// RequiredCount grows by one per escalation; spacing switches from the initial to the
// advanced interval once RequiredCount reaches the threshold
type SpawnScheduler struct {
	cfg     SpawnConfig
	plan    component.SpawnPlan
	running bool

	// usable holds candidates with a known profile, in configured order
	usable   []component.SpawnCandidate
	disabled bool
	warned   bool

	targets TargetFactory
	placer  Placer
	rng     *vmath.FastRand
	clock   engine.TimeProvider
	bus     *event.Bus

	// Telemetry
	statRequired *atomic.Int64
	statLive     *atomic.Int64
	statInterval *atomic.Int64
}

func NewSpawnScheduler(cfg SpawnConfig, targets TargetFactory, placer Placer, rng *vmath.FastRand, bus *event.Bus, clock engine.TimeProvider, reg *status.Registry) *SpawnScheduler {
	s := &SpawnScheduler{
		cfg:          cfg,
		targets:      targets,
		placer:       placer,
		rng:          rng,
		clock:        clock,
		bus:          bus,
		statRequired: reg.Ints.Get("spawn.required"),
		statLive:     reg.Ints.Get("spawn.live"),
		statInterval: reg.Ints.Get("spawn.interval_ms"),
	}
	s.plan.Candidates = cfg.Candidates

	for _, c := range cfg.Candidates {
		if targets.HasProfile(c.Kind) {
			s.usable = append(s.usable, c)
		} else {
			log.Printf("[spawn] candidate %q has no target profile, skipped", c.Kind)
		}
	}
	s.disabled = len(s.usable) == 0
	return s
}

// StartGame clears the field and begins a new curve with RequiredCount 1
func (s *SpawnScheduler) StartGame() {
	s.targets.Clear()

	now := s.clock.Now()
	s.plan.RequiredCount = 0
	s.plan.CurrentInterval = s.cfg.InitialInterval
	s.plan.NextEscalation = now.Add(s.plan.CurrentInterval)
	s.running = true

	if s.disabled && !s.warned {
		s.warned = true
		log.Printf("[spawn] no usable candidates, spawning disabled")
	}

	s.escalate(now)
}

// StopGame clears the field and halts the schedule
func (s *SpawnScheduler) StopGame() {
	s.targets.Clear()
	s.running = false
	s.statLive.Store(0)
}

// Update escalates when due, then tops up the live population
func (s *SpawnScheduler) Update() {
	if !s.running {
		return
	}

	now := s.clock.Now()
	if !now.Before(s.plan.NextEscalation) {
		s.escalate(now)
	}

	s.topUp()
}

// Plan returns a copy of the current plan
func (s *SpawnScheduler) Plan() component.SpawnPlan {
	return s.plan
}

// Running reports whether the schedule is active
func (s *SpawnScheduler) Running() bool {
	return s.running
}

// Disabled reports a configuration without usable candidates
func (s *SpawnScheduler) Disabled() bool {
	return s.disabled
}

func (s *SpawnScheduler) escalate(now time.Time) {
	s.plan.RequiredCount++
	if s.plan.RequiredCount >= s.cfg.AdvancedThreshold {
		s.plan.CurrentInterval = s.cfg.AdvancedInterval
	} else {
		s.plan.CurrentInterval = s.cfg.InitialInterval
	}
	s.plan.NextEscalation = now.Add(s.plan.CurrentInterval)

	s.statRequired.Store(int64(s.plan.RequiredCount))
	s.statInterval.Store(s.plan.CurrentInterval.Milliseconds())

	s.bus.Emit(event.EventSpawnEscalation, &event.EscalationPayload{
		RequiredCount: s.plan.RequiredCount,
		Interval:      s.plan.CurrentInterval,
		Next:          s.plan.NextEscalation,
	}, now)
}

func (s *SpawnScheduler) topUp() {
	defer func() { s.statLive.Store(int64(s.targets.LiveCount())) }()

	if s.disabled {
		return
	}

	deficit := s.plan.RequiredCount - s.targets.LiveCount()
	if s.cfg.MaxPerTick > 0 {
		deficit = min(deficit, s.cfg.MaxPerTick)
	}

	for range max(deficit, 0) {
		kind := s.pick()
		if _, err := s.targets.Create(kind, s.placer.Place(s.rng)); err != nil {
			// Retried on a later tick
			log.Printf("[spawn] %v", err)
			return
		}
	}
}

// pick draws one kind from the usable candidates by weight
// One draw in [0, total); first candidate whose cumulative weight reaches the draw wins
func (s *SpawnScheduler) pick() string {
	total := 0.0
	for _, c := range s.usable {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total <= 0 {
		return s.usable[0].Kind
	}

	draw := s.rng.Float64() * total
	cumulative := 0.0
	last := s.usable[0].Kind
	for _, c := range s.usable {
		if c.Weight <= 0 {
			continue
		}
		cumulative += c.Weight
		last = c.Kind
		if cumulative >= draw {
			return c.Kind
		}
	}
	return last
}
