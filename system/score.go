package system

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/event"
)

var (
	ErrNegativeAmount    = errors.New("negative amount")
	ErrReentrantMutation = errors.New("score mutated from its own observer")
)

// ScoreConfig selects the tracker mode and its reset values
type ScoreConfig struct {
	Mode          component.ScoreMode
	StartingLives int
	LevelTarget   int // countdown mode only
}

// ScoreTracker owns score, lives and countdown progress for one session
// Mutators are synchronous: observers run in registration order before the mutator returns
// Single-threaded, the reentrancy flag replaces a lock
type ScoreTracker struct {
	bus   *event.Bus
	clock engine.TimeProvider

	mode          component.ScoreMode
	startingLives int
	levelTarget   int
	level         int

	state component.ScoreComponent

	lostLatched     bool // level-lost fired for this episode
	completeLatched bool // level-complete fired for this episode
	dispatching     bool

	// Telemetry
	statScore       *atomic.Int64
	statMax         *atomic.Int64
	statLives       *atomic.Int64
	statTargetsLeft *atomic.Int64
}

// NewScoreTracker creates a tracker, call Reset before the first episode
func NewScoreTracker(cfg ScoreConfig, bus *event.Bus, clock engine.TimeProvider, reg *status.Registry) *ScoreTracker {
	s := &ScoreTracker{
		bus:             bus,
		clock:           clock,
		mode:            cfg.Mode,
		startingLives:   max(cfg.StartingLives, 0),
		levelTarget:     max(cfg.LevelTarget, 0),
		statScore:       reg.Ints.Get("score.current"),
		statMax:         reg.Ints.Get("score.max"),
		statLives:       reg.Ints.Get("score.lives"),
		statTargetsLeft: reg.Ints.Get("score.targets_left"),
	}
	s.state.Lives = s.startingLives
	s.state.TargetsLeft = s.levelTarget
	s.storeStats()
	return s
}

// SetLevel selects the countdown target used by the next Reset
func (s *ScoreTracker) SetLevel(level, target int) {
	s.level = level
	s.levelTarget = max(target, 0)
}

// Reset starts a new episode: score 0, lives restored, countdown rearmed, latches cleared
func (s *ScoreTracker) Reset() error {
	if err := s.enter("reset"); err != nil {
		return err
	}

	s.state.Score = 0
	s.state.Lives = s.startingLives
	s.state.TargetsLeft = s.levelTarget
	s.lostLatched = false
	s.completeLatched = false
	s.storeStats()

	s.emitScore()
	s.emit(event.EventLivesChanged, &event.LivesPayload{Lives: s.state.Lives})
	if s.mode == component.ScoreModeCountdown {
		s.emitTargetsLeft()
	}
	return nil
}

// AddPoints applies n points: scoreboard raises Score, countdown lowers TargetsLeft
func (s *ScoreTracker) AddPoints(n int) error {
	if err := s.enter("add points"); err != nil {
		return err
	}
	if n < 0 {
		log.Printf("[score] rejected AddPoints(%d)", n)
		return fmt.Errorf("add points %d: %w", n, ErrNegativeAmount)
	}

	if s.mode == component.ScoreModeCountdown {
		s.state.TargetsLeft = max(s.state.TargetsLeft-n, 0)
		s.storeStats()
		s.emitTargetsLeft()

		if s.state.TargetsLeft == 0 && !s.completeLatched {
			s.completeLatched = true
			log.Printf("[score] level %d complete", s.level)
			s.emit(event.EventLevelComplete, nil)
		}
		return nil
	}

	s.state.Score += n
	if s.state.Score > s.state.MaxScore {
		s.state.MaxScore = s.state.Score
	}
	s.storeStats()
	s.emitScore()
	return nil
}

// ApplyDamage removes n lives clamped at 0, level-lost fires once when lives reach 0
func (s *ScoreTracker) ApplyDamage(n int) error {
	if err := s.enter("apply damage"); err != nil {
		return err
	}
	if n < 0 {
		log.Printf("[score] rejected ApplyDamage(%d)", n)
		return fmt.Errorf("apply damage %d: %w", n, ErrNegativeAmount)
	}

	prev := s.state.Lives
	s.state.Lives = max(prev-n, 0)
	s.storeStats()

	if s.state.Lives != prev {
		s.emit(event.EventLivesChanged, &event.LivesPayload{Lives: s.state.Lives})
	}

	if s.state.Lives == 0 && !s.lostLatched {
		s.lostLatched = true
		log.Printf("[score] out of lives")
		s.emit(event.EventLevelLost, &event.LivesPayload{Lives: s.state.Lives})
	}
	return nil
}

// State returns a copy of the counters
func (s *ScoreTracker) State() component.ScoreComponent {
	return s.state
}

func (s *ScoreTracker) Mode() component.ScoreMode {
	return s.mode
}

func (s *ScoreTracker) Level() int {
	return s.level
}

// Lost reports whether level-lost fired since the last Reset
func (s *ScoreTracker) Lost() bool {
	return s.lostLatched
}

// Complete reports whether level-complete fired since the last Reset
func (s *ScoreTracker) Complete() bool {
	return s.completeLatched
}

func (s *ScoreTracker) enter(op string) error {
	if s.dispatching {
		log.Printf("[score] rejected %s from inside a score observer", op)
		return fmt.Errorf("%s: %w", op, ErrReentrantMutation)
	}
	return nil
}

func (s *ScoreTracker) emit(t event.EventType, payload any) {
	s.dispatching = true
	defer func() { s.dispatching = false }()
	s.bus.Emit(t, payload, s.clock.Now())
}

func (s *ScoreTracker) emitScore() {
	s.emit(event.EventScoreChanged, &event.ScorePayload{Score: s.state.Score, MaxScore: s.state.MaxScore})
}

func (s *ScoreTracker) emitTargetsLeft() {
	s.emit(event.EventTargetsLeftChanged, &event.TargetsLeftPayload{TargetsLeft: s.state.TargetsLeft, Level: s.level})
}

func (s *ScoreTracker) storeStats() {
	s.statScore.Store(int64(s.state.Score))
	s.statMax.Store(int64(s.state.MaxScore))
	s.statLives.Store(int64(s.state.Lives))
	s.statTargetsLeft.Store(int64(s.state.TargetsLeft))
}
