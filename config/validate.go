package config

import (
	"fmt"
	"log"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/parameter"
)

// Validate clamps out-of-range values with a logged warning
// Returns ErrUnusable only when no session could run with the configuration
func (c *Config) Validate() error {
	if err := c.validateScore(); err != nil {
		return err
	}
	if err := c.validateWeapons(); err != nil {
		return err
	}
	if err := c.validateTargets(); err != nil {
		return err
	}
	c.validateSpawn()

	if c.Engine.TickInterval <= 0 {
		warn("engine.tick_interval %v, using %v", c.Engine.TickInterval, parameter.TickInterval)
		c.Engine.TickInterval = parameter.TickInterval
	}
	return nil
}

func (c *Config) validateScore() error {
	mode, ok := component.ParseScoreMode(c.Score.Mode)
	if !ok {
		return fmt.Errorf("score.mode %q: %w", c.Score.Mode, ErrUnusable)
	}

	if c.Score.StartingLives < 1 {
		warn("score.starting_lives %d, using 1", c.Score.StartingLives)
		c.Score.StartingLives = 1
	}

	for i := range c.Score.Levels {
		if c.Score.Levels[i].Target < 1 {
			warn("score.levels[%d].target %d, using 1", i, c.Score.Levels[i].Target)
			c.Score.Levels[i].Target = 1
		}
	}

	if mode == component.ScoreModeCountdown && len(c.Score.Levels) == 0 {
		warn("countdown mode without score.levels, falling back to scoreboard")
		c.Score.Mode = component.ScoreModeScoreboard.String()
	}

	if n := len(c.Score.Levels); n > 0 && (c.Score.Level < 0 || c.Score.Level >= n) {
		clamped := min(max(c.Score.Level, 0), n-1)
		warn("score.level %d out of range [0,%d), using %d", c.Score.Level, n, clamped)
		c.Score.Level = clamped
	}
	return nil
}

func (c *Config) validateWeapons() error {
	if len(c.Weapons) == 0 {
		return fmt.Errorf("no weapons: %w", ErrUnusable)
	}

	seen := make(map[string]bool, len(c.Weapons))
	for i := range c.Weapons {
		w := &c.Weapons[i]
		if w.ID == "" {
			w.ID = fmt.Sprintf("weapon%d", i)
		}
		if seen[w.ID] {
			return fmt.Errorf("weapons[%d] duplicate id %q: %w", i, w.ID, ErrUnusable)
		}
		seen[w.ID] = true

		if _, ok := component.ParseCategory(w.Category); !ok || w.Category == component.CategoryAny.String() {
			return fmt.Errorf("weapons[%d] category %q: %w", i, w.Category, ErrUnusable)
		}
		if w.MagazineSize < 1 {
			warn("weapons[%d].magazine_size %d, using 1", i, w.MagazineSize)
			w.MagazineSize = 1
		}
		if w.ReserveAmmo < parameter.ReserveUnlimited {
			warn("weapons[%d].reserve_ammo %d, using unlimited", i, w.ReserveAmmo)
			w.ReserveAmmo = parameter.ReserveUnlimited
		}
		if w.FireCooldown < 0 {
			warn("weapons[%d].fire_cooldown %v, using 0", i, w.FireCooldown)
			w.FireCooldown = 0
		}
		if w.ReloadDuration < 0 {
			warn("weapons[%d].reload_duration %v, using 0", i, w.ReloadDuration)
			w.ReloadDuration = 0
		}
		if w.ProjectileSpeed <= 0 {
			warn("weapons[%d].projectile_speed %v, using %v", i, w.ProjectileSpeed, parameter.ProjectileSpeed)
			w.ProjectileSpeed = parameter.ProjectileSpeed
		}
		// Empty projectile is kept: the weapon reports itself misconfigured at fire time
	}
	return nil
}

func (c *Config) validateTargets() error {
	seen := make(map[string]bool, len(c.Targets))
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.Kind == "" {
			return fmt.Errorf("targets[%d] empty kind: %w", i, ErrUnusable)
		}
		if seen[t.Kind] {
			return fmt.Errorf("targets[%d] duplicate kind %q: %w", i, t.Kind, ErrUnusable)
		}
		seen[t.Kind] = true

		if _, ok := component.ParseVariant(t.Variant); !ok {
			return fmt.Errorf("targets[%d] variant %q: %w", i, t.Variant, ErrUnusable)
		}
		if t.Accepts != "" {
			if _, ok := component.ParseCategory(t.Accepts); !ok {
				return fmt.Errorf("targets[%d] accepts %q: %w", i, t.Accepts, ErrUnusable)
			}
		}
		if t.Points < 0 {
			warn("targets[%d].points %d, using 0", i, t.Points)
			t.Points = 0
		}
		if t.Damage < 0 {
			warn("targets[%d].damage %d, using 0", i, t.Damage)
			t.Damage = 0
		}
		if t.Lifetime < 0 {
			warn("targets[%d].lifetime %v, using none", i, t.Lifetime)
			t.Lifetime = 0
		}
	}
	return nil
}

// validateSpawn never fails: an empty candidate table only disables spawning
func (c *Config) validateSpawn() {
	s := &c.Spawn
	if s.InitialInterval <= 0 {
		warn("spawn.initial_interval %v, using %v", s.InitialInterval, parameter.SpawnInitialInterval)
		s.InitialInterval = parameter.SpawnInitialInterval
	}
	if s.AdvancedInterval <= 0 {
		warn("spawn.advanced_interval %v, using %v", s.AdvancedInterval, parameter.SpawnAdvancedInterval)
		s.AdvancedInterval = parameter.SpawnAdvancedInterval
	}
	if s.AdvancedThreshold < 1 {
		warn("spawn.advanced_threshold %d, using 1", s.AdvancedThreshold)
		s.AdvancedThreshold = 1
	}
	if s.MaxPerTick < 0 {
		warn("spawn.max_per_tick %d, using 0 (fill deficit)", s.MaxPerTick)
		s.MaxPerTick = 0
	}
	if s.Radius < 0 {
		warn("spawn.radius %v, using 0", s.Radius)
		s.Radius = 0
	}
	if s.MaxHeight < s.MinHeight {
		warn("spawn.max_height %v below min_height %v, swapping", s.MaxHeight, s.MinHeight)
		s.MinHeight, s.MaxHeight = s.MaxHeight, s.MinHeight
	}
	if len(s.Candidates) == 0 {
		warn("spawn.candidates empty, spawning disabled")
	}
}

func warn(format string, args ...any) {
	log.Printf("[config] "+format, args...)
}
