package config

import (
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/parameter"
)

// Config is the full tuning surface of a session
// Loaded from TOML, then environment overrides, then Validate
type Config struct {
	Score   ScoreConfig    `toml:"score"`
	Weapons []WeaponConfig `toml:"weapons"`
	Spawn   SpawnConfig    `toml:"spawn"`
	Targets []TargetConfig `toml:"targets"`
	Engine  EngineConfig   `toml:"engine"`
}

type ScoreConfig struct {
	Mode          string        `toml:"mode" env:"RANGEFIRE_SCORE_MODE"`
	StartingLives int           `toml:"starting_lives" env:"RANGEFIRE_STARTING_LIVES"`
	Level         int           `toml:"level" env:"RANGEFIRE_LEVEL"`
	Levels        []LevelConfig `toml:"levels"`
}

type LevelConfig struct {
	Target int `toml:"target"`
}

type WeaponConfig struct {
	ID                 string        `toml:"id"`
	Category           string        `toml:"category"`
	Projectile         string        `toml:"projectile"`
	MagazineSize       int           `toml:"magazine_size"`
	ReserveAmmo        int           `toml:"reserve_ammo"`
	FireCooldown       time.Duration `toml:"fire_cooldown"`
	ReloadDuration     time.Duration `toml:"reload_duration"`
	AutoReload         bool          `toml:"auto_reload"`
	ProjectileLifetime time.Duration `toml:"projectile_lifetime"`
	ProjectileSpeed    float64       `toml:"projectile_speed"`
}

type SpawnConfig struct {
	InitialInterval   time.Duration     `toml:"initial_interval" env:"RANGEFIRE_SPAWN_INITIAL_INTERVAL"`
	AdvancedInterval  time.Duration     `toml:"advanced_interval" env:"RANGEFIRE_SPAWN_ADVANCED_INTERVAL"`
	AdvancedThreshold int               `toml:"advanced_threshold" env:"RANGEFIRE_SPAWN_ADVANCED_THRESHOLD"`
	MaxPerTick        int               `toml:"max_per_tick" env:"RANGEFIRE_SPAWN_MAX_PER_TICK"`
	Radius            float64           `toml:"radius" env:"RANGEFIRE_SPAWN_RADIUS"`
	MinHeight         float64           `toml:"min_height"`
	MaxHeight         float64           `toml:"max_height"`
	Anchor            [3]float64        `toml:"anchor"`
	Seed              uint64            `toml:"seed" env:"RANGEFIRE_SEED"`
	Candidates        []CandidateConfig `toml:"candidates"`
}

type CandidateConfig struct {
	Kind   string  `toml:"kind"`
	Weight float64 `toml:"weight"`
}

type TargetConfig struct {
	Kind           string        `toml:"kind"`
	Variant        string        `toml:"variant"`
	Points         int           `toml:"points"`
	Damage         int           `toml:"damage"`
	Accepts        string        `toml:"accepts"`
	Lifetime       time.Duration `toml:"lifetime"`
	DamageOnExpire bool          `toml:"damage_on_expire"`
}

type EngineConfig struct {
	TickInterval time.Duration `toml:"tick_interval" env:"RANGEFIRE_TICK_INTERVAL"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Score: ScoreConfig{
			Mode:          component.ScoreModeScoreboard.String(),
			StartingLives: parameter.StartingLives,
			Levels:        []LevelConfig{{Target: parameter.DefaultLevelTarget}},
		},
		Weapons: []WeaponConfig{{
			ID:                 parameter.WeaponID,
			Category:           component.CategoryPistol.String(),
			Projectile:         parameter.ProjectileTemplate,
			MagazineSize:       parameter.MagazineSize,
			ReserveAmmo:        parameter.ReserveAmmo,
			FireCooldown:       parameter.FireCooldown,
			ReloadDuration:     parameter.ReloadDuration,
			AutoReload:         true,
			ProjectileLifetime: parameter.ProjectileLifetime,
			ProjectileSpeed:    parameter.ProjectileSpeed,
		}},
		Spawn: SpawnConfig{
			InitialInterval:   parameter.SpawnInitialInterval,
			AdvancedInterval:  parameter.SpawnAdvancedInterval,
			AdvancedThreshold: parameter.SpawnAdvancedThreshold,
			MaxPerTick:        parameter.SpawnMaxPerTick,
			Radius:            parameter.SpawnRadius,
			MinHeight:         parameter.SpawnMinHeight,
			MaxHeight:         parameter.SpawnMaxHeight,
			Seed:              1,
			Candidates: []CandidateConfig{
				{Kind: parameter.KindTarget, Weight: parameter.SpawnWeightTarget},
				{Kind: parameter.KindBomb, Weight: parameter.SpawnWeightBomb},
			},
		},
		Targets: []TargetConfig{
			{
				Kind:    parameter.KindTarget,
				Variant: component.VariantScoring.String(),
				Points:  parameter.DefaultPointsPerHit,
				Accepts: component.CategoryAny.String(),
			},
			{
				Kind:    parameter.KindBomb,
				Variant: component.VariantHazard.String(),
				Damage:  parameter.DefaultHazardDamage,
				Accepts: component.CategoryAny.String(),
			},
		},
		Engine: EngineConfig{
			TickInterval: parameter.TickInterval,
		},
	}
}

// ModeValue returns the parsed score mode, scoreboard when unparsable
func (s ScoreConfig) ModeValue() component.ScoreMode {
	m, _ := component.ParseScoreMode(s.Mode)
	return m
}

// LevelTarget returns the countdown target for level, clamping the index into the table
func (s ScoreConfig) LevelTarget(level int) (target, index int) {
	if len(s.Levels) == 0 {
		return parameter.DefaultLevelTarget, 0
	}
	index = min(max(level, 0), len(s.Levels)-1)
	return s.Levels[index].Target, index
}

// CategoryValue returns the parsed weapon category
func (w WeaponConfig) CategoryValue() component.WeaponCategory {
	c, _ := component.ParseCategory(w.Category)
	return c
}

// Profile converts a target table entry
func (t TargetConfig) Profile() component.TargetProfile {
	variant, _ := component.ParseVariant(t.Variant)
	accepts := component.CategoryAny
	if t.Accepts != "" {
		accepts, _ = component.ParseCategory(t.Accepts)
	}
	return component.TargetProfile{
		Kind:           t.Kind,
		Variant:        variant,
		Points:         t.Points,
		Damage:         t.Damage,
		Accepts:        accepts,
		Lifetime:       t.Lifetime,
		DamageOnExpire: t.DamageOnExpire,
	}
}

// Profiles converts the whole target table
func (c *Config) Profiles() []component.TargetProfile {
	out := make([]component.TargetProfile, 0, len(c.Targets))
	for _, t := range c.Targets {
		out = append(out, t.Profile())
	}
	return out
}

// CandidateList converts the spawn candidate table
func (s SpawnConfig) CandidateList() []component.SpawnCandidate {
	out := make([]component.SpawnCandidate, 0, len(s.Candidates))
	for _, c := range s.Candidates {
		out = append(out, component.SpawnCandidate{Kind: c.Kind, Weight: c.Weight})
	}
	return out
}
