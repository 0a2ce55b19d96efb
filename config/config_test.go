package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/parameter"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Score.ModeValue() != component.ScoreModeScoreboard {
		t.Errorf("default mode = %v", cfg.Score.ModeValue())
	}
	if len(cfg.Weapons) != 1 || cfg.Weapons[0].MagazineSize != parameter.MagazineSize {
		t.Errorf("default weapons = %+v", cfg.Weapons)
	}
	if got := len(cfg.Spawn.CandidateList()); got != 2 {
		t.Errorf("default candidates = %d, want 2", got)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := `
[score]
mode = "countdown"
starting_lives = 5
level = 1

[[score.levels]]
target = 3

[[score.levels]]
target = 7

[[weapons]]
id = "rifle"
category = "rifle"
projectile = "slug"
magazine_size = 30
reserve_ammo = 90
fire_cooldown = "100ms"
reload_duration = "2s"
auto_reload = false
projectile_speed = 40.0

[spawn]
initial_interval = "5s"
max_per_tick = 0

[[targets]]
kind = "drone"
variant = "scoring"
points = 2
accepts = "rifle"
lifetime = "8s"
damage_on_expire = true
`
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Score.ModeValue() != component.ScoreModeCountdown {
		t.Errorf("mode = %v, want countdown", cfg.Score.ModeValue())
	}
	if target, idx := cfg.Score.LevelTarget(cfg.Score.Level); target != 7 || idx != 1 {
		t.Errorf("LevelTarget = %d@%d, want 7@1", target, idx)
	}

	w := cfg.Weapons[0]
	if len(cfg.Weapons) != 1 || w.ID != "rifle" || w.CategoryValue() != component.CategoryRifle {
		t.Fatalf("weapons = %+v", cfg.Weapons)
	}
	if w.FireCooldown != 100*time.Millisecond || w.ReloadDuration != 2*time.Second || w.AutoReload {
		t.Errorf("weapon timers = %+v", w)
	}

	if cfg.Spawn.InitialInterval != 5*time.Second {
		t.Errorf("initial_interval = %v", cfg.Spawn.InitialInterval)
	}
	if cfg.Spawn.AdvancedInterval != parameter.SpawnAdvancedInterval {
		t.Errorf("advanced_interval should keep its default, got %v", cfg.Spawn.AdvancedInterval)
	}
	if len(cfg.Spawn.Candidates) != 2 {
		t.Errorf("candidates should keep defaults when absent, got %+v", cfg.Spawn.Candidates)
	}

	p := cfg.Profiles()
	if len(p) != 1 || p[0].Accepts != component.CategoryRifle || !p[0].DamageOnExpire || p[0].Lifetime != 8*time.Second {
		t.Errorf("profiles = %+v", p)
	}
}

func TestValidateClampsAndRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Score.Mode = "arcade" },
			wantErr: true,
		},
		{
			name:    "no weapons",
			mutate:  func(c *Config) { c.Weapons = nil },
			wantErr: true,
		},
		{
			name:    "weapon accepts any is not a category",
			mutate:  func(c *Config) { c.Weapons[0].Category = "any" },
			wantErr: true,
		},
		{
			name:    "duplicate target kind",
			mutate:  func(c *Config) { c.Targets = append(c.Targets, c.Targets[0]) },
			wantErr: true,
		},
		{
			name:   "level index clamped",
			mutate: func(c *Config) { c.Score.Mode = "countdown"; c.Score.Level = 9 },
			check: func(t *testing.T, c *Config) {
				if c.Score.Level != 0 {
					t.Errorf("level = %d, want 0", c.Score.Level)
				}
			},
		},
		{
			name:   "countdown without levels falls back",
			mutate: func(c *Config) { c.Score.Mode = "countdown"; c.Score.Levels = nil },
			check: func(t *testing.T, c *Config) {
				if c.Score.ModeValue() != component.ScoreModeScoreboard {
					t.Errorf("mode = %v, want scoreboard", c.Score.ModeValue())
				}
			},
		},
		{
			name: "negative values clamped",
			mutate: func(c *Config) {
				c.Spawn.MaxPerTick = -3
				c.Spawn.AdvancedThreshold = 0
				c.Weapons[0].ReserveAmmo = -7
				c.Engine.TickInterval = 0
			},
			check: func(t *testing.T, c *Config) {
				if c.Spawn.MaxPerTick != 0 || c.Spawn.AdvancedThreshold != 1 {
					t.Errorf("spawn = %+v", c.Spawn)
				}
				if c.Weapons[0].ReserveAmmo != parameter.ReserveUnlimited {
					t.Errorf("reserve = %d", c.Weapons[0].ReserveAmmo)
				}
				if c.Engine.TickInterval != parameter.TickInterval {
					t.Errorf("tick = %v", c.Engine.TickInterval)
				}
			},
		},
		{
			name:   "empty candidates only disable spawning",
			mutate: func(c *Config) { c.Spawn.Candidates = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrUnusable) {
					t.Errorf("Validate() = %v, want ErrUnusable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rangefire.toml")
	if err := os.WriteFile(path, []byte("[score]\nstarting_lives = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RANGEFIRE_STARTING_LIVES", "9")
	t.Setenv("RANGEFIRE_SPAWN_INITIAL_INTERVAL", "3s")
	t.Setenv("RANGEFIRE_SEED", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Score.StartingLives != 9 {
		t.Errorf("starting_lives = %d, want env override 9", cfg.Score.StartingLives)
	}
	if cfg.Spawn.InitialInterval != 3*time.Second {
		t.Errorf("initial_interval = %v, want 3s", cfg.Spawn.InitialInterval)
	}
	if cfg.Spawn.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Spawn.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	t.Setenv("RANGEFIRE_STARTING_LIVES", "many")
	if _, err := Load(""); err == nil {
		t.Error("expected env parse error")
	}
}

func TestParseRejectsBadTOML(t *testing.T) {
	if _, err := Parse("[score\nmode ="); err == nil {
		t.Error("expected decode error")
	}
}
