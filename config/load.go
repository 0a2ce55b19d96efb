package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without environment overrides
func Parse(data string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.decode(string(data))
}

func (c *Config) decode(data string) error {
	// Tables present in the file replace the defaults wholesale
	c.Weapons = nil
	c.Targets = nil
	c.Spawn.Candidates = nil
	c.Score.Levels = nil

	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	def := Default()
	if !md.IsDefined("weapons") {
		c.Weapons = def.Weapons
	}
	if !md.IsDefined("targets") {
		c.Targets = def.Targets
	}
	if !md.IsDefined("spawn", "candidates") {
		c.Spawn.Candidates = def.Spawn.Candidates
	}
	if !md.IsDefined("score", "levels") {
		c.Score.Levels = def.Score.Levels
	}

	for _, key := range md.Undecoded() {
		log.Printf("[config] unknown key %q ignored", key.String())
	}
	return nil
}

// ApplyEnv overrides scalar settings from RANGEFIRE_* variables
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var ErrUnusable = errors.New("unusable configuration")
