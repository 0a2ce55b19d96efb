package component

import (
	"strings"
	"time"

	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/vmath"
)

// TargetVariant selects the effect applied on an accepted hit
type TargetVariant uint8

const (
	// VariantScoring awards points (or level progress in countdown mode)
	VariantScoring TargetVariant = iota
	// VariantHazard damages the player
	VariantHazard
)

func (v TargetVariant) String() string {
	if v == VariantHazard {
		return "hazard"
	}
	return "scoring"
}

// ParseVariant maps a config name to a variant
func ParseVariant(s string) (TargetVariant, bool) {
	switch strings.ToLower(s) {
	case "scoring", "target", "":
		return VariantScoring, true
	case "hazard", "bomb":
		return VariantHazard, true
	}
	return VariantScoring, false
}

// TargetProfile is the load-time definition of a spawnable kind
type TargetProfile struct {
	Kind           string
	Variant        TargetVariant
	Points         int
	Damage         int
	Accepts        WeaponCategory
	Lifetime       time.Duration // 0 = lives until hit or cleared
	DamageOnExpire bool
}

// TargetComponent is the runtime state of one spawned target
type TargetComponent struct {
	Entity    core.Entity
	Kind      string
	Position  vmath.Vec3F
	Active    bool // false exactly once: first accepted hit or expiry
	SpawnedAt time.Time
	ExpiresAt time.Time // zero = never
	Removing  bool      // swept on the next tick
}
