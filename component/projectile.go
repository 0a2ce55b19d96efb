package component

import (
	"time"

	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/vmath"
)

// ProjectileComponent is the in-flight record of one fired round
type ProjectileComponent struct {
	Entity       core.Entity
	SourceWeapon core.Entity
	WeaponID     string
	Category     WeaponCategory
	Resolved     bool // set on first processed contact, later contacts are no-ops

	Origin    vmath.Vec3F
	Direction vmath.Vec3F // unit vector
	Speed     float64

	FiredAt   time.Time
	ExpiresAt time.Time // zero = no timeout
}
