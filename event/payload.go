package event

import (
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/vmath"
)

// ScorePayload carries the score after a change
type ScorePayload struct {
	Score    int
	MaxScore int
}

// LivesPayload carries the life count after a change
type LivesPayload struct {
	Lives int
}

// TargetsLeftPayload carries countdown progress after a change
type TargetsLeftPayload struct {
	TargetsLeft int
	Level       int
}

// WeaponPayload identifies a weapon and its ammo after a state change
type WeaponPayload struct {
	Weapon      core.Entity
	WeaponID    string
	CurrentAmmo int
	ReserveAmmo int
}

// WeaponFiredPayload describes a launched projectile
type WeaponFiredPayload struct {
	WeaponPayload
	Projectile core.Entity
	Category   component.WeaponCategory
	Origin     vmath.Vec3F
	Direction  vmath.Vec3F
	Speed      float64
}

// TargetPayload identifies a target
type TargetPayload struct {
	Entity   core.Entity
	Kind     string
	Variant  component.TargetVariant
	Position vmath.Vec3F
}

// ImpactPayload describes a resolved projectile contact
type ImpactPayload struct {
	Projectile core.Entity
	Struck     core.Entity
	Point      vmath.Vec3F
	Normal     vmath.Vec3F
	Accepted   bool // struck entity accepted and applied the hit
}

// ProjectilePayload identifies a projectile
type ProjectilePayload struct {
	Projectile core.Entity
	WeaponID   string
}

// EscalationPayload reports the spawn plan after an escalation step
type EscalationPayload struct {
	RequiredCount int
	Interval      time.Duration
	Next          time.Time
}

// SessionStatePayload reports a session transition
type SessionStatePayload struct {
	From    component.SessionState
	To      component.SessionState
	Episode string // episode id, empty outside an episode
	Level   int
}
