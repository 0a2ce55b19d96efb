package physics

import (
	"time"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/system"
	"github.com/lixenwraith/rangefire/vmath"
)

// PositionSink receives integrated projectile positions
type PositionSink interface {
	SetPosition(e core.Entity, position vmath.Vec3F)
}

// SweptContacts reports sphere contacts along each projectile's path since the previous poll
// A projectile touching several targets in one step yields one collision per target
type SweptContacts struct {
	ProjectileRadius float64
	TargetRadius     float64

	positions PositionSink
	last      time.Time
}

// NewSweptContacts creates a contact feed, positions may be nil
func NewSweptContacts(projectileRadius, targetRadius float64, positions PositionSink) *SweptContacts {
	return &SweptContacts{
		ProjectileRadius: projectileRadius,
		TargetRadius:     targetRadius,
		positions:        positions,
	}
}

func (c *SweptContacts) Contacts(now time.Time, projectiles []component.ProjectileComponent, targets []component.TargetComponent) []system.Collision {
	prev := c.last
	c.last = now

	var out []system.Collision
	for _, p := range projectiles {
		from := p.FiredAt
		if prev.After(from) {
			from = prev
		}
		start := system.PositionAt(p, from)
		end := system.PositionAt(p, now)
		if c.positions != nil {
			c.positions.SetPosition(p.Entity, end)
		}

		for _, t := range targets {
			if !t.Active {
				continue
			}
			closest := vmath.ClosestOnSegment(start, end, t.Position)
			if !vmath.SpheresOverlap(closest, c.ProjectileRadius, t.Position, c.TargetRadius) {
				continue
			}

			normal := vmath.V3FNormalize(vmath.V3FSub(closest, t.Position))
			out = append(out, system.Collision{
				Projectile: p.Entity,
				Other:      t.Entity,
				Point:      vmath.V3FAdd(t.Position, vmath.V3FScale(normal, c.TargetRadius)),
				Normal:     normal,
			})
		}
	}
	return out
}
