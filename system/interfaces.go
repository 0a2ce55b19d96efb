package system

//go:generate go tool mockgen -destination=./mocks/spawner_mock.go -package=mocks . EntitySpawner,Hierarchy

import (
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/vmath"
)

// EntitySpawner creates and removes scene entities
// Destroy must be idempotent
type EntitySpawner interface {
	Spawn(kind string, position vmath.Vec3F) (core.Entity, error)
	Destroy(e core.Entity)
}

// Hierarchy answers parentage queries for self-hit filtering
type Hierarchy interface {
	IsDescendant(e, ancestor core.Entity) bool
}

// Scene is the full world surface a Session needs
type Scene interface {
	EntitySpawner
	Hierarchy
}

// ScoreSink receives target effects
type ScoreSink interface {
	AddPoints(n int) error
	ApplyDamage(n int) error
}
