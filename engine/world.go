package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/vmath"
)

var (
	ErrEmptyKind     = errors.New("entity kind is empty")
	ErrUnknownEntity = errors.New("unknown entity")
	ErrCyclicParent  = errors.New("parent link would create a cycle")
)

type entityRecord struct {
	kind     string
	position vmath.Vec3F
	parent   core.Entity
}

// World is the scene-side entity registry
// It owns ids, kinds, positions and parentage; game state lives in the systems
// Safe for concurrent readers (render) while the simulation goroutine mutates
type World struct {
	mu       sync.RWMutex
	nextID   core.Entity
	entities map[core.Entity]*entityRecord
	children map[core.Entity][]core.Entity
}

// NewWorld creates an empty world, the first spawned entity gets id 1
func NewWorld() *World {
	return &World{
		entities: make(map[core.Entity]*entityRecord),
		children: make(map[core.Entity][]core.Entity),
	}
}

// Spawn creates an entity of the given kind at position
func (w *World) Spawn(kind string, position vmath.Vec3F) (core.Entity, error) {
	if kind == "" {
		return core.NoEntity, ErrEmptyKind
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextID++
	e := w.nextID
	w.entities[e] = &entityRecord{kind: kind, position: position}
	return e, nil
}

// Destroy removes e and all its descendants, unknown entities are ignored
func (w *World) Destroy(e core.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyLocked(e)
}

func (w *World) destroyLocked(e core.Entity) {
	rec, ok := w.entities[e]
	if !ok {
		return
	}

	for _, child := range w.children[e] {
		w.destroyLocked(child)
	}
	delete(w.children, e)

	if rec.parent != core.NoEntity {
		siblings := w.children[rec.parent]
		if i := slices.Index(siblings, e); i >= 0 {
			w.children[rec.parent] = slices.Delete(siblings, i, i+1)
		}
	}
	delete(w.entities, e)
}

// Attach links child under parent, replacing any previous parent
func (w *World) Attach(child, parent core.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.entities[child]
	if !ok {
		return fmt.Errorf("attach child %d: %w", child, ErrUnknownEntity)
	}
	if _, ok := w.entities[parent]; !ok {
		return fmt.Errorf("attach parent %d: %w", parent, ErrUnknownEntity)
	}
	if child == parent || w.isDescendantLocked(parent, child) {
		return fmt.Errorf("attach %d to %d: %w", child, parent, ErrCyclicParent)
	}

	if rec.parent != core.NoEntity {
		siblings := w.children[rec.parent]
		if i := slices.Index(siblings, child); i >= 0 {
			w.children[rec.parent] = slices.Delete(siblings, i, i+1)
		}
	}
	rec.parent = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// IsDescendant reports whether e sits strictly below ancestor in the parent chain
func (w *World) IsDescendant(e, ancestor core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isDescendantLocked(e, ancestor)
}

func (w *World) isDescendantLocked(e, ancestor core.Entity) bool {
	rec, ok := w.entities[e]
	for ok && rec.parent != core.NoEntity {
		if rec.parent == ancestor {
			return true
		}
		rec, ok = w.entities[rec.parent]
	}
	return false
}

// Alive reports whether e exists
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.entities[e]
	return ok
}

// Kind returns the kind e was spawned with
func (w *World) Kind(e core.Entity) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if rec, ok := w.entities[e]; ok {
		return rec.kind, true
	}
	return "", false
}

func (w *World) Position(e core.Entity) (vmath.Vec3F, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if rec, ok := w.entities[e]; ok {
		return rec.position, true
	}
	return vmath.Vec3F{}, false
}

func (w *World) SetPosition(e core.Entity, position vmath.Vec3F) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if rec, ok := w.entities[e]; ok {
		rec.position = position
	}
}

// Count returns the number of live entities
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// Entities returns live entity ids in ascending order
func (w *World) Entities() []core.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]core.Entity, 0, len(w.entities))
	for e := range w.entities {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}
