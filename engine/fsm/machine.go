package fsm

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrNotInitialized = errors.New("fsm has no initial state")

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running OnEnter from Root down
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return ErrNotInitialized
	}

	m.activeStateID = node.ID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update advances time in state, runs the leaf's OnUpdate actions, then evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt
	runActions(ctx, m.nodes[m.activeStateID].OnUpdate)

	m.fire(ctx, TriggerTick)
}

// HandleEvent routes a trigger from the leaf up to Root
// Returns true if a transition matched
func (m *Machine[T]) HandleEvent(ctx T, trigger Trigger) bool {
	if m.activeStateID == StateNone || trigger == TriggerTick {
		return false
	}
	return m.fire(ctx, trigger)
}

func (m *Machine[T]) fire(ctx T, trigger Trigger) bool {
	// Bubble up: leaf -> parent -> root
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Trigger != trigger {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs the state change: exit up to the LCA, enter down to the target
// Transition to the active leaf is a no-op
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("fsm: transition to unknown state ID %d", targetID))
	}

	lcaIndex := -1
	currentPath := slices.Clone(m.activePath)
	targetPath := targetNode.Path
	for i := 0; i < min(len(currentPath), len(targetPath)); i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Commit before running actions so actions observe the target state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// StateID returns the active leaf, StateNone before Init
func (m *Machine[T]) StateID() StateID {
	return m.activeStateID
}

// StateName returns the active leaf name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InState reports whether the named state is the leaf or one of its ancestors
func (m *Machine[T]) InState(name string) bool {
	for _, id := range m.activePath {
		if m.nodes[id].Name == name {
			return true
		}
	}
	return false
}

// TimeInState returns accumulated Update time since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx, a.Args)
	}
}
