package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Trigger names an external event routed through HandleEvent
// The empty trigger marks tick transitions evaluated by Update
type Trigger string

const TriggerTick Trigger = ""

// Machine is a generic hierarchical finite state machine
// T is the context type passed to actions and guards (e.g. *system.Session)
// Not safe for concurrent use: drive it from the simulation goroutine only
type Machine[T any] struct {
	// Graph data, immutable after load
	nodes map[StateID]*Node[T]

	// Stored during load for Init/Reset
	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID // Root -> ... -> leaf

	// Dependency injection
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node for LCA lookup
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Evaluated in declaration order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Trigger  Trigger      // TriggerTick = evaluated on Update
	Guard    GuardFunc[T] // nil = always true
}

// Action represents a side effect with pre-compiled arguments
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
	Args map[string]any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args map[string]any)
