package fsm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

const rootName = "Root"

var (
	ErrUnknownState  = errors.New("unknown state")
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownGuard  = errors.New("unknown guard")
)

// LoadConfig parses a TOML graph and populates the Machine
// Guards and actions must be registered first; every reference is validated
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("unmarshal fsm config: %w", err)
	}
	if config.States == nil {
		config.States = make(map[string]*StateConfig)
	}

	m.nodes = make(map[StateID]*Node[T])
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]

	// First pass: ids, Root is always 1
	m.AddState(StateRoot, rootName, StateNone)
	nameToID := map[string]StateID{rootName: StateRoot}
	if _, ok := config.States[rootName]; !ok {
		config.States[rootName] = &StateConfig{}
	}

	// Sorted for deterministic ids
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != rootName {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)
	for i, name := range stateNames {
		nameToID[name] = StateID(i + 2)
	}

	// Second pass: nodes, actions, transitions
	for name, cfg := range config.States {
		id := nameToID[name]

		var node *Node[T]
		if id == StateRoot {
			node = m.nodes[StateRoot]
		} else {
			pName := cfg.Parent
			if pName == "" {
				pName = rootName
			}
			parentID, ok := nameToID[pName]
			if !ok {
				return fmt.Errorf("state %q parent %q: %w", name, pName, ErrUnknownState)
			}
			node = m.AddState(id, name, parentID)
		}

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state %q on_enter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state %q on_update: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state %q on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state %q transitions: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok || initialID == StateRoot {
		return fmt.Errorf("initial state %q: %w", config.InitialState, ErrUnknownState)
	}
	m.InitialStateID = initialID
	return nil
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	for id, node := range m.nodes {
		if node.Name == name {
			return id, true
		}
	}
	return StateNone, false
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("%q: %w", cfg.Action, ErrUnknownAction)
		}
		actions = append(actions, Action[T]{Name: cfg.Action, Func: fn, Args: cfg.Args})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok {
			return fmt.Errorf("target %q: %w", cfg.Target, ErrUnknownState)
		}

		trigger := Trigger(cfg.Trigger)
		if cfg.Trigger == "Tick" {
			trigger = TriggerTick
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			g, ok := m.guardReg[cfg.Guard]
			if !ok {
				return fmt.Errorf("%q: %w", cfg.Guard, ErrUnknownGuard)
			}
			guard = g
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Trigger:  trigger,
			Guard:    guard,
		})
	}
	return nil
}
