package fsm

// RootConfig represents the top-level config structure
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `toml:"parent"`
	OnEnter     []ActionConfig     `toml:"on_enter"`
	OnUpdate    []ActionConfig     `toml:"on_update"`
	OnExit      []ActionConfig     `toml:"on_exit"`
	Transitions []TransitionConfig `toml:"transitions"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger string `toml:"trigger"` // Trigger name or "Tick"
	Target  string `toml:"target"`  // Target state name
	Guard   string `toml:"guard"`   // Registered guard name
}

// ActionConfig represents an action definition
type ActionConfig struct {
	Action string         `toml:"action"` // Registered action name
	Args   map[string]any `toml:"args"`
}
