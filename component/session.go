package component

// SessionState is the top-level session state
type SessionState uint8

const (
	SessionMenu SessionState = iota
	SessionPlaying
	SessionPaused
	SessionLost
	SessionComplete
)

func (s SessionState) String() string {
	switch s {
	case SessionMenu:
		return "Menu"
	case SessionPlaying:
		return "Playing"
	case SessionPaused:
		return "Paused"
	case SessionLost:
		return "Lost"
	case SessionComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}
