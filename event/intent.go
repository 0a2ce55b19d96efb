package event

// Intent is a discrete player request delivered by the input feed
type Intent uint8

const (
	IntentNone Intent = iota
	IntentFire
	IntentReload
	IntentPauseToggle
	IntentStart
	IntentMenu
	IntentCycleWeapon
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentFire:
		return "Fire"
	case IntentReload:
		return "Reload"
	case IntentPauseToggle:
		return "PauseToggle"
	case IntentStart:
		return "Start"
	case IntentMenu:
		return "Menu"
	case IntentCycleWeapon:
		return "CycleWeapon"
	case IntentQuit:
		return "Quit"
	default:
		return "None"
	}
}
