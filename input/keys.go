package input

import (
	"context"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rangefire/event"
)

var runeIntents = map[rune]event.Intent{
	' ': event.IntentFire,
	'f': event.IntentFire,
	'r': event.IntentReload,
	'p': event.IntentPauseToggle,
	's': event.IntentStart,
	'm': event.IntentMenu,
	'w': event.IntentCycleWeapon,
	'q': event.IntentQuit,
}

var keyIntents = map[tcell.Key]event.Intent{
	tcell.KeyEnter:  event.IntentStart,
	tcell.KeyTab:    event.IntentCycleWeapon,
	tcell.KeyEscape: event.IntentMenu,
	tcell.KeyCtrlC:  event.IntentQuit,
}

// Translate maps a key press to a player intent
func Translate(ev *tcell.EventKey) (event.Intent, bool) {
	if ev.Key() == tcell.KeyRune {
		in, ok := runeIntents[unicode.ToLower(ev.Rune())]
		return in, ok
	}
	in, ok := keyIntents[ev.Key()]
	return in, ok
}

// Poll pumps screen events into intents until the screen is finalized or ctx is done
// PollEvent blocks, so cancelling ctx alone does not return; callers Fini the screen
func Poll(ctx context.Context, screen tcell.Screen, intents *event.IntentQueue) error {
	for {
		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if in, ok := Translate(ev); ok {
				intents.Push(in)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
