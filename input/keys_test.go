package input

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rangefire/event"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want event.Intent
		ok   bool
	}{
		{"space fires", tcell.KeyRune, ' ', event.IntentFire, true},
		{"upper case", tcell.KeyRune, 'R', event.IntentReload, true},
		{"pause", tcell.KeyRune, 'p', event.IntentPauseToggle, true},
		{"enter starts", tcell.KeyEnter, 0, event.IntentStart, true},
		{"tab cycles", tcell.KeyTab, 0, event.IntentCycleWeapon, true},
		{"escape menu", tcell.KeyEscape, 0, event.IntentMenu, true},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, event.IntentQuit, true},
		{"unbound rune", tcell.KeyRune, 'z', event.IntentNone, false},
		{"unbound key", tcell.KeyF5, 0, event.IntentNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone))
			if ok != tt.ok || got != tt.want {
				t.Errorf("Translate = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPollPushesIntents(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}

	intents := event.NewIntentQueue()
	done := make(chan error, 1)
	go func() {
		done <- Poll(context.Background(), screen, intents)
	}()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	for intents.Len() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	got := intents.Consume()
	if len(got) != 2 || got[0] != event.IntentFire || got[1] != event.IntentStart {
		t.Errorf("intents = %v, want [Fire Start]", got)
	}

	screen.Fini()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Poll returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Poll did not return after Fini")
	}
}
