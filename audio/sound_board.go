package audio

import (
	"log"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/event"
)

// SoundBoard turns session events into effects
// It runs inside bus dispatch, so it only builds streams and hands them to the Player
type SoundBoard struct {
	player Player
	rate   beep.SampleRate
	volume float64
	muted  atomic.Bool

	subs []event.Subscription
}

func NewSoundBoard(player Player, rate beep.SampleRate, volume float64) *SoundBoard {
	return &SoundBoard{
		player: player,
		rate:   rate,
		volume: volume,
	}
}

// Attach subscribes the board to bus
func (b *SoundBoard) Attach(bus *event.Bus) {
	b.subs = append(b.subs, bus.Register(b)...)
}

// Detach removes every subscription made by Attach
func (b *SoundBoard) Detach(bus *event.Bus) {
	for _, s := range b.subs {
		bus.Unsubscribe(s)
	}
	b.subs = nil
}

func (b *SoundBoard) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventWeaponFired,
		event.EventWeaponReloaded,
		event.EventTargetHit,
		event.EventLevelLost,
		event.EventLevelComplete,
	}
}

func (b *SoundBoard) HandleEvent(ev event.GameEvent) {
	if sound, ok := soundFor(ev); ok {
		b.Play(sound)
	}
}

// Play emits one effect unless muted
func (b *SoundBoard) Play(sound Sound) {
	if b.muted.Load() || b.volume <= 0 {
		return
	}
	s := Effect(sound, b.rate, b.volume)
	if s == nil {
		log.Printf("[audio] no effect for %s", sound)
		return
	}
	b.player.Play(s)
}

func (b *SoundBoard) SetMuted(muted bool) {
	b.muted.Store(muted)
}

func (b *SoundBoard) Muted() bool {
	return b.muted.Load()
}

func soundFor(ev event.GameEvent) (Sound, bool) {
	switch ev.Type {
	case event.EventWeaponFired:
		return SoundShot, true
	case event.EventWeaponReloaded:
		return SoundReload, true
	case event.EventTargetHit:
		if p, ok := ev.Payload.(*event.TargetPayload); ok && p.Variant == component.VariantHazard {
			return SoundExplosion, true
		}
		return SoundHit, true
	case event.EventLevelLost:
		return SoundLoss, true
	case event.EventLevelComplete:
		return SoundComplete, true
	}
	return 0, false
}
