package audio

//go:generate go tool mockgen -destination=./mocks/player_mock.go -package=mocks . Player

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/rangefire/parameter"
)

// Player schedules effect streams for output
// Play must not block the caller
type Player interface {
	Play(s beep.Streamer)
}

// SpeakerPlayer mixes effects into the system speaker
type SpeakerPlayer struct {
	mu    sync.Mutex
	rate  beep.SampleRate
	mixer *beep.Mixer
	ready bool
}

func NewSpeakerPlayer(rate beep.SampleRate) *SpeakerPlayer {
	return &SpeakerPlayer{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker, safe to call twice
// Fails on hosts without an audio device; callers run silent in that case
func (p *SpeakerPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play adds s to the mixer, no-op before Init
func (p *SpeakerPlayer) Play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Active returns the number of effects still playing
func (p *SpeakerPlayer) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.mixer.Len()
}

// Close silences every effect
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}
