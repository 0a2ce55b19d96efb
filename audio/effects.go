package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/rangefire/parameter"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator
type tone struct {
	freq      float64
	phase     float64
	remaining int
	wave      Wave
	rate      beep.SampleRate
}

// NewTone creates a finite oscillator stream
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:      freq,
		remaining: rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.remaining <= 0 {
		return 0, false
	}
	for i := range samples {
		if t.remaining <= 0 {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.remaining--
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and release to a stream
type shape struct {
	streamer     beep.Streamer
	pos          int
	total        int
	attack       int
	releaseStart int
	release      int
}

// NewShape wraps s with a linear attack/release envelope over duration
func NewShape(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &shape{
		streamer:     s,
		total:        total,
		attack:       att,
		release:      rel,
		releaseStart: total - rel,
	}
}

func (e *shape) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}

		gain := 1.0
		switch {
		case e.pos < e.attack:
			gain = float64(e.pos) / float64(e.attack)
		case e.release > 0 && e.pos >= e.releaseStart:
			gain = float64(e.total-e.pos) / float64(e.release)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.streamer.Err() }

// gain scales a stream linearly, 0 silences it
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

func shotSound(rate beep.SampleRate) beep.Streamer {
	crack := NewShape(NewTone(0, parameter.ShotDuration, WaveNoise, rate),
		parameter.ShotDuration, parameter.ShotAttack, parameter.ShotRelease, rate)
	thump := NewShape(NewTone(80, parameter.ShotDuration, WaveSquare, rate),
		parameter.ShotDuration, parameter.ShotAttack, parameter.ShotRelease, rate)
	return beep.Mix(gain(crack, 0.6), gain(thump, 0.4))
}

func reloadSound(rate beep.SampleRate) beep.Streamer {
	click := func(freq float64) beep.Streamer {
		return NewShape(NewTone(freq, parameter.ReloadClickDuration, WaveSquare, rate),
			parameter.ReloadClickDuration, time.Millisecond, parameter.ReloadClickDuration/2, rate)
	}
	return beep.Seq(click(1200), beep.Silence(rate.N(parameter.ReloadClickGap)), click(900))
}

func hitSound(rate beep.SampleRate) beep.Streamer {
	fundamental := NewShape(NewTone(880, parameter.HitDuration, WaveSine, rate),
		parameter.HitDuration, parameter.HitAttack, parameter.HitFundamentalRel, rate)
	overtone := NewShape(NewTone(1760, parameter.HitDuration, WaveSine, rate),
		parameter.HitDuration, parameter.HitAttack, parameter.HitOvertoneRelease, rate)
	return beep.Mix(gain(fundamental, 0.7), gain(overtone, 0.3))
}

func explosionSound(rate beep.SampleRate) beep.Streamer {
	noise := NewShape(NewTone(0, parameter.ExplosionDuration, WaveNoise, rate),
		parameter.ExplosionDuration, parameter.ExplosionAttack, parameter.ExplosionRelease, rate)
	rumble := NewShape(NewTone(55, parameter.ExplosionDuration, WaveSaw, rate),
		parameter.ExplosionDuration, parameter.ExplosionAttack, parameter.ExplosionRelease, rate)
	return beep.Mix(gain(noise, 0.5), gain(rumble, 0.5))
}

// jingle plays notes back to back
func jingle(rate beep.SampleRate, wave Wave, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, NewShape(NewTone(f, parameter.JingleNoteDuration, wave, rate),
			parameter.JingleNoteDuration, parameter.JingleAttack, parameter.JingleRelease, rate))
	}
	return beep.Seq(notes...)
}

// Effect builds a fresh stream for sound at the given linear volume
func Effect(sound Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundShot:
		s = shotSound(rate)
	case SoundReload:
		s = reloadSound(rate)
	case SoundHit:
		s = hitSound(rate)
	case SoundExplosion:
		s = explosionSound(rate)
	case SoundLoss:
		s = jingle(rate, WaveSaw, 220, 165, 110)
	case SoundComplete:
		// B5 E6 A6
		s = jingle(rate, WaveSquare, 987.77, 1318.51, 1760)
	default:
		return nil
	}
	return gain(s, volume)
}
