package parameter

import "time"

// Audio output
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	AudioMasterVolume   = 0.5
)

// Effect shapes
const (
	ShotDuration = 90 * time.Millisecond
	ShotAttack   = 2 * time.Millisecond
	ShotRelease  = 70 * time.Millisecond

	ReloadClickDuration = 35 * time.Millisecond
	ReloadClickGap      = 60 * time.Millisecond

	HitDuration        = 250 * time.Millisecond
	HitAttack          = 5 * time.Millisecond
	HitFundamentalRel  = 200 * time.Millisecond
	HitOvertoneRelease = 120 * time.Millisecond

	ExplosionDuration = 450 * time.Millisecond
	ExplosionAttack   = 5 * time.Millisecond
	ExplosionRelease  = 400 * time.Millisecond

	JingleNoteDuration = 140 * time.Millisecond
	JingleAttack       = 5 * time.Millisecond
	JingleRelease      = 60 * time.Millisecond
)
