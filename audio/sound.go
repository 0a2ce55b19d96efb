package audio

// Sound identifies one synthesized effect
type Sound uint8

const (
	SoundShot Sound = iota
	SoundReload
	SoundHit
	SoundExplosion
	SoundLoss
	SoundComplete
	soundCount
)

var soundNames = [...]string{"shot", "reload", "hit", "explosion", "loss", "complete"}

func (s Sound) String() string {
	if int(s) >= len(soundNames) {
		return "unknown"
	}
	return soundNames[s]
}
