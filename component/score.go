package component

import "strings"

// ScoreMode selects how hits advance the session, one per deployment
type ScoreMode uint8

const (
	// ScoreModeScoreboard counts score up and tracks the maximum
	ScoreModeScoreboard ScoreMode = iota
	// ScoreModeCountdown counts remaining level targets down to zero
	ScoreModeCountdown
)

func (m ScoreMode) String() string {
	if m == ScoreModeCountdown {
		return "countdown"
	}
	return "scoreboard"
}

// ParseScoreMode maps a config name to a mode
func ParseScoreMode(s string) (ScoreMode, bool) {
	switch strings.ToLower(s) {
	case "scoreboard", "":
		return ScoreModeScoreboard, true
	case "countdown":
		return ScoreModeCountdown, true
	}
	return ScoreModeScoreboard, false
}

// ScoreComponent is the score/life state of one session
type ScoreComponent struct {
	Score       int
	MaxScore    int
	Lives       int // >= 0
	TargetsLeft int // countdown mode only
}
