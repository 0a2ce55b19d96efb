package component

import "time"

// SpawnCandidate is one entry of the weighted kind table
type SpawnCandidate struct {
	Kind   string
	Weight float64 // <= 0 excludes the entry
}

// SpawnPlan is the escalation state of one episode
type SpawnPlan struct {
	RequiredCount   int
	CurrentInterval time.Duration
	NextEscalation  time.Time
	Candidates      []SpawnCandidate
}
