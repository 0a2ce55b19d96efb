package event

var typeToName = map[EventType]string{
	EventNone:                  "None",
	EventScoreChanged:          "ScoreChanged",
	EventLivesChanged:          "LivesChanged",
	EventTargetsLeftChanged:    "TargetsLeftChanged",
	EventLevelComplete:         "LevelComplete",
	EventLevelLost:             "LevelLost",
	EventWeaponFired:           "WeaponFired",
	EventWeaponReloadStarted:   "WeaponReloadStarted",
	EventWeaponReloaded:        "WeaponReloaded",
	EventWeaponReloadCancelled: "WeaponReloadCancelled",
	EventWeaponMisconfigured:   "WeaponMisconfigured",
	EventTargetSpawned:         "TargetSpawned",
	EventTargetHit:             "TargetHit",
	EventTargetDestroyed:       "TargetDestroyed",
	EventTargetExpired:         "TargetExpired",
	EventProjectileImpact:      "ProjectileImpact",
	EventProjectileExpired:     "ProjectileExpired",
	EventSpawnEscalation:       "SpawnEscalation",
	EventSessionStateChanged:   "SessionStateChanged",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for t, n := range typeToName {
		m[n] = t
	}
	return m
}()

// String returns the registered name, used in log lines
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "Unknown"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}
