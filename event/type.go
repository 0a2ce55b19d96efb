package event

import "time"

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value and never published
	EventNone EventType = iota

	// === Score Event ===

	// EventScoreChanged reports the new score
	// Trigger: ScoreTracker.Reset, ScoreTracker.AddPoints (scoreboard mode)
	// Consumer: HUD, SoundBoard | Payload: *ScorePayload
	EventScoreChanged

	// EventLivesChanged reports the new life count
	// Trigger: ScoreTracker.Reset, ScoreTracker.ApplyDamage
	// Consumer: HUD | Payload: *LivesPayload
	EventLivesChanged

	// EventTargetsLeftChanged reports remaining level progress
	// Trigger: ScoreTracker.Reset, ScoreTracker.AddPoints (countdown mode)
	// Consumer: HUD | Payload: *TargetsLeftPayload
	EventTargetsLeftChanged

	// EventLevelComplete signals the countdown reached zero, once per episode
	// Trigger: ScoreTracker.AddPoints (countdown mode)
	// Consumer: SessionController, SoundBoard | Payload: nil
	EventLevelComplete

	// EventLevelLost signals lives reached zero, once per episode
	// Trigger: ScoreTracker.ApplyDamage
	// Consumer: SessionController, SoundBoard | Payload: *LivesPayload
	EventLevelLost

	// === Weapon Event ===

	// EventWeaponFired signals a projectile left the muzzle
	// Trigger: Weapon.Fire
	// Consumer: SoundBoard, demo contact feed | Payload: *WeaponFiredPayload
	EventWeaponFired

	// EventWeaponReloadStarted signals a reload timer started
	// Trigger: Weapon.Reload, auto-reload on empty
	// Consumer: SoundBoard, HUD | Payload: *WeaponPayload
	EventWeaponReloadStarted

	// EventWeaponReloaded signals a reload completed and ammo was loaded
	// Trigger: Weapon tick at reload deadline
	// Consumer: SoundBoard, HUD | Payload: *WeaponPayload
	EventWeaponReloaded

	// EventWeaponReloadCancelled signals an in-flight reload was abandoned, ammo unchanged
	// Trigger: Weapon.CancelReload, Weapon.RestartReload
	// Consumer: HUD | Payload: *WeaponPayload
	EventWeaponReloadCancelled

	// EventWeaponMisconfigured signals a weapon has no projectile template or muzzle
	// Trigger: first Fire on a misconfigured weapon
	// Consumer: HUD | Payload: *WeaponPayload
	EventWeaponMisconfigured

	// === Target Event ===

	// EventTargetSpawned signals a new target entered the world
	// Trigger: SpawnScheduler top-up
	// Consumer: demo contact feed, HUD | Payload: *TargetPayload
	EventTargetSpawned

	// EventTargetHit signals a target accepted a hit and applied its effect
	// Trigger: Shootable.CheckHit
	// Consumer: SoundBoard | Payload: *TargetPayload
	EventTargetHit

	// EventTargetDestroyed signals a target entity was removed
	// Trigger: TargetSystem sweep, SpawnScheduler clear
	// Consumer: demo contact feed | Payload: *TargetPayload
	EventTargetDestroyed

	// EventTargetExpired signals a target's lifetime elapsed without a hit
	// Trigger: TargetSystem tick
	// Consumer: SoundBoard | Payload: *TargetPayload
	EventTargetExpired

	// === Projectile Event ===

	// EventProjectileImpact signals a projectile resolved against a contact
	// Trigger: HitResolver
	// Consumer: SoundBoard, HUD | Payload: *ImpactPayload
	EventProjectileImpact

	// EventProjectileExpired signals a projectile timed out without a contact
	// Trigger: ProjectileSystem tick
	// Consumer: demo contact feed | Payload: *ProjectilePayload
	EventProjectileExpired

	// === Spawn Event ===

	// EventSpawnEscalation signals the required target count increased
	// Trigger: SpawnScheduler escalation
	// Consumer: HUD | Payload: *EscalationPayload
	EventSpawnEscalation

	// === Session Event ===

	// EventSessionStateChanged signals a session state transition
	// Trigger: SessionController
	// Consumer: HUD, SoundBoard | Payload: *SessionStatePayload
	EventSessionStateChanged
)

// GameEvent is a single notification delivered through the Bus
type GameEvent struct {
	Type    EventType
	Payload any
	Time    time.Time // Game time at publish
}
