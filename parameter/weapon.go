package parameter

import "time"

// Magazine
const (
	// MagazineSize is the default rounds per magazine
	MagazineSize = 12

	// ReserveUnlimited marks an infinite reserve
	ReserveUnlimited = -1

	// ReserveAmmo is the default reserve, unlimited
	ReserveAmmo = ReserveUnlimited
)

// Timers
const (
	// FireCooldown is the minimum spacing between two shots
	FireCooldown = 200 * time.Millisecond

	// ReloadDuration is the time from reload start to a refilled magazine
	ReloadDuration = 1200 * time.Millisecond
)

// Projectile
const (
	// ProjectileTemplate is the entity kind spawned for a fired round
	ProjectileTemplate = "projectile"

	// ProjectileSpeed is muzzle velocity in world units per second
	ProjectileSpeed = 25.0

	// ProjectileLifetime bounds a projectile that never collides, zero disables the timeout
	ProjectileLifetime = 4 * time.Second

	// ProjectileRadius is the contact radius used by the demo contact feed
	ProjectileRadius = 0.1
)

// Identity
const (
	// WeaponID is the id of the default weapon
	WeaponID = "sidearm"

	// KindWeapon is the entity kind registered for a weapon, projectiles ignore it and its descendants
	KindWeapon = "weapon"
)

// Muzzle
const (
	// MuzzleHeight is the launch height above the spawn anchor
	MuzzleHeight = 1.5
)
