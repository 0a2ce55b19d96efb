package component

import (
	"strings"
	"time"

	"github.com/lixenwraith/rangefire/core"
)

// WeaponCategory is the damage source carried by projectiles and matched by target filters
type WeaponCategory int

const (
	CategoryPistol WeaponCategory = iota
	CategoryRifle
	CategoryShotgun
	// CategoryAny is a filter value only, it accepts every category
	CategoryAny
)

var categoryNames = [...]string{"pistol", "rifle", "shotgun", "any"}

func (c WeaponCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory maps a config name to a category
func ParseCategory(s string) (WeaponCategory, bool) {
	for i, n := range categoryNames {
		if strings.EqualFold(s, n) {
			return WeaponCategory(i), true
		}
	}
	return CategoryAny, false
}

// Accepts reports whether a filter admits the given damage source
func (c WeaponCategory) Accepts(source WeaponCategory) bool {
	return c == CategoryAny || c == source
}

// ReloadState tracks the reload timer
type ReloadState uint8

const (
	ReloadIdle ReloadState = iota
	ReloadReloading
)

// WeaponState is the externally visible firing state, derived from the component and the clock
type WeaponState uint8

const (
	WeaponReady WeaponState = iota
	WeaponCooldown
	WeaponReloading
	WeaponEmpty
)

func (s WeaponState) String() string {
	switch s {
	case WeaponReady:
		return "ready"
	case WeaponCooldown:
		return "cooldown"
	case WeaponReloading:
		return "reloading"
	case WeaponEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// WeaponComponent holds per-weapon ammunition and timer state
type WeaponComponent struct {
	Entity   core.Entity // World handle, projectiles ignore contacts with it and its descendants
	ID       string
	Category WeaponCategory

	MagazineSize int
	CurrentAmmo  int // [0, MagazineSize]
	ReserveAmmo  int // -1 = unlimited

	CooldownUntil time.Time
	Reload        ReloadState
	ReloadUntil   time.Time
}

// UnlimitedReserve reports whether reloads draw from an infinite pool
func (w *WeaponComponent) UnlimitedReserve() bool {
	return w.ReserveAmmo < 0
}
