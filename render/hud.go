package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rangefire/component"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/system"
	"github.com/lixenwraith/rangefire/vmath"
)

// HUD row layout
const (
	rowBanner = 0
	rowScore  = 1
	rowWeapon = 2
	rowSpawn  = 3
	mapTop    = 5
)

const helpLine = "space fire  r reload  tab weapon  p pause  enter start  m menu  q quit"

var (
	styleText    = tcell.StyleDefault
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTarget  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHit     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleShot    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleShooter = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// HUD draws a session snapshot: status lines on top, a top-down range map below
type HUD struct {
	screen tcell.Screen
	reg    *status.Registry
	anchor vmath.Vec3F
	radius float64
	debug  bool
}

// NewHUD maps the disk of radius around anchor into the map area
func NewHUD(screen tcell.Screen, reg *status.Registry, anchor vmath.Vec3F, radius float64) *HUD {
	return &HUD{
		screen: screen,
		reg:    reg,
		anchor: anchor,
		radius: max(radius, 1),
	}
}

// SetDebug toggles the metrics line
func (h *HUD) SetDebug(debug bool) {
	h.debug = debug
}

func (h *HUD) Draw(snap system.Snapshot) {
	h.screen.Clear()
	w, ht := h.screen.Size()

	h.drawBanner(snap, w)
	h.drawScore(snap)
	h.drawWeapon(snap)
	h.drawSpawn(snap)
	h.drawMap(snap, w, ht-2)

	if h.debug && h.reg != nil {
		h.text(0, ht-2, styleDim, h.metricsLine())
	}
	h.text(0, ht-1, styleDim, helpLine)
	h.screen.Show()
}

func (h *HUD) drawBanner(snap system.Snapshot, w int) {
	style := styleBanner
	label := strings.ToUpper(snap.State.String())
	switch snap.State {
	case component.SessionMenu:
		label = "MENU - press enter to start"
	case component.SessionLost:
		label = "LOST - press enter to retry"
		style = styleWarn
	case component.SessionComplete:
		label = fmt.Sprintf("LEVEL COMPLETE - press enter for level %d", snap.Level+1)
	}
	h.text(0, rowBanner, style, "RANGEFIRE  "+label)

	if snap.Episode != "" {
		id := snap.Episode
		if len(id) > 8 {
			id = id[:8]
		}
		tag := "episode " + id
		h.text(w-len(tag), rowBanner, styleDim, tag)
	}
}

func (h *HUD) drawScore(snap system.Snapshot) {
	var line string
	if snap.Mode == component.ScoreModeCountdown {
		line = fmt.Sprintf("LEVEL %d  TARGETS LEFT %d  LIVES %d", snap.Level+1, snap.Score.TargetsLeft, snap.Score.Lives)
	} else {
		line = fmt.Sprintf("SCORE %d  MAX %d  LIVES %d", snap.Score.Score, snap.Score.MaxScore, snap.Score.Lives)
	}
	style := styleText
	if snap.Score.Lives <= 1 {
		style = styleWarn
	}
	h.text(0, rowScore, style, line)
}

func (h *HUD) drawWeapon(snap system.Snapshot) {
	wc := snap.Weapon
	reserve := "inf"
	if !wc.UnlimitedReserve() {
		reserve = fmt.Sprint(wc.ReserveAmmo)
	}
	line := fmt.Sprintf("%s [%s] %d/%d  reserve %s  %s",
		wc.ID, wc.Category, wc.CurrentAmmo, wc.MagazineSize, reserve, strings.ToUpper(snap.WeaponState.String()))
	if snap.WeaponState == component.WeaponReloading {
		if left := wc.ReloadUntil.Sub(snap.Now); left > 0 {
			line += fmt.Sprintf(" %.1fs", left.Seconds())
		}
	}
	if snap.WeaponCount > 1 {
		line += fmt.Sprintf("  (%d/%d)", snap.ActiveWeapon+1, snap.WeaponCount)
	}

	style := styleText
	if snap.WeaponState == component.WeaponEmpty {
		style = styleWarn
	}
	h.text(0, rowWeapon, style, line)
}

func (h *HUD) drawSpawn(snap system.Snapshot) {
	line := fmt.Sprintf("REQUIRED %d  LIVE %d", snap.Plan.RequiredCount, snap.LiveTargets)
	if snap.State == component.SessionPlaying {
		if next := snap.Plan.NextEscalation.Sub(snap.Now); next > 0 {
			line += fmt.Sprintf("  NEXT +%.1fs", next.Seconds())
		}
	}
	h.text(0, rowSpawn, styleText, line)
}

// drawMap projects the XZ plane into the area between mapTop and bottom, +Z up the screen
func (h *HUD) drawMap(snap system.Snapshot, w, bottom int) {
	height := bottom - mapTop
	if height < 3 || w < 3 {
		return
	}

	for x := 0; x < w; x++ {
		h.screen.SetContent(x, mapTop, '-', nil, styleBorder)
		h.screen.SetContent(x, bottom-1, '-', nil, styleBorder)
	}

	for _, p := range snap.Projectiles {
		if x, y, ok := h.project(p, w, height); ok {
			h.screen.SetContent(x, y, '.', nil, styleShot)
		}
	}
	for _, t := range snap.Targets {
		x, y, ok := h.project(t.Position, w, height)
		if !ok {
			continue
		}
		if t.Active {
			h.screen.SetContent(x, y, targetGlyph(t.Kind), nil, styleTarget)
		} else {
			h.screen.SetContent(x, y, 'x', nil, styleHit)
		}
	}
	if x, y, ok := h.project(h.anchor, w, height); ok {
		h.screen.SetContent(x, y, '^', nil, styleShooter)
	}
}

// project maps a world point to a map cell, false when it falls outside
func (h *HUD) project(p vmath.Vec3F, w, height int) (int, int, bool) {
	inner := height - 2
	nx := (p.X - h.anchor.X) / h.radius
	nz := (p.Z - h.anchor.Z) / h.radius
	x := int(math.Round((nx + 1) / 2 * float64(w-1)))
	y := mapTop + 1 + int(math.Round((1-nz)/2*float64(inner-1)))
	if x < 0 || x >= w || y <= mapTop || y >= mapTop+1+inner {
		return 0, 0, false
	}
	return x, y, true
}

func (h *HUD) metricsLine() string {
	snap := h.reg.Snapshot()
	return fmt.Sprintf("ticks=%d hits=%d ignored=%d live=%d",
		snap["engine.ticks"], snap["hit.resolved"], snap["hit.ignored"], snap["spawn.live"])
}

func (h *HUD) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func targetGlyph(kind string) rune {
	if kind == "" {
		return 'O'
	}
	return []rune(strings.ToUpper(kind))[0]
}
