package runner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

// Visual characters for rendering
const (
	GroundChar     = '═'
	GroundMarkChar = '╪'
	SpikeChar      = '▲'
	ProjectileChar = '•'
)

const (
	bannerDuration = 2 * time.Second
	labelDuration  = 1500 * time.Millisecond
	hpBarWidth     = 10
)

// hudState holds floating labels driven by events. It is presentation
// state only and never feeds back into the simulation.
type hudState struct {
	banner      string
	bannerUntil time.Duration
	label       string
	labelUntil  time.Duration
}

// observe updates floating labels from a tick's events.
func (h *hudState) observe(events []core.Event, now time.Duration) {
	for _, ev := range events {
		switch e := ev.(type) {
		case core.WaveChanged:
			h.banner = fmt.Sprintf("WAVE %d", e.Wave)
			h.bannerUntil = now + bannerDuration
		case core.EffectStarted:
			h.label = "+" + strings.ToUpper(e.Name)
			if e.Refresh {
				h.label += " (reset)"
			}
			h.labelUntil = now + labelDuration
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	snap := g.Snapshot()
	camX := snap.CameraX

	g.drawGround(dst, snap)

	for _, e := range snap.Entities {
		sx := int(math.Floor(e.Pos.X - camX))
		sy := int(math.Floor(e.Pos.Y))
		switch e.Kind {
		case KindWalker:
			drawWalker(dst, sx, sy, e)
		case KindBat:
			drawBat(dst, sx, sy, e)
		case KindTurret:
			drawTurret(dst, sx, sy, e)
		case KindSpike:
			for dx := range int(e.W) {
				dst.SetColor(sx+dx, sy, SpikeChar, core.ColorBrightRed)
			}
		case KindProjectile:
			dst.SetColor(sx, sy, ProjectileChar, core.ColorYellow)
		case KindPowerUp:
			drawPowerUp(dst, sx, sy, e)
		}
	}

	g.drawPlayer(dst, snap)
	g.drawHUD(dst, snap)

	if snap.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if snap.GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Wave %d  |  Press R to restart", snap.Score, snap.Difficulty.Wave))
	}
}

// drawGround draws the ground line with marks that scroll with the camera.
func (g *Game) drawGround(dst *core.Screen, snap Snapshot) {
	gy := int(snap.GroundY)
	offset := int(math.Floor(snap.CameraX))
	for x := range dst.Width() {
		r := GroundChar
		if (x+offset)%8 == 0 {
			r = GroundMarkChar
		}
		dst.SetColor(x, gy, r, core.ColorGray)
	}
}

// drawPlayer renders the avatar silhouette (3x3).
func (g *Game) drawPlayer(dst *core.Screen, snap Snapshot) {
	p := snap.Player
	sx := int(math.Floor(p.Pos.X - snap.CameraX))
	sy := int(math.Floor(p.Pos.Y))

	color := core.ColorBrightWhite
	switch {
	case p.Hurt:
		color = core.ColorRed
	case g.world.effects.Active(effectShield, g.world.player.ID):
		color = core.ColorBrightCyan
	case p.Boosted:
		color = core.ColorBrightGreen
	}
	// Blink while invulnerable
	if p.Invulnerable && (snap.Elapsed/(100*time.Millisecond))%2 == 0 {
		color = core.ColorGray
	}

	head := " ● "
	body := "◀█╲"
	if p.Facing == FacingRight {
		body = "╱█▶"
	}

	var legs string
	switch {
	case p.Dashing:
		legs = "▼▼▼"
	case !p.OnGround:
		legs = "╯ ╰"
	case (snap.Elapsed/(150*time.Millisecond))%2 == 0 && p.Vel.X != 0:
		legs = " ╱╲"
	default:
		legs = "╱ ╲"
	}

	for dy, row := range []string{head, body, legs} {
		for dx, r := range []rune(row) {
			if r != ' ' {
				dst.SetColor(sx+dx, sy+dy, r, color)
			}
		}
	}
}

func drawWalker(dst *core.Screen, sx, sy int, e EntitySnapshot) {
	top := "◢█◣"
	legs := "╯ ╰"
	if (e.Age/(200*time.Millisecond))%2 == 1 {
		legs = " ╳ "
	}
	dst.DrawTextColor(sx, sy, top, core.ColorOrange)
	dst.DrawTextColor(sx, sy+1, legs, core.ColorOrange)
}

func drawBat(dst *core.Screen, sx, sy int, e EntitySnapshot) {
	wings := "⋀o⋀"
	if (e.Age/(150*time.Millisecond))%2 == 1 {
		wings = "⋁o⋁"
	}
	color := core.ColorMagenta
	if e.Swooping {
		color = core.ColorBrightMagenta
	}
	dst.DrawTextColor(sx, sy, wings, color)
}

func drawTurret(dst *core.Screen, sx, sy int, e EntitySnapshot) {
	top := "◀■■"
	if e.Facing == FacingRight {
		top = "■■▶"
	}
	color := core.ColorOrange
	if e.Ready {
		color = core.ColorRed
	}
	dst.DrawTextColor(sx, sy, top, color)
	dst.DrawTextColor(sx, sy+1, "▀▀▀", core.ColorGray)
}

func drawPowerUp(dst *core.Screen, sx, sy int, e EntitySnapshot) {
	var r rune
	var color core.Color
	switch e.PowerUp {
	case PowerShield:
		r, color = '◆', core.ColorBrightCyan
	case PowerSpeedBoost:
		r, color = '»', core.ColorBrightGreen
	case PowerScoreMultiplier:
		r, color = '$', core.ColorBrightYellow
	default:
		r, color = '◷', core.ColorBrightBlue
	}
	// Bob up and down
	if (e.Age/(400*time.Millisecond))%2 == 1 {
		sy--
	}
	dst.SetColor(sx, sy, r, color)
}

// drawHUD draws score, HP, wave and effect timers.
func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	score := fmt.Sprintf(" Score: %d ", snap.Score)
	if snap.Multiplier > 1 {
		score += fmt.Sprintf("x%d ", snap.Multiplier)
	}
	dst.DrawTextColor(1, 0, score, core.ColorBrightWhite)

	filled := 0
	if snap.Player.MaxHP > 0 {
		filled = int(math.Ceil(float64(snap.Player.HP) / float64(snap.Player.MaxHP) * hpBarWidth))
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", hpBarWidth-filled)
	hpColor := core.ColorGreen
	if filled <= hpBarWidth/3 {
		hpColor = core.ColorRed
	}
	hp := fmt.Sprintf("HP %s %d", bar, snap.Player.HP)
	dst.DrawTextColor((dst.Width()-len([]rune(hp)))/2, 0, hp, hpColor)

	wave := fmt.Sprintf(" Wave %d ", snap.Difficulty.Wave)
	dst.DrawTextColor(dst.Width()-len(wave)-1, 0, wave, core.ColorBrightYellow)

	if len(snap.Effects) > 0 {
		parts := make([]string, 0, len(snap.Effects))
		for _, e := range snap.Effects {
			parts = append(parts, fmt.Sprintf("%s %.1fs", e.Name, e.Remaining.Seconds()))
		}
		dst.DrawTextColor(1, 1, " "+strings.Join(parts, "  ")+" ", core.ColorCyan)
	}

	now := snap.Elapsed
	if g.hud.banner != "" && now < g.hud.bannerUntil {
		dst.DrawTextColor((dst.Width()-len(g.hud.banner))/2, 3, g.hud.banner, core.ColorBrightYellow)
	}
	if g.hud.label != "" && now < g.hud.labelUntil {
		x := int(math.Floor(snap.Player.Pos.X-snap.CameraX)) - 1
		y := int(math.Floor(snap.Player.Pos.Y)) - 2
		dst.DrawTextColor(max(x, 0), max(y, 2), g.hud.label, core.ColorBrightCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))

	// Calculate box dimensions
	boxW := max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}
