package runner

import (
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

// effectFor maps a pickup to the timed effect it applies, with its duration
// and magnitude.
func (w *World) effectFor(kind PowerUpKind) (effectKind, time.Duration, float64) {
	cfg := w.cfg.PowerUps
	switch kind {
	case PowerShield:
		return effectShield, cfg.ShieldDuration, 1
	case PowerSpeedBoost:
		return effectSpeedBoost, cfg.SpeedBoostDuration, cfg.SpeedBoostDelta
	case PowerScoreMultiplier:
		return effectScoreMultiplier, cfg.ScoreMultiplierDuration, float64(cfg.ScoreMultiplier)
	default:
		return effectSlowMotion, cfg.SlowMotionDuration, cfg.SlowMotionScale
	}
}

// effectName returns the HUD label of a pickup effect. Internal windows
// (hurt, dash, hit invulnerability) have no label.
func effectName(kind effectKind) (string, bool) {
	switch kind {
	case effectShield:
		return PowerShield.String(), true
	case effectSpeedBoost:
		return PowerSpeedBoost.String(), true
	case effectScoreMultiplier:
		return PowerScoreMultiplier.String(), true
	case effectSlowMotion:
		return PowerSlowMotion.String(), true
	default:
		return "", false
	}
}

// applyPowerUp starts the pickup's effect on the player, or resets its
// expiry if it is already active. Magnitudes never stack.
func (w *World) applyPowerUp(kind PowerUpKind) {
	eff, duration, magnitude := w.effectFor(kind)
	refreshed := w.effects.Apply(eff, w.player.ID, w.clock.Now(), duration, magnitude)
	w.syncPlayer()

	name, _ := effectName(eff)
	w.emit(core.EffectStarted{Name: name, Duration: duration, Refresh: refreshed})
}

// collectPowerUp resolves a player/pickup overlap.
func (w *World) collectPowerUp(e *Entity) {
	if e.PowerUp == nil {
		return
	}
	w.applyPowerUp(e.PowerUp.Kind)
	w.destroy(e.ID)
	w.score.Collected(w.cfg.Scoring.CollectBonus)
	w.cue(core.CueCollect)
}

// ActiveEffect is a pickup effect as shown in the HUD.
type ActiveEffect struct {
	Name      string
	Remaining time.Duration
}

// activeEffects lists pickup effects on the player, soonest expiry first.
func (w *World) activeEffects() []ActiveEffect {
	var out []ActiveEffect
	now := w.clock.Now()
	for _, eff := range w.effects.Effects(w.player.ID) {
		name, ok := effectName(eff.Kind)
		if !ok {
			continue
		}
		out = append(out, ActiveEffect{Name: name, Remaining: max(eff.Expiry()-now, 0)})
	}
	return out
}
