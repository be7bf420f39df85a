package runner

import "github.com/vovakirdan/silhouette-runner/internal/core"

// damageFor returns the touch damage of an enemy kind.
func (w *World) damageFor(k Kind) int {
	e := w.cfg.Enemies
	switch k {
	case KindWalker:
		return e.Walker.Damage
	case KindBat:
		return e.Bat.Damage
	case KindTurret:
		return e.Turret.Damage
	case KindSpike:
		return e.Spike.Damage
	default:
		return 0
	}
}

// resolveCollisions tests the player against every live entity once, in
// spawn order. Entities destroyed earlier in the pass are skipped. Resolution
// stops as soon as the player's HP reaches zero.
func (w *World) resolveCollisions() {
	pr := w.player.Rect()

	for _, id := range w.entities.IDs() {
		if w.player.HP == 0 {
			return
		}
		e, ok := w.entity(id)
		if !ok || !pr.Intersects(e.Rect()) {
			continue
		}

		switch {
		case e.Kind == KindPowerUp:
			w.collectPowerUp(e)

		case e.Kind == KindProjectile:
			if w.player.Invulnerable {
				continue
			}
			w.hitPlayer(e.Projectile.Damage)
			w.destroy(id)

		case e.Kind.IsEnemy():
			if w.player.Invulnerable {
				continue
			}
			if !e.Kind.IsHazard() && w.player.Attacking() {
				w.defeat(e)
				continue
			}
			w.hitPlayer(w.damageFor(e.Kind))
		}
	}
}

// defeat destroys an enemy hit by a dash attack.
func (w *World) defeat(e *Entity) {
	w.destroy(e.ID)
	w.score.Defeated(w.cfg.Scoring.DefeatBonus)
	w.cue(core.CueEnemyDefeated)
}
