package runner

import (
	"math"

	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
)

// behavior updates one entity for a tick of sim time (seconds).
type behavior func(w *World, e *Entity, dt float64)

// behaviors is the dispatch table keyed by entity kind.
var behaviors = map[Kind]behavior{
	KindWalker:     updateWalker,
	KindBat:        updateBat,
	KindTurret:     updateTurret,
	KindSpike:      func(*World, *Entity, float64) {},
	KindProjectile: updateProjectile,
	KindPowerUp:    updatePowerUp,
}

// updateEntities runs every entity's behavior, then prunes.
func (w *World) updateEntities(dt float64) {
	w.entities.Each(func(_ entity.ID, e *Entity) {
		if !e.Active {
			return
		}
		if b, ok := behaviors[e.Kind]; ok {
			b(w, e, dt)
		}
	})
	w.prune()
}

func updateWalker(w *World, e *Entity, dt float64) {
	s := e.Walker
	speed := s.Speed * w.spawner.EnemySpeed()

	// Turn back toward the origin once past the patrol distance.
	if off := e.Pos.X - s.OriginX; math.Abs(off) > s.Patrol {
		s.Dir = -core.Sign(off)
	}
	// Velocity is re-applied every tick so wave speed-ups take effect at once.
	e.Vel.X = s.Dir * speed
	e.Facing = facingFrom(e.Vel.X, e.Facing)
	e.integrate(dt)
}

func updateBat(w *World, e *Entity, dt float64) {
	s := e.Bat
	cfg := w.cfg.Enemies.Bat
	scale := w.spawner.EnemySpeed()
	sim := w.clock.Sim()

	if !s.Swooping && !s.SwoopUsed && cfg.SwoopEnabled &&
		core.Dist(e.Center(), w.player.Center()) <= cfg.SwoopRadius {
		dir := w.player.Center().Sub(e.Center()).Normalize()
		s.SwoopVel = dir.Scale(s.Speed * cfg.SwoopSpeedFactor * scale)
		s.Swooping = true
		s.SwoopUsed = true
		w.timers.Schedule(e.ID, timerSwoopEnd, sim+cfg.SwoopDuration)
	}

	if s.Swooping {
		e.Vel = s.SwoopVel
		e.integrate(dt)
		// Never dive into the ground.
		if e.Pos.Y+e.H > w.groundY {
			e.Pos.Y = w.groundY - e.H
		}
	} else {
		age := e.Age(sim).Seconds()
		period := cfg.Period.Seconds()
		targetY := s.BaseY + cfg.Amplitude*math.Sin(2*math.Pi*age/period+s.Phase)

		e.Vel = core.V(-s.Speed*scale, 0)
		e.integrate(dt)
		// Return to the float pattern at swoop speed after a swoop.
		e.Pos.Y = core.Approach(e.Pos.Y, targetY, s.Speed*max(cfg.SwoopSpeedFactor, 1)*scale*dt)
	}
	e.Facing = facingFrom(e.Vel.X, e.Facing)
	e.sanitize()
}

func updateTurret(w *World, e *Entity, dt float64) {
	s := e.Turret
	target := w.player.Center()
	origin := e.Center()
	e.Facing = facingFrom(target.X-origin.X, e.Facing)

	if !s.Ready || core.Dist(origin, target) > s.Range {
		return
	}

	cfg := w.cfg.Enemies.Projectile
	speed := cfg.Speed * w.spawner.ProjectileSpeed()
	vel := target.Sub(origin).Normalize().Scale(speed)
	sim := w.clock.Sim()

	w.spawn(KindProjectile, origin.Sub(core.V(0.5, 0.5)), 1, 1, func(p *Entity) {
		p.Vel = vel
		p.Facing = facingFrom(vel.X, FacingLeft)
		p.Projectile = &ProjectileState{
			Owner:   e.ID,
			Expires: sim + cfg.TTL,
			Damage:  cfg.Damage,
		}
	})

	s.Ready = false
	s.LastFired = sim
	s.Timer = w.timers.Schedule(e.ID, timerTurretReady, sim+s.Cooldown)
	w.cue(core.CueTurretFire)
}

func updateProjectile(w *World, e *Entity, dt float64) {
	if w.clock.Sim() >= e.Projectile.Expires {
		w.destroy(e.ID)
		return
	}
	e.integrate(dt)
}

func updatePowerUp(w *World, e *Entity, _ float64) {
	if exp := e.PowerUp.Expires; exp > 0 && w.clock.Sim() >= exp {
		w.destroy(e.ID)
	}
}

// prune removes enemies that scrolled behind the camera and anything that
// left the play bounds. Spikes are only reclaimed by the bounds check.
func (w *World) prune() {
	margin := w.cfg.World.PruneMargin
	screenW := float64(w.camera.W)
	screenH := float64(w.camera.H)

	w.entities.Each(func(id entity.ID, e *Entity) {
		r := e.Rect()
		switch {
		case e.Kind.IsEnemy() && !e.Kind.IsHazard() && r.Right() < w.camera.X-margin:
			w.destroy(id)
		case r.Right() < w.camera.X-screenW,
			r.X > w.camera.Right()+2*screenW,
			r.Y > w.groundY+screenH,
			r.Bottom() < -screenH:
			w.destroy(id)
		}
	})
}
