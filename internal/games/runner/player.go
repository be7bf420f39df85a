package runner

import (
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
)

// PlayerState is the movement state of the avatar. Invulnerability is an
// orthogonal flag, not a state.
type PlayerState int

const (
	StateGrounded PlayerState = iota
	StateAirborne
	StateDashing
	StateHurt
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAirborne:
		return "airborne"
	case StateDashing:
		return "dashing"
	case StateHurt:
		return "hurt"
	default:
		return "unknown"
	}
}

// Player is the single avatar of a run. It lives in the world struct, not
// the entity registry, but owns a registry ID so timed effects can bind to it.
type Player struct {
	ID     entity.ID
	Pos    core.Vec2 // Top-left corner
	Vel    core.Vec2
	W, H   float64
	Facing Facing

	HP    int
	MaxHP int

	OnGround bool
	CanDash  bool // Reset on landing; one dash per airtime

	// Derived from active timed effects each tick.
	Dashing         bool
	Hurt            bool
	Invulnerable    bool
	SpeedMultiplier float64

	lastPos core.Vec2
}

// State returns the current movement state.
func (p *Player) State() PlayerState {
	switch {
	case p.Hurt:
		return StateHurt
	case p.Dashing:
		return StateDashing
	case p.OnGround:
		return StateGrounded
	default:
		return StateAirborne
	}
}

// Rect returns the collision box.
func (p *Player) Rect() core.RectF {
	return core.NewRectF(p.Pos, p.W, p.H)
}

// Center returns the centre of the collision box.
func (p *Player) Center() core.Vec2 {
	return p.Rect().Center()
}

// Attacking reports the attack condition: airborne, moving down, dashing.
func (p *Player) Attacking() bool {
	return !p.OnGround && p.Vel.Y > 0 && p.Dashing
}

// Boosted reports whether a speed boost is active.
func (p *Player) Boosted() bool {
	return p.SpeedMultiplier > 1
}

// updatePlayer runs the player state machine for one tick of unscaled time.
func (w *World) updatePlayer(in core.Snapshot, dt float64) {
	p := &w.player
	cfg := w.cfg.Player

	if !p.Dashing && !p.Hurt {
		if in.MoveAxis != 0 {
			p.Vel.X = in.MoveAxis * cfg.MoveSpeed * p.SpeedMultiplier
			p.Facing = facingFrom(in.MoveAxis, p.Facing)
		} else {
			p.Vel.X = core.Approach(p.Vel.X, 0, cfg.Drag*dt)
		}

		switch {
		case in.JumpPressed && p.OnGround:
			p.Vel.Y = -cfg.JumpImpulse
			p.OnGround = false
			w.cue(core.CueJump)
		case in.DashPressed:
			w.tryDash()
		}
	} else if p.Hurt {
		p.Vel.X = core.Approach(p.Vel.X, 0, cfg.Drag*dt)
	}

	// Gravity
	p.Vel.Y += w.cfg.World.Gravity * dt
	if !p.Dashing && p.Vel.Y > w.cfg.World.MaxFallSpeed {
		p.Vel.Y = w.cfg.World.MaxFallSpeed
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	// Landing
	if p.Pos.Y+p.H >= w.groundY {
		p.Pos.Y = w.groundY - p.H
		if p.Vel.Y >= 0 {
			p.Vel.Y = 0
			if !p.OnGround {
				w.land()
			}
		}
	}

	// The camera never scrolls back, and neither can the player.
	if p.Pos.X < w.camera.X {
		p.Pos.X = w.camera.X
		if p.Vel.X < 0 {
			p.Vel.X = 0
		}
	}

	if !p.Vel.Finite() {
		p.Vel = core.Vec2{}
	}
	if !p.Pos.Finite() {
		p.Pos = p.lastPos
	}
	p.lastPos = p.Pos

	w.camera.Follow(p.Pos.X, w.cfg.World.CameraLead)
}

// tryDash starts a downward dive if the player is airborne, not already
// dashing and has not dashed this airtime. Otherwise it is a no-op.
func (w *World) tryDash() bool {
	p := &w.player
	if p.OnGround || p.Dashing || !p.CanDash {
		return false
	}
	cfg := w.cfg.Player
	p.Vel.X = p.Facing.Sign() * cfg.DashHorizontal
	p.Vel.Y = cfg.DashVertical
	p.CanDash = false
	w.effects.Apply(effectDash, p.ID, w.clock.Now(), cfg.DashDuration, 1)
	w.syncPlayer()
	w.cue(core.CueDash)
	return true
}

// land resets air state when the player touches the ground.
func (w *World) land() {
	p := &w.player
	p.OnGround = true
	p.CanDash = true
	if p.Dashing {
		w.effects.Remove(effectDash, p.ID)
		w.syncPlayer()
	}
}

// hitPlayer applies damage, knockback and the hurt/invulnerable windows.
// Callers check invulnerability first.
func (w *World) hitPlayer(damage int) {
	p := &w.player
	cfg := w.cfg.Player
	now := w.clock.Now()

	before := p.HP
	p.HP = core.Clamp(p.HP-max(damage, 0), 0, p.MaxHP)
	w.score.DamageTaken += before - p.HP

	p.Vel.X = -p.Facing.Sign() * cfg.KnockbackX
	p.Vel.Y = -cfg.KnockbackUp
	p.OnGround = false

	w.effects.Remove(effectDash, p.ID)
	w.effects.Apply(effectHurt, p.ID, now, cfg.HurtDuration, 1)
	w.effects.Apply(effectInvulnerable, p.ID, now, cfg.InvulnerableDuration, 1)
	w.syncPlayer()
	w.cue(core.CueHit)
}
