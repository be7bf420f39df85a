package runner

import (
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
	"github.com/vovakirdan/silhouette-runner/internal/timing"
)

// Kind tags the variant of an Entity.
type Kind int

const (
	KindWalker Kind = iota
	KindBat
	KindTurret
	KindSpike
	KindProjectile
	KindPowerUp
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindWalker:
		return "walker"
	case KindBat:
		return "bat"
	case KindTurret:
		return "turret"
	case KindSpike:
		return "spike"
	case KindProjectile:
		return "projectile"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether touching the entity can hurt the player.
func (k Kind) IsEnemy() bool {
	return k == KindWalker || k == KindBat || k == KindTurret || k == KindSpike
}

// IsHazard reports whether the entity always damages and cannot be defeated.
func (k Kind) IsHazard() bool {
	return k == KindSpike
}

// PowerUpKind identifies a pickup's effect.
type PowerUpKind int

const (
	PowerShield PowerUpKind = iota
	PowerSpeedBoost
	PowerScoreMultiplier
	PowerSlowMotion
)

// PowerUpKinds lists every pickup in spawn-table order.
var PowerUpKinds = []PowerUpKind{PowerShield, PowerSpeedBoost, PowerScoreMultiplier, PowerSlowMotion}

// String returns the effect name shown in the HUD.
func (p PowerUpKind) String() string {
	switch p {
	case PowerShield:
		return "shield"
	case PowerSpeedBoost:
		return "speed"
	case PowerScoreMultiplier:
		return "x2"
	case PowerSlowMotion:
		return "slow-mo"
	default:
		return "unknown"
	}
}

// Facing is a horizontal direction.
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Sign returns -1 or 1.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func facingFrom(dx float64, fallback Facing) Facing {
	switch {
	case dx > 0:
		return FacingRight
	case dx < 0:
		return FacingLeft
	default:
		return fallback
	}
}

// Entity is the common record for every non-player object. Exactly one of
// the payload pointers is set, matching Kind.
type Entity struct {
	ID     entity.ID
	Kind   Kind
	Pos    core.Vec2 // Top-left corner, world cells
	Vel    core.Vec2 // Cells per second
	W, H   float64
	Active bool
	Facing Facing
	Born   time.Duration // Sim time at spawn

	Walker     *WalkerState
	Bat        *BatState
	Turret     *TurretState
	Projectile *ProjectileState
	PowerUp    *PowerUpState

	lastPos core.Vec2 // last finite position
}

// WalkerState is the payload of a ground patroller.
type WalkerState struct {
	OriginX float64
	Dir     float64 // -1 or 1
	Patrol  float64
	Speed   float64
}

// BatState is the payload of a flying enemy.
type BatState struct {
	BaseY     float64
	Speed     float64
	Phase     float64 // Radians, offsets the float pattern between bats
	Swooping  bool
	SwoopUsed bool
	SwoopVel  core.Vec2
}

// TurretState is the payload of a stationary shooter.
type TurretState struct {
	Range     float64
	Cooldown  time.Duration
	LastFired time.Duration
	Ready     bool
	Timer     timing.Token // pending ready timer, 0 when ready
}

// ProjectileState is the payload of a turret shot.
type ProjectileState struct {
	Owner   entity.ID
	Expires time.Duration // Sim time
	Damage  int
}

// PowerUpState is the payload of a pickup.
type PowerUpState struct {
	Kind    PowerUpKind
	Expires time.Duration // Sim time, 0 = never
}

// Rect returns the collision box.
func (e *Entity) Rect() core.RectF {
	return core.NewRectF(e.Pos, e.W, e.H)
}

// Center returns the centre of the collision box.
func (e *Entity) Center() core.Vec2 {
	return e.Rect().Center()
}

// Age returns how long the entity has existed in sim time.
func (e *Entity) Age(sim time.Duration) time.Duration {
	return max(sim-e.Born, 0)
}

// integrate moves the entity by its velocity and repairs non-finite state.
func (e *Entity) integrate(dt float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	e.sanitize()
}

// sanitize restores the last finite position if the current one is not.
func (e *Entity) sanitize() {
	if !e.Vel.Finite() {
		e.Vel = core.Vec2{}
	}
	if !e.Pos.Finite() {
		e.Pos = e.lastPos
		return
	}
	e.lastPos = e.Pos
}
