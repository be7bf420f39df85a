package runner

import (
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
	"github.com/vovakirdan/silhouette-runner/internal/registry"
)

// EntitySnapshot is a read-only view of one entity for the renderer.
type EntitySnapshot struct {
	ID       entity.ID
	Kind     Kind
	PowerUp  PowerUpKind // Valid when Kind == KindPowerUp
	Pos      core.Vec2
	W, H     float64
	Facing   Facing
	Age      time.Duration
	Swooping bool
	Ready    bool // Turret can fire
}

// PlayerSnapshot is a read-only view of the player.
type PlayerSnapshot struct {
	Pos          core.Vec2
	Vel          core.Vec2
	W, H         float64
	Facing       Facing
	State        PlayerState
	HP, MaxHP    int
	OnGround     bool
	Dashing      bool
	Invulnerable bool
	Boosted      bool
	Hurt         bool
}

// Snapshot is a complete read-only view of the world at the current tick.
type Snapshot struct {
	Player     PlayerSnapshot
	Entities   []EntitySnapshot // Spawn order
	CameraX    float64
	GroundY    float64
	Score      int
	Multiplier int
	Difficulty DifficultyState
	Elapsed    time.Duration
	SimTime    time.Duration
	TimeScale  float64
	Effects    []ActiveEffect
	GameOver   bool
	Paused     bool
}

// Stats summarises a run for persistence.
type Stats struct {
	Score             int
	Wave              int
	Elapsed           time.Duration
	EnemiesDefeated   int
	PowerUpsCollected int
	DamageTaken       int
	Seed              int64
}

// Snapshot returns a view of the current world.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	if w == nil {
		return Snapshot{}
	}
	p := &w.player
	sim := w.clock.Sim()

	snap := Snapshot{
		Player: PlayerSnapshot{
			Pos:          p.Pos,
			Vel:          p.Vel,
			W:            p.W,
			H:            p.H,
			Facing:       p.Facing,
			State:        p.State(),
			HP:           p.HP,
			MaxHP:        p.MaxHP,
			OnGround:     p.OnGround,
			Dashing:      p.Dashing,
			Invulnerable: p.Invulnerable,
			Boosted:      p.Boosted(),
			Hurt:         p.Hurt,
		},
		Entities:   make([]EntitySnapshot, 0, w.entities.Len()),
		CameraX:    w.camera.X,
		GroundY:    w.groundY,
		Score:      w.score.Score(),
		Multiplier: w.score.Multiplier(),
		Difficulty: w.spawner.State(),
		Elapsed:    w.clock.Now(),
		SimTime:    sim,
		TimeScale:  w.clock.Scale(),
		Effects:    w.activeEffects(),
		GameOver:   w.gameOver,
		Paused:     w.paused,
	}

	w.entities.Each(func(id entity.ID, e *Entity) {
		if !e.Active {
			return
		}
		es := EntitySnapshot{
			ID:     id,
			Kind:   e.Kind,
			Pos:    e.Pos,
			W:      e.W,
			H:      e.H,
			Facing: e.Facing,
			Age:    e.Age(sim),
		}
		switch {
		case e.PowerUp != nil:
			es.PowerUp = e.PowerUp.Kind
		case e.Bat != nil:
			es.Swooping = e.Bat.Swooping
		case e.Turret != nil:
			es.Ready = e.Turret.Ready
		}
		snap.Entities = append(snap.Entities, es)
	})

	return snap
}

// RunStats reports the run for the history table.
func (g *Game) RunStats() registry.RunStats {
	return registry.RunStats(g.Stats())
}
