package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
	"github.com/vovakirdan/silhouette-runner/internal/timing"
)

// effectKind names timed effects and actions on the unscaled timeline.
type effectKind int

const (
	effectShield effectKind = iota
	effectSpeedBoost
	effectScoreMultiplier
	effectSlowMotion
	effectInvulnerable // post-hit window
	effectHurt
	effectDash
)

// timerKind names actions on the sim (slow-motion scaled) timeline.
type timerKind int

const (
	timerTurretReady timerKind = iota
	timerSwoopEnd
)

// Camera is the horizontal viewport into the world.
type Camera struct {
	X    float64
	W, H int
}

// Follow scrolls right to keep x at least lead cells from the left edge.
// The camera never scrolls back.
func (c *Camera) Follow(x, lead float64) {
	c.X = max(c.X, x-lead)
}

// Right returns the world x of the right screen edge.
func (c *Camera) Right() float64 {
	return c.X + float64(c.W)
}

// World is the complete simulation state of one run. Every system receives
// it explicitly; nothing in the package keeps game state in globals.
type World struct {
	cfg        config.RunnerConfig
	rng        *rand.Rand
	clock      *timing.Clock
	effects    *timing.Manager[effectKind] // unscaled game time
	timers     *timing.Manager[timerKind]  // sim time
	entities   *entity.Registry[*Entity]
	difficulty *config.DifficultyManager
	spawner    *Spawner
	score      *ScoreTracker

	player  Player
	camera  Camera
	groundY float64

	events   []core.Event
	gameOver bool
	paused   bool
}

// newWorld builds a fresh run from cfg.
func newWorld(cfg config.RunnerConfig, runtime core.RuntimeConfig) *World {
	w := &World{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(runtime.Seed)),
		clock:      timing.NewClock(runtime.TickDuration()),
		effects:    timing.NewManager[effectKind](),
		timers:     timing.NewManager[timerKind](),
		entities:   entity.NewRegistry[*Entity](),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		score:      NewScoreTracker(cfg.Scoring),
		camera:     Camera{W: runtime.ScreenW, H: runtime.ScreenH},
		groundY:    float64(runtime.ScreenH - cfg.World.GroundOffset),
	}

	w.player = Player{
		ID:              w.entities.Reserve(),
		W:               float64(cfg.Player.Width),
		H:               float64(cfg.Player.Height),
		Facing:          FacingRight,
		HP:              cfg.Player.MaxHP,
		MaxHP:           cfg.Player.MaxHP,
		OnGround:        true,
		CanDash:         true,
		SpeedMultiplier: 1,
	}
	w.player.Pos = core.V(cfg.Player.StartX, w.groundY-w.player.H)
	w.player.lastPos = w.player.Pos

	w.spawner = NewSpawner(&w.cfg, w.difficulty)
	w.spawner.Reset(w)
	return w
}

// emit queues an outbound event for this tick.
func (w *World) emit(e core.Event) {
	w.events = append(w.events, e)
}

// cue queues an audio cue.
func (w *World) cue(c core.Cue) {
	w.emit(core.AudioCue{Cue: c})
}

// drainEvents returns and clears the queued events.
func (w *World) drainEvents() []core.Event {
	events := w.events
	w.events = nil
	return events
}

// spawn stores a new entity built by init and returns it.
func (w *World) spawn(kind Kind, pos core.Vec2, width, height int, init func(e *Entity)) *Entity {
	var created *Entity
	w.entities.Spawn(func(id entity.ID) *Entity {
		e := &Entity{
			ID:     id,
			Kind:   kind,
			Pos:    pos,
			W:      float64(width),
			H:      float64(height),
			Active: true,
			Facing: FacingLeft,
			Born:   w.clock.Sim(),
		}
		if init != nil {
			init(e)
		}
		e.sanitize()
		created = e
		return e
	})
	return created
}

// destroy removes an entity and cancels every timer and effect bound to it.
// Destroying an already destroyed entity is a no-op.
func (w *World) destroy(id entity.ID) {
	e, ok := w.entities.Get(id)
	if !ok {
		return
	}
	e.Active = false
	w.entities.Destroy(id)
	w.timers.CancelTarget(id)
	w.effects.CancelTarget(id)
}

// entity returns a live entity.
func (w *World) entity(id entity.ID) (*Entity, bool) {
	e, ok := w.entities.Get(id)
	if !ok || !e.Active {
		return nil, false
	}
	return e, true
}

// syncPlayer derives player flags and global modifiers from active effects.
func (w *World) syncPlayer() {
	p := &w.player
	p.Dashing = w.effects.Active(effectDash, p.ID)
	p.Hurt = w.effects.Active(effectHurt, p.ID)
	p.Invulnerable = w.effects.Active(effectShield, p.ID) || w.effects.Active(effectInvulnerable, p.ID)

	p.SpeedMultiplier = 1
	if eff, ok := w.effects.Lookup(effectSpeedBoost, p.ID); ok {
		p.SpeedMultiplier = 1 + eff.Magnitude
	}

	w.score.SetMultiplier(1)
	if eff, ok := w.effects.Lookup(effectScoreMultiplier, p.ID); ok {
		w.score.SetMultiplier(int(eff.Magnitude))
	}

	if eff, ok := w.effects.Lookup(effectSlowMotion, p.ID); ok {
		w.clock.SetScale(eff.Magnitude)
	} else {
		w.clock.ResetScale()
	}
}

// processTimers fires due actions: the unscaled schedule first, then the
// sim schedule, each in timestamp order.
func (w *World) processTimers() {
	for _, f := range w.effects.Advance(w.clock.Now()) {
		if !f.Expired {
			continue
		}
		if name, ok := effectName(f.Kind); ok {
			w.emit(core.EffectEnded{Name: name})
		}
	}
	w.syncPlayer()

	for _, f := range w.timers.Advance(w.clock.Sim()) {
		e, ok := w.entity(f.Owner)
		if !ok {
			continue
		}
		switch f.Kind {
		case timerTurretReady:
			if e.Turret != nil {
				e.Turret.Ready = true
				e.Turret.Timer = 0
			}
		case timerSwoopEnd:
			if e.Bat != nil {
				e.Bat.Swooping = false
				e.Bat.SwoopVel = core.Vec2{}
			}
		}
	}
}

// Elapsed returns unscaled game time since the run started.
func (w *World) Elapsed() time.Duration {
	return w.clock.Now()
}
