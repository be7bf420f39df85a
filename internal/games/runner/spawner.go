package runner

import (
	"math"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/entity"
	"github.com/vovakirdan/silhouette-runner/internal/timing"
)

// spawnKind names the spawner's scheduled actions.
type spawnKind int

const (
	spawnEnemy spawnKind = iota
	spawnPowerUp
	spawnWave
)

// DifficultyState is the current escalation level.
type DifficultyState struct {
	Wave            int
	SpawnInterval   time.Duration
	ProjectileSpeed float64 // Multiplier on projectile speed
	EnemySpeed      float64 // Multiplier on enemy speed
}

// Spawner places enemies and power-ups ahead of the player and escalates
// difficulty in waves. All of its schedules run on sim time.
type Spawner struct {
	cfg        *config.RunnerConfig
	difficulty *config.DifficultyManager
	schedule   *timing.Manager[spawnKind]
	enemyTimer timing.Token
	state      DifficultyState
}

// NewSpawner creates a spawner for cfg.
func NewSpawner(cfg *config.RunnerConfig, diff *config.DifficultyManager) *Spawner {
	return &Spawner{
		cfg:        cfg,
		difficulty: diff,
		schedule:   timing.NewManager[spawnKind](),
	}
}

// Reset restarts the schedules and lays out the initial level.
func (s *Spawner) Reset(w *World) {
	s.schedule.Reset()
	s.setWave(s.difficulty.InitialWave())

	now := w.clock.Sim()
	s.enemyTimer = s.schedule.Every(entity.None, spawnEnemy, now+s.state.SpawnInterval, s.state.SpawnInterval)
	s.schedule.Every(entity.None, spawnPowerUp, now+s.cfg.Spawning.PowerUpInterval, s.cfg.Spawning.PowerUpInterval)
	if s.difficulty.IsEnabled() {
		interval := s.difficulty.WaveInterval()
		s.schedule.Every(entity.None, spawnWave, now+interval, interval)
	}

	s.initialLevel(w)
}

// State returns the current difficulty state.
func (s *Spawner) State() DifficultyState { return s.state }

// Wave returns the current wave.
func (s *Spawner) Wave() int { return s.state.Wave }

// EnemySpeed returns the enemy speed multiplier.
func (s *Spawner) EnemySpeed() float64 { return s.state.EnemySpeed }

// ProjectileSpeed returns the projectile speed multiplier.
func (s *Spawner) ProjectileSpeed() float64 { return s.state.ProjectileSpeed }

func (s *Spawner) setWave(wave int) {
	s.state = DifficultyState{
		Wave:            wave,
		SpawnInterval:   s.difficulty.SpawnInterval(wave),
		ProjectileSpeed: s.difficulty.ProjectileSpeedScale(wave),
		EnemySpeed:      s.difficulty.EnemySpeedScale(wave),
	}
}

// Update fires due spawner actions in timestamp order.
func (s *Spawner) Update(w *World) {
	for _, f := range s.schedule.Advance(w.clock.Sim()) {
		switch f.Kind {
		case spawnEnemy:
			s.spawnEnemy(w)
		case spawnPowerUp:
			s.spawnPowerUp(w)
		case spawnWave:
			s.nextWave(w, f.At)
		}
	}
}

// nextWave escalates difficulty and restarts the enemy schedule with the
// new interval.
func (s *Spawner) nextWave(w *World, at time.Duration) {
	s.setWave(s.state.Wave + 1)
	s.schedule.Cancel(s.enemyTimer)
	s.enemyTimer = s.schedule.Every(entity.None, spawnEnemy, at+s.state.SpawnInterval, s.state.SpawnInterval)

	w.emit(core.WaveChanged{Wave: s.state.Wave})
	logger.Debug("wave changed", "wave", s.state.Wave, "spawn_interval", s.state.SpawnInterval)
}

// full reports whether the entity cap has been reached.
func (s *Spawner) full(w *World) bool {
	limit := s.cfg.Spawning.MaxEntities
	return limit > 0 && w.entities.Len() >= limit
}

// spawnX picks a position ahead of the player that is outside the view.
func (s *Spawner) spawnX(w *World, lo, hi float64) float64 {
	x := w.player.Pos.X + randRange(w, lo, hi)
	return max(x, w.camera.Right()+1)
}

// pickEnemy chooses a kind by configured weight.
func (s *Spawner) pickEnemy(w *World) Kind {
	sp := s.cfg.Spawning
	weights := []struct {
		kind   Kind
		weight int
	}{
		{KindWalker, max(sp.WalkerWeight, 0)},
		{KindBat, max(sp.BatWeight, 0)},
		{KindTurret, max(sp.TurretWeight, 0)},
	}

	total := 0
	for _, wt := range weights {
		total += wt.weight
	}
	if total == 0 {
		return KindWalker
	}

	n := w.rng.Intn(total)
	for _, wt := range weights {
		if n < wt.weight {
			return wt.kind
		}
		n -= wt.weight
	}
	return KindWalker
}

func (s *Spawner) spawnEnemy(w *World) {
	if s.full(w) {
		return
	}
	sp := s.cfg.Spawning
	x := s.spawnX(w, sp.AheadMin, sp.AheadMax)

	var e *Entity
	switch s.pickEnemy(w) {
	case KindBat:
		e = s.placeBat(w, x)
	case KindTurret:
		e = s.placeTurret(w, x)
	default:
		e = s.placeWalker(w, x)
	}

	if w.rng.Float64() < sp.SpikeClusterChance {
		s.placeSpikeCluster(w, e.Rect().Right()+4, sp.SpikeClusterSize)
	}
}

func (s *Spawner) spawnPowerUp(w *World) {
	if s.full(w) {
		return
	}
	sp := s.cfg.Spawning
	x := s.spawnX(w, sp.PowerUpAheadMin, sp.PowerUpAheadMax)
	kind := PowerUpKinds[w.rng.Intn(len(PowerUpKinds))]
	s.placePowerUp(w, x, kind)
}

// initialLevel lays out the opening hazards ahead of the start position.
func (s *Spawner) initialLevel(w *World) {
	sp := s.cfg.Spawning
	start := w.player.Pos.X + w.player.W + 15
	span := float64(max(w.camera.W, 40)) * 2

	for range sp.InitialSpikes {
		s.placeSpike(w, start+randRange(w, 0, span))
	}
	for range sp.InitialWalkers {
		s.placeWalker(w, start+randRange(w, 0, span))
	}
	for range sp.InitialTurrets {
		s.placeTurret(w, start+span/2+randRange(w, 0, span/2))
	}
}

func (s *Spawner) placeWalker(w *World, x float64) *Entity {
	cfg := s.cfg.Enemies.Walker
	pos := core.V(x, w.groundY-float64(cfg.Height))
	return w.spawn(KindWalker, pos, cfg.Width, cfg.Height, func(e *Entity) {
		e.Walker = &WalkerState{OriginX: x, Dir: -1, Patrol: cfg.PatrolDistance, Speed: cfg.Speed}
		e.Vel = core.V(-cfg.Speed*s.state.EnemySpeed, 0)
	})
}

func (s *Spawner) placeBat(w *World, x float64) *Entity {
	cfg := s.cfg.Enemies.Bat
	baseY := w.groundY - float64(cfg.Height) - randRange(w, cfg.MinAltitude, cfg.MaxAltitude)
	phase := w.rng.Float64() * 2 * math.Pi
	pos := core.V(x, baseY+cfg.Amplitude*math.Sin(phase))
	return w.spawn(KindBat, pos, cfg.Width, cfg.Height, func(e *Entity) {
		e.Bat = &BatState{BaseY: baseY, Speed: cfg.Speed, Phase: phase}
	})
}

func (s *Spawner) placeTurret(w *World, x float64) *Entity {
	cfg := s.cfg.Enemies.Turret
	y := w.groundY - float64(cfg.Height) - randRange(w, cfg.MinAltitude, cfg.MaxAltitude)
	return w.spawn(KindTurret, core.V(x, math.Round(y)), cfg.Width, cfg.Height, func(e *Entity) {
		e.Turret = &TurretState{Range: cfg.Range, Cooldown: cfg.FireCooldown, Ready: true}
	})
}

func (s *Spawner) placeSpike(w *World, x float64) *Entity {
	cfg := s.cfg.Enemies.Spike
	return w.spawn(KindSpike, core.V(x, w.groundY-float64(cfg.Height)), cfg.Width, cfg.Height, nil)
}

// placeSpikeCluster lines up n spikes starting at x with a one-cell gap.
func (s *Spawner) placeSpikeCluster(w *World, x float64, n int) {
	step := float64(s.cfg.Enemies.Spike.Width + 1)
	for i := range n {
		s.placeSpike(w, x+float64(i)*step)
	}
}

func (s *Spawner) placePowerUp(w *World, x float64, kind PowerUpKind) *Entity {
	cfg := s.cfg
	y := w.groundY - 1 - cfg.Spawning.PowerUpAltitude
	var expires time.Duration
	if cfg.PowerUps.Lifetime > 0 {
		expires = w.clock.Sim() + cfg.PowerUps.Lifetime
	}
	return w.spawn(KindPowerUp, core.V(x, y), 1, 1, func(e *Entity) {
		e.PowerUp = &PowerUpState{Kind: kind, Expires: expires}
	})
}

// randRange returns a uniform value in [lo, hi).
func randRange(w *World, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + w.rng.Float64()*(hi-lo)
}
