// Package runner implements Silhouette Runner, a side-scrolling survival
// game. The player dodges or dash-attacks walkers, bats, turrets and spikes,
// collects timed power-ups and survives escalating waves.
//
// The package is a pure simulation: it consumes abstract input and fixed
// time steps and emits abstract events. It never touches a terminal, a
// clock, a file or a database.
package runner

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/registry"
)

// GameID is the registry identifier.
const GameID = "runner"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// logger receives debug output; discards unless SetLogger is called.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = "" // Use config default
		return
	}
	difficultyPreset = p
}

// SetLogger routes the game's debug logging.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Silhouette Runner game logic.
type Game struct {
	world   *World
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	fixed   bool // cfg supplied by NewWithConfig; Reset does not reload it
	preset  config.DifficultyPreset
	hud     hudState
}

// New creates a new game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithPreset creates a game that loads its configuration on Reset and
// applies the given preset instead of the one set by SetDifficultyPreset.
// Used by the SSH server, where every session picks its own difficulty.
func NewWithPreset(preset config.DifficultyPreset) *Game {
	return &Game{preset: preset}
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.RunnerConfig) *Game {
	return &Game{cfg: cfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Silhouette Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixed {
		// Load game config
		cfg, err := config.LoadRunner(configPath)
		if err != nil {
			logger.Warn("using default config", "err", err)
			cfg = config.DefaultRunnerConfig()
		}

		// Apply difficulty preset if set
		preset := g.preset
		if preset == "" {
			preset = difficultyPreset
		}
		if preset != "" {
			config.ApplyRunnerPreset(&cfg, preset)
		}
		g.cfg = cfg
	}

	g.world = newWorld(g.cfg, runtime)
	g.hud = hudState{}
}

// Step advances the game by one tick:
// input, clock, player, entities, collisions, timers, spawner, score,
// terminal check.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	w := g.world
	if w == nil {
		g.Reset(core.DefaultConfig())
		w = g.world
	}

	if w.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if w.paused {
		return core.StepResult{State: g.State()}
	}

	dt, simDt := w.clock.Advance()

	w.updatePlayer(in.Snapshot(), dt.Seconds())
	w.updateEntities(simDt.Seconds())
	w.resolveCollisions()

	if w.player.HP > 0 {
		w.processTimers()
		w.spawner.Update(w)
		w.score.Update(w.clock.Now())
	}

	if w.player.HP == 0 {
		w.gameOver = true
		w.score.Freeze()
		w.cue(core.CueGameOver)
		w.emit(core.GameOver{
			FinalScore: w.score.Score(),
			Wave:       w.spawner.Wave(),
			Elapsed:    w.clock.Now(),
		})
		logger.Debug("game over", "score", w.score.Score(), "wave", w.spawner.Wave(), "elapsed", w.clock.Now())
	}

	events := w.drainEvents()
	g.hud.observe(events, w.clock.Now())
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	w := g.world
	if w == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    w.score.Score(),
		GameOver: w.gameOver,
		Paused:   w.paused,
		HP:       w.player.HP,
		MaxHP:    w.player.MaxHP,
		Wave:     w.spawner.Wave(),
		Elapsed:  w.clock.Now(),
	}
}

// Stats returns run statistics for persistence.
func (g *Game) Stats() Stats {
	w := g.world
	if w == nil {
		return Stats{}
	}
	return Stats{
		Score:             w.score.Score(),
		Wave:              w.spawner.Wave(),
		Elapsed:           w.clock.Now(),
		EnemiesDefeated:   w.score.EnemiesDefeated,
		PowerUpsCollected: w.score.PowerUpsCollected,
		DamageTaken:       w.score.DamageTaken,
		Seed:              g.runtime.Seed,
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
