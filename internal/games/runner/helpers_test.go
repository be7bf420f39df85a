package runner

import (
	"testing"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
)

// tick is the step length of testRuntime.
const tick = 10 * time.Millisecond

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 100, Seed: 1}
}

// quietConfig is the default config with nothing spawning on its own.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawning.InitialSpikes = 0
	cfg.Spawning.InitialWalkers = 0
	cfg.Spawning.InitialTurrets = 0
	cfg.Spawning.PowerUpInterval = time.Hour
	cfg.Difficulty.BaseSpawnInterval = time.Hour
	cfg.Difficulty.MinSpawnInterval = time.Hour
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, cfg config.RunnerConfig) *Game {
	t.Helper()
	g := NewWithConfig(cfg)
	g.Reset(testRuntime())
	return g
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// run steps n ticks with the same input and collects every event.
func run(g *Game, n int, in core.InputFrame) []core.Event {
	var events []core.Event
	for range n {
		events = append(events, g.Step(in).Events...)
	}
	return events
}

func countCue(events []core.Event, c core.Cue) int {
	n := 0
	for _, ev := range events {
		if a, ok := ev.(core.AudioCue); ok && a.Cue == c {
			n++
		}
	}
	return n
}

func countGameOver(events []core.Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(core.GameOver); ok {
			n++
		}
	}
	return n
}

// liftPlayer puts the player in the air with its feet at the given y.
func liftPlayer(w *World, feetY float64) {
	w.player.Pos.Y = feetY - w.player.H
	w.player.lastPos = w.player.Pos
	w.player.OnGround = false
	w.player.CanDash = true
}

// spawnAtPlayer places an entity of the given kind overlapping the player.
func spawnAtPlayer(w *World, kind Kind, init func(e *Entity)) *Entity {
	return w.spawn(kind, w.player.Pos, 2, 2, init)
}

func spawnPowerUpAtPlayer(w *World, kind PowerUpKind) *Entity {
	return w.spawn(KindPowerUp, w.player.Center(), 1, 1, func(e *Entity) {
		e.PowerUp = &PowerUpState{Kind: kind}
	})
}
