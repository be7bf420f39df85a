package runner

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
)

var inputActions = []core.Action{
	core.ActionNone,
	core.ActionJump,
	core.ActionDash,
	core.ActionPause,
}

// TestWorldInvariantsProperty drives the game with random input and checks
// the invariants that must hold after every tick.
func TestWorldInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := config.DefaultRunnerConfig()
		cfg.Difficulty.WaveInterval = 2 * time.Second
		cfg.Spawning.PowerUpInterval = time.Second

		rt := testRuntime()
		rt.Seed = rapid.Int64().Draw(t, "seed")
		g := NewWithConfig(cfg)
		g.Reset(rt)

		lastScore := 0
		gameOvers := 0
		segments := rapid.IntRange(1, 20).Draw(t, "segments")
		for range segments {
			in := core.NewInputFrame()
			in.Set(rapid.SampledFrom(inputActions).Draw(t, "action"))
			in.SetAxis(float64(rapid.IntRange(-1, 1).Draw(t, "axis")))
			hold := rapid.IntRange(1, 100).Draw(t, "hold")

			for range hold {
				res := g.Step(in)
				// Actions are edge-triggered by the caller; hold only the axis.
				in.Clear()
				gameOvers += countGameOver(res.Events)

				st := res.State
				if st.HP < 0 || st.HP > st.MaxHP {
					t.Fatalf("HP = %d outside [0, %d]", st.HP, st.MaxHP)
				}
				if st.Score < lastScore {
					t.Fatalf("score decreased from %d to %d", lastScore, st.Score)
				}
				if st.GameOver != (st.HP == 0) {
					t.Fatalf("GameOver = %v with HP %d", st.GameOver, st.HP)
				}
				lastScore = st.Score

				snap := g.Snapshot()
				if !snap.Player.Pos.Finite() || !snap.Player.Vel.Finite() {
					t.Fatalf("player state not finite: %+v", snap.Player)
				}
				if snap.Player.Pos.Y+snap.Player.H > snap.GroundY+1e-9 {
					t.Fatalf("player below ground: %v", snap.Player.Pos)
				}
				for _, e := range snap.Entities {
					if !e.Pos.Finite() {
						t.Fatalf("entity %v position not finite", e.ID)
					}
				}
			}
		}
		if gameOvers > 1 {
			t.Fatalf("%d game over events, expected at most 1", gameOvers)
		}
	})
}

// TestAutopilotSoak runs long headless games and checks they stay sane.
func TestAutopilotSoak(t *testing.T) {
	if testing.Short() {
		t.Skip("soak test")
	}
	for seed := int64(1); seed <= 5; seed++ {
		rt := testRuntime()
		rt.Seed = seed
		g := NewWithConfig(config.DefaultRunnerConfig())
		g.Reset(rt)
		bot := NewAutopilot()

		gameOvers := 0
		for range 20000 {
			res := g.Step(bot.Next(g.Snapshot()))
			gameOvers += countGameOver(res.Events)
			if res.State.GameOver {
				break
			}
		}
		if gameOvers > 1 {
			t.Errorf("seed %d: %d game over events", seed, gameOvers)
		}
		// Projectiles and spike clusters may overshoot the spawn cap slightly.
		if n := g.world.entities.Len(); n > 2*g.world.cfg.Spawning.MaxEntities {
			t.Errorf("seed %d: %d entities alive, cap %d", seed, n, g.world.cfg.Spawning.MaxEntities)
		}
		if g.Stats().Elapsed <= 0 {
			t.Errorf("seed %d: no time elapsed", seed)
		}
	}
}
