package runner

import (
	"testing"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

func TestRecollectionResetsExpiryKeepsMagnitude(t *testing.T) {
	for _, kind := range PowerUpKinds {
		t.Run(kind.String(), func(t *testing.T) {
			g := newTestGame(t, quietConfig())
			w := g.world
			eff, duration, magnitude := w.effectFor(kind)

			spawnPowerUpAtPlayer(w, kind)
			g.Step(idle())
			first, ok := w.effects.Lookup(eff, w.player.ID)
			if !ok {
				t.Fatal("effect should be active after collection")
			}

			run(g, 100, idle())
			spawnPowerUpAtPlayer(w, kind)
			res := g.Step(idle())

			second, ok := w.effects.Lookup(eff, w.player.ID)
			if !ok {
				t.Fatal("effect should still be active")
			}
			if second.Magnitude != magnitude || second.Magnitude != first.Magnitude {
				t.Errorf("Magnitude = %f, expected %f", second.Magnitude, magnitude)
			}
			if second.Expiry() != w.clock.Now()+duration {
				t.Errorf("Expiry() = %v, expected %v", second.Expiry(), w.clock.Now()+duration)
			}

			var refreshed bool
			for _, ev := range res.Events {
				if s, ok := ev.(core.EffectStarted); ok && s.Refresh {
					refreshed = true
				}
			}
			if !refreshed {
				t.Error("expected an EffectStarted refresh event")
			}
		})
	}
}

func TestPowerUpEffects(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world

	w.applyPowerUp(PowerShield)
	if !w.player.Invulnerable {
		t.Error("shield should make the player invulnerable")
	}

	w.applyPowerUp(PowerSpeedBoost)
	if w.player.SpeedMultiplier != 1+cfg.PowerUps.SpeedBoostDelta {
		t.Errorf("SpeedMultiplier = %f", w.player.SpeedMultiplier)
	}

	w.applyPowerUp(PowerScoreMultiplier)
	if w.score.Multiplier() != cfg.PowerUps.ScoreMultiplier {
		t.Errorf("Multiplier() = %d, expected %d", w.score.Multiplier(), cfg.PowerUps.ScoreMultiplier)
	}

	w.applyPowerUp(PowerSlowMotion)
	if w.clock.Scale() != cfg.PowerUps.SlowMotionScale {
		t.Errorf("Scale() = %f, expected %f", w.clock.Scale(), cfg.PowerUps.SlowMotionScale)
	}
}

func TestShieldAndHitInvulnerabilityAreSeparate(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world

	w.applyPowerUp(PowerShield)
	w.effects.Apply(effectInvulnerable, w.player.ID, 0, cfg.Player.InvulnerableDuration, 1)

	// The hit window ends first; the shield keeps the player safe.
	run(g, int(cfg.Player.InvulnerableDuration/tick)+1, idle())
	if !w.player.Invulnerable {
		t.Error("shield should keep the player invulnerable")
	}

	run(g, int(cfg.PowerUps.ShieldDuration/tick), idle())
	if w.player.Invulnerable {
		t.Error("invulnerability should end with the shield")
	}
}

func TestSlowMotionScalesSimTimeOnly(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world
	walker := w.spawner.placeWalker(w, 60)

	w.applyPowerUp(PowerSlowMotion)
	run(g, 100, idle())

	if w.clock.Now() != time.Second {
		t.Errorf("Now() = %v, expected 1s", w.clock.Now())
	}
	if w.clock.Sim() != 500*time.Millisecond {
		t.Errorf("Sim() = %v, expected 500ms", w.clock.Sim())
	}
	if moved := 60 - walker.Pos.X; moved < 2.49 || moved > 2.51 {
		t.Errorf("walker moved %f cells, expected 2.5 at half speed", moved)
	}

	// Expires on unscaled time.
	res := run(g, int(cfg.PowerUps.SlowMotionDuration/tick), idle())
	if w.clock.Scale() != 1 {
		t.Errorf("Scale() = %f after expiry, expected 1", w.clock.Scale())
	}
	var ended bool
	for _, ev := range res {
		if e, ok := ev.(core.EffectEnded); ok && e.Name == PowerSlowMotion.String() {
			ended = true
		}
	}
	if !ended {
		t.Error("expected an EffectEnded event for slow motion")
	}
}

// Scenario: the score multiplier doubles passive and bonus points, and a
// second pickup resets rather than extends the window.
func TestScoreMultiplierWindow(t *testing.T) {
	cfg := quietConfig()
	g := newTestGame(t, cfg)
	w := g.world

	// Collected at t=10ms: +10 x2.
	spawnPowerUpAtPlayer(w, PowerScoreMultiplier)
	g.Step(idle())
	if w.score.Multiplier() != 2 {
		t.Fatalf("Multiplier() = %d, expected 2", w.score.Multiplier())
	}
	if g.State().Score != 20 {
		t.Fatalf("Score = %d, expected 20", g.State().Score)
	}

	// Passive points at 1s..9s are doubled.
	run(g, 899, idle())
	if w.clock.Now() != 9*time.Second {
		t.Fatalf("Now() = %v, expected 9s", w.clock.Now())
	}
	if g.State().Score != 38 {
		t.Errorf("Score = %d at 9s, expected 38", g.State().Score)
	}

	// Second pickup at 9.01s resets the window to end at 19.01s.
	spawnPowerUpAtPlayer(w, PowerScoreMultiplier)
	g.Step(idle())
	if g.State().Score != 58 {
		t.Errorf("Score = %d after second pickup, expected 58", g.State().Score)
	}

	run(g, 999, idle()) // to 19.00s
	if w.score.Multiplier() != 2 {
		t.Errorf("Multiplier() = %d at %v, expected 2", w.score.Multiplier(), w.clock.Now())
	}
	if g.State().Score != 78 {
		t.Errorf("Score = %d at 19s, expected 78", g.State().Score)
	}

	g.Step(idle()) // 19.01s
	if w.score.Multiplier() != 1 {
		t.Errorf("Multiplier() = %d at %v, expected 1", w.score.Multiplier(), w.clock.Now())
	}

	run(g, 99, idle()) // 20.00s: single point
	if g.State().Score != 79 {
		t.Errorf("Score = %d at 20s, expected 79", g.State().Score)
	}
}
