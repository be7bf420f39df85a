package config

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestSpawnInterval(t *testing.T) {
	d := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	tests := []struct {
		wave     int
		expected time.Duration
	}{
		{1, 2800 * time.Millisecond},
		{2, 2600 * time.Millisecond},
		{5, 2000 * time.Millisecond},
		{10, time.Second},
		{50, time.Second},
	}

	for _, tc := range tests {
		if got := d.SpawnInterval(tc.wave); got != tc.expected {
			t.Errorf("SpawnInterval(%d) = %v, expected %v", tc.wave, got, tc.expected)
		}
	}
}

func TestSpeedScales(t *testing.T) {
	d := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	if got := d.ProjectileSpeedScale(1); got != 1 {
		t.Errorf("ProjectileSpeedScale(1) = %f, expected 1", got)
	}
	if got := d.EnemySpeedScale(6); got < 1.49 || got > 1.51 {
		t.Errorf("EnemySpeedScale(6) = %f, expected 1.5", got)
	}
	if got := d.ProjectileSpeedScale(100); got != 2 {
		t.Errorf("ProjectileSpeedScale(100) = %f, expected cap 2", got)
	}
}

func TestDifficultyManagerInitialWave(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.InitialWave = 0
	d := NewDifficultyManager(cfg)
	if d.InitialWave() != 1 {
		t.Errorf("InitialWave() = %d, expected 1", d.InitialWave())
	}

	cfg.Enabled = false
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("disabled config should not escalate")
	}
}

func TestSpawnIntervalMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := WaveConfig{
			BaseSpawnInterval:  time.Duration(rapid.IntRange(500, 10000).Draw(t, "base")) * time.Millisecond,
			SpawnStep:          time.Duration(rapid.IntRange(0, 1000).Draw(t, "step")) * time.Millisecond,
			MinSpawnInterval:   time.Duration(rapid.IntRange(1, 2000).Draw(t, "min")) * time.Millisecond,
			EnemySpeedStep:     rapid.Float64Range(0, 1).Draw(t, "enemyStep"),
			MaxEnemySpeedScale: rapid.Float64Range(1, 5).Draw(t, "enemyMax"),
		}
		d := NewDifficultyManager(cfg)

		prev := d.SpawnInterval(1)
		prevScale := d.EnemySpeedScale(1)
		for wave := 2; wave <= 60; wave++ {
			cur := d.SpawnInterval(wave)
			if cur > prev {
				t.Fatalf("SpawnInterval(%d) = %v increased from %v", wave, cur, prev)
			}
			if cur < cfg.MinSpawnInterval {
				t.Fatalf("SpawnInterval(%d) = %v below floor %v", wave, cur, cfg.MinSpawnInterval)
			}
			scale := d.EnemySpeedScale(wave)
			if scale < prevScale || scale > cfg.MaxEnemySpeedScale {
				t.Fatalf("EnemySpeedScale(%d) = %f out of order or above cap", wave, scale)
			}
			prev, prevScale = cur, scale
		}
	})
}
