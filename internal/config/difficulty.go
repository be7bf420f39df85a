package config

import (
	"math"
	"time"
)

// DifficultyManager calculates wave-dependent game parameters.
type DifficultyManager struct {
	cfg WaveConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg WaveConfig) *DifficultyManager {
	if cfg.InitialWave < 1 {
		cfg.InitialWave = 1
	}
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether waves escalate over time.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.WaveInterval > 0
}

// InitialWave returns the wave a run starts at.
func (d *DifficultyManager) InitialWave() int {
	return d.cfg.InitialWave
}

// WaveInterval returns the sim time between wave increments.
func (d *DifficultyManager) WaveInterval() time.Duration {
	return d.cfg.WaveInterval
}

// SpawnInterval returns the enemy spawn interval for a wave.
// Non-increasing in wave and never below the configured floor.
func (d *DifficultyManager) SpawnInterval(wave int) time.Duration {
	interval := d.cfg.BaseSpawnInterval - time.Duration(max(wave, 0))*d.cfg.SpawnStep
	return max(interval, d.cfg.MinSpawnInterval)
}

// ProjectileSpeedScale returns the projectile speed multiplier for a wave.
func (d *DifficultyManager) ProjectileSpeedScale(wave int) float64 {
	return scaleFor(wave, d.cfg.ProjectileSpeedStep, d.cfg.MaxProjectileSpeedScale)
}

// EnemySpeedScale returns the enemy speed multiplier for a wave.
func (d *DifficultyManager) EnemySpeedScale(wave int) float64 {
	return scaleFor(wave, d.cfg.EnemySpeedStep, d.cfg.MaxEnemySpeedScale)
}

// scaleFor grows linearly from 1 at wave 1 and is capped at maxScale.
func scaleFor(wave int, step, maxScale float64) float64 {
	s := 1 + float64(max(wave-1, 0))*math.Max(step, 0)
	if maxScale >= 1 {
		s = math.Min(s, maxScale)
	}
	return s
}
