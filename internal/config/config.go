// Package config provides YAML/TOML game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all configuration for Silhouette Runner.
type RunnerConfig struct {
	World      RunnerWorld    `yaml:"world" toml:"world"`
	Player     RunnerPlayer   `yaml:"player" toml:"player"`
	Enemies    RunnerEnemies  `yaml:"enemies" toml:"enemies"`
	PowerUps   RunnerPowerUps `yaml:"powerups" toml:"powerups"`
	Spawning   RunnerSpawning `yaml:"spawning" toml:"spawning"`
	Scoring    RunnerScoring  `yaml:"scoring" toml:"scoring"`
	Difficulty WaveConfig     `yaml:"difficulty" toml:"difficulty"`
}

// RunnerWorld defines world physics and camera parameters.
// Distances are in cells, speeds in cells per second.
type RunnerWorld struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`
	GroundOffset int     `yaml:"ground_offset" toml:"ground_offset"` // Rows between ground surface and screen bottom
	CameraLead   float64 `yaml:"camera_lead" toml:"camera_lead"`     // Player distance from the left edge before scrolling
	PruneMargin  float64 `yaml:"prune_margin" toml:"prune_margin"`
}

// RunnerPlayer defines the avatar's movement and damage response.
type RunnerPlayer struct {
	Width                int           `yaml:"width" toml:"width"`
	Height               int           `yaml:"height" toml:"height"`
	StartX               float64       `yaml:"start_x" toml:"start_x"`
	MaxHP                int           `yaml:"max_hp" toml:"max_hp"`
	MoveSpeed            float64       `yaml:"move_speed" toml:"move_speed"`
	Drag                 float64       `yaml:"drag" toml:"drag"`
	JumpImpulse          float64       `yaml:"jump_impulse" toml:"jump_impulse"`
	DashHorizontal       float64       `yaml:"dash_horizontal" toml:"dash_horizontal"`
	DashVertical         float64       `yaml:"dash_vertical" toml:"dash_vertical"`
	DashDuration         time.Duration `yaml:"dash_duration" toml:"dash_duration"`
	KnockbackX           float64       `yaml:"knockback_x" toml:"knockback_x"`
	KnockbackUp          float64       `yaml:"knockback_up" toml:"knockback_up"`
	HurtDuration         time.Duration `yaml:"hurt_duration" toml:"hurt_duration"`
	InvulnerableDuration time.Duration `yaml:"invulnerable_duration" toml:"invulnerable_duration"`
}

// RunnerEnemies groups per-kind enemy parameters.
type RunnerEnemies struct {
	Walker     WalkerConfig     `yaml:"walker" toml:"walker"`
	Bat        BatConfig        `yaml:"bat" toml:"bat"`
	Turret     TurretConfig     `yaml:"turret" toml:"turret"`
	Spike      SpikeConfig      `yaml:"spike" toml:"spike"`
	Projectile ProjectileConfig `yaml:"projectile" toml:"projectile"`
}

// WalkerConfig defines the ground patroller.
type WalkerConfig struct {
	Width          int     `yaml:"width" toml:"width"`
	Height         int     `yaml:"height" toml:"height"`
	Speed          float64 `yaml:"speed" toml:"speed"`
	PatrolDistance float64 `yaml:"patrol_distance" toml:"patrol_distance"`
	Damage         int     `yaml:"damage" toml:"damage"`
}

// BatConfig defines the flying enemy.
type BatConfig struct {
	Width            int           `yaml:"width" toml:"width"`
	Height           int           `yaml:"height" toml:"height"`
	Speed            float64       `yaml:"speed" toml:"speed"`
	Amplitude        float64       `yaml:"amplitude" toml:"amplitude"`
	Period           time.Duration `yaml:"period" toml:"period"`
	MinAltitude      float64       `yaml:"min_altitude" toml:"min_altitude"` // Cells above the ground surface
	MaxAltitude      float64       `yaml:"max_altitude" toml:"max_altitude"`
	SwoopEnabled     bool          `yaml:"swoop_enabled" toml:"swoop_enabled"`
	SwoopRadius      float64       `yaml:"swoop_radius" toml:"swoop_radius"`
	SwoopSpeedFactor float64       `yaml:"swoop_speed_factor" toml:"swoop_speed_factor"`
	SwoopDuration    time.Duration `yaml:"swoop_duration" toml:"swoop_duration"`
	Damage           int           `yaml:"damage" toml:"damage"`
}

// TurretConfig defines the stationary shooter.
type TurretConfig struct {
	Width        int           `yaml:"width" toml:"width"`
	Height       int           `yaml:"height" toml:"height"`
	Range        float64       `yaml:"range" toml:"range"`
	FireCooldown time.Duration `yaml:"fire_cooldown" toml:"fire_cooldown"`
	MinAltitude  float64       `yaml:"min_altitude" toml:"min_altitude"`
	MaxAltitude  float64       `yaml:"max_altitude" toml:"max_altitude"`
	Damage       int           `yaml:"damage" toml:"damage"`
}

// SpikeConfig defines the ground hazard.
type SpikeConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	Damage int `yaml:"damage" toml:"damage"`
}

// ProjectileConfig defines turret shots.
type ProjectileConfig struct {
	Speed  float64       `yaml:"speed" toml:"speed"`
	TTL    time.Duration `yaml:"ttl" toml:"ttl"`
	Damage int           `yaml:"damage" toml:"damage"`
}

// RunnerPowerUps defines the four pickups.
type RunnerPowerUps struct {
	ShieldDuration          time.Duration `yaml:"shield_duration" toml:"shield_duration"`
	SpeedBoostDuration      time.Duration `yaml:"speed_boost_duration" toml:"speed_boost_duration"`
	SpeedBoostDelta         float64       `yaml:"speed_boost_delta" toml:"speed_boost_delta"`
	ScoreMultiplierDuration time.Duration `yaml:"score_multiplier_duration" toml:"score_multiplier_duration"`
	ScoreMultiplier         int           `yaml:"score_multiplier" toml:"score_multiplier"`
	SlowMotionDuration      time.Duration `yaml:"slow_motion_duration" toml:"slow_motion_duration"`
	SlowMotionScale         float64       `yaml:"slow_motion_scale" toml:"slow_motion_scale"`
	Lifetime                time.Duration `yaml:"lifetime" toml:"lifetime"` // 0 = power-ups never despawn on their own
}

// RunnerSpawning defines where and how often things appear.
type RunnerSpawning struct {
	PowerUpInterval    time.Duration `yaml:"powerup_interval" toml:"powerup_interval"`
	AheadMin           float64       `yaml:"ahead_min" toml:"ahead_min"`
	AheadMax           float64       `yaml:"ahead_max" toml:"ahead_max"`
	PowerUpAheadMin    float64       `yaml:"powerup_ahead_min" toml:"powerup_ahead_min"`
	PowerUpAheadMax    float64       `yaml:"powerup_ahead_max" toml:"powerup_ahead_max"`
	PowerUpAltitude    float64       `yaml:"powerup_altitude" toml:"powerup_altitude"`
	WalkerWeight       int           `yaml:"walker_weight" toml:"walker_weight"`
	BatWeight          int           `yaml:"bat_weight" toml:"bat_weight"`
	TurretWeight       int           `yaml:"turret_weight" toml:"turret_weight"`
	SpikeClusterChance float64       `yaml:"spike_cluster_chance" toml:"spike_cluster_chance"`
	SpikeClusterSize   int           `yaml:"spike_cluster_size" toml:"spike_cluster_size"`
	InitialSpikes      int           `yaml:"initial_spikes" toml:"initial_spikes"`
	InitialWalkers     int           `yaml:"initial_walkers" toml:"initial_walkers"`
	InitialTurrets     int           `yaml:"initial_turrets" toml:"initial_turrets"`
	MaxEntities        int           `yaml:"max_entities" toml:"max_entities"`
}

// RunnerScoring defines point values.
type RunnerScoring struct {
	PassivePoints   int           `yaml:"passive_points" toml:"passive_points"`
	PassiveInterval time.Duration `yaml:"passive_interval" toml:"passive_interval"`
	DefeatBonus     int           `yaml:"defeat_bonus" toml:"defeat_bonus"`
	CollectBonus    int           `yaml:"collect_bonus" toml:"collect_bonus"`
}

// WaveConfig defines the wave-based difficulty progression.
type WaveConfig struct {
	Enabled                 bool          `yaml:"enabled" toml:"enabled"`
	InitialWave             int           `yaml:"initial_wave" toml:"initial_wave"`
	WaveInterval            time.Duration `yaml:"wave_interval" toml:"wave_interval"`
	BaseSpawnInterval       time.Duration `yaml:"base_spawn_interval" toml:"base_spawn_interval"`
	SpawnStep               time.Duration `yaml:"spawn_step" toml:"spawn_step"`
	MinSpawnInterval        time.Duration `yaml:"min_spawn_interval" toml:"min_spawn_interval"`
	ProjectileSpeedStep     float64       `yaml:"projectile_speed_step" toml:"projectile_speed_step"`
	MaxProjectileSpeedScale float64       `yaml:"max_projectile_speed_scale" toml:"max_projectile_speed_scale"`
	EnemySpeedStep          float64       `yaml:"enemy_speed_step" toml:"enemy_speed_step"`
	MaxEnemySpeedScale      float64       `yaml:"max_enemy_speed_scale" toml:"max_enemy_speed_scale"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyEasy, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialWaveForPreset returns the starting wave for a difficulty preset.
func InitialWaveForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 2
	case DifficultyHard:
		return 4
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports configuration values the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Player.MaxHP > 0, "player.max_hp must be positive, got %d", c.Player.MaxHP)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.World.Gravity > 0, "world.gravity must be positive, got %v", c.World.Gravity)
	check(c.Player.DashDuration > 0, "player.dash_duration must be positive")
	check(c.Enemies.Projectile.TTL > 0, "enemies.projectile.ttl must be positive")
	check(c.Enemies.Turret.FireCooldown > 0, "enemies.turret.fire_cooldown must be positive")
	check(c.Enemies.Bat.Period > 0, "enemies.bat.period must be positive")
	check(c.PowerUps.SlowMotionScale > 0 && c.PowerUps.SlowMotionScale <= 1,
		"powerups.slow_motion_scale must be in (0, 1], got %v", c.PowerUps.SlowMotionScale)
	check(c.PowerUps.ScoreMultiplier >= 1, "powerups.score_multiplier must be at least 1")
	check(c.Spawning.PowerUpInterval > 0, "spawning.powerup_interval must be positive")
	check(c.Spawning.AheadMax >= c.Spawning.AheadMin, "spawning.ahead_max must not be below ahead_min")
	check(c.Spawning.WalkerWeight+c.Spawning.BatWeight+c.Spawning.TurretWeight > 0,
		"spawning weights must not all be zero")
	check(c.Scoring.PassiveInterval > 0, "scoring.passive_interval must be positive")
	check(c.Difficulty.InitialWave >= 1, "difficulty.initial_wave must be at least 1")
	check(c.Difficulty.WaveInterval > 0, "difficulty.wave_interval must be positive")
	check(c.Difficulty.MinSpawnInterval > 0, "difficulty.min_spawn_interval must be positive")
	check(c.Difficulty.SpawnStep >= 0, "difficulty.spawn_step must not be negative")

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid runner config: %w", err)
	}
	return nil
}
