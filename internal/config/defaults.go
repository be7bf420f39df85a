package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default Silhouette Runner configuration.
// It mirrors defaults/runner.yaml and is the last fallback if the embedded
// file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: RunnerWorld{
			Gravity:      60,
			MaxFallSpeed: 30,
			GroundOffset: 3,
			CameraLead:   20,
			PruneMargin:  10,
		},
		Player: RunnerPlayer{
			Width:                3,
			Height:               3,
			StartX:               10,
			MaxHP:                100,
			MoveSpeed:            20,
			Drag:                 50,
			JumpImpulse:          22,
			DashHorizontal:       25,
			DashVertical:         30,
			DashDuration:         300 * time.Millisecond,
			KnockbackX:           15,
			KnockbackUp:          12,
			HurtDuration:         250 * time.Millisecond,
			InvulnerableDuration: time.Second,
		},
		Enemies: RunnerEnemies{
			Walker: WalkerConfig{
				Width:          3,
				Height:         2,
				Speed:          5,
				PatrolDistance: 20,
				Damage:         10,
			},
			Bat: BatConfig{
				Width:            3,
				Height:           1,
				Speed:            10,
				Amplitude:        2,
				Period:           4 * time.Second,
				MinAltitude:      6,
				MaxAltitude:      12,
				SwoopEnabled:     true,
				SwoopRadius:      20,
				SwoopSpeedFactor: 2,
				SwoopDuration:    2 * time.Second,
				Damage:           10,
			},
			Turret: TurretConfig{
				Width:        3,
				Height:       2,
				Range:        40,
				FireCooldown: 2 * time.Second,
				MinAltitude:  3,
				MaxAltitude:  5,
				Damage:       10,
			},
			Spike: SpikeConfig{
				Width:  2,
				Height: 1,
				Damage: 15,
			},
			Projectile: ProjectileConfig{
				Speed:  20,
				TTL:    4 * time.Second,
				Damage: 10,
			},
		},
		PowerUps: RunnerPowerUps{
			ShieldDuration:          5 * time.Second,
			SpeedBoostDuration:      8 * time.Second,
			SpeedBoostDelta:         0.5,
			ScoreMultiplierDuration: 10 * time.Second,
			ScoreMultiplier:         2,
			SlowMotionDuration:      5 * time.Second,
			SlowMotionScale:         0.5,
		},
		Spawning: RunnerSpawning{
			PowerUpInterval:    8 * time.Second,
			AheadMin:           40,
			AheadMax:           80,
			PowerUpAheadMin:    30,
			PowerUpAheadMax:    60,
			PowerUpAltitude:    5,
			WalkerWeight:       1,
			BatWeight:          1,
			TurretWeight:       1,
			SpikeClusterChance: 0.3,
			SpikeClusterSize:   3,
			InitialSpikes:      5,
			InitialWalkers:     3,
			InitialTurrets:     1,
			MaxEntities:        200,
		},
		Scoring: RunnerScoring{
			PassivePoints:   1,
			PassiveInterval: time.Second,
			DefeatBonus:     20,
			CollectBonus:    10,
		},
		Difficulty: WaveConfig{
			Enabled:                 true,
			InitialWave:             1,
			WaveInterval:            30 * time.Second,
			BaseSpawnInterval:       3 * time.Second,
			SpawnStep:               200 * time.Millisecond,
			MinSpawnInterval:        time.Second,
			ProjectileSpeedStep:     0.1,
			MaxProjectileSpeedScale: 2,
			EnemySpeedStep:          0.1,
			MaxEnemySpeedScale:      2,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "runner":
		return defaultRunnerYAML
	default:
		return nil
	}
}
