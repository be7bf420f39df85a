package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadRunner loads Silhouette Runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.{yaml,toml} ->
// ./configs/runner.{yaml,toml} -> embedded default -> hard-coded default.
// Files only need to set the values they change; everything else keeps
// its default.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeRunner(customPath, data)
		if err != nil {
			return DefaultRunnerConfig(), err
		}
		return cfg, cfg.Validate()
	}

	var candidates []string
	for _, name := range []string{"runner.yaml", "runner.toml"} {
		// Try user config directory
		if p := userConfigPath(name); p != "" {
			candidates = append(candidates, p)
		}
	}
	// Then the local configs directory
	candidates = append(candidates, filepath.Join("configs", "runner.yaml"), filepath.Join("configs", "runner.toml"))

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeRunner(path, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeRunner("runner.yaml", defaultRunnerYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeRunner parses data on top of the defaults, choosing the format by
// file extension.
func decodeRunner(path string, data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialWave = InitialWaveForPreset(preset)

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Spawning.PowerUpInterval = cfg.Spawning.PowerUpInterval * 3 / 4
	case DifficultyHard:
		cfg.Spawning.SpikeClusterChance = min(cfg.Spawning.SpikeClusterChance*1.5, 1)
	}
}
