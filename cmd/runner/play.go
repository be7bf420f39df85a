package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/games/runner"
	"github.com/vovakirdan/silhouette-runner/internal/platform/tui"
	"github.com/vovakirdan/silhouette-runner/internal/registry"
	"github.com/vovakirdan/silhouette-runner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Start a run",
	Long: `Start a run of Silhouette Runner.

Controls:
  Left/Right, A/D   - Move
  Space/Up/W        - Jump (hold for a higher jump)
  X/S               - Dash (dive onto enemies from the air)
  P                 - Pause
  R                 - Restart (paused or after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at wave 1
  normal - Start at wave 2
  hard   - Start at wave 4
  fixed  - No escalation

Without --difficulty a selector is shown before the run.

Examples:
  runner play
  runner play --difficulty hard
  runner play --seed 42 --difficulty fixed
  runner play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newGame creates the game for gameID. The runner gets the preset directly
// so a menu choice never leaks into later runs.
func newGame(gameID string, preset config.DifficultyPreset) (registry.Game, error) {
	if gameID == runner.GameID {
		return runner.NewWithPreset(preset), nil
	}
	return registry.Create(gameID)
}

// openStore opens the scores database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := runner.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'runner list' to see available games", gameID)
	}

	cfg := terminalConfig()

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		preset = config.DifficultyPreset(flagDifficulty)
	} else {
		chosen, ok, err := tui.RunDifficultySelector(cfg)
		if err != nil {
			return err
		}
		// User pressed back or quit
		if !ok {
			return nil
		}
		preset = chosen
	}

	game, err := newGame(gameID, preset)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Debug("starting run", "game", gameID, "preset", preset, "seed", cfg.Seed)
	if err := tui.Run(game, store, cfg, tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
