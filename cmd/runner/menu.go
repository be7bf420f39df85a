package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/silhouette-runner/internal/games/runner"
	"github.com/vovakirdan/silhouette-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the runner with an interactive menu",
	Long: `Start Silhouette Runner in interactive menu mode.

Pick Play to choose a difficulty and start a run, or High Scores to
browse the run history. After a run you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	seed := cfg.Seed

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, runner.GameID, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, runner.GameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil
		}

		if !menuResult.Play {
			return nil
		}

		// A fixed --seed replays the same run every time.
		cfg.Seed = seed
		if seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		game := runner.NewWithPreset(menuResult.Preset)
		logger.Debug("starting run", "preset", menuResult.Preset, "seed", cfg.Seed)
		if err := tui.Run(game, store, cfg, tui.WithLogger(logger), tui.WithBackToMenu()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}
