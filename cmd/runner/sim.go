package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/games/runner"
	"github.com/vovakirdan/silhouette-runner/internal/storage"
)

var (
	flagSimRuns     int
	flagSimTicks    int
	flagSimParallel int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot simulations",
	Long: `Play runs without a terminal using the built-in autopilot.

Each run uses its own seed, starting at --seed (or 1) and counting up, so
results are reproducible. Runs stop at game over or after --ticks steps.
Useful for tuning configs and difficulty presets.

Examples:
  runner sim
  runner sim --runs 16 --parallel 4
  runner sim --difficulty hard --ticks 36000
  runner sim --config ./my-runner.yaml --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 8, "Number of runs")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*10, "Maximum ticks per run")
	simCmd.Flags().IntVar(&flagSimParallel, "parallel", runtime.NumCPU(), "Runs simulated at once")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store finished runs in the scores database")
}

// simResult is the outcome of one headless run.
type simResult struct {
	Stats    runner.Stats
	Ticks    int
	GameOver bool
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimRuns <= 0 || flagSimTicks <= 0 {
		return fmt.Errorf("--runs and --ticks must be positive")
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyRunnerPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := flagSeed
	if base == 0 {
		base = 1
	}

	results := make([]simResult, flagSimRuns)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(flagSimParallel, 1))
	for i := range results {
		seed := base + int64(i)
		eg.Go(func() error {
			res, err := simulate(ctx, cfg, seed, flagSimTicks)
			if err != nil {
				return err
			}
			results[i] = res
			logger.Debug("run finished", "seed", seed, "score", res.Stats.Score, "wave", res.Stats.Wave, "ticks", res.Ticks)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	printSim(results)

	if flagSimSave {
		return saveSim(results)
	}
	return nil
}

// simulate plays one run with the autopilot until game over or maxTicks.
func simulate(ctx context.Context, cfg config.RunnerConfig, seed int64, maxTicks int) (simResult, error) {
	game := runner.NewWithConfig(cfg)
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	})
	bot := runner.NewAutopilot()

	var res simResult
	for res.Ticks < maxTicks {
		if res.Ticks%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		step := game.Step(bot.Next(game.Snapshot()))
		res.Ticks++
		if step.State.GameOver {
			res.GameOver = true
			break
		}
	}
	res.Stats = game.Stats()
	return res, nil
}

func printSim(results []simResult) {
	fmt.Printf("  %-6s  %-8s  %-4s  %-8s  %-5s  %-7s  %s\n", "Seed", "Score", "Wave", "Time", "Kills", "Damage", "End")
	fmt.Printf("  %-6s  %-8s  %-4s  %-8s  %-5s  %-7s  %s\n", "----", "-----", "----", "----", "-----", "------", "---")

	var total, best, deaths int
	for _, r := range results {
		end := "timeout"
		if r.GameOver {
			end = "dead"
			deaths++
		}
		fmt.Printf("  %-6d  %-8d  %-4d  %-8s  %-5d  %-7d  %s\n",
			r.Stats.Seed, r.Stats.Score, r.Stats.Wave, r.Stats.Elapsed.Truncate(100*time.Millisecond),
			r.Stats.EnemiesDefeated, r.Stats.DamageTaken, end)
		total += r.Stats.Score
		best = max(best, r.Stats.Score)
	}

	fmt.Println()
	fmt.Printf("Runs: %d  Deaths: %d  Best: %d  Avg: %.1f\n",
		len(results), deaths, best, float64(total)/float64(len(results)))
}

func saveSim(results []simResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	for _, r := range results {
		if !r.GameOver {
			continue
		}
		run, err := store.SaveRun(storage.RunRecord{
			GameID:            runner.GameID,
			Player:            "autopilot",
			Score:             r.Stats.Score,
			Wave:              r.Stats.Wave,
			Duration:          r.Stats.Elapsed,
			EnemiesDefeated:   r.Stats.EnemiesDefeated,
			PowerUpsCollected: r.Stats.PowerUpsCollected,
			DamageTaken:       r.Stats.DamageTaken,
			Seed:              r.Stats.Seed,
		})
		if err != nil {
			return err
		}
		logger.Info("run saved", "id", run.RunID, "score", run.Score)
	}
	return nil
}
