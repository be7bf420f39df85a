package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/silhouette-runner/internal/games/runner"
	"github.com/vovakirdan/silhouette-runner/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresPlayer string
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the stored run history.

By default the best runs are listed. --recent lists the latest runs and
--player filters runs of one SSH user.

Examples:
  runner scores
  runner scores --recent --limit 20
  runner scores --player alice
  runner scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show runs of one player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored runs and scores")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(runner.GameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	var (
		title string
		runs  []storage.RunRecord
	)
	switch {
	case flagScoresPlayer != "":
		title = "Runs by " + flagScoresPlayer
		runs, err = store.PlayerRuns(flagScoresPlayer, flagScoresLimit)
	case flagScoresRecent:
		title = "Recent Runs"
		runs, err = store.RecentRuns(runner.GameID, flagScoresLimit)
	default:
		title = "Best Runs"
		runs, err = store.BestRuns(runner.GameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s - Silhouette Runner\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Score", "Wave", "Time", "Kills", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "-----", "----", "----", "-----", "------", "----")
	for i, run := range runs {
		player := run.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-4d  %-8s  %-5d  %-12s  %s\n",
			i+1, run.Score, run.Wave, run.Duration.Round(time.Second), run.EnemiesDefeated,
			player, run.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(runner.GameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Best wave: %d  Played: %s\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestWave,
			stats.TotalTime.Round(time.Second))
	}
	return nil
}
