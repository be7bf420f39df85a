// runner is Silhouette Runner, a side-scrolling survival game for the
// terminal.
//
// Usage:
//
//	runner play              - Play a run
//	runner menu              - Start menu with difficulty choice and scoreboard
//	runner serve             - Start SSH server for remote play
//	runner scores            - Show best runs
//	runner sim               - Run headless autopilot simulations
//	runner list              - List registered games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Custom runner config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger is configured in the root PersistentPreRunE.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "runner"})

// logFile is set when logs go to a file while the TUI owns the terminal.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Silhouette Runner - survive the night in your terminal",
	Long: `Silhouette Runner is a side-scrolling survival game played in the
terminal. Dodge or dash through walkers, bats, turrets and spikes,
collect power-ups and survive escalating waves.

Available commands:
  play     - Start a run directly
  menu     - Interactive menu with difficulty choice and scoreboard
  serve    - Start SSH server for remote play
  scores   - View best runs
  sim      - Run headless autopilot simulations
  list     - Show registered games

Examples:
  runner play
  runner play --difficulty hard
  runner menu
  runner serve --ssh :2222
  runner sim --runs 8 --ticks 36000`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup validates global flags and wires logging and game config.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	logger.SetLevel(level)
	logger.SetReportTimestamp(true)

	// The alt screen owns stdout and stderr during play, so verbose logs
	// go to a file next to the database.
	if level < log.WarnLevel && usesTerminal(cmd) {
		if f, err := openLogFile(); err == nil {
			logFile = f
			logger.SetOutput(f)
		}
	}

	runner.SetLogger(logger.WithPrefix("game"))
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	return nil
}

func usesTerminal(cmd *cobra.Command) bool {
	return cmd == playCmd || cmd == menuCmd
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
