package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/registry"
	"github.com/vovakirdan/silhouette-runner/internal/storage"
)

// GameModel is the Bubble Tea model that runs one game: it maps keys to
// input frames, steps the game on every tick, rings the bell on audio cues
// and records the run when the game ends.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	axis      axisHold
	input     core.InputFrame
	gameState core.GameState
	player    string
	bell      io.Writer
	logger    *log.Logger
	now       func() time.Time

	highScore  int
	newHigh    bool
	runSaved   bool
	allowBack  bool
	quitting   bool
	backToMenu bool
	standalone bool
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithPlayer tags saved runs with a player name.
func WithPlayer(name string) GameOption {
	return func(m *GameModel) { m.player = name }
}

// WithBell rings the terminal bell on w for audible cues.
func WithBell(w io.Writer) GameOption {
	return func(m *GameModel) { m.bell = w }
}

// WithLogger routes model logging.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithBackToMenu lets esc/b leave a paused or finished game.
func WithBackToMenu() GameOption {
	return func(m *GameModel) { m.allowBack = true }
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
		logger:    log.New(io.Discard),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if store != nil {
		high, err := store.HighScore(game.ID())
		if err != nil {
			m.logger.Warn("could not load high score", "err", err)
		}
		m.highScore = high
	}
	return m
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, axis := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	case core.ActionNone:
		if axis != 0 {
			m.axis.Press(axis, m.now())
		}
		return m, nil
	}

	m.input.Set(action)
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The world is laid out for the screen size, so a resize restarts a
	// running game.
	if !m.gameState.GameOver {
		m.restart()
	}
	return m, nil
}

// handleTick processes one simulation tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && (m.gameState.GameOver || m.gameState.Paused) {
		m.config.Seed = time.Now().UnixNano()
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	m.input.SetAxis(m.axis.Value(now))
	result := m.game.Step(m.input)
	m.gameState = result.State

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	for _, ev := range result.Events {
		switch e := ev.(type) {
		case core.AudioCue:
			if m.bell != nil && audible(e.Cue) {
				cmds = append(cmds, ringBell(m.bell))
			}
		case core.GameOver:
			m.recordRun(e)
		}
	}

	// Clear input for next frame
	m.input.Clear()
	return m, tea.Batch(cmds...)
}

func (m *GameModel) restart() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.newHigh = false
	m.input.Clear()
	m.axis.Release()
}

// recordRun saves the finished run and checks it against the high score.
func (m *GameModel) recordRun(over core.GameOver) {
	if m.runSaved {
		return
	}
	m.runSaved = true

	if over.FinalScore > m.highScore {
		m.newHigh = true
		m.highScore = over.FinalScore
	}

	if m.store == nil {
		return
	}

	stats, ok := registry.Stats(m.game)
	if !ok {
		stats = registry.RunStats{
			Score:   over.FinalScore,
			Wave:    over.Wave,
			Elapsed: over.Elapsed,
			Seed:    m.config.Seed,
		}
	}

	run, err := m.store.SaveRun(storage.RunRecord{
		GameID:            m.game.ID(),
		Player:            m.player,
		Score:             stats.Score,
		Wave:              stats.Wave,
		Duration:          stats.Elapsed,
		EnemiesDefeated:   stats.EnemiesDefeated,
		PowerUpsCollected: stats.PowerUpsCollected,
		DamageTaken:       stats.DamageTaken,
		Seed:              stats.Seed,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved",
		"run", run.RunID,
		"player", m.player,
		"score", run.Score,
		"wave", run.Wave,
		"high", m.newHigh,
	)
}

// audible reports whether a cue rings the bell. Frequent cues stay silent.
func audible(c core.Cue) bool {
	switch c {
	case core.CueHit, core.CueEnemyDefeated, core.CueGameOver:
		return true
	}
	return false
}

func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // Best-effort
		w.Write([]byte{'\a'})
		return nil
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver {
		drawRunSummary(m.screen, m.highScore, m.newHigh, m.allowBack)
	}
	if m.gameState.Paused {
		drawHelpLine(m.screen, helpText(m.keyMapper.Keys().ShortHelp()))
	}
	return RenderScreen(m.screen)
}

// GameState returns the state after the last tick.
func (m GameModel) GameState() core.GameState {
	return m.gameState
}

// NewHighScore reports whether the finished run beat the stored best.
func (m GameModel) NewHighScore() bool {
	return m.newHigh
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	model := NewGameModel(game, store, cfg, append([]GameOption{WithBell(os.Stdout)}, opts...)...)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
