package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
	"github.com/vovakirdan/silhouette-runner/internal/storage"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoicePlay MenuChoice = iota
	ChoiceScores
	ChoiceQuit
)

var menuChoices = []string{"Play", "High Scores", "Quit"}

var titleArt = []string{
	` ___ _ _ _                _   _       `,
	`/ __(_) | |_  ___ _  _ ___| |_| |_ ___ `,
	`\__ \ | | ' \/ _ \ || / -_)  _|  _/ -_)`,
	`|___/_|_|_||_\___/\_,_\___|\__|\__\___|`,
	`          R  U  N  N  E  R             `,
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu. Choosing Play opens
// the difficulty list before the run starts.
type MenuModel struct {
	cursor     int
	width      int
	height     int
	gameID     string
	highScore  int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	difficulty *DifficultyModel // non-nil while choosing a preset
	quitting   bool
	scores     bool
	preset     config.DifficultyPreset
	play       bool
	standalone bool
}

// NewMenuModel creates a new menu model. The store is only read for the
// best score shown under the title and may be nil.
func NewMenuModel(store *storage.Store, gameID string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		gameID:    gameID,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if high, err := store.HighScore(gameID); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.difficulty != nil {
		return m.updateDifficulty(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	d, ok := next.(DifficultyModel)
	if !ok {
		return m, cmd
	}

	switch {
	case d.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case d.WantsBack():
		m.difficulty = nil
		return m, nil
	}
	if preset, chosen := d.Selected(); chosen {
		m.difficulty = nil
		m.preset = preset
		m.play = true
		return m, m.done()
	}

	m.difficulty = &d
	return m, cmd
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuChoices)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.scores = true
		return m, m.done()

	case MenuActionSelect:
		switch MenuChoice(m.cursor) {
		case ChoicePlay:
			d := NewDifficultyModel(m.width, m.height)
			m.difficulty = &d
		case ChoiceScores:
			m.scores = true
			return m, m.done()
		case ChoiceQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) done() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.difficulty != nil {
		return m.difficulty.View()
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range titleArt {
		b.WriteString(centerStyled(titleStyle.Render(line), len(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	best := "No runs yet"
	if m.highScore > 0 {
		best = fmt.Sprintf("Best score: %d", m.highScore)
	}
	b.WriteString(centerStyled(dimStyle.Render(best), len(best), m.width))
	b.WriteString("\n\n")

	for i, choice := range menuChoices {
		line := "  " + choice
		if i == m.cursor {
			line = cursorStyle.Render("> " + choice)
		}
		b.WriteString(centerStyled(line, len(choice)+2, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Play returns the chosen preset once the user started a run.
func (m MenuModel) Play() (config.DifficultyPreset, bool) {
	return m.preset, m.play
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	return centerStyled(text, len([]rune(text)), width)
}

// centerStyled centers an already styled string whose visible width is w.
func centerStyled(text string, w, width int) string {
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	Play            bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, gameID string, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, gameID, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting():
		result.Quit = true
	default:
		result.Preset, result.Play = m.Play()
		result.Quit = !result.Play
	}
	return result, nil
}
