package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/silhouette-runner/internal/config"
	"github.com/vovakirdan/silhouette-runner/internal/core"
)

// difficultyOption is one entry of the difficulty list.
type difficultyOption struct {
	Preset      config.DifficultyPreset
	Title       string
	Description string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy", "Wave 1, more frequent power-ups"},
	{config.DifficultyNormal, "Normal", "Start at wave 2"},
	{config.DifficultyHard, "Hard", "Start at wave 4, more spike clusters"},
	{config.DifficultyFixed, "Fixed", "No escalation, practice mode"},
}

// DifficultyModel lets users choose a difficulty preset before a run.
type DifficultyModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool

	// standalone ends the program on a choice; embedded models leave that
	// to their parent.
	standalone bool
}

// NewDifficultyModel creates a difficulty selector. The cursor starts on
// Normal.
func NewDifficultyModel(width, height int) DifficultyModel {
	return DifficultyModel{
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = difficultyOptions[m.cursor].Preset
		return m, m.done()
	case MenuActionBack:
		m.back = true
		return m, m.done()
	}
	return m, nil
}

func (m DifficultyModel) done() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// View renders the difficulty list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("S E L E C T   D I F F I C U L T Y", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-7s %s", cursor, opt.Title, opt.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen preset, or false while still choosing.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if m.choosing {
		return "", false
	}
	return m.selection, true
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the selector as its own program. It returns
// false if the user backed out or quit.
func RunDifficultySelector(cfg core.RuntimeConfig) (config.DifficultyPreset, bool, error) {
	model := NewDifficultyModel(cfg.ScreenW, cfg.ScreenH)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return "", false, nil
	}
	preset, chosen := m.Selected()
	return preset, chosen, nil
}
