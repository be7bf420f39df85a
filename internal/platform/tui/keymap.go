package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

// axisHoldWindow is how long a left/right key press keeps the move axis
// held. Terminals report no key releases, so holding a key is seen as a
// stream of repeats; the window bridges the gap between them.
const axisHoldWindow = 180 * time.Millisecond

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Dash       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Dash, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Dash},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Dash: key.NewBinding(
			key.WithKeys("x", "s", "shift+down"),
			key.WithHelp("x/s", "dash"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a discrete action and a move
// direction (-1, 0 or 1).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, axis float64) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, 0
	case key.Matches(msg, k.Left):
		return core.ActionNone, -1
	case key.Matches(msg, k.Right):
		return core.ActionNone, 1
	case key.Matches(msg, k.Jump):
		return core.ActionJump, 0
	case key.Matches(msg, k.Dash):
		return core.ActionDash, 0
	case key.Matches(msg, k.Pause):
		return core.ActionPause, 0
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, 0
	case key.Matches(msg, k.Back):
		return core.ActionBack, 0
	}
	return core.ActionNone, 0
}

// axisHold remembers the last horizontal key press for a short window.
type axisHold struct {
	dir   float64
	until time.Time
}

// Press holds dir until now + axisHoldWindow.
func (h *axisHold) Press(dir float64, now time.Time) {
	h.dir = dir
	h.until = now.Add(axisHoldWindow)
}

// Value returns the held direction, or 0 once the window has passed.
func (h axisHold) Value(now time.Time) float64 {
	if now.Before(h.until) {
		return h.dir
	}
	return 0
}

// Release drops the held direction.
func (h *axisHold) Release() {
	*h = axisHold{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
