package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		axis   float64
	}{
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, 0},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, 0},
		{"w jumps", runeKey("w"), core.ActionJump, 0},
		{"x dashes", runeKey("x"), core.ActionDash, 0},
		{"s dashes", runeKey("s"), core.ActionDash, 0},
		{"left moves", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionNone, -1},
		{"d moves right", runeKey("d"), core.ActionNone, 1},
		{"p pauses", runeKey("p"), core.ActionPause, 0},
		{"r restarts", runeKey("r"), core.ActionRestart, 0},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, 0},
		{"q quits", runeKey("q"), core.ActionQuit, 0},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, 0},
		{"unbound key", runeKey("z"), core.ActionNone, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, axis := km.MapKey(tc.msg)
			if action != tc.action || axis != tc.axis {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, axis, tc.action, tc.axis)
			}
		})
	}
}

func TestAxisHold(t *testing.T) {
	var h axisHold
	t0 := time.Unix(1000, 0)

	if h.Value(t0) != 0 {
		t.Error("zero hold should read 0")
	}

	h.Press(1, t0)
	if h.Value(t0.Add(axisHoldWindow/2)) != 1 {
		t.Error("axis should be held inside the window")
	}
	if h.Value(t0.Add(axisHoldWindow)) != 0 {
		t.Error("axis should release when the window ends")
	}

	// A repeat extends the hold; the opposite key replaces it.
	h.Press(1, t0.Add(100*time.Millisecond))
	if h.Value(t0.Add(axisHoldWindow+50*time.Millisecond)) != 1 {
		t.Error("repeat should extend the hold")
	}
	h.Press(-1, t0.Add(200*time.Millisecond))
	if h.Value(t0.Add(210*time.Millisecond)) != -1 {
		t.Error("opposite key should replace the direction")
	}

	h.Release()
	if h.Value(t0.Add(210*time.Millisecond)) != 0 {
		t.Error("Release should drop the hold")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
