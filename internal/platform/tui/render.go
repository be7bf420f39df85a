package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           fg("1"),
	core.ColorGreen:         fg("2"),
	core.ColorYellow:        fg("3"),
	core.ColorBlue:          fg("4"),
	core.ColorMagenta:       fg("5"),
	core.ColorCyan:          fg("6"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightRed:     fg("9"),
	core.ColorBrightGreen:   fg("10"),
	core.ColorBrightYellow:  fg("11").Bold(true),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorBrightWhite:   fg("15"),
	core.ColorOrange:        fg("208"),
	core.ColorGray:          fg("245"),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// drawRunSummary adds the high score lines under the game over box.
func drawRunSummary(s *core.Screen, highScore int, newHigh, canGoBack bool) {
	y := (s.Height()-5)/2 + 6

	if newHigh {
		drawCentered(s, y, "★ NEW HIGH SCORE ★", core.ColorBrightYellow)
	} else {
		drawCentered(s, y, fmt.Sprintf("Best: %d", highScore), core.ColorGray)
	}
	if canGoBack {
		drawCentered(s, y+1, "Esc: menu", core.ColorGray)
	}
}

// drawHelpLine writes a key help line on the bottom row.
func drawHelpLine(s *core.Screen, text string) {
	drawCentered(s, s.Height()-1, text, core.ColorGray)
}

func drawCentered(s *core.Screen, y int, text string, c core.Color) {
	x := (s.Width() - len([]rune(text))) / 2
	s.DrawTextColor(max(x, 0), y, text, c)
}

// helpText renders bindings as plain "key desc" pairs. Screen cells hold
// runes, so the styled output of the help bubble cannot be drawn there.
func helpText(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
