package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/ui/theme"
)

// ContentWidth is the inner width of a Panel: the frame minus border and
// padding, capped at 60 columns so text stays readable.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// Panel draws a thick-bordered frame filling width x height with content
// centered inside.
func Panel(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a rounded box cw columns wide, used for flashcards and forms.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

const buttonWidth = 22

var (
	buttonStyle = lipgloss.NewStyle().
			Width(buttonWidth).
			Align(lipgloss.Center).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	buttonIdle = buttonStyle.
			Foreground(theme.Text).
			BorderForeground(theme.Border)

	buttonFocused = buttonStyle.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight)
)

// Button renders a fixed-width button.
func Button(label string, selected bool) string {
	if selected {
		return buttonFocused.Render("▸ " + label)
	}
	return buttonIdle.Render(label)
}

// ButtonRow lays buttons out left to right.
func ButtonRow(labels []string, selected int) string {
	row := make([]string, 0, len(labels))
	for i, l := range labels {
		row = append(row, Button(l, i == selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}

// ButtonColumn stacks buttons. In compact mode each is a single text
// line so a menu fits small terminals.
func ButtonColumn(labels []string, selected int, compact bool) string {
	if !compact {
		col := make([]string, 0, len(labels))
		for i, l := range labels {
			col = append(col, Button(l, i == selected))
		}
		return lipgloss.JoinVertical(lipgloss.Center, col...)
	}
	focused := lipgloss.NewStyle().Bold(true).Foreground(theme.BgDark).Background(theme.Highlight)
	idle := lipgloss.NewStyle().Foreground(theme.Text)
	lines := make([]string, len(labels))
	for i, l := range labels {
		if i == selected {
			lines[i] = focused.Render(" ▸ " + l + " ")
		} else {
			lines[i] = idle.Render("   " + l)
		}
	}
	return strings.Join(lines, "\n")
}

// Tone picks the color of a Notice.
type Tone int

const (
	ToneQuiet Tone = iota
	ToneError
)

// Notice centers a one-line status message a couple of rows below the top
// of a screen body, for loading, empty and error states.
func Notice(tone Tone, width int, text string) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if tone == ToneError {
		style = lipgloss.NewStyle().Foreground(theme.Error)
	}
	return "\n\n" + theme.Centered(style, width, text)
}
