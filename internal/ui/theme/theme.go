// Package theme holds the colours and shared styles of the terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#3B82F6") // blue
	Secondary = lipgloss.Color("#10B981") // emerald, progress fill
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#38BDF8") // sky, counters and badges
	Highlight = lipgloss.Color("#FDE047") // selection

	Text    = lipgloss.Color("#F1F5F9")
	TextDim = lipgloss.Color("#9CA3AF")
	BgDark  = lipgloss.Color("#111827")
	BgCard  = lipgloss.Color("#1F2937")
	Border  = lipgloss.Color("#374151")
)

var (
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// MasteryColor grades a 0-100 mastery score from red to green.
func MasteryColor(pct int) color.Color {
	switch {
	case pct < 40:
		return Error
	case pct < 60:
		return Accent
	case pct < 80:
		return Info
	default:
		return Success
	}
}

// Centered renders s in a full-width line with the given style.
func Centered(style lipgloss.Style, width int, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
