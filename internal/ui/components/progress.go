package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/ui/theme"
)

// ProgressBar is a one-line bar with an optional label and percentage.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1
	ShowPercent bool
	Width       int
	Fill        color.Color // defaults to theme.Secondary
}

// NewProgressBar returns a bar Width columns wide in total.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// WithMasteryFill colours the bar by the mastery it shows.
func (p ProgressBar) WithMasteryFill() ProgressBar {
	p.Fill = theme.MasteryColor(int(p.Percent * 100))
	return p
}

func (p ProgressBar) View() string {
	var prefix, suffix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %4d%%", int(p.Percent*100)))
	}

	cells := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	done := min(max(int(float64(cells)*p.Percent+0.5), 0), cells)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", done)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-done))
	return prefix + bar + suffix
}
