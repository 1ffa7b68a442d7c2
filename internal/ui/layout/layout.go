// Package layout draws the chrome around the active screen: the header
// with learner stats, the key hint footer and the size guard.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/ui/theme"
)

// Terminal sizes below the minimum get a resize prompt instead of the app.
const (
	MinWidth  = 80
	MinHeight = 24
)

// Content areas narrower or shorter than these drop decorations such as
// the home banner.
const (
	compactWidth  = 100
	compactHeight = 22
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Stats is the learner summary shown on the right of the header.
type Stats struct {
	XP     int
	Level  int
	Streak int
	Due    int
}

// IsCompact reports whether a content area is too small for decorations.
func IsCompact(width, height int) bool {
	return width < compactWidth || height < compactHeight
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nResize to at least %d x %d\n(now %d x %d)",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

func statsLine(st Stats) string {
	accent := lipgloss.NewStyle().Foreground(theme.Accent)
	parts := []string{
		accent.Render(fmt.Sprintf("Lv %d  %d XP", st.Level, st.XP)),
		accent.Render(fmt.Sprintf("★ %d day", st.Streak)),
	}
	if st.Due > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Info).Render(fmt.Sprintf("⚡ %d due", st.Due)))
	}
	return strings.Join(parts, "   ")
}

// RenderHeader draws the app name, the title and the stats. The title
// takes the space between the other two and is cut with an ellipsis when
// it does not fit.
func RenderHeader(title string, st Stats, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  StudyGenie")
	right := statsLine(st) + " "

	middle := max(inner-lipgloss.Width(name)-lipgloss.Width(right), 0)
	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(middle).
		Align(lipgloss.Center).
		Render(Ellipsize(title, middle-2))

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, name, center, right))
}

// RenderFooter draws as many key hints as fit on one line, in order.
func RenderFooter(hints []KeyHint, width int) string {
	room := max(width-bar.GetHorizontalFrameSize()-2, 0)
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + "   " + part
		}
		if lipgloss.Width(next) > room {
			break
		}
		line = next
	}
	return bar.Width(width).Render("  " + line)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Divider renders a centered horizontal rule at most 60 cells wide.
func Divider(width int) string {
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(max(width-8, 0), 60)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, rule)
}

// Ellipsize shortens s to at most width cells, ending in "…" when cut.
func Ellipsize(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
