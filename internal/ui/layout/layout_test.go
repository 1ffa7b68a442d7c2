package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestEllipsize(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Results", 10, "Results"},
		{"New quiz › Results", 9, "New quiz…"},
		{"Résumé", 4, "Rés…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		got := Ellipsize(tt.in, tt.width)
		assert.Equal(t, tt.want, got)
		assert.LessOrEqual(t, lipgloss.Width(got), max(tt.width, 0))
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("New quiz › Results", Stats{XP: 120, Level: 2, Streak: 3, Due: 4}, 100)
	assert.Equal(t, 100, lipgloss.Width(h))
	assert.Equal(t, 3, lipgloss.Height(h))
	for _, want := range []string{"StudyGenie", "New quiz › Results", "Lv 2  120 XP", "★ 3 day", "⚡ 4 due"} {
		assert.Contains(t, h, want)
	}

	noDue := RenderHeader("Home", Stats{}, 80)
	assert.NotContains(t, noDue, "due")
}

func TestRenderHeader_LongTitleIsCut(t *testing.T) {
	title := strings.Repeat("very long title ", 10)
	h := RenderHeader(title, Stats{}, MinWidth)
	assert.Equal(t, 3, lipgloss.Height(h))
	assert.Contains(t, h, "…")
}

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: strings.Repeat("x", 200)},
	}
	f := RenderFooter(hints, 80)
	assert.Equal(t, 3, lipgloss.Height(f))
	for _, want := range []string{"Enter", "Select", "Esc", "Back"} {
		assert.Contains(t, f, want)
	}
	assert.NotContains(t, f, "Ctrl+C")
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", Stats{}, 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.Contains(t, frame, "body")
}

func TestSizes(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.False(t, IsTooSmall(80, 24))
	assert.True(t, IsCompact(90, 40))
	assert.False(t, IsCompact(120, 40))
	assert.Contains(t, RenderMinSizeMessage(60, 20), "60 x 20")
}
