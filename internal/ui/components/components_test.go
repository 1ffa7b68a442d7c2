package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_Keys(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.KeyPressMsg
		chosen int
	}{
		{"number", []tea.KeyPressMsg{key('3')}, 2},
		{"letter", []tea.KeyPressMsg{key('b')}, 1},
		{"arrows", []tea.KeyPressMsg{{Code: tea.KeyDown}, {Code: tea.KeyDown}, {Code: tea.KeyUp}, {Code: tea.KeyEnter}}, 1},
		{"clamped", []tea.KeyPressMsg{{Code: tea.KeyUp}, {Code: tea.KeyEnter}}, 0},
		{"skip", []tea.KeyPressMsg{key('s')}, NoChoice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMultiChoice([]string{"a", "b", "c"}, 1)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			require.True(t, m.Submitted)
			assert.Equal(t, tt.chosen, m.ChosenIndex)
			assert.Equal(t, tt.chosen == NoChoice, m.Skipped())
		})
	}
}

func TestMultiChoice_IgnoresOutOfRangeAndLateKeys(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"}, 0)
	m, _ = m.Update(key('4'))
	m, _ = m.Update(key('d'))
	assert.False(t, m.Submitted)

	m, _ = m.Update(key('2'))
	m, _ = m.Update(key('1'))
	assert.Equal(t, 1, m.ChosenIndex, "answer is locked once submitted")
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice([]string{"Joule", "Watt"}, 0)
	view := m.View()
	assert.Contains(t, view, "▸ A)  Joule")
	assert.Contains(t, view, "B)  Watt")
}

func TestMenu(t *testing.T) {
	var picked string
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd { picked = name; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Quiz", Shortcut: "1", Action: pick("quiz")},
		{Label: "Tutor", Shortcut: "2", Action: pick("tutor")},
		{Label: "Quit"},
	})
	assert.Equal(t, []string{"Quiz", "Tutor", "Quit"}, m.Labels())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, m.Selected, "wraps to the end")
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Empty(t, picked, "items without an action do nothing")

	m, _ = m.Update(key('2'))
	assert.Equal(t, "tutor", picked)
	assert.Equal(t, 1, m.Selected)
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar("", 0.5, false, 10).View()
	assert.Equal(t, 10, lipgloss.Width(bar))
	assert.Equal(t, 5, strings.Count(bar, "█"))

	labelled := NewProgressBar("Optics", 1.2, true, 30).WithMasteryFill().View()
	assert.Equal(t, 30, lipgloss.Width(labelled))
	assert.Contains(t, labelled, "120%")
	assert.NotContains(t, labelled, "░", "overflow is clamped to full")
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 54, ContentWidth(60))
	assert.Equal(t, 60, ContentWidth(200))
}
