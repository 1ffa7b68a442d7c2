package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/ui/theme"
)

// NoChoice marks a skipped question.
const NoChoice = -1

// MultiChoice picks one option. Options are labelled A, B, C... and can be
// chosen with the arrows and Enter, a letter, or a number. "s" skips.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int

	// Reveal colours the correct and chosen options after submission.
	Reveal bool
}

// NewMultiChoice returns a selector that reveals the answer once submitted.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  NoChoice,
		Reveal:       true,
	}
}

// OptionLabel is the letter shown before option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Submitted {
		return m, nil
	}
	n := len(m.Options)
	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = max(m.Selected-1, 0)
	case "down", "j":
		m.Selected = min(m.Selected+1, n-1)
	case "enter":
		m.choose(m.Selected)
	case "s":
		m.choose(NoChoice)
	default:
		if i, ok := optionKey(key); ok && i < n {
			m.choose(i)
		}
	}
	return m, nil
}

// optionKey maps "1".."9" and "a".."i" to an option index.
func optionKey(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	}
	return 0, false
}

func (m *MultiChoice) choose(i int) {
	if i != NoChoice {
		m.Selected = i
	}
	m.ChosenIndex = i
	m.Submitted = true
}

// Skipped reports whether the question was submitted without an answer.
func (m MultiChoice) Skipped() bool {
	return m.Submitted && m.ChosenIndex == NoChoice
}

func (m MultiChoice) View() string {
	lines := make([]string, len(m.Options))
	for i, opt := range m.Options {
		marker := "  "
		if i == m.Selected && !m.Submitted {
			marker = "▸ "
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && m.Reveal && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && m.Reveal && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Selected
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		lines[i] = style.Render(marker + OptionLabel(i) + ")  " + opt)
	}
	return strings.Join(lines, "\n") + "\n"
}
