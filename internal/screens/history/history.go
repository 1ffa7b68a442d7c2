// Package history lists past quiz attempts and their answers.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/planner"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/store"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

const attemptsShown = 50

type attemptsMsg struct {
	attempts []store.QuizAttemptRecord
	err      error
}

type answersMsg struct {
	attemptID string
	answers   []store.AnswerEventRecord
	err       error
}

// HistoryScreen shows the newest attempts first. Enter opens or closes an
// attempt; its answers are fetched the first time it is opened.
type HistoryScreen struct {
	deps     *shared.Deps
	attempts []store.QuizAttemptRecord
	answers  map[string][]store.AnswerEventRecord
	open     map[string]bool
	cursor   int
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New returns the screen. deps.Tracker must be set.
func New(deps *shared.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:    deps,
		answers: make(map[string][]store.AnswerEventRecord),
		open:    make(map[string]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.deps.Tracker.Events()
	return func() tea.Msg {
		attempts, err := events.QueryAttempts(context.Background(), store.QueryOpts{Limit: attemptsShown})
		return attemptsMsg{attempts: attempts, err: err}
	}
}

func (s *HistoryScreen) fetchAnswers(id string) tea.Cmd {
	events := s.deps.Tracker.Events()
	return func() tea.Msg {
		answers, err := events.AttemptAnswers(context.Background(), id)
		return answersMsg{attemptID: id, answers: answers, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return s.deps.T("history.title")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Answers"},
		{Key: "Esc", Description: s.deps.T("common.back")},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsMsg:
		s.loaded = true
		s.attempts, s.err = msg.attempts, msg.err
	case answersMsg:
		if msg.err != nil {
			s.err = msg.err
			break
		}
		s.answers[msg.attemptID] = msg.answers
	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	if len(s.attempts) == 0 {
		return nil
	}
	switch key {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(s.attempts)-1)
	case "enter", "space":
		id := s.attempts[s.cursor].ID
		s.open[id] = !s.open[id]
		if _, cached := s.answers[id]; s.open[id] && !cached {
			return s.fetchAnswers(id)
		}
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	d := s.deps
	switch {
	case s.err != nil:
		return components.Notice(components.ToneError, width, d.T("common.error", s.err.Error()))
	case !s.loaded:
		return components.Notice(components.ToneQuiet, width, d.T("common.loading"))
	case len(s.attempts) == 0:
		return components.Notice(components.ToneQuiet, width, d.T("history.empty"))
	}

	rows := []string{""}
	for i, a := range s.attempts {
		rows = append(rows, s.attemptRow(a, i == s.cursor))
		if s.open[a.ID] {
			rows = append(rows, s.answerRows(a.ID)...)
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n"))
}

func (s *HistoryScreen) attemptRow(a store.QuizAttemptRecord, current bool) string {
	line := fmt.Sprintf("%s  %-8s %6s  %2d/%-2d %3d%%  +%d XP  %s",
		a.Timestamp.Local().Format("Jan 02 15:04"), a.Difficulty,
		planner.FormatDuration(a.Duration), a.Score, a.Total, a.Mastery, a.XP,
		strings.Join(a.Topics, ", "))
	if current {
		return theme.Selected.Render("▸ " + line)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line)
}

func (s *HistoryScreen) answerRows(id string) []string {
	answers, ok := s.answers[id]
	switch {
	case !ok:
		return []string{theme.Hint.Render("    " + s.deps.T("common.loading"))}
	case len(answers) == 0:
		return []string{theme.Hint.Render("    " + s.deps.T("history.no_answers"))}
	}
	rows := make([]string, 0, len(answers))
	for _, ans := range answers {
		style, mark := theme.Incorrect, "✗"
		if ans.Correct {
			style, mark = theme.Correct, "✓"
		}
		rows = append(rows, style.Render(fmt.Sprintf("    %s %d. %s · %s (%s)",
			mark, ans.Position+1, ans.Subject, ans.Topic, ans.Difficulty)))
	}
	return rows
}
