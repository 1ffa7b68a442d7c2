// Package results shows a graded quiz: score, mastery, rating, weak and
// strong areas and a per-question review.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

const (
	actionNewQuiz = iota
	actionRetry
)

// ResultsScreen displays the outcome of a quiz.
type ResultsScreen struct {
	deps     *shared.Deps
	instance *quiz.Instance
	result   quiz.Result
	outcome  *progress.Outcome
	retry    func() screen.Screen

	action    int
	reviewing bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BackHandler = (*ResultsScreen)(nil)

// New creates a results screen. outcome is nil when nothing was saved.
// retry builds the screen that replays the same quiz.
func New(deps *shared.Deps, in *quiz.Instance, res quiz.Result, outcome *progress.Outcome, retry func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		deps:     deps,
		instance: in,
		result:   res,
		outcome:  outcome,
		retry:    retry,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return s.deps.T("results.title")
}

func (s *ResultsScreen) CapturesBack() bool {
	return s.reviewing
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.reviewing {
		return []layout.KeyHint{{Key: "R/Esc", Description: s.deps.T("common.back")}}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: s.deps.T("results.review")},
		{Key: "M", Description: s.deps.T("common.menu")},
		{Key: "Esc", Description: s.deps.T("results.new_quiz")},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.reviewing {
		if key == "r" || key == "esc" {
			s.reviewing = false
		}
		return s, nil
	}

	switch key {
	case "left", "h":
		s.action = actionNewQuiz
	case "right", "l":
		s.action = actionRetry
	case "r":
		s.reviewing = true
	case "m":
		return s, router.PopToRoot
	case "enter":
		if s.action == actionRetry && s.retry != nil {
			return s, router.Replace(s.retry())
		}
		return s, router.Pop
	}
	return s, nil
}

// RatingKey maps a quiz rating to its message key.
func RatingKey(rating string) string {
	return "rating." + strings.ReplaceAll(rating, " ", "_")
}

func (s *ResultsScreen) View(width, height int) string {
	if s.reviewing {
		return s.renderReview(width)
	}

	d := s.deps
	res := s.result
	var b strings.Builder

	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width, d.T("results.title")))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true), width, d.T(RatingKey(res.Rating()))))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("%s        %s        %s",
		d.T("results.score", res.Score, res.Total),
		d.T("results.mastery", res.MasteryLevel),
		d.T("results.xp", res.XP()))
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, stats))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar("", float64(res.MasteryLevel)/100, false, min(width-8, 40)).WithMasteryFill().View()))
	b.WriteString("\n\n")

	if s.outcome != nil && s.outcome.NewCards > 0 {
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Info), width, d.T("flashcards.added", s.outcome.NewCards)))
		b.WriteString("\n\n")
	}

	b.WriteString(renderAreas(width, d.T("results.weak"), res.WeakAreas, lipgloss.NewStyle().Foreground(theme.Error)))
	b.WriteString(renderAreas(width, d.T("results.strong"), res.StrongAreas, lipgloss.NewStyle().Foreground(theme.Success)))

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ButtonRow([]string{d.T("results.new_quiz"), d.T("results.retry")}, s.action)))
	return b.String()
}

func renderAreas(width int, title string, areas []string, style lipgloss.Style) string {
	if len(areas) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, title))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n")
	b.WriteString(theme.Centered(style, width, strings.Join(areas, ", ")))
	b.WriteString("\n\n")
	return b.String()
}

func (s *ResultsScreen) renderReview(width int) string {
	d := s.deps
	var b strings.Builder
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), width, d.T("results.review")))
	b.WriteString("\n\n")

	for i, q := range s.instance.Questions {
		mark, style := "✗", theme.Incorrect
		chosen := d.T("results.skipped")
		if i < len(s.result.Answers) {
			a := s.result.Answers[i]
			if a.SelectedOption >= 0 && a.SelectedOption < len(q.Options) {
				chosen = q.Options[a.SelectedOption]
			}
			if a.Correct {
				mark, style = "✓", theme.Correct
			}
		}

		b.WriteString(style.Render(fmt.Sprintf("  %s %d. ", mark, i+1)))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(q.Prompt))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			"       " + d.T("results.your_answer", chosen) + "   " + d.T("results.answer", q.CorrectOption())))
		b.WriteString("\n")
	}
	return b.String()
}
