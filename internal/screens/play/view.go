package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/planner"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return s.renderWaiting(width, s.deps.T("quiz.generating"))
	case phaseSaving:
		return s.renderWaiting(width, s.deps.T("quiz.saving"))
	case phaseError:
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"\n\n\n"+s.deps.T("common.error", s.errMsg)+"\n\nPress any key to go back.")
	}
	if s.confirmQuit {
		return s.renderQuitConfirm(width)
	}
	return s.renderQuestion(width)
}

func (s *PlayScreen) renderWaiting(width int, text string) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		"\n\n\n"+s.spinner.View()+" "+text)
}

func (s *PlayScreen) renderQuestion(width int) string {
	d := s.deps
	q := s.session.Current()
	if s.phase == phaseFeedback {
		// The answered question is the previous one.
		q = &s.session.Instance().Questions[s.session.Index()-1]
	}
	if q == nil {
		return ""
	}

	var b strings.Builder

	// Info line: subject and topic on the left, counters on the right.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Subject, q.Topic))

	right := []string{
		d.T("quiz.question_of", s.position(), s.session.Instance().Len()),
		lipgloss.NewStyle().Foreground(theme.Success).Render(d.T("quiz.streak", s.session.Streak())),
	}
	if left, timed := s.session.Remaining(s.elapsed); timed {
		right = append(right, lipgloss.NewStyle().Foreground(theme.Accent).Render(
			d.T("quiz.time_left", planner.FormatDuration(left))))
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(right, "  "))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine + "\n")
	b.WriteString(components.NewProgressBar("", s.session.Progress(), true, width-4).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.phase == phaseFeedback {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width, q.CorrectOption(), q.Explanation))
	}
	return b.String()
}

// position is the 1-based number of the question on screen.
func (s *PlayScreen) position() int {
	if s.phase == phaseFeedback {
		return s.session.Index()
	}
	return s.session.Index() + 1
}

func (s *PlayScreen) renderFeedback(width int, answer, explanation string) string {
	d := s.deps
	var b strings.Builder
	if s.lastCorrect {
		b.WriteString(theme.Centered(theme.Correct, width, d.T("quiz.correct")))
	} else {
		b.WriteString(theme.Centered(theme.Incorrect, width, d.T("quiz.incorrect", answer)))
	}
	b.WriteString("\n\n")

	if explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, d.T("quiz.continue")))
	return b.String()
}

func (s *PlayScreen) renderQuitConfirm(width int) string {
	d := s.deps
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, d.T("quiz.quit_title")))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, d.T("quiz.quit_hint")))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, d.T("quiz.quit_yes")))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, d.T("quiz.quit_no")))
	return b.String()
}
