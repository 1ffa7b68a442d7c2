// Package plan shows topic mastery, recommendations and goals, and times
// study sessions.
package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/planner"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

const (
	recommendationsShown = 5
	defaultFocus         = 7
)

type tickMsg time.Time

type savedMsg struct{ err error }

// PlanScreen is the study planner.
type PlanScreen struct {
	deps     *shared.Deps
	selected int
	focus    int
	errMsg   string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates the planner screen. deps.Tracker must be set.
func New(deps *shared.Deps) *PlanScreen {
	return &PlanScreen{deps: deps, focus: defaultFocus}
}

func (s *PlanScreen) planner() *planner.Planner {
	return s.deps.Tracker.Planner()
}

func (s *PlanScreen) Init() tea.Cmd {
	if _, ok := s.planner().Active(); ok {
		return tick()
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (s *PlanScreen) Title() string {
	return s.deps.T("planner.title")
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	if _, ok := s.planner().Active(); ok {
		return []layout.KeyHint{
			{Key: "S", Description: "Stop"},
			{Key: "+/-", Description: "Focus"},
			{Key: "Esc", Description: s.deps.T("common.back")},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Topic"},
		{Key: "S", Description: "Study"},
		{Key: "Esc", Description: s.deps.T("common.back")},
	}
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if _, ok := s.planner().Active(); ok {
			return s, tick()
		}
		return s, nil
	case savedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		return s, shared.StatsChanged
	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *PlanScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	p := s.planner()
	recs := p.Recommendations(recommendationsShown)
	_, running := p.Active()

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(recs)-1 {
			s.selected++
		}
	case "+", "=":
		s.focus = min(s.focus+1, 10)
	case "-":
		s.focus = max(s.focus-1, 1)
	case "s":
		if running {
			return s, s.stop()
		}
		topic := ""
		if s.selected < len(recs) {
			topic = recs[s.selected].Topic
		}
		if _, err := p.StartSession("", topic, planner.KindStudy, s.deps.Clock()); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, tick()
	}
	return s, nil
}

func (s *PlanScreen) stop() tea.Cmd {
	now := s.deps.Clock()
	sess, err := s.planner().EndSession(s.focus, now)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.deps.Logger.Info("study session finished",
		zap.String("topic", sess.Topic), zap.Duration("duration", sess.Duration), zap.Int("focus", sess.Focus))

	tracker := s.deps.Tracker
	return func() tea.Msg {
		return savedMsg{err: tracker.Save(context.Background(), now)}
	}
}

func (s *PlanScreen) View(width, height int) string {
	d := s.deps
	p := s.planner()
	cw := min(components.ContentWidth(width), 72)
	now := d.Clock()

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	text := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder

	if sess, ok := p.Active(); ok {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(
			d.T("planner.session_running", sess.Topic, planner.FormatDuration(p.Elapsed(now)))))
		b.WriteString("   " + dim.Render(d.T("planner.focus", s.focus)))
		b.WriteString("\n\n")
	}

	b.WriteString(heading.Render(d.T("planner.recommend")))
	b.WriteString("\n")
	recs := p.Recommendations(recommendationsShown)
	if len(recs) == 0 {
		b.WriteString(dim.Render("  " + d.T("planner.no_topics")))
		b.WriteString("\n")
	}
	for i, tm := range recs {
		prefix, style := "  ", text
		if i == s.selected {
			prefix, style = "> ", text.Foreground(theme.Primary).Bold(true)
		}
		label := fmt.Sprintf("%s%s · %s", prefix, tm.Subject, tm.Topic)
		bar := components.NewProgressBar("", float64(tm.Mastery)/100, true, 20).WithMasteryFill().View()
		b.WriteString(style.Render(fmt.Sprintf("%-36s", label)) + " " + bar + "  " +
			weaknessStyle(tm.Weakness()).Render(string(tm.Weakness())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(heading.Render(d.T("planner.goals")))
	b.WriteString("\n")
	goals := p.Goals()
	if len(goals) == 0 {
		b.WriteString(dim.Render("  " + d.T("planner.no_goals")))
		b.WriteString("\n")
	}
	for _, g := range goals {
		line := fmt.Sprintf("  %-28s %5.1f/%-5.1fh  %s  %dd", g.Title, g.CompletedHours, g.TotalHours, g.Status, g.DaysLeft(now))
		b.WriteString(text.Render(line))
		b.WriteString("\n")
		b.WriteString("  " + components.NewProgressBar("", g.Progress()/100, true, 30).View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(dim.Render(d.T("planner.study_time", planner.FormatDuration(p.TotalStudyTime()))))
	if s.errMsg != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(d.T("common.error", s.errMsg)))
	}

	block := lipgloss.NewStyle().Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+block)
}

func weaknessStyle(w planner.Weakness) lipgloss.Style {
	switch w {
	case planner.WeaknessHigh:
		return lipgloss.NewStyle().Foreground(theme.Error)
	case planner.WeaknessMedium:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	case planner.WeaknessLow:
		return lipgloss.NewStyle().Foreground(theme.Info)
	default:
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
}
