// Package leaderboard ranks the learner against sample classmates.
package leaderboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	board "github.com/studygenie/studygenie/internal/leaderboard"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

type loadedMsg struct {
	self board.Entry
	err  error
}

// LeaderboardScreen lists ranked entries with the learner highlighted.
type LeaderboardScreen struct {
	deps    *shared.Deps
	self    string
	entries []board.Entry
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)

// New creates the leaderboard screen. deps.Tracker must be set.
func New(deps *shared.Deps) *LeaderboardScreen {
	return &LeaderboardScreen{deps: deps, self: deps.Tracker.Learner()}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	tracker := s.deps.Tracker
	return func() tea.Msg {
		e, err := tracker.Entry(context.Background())
		return loadedMsg{self: e, err: err}
	}
}

func (s *LeaderboardScreen) Title() string {
	return s.deps.T("leaderboard.title")
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: s.deps.T("common.back")}}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.entries = board.Board(msg.self)
	}
	return s, nil
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return "  "
}

func (s *LeaderboardScreen) View(width, height int) string {
	d := s.deps
	if s.errMsg != "" {
		return components.Notice(components.ToneError, width, d.T("common.error", s.errMsg))
	}
	if !s.loaded {
		return components.Notice(components.ToneQuiet, width, d.T("common.loading"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + d.T("leaderboard.header")))
	b.WriteString("\n")
	b.WriteString(layout.Divider(56))
	b.WriteString("\n")

	for _, e := range s.entries {
		name := e.Name
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if e.Name == s.self {
			name += " (" + d.T("leaderboard.you") + ")"
			style = style.Foreground(theme.Highlight).Bold(true)
		}
		line := fmt.Sprintf("%s %2d  %-15s %-8s %6d  %4d",
			medal(e.Rank), e.Rank, name, d.T("leaderboard.level", e.Level()), e.XP, e.Streak)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+b.String())
}
