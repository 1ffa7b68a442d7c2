// Package review walks the flashcards that are due today.
package review

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/flashcards"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/results"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

type savedMsg struct{ err error }

// ReviewScreen shows one card at a time. Space flips it, then the learner
// says whether they knew it.
type ReviewScreen struct {
	deps    *shared.Deps
	session *flashcards.ReviewSession
	saved   bool
	errMsg  string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New starts a session over the cards due now. deps.Tracker must be set.
func New(deps *shared.Deps) *ReviewScreen {
	s := &ReviewScreen{deps: deps}
	s.reload()
	return s
}

func (s *ReviewScreen) reload() {
	deck := s.deps.Tracker.Deck()
	s.session = flashcards.NewReviewSession(deck, deck.Due(s.deps.Clock()))
	s.saved = false
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return s.deps.T("flashcards.title")
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.session.Done():
		return []layout.KeyHint{
			{Key: "R", Description: "Again"},
			{Key: "Esc", Description: s.deps.T("common.back")},
		}
	case s.session.Flipped():
		return []layout.KeyHint{
			{Key: "Y/→", Description: s.deps.T("flashcards.knew")},
			{Key: "N/←", Description: s.deps.T("flashcards.missed")},
			{Key: "Space", Description: "Flip"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "Esc", Description: s.deps.T("common.back")},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saved = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		return s, shared.StatsChanged
	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *ReviewScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.session.Done() {
		if key == "r" {
			s.reload()
		}
		return s, nil
	}

	switch key {
	case "space", " ", "enter":
		s.session.Flip()
		return s, nil
	}
	if !s.session.Flipped() {
		return s, nil
	}

	var knew bool
	switch key {
	case "y", "right", "l":
		knew = true
	case "n", "left", "h":
		knew = false
	default:
		return s, nil
	}
	if err := s.session.Mark(context.Background(), knew, s.deps.Clock()); err != nil {
		s.deps.Logger.Warn("record flashcard review", zap.Error(err))
	}
	if s.session.Done() {
		return s, s.save()
	}
	return s, nil
}

func (s *ReviewScreen) save() tea.Cmd {
	tracker, now := s.deps.Tracker, s.deps.Clock()
	return func() tea.Msg {
		return savedMsg{err: tracker.Save(context.Background(), now)}
	}
}

func (s *ReviewScreen) View(width, height int) string {
	d := s.deps
	cw := components.ContentWidth(width)

	if s.session.Len() == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(d.T("flashcards.none_due")))
	}
	if s.session.Done() {
		return s.renderDone(width, height)
	}

	c := s.session.Current()
	var b strings.Builder
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		d.T("flashcards.card_of", s.session.Index()+1, s.session.Len())+"  ·  "+c.Subject+" · "+c.Topic))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar("", float64(s.session.Index())/float64(s.session.Len()), false, min(cw, 40)).View()))
	b.WriteString("\n\n")

	face := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Front)
	if s.session.Flipped() {
		face = lipgloss.NewStyle().Foreground(theme.Highlight).Render(c.Back)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(face, min(cw, 60))))
	b.WriteString("\n\n")

	if s.session.Flipped() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Button(d.T("flashcards.missed"), false)+"  "+components.Button(d.T("flashcards.knew"), true)))
	} else {
		b.WriteString(theme.Centered(theme.Hint, width, d.T("flashcards.flip")))
	}
	return b.String()
}

func (s *ReviewScreen) renderDone(width, height int) string {
	d := s.deps
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).
		Render(d.T(results.RatingKey(s.session.Rating()))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(d.T("flashcards.session_done", s.session.Len(), s.session.Accuracy())))
	if !s.saved {
		b.WriteString("\n\n" + theme.Hint.Render(d.T("quiz.saving")))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(d.T("common.error", s.errMsg)))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()))
}
