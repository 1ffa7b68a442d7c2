package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/chat"
	"github.com/studygenie/studygenie/internal/screens/history"
	"github.com/studygenie/studygenie/internal/screens/leaderboard"
	"github.com/studygenie/studygenie/internal/screens/placeholder"
	"github.com/studygenie/studygenie/internal/screens/plan"
	"github.com/studygenie/studygenie/internal/screens/quizsetup"
	"github.com/studygenie/studygenie/internal/screens/review"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

const banner = `┌─┐┌┬┐┬ ┬┌┬┐┬ ┬  ┌─┐┌─┐┌┐┌┬┌─┐
└─┐ │ │ │ ││└┬┘  │ ┬├┤ │││├┤ 
└─┘ ┴ └─┘─┴┘ ┴   └─┘└─┘┘└┘┴└─┘`

// HomeScreen is the main menu.
type HomeScreen struct {
	deps *shared.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *shared.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

// items is rebuilt after a locale switch so labels follow the language.
func (h *HomeScreen) items() []components.MenuItem {
	d := h.deps
	needsStore := func(title string, build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			if d.Tracker == nil {
				return router.Push(placeholder.New(d, title))
			}
			return router.Push(build())
		}
	}
	return []components.MenuItem{
		{Label: d.T("home.quiz"), Shortcut: "1", Action: func() tea.Cmd {
			return router.Push(quizsetup.New(d))
		}},
		{Label: d.T("home.flashcards"), Shortcut: "2", Action: needsStore(d.T("flashcards.title"), func() screen.Screen {
			return review.New(d)
		})},
		{Label: d.T("home.planner"), Shortcut: "3", Action: needsStore(d.T("planner.title"), func() screen.Screen {
			return plan.New(d)
		})},
		{Label: d.T("home.tutor"), Shortcut: "4", Action: func() tea.Cmd {
			return router.Push(chat.New(d))
		}},
		{Label: d.T("home.leaderboard"), Shortcut: "5", Action: needsStore(d.T("leaderboard.title"), func() screen.Screen {
			return leaderboard.New(d)
		})},
		{Label: d.T("home.history"), Shortcut: "6", Action: needsStore(d.T("history.title"), func() screen.Screen {
			return history.New(d)
		})},
		{Label: d.T("home.quit"), Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return h.deps.T("app.tagline")
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-6", Description: "Jump"},
		{Key: "L", Description: h.deps.T("home.language", h.deps.I18n.Name(h.deps.Locale))},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "l" {
		h.deps.NextLocale()
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	var sections []string
	title := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	if compact {
		sections = append(sections, title.Render(h.deps.T("app.title")))
	} else {
		sections = append(sections, title.Render(banner))
	}
	sections = append(sections, h.renderStats(cw))
	sections = append(sections, h.menu.View(compact))

	return components.Panel(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(cw int) string {
	d := h.deps
	parts := []string{
		lipgloss.NewStyle().Foreground(theme.Info).Bold(true).Render(d.T("home.language", d.I18n.Name(d.Locale))),
	}
	if d.Tracker != nil {
		due := len(d.Tracker.Deck().Due(d.Clock()))
		topics := len(d.Tracker.Planner().Topics())
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(d.T("home.cards_due", due)),
			lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(d.T("home.topics", topics)),
		)
	}
	if subjects := d.Subjects(context.Background()); len(subjects) > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d subjects", len(subjects))))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}
