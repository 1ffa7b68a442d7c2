package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

// PlaceholderScreen is opened instead of a screen whose dependencies are
// missing, such as the store-backed screens when no database is open.
type PlaceholderScreen struct {
	deps  *shared.Deps
	title string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title.
func New(deps *shared.Deps, title string) *PlaceholderScreen {
	return &PlaceholderScreen{deps: deps, title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(min(width, 60)).Align(lipgloss.Center)
	msg := lipgloss.JoinVertical(lipgloss.Center,
		theme.Selected.Render(p.deps.T("placeholder.title")), "", body.Render(p.deps.T("placeholder.body")))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
