// Package app hosts the root Bubble Tea model: the screen router plus the
// header and footer around it.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/home"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/layout"
)

type statsLoadedMsg struct {
	stats layout.Stats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *shared.Deps
	router *router.Router
	stats  layout.Stats
	width  int
	height int
}

// NewAppModel creates an AppModel showing the home screen.
func NewAppModel(deps *shared.Deps) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(home.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStats())
}

// loadStats reads the header numbers from the tracker off the UI loop.
func (m AppModel) loadStats() tea.Cmd {
	tracker := m.deps.Tracker
	if tracker == nil {
		return nil
	}
	now := m.deps.Clock()
	return func() tea.Msg {
		var st layout.Stats
		entry, err := tracker.Entry(context.Background())
		if err != nil {
			m.deps.Logger.Warn("load header stats", zap.Error(err))
		}
		st.XP = entry.XP
		st.Level = entry.Level()
		st.Streak = entry.Streak
		st.Due = len(tracker.Deck().Due(now))
		return statsLoadedMsg{stats: st}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case statsLoadedMsg:
		m.stats = msg.stats
		return m, nil
	case shared.StatsChangedMsg:
		return m, m.loadStats()
	case tea.KeyMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles the keys every screen shares. Esc goes back unless the
// active screen wants it.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.CapturesBack() {
			return nil, false
		}
		if m.router.Depth() == 1 {
			return nil, true
		}
		return router.Pop, true
	}
	return nil, false
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch p, ok := m.router.Active().(screen.KeyHintProvider); {
	case ok:
		hints = p.KeyHints()
	case m.router.Depth() > 1:
		hints = []layout.KeyHint{{Key: "Esc", Description: m.deps.T("common.back")}}
	default:
		hints = []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}}
	}
	for _, h := range hints {
		if h.Key == quitHint.Key {
			return hints
		}
	}
	return append(hints, quitHint)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	switch {
	case m.width == 0 || m.height == 0:
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		v.SetContent(m.frame())
	}
	return v
}

func (m AppModel) frame() string {
	header := layout.RenderHeader(m.router.Breadcrumb(" › "), m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, bodyHeight), footer, m.width, m.height)
}

// Run starts the program and blocks until the user quits.
func Run(deps *shared.Deps) error {
	if _, err := tea.NewProgram(NewAppModel(deps)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
