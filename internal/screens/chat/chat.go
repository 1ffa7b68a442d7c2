// Package chat is the tutor conversation screen.
package chat

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/tutor"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

const maxQuestionLen = 500

type answerMsg struct {
	msg *tutor.Message
	err error
}

// ChatScreen shows the transcript above a text input.
type ChatScreen struct {
	deps     *shared.Deps
	conv     *tutor.Conversation
	input    components.TextInput
	viewport viewport.Model
	spinner  spinner.Model

	thinking bool
	errMsg   string
	width    int
	height   int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New opens a conversation with the configured tutor.
func New(deps *shared.Deps) *ChatScreen {
	conv := tutor.NewConversation(deps.Tutor, deps.I18n, deps.Locale)
	conv.Greet(deps.T("tutor.greeting"))
	return &ChatScreen{
		deps:     deps,
		conv:     conv,
		input:    components.NewTextInput(deps.T("tutor.placeholder"), maxQuestionLen),
		viewport: viewport.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
}

// Conversation exposes the transcript.
func (s *ChatScreen) Conversation() *tutor.Conversation {
	return s.conv
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return s.deps.T("tutor.title")
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: s.deps.T("common.back")},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		s.thinking = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.deps.Logger.Warn("tutor answer failed", zap.Error(msg.err))
		}
		s.refresh()
		return s, nil

	case spinner.TickMsg:
		if !s.thinking {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() tea.Cmd {
	text := s.input.Value()
	if text == "" || s.thinking {
		return nil
	}
	s.input.Reset()
	s.errMsg = ""
	s.thinking = true
	s.conv.SetLocale(s.deps.Locale)

	conv := s.conv
	ask := func() tea.Msg {
		m, err := conv.Ask(context.Background(), text)
		return answerMsg{msg: m, err: err}
	}
	return tea.Batch(ask, s.spinner.Tick)
}

func (s *ChatScreen) refresh() {
	s.viewport.SetContent(s.renderTranscript(s.viewport.Width()))
	s.viewport.GotoBottom()
}

func (s *ChatScreen) renderTranscript(width int) string {
	bubble := max(width-6, 20)
	userStyle := lipgloss.NewStyle().Foreground(theme.Text).Background(theme.BgCard).Padding(0, 1).MaxWidth(bubble)
	tutorStyle := lipgloss.NewStyle().Foreground(theme.Text).Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).Padding(0, 1).Width(bubble)
	related := lipgloss.NewStyle().Foreground(theme.Info)

	var b strings.Builder
	for _, m := range s.conv.Messages() {
		if m.Sender == tutor.SenderUser {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, userStyle.Render(m.Text)))
			b.WriteString("\n\n")
			continue
		}
		body := m.Text
		if len(m.Related) > 0 {
			body += "\n\n" + related.Render(s.deps.T("tutor.related")+": "+strings.Join(m.Related, ", "))
		}
		b.WriteString(tutorStyle.Render(body))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	// input line plus status line and spacing
	vh := max(height-4, 3)
	if s.width != cw || s.height != vh {
		s.width, s.height = cw, vh
		s.viewport.SetWidth(cw)
		s.viewport.SetHeight(vh)
		s.input.SetWidth(cw - 4)
	}
	s.viewport.SetContent(s.renderTranscript(cw))
	if s.thinking {
		s.viewport.GotoBottom()
	}

	status := ""
	switch {
	case s.thinking:
		status = s.spinner.View() + " " + theme.Hint.Render(s.deps.T("tutor.thinking"))
	case s.errMsg != "":
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(s.deps.T("common.error", s.errMsg))
	}

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Render(s.input.View())

	content := lipgloss.JoinVertical(lipgloss.Left, s.viewport.View(), status, inputBox)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
