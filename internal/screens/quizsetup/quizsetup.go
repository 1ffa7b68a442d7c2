// Package quizsetup lets the learner pick difficulty, length, subjects,
// time limit and focus before a quiz.
package quizsetup

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/play"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

const maxQuestions = 50

type field int

const (
	fieldDifficulty field = iota
	fieldCount
	fieldSubjects
	fieldTimeLimit
	fieldFocus
	fieldStart
)

var (
	difficulties = []quiz.Difficulty{quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard, quiz.DifficultyAdaptive}
	focusModes   = []quiz.FocusMode{quiz.FocusLearning, quiz.FocusReview, quiz.FocusTest}
	timeLimits   = []time.Duration{0, 5 * time.Minute, 10 * time.Minute, 15 * time.Minute, 30 * time.Minute}
)

type subjectsLoadedMsg struct {
	Subjects []string
}

// SetupScreen is the quiz configuration form.
type SetupScreen struct {
	deps *shared.Deps
	cfg  quiz.Config

	subjects []string
	picked   map[string]bool
	subject  int // cursor within the subjects row

	focus  field
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen seeded with the configured defaults.
func New(deps *shared.Deps) *SetupScreen {
	cfg := deps.Defaults
	if cfg.QuestionCount < 1 {
		cfg.QuestionCount = quiz.DefaultConfig().QuestionCount
	}
	if cfg.FocusMode == "" {
		cfg.FocusMode = quiz.FocusLearning
	}
	return &SetupScreen{
		deps:   deps,
		cfg:    cfg,
		picked: make(map[string]bool),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		return subjectsLoadedMsg{Subjects: deps.Subjects(context.Background())}
	}
}

func (s *SetupScreen) Title() string {
	return s.deps.T("setup.title")
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: s.deps.T("setup.start")},
		{Key: "Esc", Description: s.deps.T("common.back")},
	}
}

// Config returns the quiz the form currently describes.
func (s *SetupScreen) Config() quiz.Config {
	cfg := s.cfg
	cfg.Topics = nil
	for _, subj := range s.subjects {
		if s.picked[subj] {
			cfg.Topics = append(cfg.Topics, subj)
		}
	}
	return cfg
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case subjectsLoadedMsg:
		s.subjects = msg.Subjects
		for _, t := range s.cfg.Topics {
			if i := slices.IndexFunc(s.subjects, func(x string) bool { return strings.EqualFold(x, t) }); i >= 0 {
				s.picked[s.subjects[i]] = true
			}
		}
		if len(s.picked) == 0 {
			for _, subj := range s.subjects {
				s.picked[subj] = true
			}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *SetupScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	s.errMsg = ""
	switch key {
	case "up", "k":
		if s.focus > fieldDifficulty {
			s.focus--
		}
	case "down", "j", "tab":
		if s.focus < fieldStart {
			s.focus++
		}
	case "left", "h":
		s.change(-1)
	case "right", "l":
		s.change(1)
	case "space", " ":
		if s.focus == fieldSubjects && len(s.subjects) > 0 {
			subj := s.subjects[s.subject]
			s.picked[subj] = !s.picked[subj]
		}
	case "enter":
		return s.start()
	}
	return s, nil
}

func (s *SetupScreen) change(delta int) {
	switch s.focus {
	case fieldDifficulty:
		s.cfg.Difficulty = cycle(difficulties, s.cfg.Difficulty, delta)
	case fieldCount:
		s.cfg.QuestionCount = min(max(s.cfg.QuestionCount+delta, 1), maxQuestions)
	case fieldSubjects:
		if n := len(s.subjects); n > 0 {
			s.subject = (s.subject + delta + n) % n
		}
	case fieldTimeLimit:
		s.cfg.TimeLimit = cycle(timeLimits, s.cfg.TimeLimit, delta)
	case fieldFocus:
		s.cfg.FocusMode = cycle(focusModes, s.cfg.FocusMode, delta)
	}
}

func cycle[T comparable](values []T, cur T, delta int) T {
	i := slices.Index(values, cur)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[(i+delta+n)%n]
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	cfg := s.Config()
	if len(cfg.Topics) == 0 {
		s.errMsg = s.deps.T("setup.no_subjects")
		return s, nil
	}
	return s, router.Push(play.New(s.deps, cfg))
}

func (s *SetupScreen) View(width, height int) string {
	d := s.deps
	cw := components.ContentWidth(width)

	rows := []struct {
		f     field
		label string
		value string
	}{
		{fieldDifficulty, d.T("setup.difficulty"), string(s.cfg.Difficulty)},
		{fieldCount, d.T("setup.count"), fmt.Sprintf("%d", s.cfg.QuestionCount)},
		{fieldSubjects, d.T("setup.subjects"), s.renderSubjects()},
		{fieldTimeLimit, d.T("setup.time_limit"), s.timeLimitLabel()},
		{fieldFocus, d.T("setup.focus"), string(s.cfg.FocusMode)},
	}

	var b strings.Builder
	for _, r := range rows {
		label := lipgloss.NewStyle().Width(16).Foreground(theme.TextDim).Render(r.label)
		value := r.value
		if r.f == s.focus {
			label = lipgloss.NewStyle().Width(16).Inherit(theme.Selected).Render("▸ " + r.label)
			if r.f != fieldSubjects {
				value = theme.Selected.Render("◂ " + value + " ▸")
			}
		}
		b.WriteString(label + "  " + value + "\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, components.Button(d.T("setup.start"), s.focus == fieldStart)))

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.errMsg))
	}
	b.WriteString("\n\n" + theme.Hint.Render(d.T("setup.hint")))

	return components.Panel(components.Card(b.String(), cw), width, height)
}

func (s *SetupScreen) renderSubjects() string {
	if len(s.subjects) == 0 {
		return theme.Hint.Render(s.deps.T("common.loading"))
	}
	parts := make([]string, len(s.subjects))
	for i, subj := range s.subjects {
		box := "[ ]"
		if s.picked[subj] {
			box = "[x]"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.focus == fieldSubjects && i == s.subject {
			style = theme.Selected
		}
		parts[i] = style.Render(box + " " + subj)
	}
	return strings.Join(parts, "  ")
}

func (s *SetupScreen) timeLimitLabel() string {
	if s.cfg.TimeLimit <= 0 {
		return s.deps.T("setup.untimed")
	}
	return s.deps.T("setup.minutes", int(s.cfg.TimeLimit.Minutes()))
}
