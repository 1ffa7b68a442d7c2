// Package play runs a quiz: one question at a time, feedback after each
// answer, an optional countdown, then the results screen.
package play

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screen"
	"github.com/studygenie/studygenie/internal/screens/results"
	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/ui/components"
	"github.com/studygenie/studygenie/internal/ui/layout"
	"github.com/studygenie/studygenie/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseSaving
	phaseError
)

// PlayScreen implements screen.Screen for an active quiz.
type PlayScreen struct {
	deps *shared.Deps
	cfg  quiz.Config

	session *quiz.Session
	choice  components.MultiChoice
	spinner spinner.Model

	phase       phase
	confirmQuit bool
	lastCorrect bool
	errMsg      string

	started       time.Time
	questionStart time.Time
	elapsed       time.Duration
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.BackHandler = (*PlayScreen)(nil)

// New creates a screen that generates a quiz for cfg and plays it.
func New(deps *shared.Deps, cfg quiz.Config) *PlayScreen {
	return &PlayScreen{
		deps:    deps,
		cfg:     cfg,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary))),
	}
}

// Retry creates a screen that replays an existing quiz in the same order.
func Retry(deps *shared.Deps, in *quiz.Instance) *PlayScreen {
	s := New(deps, in.Config)
	s.begin(in)
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.session != nil {
		return s.tick()
	}
	return tea.Batch(s.spinner.Tick, s.generate())
}

func (s *PlayScreen) Title() string {
	return s.deps.T("home.quiz")
}

func (s *PlayScreen) CapturesBack() bool {
	return s.phase == phaseQuestion || s.phase == phaseFeedback || s.phase == phaseSaving
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{{Key: "Y", Description: "Finish"}, {Key: "N", Description: "Keep going"}}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "S", Description: "Skip"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: s.deps.T("common.back")}}
}

func (s *PlayScreen) generate() tea.Cmd {
	engine, cfg := s.deps.Engine, s.cfg
	return func() tea.Msg {
		in, err := engine.Generate(context.Background(), cfg)
		return quizReadyMsg{Instance: in, Err: err}
	}
}

func (s *PlayScreen) tick() tea.Cmd {
	if s.session == nil || s.session.Instance().Config.TimeLimit <= 0 {
		return nil
	}
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *PlayScreen) begin(in *quiz.Instance) {
	s.session = quiz.NewSession(in)
	s.started = s.deps.Clock()
	s.elapsed = 0
	s.phase = phaseQuestion
	s.showCurrent()
}

func (s *PlayScreen) showCurrent() {
	q := s.session.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Options, q.CorrectAnswer)
	s.choice.Reveal = s.session.Instance().Config.FocusMode != quiz.FocusTest
	s.questionStart = s.deps.Clock()
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.phase = phaseError
			s.errMsg = msg.Err.Error()
			s.deps.Logger.Warn("quiz generation failed", zap.Error(msg.Err))
			return s, nil
		}
		s.begin(msg.Instance)
		return s, s.tick()

	case timerTickMsg:
		if s.phase != phaseQuestion && s.phase != phaseFeedback {
			return s, nil
		}
		s.elapsed = s.deps.Clock().Sub(s.started)
		if s.session.Expired(s.elapsed) {
			return s.finish()
		}
		return s, s.tick()

	case finishedMsg:
		if msg.Err != nil {
			s.deps.Logger.Error("saving quiz attempt", zap.Error(msg.Err))
		}
		in := s.session.Instance()
		deps := s.deps
		next := results.New(deps, in, msg.Result, msg.Outcome, func() screen.Screen {
			return Retry(deps, in)
		})
		return s, tea.Batch(router.Replace(next), shared.StatsChanged)

	case spinner.TickMsg:
		if s.phase != phaseLoading && s.phase != phaseSaving {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseError {
		return s, router.Pop
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseFeedback:
		return s.advance()
	case phaseQuestion:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s.submit()
		}
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	spent := s.deps.Clock().Sub(s.questionStart)
	_, correct := s.session.Answer(s.choice.ChosenIndex, spent)
	s.lastCorrect = correct

	// Test mode gives no feedback until the end.
	if s.session.Instance().Config.FocusMode == quiz.FocusTest {
		return s.advance()
	}
	s.phase = phaseFeedback
	return s, nil
}

func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	if s.session.Done() {
		return s.finish()
	}
	s.phase = phaseQuestion
	s.showCurrent()
	return s, nil
}

// finish grades the attempt and saves it when a tracker is available.
func (s *PlayScreen) finish() (screen.Screen, tea.Cmd) {
	if s.phase == phaseSaving {
		return s, nil
	}
	s.phase = phaseSaving

	attempt := progress.Attempt{
		Instance:   s.session.Instance(),
		Answers:    s.session.Answers(),
		BestStreak: s.session.BestStreak(),
		Duration:   s.deps.Clock().Sub(s.started),
	}
	tracker, now := s.deps.Tracker, s.deps.Clock()
	save := func() tea.Msg {
		if tracker == nil {
			return finishedMsg{Result: quiz.Score(attempt.Instance, attempt.Answers)}
		}
		res, out, err := tracker.RecordQuiz(context.Background(), attempt, now)
		return finishedMsg{Result: res, Outcome: out, Err: err}
	}
	return s, tea.Batch(s.spinner.Tick, save)
}
