package quizsetup

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screens/play"
	"github.com/studygenie/studygenie/internal/screens/shared/sharedtest"
)

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	right = tea.KeyPressMsg{Code: tea.KeyRight}
	space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func loaded(t *testing.T) *SetupScreen {
	t.Helper()
	s := New(sharedtest.Deps(t))
	s.Update(s.Init()())
	if len(s.subjects) == 0 {
		t.Fatal("no subjects loaded")
	}
	return s
}

func TestSetupScreen_DefaultsPickConfiguredSubject(t *testing.T) {
	s := loaded(t)
	got := s.Config().Topics
	if len(got) != 1 || got[0] != "Physics" {
		t.Errorf("topics = %v, want [Physics]", got)
	}
}

func TestSetupScreen_NoSubjectsBlocksStart(t *testing.T) {
	s := loaded(t)

	s.Update(down)
	s.Update(down)
	if s.focus != fieldSubjects {
		t.Fatalf("focus = %v, want subjects", s.focus)
	}
	s.Update(space)
	if topics := s.Config().Topics; len(topics) != 0 {
		t.Fatalf("topics = %v, want none", topics)
	}

	_, cmd := s.Update(enter)
	if cmd != nil {
		t.Fatal("start with no subjects should not navigate")
	}
	if !strings.Contains(s.View(100, 30), "Pick at least one subject.") {
		t.Error("view is missing the empty-subject message")
	}

	s.Update(space)
	if s.errMsg != "" {
		t.Errorf("error not cleared by the next key: %q", s.errMsg)
	}
	_, cmd = s.Update(enter)
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", cmd())
	}
	if _, ok := push.Screen.(*play.PlayScreen); !ok {
		t.Errorf("pushed %T, want *play.PlayScreen", push.Screen)
	}
}

func TestSetupScreen_ChangeFields(t *testing.T) {
	s := loaded(t)

	s.Update(right) // difficulty
	s.Update(down)
	s.Update(right) // count
	s.Update(down)
	s.Update(right) // subject cursor
	s.Update(space)
	s.Update(down)
	s.Update(right) // time limit
	s.Update(down)
	s.Update(right) // focus

	cfg := s.Config()
	if cfg.Difficulty != quiz.DifficultyHard {
		t.Errorf("difficulty = %q, want hard", cfg.Difficulty)
	}
	if cfg.QuestionCount != 6 {
		t.Errorf("count = %d, want 6", cfg.QuestionCount)
	}
	if len(cfg.Topics) != 2 || cfg.Topics[0] != "Physics" || cfg.Topics[1] != "Mathematics" {
		t.Errorf("topics = %v, want [Physics Mathematics]", cfg.Topics)
	}
	if cfg.TimeLimit != 5*time.Minute {
		t.Errorf("time limit = %v, want 5m", cfg.TimeLimit)
	}
	if cfg.FocusMode != quiz.FocusReview {
		t.Errorf("focus = %q, want review", cfg.FocusMode)
	}
}
