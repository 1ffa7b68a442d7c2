package play

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/router"
	"github.com/studygenie/studygenie/internal/screens/results"
	"github.com/studygenie/studygenie/internal/screens/shared/sharedtest"
)

func testInstance(focus quiz.FocusMode) *quiz.Instance {
	q := func(id, topic string) quiz.Question {
		return quiz.Question{
			ID: id, Prompt: "Prompt " + id, Options: []string{"a", "b", "c", "d"},
			CorrectAnswer: 1, Explanation: "because", Difficulty: quiz.DifficultyEasy,
			Subject: "Physics", Topic: topic,
		}
	}
	return &quiz.Instance{
		ID: "i1",
		Config: quiz.Config{
			Difficulty: quiz.DifficultyEasy, QuestionCount: 2,
			Topics: []string{"Physics"}, FocusMode: focus,
		},
		Questions: []quiz.Question{q("q1", "Optics"), q("q2", "Mechanics")},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// runFinish executes a finish command batch and returns the finishedMsg.
func runFinish(t *testing.T, cmd tea.Cmd) finishedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected BatchMsg")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(finishedMsg); ok {
			return msg
		}
	}
	t.Fatal("no finishedMsg in batch")
	return finishedMsg{}
}

func TestPlayScreen_Generate(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := New(deps, quiz.Config{Difficulty: quiz.DifficultyEasy, QuestionCount: 2, Topics: []string{"Physics"}, FocusMode: quiz.FocusLearning})

	msg := s.generate()()
	ready, ok := msg.(quizReadyMsg)
	if !ok {
		t.Fatalf("got %T, want quizReadyMsg", msg)
	}
	if ready.Err != nil {
		t.Fatalf("generate: %v", ready.Err)
	}
	s.Update(ready)
	if s.phase != phaseQuestion {
		t.Errorf("phase = %v, want question", s.phase)
	}
	if s.session.Instance().Len() != 2 {
		t.Errorf("questions = %d, want 2", s.session.Instance().Len())
	}
}

func TestPlayScreen_GenerateError(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := New(deps, quiz.Config{Difficulty: quiz.DifficultyEasy, QuestionCount: 2, Topics: []string{"Underwater Basketry"}})

	s.Update(s.generate()())
	if s.phase != phaseError {
		t.Fatalf("phase = %v, want error", s.phase)
	}
	_, cmd := s.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestPlayScreen_AnswerAndFinish(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := Retry(deps, testInstance(quiz.FocusLearning))

	s.Update(keyPress('2'))
	if s.phase != phaseFeedback || !s.lastCorrect {
		t.Fatalf("phase = %v correct = %v, want feedback/true", s.phase, s.lastCorrect)
	}
	if !s.CapturesBack() {
		t.Error("feedback should capture Esc")
	}

	s.Update(keyPress(' '))
	if s.phase != phaseQuestion || s.session.Index() != 1 {
		t.Fatalf("expected second question, phase = %v index = %d", s.phase, s.session.Index())
	}

	s.Update(keyPress('1'))
	_, cmd := s.Update(keyPress(' '))
	if s.phase != phaseSaving {
		t.Fatalf("phase = %v, want saving", s.phase)
	}

	fin := runFinish(t, cmd)
	if fin.Result.Score != 1 || fin.Result.Total != 2 {
		t.Errorf("score = %d/%d, want 1/2", fin.Result.Score, fin.Result.Total)
	}
	if fin.Outcome != nil {
		t.Error("no tracker, outcome should be nil")
	}

	_, cmd = s.Update(fin)
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	batch := cmd().(tea.BatchMsg)
	var replaced bool
	for _, c := range batch {
		if m, ok := c().(router.ReplaceScreenMsg); ok {
			replaced = true
			if _, ok := m.Screen.(*results.ResultsScreen); !ok {
				t.Errorf("replaced with %T, want results", m.Screen)
			}
		}
	}
	if !replaced {
		t.Error("expected ReplaceScreenMsg")
	}
}

func TestPlayScreen_TestModeSkipsFeedback(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := Retry(deps, testInstance(quiz.FocusTest))

	s.Update(keyPress('1'))
	if s.phase != phaseQuestion || s.session.Index() != 1 {
		t.Fatalf("phase = %v index = %d, want next question", s.phase, s.session.Index())
	}
}

func TestPlayScreen_QuitEarly(t *testing.T) {
	deps := sharedtest.WithTracker(t)
	s := Retry(deps, testInstance(quiz.FocusLearning))

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("n should cancel")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(keyPress('y'))
	fin := runFinish(t, cmd)
	if fin.Err != nil {
		t.Fatalf("record quiz: %v", fin.Err)
	}
	if fin.Result.Score != 0 || fin.Result.MasteryLevel != 0 {
		t.Errorf("unanswered quiz scored %d (%d%%)", fin.Result.Score, fin.Result.MasteryLevel)
	}
	if fin.Outcome == nil || fin.Outcome.AttemptID == "" {
		t.Error("expected a saved outcome")
	}
}

func TestPlayScreen_TimeLimit(t *testing.T) {
	deps := sharedtest.Deps(t)
	in := testInstance(quiz.FocusLearning)
	in.Config.TimeLimit = time.Minute

	s := Retry(deps, in)
	if s.Init() == nil {
		t.Fatal("timed quiz should tick")
	}

	s.started = s.started.Add(-2 * in.Config.TimeLimit)
	_, cmd := s.Update(timerTickMsg(deps.Clock()))
	if s.phase != phaseSaving {
		t.Fatalf("phase = %v, want saving after expiry", s.phase)
	}
	if cmd == nil {
		t.Error("expected finish command")
	}
}

func TestPlayScreen_View(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := Retry(deps, testInstance(quiz.FocusLearning))
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}

func TestPlayScreen_Skip(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := Retry(deps, testInstance(quiz.FocusLearning))

	s.Update(keyPress('s'))
	if s.phase != phaseFeedback || s.lastCorrect {
		t.Fatalf("phase = %v correct = %v, want feedback/false", s.phase, s.lastCorrect)
	}
	answers := s.session.Answers()
	if len(answers) != 1 || answers[0].SelectedOption != -1 {
		t.Errorf("answers = %+v, want one skipped answer", answers)
	}
	if s.session.Streak() != 0 {
		t.Errorf("streak = %d, want 0", s.session.Streak())
	}
}

func TestPlayScreen_LetterKeys(t *testing.T) {
	deps := sharedtest.Deps(t)
	s := Retry(deps, testInstance(quiz.FocusTest))
	if s.choice.Reveal {
		t.Error("test focus should not reveal answers")
	}

	s.Update(keyPress('b'))
	if s.session.Index() != 1 {
		t.Fatalf("index = %d, want 1 after answering", s.session.Index())
	}
	if got := s.session.Answers()[0].SelectedOption; got != 1 {
		t.Errorf("selected = %d, want 1", got)
	}
}
