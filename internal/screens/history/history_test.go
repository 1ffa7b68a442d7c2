package history

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygenie/studygenie/internal/screens/shared"
	"github.com/studygenie/studygenie/internal/screens/shared/sharedtest"
	"github.com/studygenie/studygenie/internal/store"
)

func seed(t *testing.T, d *shared.Deps, ids ...string) {
	t.Helper()
	ctx := context.Background()
	events := d.Tracker.Events()
	for _, id := range ids {
		require.NoError(t, events.AppendQuizAttempt(ctx, store.QuizAttemptData{
			ID: id, Learner: "ada", Topics: []string{"Optics"}, Difficulty: "easy",
			QuestionCount: 2, Score: 1, Total: 2, Mastery: 50, XP: 10, Duration: 90 * time.Second,
		}))
		require.NoError(t, events.AppendAnswer(ctx, store.AnswerEventData{
			AttemptID: id, Position: 0, QuestionID: "q1", Subject: "Physics", Topic: "Optics",
			Difficulty: "easy", Correct: true,
		}))
	}
}

func send(t *testing.T, s *HistoryScreen, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := s.Update(msg)
	require.Same(t, s, next)
	return cmd
}

func loaded(t *testing.T, d *shared.Deps) *HistoryScreen {
	t.Helper()
	s := New(d)
	send(t, s, s.Init()())
	return s
}

func TestHistoryScreen_Empty(t *testing.T) {
	d := sharedtest.WithTracker(t)
	s := New(d)
	assert.Contains(t, s.View(80, 20), d.T("common.loading"))

	send(t, s, s.Init()())
	assert.Contains(t, s.View(80, 20), d.T("history.empty"))
	assert.Nil(t, send(t, s, tea.KeyPressMsg{Code: tea.KeyEnter}))
}

func TestHistoryScreen_ExpandLoadsAnswersOnce(t *testing.T) {
	d := sharedtest.WithTracker(t)
	seed(t, d, "first", "second")
	s := loaded(t, d)
	require.Len(t, s.attempts, 2)
	assert.Equal(t, "second", s.attempts[0].ID)

	cmd := send(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(100, 20), d.T("common.loading"))

	send(t, s, cmd())
	view := s.View(100, 20)
	assert.Contains(t, view, "✓ 1. Physics · Optics (easy)")

	assert.Nil(t, send(t, s, tea.KeyPressMsg{Code: tea.KeyEnter}), "closing needs no fetch")
	assert.Nil(t, send(t, s, tea.KeyPressMsg{Code: tea.KeyEnter}), "answers are cached")
	assert.True(t, s.open["second"])
}

func TestHistoryScreen_CursorStaysInRange(t *testing.T) {
	d := sharedtest.WithTracker(t)
	seed(t, d, "a", "b")
	s := loaded(t, d)

	send(t, s, tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.cursor)
	for range 3 {
		send(t, s, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, 1, s.cursor)
}
