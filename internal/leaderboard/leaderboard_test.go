package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygenie/studygenie/internal/store"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		xp, want int
	}{
		{-10, 1},
		{0, 1},
		{499, 1},
		{500, 2},
		{2450, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.xp), "xp=%d", tt.xp)
	}
}

func TestRank_DenseAndOrdered(t *testing.T) {
	in := []Entry{
		{Name: "carol", XP: 100, Streak: 1},
		{Name: "bob", XP: 300, Streak: 2},
		{Name: "alice", XP: 300, Streak: 2},
		{Name: "dave", XP: 300, Streak: 5},
		{Name: "erin", XP: 50},
	}
	got := Rank(in)

	names := make([]string, len(got))
	ranks := make([]int, len(got))
	for i, e := range got {
		names[i] = e.Name
		ranks[i] = e.Rank
	}
	assert.Equal(t, []string{"dave", "alice", "bob", "carol", "erin"}, names)
	assert.Equal(t, []int{1, 2, 2, 3, 4}, ranks)

	// Input untouched.
	assert.Equal(t, "carol", in[0].Name)
	assert.Zero(t, in[0].Rank)
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func attempt(day time.Time, score, xp int) store.QuizAttemptRecord {
	return store.QuizAttemptRecord{
		QuizAttemptData: store.QuizAttemptData{Score: score, Total: 5, XP: xp},
		Timestamp:       day,
	}
}

func TestFromAttempts(t *testing.T) {
	d := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	attempts := []store.QuizAttemptRecord{
		attempt(d, 4, 45),
		attempt(d.Add(5*time.Hour), 3, 35), // next UTC day
		attempt(d.AddDate(0, 0, -1), 5, 60),
		attempt(d.AddDate(0, 0, -3), 1, 15), // gap breaks the streak
	}

	e := FromAttempts("ada", attempts)
	assert.Equal(t, "ada", e.Name)
	assert.Equal(t, 155, e.XP)
	assert.Equal(t, 13, e.Solved)
	assert.Equal(t, 4, e.Quizzes)
	assert.Equal(t, 3, e.Streak)
}

func TestFromAttempts_None(t *testing.T) {
	e := FromAttempts("ada", nil)
	assert.Zero(t, e.Streak)
	assert.Zero(t, e.XP)
	assert.Equal(t, 1, e.Level())
}

func TestBoard(t *testing.T) {
	board := Board(Entry{Name: "ada", XP: 2000, Streak: 1})
	require.Len(t, board, len(Peers)+1)

	me, ok := Find(board, "ada")
	require.True(t, ok)
	assert.Equal(t, 3, me.Rank)

	_, ok = Find(board, "nobody")
	assert.False(t, ok)
}
