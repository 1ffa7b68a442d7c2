// Package leaderboard ranks learners by the XP and streaks earned in quizzes.
package leaderboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/studygenie/studygenie/internal/store"
)

// XPPerLevel is how much XP one level takes.
const XPPerLevel = 500

// Entry is one row of the leaderboard.
type Entry struct {
	Name    string
	XP      int
	Streak  int // consecutive days with at least one quiz
	Quizzes int
	Solved  int // correctly answered questions
	Rank    int
}

// Level returns the level reached with xp.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// Level returns the entry's level.
func (e Entry) Level() int {
	return Level(e.XP)
}

// Rank returns entries sorted by XP, then streak, both descending, then by
// name. Entries with equal XP and streak share a rank and the next rank
// follows without gaps. The input is not modified.
func Rank(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.XP, a.XP); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Streak, a.Streak); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	rank := 0
	for i := range out {
		if i == 0 || out[i].XP != out[i-1].XP || out[i].Streak != out[i-1].Streak {
			rank++
		}
		out[i].Rank = rank
	}
	return out
}

// FromAttempts aggregates one learner's recorded quiz attempts.
func FromAttempts(name string, attempts []store.QuizAttemptRecord) Entry {
	e := Entry{Name: name, Quizzes: len(attempts)}
	days := make(map[time.Time]bool, len(attempts))
	var latest time.Time
	for _, a := range attempts {
		e.XP += a.XP
		e.Solved += a.Score
		day := utcDay(a.Timestamp)
		days[day] = true
		if day.After(latest) {
			latest = day
		}
	}
	if len(attempts) == 0 {
		return e
	}
	for day := latest; days[day]; day = day.AddDate(0, 0, -1) {
		e.Streak++
	}
	return e
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Find returns the entry named name.
func Find(entries []Entry, name string) (Entry, bool) {
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.Name == name })
	if i < 0 {
		return Entry{}, false
	}
	return entries[i], true
}
