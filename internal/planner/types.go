// Package planner tracks study goals, timed study sessions and per-topic
// mastery, and recommends what to study next.
package planner

import (
	"math"
	"time"
)

// Priority ranks a goal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// Goal is a study target with a planned number of hours.
type Goal struct {
	ID             string
	Title          string
	Subject        string
	TargetDate     time.Time
	Priority       Priority
	TotalHours     float64
	CompletedHours float64
	Topics         []string
	Status         GoalStatus
}

// Progress is the completed share of the planned hours, capped at 100.
func (g Goal) Progress() float64 {
	if g.TotalHours <= 0 {
		return 0
	}
	return math.Min(100, g.CompletedHours/g.TotalHours*100)
}

// DaysLeft returns whole days until the target date; negative when late.
func (g Goal) DaysLeft(now time.Time) int {
	return int(math.Floor(g.TargetDate.Sub(now).Hours() / 24))
}

// SessionKind describes what a study session was spent on.
type SessionKind string

const (
	KindStudy    SessionKind = "study"
	KindQuiz     SessionKind = "quiz"
	KindReview   SessionKind = "review"
	KindPractice SessionKind = "practice"
)

// ParseKind parses a session kind. Unknown values return false.
func ParseKind(s string) (SessionKind, bool) {
	switch k := SessionKind(s); k {
	case KindStudy, KindQuiz, KindReview, KindPractice:
		return k, true
	}
	return "", false
}

// StudySession is one timed block of study.
type StudySession struct {
	ID        string
	GoalID    string
	Topic     string
	Kind      SessionKind
	Started   time.Time
	Duration  time.Duration
	Focus     int
	Completed bool
}

// Weakness buckets a topic's mastery.
type Weakness string

const (
	WeaknessNone   Weakness = "none"
	WeaknessLow    Weakness = "low"
	WeaknessMedium Weakness = "medium"
	WeaknessHigh   Weakness = "high"
)

// WeaknessFor maps a mastery percentage to a weakness level.
func WeaknessFor(mastery int) Weakness {
	switch {
	case mastery < 40:
		return WeaknessHigh
	case mastery < 60:
		return WeaknessMedium
	case mastery < 80:
		return WeaknessLow
	default:
		return WeaknessNone
	}
}

// TopicMastery is the running mastery estimate for one topic.
type TopicMastery struct {
	Subject     string
	Topic       string
	Mastery     int
	Attempts    int
	LastStudied time.Time
	Streak      int
}

// Weakness returns the weakness level for the current mastery.
func (tm TopicMastery) Weakness() Weakness {
	return WeaknessFor(tm.Mastery)
}
