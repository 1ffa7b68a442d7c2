package planner

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studygenie/studygenie/internal/quiz"
)

var (
	// ErrSessionActive is returned when a session is started while another runs.
	ErrSessionActive = errors.New("a study session is already running")
	// ErrNoSession is returned when ending a session that was never started.
	ErrNoSession = errors.New("no study session is running")
	// ErrUnknownGoal is returned for goal ids the planner does not know.
	ErrUnknownGoal = errors.New("unknown goal")
)

const (
	// masteryWeight is the share of the old estimate kept on each update.
	masteryWeight = 0.7
	minFocus      = 1
	maxFocus      = 10
)

// Planner owns goals, the session log and topic mastery.
type Planner struct {
	goals    []*Goal
	sessions []StudySession
	active   *StudySession
	topics   map[string]*TopicMastery
}

// New returns an empty planner.
func New() *Planner {
	return &Planner{topics: make(map[string]*TopicMastery)}
}

// GoalInput holds the fields a learner fills in for a new goal.
type GoalInput struct {
	Title      string
	Subject    string
	TargetDate time.Time
	Priority   Priority
	TotalHours float64
	Topics     []string
}

// AddGoal validates in and stores a new active goal.
func (p *Planner) AddGoal(in GoalInput) (*Goal, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if in.TotalHours <= 0 {
		return nil, fmt.Errorf("goal hours must be positive, got %g", in.TotalHours)
	}
	switch in.Priority {
	case "":
		in.Priority = PriorityMedium
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return nil, fmt.Errorf("unknown priority %q", in.Priority)
	}

	g := &Goal{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(in.Title),
		Subject:    in.Subject,
		TargetDate: in.TargetDate,
		Priority:   in.Priority,
		TotalHours: in.TotalHours,
		Topics:     slices.Clone(in.Topics),
		Status:     GoalActive,
	}
	p.goals = append(p.goals, g)
	return g, nil
}

// Goals returns the goals in creation order.
func (p *Planner) Goals() []Goal {
	out := make([]Goal, len(p.goals))
	for i, g := range p.goals {
		out[i] = *g
	}
	return out
}

// Goal returns a goal by id.
func (p *Planner) Goal(id string) (Goal, bool) {
	g := p.goal(id)
	if g == nil {
		return Goal{}, false
	}
	return *g, true
}

func (p *Planner) goal(id string) *Goal {
	for _, g := range p.goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// SetGoalStatus pauses, resumes or completes a goal.
func (p *Planner) SetGoalStatus(id string, status GoalStatus) error {
	g := p.goal(id)
	if g == nil {
		return fmt.Errorf("%w: %s", ErrUnknownGoal, id)
	}
	g.Status = status
	return nil
}

// StartSession begins timing a study session. goalID may be empty for
// unplanned study; a non-empty id must name a known goal.
func (p *Planner) StartSession(goalID, topic string, kind SessionKind, now time.Time) (*StudySession, error) {
	if p.active != nil {
		return nil, ErrSessionActive
	}
	if goalID != "" && p.goal(goalID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGoal, goalID)
	}
	if kind == "" {
		kind = KindStudy
	}
	p.active = &StudySession{
		ID:      uuid.NewString(),
		GoalID:  goalID,
		Topic:   topic,
		Kind:    kind,
		Started: now,
	}
	s := *p.active
	return &s, nil
}

// Active returns the running session, if any.
func (p *Planner) Active() (StudySession, bool) {
	if p.active == nil {
		return StudySession{}, false
	}
	return *p.active, true
}

// Elapsed returns how long the running session has been going.
func (p *Planner) Elapsed(now time.Time) time.Duration {
	if p.active == nil {
		return 0
	}
	return max(now.Sub(p.active.Started), 0)
}

// EndSession stops the running session. Its duration is rounded down to
// whole minutes and credited to the goal, which completes at 100%. focus
// is clamped to 1..10.
func (p *Planner) EndSession(focus int, now time.Time) (StudySession, error) {
	if p.active == nil {
		return StudySession{}, ErrNoSession
	}
	s := *p.active
	p.active = nil

	s.Duration = wholeMinutes(s.Started, now)
	s.Focus = min(max(focus, minFocus), maxFocus)
	s.Completed = true
	p.sessions = append(p.sessions, s)

	if g := p.goal(s.GoalID); g != nil {
		g.CompletedHours += s.Duration.Hours()
		if g.Progress() >= 100 {
			g.Status = GoalCompleted
		}
	}
	return s, nil
}

func wholeMinutes(start, end time.Time) time.Duration {
	return max(end.Sub(start), 0).Truncate(time.Minute)
}

// Sessions returns completed sessions, oldest first.
func (p *Planner) Sessions() []StudySession {
	return slices.Clone(p.sessions)
}

// TotalStudyTime sums the completed sessions.
func (p *Planner) TotalStudyTime() time.Duration {
	var total time.Duration
	for _, s := range p.sessions {
		total += s.Duration
	}
	return total
}

func topicKey(subject, topic string) string {
	return strings.ToLower(subject) + "\x00" + strings.ToLower(topic)
}

// ApplyQuizResult folds a graded quiz into topic mastery. Each topic's
// estimate moves 30% of the way to the quiz ratio; a topic seen for the
// first time takes the ratio outright.
func (p *Planner) ApplyQuizResult(in *quiz.Instance, res quiz.Result, now time.Time) []TopicMastery {
	if in == nil {
		return nil
	}
	subjects := make(map[string]string)
	for _, q := range in.Questions {
		if _, ok := subjects[q.Topic]; !ok {
			subjects[q.Topic] = q.Subject
		}
	}

	var updated []TopicMastery
	for _, tp := range res.Topics {
		if tp.Total == 0 {
			continue
		}
		subject := subjects[tp.Topic]
		key := topicKey(subject, tp.Topic)
		tm := p.topics[key]
		observed := tp.Ratio() * 100
		if tm == nil {
			tm = &TopicMastery{Subject: subject, Topic: tp.Topic}
			p.topics[key] = tm
			tm.Mastery = int(math.Round(observed))
		} else {
			tm.Mastery = int(math.Round(masteryWeight*float64(tm.Mastery) + (1-masteryWeight)*observed))
		}
		tm.Attempts += tp.Total
		tm.Streak = nextStreak(tm.LastStudied, tm.Streak, now)
		tm.LastStudied = now
		updated = append(updated, *tm)
	}
	return updated
}

// nextStreak counts consecutive UTC days with study.
func nextStreak(last time.Time, streak int, now time.Time) int {
	if last.IsZero() {
		return 1
	}
	lastDay := last.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		return max(streak, 1)
	case 24 * time.Hour:
		return streak + 1
	default:
		return 1
	}
}

// Topics returns every tracked topic, by subject then topic name.
func (p *Planner) Topics() []TopicMastery {
	out := make([]TopicMastery, 0, len(p.topics))
	for _, tm := range p.topics {
		out = append(out, *tm)
	}
	slices.SortFunc(out, func(a, b TopicMastery) int {
		if c := strings.Compare(a.Subject, b.Subject); c != 0 {
			return c
		}
		return strings.Compare(a.Topic, b.Topic)
	})
	return out
}

// TopicMastery returns the estimate for one topic.
func (p *Planner) TopicMastery(subject, topic string) (TopicMastery, bool) {
	tm := p.topics[topicKey(subject, topic)]
	if tm == nil {
		return TopicMastery{}, false
	}
	return *tm, true
}

// Recommendations returns up to n topics to study next: weakest first,
// then least recently studied, then by name. n <= 0 returns all.
func (p *Planner) Recommendations(n int) []TopicMastery {
	recs := p.Topics()
	slices.SortStableFunc(recs, func(a, b TopicMastery) int {
		if a.Mastery != b.Mastery {
			return a.Mastery - b.Mastery
		}
		return a.LastStudied.Compare(b.LastStudied)
	})
	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
