package planner

import (
	"slices"
	"time"

	"github.com/studygenie/studygenie/internal/store"
)

// SnapshotData exports goals, completed sessions and topic mastery. A
// running session is not persisted.
func (p *Planner) SnapshotData() *store.PlannerSnapshotData {
	data := &store.PlannerSnapshotData{
		Goals:    make([]store.GoalData, 0, len(p.goals)),
		Sessions: make([]store.StudySessionData, 0, len(p.sessions)),
		Topics:   make([]store.TopicMasteryData, 0, len(p.topics)),
	}
	for _, g := range p.goals {
		data.Goals = append(data.Goals, store.GoalData{
			ID:             g.ID,
			Title:          g.Title,
			Subject:        g.Subject,
			TargetDate:     formatTime(g.TargetDate),
			Priority:       string(g.Priority),
			TotalHours:     g.TotalHours,
			CompletedHours: g.CompletedHours,
			Topics:         slices.Clone(g.Topics),
			Status:         string(g.Status),
		})
	}
	for _, s := range p.sessions {
		data.Sessions = append(data.Sessions, store.StudySessionData{
			ID:          s.ID,
			GoalID:      s.GoalID,
			Topic:       s.Topic,
			Kind:        string(s.Kind),
			Started:     formatTime(s.Started),
			DurationMin: int(s.Duration / time.Minute),
			Focus:       s.Focus,
			Completed:   s.Completed,
		})
	}
	for _, tm := range p.Topics() {
		data.Topics = append(data.Topics, store.TopicMasteryData{
			Subject:     tm.Subject,
			Topic:       tm.Topic,
			Mastery:     tm.Mastery,
			Attempts:    tm.Attempts,
			LastStudied: formatTime(tm.LastStudied),
			Streak:      tm.Streak,
		})
	}
	return data
}

// Restore rebuilds a planner from snapshot data. Unparseable dates load
// as the zero time.
func Restore(data *store.PlannerSnapshotData) *Planner {
	p := New()
	if data == nil {
		return p
	}
	for _, gd := range data.Goals {
		p.goals = append(p.goals, &Goal{
			ID:             gd.ID,
			Title:          gd.Title,
			Subject:        gd.Subject,
			TargetDate:     parseTime(gd.TargetDate),
			Priority:       Priority(gd.Priority),
			TotalHours:     gd.TotalHours,
			CompletedHours: gd.CompletedHours,
			Topics:         slices.Clone(gd.Topics),
			Status:         GoalStatus(gd.Status),
		})
	}
	for _, sd := range data.Sessions {
		p.sessions = append(p.sessions, StudySession{
			ID:        sd.ID,
			GoalID:    sd.GoalID,
			Topic:     sd.Topic,
			Kind:      SessionKind(sd.Kind),
			Started:   parseTime(sd.Started),
			Duration:  time.Duration(sd.DurationMin) * time.Minute,
			Focus:     sd.Focus,
			Completed: sd.Completed,
		})
	}
	for _, td := range data.Topics {
		p.topics[topicKey(td.Subject, td.Topic)] = &TopicMastery{
			Subject:     td.Subject,
			Topic:       td.Topic,
			Mastery:     td.Mastery,
			Attempts:    td.Attempts,
			LastStudied: parseTime(td.LastStudied),
			Streak:      td.Streak,
		}
	}
	return p
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
