// Package progress keeps the learner's long-lived state: the flashcard
// deck, planner mastery and the quiz attempt log.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/flashcards"
	"github.com/studygenie/studygenie/internal/leaderboard"
	"github.com/studygenie/studygenie/internal/planner"
	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/store"
)

// SnapshotsKept is how many snapshots survive a save.
const SnapshotsKept = 10

// Tracker ties the in-memory learner state to the store.
type Tracker struct {
	learner string
	events  store.EventRepo
	snaps   store.SnapshotRepo
	deck    *flashcards.Deck
	planner *planner.Planner
	logger  *zap.Logger
}

// Load restores the latest snapshot. An empty store yields an empty deck
// and planner.
func Load(ctx context.Context, learner string, events store.EventRepo, snaps store.SnapshotRepo, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		learner: learner,
		events:  events,
		snaps:   snaps,
		logger:  logger,
	}

	var data store.SnapshotData
	snap, err := snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		data = snap.Data
		logger.Debug("restored snapshot", zap.Int("id", snap.ID), zap.Time("at", snap.Timestamp))
	}
	t.deck = flashcards.Restore(data.Flashcards, events, logger)
	t.planner = planner.Restore(data.Planner)
	return t, nil
}

// Learner returns the learner's display name.
func (t *Tracker) Learner() string {
	return t.learner
}

// Deck returns the flashcard deck.
func (t *Tracker) Deck() *flashcards.Deck {
	return t.deck
}

// Planner returns the study planner.
func (t *Tracker) Planner() *planner.Planner {
	return t.planner
}

// Events returns the attempt log.
func (t *Tracker) Events() store.EventRepo {
	return t.events
}

// Outcome summarizes what finishing a quiz changed.
type Outcome struct {
	AttemptID string
	XP        int
	NewCards  int
	Topics    []planner.TopicMastery
}

// Attempt is a finished quiz pass.
type Attempt struct {
	Instance   *quiz.Instance
	Answers    []quiz.AnswerRecord
	BestStreak int
	Duration   time.Duration
}

// RecordQuiz grades a finished quiz and persists it. The attempt and its
// answers are written atomically; only then are planner mastery and the
// deck updated and a snapshot saved.
func (t *Tracker) RecordQuiz(ctx context.Context, a Attempt, now time.Time) (quiz.Result, *Outcome, error) {
	in := a.Instance
	res := quiz.Score(in, a.Answers)
	out := &Outcome{AttemptID: uuid.NewString(), XP: res.XP()}

	answers := make([]store.AnswerEventData, len(res.Answers))
	for i, ga := range res.Answers {
		q := in.Questions[i]
		answers[i] = store.AnswerEventData{
			Position:      i,
			QuestionID:    q.ID,
			Subject:       q.Subject,
			Topic:         q.Topic,
			Difficulty:    string(q.Difficulty),
			Selected:      ga.SelectedOption,
			CorrectOption: q.CorrectAnswer,
			Correct:       ga.Correct,
			TimeSpent:     ga.TimeSpent,
		}
	}
	err := t.events.RecordAttempt(ctx, store.QuizAttemptData{
		ID:            out.AttemptID,
		Learner:       t.learner,
		Topics:        in.Config.Topics,
		Difficulty:    string(in.Config.Difficulty),
		FocusMode:     string(in.Config.FocusMode),
		QuestionCount: in.Len(),
		Score:         res.Score,
		Total:         res.Total,
		Mastery:       res.MasteryLevel,
		XP:            out.XP,
		BestStreak:    a.BestStreak,
		Duration:      a.Duration,
		WeakAreas:     res.WeakAreas,
		StrongAreas:   res.StrongAreas,
	}, answers)
	if err != nil {
		return res, nil, err
	}

	out.Topics = t.planner.ApplyQuizResult(in, res, now)
	out.NewCards = t.deck.Add(flashcards.FromWeakAreas(in, res, now)...)

	if err := t.Save(ctx, now); err != nil {
		return res, nil, err
	}
	t.logger.Info("quiz recorded",
		zap.String("attempt", out.AttemptID),
		zap.Int("score", res.Score),
		zap.Int("total", res.Total),
		zap.Int("new_cards", out.NewCards))
	return res, out, nil
}

// Save writes the deck and planner as a new snapshot and prunes old ones.
func (t *Tracker) Save(ctx context.Context, now time.Time) error {
	snap := &store.Snapshot{
		Timestamp: now,
		Data: store.SnapshotData{
			Version:    store.CurrentSnapshotVersion,
			Flashcards: t.deck.SnapshotData(),
			Planner:    t.planner.SnapshotData(),
		},
	}
	if err := t.snaps.Save(ctx, snap); err != nil {
		return err
	}
	if err := t.snaps.Prune(ctx, SnapshotsKept); err != nil {
		t.logger.Warn("prune snapshots", zap.Error(err))
	}
	return nil
}

// Entry aggregates every recorded attempt into a leaderboard entry.
func (t *Tracker) Entry(ctx context.Context) (leaderboard.Entry, error) {
	attempts, err := t.events.QueryAttempts(ctx, store.QueryOpts{})
	if err != nil {
		return leaderboard.Entry{Name: t.learner}, err
	}
	return leaderboard.FromAttempts(t.learner, attempts), nil
}
