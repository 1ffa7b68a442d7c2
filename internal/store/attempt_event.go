package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"id", "sequence", "timestamp", "learner", "topics", "difficulty",
	"focus_mode", "question_count", "score", "total", "mastery", "xp",
	"best_streak", "duration_ms", "weak_areas", "strong_areas",
}

func (r *eventRepo) AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error {
	return r.RecordAttempt(ctx, data, nil)
}

// RecordAttempt inserts the attempt and its answers in one transaction.
// Sequence numbers are reserved up front; a rolled-back attempt leaves a
// gap in the sequence.
func (r *eventRepo) RecordAttempt(ctx context.Context, data QuizAttemptData, answers []AnswerEventData) error {
	if data.ID == "" {
		return fmt.Errorf("save quiz attempt: missing id")
	}
	ins, err := attemptInsert(data)
	if err != nil {
		return err
	}

	first, err := r.store.seq.reserve(ctx, len(answers)+1)
	if err != nil {
		return err
	}
	now := time.Now().UnixNano()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	query, args := ins(first, now).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	for i, a := range answers {
		a.AttemptID = data.ID
		query, args := answerInsert(a, first+1+int64(i), now).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save answer %d: %w", a.Position, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

func attemptInsert(data QuizAttemptData) (func(seq, ts int64) *entsql.InsertBuilder, error) {
	topics, err := encodeList(data.Topics)
	if err != nil {
		return nil, fmt.Errorf("encode topics: %w", err)
	}
	weak, err := encodeList(data.WeakAreas)
	if err != nil {
		return nil, fmt.Errorf("encode weak areas: %w", err)
	}
	strong, err := encodeList(data.StrongAreas)
	if err != nil {
		return nil, fmt.Errorf("encode strong areas: %w", err)
	}
	return func(seq, ts int64) *entsql.InsertBuilder {
		return builder().Insert(tableQuizAttempts).
			Columns(attemptColumns...).
			Values(
				data.ID, seq, ts, data.Learner, topics, data.Difficulty,
				data.FocusMode, data.QuestionCount, data.Score, data.Total, data.Mastery, data.XP,
				data.BestStreak, data.Duration.Milliseconds(), weak, strong,
			)
	}, nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error) {
	sel := builder().Select(attemptColumns...).From(builder().Table(tableQuizAttempts))
	applyOpts(sel, opts)

	var records []QuizAttemptRecord
	err := r.store.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			rec                   QuizAttemptRecord
			ts, durMs             int64
			topics, weak, strong string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.Learner, &topics, &rec.Difficulty,
			&rec.FocusMode, &rec.QuestionCount, &rec.Score, &rec.Total, &rec.Mastery, &rec.XP,
			&rec.BestStreak, &durMs, &weak, &strong,
		); err != nil {
			return err
		}
		rec.Timestamp = fromNanos(ts)
		rec.Duration = time.Duration(durMs) * time.Millisecond

		var err error
		if rec.Topics, err = decodeList(topics); err != nil {
			return fmt.Errorf("decode topics: %w", err)
		}
		if rec.WeakAreas, err = decodeList(weak); err != nil {
			return fmt.Errorf("decode weak areas: %w", err)
		}
		if rec.StrongAreas, err = decodeList(strong); err != nil {
			return fmt.Errorf("decode strong areas: %w", err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	return records, nil
}

var answerColumns = []string{
	"sequence", "timestamp", "attempt_id", "position", "question_id", "subject",
	"topic", "difficulty", "selected", "correct_option", "correct", "time_ms",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if err := r.store.exec(ctx, answerInsert(data, seqNum, time.Now().UnixNano())); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func answerInsert(data AnswerEventData, seq, ts int64) *entsql.InsertBuilder {
	return builder().Insert(tableAnswerEvents).
		Columns(answerColumns...).
		Values(
			seq, ts, data.AttemptID, data.Position, data.QuestionID, data.Subject,
			data.Topic, data.Difficulty, data.Selected, data.CorrectOption, data.Correct, data.TimeSpent.Milliseconds(),
		)
}

func (r *eventRepo) AttemptAnswers(ctx context.Context, attemptID string) ([]AnswerEventRecord, error) {
	sel := builder().Select(answerColumns...).
		From(builder().Table(tableAnswerEvents)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy("position")

	var records []AnswerEventRecord
	err := r.store.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			rec        AnswerEventRecord
			ts, timeMs int64
		)
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.AttemptID, &rec.Position, &rec.QuestionID, &rec.Subject,
			&rec.Topic, &rec.Difficulty, &rec.Selected, &rec.CorrectOption, &rec.Correct, &timeMs,
		); err != nil {
			return err
		}
		rec.Timestamp = fromNanos(ts)
		rec.TimeSpent = time.Duration(timeMs) * time.Millisecond
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return records, nil
}
