package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var reviewColumns = []string{
	"sequence", "timestamp", "card_id", "topic", "correct",
	"stage_before", "stage_after", "graduated",
}

func (r *eventRepo) AppendFlashcardReview(ctx context.Context, data FlashcardReviewData) error {
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder().Insert(tableFlashcardReviews).
		Columns(reviewColumns...).
		Values(
			seqNum, time.Now().UnixNano(), data.CardID, data.Topic, data.Correct,
			data.StageBefore, data.StageAfter, data.Graduated,
		)
	if err := r.store.exec(ctx, ins); err != nil {
		return fmt.Errorf("save flashcard review: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryFlashcardReviews(ctx context.Context, opts QueryOpts) ([]FlashcardReviewRecord, error) {
	sel := builder().Select(reviewColumns...).From(builder().Table(tableFlashcardReviews))
	applyOpts(sel, opts)

	var records []FlashcardReviewRecord
	err := r.store.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			rec FlashcardReviewRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.CardID, &rec.Topic, &rec.Correct,
			&rec.StageBefore, &rec.StageAfter, &rec.Graduated,
		); err != nil {
			return err
		}
		rec.Timestamp = fromNanos(ts)
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query flashcard reviews: %w", err)
	}
	return records, nil
}
