package flashcards

import (
	"time"

	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/store"
)

// SnapshotData exports the deck for persistence.
func (d *Deck) SnapshotData() *store.FlashcardSnapshotData {
	data := &store.FlashcardSnapshotData{Cards: make([]store.CardData, 0, len(d.order))}
	for _, c := range d.All() {
		cd := store.CardData{
			ID:              c.ID,
			Front:           c.Front,
			Back:            c.Back,
			Difficulty:      string(c.Difficulty),
			Subject:         c.Subject,
			Topic:           c.Topic,
			QuestionID:      c.QuestionID,
			Stage:           c.Review.Stage,
			NextReviewDate:  c.Review.NextReview.Format(time.RFC3339),
			ConsecutiveHits: c.Review.ConsecutiveHits,
			ReviewCount:     c.Review.ReviewCount,
			Graduated:       c.Review.Graduated,
		}
		if !c.Review.LastReview.IsZero() {
			cd.LastReviewDate = c.Review.LastReview.Format(time.RFC3339)
		}
		data.Cards = append(data.Cards, cd)
	}
	return data
}

// Restore rebuilds a deck from snapshot data. Cards with an unparseable
// review date are skipped and logged.
func Restore(data *store.FlashcardSnapshotData, events ReviewRecorder, logger *zap.Logger) *Deck {
	d := NewDeck(events, logger)
	if data == nil {
		return d
	}
	for _, cd := range data.Cards {
		next, err := time.Parse(time.RFC3339, cd.NextReviewDate)
		if err != nil {
			d.logger.Warn("skipping flashcard with bad review date",
				zap.String("card", cd.ID), zap.Error(err))
			continue
		}
		var last time.Time
		if cd.LastReviewDate != "" {
			if last, err = time.Parse(time.RFC3339, cd.LastReviewDate); err != nil {
				last = time.Time{}
			}
		}
		d.Add(&Card{
			ID:         cd.ID,
			Front:      cd.Front,
			Back:       cd.Back,
			Difficulty: quiz.Difficulty(cd.Difficulty),
			Subject:    cd.Subject,
			Topic:      cd.Topic,
			QuestionID: cd.QuestionID,
			Review: ReviewState{
				Stage:           cd.Stage,
				NextReview:      next,
				ConsecutiveHits: cd.ConsecutiveHits,
				ReviewCount:     cd.ReviewCount,
				Graduated:       cd.Graduated,
				LastReview:      last,
			},
		})
	}
	return d
}
