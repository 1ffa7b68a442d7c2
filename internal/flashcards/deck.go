package flashcards

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/quiz"
	"github.com/studygenie/studygenie/internal/store"
)

// ErrUnknownCard is returned when a card id is not in the deck.
var ErrUnknownCard = errors.New("unknown flashcard")

// ReviewRecorder persists review events. store.EventRepo satisfies it.
type ReviewRecorder interface {
	AppendFlashcardReview(ctx context.Context, data store.FlashcardReviewData) error
}

// Deck holds cards by id, remembering insertion order.
type Deck struct {
	cards  map[string]*Card
	order  []string
	events ReviewRecorder
	logger *zap.Logger
}

// NewDeck creates an empty deck. events and logger may be nil.
func NewDeck(events ReviewRecorder, logger *zap.Logger) *Deck {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deck{
		cards:  make(map[string]*Card),
		events: events,
		logger: logger,
	}
}

// Add inserts cards that are not in the deck yet and returns how many were
// added. Existing cards keep their schedule.
func (d *Deck) Add(cards ...*Card) int {
	added := 0
	for _, c := range cards {
		if c == nil || c.ID == "" {
			continue
		}
		if _, ok := d.cards[c.ID]; ok {
			continue
		}
		d.cards[c.ID] = c
		d.order = append(d.order, c.ID)
		added++
	}
	return added
}

// Remove deletes a card. It reports whether the card existed.
func (d *Deck) Remove(id string) bool {
	if _, ok := d.cards[id]; !ok {
		return false
	}
	delete(d.cards, id)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
	return true
}

// Get returns a card, or nil if absent.
func (d *Deck) Get(id string) *Card {
	return d.cards[id]
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.order)
}

// All returns the cards in insertion order.
func (d *Deck) All() []*Card {
	out := make([]*Card, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.cards[id])
	}
	return out
}

// Filter returns cards matching subject and difficulty, in insertion order.
// Empty filters match everything; subject matching ignores case.
func (d *Deck) Filter(subject string, difficulty quiz.Difficulty) []*Card {
	var out []*Card
	for _, c := range d.All() {
		if subject != "" && !strings.EqualFold(c.Subject, subject) {
			continue
		}
		if difficulty != "" && c.Difficulty != difficulty {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Due returns cards due at now, most overdue first, ties by id.
func (d *Deck) Due(now time.Time) []*Card {
	var due []*Card
	for _, c := range d.cards {
		if c.Review.IsDue(now) {
			due = append(due, c)
		}
	}
	slices.SortFunc(due, func(a, b *Card) int {
		oa, ob := a.Review.OverdueDays(now), b.Review.OverdueDays(now)
		switch {
		case oa > ob:
			return -1
		case oa < ob:
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return due
}

// Record updates a card's schedule after a review and logs the review
// event. A failure to log is reported but does not undo the update.
func (d *Deck) Record(ctx context.Context, id string, correct bool, now time.Time) (*Card, error) {
	c := d.cards[id]
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}

	before := c.Review.Stage
	c.Review.record(correct, now)

	if d.events != nil {
		err := d.events.AppendFlashcardReview(ctx, store.FlashcardReviewData{
			CardID:      c.ID,
			Topic:       c.Topic,
			Correct:     correct,
			StageBefore: before,
			StageAfter:  c.Review.Stage,
			Graduated:   c.Review.Graduated,
		})
		if err != nil {
			d.logger.Warn("failed to record flashcard review",
				zap.String("card", c.ID), zap.Error(err))
		}
	}
	return c, nil
}

// Stats counts cards by review status.
func (d *Deck) Stats(now time.Time) map[ReviewStatus]int {
	stats := make(map[ReviewStatus]int)
	for _, c := range d.cards {
		stats[c.Review.Status(now)]++
	}
	return stats
}
