package flashcards

import (
	"context"
	"math"
	"time"

	"github.com/studygenie/studygenie/internal/quiz"
)

// ReviewSession walks a fixed list of cards. Each card is shown front
// first; Flip reveals the back and Mark grades it and moves on.
type ReviewSession struct {
	deck    *Deck
	cards   []*Card
	index   int
	flipped bool
	correct int
	marked  int
}

// NewReviewSession starts a session over cards, which should belong to deck.
func NewReviewSession(deck *Deck, cards []*Card) *ReviewSession {
	return &ReviewSession{deck: deck, cards: cards}
}

// Current returns the card on screen, or nil when done.
func (s *ReviewSession) Current() *Card {
	if s.Done() {
		return nil
	}
	return s.cards[s.index]
}

// Index is the position of the current card.
func (s *ReviewSession) Index() int {
	return s.index
}

// Len returns the number of cards in the session.
func (s *ReviewSession) Len() int {
	return len(s.cards)
}

// Flipped reports whether the current card shows its back.
func (s *ReviewSession) Flipped() bool {
	return s.flipped
}

// Flip toggles the current card.
func (s *ReviewSession) Flip() {
	if !s.Done() {
		s.flipped = !s.flipped
	}
}

// Mark grades the current card, updates its schedule in the deck and
// advances. Marking after the last card is a no-op.
func (s *ReviewSession) Mark(ctx context.Context, correct bool, now time.Time) error {
	c := s.Current()
	if c == nil {
		return nil
	}
	if s.deck != nil {
		if _, err := s.deck.Record(ctx, c.ID, correct, now); err != nil {
			return err
		}
	}
	s.marked++
	if correct {
		s.correct++
	}
	s.index++
	s.flipped = false
	return nil
}

// Done reports whether every card has been marked.
func (s *ReviewSession) Done() bool {
	return s.index >= len(s.cards)
}

// Correct returns the number of cards marked correct.
func (s *ReviewSession) Correct() int {
	return s.correct
}

// Accuracy is the rounded percentage of marked cards that were correct.
func (s *ReviewSession) Accuracy() int {
	if s.marked == 0 {
		return 0
	}
	return int(math.Round(float64(s.correct) / float64(s.marked) * 100))
}

// Rating labels the accuracy with the same bands as quiz results.
func (s *ReviewSession) Rating() string {
	return quiz.Rating(s.Accuracy())
}

// Restart goes back to the first card. Schedules already recorded stay.
func (s *ReviewSession) Restart() {
	s.index = 0
	s.flipped = false
	s.correct = 0
	s.marked = 0
}
