// Package flashcards keeps a deck of question/answer cards on an expanding
// review schedule.
package flashcards

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studygenie/studygenie/internal/quiz"
)

// Card is one flashcard.
type Card struct {
	ID         string
	Front      string
	Back       string
	Difficulty quiz.Difficulty
	Subject    string
	Topic      string
	// QuestionID links a card made from a quiz question back to it.
	QuestionID string
	Review     ReviewState
}

// NewCard creates a card that is due immediately.
func NewCard(front, back, subject, topic string, difficulty quiz.Difficulty, now time.Time) *Card {
	return &Card{
		ID:         uuid.NewString(),
		Front:      front,
		Back:       back,
		Difficulty: difficulty,
		Subject:    subject,
		Topic:      topic,
		Review:     ReviewState{NextReview: now},
	}
}

// FromQuestion turns a quiz question into a card. The back is the correct
// option, followed by the explanation when there is one. The card id is
// derived from the question id, so the same question always maps to the
// same card.
func FromQuestion(q quiz.Question, now time.Time) *Card {
	back := q.CorrectOption()
	if exp := strings.TrimSpace(q.Explanation); exp != "" {
		back += "\n\n" + exp
	}
	return &Card{
		ID:         "q-" + q.ID,
		Front:      q.Prompt,
		Back:       back,
		Difficulty: q.Difficulty,
		Subject:    q.Subject,
		Topic:      q.Topic,
		QuestionID: q.ID,
		Review:     ReviewState{NextReview: now},
	}
}

// FromWeakAreas returns cards for every question of a weak topic that the
// learner got wrong, in quiz order.
func FromWeakAreas(in *quiz.Instance, res quiz.Result, now time.Time) []*Card {
	if in == nil || len(res.WeakAreas) == 0 {
		return nil
	}
	weak := make(map[string]bool, len(res.WeakAreas))
	for _, t := range res.WeakAreas {
		weak[t] = true
	}

	var cards []*Card
	for i, q := range in.Questions {
		if !weak[q.Topic] {
			continue
		}
		if i < len(res.Answers) && res.Answers[i].Correct {
			continue
		}
		cards = append(cards, FromQuestion(q, now))
	}
	return cards
}
