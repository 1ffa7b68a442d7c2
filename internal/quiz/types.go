package quiz

import (
	"context"
	"time"
)

// Difficulty is a question tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyAdaptive is a selector only: it pools every tier of a
	// subject. No question carries it.
	DifficultyAdaptive Difficulty = "adaptive"
)

// Tiers returns the concrete difficulty tiers in ascending order.
func Tiers() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty parses a selector string. Unknown values return false.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyAdaptive:
		return d, true
	}
	return "", false
}

// Question is a single multiple-choice question from the catalog.
// Questions are never mutated after they are loaded.
type Question struct {
	ID            string
	Prompt        string
	Options       []string
	CorrectAnswer int
	Explanation   string
	Difficulty    Difficulty

	// Subject is the catalog partition the question belongs to,
	// e.g. "Physics". Topic is the finer label scoring groups by.
	Subject string
	Topic   string
	Concept string

	TimeEstimate time.Duration
}

// CorrectOption returns the text of the correct option, or "" when the
// catalog entry is malformed.
func (q Question) CorrectOption() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// FocusMode tags the intent of a quiz. It does not change selection.
type FocusMode string

const (
	FocusLearning FocusMode = "learning"
	FocusReview   FocusMode = "review"
	FocusTest     FocusMode = "test"
)

// ParseFocus parses a focus mode. Unknown values return false.
func ParseFocus(s string) (FocusMode, bool) {
	switch f := FocusMode(s); f {
	case FocusLearning, FocusReview, FocusTest:
		return f, true
	}
	return "", false
}

// Config describes the quiz a learner asked for.
type Config struct {
	Difficulty    Difficulty
	QuestionCount int
	// Topics are subject labels, looked up in the catalog in order.
	Topics []string
	// TimeLimit is the total time allowed. Zero means untimed.
	TimeLimit time.Duration
	FocusMode FocusMode
}

// DefaultConfig mirrors the settings a fresh quiz setup starts from.
func DefaultConfig() Config {
	return Config{
		Difficulty:    DifficultyMedium,
		QuestionCount: 5,
		Topics:        []string{"Physics"},
		FocusMode:     FocusLearning,
	}
}

// Instance is one generated quiz. The question order is fixed at creation.
type Instance struct {
	ID        string
	Config    Config
	Questions []Question
	CreatedAt time.Time
}

// Len returns the number of questions.
func (in *Instance) Len() int {
	if in == nil {
		return 0
	}
	return len(in.Questions)
}

// AnswerRecord is the learner's response to one question.
type AnswerRecord struct {
	QuestionID     string
	SelectedOption int
	TimeSpent      time.Duration
}

// GradedAnswer is an AnswerRecord with its correctness resolved.
type GradedAnswer struct {
	AnswerRecord
	Correct bool
}

// TopicPerformance is the per-topic tally used for weak/strong areas.
type TopicPerformance struct {
	Topic   string
	Correct int
	Total   int
}

// Ratio returns Correct/Total, or 0 for an empty tally.
func (tp TopicPerformance) Ratio() float64 {
	if tp.Total == 0 {
		return 0
	}
	return float64(tp.Correct) / float64(tp.Total)
}

// TierBank holds a subject's questions by tier.
type TierBank map[Difficulty][]Question

// Catalog is the read-only question source the engine draws from.
// Implementations may be slow (files, LLM generation); the engine passes
// its context through.
type Catalog interface {
	// Bank returns the tiers for a subject. ok is false when the subject
	// is unknown.
	Bank(ctx context.Context, subject string) (bank TierBank, ok bool, err error)

	// Subjects lists the subjects the catalog knows about.
	Subjects(ctx context.Context) ([]string, error)
}
