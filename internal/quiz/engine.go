package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine assembles quizzes from a Catalog. It holds no per-quiz state, so
// one Engine serves any number of quizzes.
type Engine struct {
	catalog Catalog
	rng     Rand
	now     func() time.Time
}

// New creates an Engine. A nil rng falls back to a clock-seeded source.
func New(catalog Catalog, rng Rand) *Engine {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Engine{catalog: catalog, rng: rng, now: time.Now}
}

// Generate builds a quiz for cfg: pool the requested tiers of every topic,
// shuffle, and keep the first cfg.QuestionCount questions. It fails with
// *EmptyPoolError when nothing is left; catalog failures are returned
// wrapped and are not EmptyPoolErrors.
func (e *Engine) Generate(ctx context.Context, cfg Config) (*Instance, error) {
	banks := make(map[string]TierBank, len(cfg.Topics))
	for _, topic := range cfg.Topics {
		if _, done := banks[topic]; done {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bank, ok, err := e.catalog.Bank(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("load %s questions: %w", topic, err)
		}
		if ok {
			banks[topic] = bank
		}
	}

	pool := BuildPool(banks, cfg)
	Shuffle(e.rng, pool)

	n := min(cfg.QuestionCount, len(pool))
	if n <= 0 {
		return nil, &EmptyPoolError{
			Topics:     append([]string(nil), cfg.Topics...),
			Difficulty: cfg.Difficulty,
			Count:      cfg.QuestionCount,
		}
	}

	return &Instance{
		ID:        uuid.NewString(),
		Config:    cfg,
		Questions: pool[:n:n],
		CreatedAt: e.now(),
	}, nil
}

// BuildPool concatenates the candidate questions for cfg, topic by topic
// in the order requested. Adaptive takes every tier; any other selector
// takes only its own tier. Unknown topics and missing tiers contribute
// nothing. A topic listed twice is only pooled once. The result is a fresh
// slice; banks are never modified.
func BuildPool(banks map[string]TierBank, cfg Config) []Question {
	var pool []Question
	seen := make(map[string]bool, len(cfg.Topics))
	for _, topic := range cfg.Topics {
		if seen[topic] {
			continue
		}
		seen[topic] = true

		bank, ok := banks[topic]
		if !ok {
			continue
		}
		if cfg.Difficulty == DifficultyAdaptive {
			for _, tier := range Tiers() {
				pool = append(pool, bank[tier]...)
			}
			continue
		}
		pool = append(pool, bank[cfg.Difficulty]...)
	}
	return pool
}

// RecordAnswer builds the record for the question at currentIndex. It does
// not range-check selected: an out-of-range option simply never matches.
// Advancing the index is the caller's job.
func RecordAnswer(in *Instance, currentIndex, selected int, elapsed time.Duration) AnswerRecord {
	rec := AnswerRecord{
		SelectedOption: selected,
		TimeSpent:      elapsed.Truncate(time.Second),
	}
	if in != nil && currentIndex >= 0 && currentIndex < len(in.Questions) {
		rec.QuestionID = in.Questions[currentIndex].ID
	}
	return rec
}
