package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/llm"
	"github.com/studygenie/studygenie/internal/quiz"
)

// GeneratorConfig controls the LLM question source.
type GeneratorConfig struct {
	// Subjects the generator will answer for. Empty means any subject.
	Subjects []string

	// PerTier is how many questions to request for each tier.
	PerTier int

	// Validators run in order on every generated question; the first
	// failure drops the question.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions bounds the "already asked" list in the prompt.
	MaxPriorQuestions int
}

// DefaultGeneratorConfig returns the standard validator chain and limits.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PerTier:           3,
		Validators:        DefaultValidators(),
		MaxTokens:         2048,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
	}
}

// Generator is a quiz.Catalog backed by an LLM provider. Banks are
// generated on first use and cached for the life of the Generator.
type Generator struct {
	provider llm.Provider
	config   GeneratorConfig
	logger   *zap.Logger

	mu    sync.Mutex
	cache map[string]quiz.TierBank
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(provider llm.Provider, cfg GeneratorConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PerTier <= 0 {
		cfg.PerTier = DefaultGeneratorConfig().PerTier
	}
	return &Generator{
		provider: provider,
		config:   cfg,
		logger:   logger,
		cache:    make(map[string]quiz.TierBank),
	}
}

func (g *Generator) Subjects(_ context.Context) ([]string, error) {
	return append([]string(nil), g.config.Subjects...), nil
}

func (g *Generator) serves(subject string) bool {
	if len(g.config.Subjects) == 0 {
		return true
	}
	for _, s := range g.config.Subjects {
		if strings.EqualFold(s, subject) {
			return true
		}
	}
	return false
}

// Bank generates (or returns the cached) bank for subject. Provider
// failures are returned and nothing is cached, so a later call retries.
func (g *Generator) Bank(ctx context.Context, subject string) (quiz.TierBank, bool, error) {
	if !g.serves(subject) {
		return nil, false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if bank, ok := g.cache[subject]; ok {
		return bank, len(bank) > 0, nil
	}

	bank := quiz.TierBank{}
	var prior []string
	for _, tier := range quiz.Tiers() {
		qs, err := g.generateTier(ctx, subject, tier, prior)
		if err != nil {
			return nil, false, err
		}
		if len(qs) == 0 {
			continue
		}
		bank[tier] = qs
		for _, q := range qs {
			prior = append(prior, q.Prompt)
		}
	}

	g.cache[subject] = bank
	return bank, len(bank) > 0, nil
}

// generatedBatch is the raw LLM response before validation.
type generatedBatch struct {
	Questions []generatedQuestion `json:"questions"`
}

type generatedQuestion struct {
	Question         string   `json:"question"`
	Options          []string `json:"options"`
	Answer           string   `json:"answer"`
	Explanation      string   `json:"explanation"`
	Topic            string   `json:"topic"`
	Concept          string   `json:"concept"`
	TimeEstimateSecs int      `json:"time_estimate_secs"`
}

func (g *Generator) generateTier(ctx context.Context, subject string, tier quiz.Difficulty, prior []string) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: generatorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGeneratorMessage(subject, tier, g.config.PerTier, prior, g.config.MaxPriorQuestions)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate %s %s questions: %w", tier, subject, err)
	}

	var batch generatedBatch
	if err := resp.Decode(&batch); err != nil {
		return nil, fmt.Errorf("parse generated questions: %w", err)
	}

	var out []quiz.Question
	for _, raw := range batch.Questions {
		q := quiz.Question{
			ID:            "gen-" + uuid.NewString(),
			Prompt:        strings.TrimSpace(raw.Question),
			Options:       raw.Options,
			CorrectAnswer: optionIndex(raw.Options, raw.Answer),
			Explanation:   raw.Explanation,
			Difficulty:    tier,
			Subject:       subject,
			Topic:         raw.Topic,
			Concept:       raw.Concept,
			TimeEstimate:  time.Duration(raw.TimeEstimateSecs) * time.Second,
		}
		if q.Topic == "" {
			q.Topic = subject
		}
		if verr := g.validate(&q); verr != nil {
			g.logger.Warn("dropping generated question",
				zap.String("subject", subject),
				zap.String("tier", string(tier)),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message),
			)
			continue
		}
		out = append(out, q)
	}

	g.logger.Debug("generated questions",
		zap.String("subject", subject),
		zap.String("tier", string(tier)),
		zap.Int("requested", g.config.PerTier),
		zap.Int("kept", len(out)),
	)
	return out, nil
}

func (g *Generator) validate(q *quiz.Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
