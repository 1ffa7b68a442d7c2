package tutor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/llm"
)

// LLMConfig tunes the LLM responder.
type LLMConfig struct {
	MaxTokens      int
	Temperature    float64
	HistoryLimit   int
	FallbackOnFail bool
}

// DefaultLLMConfig returns sensible defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:      1024,
		Temperature:    0.4,
		HistoryLimit:   6,
		FallbackOnFail: true,
	}
}

// LLMResponder asks an llm.Provider for structured answers. When the call
// fails and FallbackOnFail is set, it answers from the static table.
type LLMResponder struct {
	provider llm.Provider
	cfg      LLMConfig
	fallback Responder
	logger   *zap.Logger
}

// NewLLMResponder creates a responder. logger may be nil.
func NewLLMResponder(provider llm.Provider, cfg LLMConfig, logger *zap.Logger) *LLMResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMResponder{
		provider: provider,
		cfg:      cfg,
		fallback: NewStaticResponder(nil),
		logger:   logger,
	}
}

type answerOutput struct {
	Answer          string   `json:"answer"`
	RelatedConcepts []string `json:"related_concepts"`
	Level           string   `json:"level"`
}

func (r *LLMResponder) Respond(ctx context.Context, q Query) (*Answer, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTutor)

	req := llm.Request{
		System:      buildSystemPrompt(q.Subject),
		Messages:    buildMessages(q, r.cfg.HistoryLimit),
		Schema:      AnswerSchema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}

	ans, err := r.generate(ctx, req)
	if err == nil {
		return ans, nil
	}
	if !r.cfg.FallbackOnFail || ctx.Err() != nil {
		return nil, err
	}
	r.logger.Warn("tutor LLM failed, using offline answers", zap.Error(err))
	return r.fallback.Respond(ctx, q)
}

func (r *LLMResponder) generate(ctx context.Context, req llm.Request) (*Answer, error) {
	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tutor answer: %w", err)
	}

	var out answerOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse tutor answer: %w", err)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return nil, fmt.Errorf("parse tutor answer: empty answer")
	}

	level := Level(out.Level)
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		level = LevelIntermediate
	}
	return &Answer{
		Text:            strings.TrimSpace(out.Answer),
		RelatedConcepts: out.RelatedConcepts,
		Level:           level,
	}, nil
}

const systemPrompt = `You are a patient tutor for secondary and early university students.
Answer the student's question accurately in plain English, in 2-5 sentences.
Include the key formula when one applies, with units.
List up to four related concepts the student could study next.
Rate the answer's level as beginner, intermediate or advanced.`

func buildSystemPrompt(subject string) string {
	if subject == "" {
		return systemPrompt
	}
	return systemPrompt + "\nThe student is currently studying " + subject + "."
}

// buildMessages keeps the last limit history messages and appends the query.
func buildMessages(q Query, limit int) []llm.Message {
	history := q.History
	if limit >= 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == SenderTutor {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: q.Text})
}

// AnswerSchema defines the JSON schema for tutor answers.
var AnswerSchema = &llm.Schema{
	Name:        "tutor-answer",
	Description: "A tutor's answer to a student question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "The explanation, 2-5 sentences",
			},
			"related_concepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Up to four concepts to study next",
			},
			"level": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advanced"},
			},
		},
		"required":             []any{"answer", "related_concepts", "level"},
		"additionalProperties": false,
	},
}
