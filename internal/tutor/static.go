package tutor

import (
	"context"
	"slices"
	"strings"
)

// KnownTopic pairs a trigger phrase with a canned answer.
type KnownTopic struct {
	Key    string
	Answer Answer
}

// DefaultTopics is the built-in offline knowledge.
var DefaultTopics = []KnownTopic{
	{
		Key: "electromagnetic waves",
		Answer: Answer{
			Text: "Electromagnetic waves are waves of oscillating electric and magnetic fields, perpendicular to each other and to the direction of travel. " +
				"They move at the speed of light (c = 3×10⁸ m/s) in vacuum and need no medium. " +
				"The spectrum runs from radio waves and microwaves through infrared, visible light and ultraviolet to X-rays and gamma rays.",
			RelatedConcepts: []string{"Electric fields", "Magnetic fields", "Wave properties", "Speed of light"},
			Level:           LevelIntermediate,
		},
	},
	{
		Key: "speed of light",
		Answer: Answer{
			Text: "The speed of light in vacuum, c, is exactly 299,792,458 m/s (about 3×10⁸ m/s). " +
				"Nothing carrying energy or information travels faster. " +
				"Light slows down in materials with a refractive index above 1.",
			RelatedConcepts: []string{"Electromagnetic waves", "Refractive index", "Special relativity"},
			Level:           LevelBeginner,
		},
	},
	{
		Key: "photon energy",
		Answer: Answer{
			Text: "A photon's energy follows Planck's relation E = hf, with h = 6.626×10⁻³⁴ J·s and f the frequency. " +
				"Energy is proportional to frequency, so violet light carries more energy per photon than red light.",
			RelatedConcepts: []string{"Planck constant", "Frequency", "Quantum mechanics", "Photoelectric effect"},
			Level:           LevelIntermediate,
		},
	},
	{
		Key: "newton's second law",
		Answer: Answer{
			Text: "Newton's second law states F = ma: the net force on a body equals its mass times its acceleration. " +
				"Doubling the force doubles the acceleration; doubling the mass halves it.",
			RelatedConcepts: []string{"Force", "Mass", "Acceleration", "Momentum"},
			Level:           LevelBeginner,
		},
	},
	{
		Key: "derivative",
		Answer: Answer{
			Text: "A derivative measures how fast a function changes: f'(x) is the slope of the tangent line at x. " +
				"For powers, d/dx xⁿ = n·xⁿ⁻¹, so the derivative of x² is 2x.",
			RelatedConcepts: []string{"Limits", "Tangent lines", "Power rule", "Integrals"},
			Level:           LevelIntermediate,
		},
	},
}

// FallbackAnswer is returned when no topic matches.
var FallbackAnswer = Answer{
	Text: "Could you be a bit more specific? I can help with topics like electromagnetic waves, " +
		"mechanics, thermodynamics and calculus. Ask about a formula, a concept or a problem you are stuck on.",
	RelatedConcepts: []string{"Ask about specific topics", "Try an example question", "Request a worked problem"},
	Level:           LevelBeginner,
}

// StaticResponder answers from a fixed keyword table. It works offline.
type StaticResponder struct {
	topics   []KnownTopic
	fallback Answer
}

// NewStaticResponder creates a responder over topics. Nil uses DefaultTopics.
func NewStaticResponder(topics []KnownTopic) *StaticResponder {
	if topics == nil {
		topics = DefaultTopics
	}
	return &StaticResponder{topics: topics, fallback: FallbackAnswer}
}

// Respond returns the first topic whose key appears in the query, either
// as written or with its spaces removed. Matching ignores case.
func (r *StaticResponder) Respond(ctx context.Context, q Query) (*Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToLower(q.Text)
	for _, t := range r.topics {
		key := strings.ToLower(t.Key)
		if strings.Contains(text, key) || strings.Contains(text, strings.Join(strings.Fields(key), "")) {
			return cloneAnswer(t.Answer), nil
		}
	}
	return cloneAnswer(r.fallback), nil
}

func cloneAnswer(a Answer) *Answer {
	a.RelatedConcepts = slices.Clone(a.RelatedConcepts)
	return &a
}

// Suggestions returns example questions for the chat screen.
func Suggestions() []string {
	return []string{
		"Explain electromagnetic waves",
		"What is the speed of light?",
		"How do you calculate photon energy?",
		"What does Newton's second law say?",
	}
}
