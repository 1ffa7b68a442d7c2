package catalog

import (
	"fmt"
	"strings"

	"github.com/studygenie/studygenie/internal/llm"
	"github.com/studygenie/studygenie/internal/quiz"
)

const generatorSystemPrompt = `You are a tutor writing multiple-choice practice questions for high-school and early university students.

Rules:
- Write the requested number of questions for the given subject and difficulty tier.
- Each question has exactly 4 options and exactly one correct option.
- "answer" must repeat the text of the correct option exactly.
- Distractors should reflect common misconceptions, not random values.
- "topic" is the sub-area of the subject the question tests, e.g. "Quantum Physics" for Physics.
- "concept" names the specific idea, e.g. "Photon Energy".
- The explanation states why the correct option is right in one or two sentences.
- "time_estimate_secs" is how long a prepared student needs: about 20-40 for easy, 40-60 for medium, 60-120 for hard.
- Do not repeat any question from the "already asked" list.`

// buildGeneratorMessage constructs the user message for one tier.
func buildGeneratorMessage(subject string, tier quiz.Difficulty, count int, prior []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "Tier: %s\n", tier)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(prior, maxPrior))

	return b.String()
}

// buildDedup formats prior questions for the prompt, keeping the most
// recent max. Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// QuestionBatchSchema is the structured output requested from the LLM.
var QuestionBatchSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A batch of multiple-choice practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The text of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Sub-area of the subject",
						},
						"concept": map[string]any{
							"type":        "string",
							"description": "The specific concept tested",
						},
						"time_estimate_secs": map[string]any{
							"type":    "integer",
							"minimum": 5,
							"maximum": 600,
						},
					},
					"required":             []any{"question", "options", "answer", "explanation", "topic", "concept", "time_estimate_secs"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
