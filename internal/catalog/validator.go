package catalog

import (
	"fmt"
	"strings"

	"github.com/studygenie/studygenie/internal/quiz"
)

// Validator checks a single question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural", "answer-options".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *quiz.Question) *ValidationError
}

// ValidationError describes why a question failed a validator.
type ValidationError struct {
	Validator  string
	QuestionID string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
	}
	return fmt.Sprintf("validator %q: question %s: %s", e.Validator, e.QuestionID, e.Message)
}

// InvalidError collects every problem found in a catalog file.
type InvalidError struct {
	Problems []*ValidationError
}

func (e *InvalidError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid catalog: " + e.Problems[0].Error()
	}
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("invalid catalog: %d problems: %s", len(e.Problems), strings.Join(msgs, "; "))
}

const (
	maxPromptLen      = 500
	maxExplanationLen = 1000
)

// StructuralValidator checks that required fields are present, within
// length limits, and that the correct answer indexes a real option.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(q.ID) == "" {
		return fail("id is empty")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fail("question is empty")
	}
	if len(q.Prompt) > maxPromptLen {
		return fail("question exceeds %d characters", maxPromptLen)
	}
	if len(q.Explanation) > maxExplanationLen {
		return fail("explanation exceeds %d characters", maxExplanationLen)
	}
	if len(q.Options) < 2 {
		return fail("needs at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fail("correct_answer %d out of range [0, %d)", q.CorrectAnswer, len(q.Options))
	}

	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		norm := strings.ToLower(strings.TrimSpace(opt))
		if norm == "" {
			return fail("option %d is empty", i)
		}
		if seen[norm] {
			return fail("duplicate option %q", opt)
		}
		seen[norm] = true
	}
	return nil
}

// AnswerOptionValidator holds generated questions to the shape the quiz
// screens expect: exactly four options and an explanation.
type AnswerOptionValidator struct{}

func (v *AnswerOptionValidator) Name() string { return "answer-options" }

func (v *AnswerOptionValidator) Validate(q *quiz.Question) *ValidationError {
	if len(q.Options) != 4 {
		return &ValidationError{
			Validator:  v.Name(),
			QuestionID: q.ID,
			Message:    fmt.Sprintf("expected exactly 4 options, got %d", len(q.Options)),
		}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ValidationError{Validator: v.Name(), QuestionID: q.ID, Message: "explanation is empty"}
	}
	return nil
}

// DefaultValidators is the chain run on generated questions.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &AnswerOptionValidator{}}
}

// optionIndex finds answer among options the way a learner would type it:
// trimmed and case-insensitive. It returns -1 when absent.
func optionIndex(options []string, answer string) int {
	answer = strings.TrimSpace(answer)
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), answer) {
			return i
		}
	}
	return -1
}
