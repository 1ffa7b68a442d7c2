//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestQuizScenarios runs the quiz feature scenarios.
func TestQuizScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("..", "..", "features", "quiz.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for quiz scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a catalog with questions:$`, state.givenCatalog)
	ctx.Step(`^I generate a (\w+) quiz of (\d+) questions on "([^"]*)"$`, state.whenGenerate)
	ctx.Step(`^I answer every question correctly$`, state.whenAnswerAllCorrect)
	ctx.Step(`^I answer correctly only for "([^"]*)" and one "([^"]*)" question$`, state.whenAnswerMixed)
	ctx.Step(`^the quiz has (\d+) questions$`, state.thenQuizLen)
	ctx.Step(`^every question is from "([^"]*)"$`, state.thenAllFrom)
	ctx.Step(`^generation fails with an empty pool$`, state.thenEmptyPool)
	ctx.Step(`^the score is (\d+) out of (\d+)$`, state.thenScore)
	ctx.Step(`^the mastery level is (\d+)$`, state.thenMastery)
	ctx.Step(`^the weak areas are "([^"]*)"$`, state.thenWeak)
	ctx.Step(`^the strong areas are "([^"]*)"$`, state.thenStrong)
	ctx.Step(`^there are no weak areas$`, state.thenNoWeak)
}

type quizScenarioState struct {
	catalog  *fakeCatalog
	instance *Instance
	err      error
	answers  []AnswerRecord
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	s.catalog = &fakeCatalog{banks: map[string]TierBank{}}
	s.instance = nil
	s.err = nil
	s.answers = nil
}

// givenCatalog loads the question table into the fake catalog.
func (s *quizScenarioState) givenCatalog(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		cell := func(j int) string { return row.Cells[j].Value }
		correct, err := strconv.Atoi(cell(4))
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		diff := Difficulty(cell(3))
		subject := cell(1)
		if s.catalog.banks[subject] == nil {
			s.catalog.banks[subject] = TierBank{}
		}
		s.catalog.banks[subject][diff] = append(s.catalog.banks[subject][diff], Question{
			ID:            cell(0),
			Prompt:        "question " + cell(0),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: correct,
			Difficulty:    diff,
			Subject:       subject,
			Topic:         cell(2),
		})
	}
	return nil
}

// whenGenerate builds a quiz with a fixed seed.
func (s *quizScenarioState) whenGenerate(difficulty string, count int, topics string) error {
	d, ok := ParseDifficulty(difficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q", difficulty)
	}
	var list []string
	for _, t := range strings.Split(topics, ",") {
		list = append(list, strings.TrimSpace(t))
	}
	s.instance, s.err = New(s.catalog, NewRand(11)).Generate(context.Background(), Config{
		Difficulty:    d,
		QuestionCount: count,
		Topics:        list,
	})
	return nil
}

// whenAnswerAllCorrect selects the correct option for every question.
func (s *quizScenarioState) whenAnswerAllCorrect() error {
	if s.instance == nil {
		return fmt.Errorf("no quiz generated: %v", s.err)
	}
	for i, q := range s.instance.Questions {
		s.answers = append(s.answers, RecordAnswer(s.instance, i, q.CorrectAnswer, 0))
	}
	return nil
}

// whenAnswerMixed answers every question of one topic correctly and exactly
// one question of another.
func (s *quizScenarioState) whenAnswerMixed(allTopic, oneTopic string) error {
	if s.instance == nil {
		return fmt.Errorf("no quiz generated: %v", s.err)
	}
	usedOne := false
	for i, q := range s.instance.Questions {
		sel := q.CorrectAnswer + 1
		switch {
		case q.Topic == allTopic:
			sel = q.CorrectAnswer
		case q.Topic == oneTopic && !usedOne:
			sel = q.CorrectAnswer
			usedOne = true
		}
		s.answers = append(s.answers, RecordAnswer(s.instance, i, sel, 0))
	}
	return nil
}

func (s *quizScenarioState) result() Result {
	return Score(s.instance, s.answers)
}

func (s *quizScenarioState) thenQuizLen(n int) error {
	if s.err != nil {
		return s.err
	}
	if got := s.instance.Len(); got != n {
		return fmt.Errorf("expected %d questions, got %d", n, got)
	}
	return nil
}

func (s *quizScenarioState) thenAllFrom(subject string) error {
	for _, q := range s.instance.Questions {
		if q.Subject != subject {
			return fmt.Errorf("question %s is from %s", q.ID, q.Subject)
		}
	}
	return nil
}

func (s *quizScenarioState) thenEmptyPool() error {
	if !errors.Is(s.err, ErrEmptyPool) {
		return fmt.Errorf("expected empty pool error, got %v", s.err)
	}
	return nil
}

func (s *quizScenarioState) thenScore(score, total int) error {
	res := s.result()
	if res.Score != score || res.Total != total {
		return fmt.Errorf("expected %d/%d, got %d/%d", score, total, res.Score, res.Total)
	}
	return nil
}

func (s *quizScenarioState) thenMastery(level int) error {
	if got := s.result().MasteryLevel; got != level {
		return fmt.Errorf("expected mastery %d, got %d", level, got)
	}
	return nil
}

func (s *quizScenarioState) thenWeak(list string) error {
	return sameList("weak", list, s.result().WeakAreas)
}

func (s *quizScenarioState) thenStrong(list string) error {
	return sameList("strong", list, s.result().StrongAreas)
}

func (s *quizScenarioState) thenNoWeak() error {
	if weak := s.result().WeakAreas; len(weak) > 0 {
		return fmt.Errorf("expected no weak areas, got %v", weak)
	}
	return nil
}

func sameList(kind, want string, got []string) error {
	if strings.Join(got, ", ") != want {
		return fmt.Errorf("expected %s areas %q, got %v", kind, want, got)
	}
	return nil
}
