package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygenie/studygenie/internal/quiz"
)

const smallCatalog = `
version: v1.2.0
subjects:
  Physics:
    easy:
      - id: p1
        question: What is the unit of force?
        options: [Newton, Joule, Watt, Pascal]
        correct_answer: 0
        explanation: Force is measured in newtons.
        topic: Mechanics
        time_estimate_secs: 15
      - id: p2
        question: What carries electric charge in a wire?
        options: [Protons, Electrons]
        correct_answer: 1
  Astronomy:
    medium:
      - id: a1
        question: Which planet is largest?
        options: [Earth, Mars, Jupiter, Venus]
        correct_answer: 2
`

func TestParse_YAML(t *testing.T) {
	f, err := Parse([]byte(smallCatalog), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", f.Version)
	assert.Equal(t, []string{"Physics", "Astronomy"}, f.SubjectNames())

	banks := f.Banks()
	require.Len(t, banks["Physics"][quiz.DifficultyEasy], 2)

	p1 := banks["Physics"][quiz.DifficultyEasy][0]
	assert.Equal(t, quiz.Question{
		ID:            "p1",
		Prompt:        "What is the unit of force?",
		Options:       []string{"Newton", "Joule", "Watt", "Pascal"},
		CorrectAnswer: 0,
		Explanation:   "Force is measured in newtons.",
		Difficulty:    quiz.DifficultyEasy,
		Subject:       "Physics",
		Topic:         "Mechanics",
		TimeEstimate:  15 * time.Second,
	}, p1)

	// No topic falls back to the subject.
	assert.Equal(t, "Physics", banks["Physics"][quiz.DifficultyEasy][1].Topic)
	assert.Equal(t, quiz.DifficultyMedium, banks["Astronomy"][quiz.DifficultyMedium][0].Difficulty)
	assert.Empty(t, banks["Astronomy"][quiz.DifficultyHard])
}

func TestParse_JSON(t *testing.T) {
	doc := `{"version": "v1.0.0", "subjects": {"Chemistry": {"hard": [
  {"id": "c1", "question": "Symbol for gold?", "options": ["Ag", "Au", "Gd"], "correct_answer": 1}
]}}}`
	f, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Au", f.Banks()["Chemistry"][quiz.DifficultyHard][0].CorrectOption())
}

func TestParse_Version(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"v1", true},
		{"v1.0", true},
		{"v1.9.3", true},
		{"v2.0.0", false},
		{"v0.9.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := "version: " + tt.version + `
subjects:
  Physics:
    easy:
      - {id: x, question: "Q?", options: [a, b], correct_answer: 0}
`
			_, err := Parse([]byte(doc), FormatYAML)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, "unsupported catalog version")
			}
		})
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing version", "subjects: {Physics: {}}"},
		{"no subjects", "version: v1.0.0\nsubjects: {}"},
		{"unknown tier", "version: v1.0.0\nsubjects: {Physics: {extreme: []}}"},
		{"missing options", "version: v1.0.0\nsubjects: {Physics: {easy: [{id: a, question: \"Q?\", correct_answer: 0}]}}"},
		{"numeric id", "version: v1.0.0\nsubjects: {Physics: {easy: [{id: 7, question: \"Q?\", options: [a, b], correct_answer: 0}]}}"},
		{"unknown field", "version: v1.0.0\nsubjects: {Physics: {easy: [{id: a, question: \"Q?\", options: [a, b], correct_answer: 0, hint: x}]}}"},
		{"not a mapping", "- just\n- a list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatYAML)
			require.Error(t, err)
			assert.ErrorContains(t, err, "catalog schema")
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("version: [unterminated"), FormatYAML)
	assert.ErrorContains(t, err, "decode catalog")
}

func TestParse_CollectsEveryProblem(t *testing.T) {
	doc := `
version: v1.0.0
subjects:
  Physics:
    easy:
      - {id: a, question: "Q1?", options: [x, y], correct_answer: 5}
      - {id: b, question: "Q2?", options: [only], correct_answer: 0}
  Mathematics:
    hard:
      - {id: a, question: "Q3?", options: [x, X], correct_answer: 0}
`
	_, err := Parse([]byte(doc), FormatYAML)
	require.Error(t, err)

	var inv *InvalidError
	require.True(t, errors.As(err, &inv))
	require.Len(t, inv.Problems, 4)

	assert.Equal(t, "a", inv.Problems[0].QuestionID)
	assert.Contains(t, inv.Problems[0].Message, "out of range")
	assert.Equal(t, "b", inv.Problems[1].QuestionID)
	assert.Contains(t, inv.Problems[1].Message, "at least 2 options")
	assert.Contains(t, inv.Problems[2].Message, "duplicate option")
	assert.Equal(t, "unique-id", inv.Problems[3].Validator)
	assert.Contains(t, err.Error(), "4 problems")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.yml")
	require.NoError(t, os.WriteFile(path, []byte(smallCatalog), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Subjects, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read catalog")

	_, err = Load(filepath.Join(dir, "catalog.toml"))
	assert.ErrorContains(t, err, "unsupported catalog extension")
}

func TestMarshal_ParsesBack(t *testing.T) {
	f, err := Parse([]byte(smallCatalog), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		data, err := f.Marshal(format)
		require.NoError(t, err)
		back, err := Parse(data, format)
		require.NoError(t, err, string(data))
		assert.Equal(t, f.Banks(), back.Banks())
	}
}

func TestDefault(t *testing.T) {
	cat := Default()
	ctx := context.Background()

	subjects, err := cat.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics", "Mathematics", "Chemistry", "Biology"}, subjects)

	physics, ok, err := cat.Bank(ctx, "Physics")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, physics[quiz.DifficultyEasy], 2)
	assert.Len(t, physics[quiz.DifficultyMedium], 2)
	assert.Len(t, physics[quiz.DifficultyHard], 1)

	biology, ok, err := cat.Bank(ctx, "Biology")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, biology[quiz.DifficultyHard])

	_, ok, err = cat.Bank(ctx, "History")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefault_DrivesEngine(t *testing.T) {
	eng := quiz.New(Default(), quiz.NewRand(1))

	in, err := eng.Generate(context.Background(), quiz.Config{
		Difficulty: quiz.DifficultyEasy, QuestionCount: 5, Topics: []string{"Physics"},
	})
	require.NoError(t, err)
	assert.Len(t, in.Questions, 2)

	_, err = eng.Generate(context.Background(), quiz.Config{
		Difficulty: quiz.DifficultyHard, QuestionCount: 3, Topics: []string{"Biology"},
	})
	assert.ErrorIs(t, err, quiz.ErrEmptyPool)
}

func TestFromBanks_Order(t *testing.T) {
	cat := FromBanks(map[string]quiz.TierBank{"B": {}, "A": {}, "C": {}}, "C")
	subjects, err := cat.Subjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, subjects)
}
