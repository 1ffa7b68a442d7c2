package quiz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory Catalog with an optional failure.
type fakeCatalog struct {
	banks map[string]TierBank
	err   error
	calls []string
}

func (f *fakeCatalog) Bank(_ context.Context, subject string) (TierBank, bool, error) {
	f.calls = append(f.calls, subject)
	if f.err != nil {
		return nil, false, f.err
	}
	b, ok := f.banks[subject]
	return b, ok, nil
}

func (f *fakeCatalog) Subjects(_ context.Context) ([]string, error) {
	var out []string
	for s := range f.banks {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func q(id, topic string, diff Difficulty, correct int) Question {
	return Question{
		ID:            id,
		Prompt:        "prompt " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: correct,
		Difficulty:    diff,
		Subject:       topic,
		Topic:         topic,
		TimeEstimate:  30 * time.Second,
	}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{banks: map[string]TierBank{
		"Physics": {
			DifficultyEasy:   {q("p1", "Physics", DifficultyEasy, 1), q("p2", "Physics", DifficultyEasy, 1)},
			DifficultyMedium: {q("p3", "Physics", DifficultyMedium, 1), q("p4", "Physics", DifficultyMedium, 1)},
			DifficultyHard:   {q("p5", "Physics", DifficultyHard, 0)},
		},
		"Mathematics": {
			DifficultyEasy:   {q("m1", "Mathematics", DifficultyEasy, 1)},
			DifficultyMedium: {q("m2", "Mathematics", DifficultyMedium, 0)},
			DifficultyHard:   {q("m3", "Mathematics", DifficultyHard, 1)},
		},
		"Biology": {
			DifficultyEasy: {q("b1", "Biology", DifficultyEasy, 2)},
		},
	}}
}

func ids(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestGenerate_TruncatesToAvailablePool(t *testing.T) {
	eng := New(testCatalog(), NewRand(1))

	in, err := eng.Generate(context.Background(), Config{
		Difficulty:    DifficultyEasy,
		QuestionCount: 5,
		Topics:        []string{"Physics"},
	})
	require.NoError(t, err)
	assert.Len(t, in.Questions, 2)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids(in.Questions))
	assert.NotEmpty(t, in.ID)
}

func TestGenerate_TruncatesToQuestionCount(t *testing.T) {
	eng := New(testCatalog(), NewRand(7))

	in, err := eng.Generate(context.Background(), Config{
		Difficulty:    DifficultyAdaptive,
		QuestionCount: 3,
		Topics:        []string{"Physics", "Mathematics"},
	})
	require.NoError(t, err)
	assert.Len(t, in.Questions, 3)
	for _, q := range in.Questions {
		assert.Contains(t, []string{"Physics", "Mathematics"}, q.Subject)
	}
}

func TestGenerate_LengthIsMinOfCountAndPool(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		wantN int
	}{
		{"adaptive physics, ask 10", Config{Difficulty: DifficultyAdaptive, QuestionCount: 10, Topics: []string{"Physics"}}, 5},
		{"adaptive physics, ask 4", Config{Difficulty: DifficultyAdaptive, QuestionCount: 4, Topics: []string{"Physics"}}, 4},
		{"medium two topics", Config{Difficulty: DifficultyMedium, QuestionCount: 10, Topics: []string{"Physics", "Mathematics"}}, 3},
		{"hard one question", Config{Difficulty: DifficultyHard, QuestionCount: 1, Topics: []string{"Mathematics"}}, 1},
		{"unknown topic ignored", Config{Difficulty: DifficultyEasy, QuestionCount: 10, Topics: []string{"Chemistry", "Biology"}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(testCatalog(), NewRand(3))
			in, err := eng.Generate(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.Len(t, in.Questions, tt.wantN)
		})
	}
}

func TestGenerate_EmptyPool(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing tier", Config{Difficulty: DifficultyHard, QuestionCount: 3, Topics: []string{"Biology"}}},
		{"unknown subject", Config{Difficulty: DifficultyEasy, QuestionCount: 3, Topics: []string{"History"}}},
		{"no topics", Config{Difficulty: DifficultyEasy, QuestionCount: 3}},
		{"zero count", Config{Difficulty: DifficultyEasy, QuestionCount: 0, Topics: []string{"Physics"}}},
		{"negative count", Config{Difficulty: DifficultyEasy, QuestionCount: -2, Topics: []string{"Physics"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(testCatalog(), NewRand(1))
			in, err := eng.Generate(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Nil(t, in)
			assert.ErrorIs(t, err, ErrEmptyPool)

			var epe *EmptyPoolError
			require.True(t, errors.As(err, &epe))
			assert.Equal(t, tt.cfg.Difficulty, epe.Difficulty)
		})
	}
}

func TestGenerate_CatalogErrorIsNotEmptyPool(t *testing.T) {
	cat := testCatalog()
	cat.err = errors.New("disk on fire")
	eng := New(cat, NewRand(1))

	_, err := eng.Generate(context.Background(), Config{Difficulty: DifficultyEasy, QuestionCount: 1, Topics: []string{"Physics"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyPool)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat := testCatalog()
	_, err := New(cat, NewRand(1)).Generate(ctx, Config{Difficulty: DifficultyEasy, QuestionCount: 1, Topics: []string{"Physics"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, cat.calls)
}

func TestGenerate_DuplicateTopicPooledOnce(t *testing.T) {
	cat := testCatalog()
	eng := New(cat, NewRand(5))

	in, err := eng.Generate(context.Background(), Config{
		Difficulty:    DifficultyEasy,
		QuestionCount: 10,
		Topics:        []string{"Physics", "Physics"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids(in.Questions))
	assert.Equal(t, []string{"Physics"}, cat.calls)
}

func TestGenerate_DeterministicWithSeed(t *testing.T) {
	cfg := Config{Difficulty: DifficultyAdaptive, QuestionCount: 8, Topics: []string{"Physics", "Mathematics"}}

	a, err := New(testCatalog(), NewRand(42)).Generate(context.Background(), cfg)
	require.NoError(t, err)
	b, err := New(testCatalog(), NewRand(42)).Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, ids(a.Questions), ids(b.Questions))
}

func TestGenerate_DoesNotMutateCatalog(t *testing.T) {
	cat := testCatalog()
	before := ids(cat.banks["Physics"][DifficultyEasy])

	for seed := uint64(1); seed < 20; seed++ {
		_, err := New(cat, NewRand(seed)).Generate(context.Background(), Config{
			Difficulty: DifficultyEasy, QuestionCount: 2, Topics: []string{"Physics"},
		})
		require.NoError(t, err)
	}
	assert.Equal(t, before, ids(cat.banks["Physics"][DifficultyEasy]))
}

func TestBuildPool_AdaptiveUnionsTiersInOrder(t *testing.T) {
	cat := testCatalog()
	pool := BuildPool(cat.banks, Config{Difficulty: DifficultyAdaptive, Topics: []string{"Mathematics", "Biology"}})
	assert.Equal(t, []string{"m1", "m2", "m3", "b1"}, ids(pool))
}

func TestBuildPool_SingleTier(t *testing.T) {
	cat := testCatalog()
	pool := BuildPool(cat.banks, Config{Difficulty: DifficultyMedium, Topics: []string{"Physics", "Biology"}})
	assert.Equal(t, []string{"p3", "p4"}, ids(pool))
}

func TestShuffle_IsPermutation(t *testing.T) {
	cat := testCatalog()
	cfg := Config{Difficulty: DifficultyAdaptive, Topics: []string{"Physics", "Mathematics", "Biology"}}

	for seed := uint64(1); seed <= 50; seed++ {
		pool := BuildPool(cat.banks, cfg)
		want := ids(pool)
		Shuffle(NewRand(seed), pool)
		assert.ElementsMatch(t, want, ids(pool), "seed %d", seed)
	}
}

// scriptedRand returns preset values so the swap sequence can be asserted.
type scriptedRand struct {
	vals []int
	args []int
}

func (s *scriptedRand) IntN(n int) int {
	s.args = append(s.args, n)
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

func TestShuffle_FisherYatesOrder(t *testing.T) {
	qs := []Question{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	rng := &scriptedRand{vals: []int{0, 0, 0}}

	Shuffle(rng, qs)

	// i=3 swaps with 0, i=2 swaps with 0, i=1 swaps with 0.
	assert.Equal(t, []int{4, 3, 2}, rng.args)
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids(qs))
}

func TestShuffle_NoBiasAcrossPositions(t *testing.T) {
	rng := NewRand(99)
	counts := map[string]int{}
	const rounds = 4000
	for range rounds {
		qs := []Question{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
		Shuffle(rng, qs)
		counts[qs[0].ID]++
	}
	for id, n := range counts {
		assert.InDelta(t, rounds/4, n, rounds/10, "first position count for %s", id)
	}
}

func TestRecordAnswer(t *testing.T) {
	in := &Instance{Questions: []Question{q("x1", "Physics", DifficultyEasy, 1), q("x2", "Physics", DifficultyEasy, 2)}}

	rec := RecordAnswer(in, 1, 9, 2500*time.Millisecond)
	assert.Equal(t, AnswerRecord{QuestionID: "x2", SelectedOption: 9, TimeSpent: 2 * time.Second}, rec)

	out := RecordAnswer(in, 5, 0, time.Second)
	assert.Empty(t, out.QuestionID)
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"easy", "medium", "hard", "adaptive"} {
		d, ok := ParseDifficulty(s)
		assert.True(t, ok, s)
		assert.Equal(t, Difficulty(s), d)
	}
	_, ok := ParseDifficulty("impossible")
	assert.False(t, ok)
}

func TestEmptyPoolError_Message(t *testing.T) {
	err := &EmptyPoolError{Topics: []string{"Biology"}, Difficulty: DifficultyHard, Count: 3}
	assert.Equal(t, "no questions available for hard difficulty in [Biology] (requested 3)", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", err), ErrEmptyPool))
}
