package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendAttempt(t *testing.T, repo EventRepo, id string, score, total int) {
	t.Helper()
	require.NoError(t, repo.AppendQuizAttempt(context.Background(), QuizAttemptData{
		ID:            id,
		Learner:       "ada",
		Topics:        []string{"Physics", "Mathematics"},
		Difficulty:    "medium",
		FocusMode:     "adaptive",
		QuestionCount: total,
		Score:         score,
		Total:         total,
		Mastery:       score * 100 / total,
		XP:            score*10 + 5,
		BestStreak:    score,
		Duration:      90 * time.Second,
		WeakAreas:     []string{"Physics"},
	}))
}

func TestAppendAndQueryAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAttempt(t, repo, "a1", 2, 4)
	appendAttempt(t, repo, "a2", 4, 4)

	got, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "a2", got[0].ID)
	assert.Equal(t, "a1", got[1].ID)
	assert.Greater(t, got[0].Sequence, got[1].Sequence)

	a := got[1]
	assert.Equal(t, []string{"Physics", "Mathematics"}, a.Topics)
	assert.Equal(t, []string{"Physics"}, a.WeakAreas)
	assert.Nil(t, a.StrongAreas)
	assert.Equal(t, 50, a.Mastery)
	assert.Equal(t, 90*time.Second, a.Duration)
	assert.Equal(t, "adaptive", a.FocusMode)
	assert.WithinDuration(t, time.Now(), a.Timestamp, time.Minute)
}

func TestQueryAttempts_Opts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		appendAttempt(t, repo, id, 1, 4)
	}

	got, err := repo.QueryAttempts(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a3", got[0].ID)

	got, err = repo.QueryAttempts(ctx, QueryOpts{After: 1, Before: 3})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)

	got, err = repo.QueryAttempts(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendQuizAttempt_RequiresID(t *testing.T) {
	s := openTestStore(t)
	err := s.EventRepo().AppendQuizAttempt(context.Background(), QuizAttemptData{Total: 1})
	assert.ErrorContains(t, err, "missing id")
}

func TestAnswersBelongToAttempt(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAttempt(t, repo, "a1", 1, 2)
	require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{
		AttemptID: "a1", Position: 1, QuestionID: "q2", Topic: "Optics",
		Selected: 0, CorrectOption: 1, Correct: false, TimeSpent: 4 * time.Second,
	}))
	require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{
		AttemptID: "a1", Position: 0, QuestionID: "q1", Topic: "Optics",
		Selected: 2, CorrectOption: 2, Correct: true, TimeSpent: 3 * time.Second,
	}))

	answers, err := repo.AttemptAnswers(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "q1", answers[0].QuestionID)
	assert.True(t, answers[0].Correct)
	assert.False(t, answers[1].Correct)
	assert.Equal(t, 4*time.Second, answers[1].TimeSpent)

	none, err := repo.AttemptAnswers(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// rejectAnswers makes SQLite abort any answer insert for questionID.
func rejectAnswers(t *testing.T, s *Store, questionID string) {
	t.Helper()
	_, err := s.DB().Exec(`CREATE TRIGGER reject_answer BEFORE INSERT ON answer_events
		WHEN NEW.question_id = '` + questionID + `'
		BEGIN SELECT RAISE(ABORT, 'answer rejected'); END`)
	require.NoError(t, err)
}

func TestRecordAttempt(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.RecordAttempt(ctx, QuizAttemptData{ID: "a1", Difficulty: "easy", Total: 2}, []AnswerEventData{
		{Position: 0, QuestionID: "q1", Selected: 1, CorrectOption: 1, Correct: true},
		{Position: 1, QuestionID: "q2", Selected: -1, CorrectOption: 0},
	})
	require.NoError(t, err)

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	answers, err := repo.AttemptAnswers(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "a1", answers[1].AttemptID)
	assert.Equal(t, -1, answers[1].Selected)
	assert.Equal(t, attempts[0].Sequence+1, answers[0].Sequence)
	assert.Equal(t, attempts[0].Sequence+2, answers[1].Sequence)
}

func TestRecordAttempt_AllOrNothing(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	rejectAnswers(t, s, "q2")

	err := repo.RecordAttempt(ctx, QuizAttemptData{ID: "a1", Difficulty: "easy", Total: 3}, []AnswerEventData{
		{Position: 0, QuestionID: "q1"},
		{Position: 1, QuestionID: "q2"},
		{Position: 2, QuestionID: "q3"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "save answer 1")

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, attempts)

	answers, err := repo.AttemptAnswers(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, answers)

	// A later attempt still commits.
	appendAttempt(t, repo, "a2", 1, 2)
	attempts, err = repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestFlashcardReviews(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendFlashcardReview(ctx, FlashcardReviewData{CardID: "c1", Topic: "Optics", Correct: true, StageBefore: 0, StageAfter: 1}))
	require.NoError(t, repo.AppendFlashcardReview(ctx, FlashcardReviewData{CardID: "c1", Topic: "Optics", Correct: true, StageBefore: 5, StageAfter: 6, Graduated: true}))

	got, err := repo.QueryFlashcardReviews(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Graduated)
	assert.Equal(t, 6, got[0].StageAfter)
	assert.False(t, got[1].Graduated)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 1200, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"questions":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "tutor",
		Success: false, ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, LLMEventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "tutor", events[0].Purpose)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)

	ev, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, `{"questions":[]}`, ev.ResponseBody)
	assert.Equal(t, int64(1200), ev.LatencyMs)
	assert.True(t, ev.Success)

	failed, err := repo.QueryLLMEvents(ctx, LLMEventFilter{FailedOnly: true})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "tutor", failed[0].Purpose)

	gen, err := repo.QueryLLMEvents(ctx, LLMEventFilter{Purpose: "question-gen", QueryOpts: QueryOpts{Limit: 5}})
	require.NoError(t, err)
	require.Len(t, gen, 1)
	assert.Equal(t, 50, gen[0].OutputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSequenceIsSharedAcrossEventKinds(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAttempt(t, repo, "a1", 1, 1)
	require.NoError(t, repo.AppendFlashcardReview(ctx, FlashcardReviewData{CardID: "c1"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "tutor", Success: true}))

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	reviews, err := repo.QueryFlashcardReviews(ctx, QueryOpts{})
	require.NoError(t, err)
	llm, err := repo.QueryLLMEvents(ctx, LLMEventFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), attempts[0].Sequence)
	assert.Equal(t, int64(2), reviews[0].Sequence)
	assert.Equal(t, int64(3), llm[0].Sequence)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAttempt(t, repo, "a1", 1, 1)
	require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{AttemptID: "a1", QuestionID: "q1", Correct: true}))
	require.NoError(t, repo.AppendFlashcardReview(ctx, FlashcardReviewData{CardID: "c1"}))
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 3, Timestamp: time.Now(), Data: SnapshotData{Version: 1}}))

	require.NoError(t, repo.Reset(ctx))

	for _, table := range []string{tableQuizAttempts, tableAnswerEvents, tableFlashcardReviews, tableLLMRequests, tableSnapshots} {
		assert.Zero(t, countRows(t, s, table), table)
	}

	appendAttempt(t, repo, "a2", 1, 1)
	attempts, err := repo.QueryAttempts(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, int64(1), attempts[0].Sequence)
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, ev := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "tutor", InputTokens: 100, OutputTokens: 40, LatencyMs: 1000, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "tutor", InputTokens: 50, OutputTokens: 10, LatencyMs: 3000, Success: true},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "question-gen", InputTokens: 500, OutputTokens: 900, LatencyMs: 5000, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, ev))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "question-gen", Calls: 1, InputTokens: 500, OutputTokens: 900, AvgLatencyMs: 5000}, byPurpose[0])
	assert.Equal(t, PurposeUsage{Purpose: "tutor", Calls: 2, InputTokens: 150, OutputTokens: 50, AvgLatencyMs: 2000}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-haiku", byModel[0].Model)
	assert.Equal(t, 2, byModel[1].Calls)
	assert.Equal(t, 150, byModel[1].InputTokens)
}
