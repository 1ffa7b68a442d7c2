package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMEventFilter narrows an LLM event query. Empty fields match everything.
type LLMEventFilter struct {
	QueryOpts
	Purpose    string
	FailedOnly bool
}

// SnapshotData captures the learner state at a point in time.
type SnapshotData struct {
	Version    int                    `json:"version"`
	Flashcards *FlashcardSnapshotData `json:"flashcards,omitempty"`
	Planner    *PlannerSnapshotData   `json:"planner,omitempty"`
}

// CurrentSnapshotVersion is written into every new snapshot.
const CurrentSnapshotVersion = 1

// FlashcardSnapshotData holds the flashcard deck.
type FlashcardSnapshotData struct {
	Cards []CardData `json:"cards"`
}

// CardData is a flashcard with its review schedule. Dates are RFC 3339.
type CardData struct {
	ID              string `json:"id"`
	Front           string `json:"front"`
	Back            string `json:"back"`
	Difficulty      string `json:"difficulty"`
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	QuestionID      string `json:"question_id,omitempty"`
	Stage           int    `json:"stage"`
	NextReviewDate  string `json:"next_review_date"`
	ConsecutiveHits int    `json:"consecutive_hits"`
	ReviewCount     int    `json:"review_count"`
	Graduated       bool   `json:"graduated"`
	LastReviewDate  string `json:"last_review_date,omitempty"`
}

// PlannerSnapshotData holds goals, study sessions and topic mastery.
type PlannerSnapshotData struct {
	Goals    []GoalData         `json:"goals"`
	Sessions []StudySessionData `json:"sessions"`
	Topics   []TopicMasteryData `json:"topics"`
}

// GoalData is a persisted study goal.
type GoalData struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Subject        string   `json:"subject"`
	TargetDate     string   `json:"target_date"`
	Priority       string   `json:"priority"`
	TotalHours     float64  `json:"total_hours"`
	CompletedHours float64  `json:"completed_hours"`
	Topics         []string `json:"topics,omitempty"`
	Status         string   `json:"status"`
}

// StudySessionData is a persisted study session.
type StudySessionData struct {
	ID          string `json:"id"`
	GoalID      string `json:"goal_id,omitempty"`
	Topic       string `json:"topic"`
	Kind        string `json:"kind"`
	Started     string `json:"started"`
	DurationMin int    `json:"duration_min"`
	Focus       int    `json:"focus"`
	Completed   bool   `json:"completed"`
}

// TopicMasteryData is a persisted per-topic mastery entry.
type TopicMasteryData struct {
	Subject     string `json:"subject"`
	Topic       string `json:"topic"`
	Mastery     int    `json:"mastery"`
	Attempts    int    `json:"attempts"`
	LastStudied string `json:"last_studied,omitempty"`
	Streak      int    `json:"streak"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// QuizAttemptData captures one finished (or timed-out) quiz.
type QuizAttemptData struct {
	ID            string
	Learner       string
	Topics        []string
	Difficulty    string
	FocusMode     string
	QuestionCount int
	Score         int
	Total         int
	Mastery       int
	XP            int
	BestStreak    int
	Duration      time.Duration
	WeakAreas     []string
	StrongAreas   []string
}

// QuizAttemptRecord is a stored quiz attempt.
type QuizAttemptRecord struct {
	QuizAttemptData
	Sequence  int64
	Timestamp time.Time
}

// AnswerEventData captures the learner's response to one quiz question.
type AnswerEventData struct {
	AttemptID     string
	Position      int
	QuestionID    string
	Subject       string
	Topic         string
	Difficulty    string
	Selected      int
	CorrectOption int
	Correct       bool
	TimeSpent     time.Duration
}

// AnswerEventRecord is a stored answer.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// FlashcardReviewData captures one flashcard review.
type FlashcardReviewData struct {
	CardID      string
	Topic       string
	Correct     bool
	StageBefore int
	StageAfter  int
	Graduated   bool
}

// FlashcardReviewRecord is a stored flashcard review.
type FlashcardReviewRecord struct {
	FlashcardReviewData
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// PurposeUsage is the token usage of one LLM purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage is the token usage of one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events. Every
// append takes the next value of a global sequence, so events of
// different kinds can be ordered against each other.
type EventRepo interface {
	// AppendQuizAttempt records a graded quiz.
	AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error

	// RecordAttempt records a graded quiz together with its answers. Either
	// every row is written or none is.
	RecordAttempt(ctx context.Context, data QuizAttemptData, answers []AnswerEventData) error

	// AppendAnswer records one answer of an attempt. The attempt must
	// already exist.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error)

	// AttemptAnswers returns an attempt's answers in question order.
	AttemptAnswers(ctx context.Context, attemptID string) ([]AnswerEventRecord, error)

	// AppendFlashcardReview records a flashcard review.
	AppendFlashcardReview(ctx context.Context, data FlashcardReviewData) error

	// QueryFlashcardReviews returns reviews newest first.
	QueryFlashcardReviews(ctx context.Context, opts QueryOpts) ([]FlashcardReviewRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns matching LLM request events newest first.
	QueryLLMEvents(ctx context.Context, filter LLMEventFilter) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM request event, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates LLM calls per model id.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// Reset deletes every event and snapshot and restarts the sequence.
	Reset(ctx context.Context) error
}
