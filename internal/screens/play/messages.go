package play

import (
	"time"

	"github.com/studygenie/studygenie/internal/progress"
	"github.com/studygenie/studygenie/internal/quiz"
)

// quizReadyMsg is sent when the engine has built the quiz.
type quizReadyMsg struct {
	Instance *quiz.Instance
	Err      error
}

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// finishedMsg is sent once the attempt has been graded and saved.
type finishedMsg struct {
	Result  quiz.Result
	Outcome *progress.Outcome
	Err     error
}
