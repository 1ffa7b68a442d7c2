package quiz

import "time"

// Session tracks one pass through an Instance. It owns its answers; the
// Instance is shared and never modified. Abandoning a Session needs no
// cleanup.
type Session struct {
	instance   *Instance
	answers    []AnswerRecord
	streak     int
	bestStreak int
}

// NewSession starts a traversal at the first question.
func NewSession(in *Instance) *Session {
	return &Session{
		instance: in,
		answers:  make([]AnswerRecord, 0, in.Len()),
	}
}

// Instance returns the quiz being taken.
func (s *Session) Instance() *Instance {
	return s.instance
}

// Index is the position of the current question. It always equals the
// number of answers recorded so far.
func (s *Session) Index() int {
	return len(s.answers)
}

// Current returns the question awaiting an answer, or nil when done.
func (s *Session) Current() *Question {
	if s.Done() {
		return nil
	}
	return &s.instance.Questions[s.Index()]
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return len(s.answers) >= s.instance.Len()
}

// Answer records the learner's choice for the current question and moves
// on. It returns the record and whether it was correct. Answering after
// the last question is a no-op that returns false.
func (s *Session) Answer(selected int, elapsed time.Duration) (AnswerRecord, bool) {
	if s.Done() {
		return AnswerRecord{}, false
	}
	q := s.instance.Questions[s.Index()]
	rec := RecordAnswer(s.instance, s.Index(), selected, elapsed)
	s.answers = append(s.answers, rec)

	correct := selected == q.CorrectAnswer
	if correct {
		s.streak++
		s.bestStreak = max(s.bestStreak, s.streak)
	} else {
		s.streak = 0
	}
	return rec, correct
}

// Answers returns a copy of the records so far, in question order.
func (s *Session) Answers() []AnswerRecord {
	return append([]AnswerRecord(nil), s.answers...)
}

// Streak is the current run of consecutive correct answers.
func (s *Session) Streak() int {
	return s.streak
}

// BestStreak is the longest run seen in this pass.
func (s *Session) BestStreak() int {
	return s.bestStreak
}

// Progress is the fraction of questions answered, in [0, 1].
func (s *Session) Progress() float64 {
	n := s.instance.Len()
	if n == 0 {
		return 1
	}
	return float64(len(s.answers)) / float64(n)
}

// Remaining returns the time left under the quiz's limit. ok is false for
// untimed quizzes.
func (s *Session) Remaining(elapsed time.Duration) (left time.Duration, ok bool) {
	limit := s.instance.Config.TimeLimit
	if limit <= 0 {
		return 0, false
	}
	return max(limit-elapsed, 0), true
}

// Expired reports whether a timed quiz has run out of time.
func (s *Session) Expired(elapsed time.Duration) bool {
	left, timed := s.Remaining(elapsed)
	return timed && left == 0
}

// Restart clears answers and streaks so the same questions can be retried.
func (s *Session) Restart() {
	s.answers = s.answers[:0]
	s.streak = 0
	s.bestStreak = 0
}

// Result grades the answers so far. Unanswered questions count as wrong,
// which is what a timed-out quiz wants.
func (s *Session) Result() Result {
	return Score(s.instance, s.answers)
}
