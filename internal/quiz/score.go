package quiz

import "math"

const (
	// WeakThreshold: a topic below this correctness ratio is a weak area.
	WeakThreshold = 0.7
	// StrongThreshold: a topic at or above this ratio is a strong area.
	// Ratios in [WeakThreshold, StrongThreshold) are in neither list.
	StrongThreshold = 0.8
)

// Result is the graded outcome of a completed quiz.
type Result struct {
	Score        int
	Total        int
	MasteryLevel int
	Answers      []GradedAnswer
	Topics       []TopicPerformance
	WeakAreas    []string
	StrongAreas  []string
}

// Score grades answers against the instance. answers must be aligned with
// the instance's question order; a missing answer counts as incorrect and
// extra answers are ignored. Topics are reported in the order they first
// appear in the quiz.
func Score(in *Instance, answers []AnswerRecord) Result {
	total := in.Len()
	res := Result{Total: total}
	if total == 0 {
		return res
	}

	topicIdx := make(map[string]int)
	for i, q := range in.Questions {
		correct := false
		if i < len(answers) {
			a := answers[i]
			correct = a.SelectedOption == q.CorrectAnswer
			res.Answers = append(res.Answers, GradedAnswer{AnswerRecord: a, Correct: correct})
		}
		if correct {
			res.Score++
		}

		idx, ok := topicIdx[q.Topic]
		if !ok {
			idx = len(res.Topics)
			topicIdx[q.Topic] = idx
			res.Topics = append(res.Topics, TopicPerformance{Topic: q.Topic})
		}
		res.Topics[idx].Total++
		if correct {
			res.Topics[idx].Correct++
		}
	}

	res.MasteryLevel = int(math.Round(float64(res.Score) / float64(total) * 100))

	for _, tp := range res.Topics {
		switch r := tp.Ratio(); {
		case r < WeakThreshold:
			res.WeakAreas = append(res.WeakAreas, tp.Topic)
		case r >= StrongThreshold:
			res.StrongAreas = append(res.StrongAreas, tp.Topic)
		}
	}
	return res
}

// Rating buckets a percentage the way the results screen labels it.
func Rating(percent int) string {
	switch {
	case percent >= 80:
		return "excellent"
	case percent >= 60:
		return "good"
	default:
		return "keep practicing"
	}
}

// Rating labels the mastery level.
func (r Result) Rating() string {
	return Rating(r.MasteryLevel)
}

// XP awards 10 per correct answer and 5 per strong area.
func (r Result) XP() int {
	return r.Score*10 + len(r.StrongAreas)*5
}
