package flashcards

import "time"

// ReviewState holds the spaced repetition state for a single card.
type ReviewState struct {
	Stage           int
	NextReview      time.Time
	ConsecutiveHits int
	ReviewCount     int
	Graduated       bool
	LastReview      time.Time
}

// IsDue returns true if the card is due for review (at or past the review date).
func (rs *ReviewState) IsDue(now time.Time) bool {
	return !now.Before(rs.NextReview)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (rs *ReviewState) OverdueDays(now time.Time) float64 {
	if now.Before(rs.NextReview) {
		return 0
	}
	return now.Sub(rs.NextReview).Hours() / 24.0
}

// pastGrace returns true once a due card has gone unreviewed for more than
// half its interval.
func (rs *ReviewState) pastGrace(now time.Time) bool {
	if !rs.IsDue(now) {
		return false
	}
	graceHours := float64(rs.CurrentIntervalDays()) * 0.5 * 24.0
	threshold := rs.NextReview.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

// CurrentIntervalDays returns the current interval in days.
func (rs *ReviewState) CurrentIntervalDays() int {
	if rs.Graduated {
		return GraduatedIntervalDays
	}
	if rs.Stage >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[rs.Stage]
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNotDue    ReviewStatus = "not_due"
	ReviewDue       ReviewStatus = "due"
	ReviewOverdue   ReviewStatus = "overdue"
	ReviewGraduated ReviewStatus = "graduated"
)

// Status returns the review status for UI display.
func (rs *ReviewState) Status(now time.Time) ReviewStatus {
	switch {
	case rs.Graduated && !rs.IsDue(now):
		return ReviewGraduated
	case rs.pastGrace(now):
		return ReviewOverdue
	case rs.IsDue(now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (rs *ReviewState) DaysUntilReview(now time.Time) int {
	if rs.IsDue(now) {
		return 0
	}
	return int(rs.NextReview.Sub(now).Hours()/24.0) + 1
}

// record applies one review answer.
func (rs *ReviewState) record(correct bool, now time.Time) {
	rs.LastReview = now
	rs.ReviewCount++

	if !correct {
		rs.ConsecutiveHits = 0
		rs.Stage = 0
		rs.Graduated = false
		rs.NextReview = now.AddDate(0, 0, BaseIntervals[0])
		return
	}

	rs.ConsecutiveHits++
	if !rs.Graduated {
		rs.Stage = min(rs.Stage+1, MaxStage)
		if rs.ConsecutiveHits >= GraduationHits {
			rs.Graduated = true
		}
	}
	rs.NextReview = now.AddDate(0, 0, rs.CurrentIntervalDays())
}
