package flashcards

import (
	"testing"
	"time"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		next time.Time
		want bool
	}{
		{"before date", now.Add(24 * time.Hour), false},
		{"on date", now, true},
		{"after date", now.Add(-48 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &ReviewState{NextReview: tt.next}
			if got := rs.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverdueDays(t *testing.T) {
	reviewDate := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rs := &ReviewState{NextReview: reviewDate}

	if got := rs.OverdueDays(reviewDate.Add(-time.Hour)); got != 0 {
		t.Errorf("OverdueDays() before due = %f, want 0", got)
	}
	got := rs.OverdueDays(reviewDate.Add(3 * 24 * time.Hour))
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays() = %f, want ~3.0", got)
	}
}

func TestStatus(t *testing.T) {
	reviewDate := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rs   ReviewState
		now  time.Time
		want ReviewStatus
	}{
		{"not due", ReviewState{Stage: 2, NextReview: reviewDate}, reviewDate.Add(-time.Hour), ReviewNotDue},
		// Stage 2 (7 days): grace is 3.5 days.
		{"due within grace", ReviewState{Stage: 2, NextReview: reviewDate}, reviewDate.Add(2 * 24 * time.Hour), ReviewDue},
		{"overdue past grace", ReviewState{Stage: 2, NextReview: reviewDate}, reviewDate.Add(4 * 24 * time.Hour), ReviewOverdue},
		{"graduated resting", ReviewState{Graduated: true, NextReview: reviewDate}, reviewDate.Add(-time.Hour), ReviewGraduated},
		{"graduated due", ReviewState{Graduated: true, NextReview: reviewDate}, reviewDate.Add(time.Hour), ReviewDue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rs.Status(tt.now); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrentIntervalDays(t *testing.T) {
	for stage, want := range BaseIntervals {
		rs := &ReviewState{Stage: stage}
		if got := rs.CurrentIntervalDays(); got != want {
			t.Errorf("stage %d: interval = %d, want %d", stage, got, want)
		}
	}
	if got := (&ReviewState{Stage: 99}).CurrentIntervalDays(); got != 60 {
		t.Errorf("stage past end: interval = %d, want 60", got)
	}
	if got := (&ReviewState{Graduated: true}).CurrentIntervalDays(); got != GraduatedIntervalDays {
		t.Errorf("graduated: interval = %d, want %d", got, GraduatedIntervalDays)
	}
}

func TestDaysUntilReview(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rs := &ReviewState{NextReview: now.Add(36 * time.Hour)}
	if got := rs.DaysUntilReview(now); got != 2 {
		t.Errorf("DaysUntilReview() = %d, want 2", got)
	}
	if got := rs.DaysUntilReview(now.Add(48 * time.Hour)); got != 0 {
		t.Errorf("DaysUntilReview() when due = %d, want 0", got)
	}
}

func TestRecord_ExpandingSchedule(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := &ReviewState{NextReview: now}

	wantIntervals := []int{3, 7, 14, 30, 60}
	for i, days := range wantIntervals {
		rs.record(true, now)
		if rs.Stage != i+1 {
			t.Fatalf("hit %d: stage = %d, want %d", i+1, rs.Stage, i+1)
		}
		if want := now.AddDate(0, 0, days); !rs.NextReview.Equal(want) {
			t.Errorf("hit %d: next review = %v, want %v", i+1, rs.NextReview, want)
		}
		if rs.Graduated {
			t.Fatalf("hit %d: graduated too early", i+1)
		}
	}

	// Sixth consecutive hit graduates.
	rs.record(true, now)
	if !rs.Graduated {
		t.Fatal("expected graduation after 6 consecutive hits")
	}
	if rs.Stage != MaxStage {
		t.Errorf("stage = %d, want %d", rs.Stage, MaxStage)
	}
	if want := now.AddDate(0, 0, GraduatedIntervalDays); !rs.NextReview.Equal(want) {
		t.Errorf("graduated next review = %v, want %v", rs.NextReview, want)
	}
	if rs.ReviewCount != 6 {
		t.Errorf("review count = %d, want 6", rs.ReviewCount)
	}
}

func TestRecord_MissResets(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := &ReviewState{Stage: 4, ConsecutiveHits: 6, Graduated: true}

	rs.record(false, now)
	if rs.Stage != 0 || rs.ConsecutiveHits != 0 || rs.Graduated {
		t.Errorf("after miss: %+v", rs)
	}
	if want := now.AddDate(0, 0, 1); !rs.NextReview.Equal(want) {
		t.Errorf("next review = %v, want tomorrow", rs.NextReview)
	}
	if !rs.LastReview.Equal(now) {
		t.Errorf("last review = %v, want %v", rs.LastReview, now)
	}
}
