package planner

import (
	"fmt"
	"time"
)

// FormatDuration renders a timer value as h:mm:ss from one hour on and
// m:ss below that. Negative durations render as zero.
func FormatDuration(d time.Duration) string {
	secs := int(max(d, 0) / time.Second)
	h, m, s := secs/3600, secs%3600/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
