package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPool is matched by every *EmptyPoolError via errors.Is.
var ErrEmptyPool = errors.New("no questions available")

// EmptyPoolError reports that a topic/difficulty combination produced no
// questions. The caller should ask the learner to change the settings.
type EmptyPoolError struct {
	Topics     []string
	Difficulty Difficulty
	Count      int
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("no questions available for %s difficulty in [%s] (requested %d)",
		e.Difficulty, strings.Join(e.Topics, ", "), e.Count)
}

func (e *EmptyPoolError) Is(target error) bool {
	return target == ErrEmptyPool
}
