package flashcards

// BaseIntervals defines the expanding interval schedule in days.
// Stage 0 is a card that has never been answered correctly in a row.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// MaxStage is the highest stage index in BaseIntervals.
const MaxStage = 5

// GraduationHits is the number of consecutive correct reviews after which
// a card graduates.
const GraduationHits = 6

// GraduatedIntervalDays is the review interval for graduated cards.
const GraduatedIntervalDays = 90
