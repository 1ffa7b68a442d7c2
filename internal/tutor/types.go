// Package tutor answers study questions through a pluggable responder and
// keeps the chat transcript.
package tutor

import (
	"context"
	"time"
)

// Level is how advanced an answer is.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderTutor Sender = "tutor"
)

// Message is one entry of the transcript.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Locale    string
	Timestamp time.Time
	// Related is only set on tutor messages.
	Related []string
}

// Query is what a responder is asked.
type Query struct {
	Text    string
	Locale  string
	Subject string
	// History holds earlier messages, oldest first, not including this query.
	History []Message
}

// Answer is a responder's reply, in English.
type Answer struct {
	Text            string
	RelatedConcepts []string
	Level           Level
}

// Responder produces answers for queries.
type Responder interface {
	Respond(ctx context.Context, q Query) (*Answer, error)
}
