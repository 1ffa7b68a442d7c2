package tutor

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Localizer rewrites English answer text for a locale.
type Localizer interface {
	Localize(text, locale string) string
}

// Conversation is an ordered chat between the learner and a responder.
// It is safe to read the transcript while an Ask is in flight.
type Conversation struct {
	mu        sync.Mutex
	responder Responder
	localizer Localizer
	locale    string
	subject   string
	messages  []Message
	now       func() time.Time
}

// NewConversation starts a chat. localizer may be nil.
func NewConversation(r Responder, localizer Localizer, locale string) *Conversation {
	return &Conversation{
		responder: r,
		localizer: localizer,
		locale:    locale,
		now:       time.Now,
	}
}

// SetLocale switches the language of later answers.
func (c *Conversation) SetLocale(locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locale = locale
}

// Locale returns the current locale.
func (c *Conversation) Locale() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locale
}

// SetSubject tells the responder what the learner is studying.
func (c *Conversation) SetSubject(subject string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subject = subject
}

// Greet appends a tutor greeting without calling the responder.
func (c *Conversation) Greet(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, c.message(SenderTutor, text, nil))
}

// Ask sends text to the responder and appends both sides of the exchange.
// Blank input is ignored and returns nil. When the responder fails, the
// learner's message stays in the transcript and the error is returned.
func (c *Conversation) Ask(ctx context.Context, text string) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	c.mu.Lock()
	q := Query{
		Text:    text,
		Locale:  c.locale,
		Subject: c.subject,
		History: slices.Clone(c.messages),
	}
	c.messages = append(c.messages, c.message(SenderUser, text, nil))
	c.mu.Unlock()

	ans, err := c.responder.Respond(ctx, q)
	if err != nil {
		return nil, err
	}

	reply := ans.Text
	if c.localizer != nil {
		reply = c.localizer.Localize(reply, q.Locale)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	msg := c.message(SenderTutor, reply, ans.RelatedConcepts)
	c.messages = append(c.messages, msg)
	return &msg, nil
}

// Messages returns the transcript, oldest first.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Clear empties the transcript.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

func (c *Conversation) message(sender Sender, text string, related []string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Locale:    c.locale,
		Timestamp: c.now(),
		Related:   slices.Clone(related),
	}
}
