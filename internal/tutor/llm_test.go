package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygenie/studygenie/internal/llm"
)

func answerJSON(t *testing.T, text, level string, related ...string) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(answerOutput{Answer: text, RelatedConcepts: related, Level: level})
	require.NoError(t, err)
	return data
}

func TestLLMResponder_Respond(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON(t, "  Entropy measures disorder.  ", "advanced", "Second law", "Heat"),
	})
	r := NewLLMResponder(mock, DefaultLLMConfig(), nil)

	ans, err := r.Respond(context.Background(), Query{Text: "What is entropy?", Subject: "Physics"})
	require.NoError(t, err)
	assert.Equal(t, "Entropy measures disorder.", ans.Text)
	assert.Equal(t, LevelAdvanced, ans.Level)
	assert.Equal(t, []string{"Second law", "Heat"}, ans.RelatedConcepts)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, AnswerSchema, req.Schema)
	assert.Contains(t, req.System, "currently studying Physics")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "What is entropy?", req.Messages[0].Content)
}

func TestLLMResponder_UnknownLevelDefaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: answerJSON(t, "ok", "expert")})
	ans, err := NewLLMResponder(mock, DefaultLLMConfig(), nil).Respond(context.Background(), Query{Text: "q"})
	require.NoError(t, err)
	assert.Equal(t, LevelIntermediate, ans.Level)
}

func TestLLMResponder_HistoryLimit(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: answerJSON(t, "ok", "beginner")})
	cfg := DefaultLLMConfig()
	cfg.HistoryLimit = 2
	r := NewLLMResponder(mock, cfg, nil)

	history := []Message{
		{Sender: SenderUser, Text: "one"},
		{Sender: SenderTutor, Text: "two"},
		{Sender: SenderUser, Text: "three"},
		{Sender: SenderTutor, Text: "four"},
	}
	_, err := r.Respond(context.Background(), Query{Text: "five", History: history})
	require.NoError(t, err)

	msgs := mock.Calls[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "three", msgs[0].Content)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)
	assert.Equal(t, "four", msgs[1].Content)
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "five", msgs[2].Content)
}

func TestLLMResponder_FallsBackOnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	r := NewLLMResponder(mock, DefaultLLMConfig(), nil)

	ans, err := r.Respond(context.Background(), Query{Text: "speed of light"})
	require.NoError(t, err)
	assert.Equal(t, LevelBeginner, ans.Level)
	assert.Contains(t, ans.Text, "299,792,458")
}

func TestLLMResponder_ErrorWithoutFallback(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want string
	}{
		{"provider error", llm.MockResponse{Err: errors.New("boom")}, "tutor answer: boom"},
		{"bad json", llm.MockResponse{Content: json.RawMessage(`not json`)}, "parse tutor answer"},
		{"empty answer", llm.MockResponse{Content: json.RawMessage(`{"answer":" ","related_concepts":[],"level":"beginner"}`)}, "empty answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultLLMConfig()
			cfg.FallbackOnFail = false
			r := NewLLMResponder(llm.NewMockProvider(tt.resp), cfg, nil)
			_, err := r.Respond(context.Background(), Query{Text: "q"})
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
