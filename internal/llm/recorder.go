package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studygenie/studygenie/internal/store"
)

// EventSink stores one event per request. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// WithRecording logs every request and appends it to sink. Either may be
// nil. A failed append is logged and never fails the request.
func WithRecording(p Provider, providerName string, sink EventSink, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recordingProvider{Provider: p, name: providerName, sink: sink, logger: logger, now: time.Now}
}

type recordingProvider struct {
	Provider
	name   string
	sink   EventSink
	logger *zap.Logger
	now    func() time.Time
}

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := r.now()
	resp, err := r.Provider.Generate(ctx, req)
	elapsed := r.now().Sub(start)

	ev := store.LLMRequestEventData{
		Provider:    r.name,
		Model:       r.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text()
	}

	log := r.logger.With(
		zap.String("purpose", ev.Purpose),
		zap.String("model", ev.Model),
		zap.Duration("latency", elapsed),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens))
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", zap.Error(err))
	} else {
		log.Debug("llm request")
	}

	if r.sink != nil {
		if serr := r.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); serr != nil {
			r.logger.Warn("record llm request", zap.Error(serr))
		}
	}
	return resp, err
}

// transcript renders a request the way `llm view` prints it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
