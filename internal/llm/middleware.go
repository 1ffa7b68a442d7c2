package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// WithTimeout bounds each call, retries included. A non-positive timeout
// returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: timeout}
}

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}

// WithRetry retries Retryable errors with jittered exponential backoff.
// An invalid response is retried once at most, since the same prompt
// tends to fail the same way.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	def := DefaultConfig().Retry
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	if cfg.Multiplier < 1 {
		cfg.Multiplier = def.Multiplier
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = def.MaxWait
	}
	return &retryProvider{Provider: p, cfg: cfg, sleep: sleepCtx}
}

type retryProvider struct {
	Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var invalidSeen bool
	for attempt := 1; ; attempt++ {
		resp, err := r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.cfg.MaxAttempts || !Retryable(err) {
			return nil, err
		}
		var invalid *InvalidResponseError
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if serr := r.sleep(ctx, r.cfg.backoff(attempt, err)); serr != nil {
			return nil, serr
		}
	}
}

// backoff returns the wait after the given failed attempt (1-based).
// A server-supplied Retry-After wins.
func (c RetryConfig) backoff(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := float64(c.InitialWait)
	for range attempt - 1 {
		wait *= c.Multiplier
		if wait >= float64(c.MaxWait) {
			wait = float64(c.MaxWait)
			break
		}
	}
	// ±20% jitter
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
