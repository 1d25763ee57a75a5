package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryProvider decorates a Provider with bounded retries. Transient
// failures back off exponentially with jitter; a schema-invalid response
// earns exactly one re-ask, and credential or token-limit errors fail
// immediately since repeating the call cannot fix them.
type retryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, cfg: cfg}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidBudget := 1

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch verdict(err) {
		case dontRetry:
			return nil, err
		case retryOnce:
			if invalidBudget == 0 {
				return nil, err
			}
			invalidBudget--
		}

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}

	return nil, lastErr
}

type retryVerdict int

const (
	retryAlways retryVerdict = iota
	retryOnce
	dontRetry
)

// verdict classifies an error for the retry loop.
func verdict(err error) retryVerdict {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return dontRetry
	}

	// A rejected key won't start working next attempt, and a truncated
	// response needs a config change, not a repeat.
	var cred *ErrCredential
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &cred) || errors.As(err, &maxTok) {
		return dontRetry
	}

	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return retryOnce
	}

	// Rate limits, outages, and raw network errors are all transient.
	return retryAlways
}

// wait computes the pause before the next attempt.
func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	d = min(d, float64(r.cfg.MaxWait))

	// ±20% jitter keeps concurrent generations from synchronizing.
	d *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(max(d, 0))
}
