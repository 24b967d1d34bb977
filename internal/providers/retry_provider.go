package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
	"github.com/preston-bernstein/f1-dashboard/internal/logging"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
	maxRetryAfter        = 10 * time.Second
)

// retryingProvider wraps a DataProvider with retry/backoff behavior and
// records one provider attempt per upstream call.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
// Fetch failures are retried with exponential backoff; rate limits honor Retry-After.
// No-data and malformed failures are returned immediately.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, rec *metrics.Recorder, name string, maxAttempts int, base time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = base
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	return retry(ctx, r, "schedule", func(ctx context.Context) ([]events.Event, error) {
		return r.inner.FetchSchedule(ctx, season)
	})
}

func (r *retryingProvider) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	return retry(ctx, r, "driver standings", func(ctx context.Context) ([]standings.DriverRow, error) {
		return r.inner.FetchDriverStandings(ctx, season)
	})
}

func (r *retryingProvider) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	return retry(ctx, r, "constructor standings", func(ctx context.Context) ([]standings.ConstructorRow, error) {
		return r.inner.FetchConstructorStandings(ctx, season)
	})
}

func (r *retryingProvider) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	return retry(ctx, r, "session "+key.String(), func(ctx context.Context) (*sessions.Session, error) {
		return r.inner.LoadSession(ctx, key, opts)
	})
}

func (r *retryingProvider) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	return retry(ctx, r, "telemetry "+key.String(), func(ctx context.Context) ([]telemetry.Sample, error) {
		return r.inner.FetchLapTelemetry(ctx, key, driverNumber, lapNumber)
	})
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if r == nil || r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	b := r.newBackOff()
	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		attempts = attempt
		start := time.Now()
		out, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if !retryable(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, b)
		if delay == backoff.Stop {
			break
		}
		r.log(ctx, slog.LevelWarn, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			slog.Duration("delay", delay),
			slog.String(logging.FieldErrorKind, string(KindOf(err))),
			"err", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, Fetch(op, ctx.Err())
		case <-timer.C:
		}
	}

	r.log(ctx, slog.LevelWarn, "provider fetch failed",
		"op", op,
		"attempts", attempts,
		slog.String(logging.FieldErrorKind, string(KindOf(lastErr))),
		"err", lastErr,
	)
	return zero, lastErr
}

// computeDelay prefers the upstream Retry-After (capped) over the backoff schedule.
func (r *retryingProvider) computeDelay(err error, b backoff.BackOff) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		if rlErr.RetryAfter > maxRetryAfter {
			return maxRetryAfter
		}
		return rlErr.RetryAfter
	}
	return b.NextBackOff()
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// The breaker stays open longer than the whole backoff schedule.
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}
	switch KindOf(err) {
	case KindNoData, KindMalformed:
		return false
	default:
		return true
	}
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), level, r.providerName, msg, args...)
}
