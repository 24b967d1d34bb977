package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard/internal/teststubs"
)

type flakeyProvider struct {
	teststubs.StubProvider
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	_ = ctx
	_ = season
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("boom")
	}
	return []events.Event{{Name: "ok"}}, nil
}

func newTestRetrying(inner DataProvider, rec *metrics.Recorder, attempts int) *retryingProvider {
	rp := NewRetryingProvider(inner, nil, rec, "flakey", attempts, time.Millisecond).(*retryingProvider)
	rp.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return rp
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := newTestRetrying(fp, metrics.NewRecorder(), 3)

	got, err := rp.FetchSchedule(context.Background(), 2024)
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(got) != 1 || got[0].Name != "ok" {
		t.Fatalf("unexpected events %+v", got)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := newTestRetrying(fp, metrics.NewRecorder(), 2)

	if _, err := rp.FetchSchedule(context.Background(), 2024); err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryDeterministicFailures(t *testing.T) {
	for _, err := range []error{
		NoData("schedule", nil),
		Malformed("schedule", errors.New("bad json")),
	} {
		fp := &flakeyProvider{failures: 5, err: err}
		rp := newTestRetrying(fp, metrics.NewRecorder(), 3)

		_, got := rp.FetchSchedule(context.Background(), 2024)
		if KindOf(got) != KindOf(err) {
			t.Fatalf("expected kind %s, got %v", KindOf(err), got)
		}
		if fp.calls != 1 {
			t.Fatalf("expected a single attempt for %s, got %d", KindOf(err), fp.calls)
		}
	}
}

func TestRetryingProviderDoesNotRetryOpenCircuit(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: Fetch("schedule", fmt.Errorf("%w: open state", ErrCircuitOpen))}
	rp := newTestRetrying(fp, metrics.NewRecorder(), 3)

	_, err := rp.FetchSchedule(context.Background(), 2024)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt while the circuit is open, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchSchedule(ctx, 2024)
	if err == nil {
		t.Fatal("expected context error")
	}
	if !errors.Is(err, context.Canceled) || !IsKind(err, KindFetch) {
		t.Fatalf("expected canceled fetch error, got %v", err)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{Provider: "test", StatusCode: 429}}
	rp := newTestRetrying(fp, rec, 2)

	if _, err := rp.FetchSchedule(context.Background(), 2024); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := rec.RateLimitHits(rp.providerName); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls(rp.providerName); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors(rp.providerName); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryingProviderDelaySelection(t *testing.T) {
	rp := newTestRetrying(&flakeyProvider{}, nil, 2)
	constant := backoff.NewConstantBackOff(50 * time.Millisecond)

	tests := []struct {
		name     string
		err      error
		expected time.Duration
	}{
		{"rate_limit_uses_retry_after", &RateLimitError{RetryAfter: 3 * time.Second}, 3 * time.Second},
		{"rate_limit_retry_after_is_capped", &RateLimitError{RetryAfter: time.Hour}, maxRetryAfter},
		{"rate_limit_without_header_uses_backoff", &RateLimitError{StatusCode: 429}, 50 * time.Millisecond},
		{"generic_error_uses_backoff", errors.New("boom"), 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if delay := rp.computeDelay(tt.err, constant); delay != tt.expected {
				t.Fatalf("expected delay %s, got %s", tt.expected, delay)
			}
		})
	}
}

func TestRetryingProviderDefaultBackoffGrows(t *testing.T) {
	rp := NewRetryingProvider(&flakeyProvider{}, nil, nil, "", 0, 0).(*retryingProvider)
	if rp.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rp.providerName)
	}
	if rp.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rp.maxAttempts)
	}

	b := rp.newBackOff()
	first := b.NextBackOff()
	if first <= 0 || first > 2*defaultBackoff {
		t.Fatalf("expected first delay near %s, got %s", defaultBackoff, first)
	}
	for i := 0; i < 20; i++ {
		if d := b.NextBackOff(); d > maxBackoff+maxBackoff/2 {
			t.Fatalf("expected delay capped near %s, got %s", maxBackoff, d)
		}
	}
}

func TestRetryingProviderWrapsEveryOperation(t *testing.T) {
	stub := &teststubs.StubProvider{}
	rec := metrics.NewRecorder()
	rp := newTestRetrying(stub, rec, 2)
	ctx := context.Background()
	key := sessions.Key{Season: 2024, Round: 1, Kind: sessions.KindRace}

	_, _ = rp.FetchSchedule(ctx, 2024)
	_, _ = rp.FetchDriverStandings(ctx, 2024)
	_, _ = rp.FetchConstructorStandings(ctx, 2024)
	_, _ = rp.LoadSession(ctx, key, sessions.LoadOptions{})
	_, _ = rp.FetchLapTelemetry(ctx, key, "1", 10)

	if stub.Calls.Load() != 5 {
		t.Fatalf("expected 5 inner calls, got %d", stub.Calls.Load())
	}
	if got := rec.ProviderCalls("flakey"); got != 5 {
		t.Fatalf("expected 5 recorded attempts, got %d", got)
	}
}

func TestRetryingProviderWithoutInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "none", 1, 0)
	if _, err := rp.FetchSchedule(context.Background(), 2024); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
