package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/f1-dashboard/internal/cache"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard/internal/teststubs"
)

func newGet(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestCachingDoerServesSecondRequestFromStore(t *testing.T) {
	inner := &teststubs.StubDoer{Body: `{"ok":true}`}
	rec := metrics.NewRecorder()
	d := NewCachingDoer(inner, cache.NewMemoryStore(), time.Hour, nil, rec)

	first, err := d.Do(newGet(t, "http://example.com/2024.json"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if readBody(t, first) != `{"ok":true}` || first.Header.Get(HeaderCache) != "MISS" {
		t.Fatalf("unexpected first response %v", first.Header)
	}

	second, err := d.Do(newGet(t, "http://example.com/2024.json"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if readBody(t, second) != `{"ok":true}` || second.Header.Get(HeaderCache) != "HIT" {
		t.Fatalf("unexpected second response %v", second.Header)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", inner.Calls.Load())
	}
	if rec.CacheHits() != 1 || rec.CacheMisses() != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", rec.CacheHits(), rec.CacheMisses())
	}
}

func TestCachingDoerRefetchesStaleEntries(t *testing.T) {
	inner := &teststubs.StubDoer{Body: "fresh"}
	store := cache.NewMemoryStore()
	d := NewCachingDoer(inner, store, time.Minute, nil, nil).(*cachingDoer)

	now := time.Date(2024, 5, 26, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	_ = store.Put(context.Background(), "GET http://example.com/a", cache.Entry{Status: 200, Body: []byte("stale"), StoredAt: now.Add(-2 * time.Minute)})

	resp, err := d.Do(newGet(t, "http://example.com/a"))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := readBody(t, resp); got != "fresh" {
		t.Fatalf("expected refetched body, got %q", got)
	}
	entry, _, _ := store.Get(context.Background(), "GET http://example.com/a")
	if string(entry.Body) != "fresh" || !entry.StoredAt.Equal(now) {
		t.Fatalf("expected entry replaced, got %+v", entry)
	}
}

func TestCachingDoerSkipsNonOKAndNonGET(t *testing.T) {
	store := cache.NewMemoryStore()
	inner := &teststubs.StubDoer{Status: http.StatusNotFound, Body: "nope"}
	d := NewCachingDoer(inner, store, 0, nil, nil)

	resp, err := d.Do(newGet(t, "http://example.com/missing"))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 passthrough, got %v %v", resp, err)
	}
	post, _ := http.NewRequest(http.MethodPost, "http://example.com/x", nil)
	inner.Status = http.StatusOK
	if _, err := d.Do(post); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected nothing cached, got %d entries", store.Len())
	}
}

func TestCachingDoerSkipsPlaceholderBodies(t *testing.T) {
	store := cache.NewMemoryStore()
	inner := &teststubs.StubDoer{Body: `{"Races":[]}`}
	empty := func(body []byte) bool { return strings.Contains(string(body), `"Races":[]`) }
	d := NewCachingDoer(inner, store, time.Hour, nil, nil, SkipBodies(empty))

	for i := 0; i < 2; i++ {
		resp, err := d.Do(newGet(t, "http://example.com/2024/5/results.json"))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if got := readBody(t, resp); got != `{"Races":[]}` {
			t.Fatalf("expected body passthrough, got %q", got)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("expected placeholder body left uncached, got %d entries", store.Len())
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected every request to reach upstream, got %d", inner.Calls.Load())
	}

	inner.Body = `{"Races":[{"round":"5"}]}`
	if _, err := d.Do(newGet(t, "http://example.com/2024/5/results.json")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected published body cached, got %d entries", store.Len())
	}
}

func TestRateLimitedDoerBlocksUntilTick(t *testing.T) {
	inner := &teststubs.StubDoer{}
	d := NewRateLimitedDoer(inner, 5*time.Millisecond, nil)

	start := time.Now()
	if _, err := d.Do(newGet(t, "http://example.com")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Fatalf("expected call to wait for ticker, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected inner doer called once, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedDoerRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubDoer{}
	d := NewRateLimitedDoer(inner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com", nil)

	if _, err := d.Do(req); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner doer not called")
	}
}

func TestBreakerDoerPassesServerErrorsThrough(t *testing.T) {
	inner := &teststubs.StubDoer{Status: http.StatusServiceUnavailable, Body: "down"}
	d := NewBreakerDoer(inner, "test", nil)

	resp, err := d.Do(newGet(t, "http://example.com"))
	if err != nil {
		t.Fatalf("expected response with status, got error %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestBreakerDoerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &teststubs.StubDoer{Err: errors.New("dial tcp: refused")}
	d := NewBreakerDoer(inner, "test", nil).(*breakerDoer)

	for i := 0; i < breakerTrips; i++ {
		if _, err := d.Do(newGet(t, "http://example.com")); err == nil || errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("attempt %d: expected transport error, got %v", i, err)
		}
	}
	if d.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %s", d.State())
	}

	if _, err := d.Do(newGet(t, "http://example.com")); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if inner.Calls.Load() != breakerTrips {
		t.Fatalf("expected open breaker to skip upstream, got %d calls", inner.Calls.Load())
	}
}

func TestNewChainsCacheInFrontOfLimiter(t *testing.T) {
	inner := &teststubs.StubDoer{Body: "x"}
	d := New(Config{
		Name:         "test",
		Client:       inner,
		Store:        cache.NewMemoryStore(),
		RateInterval: 20 * time.Millisecond,
	})

	if _, err := d.Do(newGet(t, "http://example.com/a")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	start := time.Now()
	if _, err := d.Do(newGet(t, "http://example.com/a")); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if elapsed := time.Since(start); elapsed >= 20*time.Millisecond {
		t.Fatalf("expected cache hit to skip the limiter, took %s", elapsed)
	}
	if inner.Calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", inner.Calls.Load())
	}
}

func TestNewDefaultsClient(t *testing.T) {
	d := New(Config{Timeout: 3 * time.Second})
	b, ok := d.(*breakerDoer)
	if !ok {
		t.Fatalf("expected bare breaker without store or limiter, got %T", d)
	}
	client, ok := b.next.(*http.Client)
	if !ok || client.Timeout != 3*time.Second {
		t.Fatalf("expected http.Client with timeout, got %#v", b.next)
	}
}

func TestCloseStopsLimiterBehindCache(t *testing.T) {
	d := New(Config{
		Client:       &teststubs.StubDoer{},
		Store:        cache.NewMemoryStore(),
		RateInterval: time.Millisecond,
	})
	limiter := d.(*cachingDoer).next.(*rateLimitedDoer)

	Close(d)
	select {
	case <-limiter.ticker.C:
	default:
	}
	time.Sleep(5 * time.Millisecond)
	select {
	case <-limiter.ticker.C:
		t.Fatal("expected ticker stopped")
	default:
	}

	Close(New(Config{}))
}
