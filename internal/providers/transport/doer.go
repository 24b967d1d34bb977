// Package transport builds the HTTP client stack shared by the upstream
// providers: response cache, rate limiter, and circuit breaker.
package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/cache"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Config describes the doer chain for one upstream.
type Config struct {
	Name         string
	Client       Doer
	Timeout      time.Duration
	Store        cache.Store
	TTL          time.Duration
	RateInterval time.Duration
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	// SkipCache, when set, keeps matching 200 bodies out of the store.
	SkipCache    func(body []byte) bool
}

// New assembles cache -> rate limiter -> circuit breaker -> client.
// Cache hits never wait on the limiter or count against the breaker.
func New(cfg Config) Doer {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	var d Doer = NewBreakerDoer(client, cfg.Name, cfg.Logger)
	if cfg.RateInterval > 0 {
		d = NewRateLimitedDoer(d, cfg.RateInterval, cfg.Logger)
	}
	if cfg.Store != nil {
		var opts []CacheOption
		if cfg.SkipCache != nil {
			opts = append(opts, SkipBodies(cfg.SkipCache))
		}
		d = NewCachingDoer(d, cfg.Store, cfg.TTL, cfg.Logger, cfg.Metrics, opts...)
	}
	return d
}

const defaultTimeout = 15 * time.Second

// Close releases resources held anywhere in a chain built by New, such as
// the rate limiter's ticker. It is a no-op for doers that hold none.
func Close(d Doer) {
	switch v := d.(type) {
	case interface{ Close() }:
		v.Close()
	case *cachingDoer:
		Close(v.next)
	}
}
