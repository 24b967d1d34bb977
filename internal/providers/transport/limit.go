package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// rateLimitedDoer enforces a minimum interval between upstream requests.
type rateLimitedDoer struct {
	next     Doer
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedDoer returns a Doer that limits calls to one per interval.
// Calls block until the next tick to avoid exceeding upstream quotas.
func NewRateLimitedDoer(next Doer, interval time.Duration, logger *slog.Logger) Doer {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedDoer{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (d *rateLimitedDoer) Do(req *http.Request) (*http.Response, error) {
	if d == nil || d.next == nil {
		return nil, ErrNoClient
	}
	ctx := req.Context()
	select {
	case <-ctx.Done():
		if d.logger != nil {
			d.logger.Warn("rate-limited request canceled", slog.String("url", req.URL.Redacted()))
		}
		return nil, ctx.Err()
	case <-d.ticker.C:
	}
	return d.next.Do(req)
}

// Close stops the limiter's ticker.
func (d *rateLimitedDoer) Close() {
	if d != nil && d.ticker != nil {
		d.ticker.Stop()
	}
}
