package transport

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

// StatusError converts a non-200 response into an error and closes its body.
// 429 responses become *providers.RateLimitError carrying Retry-After.
func StatusError(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	resp.Body.Close()
	msg := strings.TrimSpace(string(body))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			RetryAfter: RetryAfter(resp.Header, time.Now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    provider + ": rate limited",
		}
	}
	return fmt.Errorf("%s: unexpected status %d: %s", provider, resp.StatusCode, msg)
}

// RetryAfter parses a Retry-After header given in seconds or as an HTTP date.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	raw := strings.TrimSpace(h.Get("Retry-After"))
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
