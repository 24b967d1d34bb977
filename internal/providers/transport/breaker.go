package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

var (
	// ErrCircuitOpen is returned while the upstream breaker rejects requests.
	ErrCircuitOpen = providers.ErrCircuitOpen
	// ErrNoClient is returned when a doer in the chain has nothing to call.
	ErrNoClient = errors.New("http client not configured")
)

const (
	breakerMaxRequests = 3
	breakerInterval    = time.Minute
	breakerTimeout     = 30 * time.Second
	breakerTrips       = 5
)

// upstreamStatusError marks a response the breaker should count as a failure
// while still handing it back to the caller.
type upstreamStatusError struct {
	status int
}

func (e upstreamStatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.status)
}

type breakerDoer struct {
	next Doer
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerDoer wraps next with a circuit breaker. Transport errors, 429 and
// 5xx responses count as failures; the response itself still reaches the caller.
func NewBreakerDoer(next Doer, name string, logger *slog.Logger) Doer {
	if name == "" {
		name = "upstream"
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state change",
					slog.String("provider", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			}
		},
	})
	return &breakerDoer{next: next, cb: cb}
}

func (d *breakerDoer) Do(req *http.Request) (*http.Response, error) {
	if d == nil || d.next == nil {
		return nil, ErrNoClient
	}
	result, err := d.cb.Execute(func() (interface{}, error) {
		resp, err := d.next.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return resp, upstreamStatusError{status: resp.StatusCode}
		}
		return resp, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	var statusErr upstreamStatusError
	if err != nil && !errors.As(err, &statusErr) {
		return nil, err
	}
	resp, ok := result.(*http.Response)
	if !ok || resp == nil {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// State exposes the breaker state for tests and diagnostics.
func (d *breakerDoer) State() gobreaker.State {
	return d.cb.State()
}
