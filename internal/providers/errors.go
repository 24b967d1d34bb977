package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no upstream provider is wired.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrCircuitOpen is returned while an upstream breaker rejects requests.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Kind classifies why loading page data failed.
type Kind string

const (
	// KindFetch covers transport, upstream status, and timeout failures.
	KindFetch Kind = "fetch"
	// KindNoData means the provider answered but had nothing for the request.
	KindNoData Kind = "no_data"
	// KindMalformed means the payload could not be decoded or reshaped.
	KindMalformed Kind = "malformed"
)

// Error tags a failure with its Kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetch wraps err as a KindFetch failure of op.
func Fetch(op string, err error) error {
	return &Error{Kind: KindFetch, Op: op, Err: err}
}

// NoData reports that op returned nothing.
func NoData(op string, err error) error {
	return &Error{Kind: KindNoData, Op: op, Err: err}
}

// Malformed wraps err as a KindMalformed failure of op.
func Malformed(op string, err error) error {
	return &Error{Kind: KindMalformed, Op: op, Err: err}
}

// KindOf returns the Kind of the outermost tagged error in the chain.
// Untagged errors count as fetch failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindFetch
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
