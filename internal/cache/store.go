// Package cache persists upstream HTTP responses so repeated page loads do
// not hit the statistics APIs. It is opened once at startup and shared by the
// provider transport chain.
package cache

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrNotConfigured is returned by methods on a nil store.
var ErrNotConfigured = errors.New("cache store not configured")

// Entry is a stored upstream response.
type Entry struct {
	Status   int         `json:"status"`
	Header   http.Header `json:"header,omitempty"`
	Body     []byte      `json:"body"`
	StoredAt time.Time   `json:"stored_at"`
}

// Fresh reports whether the entry is still valid at now. A ttl of zero never expires.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(e.StoredAt) < ttl
}

// Store is a keyed response store. Get reports false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
	// Prune removes entries stored before cutoff and returns how many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
	Close() error
}
