package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps a thread-safe set of responses in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	_ = ctx
	if s == nil {
		return Entry{}, false, ErrNotConfigured
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	e.Body = append([]byte(nil), e.Body...)
	e.Header = e.Header.Clone()
	return e, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, entry Entry) error {
	_ = ctx
	if s == nil {
		return ErrNotConfigured
	}
	entry.Body = append([]byte(nil), entry.Body...)
	entry.Header = entry.Header.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	_ = ctx
	if s == nil {
		return 0, ErrNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.StoredAt.Before(cutoff) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error { return nil }
