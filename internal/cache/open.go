package cache

import (
	"fmt"
	"os"

	"github.com/preston-bernstein/f1-dashboard/internal/config"
)

const (
	BackendSQLite = "sqlite"
	BackendFS     = "fs"
	BackendMemory = "memory"
)

// Open creates the cache directory if absent and returns the configured
// backend. Call it once at startup and hand the store to the transport chain.
func Open(cfg config.CacheConfig) (Store, error) {
	if cfg.Backend == BackendMemory {
		return NewMemoryStore(), nil
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("cache dir required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	switch cfg.Backend {
	case BackendFS:
		return NewFSStore(cfg.Dir)
	case BackendSQLite, "":
		return NewSQLiteStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
