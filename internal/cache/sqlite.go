package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// SQLiteFile is the database file created inside the cache directory.
const SQLiteFile = "http_cache.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS http_cache (
	key       TEXT PRIMARY KEY,
	status    INTEGER NOT NULL,
	header    TEXT NOT NULL DEFAULT '{}',
	body      BLOB NOT NULL,
	stored_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_http_cache_stored_at ON http_cache(stored_at);
`

// SQLiteStore keeps responses in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) {dir}/http_cache.sqlite and applies the schema.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	return openSQLite(filepath.Join(dir, SQLiteFile))
}

func openSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent page loads.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite cache: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	if s == nil || s.db == nil {
		return Entry{}, false, ErrNotConfigured
	}
	var (
		e        Entry
		header   string
		storedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT status, header, body, stored_at FROM http_cache WHERE key = ?`, key,
	).Scan(&e.Status, &header, &e.Body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if header != "" {
		if err := json.Unmarshal([]byte(header), &e.Header); err != nil {
			return Entry{}, false, err
		}
	}
	e.StoredAt = time.Unix(0, storedAt).UTC()
	return e, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, entry Entry) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	header, err := json.Marshal(entry.Header)
	if err != nil {
		return err
	}
	body := entry.Body
	if body == nil {
		body = []byte{}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO http_cache (key, status, header, body, stored_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			status = excluded.status,
			header = excluded.header,
			body = excluded.body,
			stored_at = excluded.stored_at`,
		key, entry.Status, string(header), body, entry.StoredAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrNotConfigured
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM http_cache WHERE stored_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
