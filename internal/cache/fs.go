package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fsEntriesDir = "http"

// FSStore keeps one JSON file per response under {basePath}/http.
// File names are the SHA-256 of the key.
type FSStore struct {
	basePath string
}

type fsRecord struct {
	Key string `json:"key"`
	Entry
}

// NewFSStore constructs an FS-backed store rooted at basePath.
func NewFSStore(basePath string) (*FSStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, fsEntriesDir), 0o755); err != nil {
		return nil, err
	}
	return &FSStore{basePath: basePath}, nil
}

func (s *FSStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	_ = ctx
	if s == nil {
		return Entry{}, false, ErrNotConfigured
	}
	rec, err := s.decodeFile(s.entryPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	if rec.Key != key {
		return Entry{}, false, nil
	}
	return rec.Entry, true, nil
}

// Put writes the entry atomically via a temp file and rename.
func (s *FSStore) Put(ctx context.Context, key string, entry Entry) error {
	_ = ctx
	if s == nil {
		return ErrNotConfigured
	}
	target := s.entryPath(key)
	data, err := json.Marshal(fsRecord{Key: key, Entry: entry})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

func (s *FSStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	if s == nil {
		return 0, ErrNotConfigured
	}
	dir := filepath.Join(s.basePath, fsEntriesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		rec, err := s.decodeFile(path)
		if err != nil || rec.StoredAt.Before(cutoff) {
			if rmErr := os.Remove(path); rmErr == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *FSStore) Close() error { return nil }

func (s *FSStore) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.basePath, fsEntriesDir, hex.EncodeToString(sum[:])+".json")
}

func (s *FSStore) decodeFile(path string) (fsRecord, error) {
	var rec fsRecord
	f, err := os.Open(path)
	if err != nil {
		return rec, err
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&rec)
	return rec, err
}
