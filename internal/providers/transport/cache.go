package transport

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/cache"
	"github.com/preston-bernstein/f1-dashboard/internal/logging"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
)

// HeaderCache is set on every response passing through the caching doer.
const HeaderCache = "X-Cache"

type cachingDoer struct {
	next    Doer
	store   cache.Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	skip    func(body []byte) bool
}

// CacheOption adjusts a caching doer.
type CacheOption func(*cachingDoer)

// SkipBodies keeps 200 responses whose body matches skip out of the store,
// e.g. placeholder payloads an upstream serves before data is published.
func SkipBodies(skip func(body []byte) bool) CacheOption {
	return func(d *cachingDoer) { d.skip = skip }
}

// NewCachingDoer serves GET requests from store when a fresh entry exists and
// stores 200 responses from next. A ttl of zero keeps entries forever.
func NewCachingDoer(next Doer, store cache.Store, ttl time.Duration, logger *slog.Logger, rec *metrics.Recorder, opts ...CacheOption) Doer {
	d := &cachingDoer{
		next:    next,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: rec,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Key is the request signature entries are stored under.
func Key(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}

func (d *cachingDoer) Do(req *http.Request) (*http.Response, error) {
	if d.next == nil {
		return nil, ErrNoClient
	}
	if req.Method != http.MethodGet || d.store == nil {
		return d.next.Do(req)
	}

	ctx := req.Context()
	key := Key(req)
	logger := logging.FromContext(ctx, d.logger)

	entry, ok, err := d.store.Get(ctx, key)
	if err != nil && logger != nil {
		logger.Warn("cache read failed", slog.String(logging.FieldCache, key), "err", err)
	}
	if ok && entry.Fresh(d.now(), d.ttl) {
		d.metrics.RecordCacheLookup(true)
		if logger != nil {
			logger.Debug("cache hit", slog.String(logging.FieldCache, key))
		}
		return entryResponse(req, entry, "HIT"), nil
	}
	d.metrics.RecordCacheLookup(false)

	resp, err := d.next.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if d.skip != nil && d.skip(body) {
		if logger != nil {
			logger.Debug("cache skipped placeholder body", slog.String(logging.FieldCache, key))
		}
	} else {
		stored := cache.Entry{
			Status:   resp.StatusCode,
			Header:   resp.Header.Clone(),
			Body:     body,
			StoredAt: d.now().UTC(),
		}
		if err := d.store.Put(ctx, key, stored); err != nil && logger != nil {
			logger.Warn("cache write failed", slog.String(logging.FieldCache, key), "err", err)
		}
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	resp.Header.Set(HeaderCache, "MISS")
	return resp, nil
}

func entryResponse(req *http.Request, e cache.Entry, state string) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	header.Set(HeaderCache, state)
	return &http.Response{
		StatusCode:    e.Status,
		Status:        http.StatusText(e.Status),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
