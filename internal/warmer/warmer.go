// Package warmer refreshes the current season's schedule and standings on a
// schedule so page loads are served from the response cache.
package warmer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/preston-bernstein/f1-dashboard/internal/cache"
	"github.com/preston-bernstein/f1-dashboard/internal/logging"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

const (
	defaultInterval = 30 * time.Minute
	cycleTimeout    = 2 * time.Minute
	maxFailures     = 3
)

// Source is what the warmer fetches through.
type Source interface {
	providers.ScheduleProvider
	providers.StandingsProvider
}

// Warmer runs a warm-up cycle on a fixed interval, starting immediately.
type Warmer struct {
	source   Source
	store    cache.Store
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	scheduler *gocron.Scheduler
	done      chan struct{}
	stopOnce  sync.Once
	startMu   sync.Mutex
	started   bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the warm-up job.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the warmer has succeeded at least once and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Warmer. store may be nil, in which case no pruning happens.
func New(source Source, store cache.Store, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = defaultInterval
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Warmer{
		source:    source,
		store:     store,
		ttl:       ttl,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		scheduler: s,
		done:      make(chan struct{}),
	}
}

// Start schedules the warm-up job until ctx is cancelled or Stop is called.
func (w *Warmer) Start(ctx context.Context) error {
	w.startMu.Lock()
	defer w.startMu.Unlock()
	if w.started {
		return nil
	}

	_, err := w.scheduler.Every(w.interval).Do(func() {
		cctx, cancel := context.WithTimeout(ctx, cycleTimeout)
		defer cancel()
		w.warmOnce(cctx)
	})
	if err != nil {
		return err
	}
	w.started = true
	w.scheduler.StartAsync()
	logging.Info(w.logger, "warmer started", logging.FieldDurationMS, w.interval.Milliseconds())

	go func() {
		select {
		case <-ctx.Done():
			_ = w.Stop(context.Background())
		case <-w.done:
		}
	}()
	return nil
}

// Stop halts the scheduler. It is safe to call more than once.
func (w *Warmer) Stop(ctx context.Context) error {
	_ = ctx
	w.stopOnce.Do(func() {
		close(w.done)
		w.scheduler.Stop()
		logging.Info(w.logger, "warmer stopped")
	})
	return nil
}

func (w *Warmer) warmOnce(ctx context.Context) {
	start := time.Now()
	w.recordAttempt(start)
	season := w.now().UTC().Year()

	var errs []error
	evs, err := w.source.FetchSchedule(ctx, season)
	if err != nil {
		errs = append(errs, err)
	}
	drivers, err := w.source.FetchDriverStandings(ctx, season)
	if err != nil {
		errs = append(errs, err)
	}
	constructors, err := w.source.FetchConstructorStandings(ctx, season)
	if err != nil {
		errs = append(errs, err)
	}
	err = errors.Join(errs...)

	if w.metrics != nil {
		w.metrics.RecordWarmCycle(time.Since(start), err)
	}
	if err != nil {
		logging.Error(w.logger, "warm cycle failed", err,
			logging.FieldSeason, season,
			logging.FieldErrorKind, string(providers.KindOf(err)),
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		w.recordFailure(err, start)
		return
	}

	w.prune(ctx)
	w.recordSuccess(start)
	logging.Info(w.logger, "warm cycle complete",
		logging.FieldSeason, season,
		"events", len(evs),
		"drivers", len(drivers),
		"constructors", len(constructors),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (w *Warmer) prune(ctx context.Context) {
	if w.store == nil || w.ttl <= 0 {
		return
	}
	removed, err := w.store.Prune(ctx, w.now().Add(-w.ttl))
	if err != nil {
		logging.Warn(w.logger, "cache prune failed", "error", err)
		return
	}
	if removed > 0 {
		logging.Info(w.logger, "cache pruned", logging.FieldCount, removed)
	}
}

func (w *Warmer) recordAttempt(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.LastAttempt = at
}

func (w *Warmer) recordSuccess(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastSuccess = at
}

func (w *Warmer) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	if err != nil {
		w.status.LastError = err.Error()
	}
	w.status.LastAttempt = at
}

// Status returns a snapshot of the warmer's recent health.
func (w *Warmer) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
