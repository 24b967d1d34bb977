package server

import (
	"log/slog"

	"github.com/preston-bernstein/f1-dashboard/internal/cache"
	"github.com/preston-bernstein/f1-dashboard/internal/config"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/ergast"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/fixture"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/openf1"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/transport"
)

const (
	providerErgast  = "ergast"
	providerOpenF1  = "openf1"
	providerFixture = "fixture"
)

// providerFactory assembles the provider stack: one transport chain per
// upstream sharing the response cache, each client wrapped with retries.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	store   cache.Store
	doers   []transport.Doer
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder, store cache.Store) *providerFactory {
	return &providerFactory{logger: logger, metrics: recorder, store: store}
}

func (f *providerFactory) build(cfg config.Config) providers.DataProvider {
	switch cfg.Provider {
	case providerErgast, "":
		return f.upstream(cfg)
	case providerFixture:
		return f.retrying(fixture.New(), providerFixture)
	default:
		if f.logger != nil {
			f.logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return f.retrying(fixture.New(), providerFixture)
	}
}

func (f *providerFactory) upstream(cfg config.Config) providers.DataProvider {
	erg := ergast.NewClient(ergast.Config{
		BaseURL:    cfg.Upstream.ErgastBaseURL,
		HTTPClient: f.doer(providerErgast, cfg.Upstream, cfg.Cache, ergast.Unpublished),
		MaxPages:   cfg.Upstream.ErgastMaxPages,
	})
	of1 := openf1.NewClient(openf1.Config{
		BaseURL:    cfg.Upstream.OpenF1BaseURL,
		HTTPClient: f.doer(providerOpenF1, cfg.Upstream, cfg.Cache, nil),
	})

	results := f.retrying(providers.Composite{Schedule: erg, Standings: erg, Sessions: erg}, providerErgast)
	telemetry := f.retrying(providers.Composite{Telemetry: of1}, providerOpenF1)
	return providers.Composite{
		Schedule:  results,
		Standings: results,
		Sessions:  results,
		Telemetry: telemetry,
	}
}

func (f *providerFactory) doer(name string, up config.UpstreamConfig, cc config.CacheConfig, skip func([]byte) bool) transport.Doer {
	d := transport.New(transport.Config{
		Name:         name,
		Timeout:      up.Timeout,
		Store:        f.store,
		TTL:          cc.TTL,
		RateInterval: up.RateInterval,
		Logger:       f.logger,
		Metrics:      f.metrics,
		SkipCache:    skip,
	})
	f.doers = append(f.doers, d)
	return d
}

func (f *providerFactory) retrying(p providers.DataProvider, name string) providers.DataProvider {
	return providers.NewRetryingProvider(p, f.logger, f.metrics, name, 0, 0)
}

// close releases the transport chains built by the factory.
func (f *providerFactory) close() {
	for _, d := range f.doers {
		transport.Close(d)
	}
	f.doers = nil
}
