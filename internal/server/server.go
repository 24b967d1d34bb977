package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/f1-dashboard/internal/app/charts"
	"github.com/preston-bernstein/f1-dashboard/internal/app/results"
	"github.com/preston-bernstein/f1-dashboard/internal/app/schedule"
	"github.com/preston-bernstein/f1-dashboard/internal/app/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/cache"
	"github.com/preston-bernstein/f1-dashboard/internal/chart"
	"github.com/preston-bernstein/f1-dashboard/internal/config"
	httpserver "github.com/preston-bernstein/f1-dashboard/internal/http"
	"github.com/preston-bernstein/f1-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/f1-dashboard/internal/logging"
	"github.com/preston-bernstein/f1-dashboard/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/render"
	"github.com/preston-bernstein/f1-dashboard/internal/warmer"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         cache.Store
	factory       *providerFactory
	httpServer    httpServer
	metricsServer httpServer
	warmer        Warmer
	metricsStop   func(context.Context) error
}

// New opens the response cache once, builds the provider stack and wires
// the HTTP server, metrics server and cache warmer.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		stopMetrics(metricsShutdown)
		return nil, fmt.Errorf("open cache: %w", err)
	}
	logging.Info(logger, "provider cache ready",
		logging.FieldCache, cfg.Cache.Backend,
		"dir", cfg.Cache.Dir,
	)

	factory := newProviderFactory(logger, recorder, store)
	provider := factory.build(cfg)

	srv, err := newServerWithProvider(cfg, logger, provider, store, recorder)
	if err != nil {
		factory.close()
		_ = store.Close()
		stopMetrics(metricsShutdown)
		return nil, err
	}
	srv.factory = factory
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, store cache.Store, recorder *metrics.Recorder) (*Server, error) {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	pages, err := render.New(nil)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	var w Warmer
	var statusFn func() warmer.Status
	if cfg.Warmer.Enabled {
		ww := warmer.New(provider, store, cfg.Cache.TTL, logger, recorder, cfg.Warmer.Interval)
		w = ww
		statusFn = ww.Status
	}

	handler := handlers.NewHandler(buildServices(cfg, provider, logger), pages, logger, recorder, statusFn)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(handler, logger, recorder)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		cache:      store,
		httpServer: newNetHTTPServer(":"+cfg.Port, router),
		warmer:     w,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, w Warmer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		warmer:     w,
	}
}

func buildServices(cfg config.Config, provider providers.DataProvider, logger *slog.Logger) handlers.Services {
	svc := handlers.Services{
		Schedule:  schedule.NewService(provider, nil),
		Standings: standings.NewService(provider),
		Results:   results.NewService(provider),
	}
	if cfg.Charts {
		svc.Charts = charts.NewService(provider, chart.NewRenderer(), logger)
	}
	return svc
}

// Run starts the warmer and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.warmer != nil {
		if err := s.warmer.Start(ctx); err != nil && s.logger != nil {
			s.logger.Error("failed to start cache warmer", "error", err)
		}
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.warmer != nil {
		if err := s.warmer.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop cache warmer", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop rate limiter tickers once no request can reach the providers.
	if s.factory != nil {
		s.factory.close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil && s.logger != nil {
			s.logger.Warn("cache close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// stopMetrics flushes the exporters when New fails after metrics setup.
func stopMetrics(shutdown func(context.Context) error) {
	if shutdown != nil {
		_ = shutdown(context.Background())
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
