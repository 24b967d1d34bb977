package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envProviderRate     = "PROVIDER_RATE_INTERVAL"
	envProviderTimeout  = "PROVIDER_TIMEOUT"
	envErgastBaseURL    = "ERGAST_BASE_URL"
	envErgastMaxPages   = "ERGAST_MAX_PAGES"
	envOpenF1BaseURL    = "OPENF1_BASE_URL"
	envCacheDir         = "CACHE_DIR"
	envCacheBackend     = "CACHE_BACKEND"
	envCacheTTL         = "CACHE_TTL"
	envChartsEnabled    = "CHARTS_ENABLED"
	envWarmEnabled      = "WARM_ENABLED"
	envWarmInterval     = "WARM_INTERVAL"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	defaultPort         = "8000"
	defaultProvider     = "ergast"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "f1-dashboard"
	defaultCacheDir     = "./cache"
	defaultCacheBackend = "sqlite"

	defaultErgastBaseURL  = "https://api.jolpi.ca/ergast/f1"
	defaultErgastMaxPages = 30
	defaultOpenF1BaseURL  = "https://api.openf1.org/v1"

	// Jolpica allows 4 req/s burst; one request per 250ms stays inside it.
	defaultProviderRate    = 250 * Duration(time.Millisecond)
	defaultProviderTimeout = 15 * Duration(time.Second)
	defaultCacheTTL        = 12 * Duration(time.Hour)
	defaultWarmInterval    = 30 * Duration(time.Minute)
)
