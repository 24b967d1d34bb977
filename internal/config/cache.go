package config

// CacheConfig controls the provider response cache. The memory backend does not
// survive restarts and is meant for tests and local runs.
type CacheConfig struct {
	Dir     string   `validate:"required"`
	Backend string   `validate:"oneof=sqlite fs memory"`
	TTL     Duration `validate:"gte=0"` // 0 keeps entries forever
}

// WarmerConfig controls the background cache warm-up job.
type WarmerConfig struct {
	Enabled  bool
	Interval Duration
}

func loadCache() CacheConfig {
	return CacheConfig{
		Dir:     envOrDefault(envCacheDir, defaultCacheDir),
		Backend: envOrDefault(envCacheBackend, defaultCacheBackend),
		TTL:     ttlEnvOrDefault(envCacheTTL, defaultCacheTTL),
	}
}

func loadWarmer() WarmerConfig {
	return WarmerConfig{
		Enabled:  boolEnvOrDefault(envWarmEnabled, true),
		Interval: durationEnvOrDefault(envWarmInterval, defaultWarmInterval),
	}
}
