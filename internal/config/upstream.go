package config

// UpstreamConfig controls how we talk to the Ergast-compatible and OpenF1 APIs.
type UpstreamConfig struct {
	ErgastBaseURL  string   `validate:"required,url"`
	ErgastMaxPages int      `validate:"gte=1"`
	OpenF1BaseURL  string   `validate:"required,url"`
	RateInterval   Duration `validate:"gt=0"`
	Timeout        Duration `validate:"gt=0"`
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		ErgastBaseURL:  envOrDefault(envErgastBaseURL, defaultErgastBaseURL),
		ErgastMaxPages: intEnvOrDefault(envErgastMaxPages, defaultErgastMaxPages),
		OpenF1BaseURL:  envOrDefault(envOpenF1BaseURL, defaultOpenF1BaseURL),
		RateInterval:   durationEnvOrDefault(envProviderRate, defaultProviderRate),
		Timeout:        durationEnvOrDefault(envProviderTimeout, defaultProviderTimeout),
	}
}
