package ergast

import "time"

const (
	providerName       = "ergast"
	defaultBaseURL     = "https://api.jolpi.ca/ergast/f1"
	defaultPageLimit   = 100
	defaultHTTPTimeout = 15 * time.Second
	defaultMaxPages    = 30
)
