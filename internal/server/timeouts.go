package server

import "time"

// Page loads make several sequential upstream calls on a cold cache, so the
// write timeout is well above the per-request provider timeout.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 90 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
