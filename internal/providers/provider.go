package providers

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
)

// ScheduleProvider fetches the event schedule of a season. Event dates must be UTC.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, season int) ([]events.Event, error)
}

// StandingsProvider fetches championship standings. An empty slice with a nil
// error means the season has no standings yet.
type StandingsProvider interface {
	FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error)
	FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error)
}

// SessionProvider loads the classification (and optionally laps) of a session.
type SessionProvider interface {
	LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error)
}

// TelemetryProvider fetches the speed trace of a single lap.
type TelemetryProvider interface {
	FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error)
}

// DataProvider combines the capabilities the dashboard pages need.
type DataProvider interface {
	ScheduleProvider
	StandingsProvider
	SessionProvider
	TelemetryProvider
}
