package providers

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
)

// Composite assembles a DataProvider from separate upstreams, e.g. Ergast for
// results and OpenF1 for telemetry. Missing parts report ErrProviderUnavailable.
type Composite struct {
	Schedule  ScheduleProvider
	Standings StandingsProvider
	Sessions  SessionProvider
	Telemetry TelemetryProvider
}

func (c Composite) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	if c.Schedule == nil {
		return nil, ErrProviderUnavailable
	}
	return c.Schedule.FetchSchedule(ctx, season)
}

func (c Composite) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	if c.Standings == nil {
		return nil, ErrProviderUnavailable
	}
	return c.Standings.FetchDriverStandings(ctx, season)
}

func (c Composite) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	if c.Standings == nil {
		return nil, ErrProviderUnavailable
	}
	return c.Standings.FetchConstructorStandings(ctx, season)
}

func (c Composite) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	if c.Sessions == nil {
		return nil, ErrProviderUnavailable
	}
	return c.Sessions.LoadSession(ctx, key, opts)
}

func (c Composite) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	if c.Telemetry == nil {
		return nil, ErrProviderUnavailable
	}
	return c.Telemetry.FetchLapTelemetry(ctx, key, driverNumber, lapNumber)
}
