package testutil

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

// ErrProvider fails every call with Err.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	return nil, p.Err
}

func (p ErrProvider) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable from every call.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	return nil, providers.ErrProviderUnavailable
}
