package results

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/transform"
)

// Report is the assembled last-race page data.
type Report struct {
	Event          events.Event
	Results        []sessions.RaceResult
	Winner         string
	FastestLap     string
	FastestLapTime string
	PolePosition   string
	PoleTime       string
	// Race keeps the loaded session (with laps) for chart building.
	Race *sessions.Session
}

// Service assembles race results, fastest lap and pole for a round.
type Service struct {
	provider providers.SessionProvider
}

// NewService constructs a Service with the provided provider.
func NewService(provider providers.SessionProvider) *Service {
	return &Service{provider: provider}
}

// Assemble loads the race (with laps) and qualifying sessions of ev's round.
func (s *Service) Assemble(ctx context.Context, season int, ev events.Event) (Report, error) {
	if s == nil || s.provider == nil {
		return Report{}, providers.ErrProviderUnavailable
	}

	raceKey := sessions.Key{Season: season, Round: ev.Round, Kind: sessions.KindRace}
	race, err := s.provider.LoadSession(ctx, raceKey, sessions.LoadOptions{Laps: true})
	if err != nil {
		return Report{}, err
	}
	results, err := transform.RaceResults(race.Results)
	if err != nil {
		return Report{}, err
	}

	qualiKey := sessions.Key{Season: season, Round: ev.Round, Kind: sessions.KindQualifying}
	quali, err := s.provider.LoadSession(ctx, qualiKey, sessions.LoadOptions{})
	if err != nil {
		return Report{}, err
	}

	// Winner, fastest lap and pole stay empty when the sessions lack them,
	// e.g. before the race classification is published.
	report := Report{
		Event:   ev,
		Results: results,
		Race:    race,
	}
	if w, ok := transform.Winner(results); ok {
		report.Winner = w.Driver
	}
	if lap, ok := race.PickFastest(); ok {
		if d, found := race.Driver(lap.DriverNumber); found {
			report.FastestLap = d.FullName
		} else {
			report.FastestLap = lap.DriverNumber
		}
		report.FastestLapTime = transform.FastestLapLabel(lap.LapNumber, lap.LapTime)
	}
	if len(quali.Results) > 0 {
		pole := quali.Results[0]
		report.PolePosition = pole.FullName
		report.PoleTime = transform.BestQualifyingTime(pole.Q1, pole.Q2, pole.Q3)
	}
	return report, nil
}
