package standings

import (
	"context"

	domain "github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/transform"
)

// Service loads championship standings as display records. Empty standings
// (before the first round) are returned as empty slices, not errors.
type Service struct {
	provider providers.StandingsProvider
}

// NewService constructs a Service with the provided provider.
func NewService(provider providers.StandingsProvider) *Service {
	return &Service{provider: provider}
}

// Drivers returns driver standings in provider order.
func (s *Service) Drivers(ctx context.Context, season int) ([]domain.DriverStanding, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	rows, err := s.provider.FetchDriverStandings(ctx, season)
	if err != nil {
		return nil, err
	}
	return transform.DriverStandings(rows)
}

// Constructors returns constructor standings in provider order.
func (s *Service) Constructors(ctx context.Context, season int) ([]domain.ConstructorStanding, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	rows, err := s.provider.FetchConstructorStandings(ctx, season)
	if err != nil {
		return nil, err
	}
	return transform.ConstructorStandings(rows)
}
