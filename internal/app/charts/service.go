package charts

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
	"github.com/preston-bernstein/f1-dashboard/internal/logging"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/transform"
)

// PodiumSize is the number of finishers drawn on the chart.
const PodiumSize = 3

const dataURIPrefix = "data:image/png;base64,"

// Renderer turns speed traces into PNG bytes.
type Renderer interface {
	Render(traces []telemetry.Trace) ([]byte, error)
}

// Service builds the fastest-lap speed comparison for the top finishers.
type Service struct {
	provider providers.TelemetryProvider
	renderer Renderer
	logger   *slog.Logger
}

// NewService constructs a Service. A nil logger falls back to slog.Default.
func NewService(provider providers.TelemetryProvider, renderer Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, renderer: renderer, logger: logger}
}

// Traces collects the fastest-lap trace of each podium finisher. Drivers with
// no timed lap or no telemetry are skipped.
func (s *Service) Traces(ctx context.Context, race *sessions.Session, results []sessions.RaceResult) ([]telemetry.Trace, error) {
	if s == nil || s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	var traces []telemetry.Trace
	for _, finisher := range transform.Podium(results, PodiumSize) {
		lap, ok := race.FastestLapOf(finisher.DriverNumber)
		if !ok {
			s.skip(ctx, finisher, "no timed lap")
			continue
		}
		samples, err := s.provider.FetchLapTelemetry(ctx, race.Key, finisher.DriverNumber, lap.LapNumber)
		if err != nil {
			if providers.IsKind(err, providers.KindNoData) {
				s.skip(ctx, finisher, "no telemetry")
				continue
			}
			return nil, err
		}
		if len(samples) == 0 {
			s.skip(ctx, finisher, "empty telemetry")
			continue
		}
		traces = append(traces, telemetry.Trace{
			DriverNumber: finisher.DriverNumber,
			Label:        finisher.Driver,
			Samples:      samples,
		})
	}
	return traces, nil
}

// PlotURL renders the podium traces as an inline data URI, or "" when no
// driver had a usable trace.
func (s *Service) PlotURL(ctx context.Context, race *sessions.Session, results []sessions.RaceResult) (string, error) {
	traces, err := s.Traces(ctx, race, results)
	if err != nil || len(traces) == 0 {
		return "", err
	}
	png, err := s.renderer.Render(traces)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

func (s *Service) skip(ctx context.Context, finisher sessions.RaceResult, reason string) {
	logging.FromContext(ctx, s.logger).Debug("skipping speed trace",
		logging.FieldDriver, finisher.DriverNumber,
		"reason", reason,
	)
}
