package teststubs

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
)

// StubProvider is a test double for providers.DataProvider.
// Sessions is keyed by session kind; Telemetry by driver number.
type StubProvider struct {
	Schedule     []events.Event
	Drivers      []standings.DriverRow
	Constructors []standings.ConstructorRow
	Sessions     map[sessions.Kind]*sessions.Session
	Telemetry    map[string][]telemetry.Sample

	ScheduleErr     error
	StandingsErr    error
	SessionErr      error
	TelemetryErr    error
	Calls           atomic.Int32
	TelemetryCalls  atomic.Int32
	Notify          chan struct{}
	mu              sync.Mutex
	LoadedKeys      []sessions.Key
	LastLoadOptions sessions.LoadOptions
}

func (s *StubProvider) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	_ = ctx
	_ = season
	s.track()
	return s.Schedule, s.ScheduleErr
}

func (s *StubProvider) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	_ = ctx
	_ = season
	s.track()
	return s.Drivers, s.StandingsErr
}

func (s *StubProvider) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	_ = ctx
	_ = season
	s.track()
	return s.Constructors, s.StandingsErr
}

// LoadSession returns the configured session for key.Kind, stamped with key.
func (s *StubProvider) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	_ = ctx
	s.track()
	s.mu.Lock()
	s.LoadedKeys = append(s.LoadedKeys, key)
	s.LastLoadOptions = opts
	s.mu.Unlock()
	if s.SessionErr != nil {
		return nil, s.SessionErr
	}
	sess, ok := s.Sessions[key.Kind]
	if !ok || sess == nil {
		return &sessions.Session{Key: key}, nil
	}
	out := *sess
	out.Key = key
	return &out, nil
}

func (s *StubProvider) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	_ = ctx
	_ = key
	_ = lapNumber
	s.track()
	s.TelemetryCalls.Add(1)
	if s.TelemetryErr != nil {
		return nil, s.TelemetryErr
	}
	return s.Telemetry[driverNumber], nil
}

// Loaded returns a copy of the session keys requested so far.
func (s *StubProvider) Loaded() []sessions.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sessions.Key(nil), s.LoadedKeys...)
}

func (s *StubProvider) track() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
}

// StubDoer is a test double for an HTTP doer. Respond builds each response;
// when nil a 200 with Body is returned.
type StubDoer struct {
	Status  int
	Body    string
	Header  http.Header
	Err     error
	Respond func(req *http.Request) (*http.Response, error)
	Calls   atomic.Int32

	mu       sync.Mutex
	Requests []*http.Request
}

func (d *StubDoer) Do(req *http.Request) (*http.Response, error) {
	d.Calls.Add(1)
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()
	if d.Respond != nil {
		return d.Respond(req)
	}
	if d.Err != nil {
		return nil, d.Err
	}
	return NewResponse(d.Status, d.Body, d.Header), nil
}

// NewResponse builds an *http.Response with the given status (200 when zero) and body.
func NewResponse(status int, body string, header http.Header) *http.Response {
	if status == 0 {
		status = http.StatusOK
	}
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
