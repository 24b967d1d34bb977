package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if MustParseRFC3339(now.Format(time.RFC3339)) != now {
		t.Fatalf("expected parse round trip")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid RFC3339")
		}
	}()
	MustParseRFC3339("not-a-time")
}

func TestFixturesHelper(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sched := SampleSchedule(now)
	if len(sched) != 3 || !sched[1].Date.Before(now) || !sched[2].Date.After(now) {
		t.Fatalf("unexpected schedule fixture %+v", sched)
	}
	if rows := SampleDriverRows(); len(rows[1].ConstructorNames) != 2 {
		t.Fatalf("expected transfer in driver fixture, got %+v", rows[1])
	}
	race := SampleRace()
	if lap, ok := race.PickFastest(); !ok || lap.DriverNumber != "16" {
		t.Fatalf("expected driver 16 to own fastest lap, got %+v", lap)
	}
	if q := SampleQualifying(); q.Results[0].Q3 == nil {
		t.Fatalf("expected pole lap in Q3")
	}
	p := SeasonProvider(now)
	if p.Sessions[sessions.KindRace] == nil || len(p.Telemetry["1"]) == 0 {
		t.Fatalf("expected season provider to serve race and telemetry")
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestAssertBodyContains(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.WriteString("<h1>Bahrain Grand Prix</h1>")
	AssertBodyContains(t, rr, "Bahrain")
}

func TestServerStubs(t *testing.T) {
	p := &StubWarmer{Err: errors.New("stop")}
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("expected nil start error, got %v", err)
	}
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	_ = b.Handler()
	if b.Addr() != b.AddrVal {
		t.Fatalf("expected blocking server addr passthrough")
	}
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	_ = e.ListenAndServe()
	_ = e.Shutdown(context.Background())
	_ = e.Handler()
	if e.Addr() == "" {
		t.Fatalf("expected addr from ErrHTTPServer")
	}
	if e.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for ErrHTTPServer")
	}

	c := &CloseableHTTPServer{}
	_ = c.ListenAndServe()
	_ = c.Shutdown(context.Background())
	_ = c.Handler()
	if c.Addr() == "" {
		t.Fatalf("expected addr from CloseableHTTPServer")
	}
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}

	// verify Status passthrough
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestProviderHelpers(t *testing.T) {
	ctx := context.Background()
	key := sessions.Key{Season: 2024, Round: 1, Kind: sessions.KindRace}

	errProv := ErrProvider{Err: errors.New("boom")}
	if _, err := errProv.FetchSchedule(ctx, 2024); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected error passthrough")
	}
	if _, err := errProv.LoadSession(ctx, key, sessions.LoadOptions{}); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected session error passthrough")
	}
	if _, err := errProv.FetchLapTelemetry(ctx, key, "1", 1); !errors.Is(err, errProv.Err) {
		t.Fatalf("expected telemetry error passthrough")
	}

	var _ providers.DataProvider = ErrProvider{}
	var _ providers.DataProvider = UnavailableProvider{}

	unavail := UnavailableProvider{}
	if _, err := unavail.FetchDriverStandings(ctx, 2024); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}
	if _, err := unavail.FetchConstructorStandings(ctx, 2024); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable")
	}
}
