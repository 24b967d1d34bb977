package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/teststubs"
	"github.com/preston-bernstein/f1-dashboard/internal/testutil"
)

var now = time.Date(2024, 5, 26, 12, 0, 0, 0, time.UTC)

func ev(name string, round int, at time.Time) events.Event {
	return events.Event{Name: name, Location: name + " City", Country: "X", Round: round, Date: at}
}

func sampleSeason() []events.Event {
	return []events.Event{
		ev("Imola", 7, now.AddDate(0, 0, -7)),
		ev("Canada", 9, now.AddDate(0, 0, 14)),
		ev("Miami", 6, now.AddDate(0, 0, -21)),
		ev("Monaco", 8, now.Add(3*time.Hour)),
	}
}

func TestPartitionSplitsAndSorts(t *testing.T) {
	s := Partition(sampleSeason(), now)
	if len(s.Future) != 2 || len(s.Past) != 2 {
		t.Fatalf("expected 2/2 partition, got %d/%d", len(s.Future), len(s.Past))
	}
	if s.Future[0].Name != "Monaco" || s.Past[0].Name != "Miami" {
		t.Fatalf("expected partitions sorted by date, got %+v %+v", s.Future, s.Past)
	}
}

func TestPartitionExcludesEventAtNow(t *testing.T) {
	s := Partition([]events.Event{ev("Now", 1, now)}, now)
	if len(s.Future) != 0 || len(s.Past) != 0 {
		t.Fatalf("expected event at now in neither partition, got %+v", s)
	}
}

func TestPartitionNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	s := Partition([]events.Event{ev("Local", 1, now.Add(time.Hour).In(loc))}, now)
	if len(s.Future) != 1 || s.Future[0].Date.Location() != time.UTC {
		t.Fatalf("expected UTC future event, got %+v", s.Future)
	}
}

func TestNextEventPicksEarliestFuture(t *testing.T) {
	next := Partition(sampleSeason(), now).NextEvent()
	if next.Name != "Monaco" || next.Location != "Monaco City" || !next.HasDate() {
		t.Fatalf("unexpected next race %+v", next)
	}
	if next.RaceDateStr != "26 May 2024 15:00 UTC" {
		t.Fatalf("unexpected display date %q", next.RaceDateStr)
	}
	if *next.RaceDateISO != "2024-05-26T15:00:00Z" {
		t.Fatalf("unexpected iso date %q", *next.RaceDateISO)
	}
}

func TestNextEventSeasonEnded(t *testing.T) {
	past := []events.Event{ev("Abu Dhabi", 24, now.AddDate(0, 0, -1))}
	next := Partition(past, now).NextEvent()
	if next.Name != "Season ended" || next.Location != "No race :(" || next.RaceDateISO != nil {
		t.Fatalf("expected season ended sentinel, got %+v", next)
	}
}

func TestLatestEventNeverFuture(t *testing.T) {
	latest, ok := Partition(sampleSeason(), now).LatestEvent()
	if !ok || latest.Name != "Imola" {
		t.Fatalf("expected Imola, got %+v", latest)
	}
	if !latest.Date.Before(now) {
		t.Fatalf("expected a past event, got %s", latest.Date)
	}

	future := []events.Event{ev("Bahrain", 1, now.AddDate(0, 0, 3))}
	if _, ok := Partition(future, now).LatestEvent(); ok {
		t.Fatalf("expected no latest event before season start")
	}
}

func TestServiceLatestRaceNoData(t *testing.T) {
	stub := &teststubs.StubProvider{Schedule: []events.Event{ev("Bahrain", 1, now.AddDate(0, 0, 3))}}
	svc := NewService(stub, testutil.NowAt(now))

	_, err := svc.LatestRace(context.Background(), svc.CurrentSeason())
	if !providers.IsKind(err, providers.KindNoData) || !errors.Is(err, ErrNoPastRace) {
		t.Fatalf("expected no-data ErrNoPastRace, got %v", err)
	}
}

func TestServicePropagatesProviderErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&teststubs.StubProvider{ScheduleErr: boom}, testutil.NowAt(now))

	if _, err := svc.NextRace(context.Background(), 2024); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if _, err := svc.LatestRace(context.Background(), 2024); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestServiceCurrentSeasonAndNilProvider(t *testing.T) {
	svc := NewService(nil, testutil.NowAt(now.In(time.FixedZone("X", -10*60*60))))
	if svc.CurrentSeason() != 2024 {
		t.Fatalf("expected 2024, got %d", svc.CurrentSeason())
	}
	if _, err := svc.Load(context.Background(), 2024); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
