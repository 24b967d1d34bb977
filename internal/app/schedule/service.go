package schedule

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/timeutil"
)

// ErrNoPastRace is reported when no round of the season has been run yet.
var ErrNoPastRace = errors.New("no race found for the current season")

// Schedule is a season's events split around a reference time.
// An event starting exactly at the reference time is in neither partition.
type Schedule struct {
	Future []events.Event
	Past   []events.Event
}

// Partition splits evs into future (date > now) and past (date < now), each sorted by date.
func Partition(evs []events.Event, now time.Time) Schedule {
	var s Schedule
	for _, ev := range evs {
		ev.Date = ev.Date.UTC()
		switch {
		case ev.Date.After(now):
			s.Future = append(s.Future, ev)
		case ev.Date.Before(now):
			s.Past = append(s.Past, ev)
		}
	}
	byDate := func(list []events.Event) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}
	byDate(s.Future)
	byDate(s.Past)
	return s
}

// NextEvent returns the earliest future event, or the season-ended card.
func (s Schedule) NextEvent() events.NextRace {
	if len(s.Future) == 0 {
		return events.SeasonEnded()
	}
	ev := s.Future[0]
	iso := ev.Date.Format(time.RFC3339)
	return events.NextRace{
		Name:        ev.Name,
		Location:    ev.Location,
		Country:     ev.Country,
		RaceDateStr: timeutil.FormatDisplay(ev.Date),
		RaceDateISO: &iso,
	}
}

// LatestEvent returns the most recently completed event.
func (s Schedule) LatestEvent() (events.Event, bool) {
	if len(s.Past) == 0 {
		return events.Event{}, false
	}
	return s.Past[len(s.Past)-1], true
}

// Service resolves the current season's schedule.
type Service struct {
	provider providers.ScheduleProvider
	now      func() time.Time
}

// NewService constructs a Service. A nil clock defaults to time.Now.
func NewService(provider providers.ScheduleProvider, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{provider: provider, now: now}
}

// Now returns the service clock in UTC.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// CurrentSeason is the calendar year of the service clock.
func (s *Service) CurrentSeason() int {
	return s.Now().Year()
}

// Load fetches the season schedule and partitions it around now.
func (s *Service) Load(ctx context.Context, season int) (Schedule, error) {
	if s == nil || s.provider == nil {
		return Schedule{}, providers.ErrProviderUnavailable
	}
	evs, err := s.provider.FetchSchedule(ctx, season)
	if err != nil {
		return Schedule{}, err
	}
	return Partition(evs, s.Now()), nil
}

// NextRace returns the homepage card for the season.
func (s *Service) NextRace(ctx context.Context, season int) (events.NextRace, error) {
	sched, err := s.Load(ctx, season)
	if err != nil {
		return events.NextRace{}, err
	}
	return sched.NextEvent(), nil
}

// LatestRace returns the last completed event, or a no-data error wrapping ErrNoPastRace.
func (s *Service) LatestRace(ctx context.Context, season int) (events.Event, error) {
	sched, err := s.Load(ctx, season)
	if err != nil {
		return events.Event{}, err
	}
	ev, ok := sched.LatestEvent()
	if !ok {
		return events.Event{}, providers.NoData("latest race", ErrNoPastRace)
	}
	return ev, nil
}
