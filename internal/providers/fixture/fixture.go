package fixture

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

// Provider serves a deterministic season laid out around the current time:
// three completed rounds a week apart and three upcoming ones. Useful for
// local runs without network access.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

type entrant struct {
	number string
	code   string
	given  string
	family string
	team   string
	pace   time.Duration // base lap time
}

var grid = []entrant{
	{"1", "VER", "Max", "Verstappen", "Red Bull Racing", 92*time.Second + 608*time.Millisecond},
	{"4", "NOR", "Lando", "Norris", "McLaren", 92*time.Second + 911*time.Millisecond},
	{"16", "LEC", "Charles", "Leclerc", "Ferrari", 93*time.Second + 102*time.Millisecond},
	{"38", "BEA", "Oliver", "Bearman", "Ferrari", 93*time.Second + 540*time.Millisecond},
	{"44", "HAM", "Lewis", "Hamilton", "Mercedes", 93*time.Second + 377*time.Millisecond},
}

var venues = []struct{ name, locality, country string }{
	{"Bahrain Grand Prix", "Sakhir", "Bahrain"},
	{"Saudi Arabian Grand Prix", "Jeddah", "Saudi Arabia"},
	{"Australian Grand Prix", "Melbourne", "Australia"},
	{"Japanese Grand Prix", "Suzuka", "Japan"},
	{"Chinese Grand Prix", "Shanghai", "China"},
	{"Miami Grand Prix", "Miami", "USA"},
}

const (
	completedRounds = 3
	raceLaps        = 5
)

// FetchSchedule returns six rounds: 21, 14 and 7 days ago, then 7, 14 and 21 days ahead.
func (p *Provider) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	_ = ctx
	_ = season
	anchor := p.now().UTC().Truncate(time.Hour)

	out := make([]events.Event, 0, len(venues))
	for i, v := range venues {
		offset := i - completedRounds
		if offset >= 0 {
			offset++
		}
		out = append(out, events.Event{
			Name:     v.name,
			Location: v.locality,
			Country:  v.country,
			Round:    i + 1,
			Date:     anchor.AddDate(0, 0, 7*offset),
		})
	}
	return out, nil
}

// FetchDriverStandings includes a mid-season transfer: Bearman drove for Haas before Ferrari.
func (p *Provider) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	_ = ctx
	_ = season
	return []standings.DriverRow{
		{Position: "1", GivenName: "Max", FamilyName: "Verstappen", ConstructorNames: []string{"Red Bull"}, Points: "69.0"},
		{Position: "2", GivenName: "Lando", FamilyName: "Norris", ConstructorNames: []string{"McLaren"}, Points: "54"},
		{Position: "3", GivenName: "Charles", FamilyName: "Leclerc", ConstructorNames: []string{"Ferrari"}, Points: "45"},
		{Position: "4", GivenName: "Lewis", FamilyName: "Hamilton", ConstructorNames: []string{"Mercedes"}, Points: "28"},
		{Position: "5", GivenName: "Oliver", FamilyName: "Bearman", ConstructorNames: []string{"Haas F1 Team", "Ferrari"}, Points: "7.0"},
	}, nil
}

func (p *Provider) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	_ = ctx
	_ = season
	return []standings.ConstructorRow{
		{Position: "1", ConstructorName: "Red Bull", Points: "69"},
		{Position: "2", ConstructorName: "McLaren", Points: "54.0"},
		{Position: "3", ConstructorName: "Ferrari", Points: "52"},
		{Position: "4", ConstructorName: "Mercedes", Points: "28"},
	}, nil
}

// LoadSession returns results for completed rounds; later rounds have no data.
func (p *Provider) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	_ = ctx
	op := "fixture session " + key.String()
	if key.Round < 1 || key.Round > completedRounds {
		return nil, providers.NoData(op, fmt.Errorf("round %d has not been run", key.Round))
	}

	switch key.Kind {
	case sessions.KindRace:
		sess := &sessions.Session{Key: key, Results: raceResults()}
		if opts.Laps {
			sess.Laps = raceLapTimes()
		}
		return sess, nil
	case sessions.KindQualifying:
		return &sessions.Session{Key: key, Results: qualifyingResults()}, nil
	default:
		return nil, providers.NoData(op, fmt.Errorf("session kind %q not available", key.Kind))
	}
}

// FetchLapTelemetry returns a synthetic 5km speed trace sampled every 25m.
func (p *Provider) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	_ = ctx
	_ = lapNumber
	op := "fixture telemetry " + key.String()
	idx := -1
	for i, e := range grid {
		if e.number == driverNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, providers.NoData(op, fmt.Errorf("driver %s not entered", driverNumber))
	}

	const (
		lapLength = 5000.0
		step      = 25.0
	)
	samples := make([]telemetry.Sample, 0, int(lapLength/step)+1)
	for d := 0.0; d <= lapLength; d += step {
		phase := 2 * math.Pi * d / lapLength
		speed := 220 + 90*math.Sin(3*phase) - 4*float64(idx)
		samples = append(samples, telemetry.Sample{Distance: d, Speed: math.Round(speed)})
	}
	return samples, nil
}

func raceResults() []sessions.ResultRow {
	total := 1*time.Hour + 31*time.Minute + 44*time.Second + 742*time.Millisecond
	gaps := []time.Duration{0, 22*time.Second + 457*time.Millisecond, 25*time.Second + 110*time.Millisecond, 39*time.Second + 669*time.Millisecond}
	points := []string{"26.0", "18", "15", "12", "0"}

	out := make([]sessions.ResultRow, 0, len(grid))
	for i, e := range grid {
		row := sessions.ResultRow{
			Position:     fmt.Sprintf("%d", i+1),
			DriverNumber: e.number,
			Abbreviation: e.code,
			FullName:     e.given + " " + e.family,
			TeamName:     e.team,
			Status:       "Finished",
			Points:       points[i],
			Laps:         fmt.Sprintf("%d.0", raceLaps),
		}
		switch {
		case i == 0:
			t := total
			row.Time = &t
		case i < len(gaps):
			t := gaps[i]
			row.Time = &t
		default:
			row.Status = "+1 Lap"
			row.Laps = fmt.Sprintf("%d", raceLaps-1)
		}
		out = append(out, row)
	}
	return out
}

func raceLapTimes() []sessions.Lap {
	var out []sessions.Lap
	for _, e := range grid {
		for lap := 1; lap <= raceLaps; lap++ {
			// Lap 1 is slowest; pace peaks on lap 4.
			delta := time.Duration(math.Abs(float64(lap-4))) * 350 * time.Millisecond
			if lap == 1 {
				delta += 4 * time.Second
			}
			t := e.pace + delta
			out = append(out, sessions.Lap{DriverNumber: e.number, LapNumber: lap, LapTime: &t})
		}
	}
	return out
}

func qualifyingResults() []sessions.ResultRow {
	q := func(s, ms int) *time.Duration {
		d := time.Duration(s)*time.Second + time.Duration(ms)*time.Millisecond
		return &d
	}
	rows := []sessions.ResultRow{
		{Q1: q(90, 31), Q2: q(89, 374), Q3: q(89, 179)},
		{Q1: q(90, 412), Q2: q(89, 702), Q3: q(89, 407)},
		{Q1: q(90, 558), Q2: q(89, 811), Q3: q(89, 526)},
		{Q1: q(90, 903), Q2: q(90, 122)},
		{Q1: q(91, 240)},
	}
	for i, e := range grid {
		rows[i].Position = fmt.Sprintf("%d", i+1)
		rows[i].DriverNumber = e.number
		rows[i].Abbreviation = e.code
		rows[i].FullName = e.given + " " + e.family
		rows[i].TeamName = e.team
	}
	return rows
}
