package testutil

import (
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
	"github.com/preston-bernstein/f1-dashboard/internal/teststubs"
)

// SampleSchedule returns two completed rounds and one upcoming round around now.
func SampleSchedule(now time.Time) []events.Event {
	return []events.Event{
		{Name: "Bahrain Grand Prix", Location: "Sakhir", Country: "Bahrain", Round: 1, Date: now.AddDate(0, 0, -14)},
		{Name: "Saudi Arabian Grand Prix", Location: "Jeddah", Country: "Saudi Arabia", Round: 2, Date: now.AddDate(0, 0, -7)},
		{Name: "Australian Grand Prix", Location: "Melbourne", Country: "Australia", Round: 3, Date: now.AddDate(0, 0, 7)},
	}
}

// SampleDriverRows includes a mid-season transfer for the second driver.
func SampleDriverRows() []standings.DriverRow {
	return []standings.DriverRow{
		{Position: "1", GivenName: "Max", FamilyName: "Verstappen", ConstructorNames: []string{"Red Bull"}, Points: "51.0"},
		{Position: "2", GivenName: "Oliver", FamilyName: "Bearman", ConstructorNames: []string{"Haas F1 Team", "Ferrari"}, Points: "6"},
	}
}

// SampleConstructorRows returns a two-team constructor table.
func SampleConstructorRows() []standings.ConstructorRow {
	return []standings.ConstructorRow{
		{Position: "1", ConstructorName: "Red Bull", Points: "87"},
		{Position: "2", ConstructorName: "Ferrari", Points: "49.0"},
	}
}

func millis(ms int64) *time.Duration {
	d := time.Duration(ms) * time.Millisecond
	return &d
}

// SampleRace is a three-car race with laps.
func SampleRace() *sessions.Session {
	return &sessions.Session{
		Results: []sessions.ResultRow{
			{Position: "1", DriverNumber: "1", FullName: "Max Verstappen", TeamName: "Red Bull", Time: millis(5_197_000), Status: "Finished", Points: "25", Laps: "50"},
			{Position: "2", DriverNumber: "11", FullName: "Sergio Perez", TeamName: "Red Bull", Time: millis(13_643), Status: "Finished", Points: "18", Laps: "50"},
			{Position: "3", DriverNumber: "16", FullName: "Charles Leclerc", TeamName: "Ferrari", Time: nil, Status: "+1 Lap", Points: "15.0", Laps: "49"},
		},
		Laps: []sessions.Lap{
			{DriverNumber: "1", LapNumber: 32, LapTime: millis(91_304)},
			{DriverNumber: "11", LapNumber: 40, LapTime: millis(91_520)},
			{DriverNumber: "16", LapNumber: 39, LapTime: millis(90_634)},
		},
	}
}

// SampleQualifying has pole set in Q3.
func SampleQualifying() *sessions.Session {
	return &sessions.Session{
		Results: []sessions.ResultRow{
			{Position: "1", DriverNumber: "1", FullName: "Max Verstappen", Q1: millis(90_031), Q2: millis(89_374), Q3: millis(89_179)},
			{Position: "2", DriverNumber: "16", FullName: "Charles Leclerc", Q1: millis(90_243), Q2: millis(89_165), Q3: millis(89_407)},
		},
	}
}

// SampleTelemetry is a short constant-speed trace.
func SampleTelemetry() []telemetry.Sample {
	return []telemetry.Sample{
		{Distance: 0, Speed: 280},
		{Distance: 77.8, Speed: 282},
		{Distance: 156.1, Speed: 285},
	}
}

// SeasonProvider returns a stub provider serving the sample season.
func SeasonProvider(now time.Time) *teststubs.StubProvider {
	return &teststubs.StubProvider{
		Schedule:     SampleSchedule(now),
		Drivers:      SampleDriverRows(),
		Constructors: SampleConstructorRows(),
		Sessions: map[sessions.Kind]*sessions.Session{
			sessions.KindRace:       SampleRace(),
			sessions.KindQualifying: SampleQualifying(),
		},
		Telemetry: map[string][]telemetry.Sample{
			"1":  SampleTelemetry(),
			"11": SampleTelemetry(),
			"16": SampleTelemetry(),
		},
	}
}
