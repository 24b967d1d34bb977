package ergast

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/timeutil"
)

func mapEvent(r race) (events.Event, error) {
	round, err := strconv.Atoi(strings.TrimSpace(r.Round))
	if err != nil {
		return events.Event{}, fmt.Errorf("race %q round: %w", r.RaceName, err)
	}
	date, err := timeutil.ParseEventTime(r.Date, r.Time)
	if err != nil {
		return events.Event{}, fmt.Errorf("race %q date: %w", r.RaceName, err)
	}
	return events.Event{
		Name:     r.RaceName,
		Location: r.Circuit.Location.Locality,
		Country:  r.Circuit.Location.Country,
		Round:    round,
		Date:     date,
	}, nil
}

func mapDriverRows(list []driverStanding) []standings.DriverRow {
	out := make([]standings.DriverRow, 0, len(list))
	for _, s := range list {
		names := make([]string, 0, len(s.Constructors))
		for _, c := range s.Constructors {
			names = append(names, c.Name)
		}
		out = append(out, standings.DriverRow{
			Position:         positionOf(s.Position, s.PositionText),
			GivenName:        s.Driver.GivenName,
			FamilyName:       s.Driver.FamilyName,
			ConstructorNames: names,
			Points:           s.Points,
		})
	}
	return out
}

func mapConstructorRows(list []constructorStanding) []standings.ConstructorRow {
	out := make([]standings.ConstructorRow, 0, len(list))
	for _, s := range list {
		out = append(out, standings.ConstructorRow{
			Position:        positionOf(s.Position, s.PositionText),
			ConstructorName: s.Constructor.Name,
			Points:          s.Points,
		})
	}
	return out
}

// positionOf falls back to positionText when position is omitted.
func positionOf(position, text string) string {
	if strings.TrimSpace(position) != "" {
		return position
	}
	return text
}

// mapRaceResults reports the winner's total race time and every other
// driver's gap to the winner.
func mapRaceResults(results []raceResult) ([]sessions.ResultRow, error) {
	var winner *time.Duration
	for _, r := range results {
		if strings.TrimSpace(r.Position) == "1" && r.Time != nil {
			d, err := parseMillis(r.Time.Millis)
			if err != nil {
				return nil, fmt.Errorf("winner time: %w", err)
			}
			winner = &d
			break
		}
	}

	out := make([]sessions.ResultRow, 0, len(results))
	for _, r := range results {
		row := resultRow(r.Number, r.Position, r.Driver, r.Constructor)
		row.Status = r.Status
		row.Points = r.Points
		row.Laps = r.Laps

		if r.Time != nil && r.Time.Millis != "" && winner != nil {
			total, err := parseMillis(r.Time.Millis)
			if err != nil {
				return nil, fmt.Errorf("driver %s time: %w", r.Number, err)
			}
			t := total
			if strings.TrimSpace(r.Position) != "1" {
				t = total - *winner
			}
			row.Time = &t
		}
		out = append(out, row)
	}
	return out, nil
}

func mapQualifying(results []qualifyingResult) ([]sessions.ResultRow, error) {
	out := make([]sessions.ResultRow, 0, len(results))
	for _, r := range results {
		row := resultRow(r.Number, r.Position, r.Driver, r.Constructor)
		var err error
		if row.Q1, err = optionalLapTime(r.Q1); err != nil {
			return nil, fmt.Errorf("driver %s Q1: %w", r.Number, err)
		}
		if row.Q2, err = optionalLapTime(r.Q2); err != nil {
			return nil, fmt.Errorf("driver %s Q2: %w", r.Number, err)
		}
		if row.Q3, err = optionalLapTime(r.Q3); err != nil {
			return nil, fmt.Errorf("driver %s Q3: %w", r.Number, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func resultRow(number, position string, d driver, c constructor) sessions.ResultRow {
	return sessions.ResultRow{
		Position:     position,
		DriverNumber: number,
		Abbreviation: d.Code,
		FullName:     strings.TrimSpace(d.GivenName + " " + d.FamilyName),
		TeamName:     c.Name,
	}
}

// driverNumbers maps Ergast driver ids to car numbers using a classification.
func driverNumbers(results []raceResult) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		out[r.Driver.DriverID] = r.Number
	}
	return out
}

func mapLaps(laps []lap, numbers map[string]string) ([]sessions.Lap, error) {
	var out []sessions.Lap
	for _, l := range laps {
		n, err := strconv.Atoi(strings.TrimSpace(l.Number))
		if err != nil {
			return nil, fmt.Errorf("lap number %q: %w", l.Number, err)
		}
		for _, t := range l.Timings {
			lapTime, err := optionalLapTime(t.Time)
			if err != nil {
				return nil, fmt.Errorf("lap %d driver %s: %w", n, t.DriverID, err)
			}
			number, ok := numbers[t.DriverID]
			if !ok {
				number = t.DriverID
			}
			out = append(out, sessions.Lap{DriverNumber: number, LapNumber: n, LapTime: lapTime})
		}
	}
	return out, nil
}

// fastestLapsFromResults builds one lap per driver from the classification's
// fastest-lap block. Used when the lap timing feed is unavailable.
func fastestLapsFromResults(results []raceResult) []sessions.Lap {
	var out []sessions.Lap
	for _, r := range results {
		if r.FastestLap == nil || r.FastestLap.Time == nil {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(r.FastestLap.Lap))
		if err != nil {
			continue
		}
		lapTime, err := optionalLapTime(r.FastestLap.Time.Time)
		if err != nil || lapTime == nil {
			continue
		}
		out = append(out, sessions.Lap{DriverNumber: r.Number, LapNumber: n, LapTime: lapTime})
	}
	return out
}

func parseMillis(raw string) (time.Duration, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func optionalLapTime(raw string) (*time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := parseLapTime(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseLapTime parses "1:29.708", "59.123" or "1:02:03.456".
func parseLapTime(raw string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid lap time %q", raw)
	}
	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || (secs >= 60 && len(parts) > 1) {
		return 0, fmt.Errorf("invalid lap time %q", raw)
	}
	total := time.Duration(secs*1000+0.5) * time.Millisecond

	unit := time.Minute
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid lap time %q", raw)
		}
		total += time.Duration(n) * unit
		unit *= 60
	}
	return total, nil
}
