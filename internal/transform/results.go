package transform

import (
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
)

// RaceResults selects and renames the race classification columns.
func RaceResults(rows []sessions.ResultRow) ([]sessions.RaceResult, error) {
	out := make([]sessions.RaceResult, 0, len(rows))
	for i, row := range rows {
		pos, err := ToInt(row.Position)
		if err != nil {
			return nil, malformedRow("race results", i, "Position", err)
		}
		pts, err := ToInt(row.Points)
		if err != nil {
			return nil, malformedRow("race results", i, "Points", err)
		}
		laps, err := ToInt(row.Laps)
		if err != nil {
			return nil, malformedRow("race results", i, "Laps", err)
		}
		out = append(out, sessions.RaceResult{
			Position:     pos,
			DriverNumber: row.DriverNumber,
			Driver:       row.FullName,
			Team:         row.TeamName,
			Time:         FormatDuration(row.Time),
			Status:       row.Status,
			Points:       pts,
			Laps:         laps,
		})
	}
	return out, nil
}

// Winner returns the first record classified P1.
func Winner(results []sessions.RaceResult) (sessions.RaceResult, bool) {
	for _, r := range results {
		if r.Position == 1 {
			return r, true
		}
	}
	return sessions.RaceResult{}, false
}

// Podium returns up to the first n records by classified position.
func Podium(results []sessions.RaceResult, n int) []sessions.RaceResult {
	out := make([]sessions.RaceResult, 0, n)
	for pos := 1; pos <= n; pos++ {
		for _, r := range results {
			if r.Position == pos {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
