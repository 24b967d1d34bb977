package transform

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
)

// DriverStandings builds display records in provider order. The constructor
// column is the last entry of each driver's affiliation list.
func DriverStandings(rows []standings.DriverRow) ([]standings.DriverStanding, error) {
	out := make([]standings.DriverStanding, 0, len(rows))
	for i, row := range rows {
		pos, err := ToInt(row.Position)
		if err != nil {
			return nil, malformedRow("driver standings", i, "position", err)
		}
		pts, err := ToInt(row.Points)
		if err != nil {
			return nil, malformedRow("driver standings", i, "points", err)
		}
		out = append(out, standings.DriverStanding{
			Position:    pos,
			Driver:      strings.TrimSpace(row.GivenName + " " + row.FamilyName),
			Constructor: currentConstructor(row.ConstructorNames),
			Points:      pts,
		})
	}
	return out, nil
}

// ConstructorStandings builds display records in provider order.
func ConstructorStandings(rows []standings.ConstructorRow) ([]standings.ConstructorStanding, error) {
	out := make([]standings.ConstructorStanding, 0, len(rows))
	for i, row := range rows {
		pos, err := ToInt(row.Position)
		if err != nil {
			return nil, malformedRow("constructor standings", i, "position", err)
		}
		pts, err := ToInt(row.Points)
		if err != nil {
			return nil, malformedRow("constructor standings", i, "points", err)
		}
		out = append(out, standings.ConstructorStanding{
			Position:    pos,
			Constructor: row.ConstructorName,
			Points:      pts,
		})
	}
	return out, nil
}

func currentConstructor(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1]
}

func malformedRow(op string, row int, column string, err error) error {
	return providers.Malformed(op, fmt.Errorf("row %d %s: %w", row, column, err))
}
