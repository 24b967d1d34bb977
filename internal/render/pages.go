package render

import (
	"html/template"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
)

// Active page identifiers, matching the route names.
const (
	ActiveHome     = "homepage"
	ActiveLastRace = "last_race"
)

// HomePage is the homepage view context. Every field has an explicit
// empty value so the template never sees an undefined key.
type HomePage struct {
	NextRace             *events.NextRace                `json:"next_race"`
	DriverStandings      []standings.DriverStanding      `json:"driver_standings"`
	ConstructorStandings []standings.ConstructorStanding `json:"constructor_standings"`
	ErrorMessage         string                          `json:"error_message,omitempty"`
	ErrorKind            string                          `json:"error_kind,omitempty"`
	ActivePage           string                          `json:"active_page"`
}

// NewHomePage returns the homepage defaults.
func NewHomePage() HomePage {
	return HomePage{
		DriverStandings:      []standings.DriverStanding{},
		ConstructorStandings: []standings.ConstructorStanding{},
		ActivePage:           ActiveHome,
	}
}

// LastRacePage is the last-race view context.
type LastRacePage struct {
	EventName      string                `json:"event_name"`
	Results        []sessions.RaceResult `json:"results"`
	RaceWinner     string                `json:"race_winner"`
	PolePosition   string                `json:"pole_position"`
	PoleTime       string                `json:"pole_time"`
	FastestLap     string                `json:"fastest_lap"`
	FastestLapTime string                `json:"fastest_lap_time"`
	PlotURL        template.URL          `json:"plot_url"`
	ErrorMessage   string                `json:"error_message,omitempty"`
	ErrorKind      string                `json:"error_kind,omitempty"`
	ActivePage     string                `json:"active_page"`
}

// DefaultEventName heads the last-race page until a race is loaded.
const DefaultEventName = "Last race"

// NewLastRacePage returns the last-race defaults.
func NewLastRacePage() LastRacePage {
	return LastRacePage{
		EventName:  DefaultEventName,
		Results:    []sessions.RaceResult{},
		ActivePage: ActiveLastRace,
	}
}
