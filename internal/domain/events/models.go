package events

import "time"

// Event is one round of the championship as listed in the season schedule.
type Event struct {
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Country  string    `json:"country"`
	Round    int       `json:"round"`
	Date     time.Time `json:"date"`
}

// NextRace is the homepage card describing the upcoming event.
// RaceDateISO is nil for the season-ended sentinel.
type NextRace struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Country     string  `json:"country,omitempty"`
	RaceDateStr string  `json:"race_date_str,omitempty"`
	RaceDateISO *string `json:"race_date_iso"`
}

// HasDate reports whether the card points at a real upcoming event.
func (n NextRace) HasDate() bool {
	return n.RaceDateISO != nil
}

const (
	SeasonEndedName     = "Season ended"
	SeasonEndedLocation = "No race :("
)

// SeasonEnded is shown when no future events remain in the schedule.
func SeasonEnded() NextRace {
	return NextRace{
		Name:     SeasonEndedName,
		Location: SeasonEndedLocation,
	}
}
