package sessions

import (
	"fmt"
	"time"
)

// Kind identifies a session within an event weekend.
type Kind string

const (
	KindRace       Kind = "R"
	KindQualifying Kind = "Q"
)

// String returns the human name of the session kind.
func (k Kind) String() string {
	switch k {
	case KindRace:
		return "Race"
	case KindQualifying:
		return "Qualifying"
	default:
		return string(k)
	}
}

// Key addresses a single session.
type Key struct {
	Season int
	Round  int
	Kind   Kind
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d/%s", k.Season, k.Round, k.Kind)
}

// LoadOptions mirrors which optional datasets a provider should load.
type LoadOptions struct {
	Laps bool
}

// ResultRow is one classified entry of a session as delivered by a provider.
// Nil durations mean the provider had no value (lapped car, no Q3 run, ...).
type ResultRow struct {
	Position     string
	DriverNumber string
	Abbreviation string
	FullName     string
	TeamName     string
	Time         *time.Duration
	Status       string
	Points       string
	Laps         string
	Q1           *time.Duration
	Q2           *time.Duration
	Q3           *time.Duration
}

// Lap is a single timed lap.
type Lap struct {
	DriverNumber string
	LapNumber    int
	LapTime      *time.Duration
}

// Session is a loaded session with its results and, optionally, laps.
type Session struct {
	Key     Key
	Results []ResultRow
	Laps    []Lap
}

// Driver looks up a classified driver by car number.
func (s *Session) Driver(number string) (ResultRow, bool) {
	if s == nil {
		return ResultRow{}, false
	}
	for _, r := range s.Results {
		if r.DriverNumber == number {
			return r, true
		}
	}
	return ResultRow{}, false
}

// PickFastest returns the lap with the lowest lap time. Ties go to the
// earlier lap, then to the driver classified higher.
func (s *Session) PickFastest() (Lap, bool) {
	if s == nil {
		return Lap{}, false
	}
	order := make(map[string]int, len(s.Results))
	for i, r := range s.Results {
		order[r.DriverNumber] = i
	}

	var (
		best  Lap
		found bool
	)
	for _, lap := range s.Laps {
		if lap.LapTime == nil {
			continue
		}
		if !found || faster(lap, best, order) {
			best = lap
			found = true
		}
	}
	return best, found
}

// FastestLapOf returns the quickest timed lap of a single driver.
func (s *Session) FastestLapOf(number string) (Lap, bool) {
	if s == nil {
		return Lap{}, false
	}
	var (
		best  Lap
		found bool
	)
	for _, lap := range s.Laps {
		if lap.DriverNumber != number || lap.LapTime == nil {
			continue
		}
		if !found || *lap.LapTime < *best.LapTime || (*lap.LapTime == *best.LapTime && lap.LapNumber < best.LapNumber) {
			best = lap
			found = true
		}
	}
	return best, found
}

func faster(a, b Lap, order map[string]int) bool {
	if *a.LapTime != *b.LapTime {
		return *a.LapTime < *b.LapTime
	}
	if a.LapNumber != b.LapNumber {
		return a.LapNumber < b.LapNumber
	}
	return rank(order, a.DriverNumber) < rank(order, b.DriverNumber)
}

func rank(order map[string]int, number string) int {
	if i, ok := order[number]; ok {
		return i
	}
	return len(order)
}

// RaceResult is a display-ready race classification row.
type RaceResult struct {
	Position     int    `json:"Position"`
	DriverNumber string `json:"DriverNumber"`
	Driver       string `json:"Driver"`
	Team         string `json:"Team"`
	Time         string `json:"Time"`
	Status       string `json:"Status"`
	Points       int    `json:"Points"`
	Laps         int    `json:"Laps"`
}
