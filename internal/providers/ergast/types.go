package ergast

// Ergast wraps every payload in MRData; numeric fields arrive as strings.
type envelope struct {
	MRData mrData `json:"MRData"`
}

type mrData struct {
	Limit          string          `json:"limit"`
	Offset         string          `json:"offset"`
	Total          string          `json:"total"`
	RaceTable      *raceTable      `json:"RaceTable,omitempty"`
	StandingsTable *standingsTable `json:"StandingsTable,omitempty"`
}

type raceTable struct {
	Season string `json:"season"`
	Round  string `json:"round"`
	Races  []race `json:"Races"`
}

type race struct {
	Season            string             `json:"season"`
	Round             string             `json:"round"`
	RaceName          string             `json:"raceName"`
	Circuit           circuit            `json:"Circuit"`
	Date              string             `json:"date"`
	Time              string             `json:"time"`
	Results           []raceResult       `json:"Results"`
	QualifyingResults []qualifyingResult `json:"QualifyingResults"`
	Laps              []lap              `json:"Laps"`
}

type circuit struct {
	CircuitID   string   `json:"circuitId"`
	CircuitName string   `json:"circuitName"`
	Location    location `json:"Location"`
}

type location struct {
	Locality string `json:"locality"`
	Country  string `json:"country"`
}

type driver struct {
	DriverID        string `json:"driverId"`
	PermanentNumber string `json:"permanentNumber"`
	Code            string `json:"code"`
	GivenName       string `json:"givenName"`
	FamilyName      string `json:"familyName"`
}

type constructor struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
}

type raceResult struct {
	Number      string      `json:"number"`
	Position    string      `json:"position"`
	Points      string      `json:"points"`
	Driver      driver      `json:"Driver"`
	Constructor constructor `json:"Constructor"`
	Laps        string      `json:"laps"`
	Status      string      `json:"status"`
	Time        *raceTime   `json:"Time,omitempty"`
	FastestLap  *fastestLap `json:"FastestLap,omitempty"`
}

type raceTime struct {
	Millis string `json:"millis"`
	Time   string `json:"time"`
}

type fastestLap struct {
	Rank string    `json:"rank"`
	Lap  string    `json:"lap"`
	Time *raceTime `json:"Time,omitempty"`
}

type qualifyingResult struct {
	Number      string      `json:"number"`
	Position    string      `json:"position"`
	Driver      driver      `json:"Driver"`
	Constructor constructor `json:"Constructor"`
	Q1          string      `json:"Q1"`
	Q2          string      `json:"Q2"`
	Q3          string      `json:"Q3"`
}

type lap struct {
	Number  string   `json:"number"`
	Timings []timing `json:"Timings"`
}

type timing struct {
	DriverID string `json:"driverId"`
	Position string `json:"position"`
	Time     string `json:"time"`
}

type standingsTable struct {
	Season         string          `json:"season"`
	StandingsLists []standingsList `json:"StandingsLists"`
}

type standingsList struct {
	Season               string                `json:"season"`
	Round                string                `json:"round"`
	DriverStandings      []driverStanding      `json:"DriverStandings"`
	ConstructorStandings []constructorStanding `json:"ConstructorStandings"`
}

type driverStanding struct {
	Position     string        `json:"position"`
	PositionText string        `json:"positionText"`
	Points       string        `json:"points"`
	Wins         string        `json:"wins"`
	Driver       driver        `json:"Driver"`
	Constructors []constructor `json:"Constructors"`
}

type constructorStanding struct {
	Position     string      `json:"position"`
	PositionText string      `json:"positionText"`
	Points       string      `json:"points"`
	Wins         string      `json:"wins"`
	Constructor  constructor `json:"Constructor"`
}
