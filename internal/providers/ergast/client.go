package ergast

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/events"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/transport"
)

// Config controls how the Ergast client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient transport.Doer
	MaxPages   int
}

// Client fetches schedules, standings and session results from an
// Ergast-compatible API and maps them to domain rows.
type Client struct {
	baseURL    string
	httpClient transport.Doer
	maxPages   int
}

// NewClient constructs an Ergast client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		maxPages:   resolveMaxPages(cfg.MaxPages),
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchSchedule returns every round of the season. An unknown season yields an empty slice.
func (c *Client) FetchSchedule(ctx context.Context, season int) ([]events.Event, error) {
	const op = "ergast schedule"
	var payload envelope
	if err := c.getJSON(ctx, op, fmt.Sprintf("/%d.json", season), nil, &payload); err != nil {
		return nil, err
	}
	if payload.MRData.RaceTable == nil {
		return nil, providers.Malformed(op, fmt.Errorf("missing RaceTable"))
	}

	out := make([]events.Event, 0, len(payload.MRData.RaceTable.Races))
	for _, r := range payload.MRData.RaceTable.Races {
		ev, err := mapEvent(r)
		if err != nil {
			return nil, providers.Malformed(op, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func (c *Client) FetchDriverStandings(ctx context.Context, season int) ([]standings.DriverRow, error) {
	const op = "ergast driver standings"
	list, err := c.standings(ctx, op, fmt.Sprintf("/%d/driverStandings.json", season))
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []standings.DriverRow{}, nil
	}
	return mapDriverRows(list.DriverStandings), nil
}

func (c *Client) FetchConstructorStandings(ctx context.Context, season int) ([]standings.ConstructorRow, error) {
	const op = "ergast constructor standings"
	list, err := c.standings(ctx, op, fmt.Sprintf("/%d/constructorStandings.json", season))
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []standings.ConstructorRow{}, nil
	}
	return mapConstructorRows(list.ConstructorStandings), nil
}

// standings returns the latest standings list, or nil before the season starts.
func (c *Client) standings(ctx context.Context, op, path string) (*standingsList, error) {
	var payload envelope
	if err := c.getJSON(ctx, op, path, nil, &payload); err != nil {
		return nil, err
	}
	table := payload.MRData.StandingsTable
	if table == nil {
		return nil, providers.Malformed(op, fmt.Errorf("missing StandingsTable"))
	}
	if len(table.StandingsLists) == 0 {
		return nil, nil
	}
	return &table.StandingsLists[len(table.StandingsLists)-1], nil
}

// LoadSession loads the race or qualifying classification of a round.
// Laps are only available for races.
func (c *Client) LoadSession(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	switch key.Kind {
	case sessions.KindRace:
		return c.loadRace(ctx, key, opts)
	case sessions.KindQualifying:
		return c.loadQualifying(ctx, key)
	default:
		return nil, providers.NoData("ergast session "+key.String(), fmt.Errorf("session kind %q not available", key.Kind))
	}
}

func (c *Client) loadRace(ctx context.Context, key sessions.Key, opts sessions.LoadOptions) (*sessions.Session, error) {
	op := "ergast results " + key.String()
	r, err := c.singleRace(ctx, op, fmt.Sprintf("/%d/%d/results.json", key.Season, key.Round), nil)
	if providers.IsKind(err, providers.KindNoData) {
		// Classification not published yet.
		return &sessions.Session{Key: key, Results: []sessions.ResultRow{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(r.Results) == 0 {
		return &sessions.Session{Key: key, Results: []sessions.ResultRow{}}, nil
	}
	rows, err := mapRaceResults(r.Results)
	if err != nil {
		return nil, providers.Malformed(op, err)
	}

	sess := &sessions.Session{Key: key, Results: rows}
	if !opts.Laps {
		return sess, nil
	}

	laps, err := c.fetchLaps(ctx, key, driverNumbers(r.Results))
	if err != nil {
		return nil, err
	}
	if len(laps) == 0 {
		laps = fastestLapsFromResults(r.Results)
	}
	sess.Laps = laps
	return sess, nil
}

func (c *Client) loadQualifying(ctx context.Context, key sessions.Key) (*sessions.Session, error) {
	op := "ergast qualifying " + key.String()
	r, err := c.singleRace(ctx, op, fmt.Sprintf("/%d/%d/qualifying.json", key.Season, key.Round), nil)
	if err != nil {
		return nil, err
	}
	if len(r.QualifyingResults) == 0 {
		return nil, providers.NoData(op, fmt.Errorf("no qualifying results for %s", key))
	}
	rows, err := mapQualifying(r.QualifyingResults)
	if err != nil {
		return nil, providers.Malformed(op, err)
	}
	return &sessions.Session{Key: key, Results: rows}, nil
}

// fetchLaps walks the paginated lap timing feed up to maxPages pages.
func (c *Client) fetchLaps(ctx context.Context, key sessions.Key, numbers map[string]string) ([]sessions.Lap, error) {
	op := "ergast laps " + key.String()
	path := fmt.Sprintf("/%d/%d/laps.json", key.Season, key.Round)

	var all []sessions.Lap
	offset := 0
	for page := 1; page <= c.maxPages; page++ {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(defaultPageLimit))
		q.Set("offset", strconv.Itoa(offset))

		var payload envelope
		if err := c.getJSON(ctx, op, path, q, &payload); err != nil {
			return nil, err
		}
		var raw []lap
		if t := payload.MRData.RaceTable; t != nil && len(t.Races) > 0 {
			raw = t.Races[0].Laps
		}
		laps, err := mapLaps(raw, numbers)
		if err != nil {
			return nil, providers.Malformed(op, err)
		}
		all = append(all, laps...)

		total, err := strconv.Atoi(payload.MRData.Total)
		if err != nil {
			if len(laps) < defaultPageLimit {
				break
			}
		} else if offset+defaultPageLimit >= total {
			break
		}
		if len(laps) == 0 {
			break
		}
		offset += defaultPageLimit
	}
	return all, nil
}

func (c *Client) singleRace(ctx context.Context, op, path string, query url.Values) (race, error) {
	var payload envelope
	if err := c.getJSON(ctx, op, path, query, &payload); err != nil {
		return race{}, err
	}
	t := payload.MRData.RaceTable
	if t == nil {
		return race{}, providers.Malformed(op, fmt.Errorf("missing RaceTable"))
	}
	if len(t.Races) == 0 {
		return race{}, providers.NoData(op, fmt.Errorf("no race found"))
	}
	return t.Races[0], nil
}
