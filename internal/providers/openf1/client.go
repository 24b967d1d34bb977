package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/f1-dashboard/internal/domain/sessions"
	"github.com/preston-bernstein/f1-dashboard/internal/domain/telemetry"
	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/transport"
	"github.com/preston-bernstein/f1-dashboard/internal/timeutil"
)

// Config controls how the OpenF1 client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient transport.Doer
}

// Client fetches car telemetry from OpenF1.
type Client struct {
	baseURL    string
	httpClient transport.Doer
}

// NewClient constructs an OpenF1 client with the provided configuration.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: client,
	}
}

// FetchLapTelemetry returns the speed trace of one lap with distance
// integrated from speed over time, starting at zero.
func (c *Client) FetchLapTelemetry(ctx context.Context, key sessions.Key, driverNumber string, lapNumber int) ([]telemetry.Sample, error) {
	op := fmt.Sprintf("openf1 telemetry %s driver %s lap %d", key, driverNumber, lapNumber)

	sessionKey, err := c.resolveSession(ctx, op, key)
	if err != nil {
		return nil, err
	}

	start, end, err := c.lapWindow(ctx, op, sessionKey, driverNumber, lapNumber)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("session_key=%d&driver_number=%s&date>=%s&date<=%s",
		sessionKey,
		url.QueryEscape(driverNumber),
		url.QueryEscape(start.Format(time.RFC3339Nano)),
		url.QueryEscape(end.Format(time.RFC3339Nano)),
	)
	var raw []carDataResponse
	if err := c.getJSON(ctx, op, "/car_data", query, &raw); err != nil {
		return nil, err
	}

	samples, err := integrateDistance(raw)
	if err != nil {
		return nil, providers.Malformed(op, err)
	}
	return samples, nil
}

// resolveSession maps season/round/kind to an OpenF1 session key. Rounds are
// the 1-based order of the season's sessions of that name by start date.
func (c *Client) resolveSession(ctx context.Context, op string, key sessions.Key) (int, error) {
	name, ok := sessionNames[key.Kind]
	if !ok {
		return 0, providers.NoData(op, fmt.Errorf("session kind %q not available", key.Kind))
	}
	q := url.Values{}
	q.Set("year", strconv.Itoa(key.Season))
	q.Set("session_name", name)

	var list []sessionResponse
	if err := c.getJSON(ctx, op, "/sessions", q.Encode(), &list); err != nil {
		return 0, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DateStart < list[j].DateStart
	})
	if key.Round < 1 || key.Round > len(list) {
		return 0, providers.NoData(op, fmt.Errorf("no %s session for round %d", name, key.Round))
	}
	return list[key.Round-1].SessionKey, nil
}

func (c *Client) lapWindow(ctx context.Context, op string, sessionKey int, driverNumber string, lapNumber int) (time.Time, time.Time, error) {
	q := url.Values{}
	q.Set("session_key", strconv.Itoa(sessionKey))
	q.Set("driver_number", driverNumber)
	q.Set("lap_number", strconv.Itoa(lapNumber))

	var laps []lapResponse
	if err := c.getJSON(ctx, op, "/laps", q.Encode(), &laps); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(laps) == 0 || laps[0].DateStart == nil || laps[0].LapDuration == nil {
		return time.Time{}, time.Time{}, providers.NoData(op, fmt.Errorf("lap %d has no timing", lapNumber))
	}
	start, err := timeutil.ParseTimestamp(*laps[0].DateStart)
	if err != nil {
		return time.Time{}, time.Time{}, providers.Malformed(op, err)
	}
	end := start.Add(time.Duration(*laps[0].LapDuration * float64(time.Second)))
	return start.UTC(), end.UTC(), nil
}

var sessionNames = map[sessions.Kind]string{
	sessions.KindRace:       "Race",
	sessions.KindQualifying: "Qualifying",
}

func (c *Client) getJSON(ctx context.Context, op, path, rawQuery string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return providers.Fetch(op, err)
	}
	req.URL.RawQuery = rawQuery
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.Fetch(op, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return providers.NoData(op, fmt.Errorf("%s: not found", path))
	}
	if resp.StatusCode != http.StatusOK {
		return providers.Fetch(op, transport.StatusError(providerName, resp))
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return providers.Malformed(op, err)
	}
	return nil
}

// integrateDistance orders samples by time and accumulates distance with the
// trapezoidal rule. Speeds are km/h; distance is meters.
func integrateDistance(raw []carDataResponse) ([]telemetry.Sample, error) {
	type point struct {
		at    time.Time
		speed float64
	}
	points := make([]point, 0, len(raw))
	for _, r := range raw {
		at, err := timeutil.ParseTimestamp(r.Date)
		if err != nil {
			return nil, fmt.Errorf("sample date %q: %w", r.Date, err)
		}
		points = append(points, point{at: at, speed: r.Speed})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	out := make([]telemetry.Sample, 0, len(points))
	distance := 0.0
	for i, p := range points {
		if i > 0 {
			prev := points[i-1]
			dt := p.at.Sub(prev.at).Seconds()
			distance += (prev.speed + p.speed) / 2 / 3.6 * dt
		}
		out = append(out, telemetry.Sample{Distance: distance, Speed: p.speed})
	}
	return out, nil
}
