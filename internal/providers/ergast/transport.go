package ergast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/f1-dashboard/internal/providers"
	"github.com/preston-bernstein/f1-dashboard/internal/providers/transport"
)

func resolveHTTPClient(client transport.Doer) transport.Doer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveMaxPages(max int) int {
	if max <= 0 {
		return defaultMaxPages
	}
	return max
}

// getJSON fetches base+path and decodes the MRData envelope into dest.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dest *envelope) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return providers.Fetch(op, err)
	}
	if query == nil {
		query = url.Values{}
	}
	if query.Get("limit") == "" {
		query.Set("limit", strconv.Itoa(defaultPageLimit))
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.Fetch(op, err)
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

// Unpublished reports whether body is a race table with no races, the shape
// Ergast serves for rounds whose classification is not out yet.
func Unpublished(body []byte) bool {
	var payload envelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	t := payload.MRData.RaceTable
	return t != nil && len(t.Races) == 0
}
