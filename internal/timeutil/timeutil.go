package timeutil

import (
	"strings"
	"time"
)

const (
	// DateLayout is the canonical calendar date format (YYYY-MM-DD).
	DateLayout = "2006-01-02"
	// DisplayLayout renders race start times on the dashboard.
	DisplayLayout = "02 January 2006 15:04 UTC"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseEventTime combines a calendar date and an optional start time into a
// UTC timestamp. Clocks without an offset are UTC; an empty clock is midnight.
func ParseEventTime(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if clock == "" {
		d, err := ParseDate(date)
		if err != nil {
			return time.Time{}, err
		}
		return d.UTC(), nil
	}
	if !strings.HasSuffix(clock, "Z") && !strings.ContainsAny(clock, "+-") {
		clock += "Z"
	}
	return ParseTimestamp(date + "T" + clock)
}

// ParseTimestamp parses an RFC 3339 timestamp, fractional seconds included,
// and normalizes it to UTC.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDisplay renders t in UTC with DisplayLayout.
func FormatDisplay(t time.Time) string {
	return t.UTC().Format(DisplayLayout)
}
