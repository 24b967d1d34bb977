package transform

import (
	"fmt"
	"time"
)

// Missing is rendered in place of an absent duration.
const Missing = "N/A"

// FormatDuration renders d as HH:MM:SS.mmm, or Missing when d is nil.
// Hours are not wrapped at 24 and sub-millisecond digits are truncated.
func FormatDuration(d *time.Duration) string {
	if d == nil {
		return Missing
	}
	return formatClock(*d)
}

func formatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, s, ms)
}

// FastestLapLabel renders "Lap <N> - <HH:MM:SS.mmm>".
func FastestLapLabel(lapNumber int, lapTime *time.Duration) string {
	return fmt.Sprintf("Lap %d - %s", lapNumber, FormatDuration(lapTime))
}

// BestQualifyingTime picks Q3, then Q2, then Q1 and formats the first one set.
func BestQualifyingTime(q1, q2, q3 *time.Duration) string {
	for _, d := range []*time.Duration{q3, q2, q1} {
		if d != nil {
			return FormatDuration(d)
		}
	}
	return Missing
}
