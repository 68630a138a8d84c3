package stats

import (
	"fmt"
	"time"
)

// FormatClock renders whole seconds as HH:MM:SS, e.g. 3723 -> "01:02:03".
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := totalSeconds % 3600 / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMinutes renders whole seconds as a compact minutes/hours label,
// e.g. 5400 -> "1h 30m", 900 -> "15m".
func FormatMinutes(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := totalSeconds % 3600 / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatRelativeDate renders a timestamp relative to now in loc:
// "Today, 2:35 PM", "Yesterday, 10:00 AM", or "22 Feb 2026".
func FormatRelativeDate(t, now time.Time, loc *time.Location) string {
	d := dateOf(t, loc)
	today := dateOf(now, loc)
	switch d {
	case today:
		return "Today, " + t.In(loc).Format("3:04 PM")
	case today.prev(loc):
		return "Yesterday, " + t.In(loc).Format("3:04 PM")
	}
	return t.In(loc).Format("2 Jan 2006")
}
