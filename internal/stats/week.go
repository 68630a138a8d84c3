package stats

import (
	"fmt"
	"time"
)

// Window is an ISO week: Monday start, Sunday end, both at midnight in the
// reference location.
type Window struct {
	Start   time.Time
	End     time.Time
	ISOYear int
	ISOWeek int
}

// Contains reports whether t falls on a calendar day inside the window.
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	d := dateOf(t, loc)
	return !d.before(dateOf(w.Start, loc)) && !dateOf(w.End, loc).before(d)
}

// ISOWeekWindow returns the ISO week offset by offsetWeeks from the week
// containing today. Offset 0 is the current week; negative offsets go back.
// Weeks start on Monday and are numbered per ISO 8601 (week 1 holds the
// year's first Thursday).
func ISOWeekWindow(offsetWeeks int, today time.Time) Window {
	loc := today.Location()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	weekday := int(midnight.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := midnight.AddDate(0, 0, -(weekday-1)+offsetWeeks*7)
	end := start.AddDate(0, 0, 6)
	isoYear, isoWeek := start.ISOWeek()
	return Window{Start: start, End: end, ISOYear: isoYear, ISOWeek: isoWeek}
}

// WeekLabel renders a window for display: "This Week", "Last Week", or a
// date range such as "16 Feb – 22 Feb 2026".
func WeekLabel(offsetWeeks int, w Window) string {
	switch offsetWeeks {
	case 0:
		return "This Week"
	case -1:
		return "Last Week"
	}
	return fmt.Sprintf("%s – %s", w.Start.Format("2 Jan"), w.End.Format("2 Jan 2006"))
}
