// Package stats contains temporal aggregation and reporting over study sessions.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/sylla/internal/model"
)

// PctCap bounds the daily-goal percentage so tiny goals cannot blow up the display.
const PctCap = 999

// SumDurationForLocalDate sums the duration of records whose store-assigned
// creation time falls on the given calendar date in loc.
func SumDurationForLocalDate(records []model.SessionRecord, date time.Time, loc *time.Location) int {
	target := dateOf(date, loc)
	total := 0
	for _, rec := range records {
		if dateOf(rec.CreatedAt, loc) == target {
			total += rec.DurationSeconds
		}
	}
	return total
}

// DailyGoalProgress computes the rounded goal percentage (capped at PctCap)
// and whether the goal is met. A goal of zero or less means "no goal set"
// and yields (0, false).
func DailyGoalProgress(todaySeconds, goalMinutes int) (pct int, achieved bool) {
	if goalMinutes <= 0 {
		return 0, false
	}
	goalSeconds := goalMinutes * 60
	pct = int(math.Round(float64(todaySeconds) / float64(goalSeconds) * 100))
	if pct > PctCap {
		pct = PctCap
	}
	return pct, todaySeconds >= goalSeconds
}

// localDate identifies a calendar day independent of time of day.
type localDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time, loc *time.Location) localDate {
	local := t.In(loc)
	return localDate{year: local.Year(), month: local.Month(), day: local.Day()}
}

func (d localDate) before(o localDate) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

func (d localDate) prev(loc *time.Location) localDate {
	t := time.Date(d.year, d.month, d.day, 12, 0, 0, 0, loc).AddDate(0, 0, -1)
	return localDate{year: t.Year(), month: t.Month(), day: t.Day()}
}
