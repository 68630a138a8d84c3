package stats

import (
	"time"

	"github.com/verte-zerg/sylla/internal/model"
)

// ComputeStreak counts consecutive calendar days with at least one session,
// walking backward from today. A day without sessions so far today does not
// break yesterday's run: the streak then counts backward from yesterday.
// The streak is 0 when neither today nor yesterday has a session.
func ComputeStreak(records []model.SessionRecord, today time.Time, loc *time.Location) (streakDays int, studiedToday bool) {
	studied := make(map[localDate]struct{}, len(records))
	for _, rec := range records {
		studied[dateOf(rec.CreatedAt, loc)] = struct{}{}
	}

	check := dateOf(today, loc)
	_, studiedToday = studied[check]
	if !studiedToday {
		check = check.prev(loc)
	}
	for {
		if _, ok := studied[check]; !ok {
			break
		}
		streakDays++
		check = check.prev(loc)
	}
	return streakDays, studiedToday
}
