package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/sylla/internal/model"
)

// WeeklyReport summarizes one ISO week of study.
type WeeklyReport struct {
	Window               Window
	TotalDurationSeconds int
	SessionCount         int
	UniqueSubjectsCount  int
	DaysStudied          int
	TopicsMasteredCount  int
}

// BuildWeeklyReport aggregates records falling inside w. The mastered count
// is the cumulative total over topics, not a per-week delta.
func BuildWeeklyReport(records []model.SessionRecord, topics []model.Topic, w Window, loc *time.Location) WeeklyReport {
	rep := WeeklyReport{Window: w}
	subjects := map[int64]struct{}{}
	days := map[localDate]struct{}{}
	for _, rec := range records {
		if !w.Contains(rec.CreatedAt, loc) {
			continue
		}
		rep.SessionCount++
		rep.TotalDurationSeconds += rec.DurationSeconds
		days[dateOf(rec.CreatedAt, loc)] = struct{}{}
		if rec.SubjectID != nil {
			subjects[*rec.SubjectID] = struct{}{}
		}
	}
	rep.UniqueSubjectsCount = len(subjects)
	rep.DaysStudied = len(days)
	for _, topic := range topics {
		if topic.Status == model.TopicMastered {
			rep.TopicsMasteredCount++
		}
	}
	return rep
}

// SubjectSlice is one subject's share of a week's study time.
type SubjectSlice struct {
	SubjectID int64
	Name      string
	Color     string
	Seconds   int
}

// SubjectBreakdown sums each subject's study time inside w, dropping
// subjects without sessions. Results are ordered by time descending, then
// by name for stable output.
func SubjectBreakdown(records []model.SessionRecord, subjects []model.Subject, w Window, loc *time.Location) []SubjectSlice {
	seconds := map[int64]int{}
	for _, rec := range records {
		if rec.SubjectID == nil || !w.Contains(rec.CreatedAt, loc) {
			continue
		}
		seconds[*rec.SubjectID] += rec.DurationSeconds
	}

	slices := make([]SubjectSlice, 0, len(seconds))
	for _, subject := range subjects {
		secs := seconds[subject.ID]
		if secs <= 0 {
			continue
		}
		slices = append(slices, SubjectSlice{
			SubjectID: subject.ID,
			Name:      subject.Name,
			Color:     subject.Color,
			Seconds:   secs,
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Seconds == slices[j].Seconds {
			return slices[i].Name < slices[j].Name
		}
		return slices[i].Seconds > slices[j].Seconds
	})
	return slices
}

// DailySeries returns per-day studied seconds for the `days` most recent
// calendar days ending at today, oldest first. Used for sparkline trends.
func DailySeries(records []model.SessionRecord, days int, today time.Time, loc *time.Location) []float64 {
	if days <= 0 {
		return nil
	}
	totals := map[localDate]int{}
	for _, rec := range records {
		totals[dateOf(rec.CreatedAt, loc)] += rec.DurationSeconds
	}
	out := make([]float64, days)
	d := dateOf(today, loc)
	for i := days - 1; i >= 0; i-- {
		out[i] = float64(totals[d])
		d = d.prev(loc)
	}
	return out
}
