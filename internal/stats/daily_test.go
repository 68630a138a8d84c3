package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/sylla/internal/model"
)

func record(createdAt time.Time, durationSeconds int, subjectID *int64) model.SessionRecord {
	return model.SessionRecord{
		SubjectID:       subjectID,
		StartTime:       createdAt.Add(-time.Duration(durationSeconds) * time.Second),
		EndTime:         createdAt,
		DurationSeconds: durationSeconds,
		CreatedAt:       createdAt,
	}
}

func id(v int64) *int64 {
	return &v
}

func TestSumDurationForLocalDate(t *testing.T) {
	loc := time.UTC
	today := time.Date(2026, 2, 23, 11, 0, 0, 0, loc)
	records := []model.SessionRecord{
		record(time.Date(2026, 2, 23, 9, 0, 0, 0, loc), 600, nil),
		record(time.Date(2026, 2, 22, 20, 0, 0, 0, loc), 300, nil),
	}
	if got := SumDurationForLocalDate(records, today, loc); got != 600 {
		t.Fatalf("expected 600 seconds today, got %d", got)
	}
	yesterday := today.AddDate(0, 0, -1)
	if got := SumDurationForLocalDate(records, yesterday, loc); got != 300 {
		t.Fatalf("expected 300 seconds yesterday, got %d", got)
	}
}

func TestSumDurationRespectsTimeZone(t *testing.T) {
	// 23:30 UTC on Feb 22 is already Feb 23 in UTC+3.
	rec := record(time.Date(2026, 2, 22, 23, 30, 0, 0, time.UTC), 900, nil)
	records := []model.SessionRecord{rec}

	east := time.FixedZone("UTC+3", 3*60*60)
	feb23 := time.Date(2026, 2, 23, 12, 0, 0, 0, east)
	if got := SumDurationForLocalDate(records, feb23, east); got != 900 {
		t.Fatalf("expected session bucketed to Feb 23 in UTC+3, got %d", got)
	}
	if got := SumDurationForLocalDate(records, feb23, time.UTC); got != 0 {
		t.Fatalf("expected no session on Feb 23 in UTC, got %d", got)
	}
}

func TestSumDurationEmptyRecords(t *testing.T) {
	if got := SumDurationForLocalDate(nil, time.Now(), time.UTC); got != 0 {
		t.Fatalf("expected 0 for no records, got %d", got)
	}
}

func TestDailyGoalProgress(t *testing.T) {
	cases := []struct {
		name         string
		todaySeconds int
		goalMinutes  int
		wantPct      int
		wantAchieved bool
	}{
		{"exactly met", 1800, 30, 100, true},
		{"halfway", 900, 30, 50, false},
		{"overachieved", 3600, 30, 200, true},
		{"tiny goal capped", 36000, 1, PctCap, true},
		{"goal unset", 1800, 0, 0, false},
		{"negative goal unset", 1800, -5, 0, false},
		{"nothing studied", 0, 30, 0, false},
	}
	for _, tc := range cases {
		pct, achieved := DailyGoalProgress(tc.todaySeconds, tc.goalMinutes)
		if pct != tc.wantPct || achieved != tc.wantAchieved {
			t.Fatalf("%s: got (%d, %v), want (%d, %v)", tc.name, pct, achieved, tc.wantPct, tc.wantAchieved)
		}
	}
}
