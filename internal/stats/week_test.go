package stats

import (
	"testing"
	"time"
)

func TestISOWeekWindowContainsToday(t *testing.T) {
	loc := time.UTC
	// One date per weekday.
	for day := 23; day <= 29; day++ {
		today := time.Date(2026, 2, day, 15, 30, 0, 0, loc)
		w := ISOWeekWindow(0, today)
		if !w.Contains(today, loc) {
			t.Fatalf("window %v..%v must contain %v", w.Start, w.End, today)
		}
		if w.Start.Weekday() != time.Monday {
			t.Fatalf("expected Monday start, got %v", w.Start.Weekday())
		}
		if got := w.End.Sub(w.Start); got != 6*24*time.Hour {
			t.Fatalf("expected 6 day span, got %v", got)
		}
	}
}

func TestISOWeekWindowNumbering(t *testing.T) {
	loc := time.UTC
	// Feb 23 2026 is a Monday in ISO week 9.
	w := ISOWeekWindow(0, time.Date(2026, 2, 23, 10, 0, 0, 0, loc))
	if w.ISOYear != 2026 || w.ISOWeek != 9 {
		t.Fatalf("expected 2026-W09, got %d-W%02d", w.ISOYear, w.ISOWeek)
	}
	if !w.Start.Equal(time.Date(2026, 2, 23, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start %v", w.Start)
	}
	if !w.End.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected end %v", w.End)
	}
}

func TestISOWeekWindowYearBoundary(t *testing.T) {
	loc := time.UTC
	// Jan 1 2027 is a Friday inside 2026's week 53.
	w := ISOWeekWindow(0, time.Date(2027, 1, 1, 9, 0, 0, 0, loc))
	if w.ISOYear != 2026 || w.ISOWeek != 53 {
		t.Fatalf("expected 2026-W53, got %d-W%02d", w.ISOYear, w.ISOWeek)
	}
	if !w.Start.Equal(time.Date(2026, 12, 28, 0, 0, 0, 0, loc)) {
		t.Fatalf("unexpected start %v", w.Start)
	}
}

func TestISOWeekWindowOffsets(t *testing.T) {
	loc := time.UTC
	today := time.Date(2026, 2, 25, 12, 0, 0, 0, loc)
	current := ISOWeekWindow(0, today)
	last := ISOWeekWindow(-1, today)
	if !last.Start.Equal(current.Start.AddDate(0, 0, -7)) {
		t.Fatalf("expected last week start %v, got %v", current.Start.AddDate(0, 0, -7), last.Start)
	}
	fourBack := ISOWeekWindow(-4, today)
	if !fourBack.Start.Equal(current.Start.AddDate(0, 0, -28)) {
		t.Fatalf("expected start 4 weeks back, got %v", fourBack.Start)
	}
}

func TestWeekLabel(t *testing.T) {
	loc := time.UTC
	today := time.Date(2026, 2, 25, 12, 0, 0, 0, loc)
	if got := WeekLabel(0, ISOWeekWindow(0, today)); got != "This Week" {
		t.Fatalf("expected This Week, got %q", got)
	}
	if got := WeekLabel(-1, ISOWeekWindow(-1, today)); got != "Last Week" {
		t.Fatalf("expected Last Week, got %q", got)
	}
	if got := WeekLabel(-2, ISOWeekWindow(-2, today)); got != "9 Feb – 15 Feb 2026" {
		t.Fatalf("unexpected label %q", got)
	}
}
