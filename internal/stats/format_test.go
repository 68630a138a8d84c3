package stats

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3723, "01:02:03"},
		{36000, "10:00:00"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0m"},
		{900, "15m"},
		{5400, "1h 30m"},
		{3599, "59m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.seconds); got != tc.want {
			t.Fatalf("FormatMinutes(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatRelativeDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 2, 23, 18, 0, 0, 0, loc)

	today := time.Date(2026, 2, 23, 14, 35, 0, 0, loc)
	if got := FormatRelativeDate(today, now, loc); got != "Today, 2:35 PM" {
		t.Fatalf("unexpected today label %q", got)
	}
	yesterday := time.Date(2026, 2, 22, 10, 0, 0, 0, loc)
	if got := FormatRelativeDate(yesterday, now, loc); got != "Yesterday, 10:00 AM" {
		t.Fatalf("unexpected yesterday label %q", got)
	}
	older := time.Date(2026, 2, 10, 10, 0, 0, 0, loc)
	if got := FormatRelativeDate(older, now, loc); got != "10 Feb 2026" {
		t.Fatalf("unexpected older label %q", got)
	}
}

func TestFormatRelativeDateUsesLocation(t *testing.T) {
	east := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 2, 23, 12, 0, 0, 0, east)
	// 23:30 UTC on Feb 22 is 02:30 today in UTC+3.
	late := time.Date(2026, 2, 22, 23, 30, 0, 0, time.UTC)
	if got := FormatRelativeDate(late, now, east); got != "Today, 2:30 AM" {
		t.Fatalf("unexpected label %q", got)
	}
}
