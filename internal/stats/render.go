package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/sylla/internal/model"
)

const sparkChars = " .:-=+*#%@"

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderOverview prints today's total, the streak, and daily goal progress.
func RenderOverview(w io.Writer, todaySeconds, goalMinutes, streakDays int, studiedToday bool) error {
	if _, err := fmt.Fprintln(w, "Overview"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Today: %s\n", FormatMinutes(todaySeconds)); err != nil {
		return err
	}
	streakNote := ""
	if streakDays > 0 && !studiedToday {
		streakNote = " (not studied yet today)"
	}
	if _, err := fmt.Fprintf(w, "Streak: %d day(s)%s\n", streakDays, streakNote); err != nil {
		return err
	}
	if goalMinutes > 0 {
		pct, achieved := DailyGoalProgress(todaySeconds, goalMinutes)
		mark := ""
		if achieved {
			mark = " ✓"
		}
		if _, err := fmt.Fprintf(w, "Daily goal: %d%% of %dm%s\n", pct, goalMinutes, mark); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Daily goal: not set"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderWeekly prints the weekly report summary.
func RenderWeekly(w io.Writer, label string, rep WeeklyReport) error {
	if _, err := fmt.Fprintf(w, "%s (%s – %s, week %d/%d)\n",
		label,
		rep.Window.Start.Format("2 Jan"),
		rep.Window.End.Format("2 Jan 2006"),
		rep.Window.ISOWeek,
		rep.Window.ISOYear,
	); err != nil {
		return err
	}
	rows := [][]string{
		{"Study time", FormatMinutes(rep.TotalDurationSeconds)},
		{"Sessions", fmt.Sprintf("%d", rep.SessionCount)},
		{"Subjects", fmt.Sprintf("%d", rep.UniqueSubjectsCount)},
		{"Days studied", fmt.Sprintf("%d", rep.DaysStudied)},
		{"Topics mastered", fmt.Sprintf("%d", rep.TopicsMasteredCount)},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderBreakdown prints per-subject study time with proportional bars
// sized to the available terminal width.
func RenderBreakdown(w io.Writer, slices []SubjectSlice, totalWidth int) error {
	if len(slices) == 0 {
		_, err := fmt.Fprintln(w, "No study time recorded for this week.")
		return err
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	maxSeconds := slices[0].Seconds
	for _, s := range slices[1:] {
		if s.Seconds > maxSeconds {
			maxSeconds = s.Seconds
		}
	}

	nameWidth := 0
	for _, s := range slices {
		if dw := displayWidth(s.Name); dw > nameWidth {
			nameWidth = dw
		}
	}
	barWidth := totalWidth - nameWidth - len("  ") - len("  99h 59m")
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	if _, err := fmt.Fprintln(w, "By Subject"); err != nil {
		return err
	}
	for _, s := range slices {
		filled := int(math.Round(float64(s.Seconds) / float64(maxSeconds) * float64(barWidth)))
		if filled < 1 {
			filled = 1
		}
		bar := strings.Repeat("#", filled)
		line := fmt.Sprintf("%s  %s  %s", padCell(s.Name, nameWidth, false), bar, FormatMinutes(s.Seconds))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSessions prints a session history table, newest first.
func RenderSessions(w io.Writer, records []model.SessionRecord, subjectNames map[int64]string, now time.Time, loc *time.Location) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	headers := []string{"When", "Subject", "Duration", "Notes"}
	rows := make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		subject := "—"
		if rec.SubjectID != nil {
			if name, ok := subjectNames[*rec.SubjectID]; ok {
				subject = name
			}
		}
		rows = append(rows, []string{
			FormatRelativeDate(rec.CreatedAt, now, loc),
			subject,
			FormatMinutes(rec.DurationSeconds),
			rec.Notes,
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
