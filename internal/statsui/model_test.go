package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sylla/internal/model"
	"github.com/verte-zerg/sylla/internal/store"
)

func newTestModel(t *testing.T, offset int) (*Model, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "sylla.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return NewModel(s, time.UTC, offset), s
}

func sendKey(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestWeekNavigationStopsAtCurrentWeek(t *testing.T) {
	m, _ := newTestModel(t, 0)

	if m.canGoNext() {
		t.Fatal("should not navigate past the current week")
	}
	sendKey(m, "l")
	if m.offset != 0 {
		t.Errorf("expected offset to stay at 0, got %d", m.offset)
	}

	sendKey(m, "h")
	if m.offset != -1 {
		t.Errorf("expected offset -1 after going back, got %d", m.offset)
	}
	if !m.canGoNext() {
		t.Error("expected forward navigation to be available")
	}
	sendKey(m, "l")
	if m.offset != 0 {
		t.Errorf("expected offset back at 0, got %d", m.offset)
	}
}

func TestNewModelClampsFutureOffset(t *testing.T) {
	m, _ := newTestModel(t, 3)
	if m.offset != 0 {
		t.Errorf("expected future offset clamped to 0, got %d", m.offset)
	}
}

func TestHeaderShowsWeekLabel(t *testing.T) {
	m, _ := newTestModel(t, 0)
	m.now = func() time.Time { return time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC) }
	m.width = 80
	m.height = 24

	header := m.renderHeader()
	if !strings.Contains(header, "This Week") {
		t.Errorf("expected current week label, got %q", header)
	}
	if !strings.Contains(header, "W09 2026") {
		t.Errorf("expected ISO week number, got %q", header)
	}
}

func TestReportIncludesSavedSessions(t *testing.T) {
	m, s := newTestModel(t, 0)
	ctx := context.Background()

	subject, err := s.CreateSubject(ctx, "Math", "", "")
	if err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}
	if _, err := s.CreateSession(ctx, model.SessionInterval{ElapsedSeconds: 1800}, &subject.ID, nil, ""); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	m.loadData()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	if !strings.Contains(view, "30m") {
		t.Errorf("expected weekly total in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Math") {
		t.Errorf("expected subject breakdown in view, got:\n%s", view)
	}
}
