// Package tui provides the Bubble Tea study timer interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sylla/internal/model"
	statsPkg "github.com/verte-zerg/sylla/internal/stats"
	"github.com/verte-zerg/sylla/internal/store"
	"github.com/verte-zerg/sylla/internal/timer"
)

// Config carries the settings the timer UI needs.
type Config struct {
	GoalMinutes int
	Location    *time.Location
	AccentColor string
}

// Model implements the Bubble Tea study timer UI.
type Model struct {
	config Config
	store  *store.Store
	timer  *timer.Timer

	subjects   []model.Subject
	subjectIdx int
	topics     []model.Topic
	topicIdx   int

	width  int
	height int

	// tickGen invalidates in-flight ticks after a pause or reset.
	tickGen int

	saving     bool
	pending    model.SessionInterval
	notesInput textinput.Model

	todaySeconds int
	streakDays   int
	studiedToday bool

	statusMsg string
	errMsg    string
}

var (
	clockStyle  = lipgloss.NewStyle().Bold(true)
	stateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a study timer model. The subject list may be empty.
func NewModel(cfg Config, st *store.Store, subjects []model.Subject) *Model {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.AccentColor != "" {
		accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.AccentColor))
	}
	input := textinput.New()
	input.Placeholder = "what did you work on?"
	input.CharLimit = 500
	m := &Model{
		config:     cfg,
		store:      st,
		timer:      timer.New(nil),
		subjects:   subjects,
		subjectIdx: -1,
		topicIdx:   -1,
		notesInput: input,
	}
	m.refreshFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

type tickMsg struct {
	gen int
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.gen != m.tickGen {
			// A stale tick from before a pause or reset.
			return m, nil
		}
		m.timer.Tick()
		return m, tickCmd(m.tickGen)
	case tea.KeyMsg:
		if m.saving {
			return m.updateSaving(msg)
		}
		return m.updateRunning(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateRunning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ":
		return m.toggleTimer()
	case "s":
		return m.beginSave()
	case "r":
		m.tickGen++
		m.timer.Reset()
		m.statusMsg = ""
		m.errMsg = ""
		return m, nil
	case "tab":
		m.cycleSubject()
		return m, nil
	case "t":
		m.cycleTopic()
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateSaving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.saveSession()
		return m, nil
	case tea.KeyEsc:
		// Back out of the save and keep the accumulated time.
		m.timer.Unfinalize()
		m.saving = false
		m.notesInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.notesInput, cmd = m.notesInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) toggleTimer() (tea.Model, tea.Cmd) {
	switch m.timer.State() {
	case timer.StateRunning:
		m.tickGen++
		m.timer.Pause()
		return m, nil
	default:
		m.timer.Start()
		if m.timer.State() == timer.StateRunning {
			m.statusMsg = ""
			m.errMsg = ""
			return m, tickCmd(m.tickGen)
		}
		return m, nil
	}
}

func (m *Model) beginSave() (tea.Model, tea.Cmd) {
	interval, ok := m.timer.Finalize()
	if !ok {
		m.errMsg = "nothing to save yet"
		return m, nil
	}
	m.tickGen++
	m.pending = interval
	m.saving = true
	m.errMsg = ""
	m.notesInput.SetValue("")
	return m, m.notesInput.Focus()
}

func (m *Model) saveSession() {
	ctx := context.Background()
	record, err := m.store.CreateSession(ctx, m.pending, m.selectedSubjectID(), m.selectedTopicID(), m.notesInput.Value())
	if err != nil {
		// The session stays finalizable so nothing is lost.
		m.timer.Unfinalize()
		m.saving = false
		m.notesInput.Blur()
		m.errMsg = fmt.Sprintf("failed to save session: %v", err)
		return
	}
	m.saving = false
	m.notesInput.Blur()
	m.timer.Reset()
	m.statusMsg = fmt.Sprintf("saved %s", statsPkg.FormatMinutes(record.DurationSeconds))
	m.refreshFooterStats()
}

func (m *Model) cycleSubject() {
	if len(m.subjects) == 0 {
		return
	}
	m.subjectIdx++
	if m.subjectIdx >= len(m.subjects) {
		m.subjectIdx = -1
	}
	m.topicIdx = -1
	m.topics = nil
	if m.subjectIdx >= 0 {
		topics, err := m.store.ListTopics(context.Background(), m.subjects[m.subjectIdx].ID)
		if err != nil {
			m.errMsg = fmt.Sprintf("failed to load topics: %v", err)
			return
		}
		m.topics = topics
	}
}

func (m *Model) cycleTopic() {
	if len(m.topics) == 0 {
		return
	}
	m.topicIdx++
	if m.topicIdx >= len(m.topics) {
		m.topicIdx = -1
	}
}

func (m *Model) selectedSubjectID() *int64 {
	if m.subjectIdx < 0 || m.subjectIdx >= len(m.subjects) {
		return nil
	}
	return &m.subjects[m.subjectIdx].ID
}

func (m *Model) selectedTopicID() *int64 {
	if m.topicIdx < 0 || m.topicIdx >= len(m.topics) {
		return nil
	}
	return &m.topics[m.topicIdx].ID
}

func (m *Model) refreshFooterStats() {
	ctx := context.Background()
	records, err := m.store.ListSessions(ctx, model.SessionFilter{})
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load session stats: %v", err)
		return
	}
	now := time.Now().In(m.config.Location)
	m.todaySeconds = statsPkg.SumDurationForLocalDate(records, now, m.config.Location)
	m.streakDays, m.studiedToday = statsPkg.ComputeStreak(records, now, m.config.Location)
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderContent() string {
	lines := []string{
		clockStyle.Render(statsPkg.FormatClock(m.timer.Elapsed())),
		stateStyle.Render(m.stateLabel()),
		accentStyle.Render(m.targetLine()),
	}
	if m.saving {
		lines = append(lines, "", "Notes: "+m.notesInput.View(), helpStyle.Render("enter save · esc back"))
	} else {
		lines = append(lines, "", helpStyle.Render("space start/pause · s save · r reset · tab subject · t topic · q quit"))
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	} else if m.statusMsg != "" {
		lines = append(lines, stateStyle.Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) stateLabel() string {
	switch m.timer.State() {
	case timer.StateRunning:
		return "studying"
	case timer.StatePaused:
		return "paused"
	case timer.StateFinalized:
		return "saving"
	default:
		return "ready"
	}
}

func (m *Model) targetLine() string {
	if m.subjectIdx < 0 {
		return "no subject"
	}
	name := m.subjects[m.subjectIdx].Name
	if m.topicIdx >= 0 && m.topicIdx < len(m.topics) {
		return name + " · " + m.topics[m.topicIdx].Name
	}
	return name
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Today %s", statsPkg.FormatMinutes(m.todaySeconds))}
	streak := fmt.Sprintf("Streak %d", m.streakDays)
	if m.streakDays > 0 && !m.studiedToday {
		streak += " (not yet today)"
	}
	segments = append(segments, streak)
	if m.config.GoalMinutes > 0 {
		pct, achieved := statsPkg.DailyGoalProgress(m.todaySeconds, m.config.GoalMinutes)
		goal := fmt.Sprintf("Goal %d%%", pct)
		if achieved {
			goal += " ✓"
		}
		segments = append(segments, goal)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
