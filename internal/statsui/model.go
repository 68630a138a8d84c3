// Package statsui provides the Bubble Tea weekly report interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sylla/internal/model"
	"github.com/verte-zerg/sylla/internal/stats"
	"github.com/verte-zerg/sylla/internal/store"
)

const sparklineDays = 14

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea weekly report UI.
type Model struct {
	store *store.Store
	loc   *time.Location
	now   func() time.Time

	// offset counts ISO weeks back from the current one, zero or negative.
	offset int

	records  []model.SessionRecord
	topics   []model.Topic
	subjects []model.Subject

	viewport viewport.Model
	width    int
	height   int
	errMsg   string
}

// NewModel constructs a weekly report model starting at the given week offset.
func NewModel(st *store.Store, loc *time.Location, offset int) *Model {
	if loc == nil {
		loc = time.Local
	}
	if offset > 0 {
		offset = 0
	}
	m := &Model{
		store:    st,
		loc:      loc,
		now:      time.Now,
		offset:   offset,
		viewport: viewport.New(0, 0),
	}
	m.loadData()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderReport()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.offset--
			m.renderReport()
			return m, tea.ClearScreen
		case "right", "l":
			if m.canGoNext() {
				m.offset++
				m.renderReport()
			}
			return m, tea.ClearScreen
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.viewport.View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) canGoNext() bool {
	return m.offset < 0
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = 2
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
}

func (m *Model) loadData() {
	ctx := context.Background()
	records, err := m.store.ListSessions(ctx, model.SessionFilter{})
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load sessions: %v", err)
		return
	}
	topics, err := m.store.ListAllTopics(ctx)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load topics: %v", err)
		return
	}
	subjects, err := m.store.ListSubjects(ctx)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load subjects: %v", err)
		return
	}
	m.errMsg = ""
	m.records = records
	m.topics = topics
	m.subjects = subjects
	m.renderReport()
}

func (m *Model) renderReport() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	now := m.now().In(m.loc)
	window := stats.ISOWeekWindow(m.offset, now)
	report := stats.BuildWeeklyReport(m.records, m.topics, window, m.loc)

	sections := []string{m.renderCards(report, width)}
	if breakdown := m.renderBreakdown(window, width); breakdown != "" {
		sections = append(sections, breakdown)
	}
	sections = append(sections, m.renderSparkline(now, width))
	m.viewport.SetContent(strings.Join(sections, "\n\n"))
}

func (m *Model) renderCards(report stats.WeeklyReport, width int) string {
	cards := []string{
		metricCard("Total", stats.FormatMinutes(report.TotalDurationSeconds)),
		metricCard("Sessions", fmt.Sprintf("%d", report.SessionCount)),
		metricCard("Subjects", fmt.Sprintf("%d", report.UniqueSubjectsCount)),
		metricCard("Days studied", fmt.Sprintf("%d/7", report.DaysStudied)),
		metricCard("Topics mastered", fmt.Sprintf("%d", report.TopicsMasteredCount)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func (m *Model) renderBreakdown(window stats.Window, width int) string {
	slices := stats.SubjectBreakdown(m.records, m.subjects, window, m.loc)
	if len(slices) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := stats.RenderBreakdown(&buf, slices, width); err != nil {
		return errorStyle.Render(fmt.Sprintf("failed to render breakdown: %v", err))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderSparkline(now time.Time, width int) string {
	series := stats.DailySeries(m.records, sparklineDays, now, m.loc)
	return headerStyle.Render(fmt.Sprintf("Last %d days", sparklineDays)) + "\n" + stats.Sparkline(series)
}

func (m *Model) renderHeader() string {
	now := m.now().In(m.loc)
	window := stats.ISOWeekWindow(m.offset, now)
	label := stats.WeekLabel(m.offset, window)
	week := fmt.Sprintf("%s  (W%02d %d)", label, window.ISOWeek, window.ISOYear)
	return padLines(titleStyle.Render(week), m.width) + "\n" +
		padLines(headerStyle.Render(truncateLine("Weekly report", m.width)), m.width)
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Quit: q"
	if !m.canGoNext() {
		help = "Nav: left  Scroll: up/down/pgup/pgdn  Quit: q"
	}
	if m.errMsg != "" {
		return headerStyle.Render(help) + "\n" + errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render(help)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
