// Package main provides the CLI entrypoint for sylla.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/sylla/internal/config"
	"github.com/verte-zerg/sylla/internal/model"
	"github.com/verte-zerg/sylla/internal/stats"
	"github.com/verte-zerg/sylla/internal/statsui"
	"github.com/verte-zerg/sylla/internal/store"
	"github.com/verte-zerg/sylla/internal/syllabus"
	"github.com/verte-zerg/sylla/internal/tui"
)

const (
	defaultGoalMinutes = 0
	defaultAccentColor = "#C89A3A"
)

var (
	timerGoalMinutes int
	timerTimezone    string
	timerColor       string

	subjectName        string
	subjectDescription string
	subjectColor       string

	topicsSubject string

	importSubject string

	statsWeek  int
	statsPlain bool

	historySubject string
	historyDays    int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sylla",
		Short:         "Study timer and syllabus tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().IntVar(&timerGoalMinutes, "goal", defaultGoalMinutes, "daily goal in minutes (0 disables)")
	rootCmd.Flags().StringVar(&timerTimezone, "timezone", "", "IANA timezone for day boundaries (default: local)")
	rootCmd.Flags().StringVar(&timerColor, "color", defaultAccentColor, "accent color")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSubjectsCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "goal", &timerGoalMinutes, fileCfg.Study.GoalMinutes)
	applyStringConfig(cmd, "timezone", &timerTimezone, fileCfg.Study.Timezone)
	applyStringConfig(cmd, "color", &timerColor, fileCfg.UI.Color)

	if timerGoalMinutes < 0 {
		return fmt.Errorf("--goal must be >= 0")
	}
	loc, err := config.Location(timerTimezone)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	subjects, err := st.ListSubjects(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}

	uiModel := tui.NewModel(tui.Config{
		GoalMinutes: timerGoalMinutes,
		Location:    loc,
		AccentColor: timerColor,
	}, st, subjects)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSubjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List subjects",
		Args:  cobra.NoArgs,
		RunE:  runSubjectsListCmd,
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subject",
		Args:  cobra.NoArgs,
		RunE:  runSubjectsAddCmd,
	}
	addCmd.Flags().StringVar(&subjectName, "name", "", "subject name (required)")
	addCmd.Flags().StringVar(&subjectDescription, "description", "", "subject description")
	addCmd.Flags().StringVar(&subjectColor, "color", "", "subject color")

	rmCmd := &cobra.Command{
		Use:   "rm <id|name>",
		Short: "Remove a subject and its topics",
		Args:  cobra.ExactArgs(1),
		RunE:  runSubjectsRmCmd,
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(rmCmd)
	return cmd
}

func runSubjectsListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	subjects, err := st.ListSubjects(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list subjects: %w", err)
	}
	if len(subjects) == 0 {
		logger.Info("no subjects yet; add one with: sylla subjects add --name <name>")
		return nil
	}
	for _, subject := range subjects {
		line := fmt.Sprintf("%d\t%s", subject.ID, subject.Name)
		if subject.Description != "" {
			line += "\t" + subject.Description
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runSubjectsAddCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	subject, err := st.CreateSubject(context.Background(), subjectName, subjectDescription, subjectColor)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created subject %d: %s\n", subject.ID, subject.Name); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runSubjectsRmCmd(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	subject, err := resolveSubject(ctx, st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteSubject(ctx, subject.ID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	logger.Info("deleted subject", "name", subject.Name)
	return nil
}

func newTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List a subject's topics",
		Args:  cobra.NoArgs,
		RunE:  runTopicsListCmd,
	}
	cmd.Flags().StringVar(&topicsSubject, "subject", "", "subject id or name (required)")

	cycleCmd := &cobra.Command{
		Use:   "cycle <topic-id>",
		Short: "Cycle a topic's status",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopicsCycleCmd,
	}
	cmd.AddCommand(cycleCmd)
	return cmd
}

func runTopicsListCmd(cmd *cobra.Command, _ []string) error {
	if topicsSubject == "" {
		return fmt.Errorf("--subject is required")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	subject, err := resolveSubject(ctx, st, topicsSubject)
	if err != nil {
		return err
	}
	topics, err := st.ListTopics(ctx, subject.ID)
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		logger.Info("no topics yet; import some with: sylla import --subject " + subject.Name)
		return nil
	}
	for _, topic := range topics {
		line := fmt.Sprintf("%d\t%s %s", topic.ID, statusGlyph(topic.Status), topic.Name)
		if topic.Difficulty != model.DifficultyUnrated {
			line += fmt.Sprintf("  [%s]", topic.Difficulty)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runTopicsCycleCmd(cmd *cobra.Command, args []string) error {
	topicID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid topic id %q", args[0])
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	topic, err := st.GetTopic(ctx, topicID)
	if err != nil {
		return fmt.Errorf("failed to load topic: %w", err)
	}
	next := topic.Status.Cycle()
	if err := st.UpdateTopicStatus(ctx, topicID, next); err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", statusGlyph(next), topic.Name); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import topics from a syllabus",
		Long:  "Parses a pasted or saved syllabus into topics. Reads from stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importSubject, "subject", "", "subject id or name (required)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	if importSubject == "" {
		return fmt.Errorf("--subject is required")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	subject, err := resolveSubject(ctx, st, importSubject)
	if err != nil {
		return err
	}

	var names []string
	if len(args) == 1 {
		names, err = syllabus.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read syllabus: %w", err)
		}
	} else {
		names, err = syllabus.ReadFrom(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read syllabus: %w", err)
		}
	}

	topics, err := syllabus.ImportTopics(ctx, st, subject.ID, names)
	if err != nil {
		if model.IsValidation(err) {
			return fmt.Errorf("no topics recognized; each topic should be a numbered or bulleted line")
		}
		return fmt.Errorf("failed to import topics: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "imported %d topics into %s\n", len(topics), subject.Name); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show weekly study stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsWeek, "week", 0, "weeks back from the current one (0 = this week)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsWeek < 0 {
		statsWeek = -statsWeek
	}
	offset := -statsWeek

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	tz := ""
	if fileCfg.Study.Timezone != nil {
		tz = *fileCfg.Study.Timezone
	}
	loc, err := config.Location(tz)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if statsPlain {
		goal := 0
		if fileCfg.Study.GoalMinutes != nil {
			goal = *fileCfg.Study.GoalMinutes
		}
		return printPlainStats(cmd, st, loc, offset, goal)
	}

	uiModel := statsui.NewModel(st, loc, offset)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func printPlainStats(cmd *cobra.Command, st *store.Store, loc *time.Location, offset, goalMinutes int) error {
	ctx := context.Background()
	records, err := st.ListSessions(ctx, model.SessionFilter{})
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	topics, err := st.ListAllTopics(ctx)
	if err != nil {
		return fmt.Errorf("failed to load topics: %w", err)
	}
	subjects, err := st.ListSubjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}

	now := time.Now().In(loc)
	out := cmd.OutOrStdout()

	if offset == 0 {
		todaySeconds := stats.SumDurationForLocalDate(records, now, loc)
		streakDays, studiedToday := stats.ComputeStreak(records, now, loc)
		if err := stats.RenderOverview(out, todaySeconds, goalMinutes, streakDays, studiedToday); err != nil {
			return fmt.Errorf("failed to render overview: %w", err)
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	window := stats.ISOWeekWindow(offset, now)
	report := stats.BuildWeeklyReport(records, topics, window, loc)
	if err := stats.RenderWeekly(out, stats.WeekLabel(offset, window), report); err != nil {
		return fmt.Errorf("failed to render weekly report: %w", err)
	}

	slices := stats.SubjectBreakdown(records, subjects, window, loc)
	if len(slices) > 0 {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderBreakdown(out, slices, outputWidth()); err != nil {
			return fmt.Errorf("failed to render breakdown: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent study sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySubject, "subject", "", "filter by subject id or name")
	cmd.Flags().IntVar(&historyDays, "days", 0, "limit to the last N days")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	filter := model.SessionFilter{SinceDays: historyDays}
	if historySubject != "" {
		subject, err := resolveSubject(ctx, st, historySubject)
		if err != nil {
			return err
		}
		filter.SubjectID = &subject.ID
	}

	records, err := st.ListSessions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(records) == 0 {
		logger.Info("no sessions recorded yet")
		return nil
	}
	subjects, err := st.ListSubjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subjects: %w", err)
	}
	names := make(map[int64]string, len(subjects))
	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}
	if err := stats.RenderSessions(cmd.OutOrStdout(), records, names, time.Now(), time.Local); err != nil {
		return fmt.Errorf("failed to render sessions: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sylla configuration
# Uncomment a value to enable it. CLI flags override config values.

[study]
# goal-minutes = 60        # Daily study goal in minutes (0 disables)
# timezone = "UTC"         # IANA timezone for day boundaries (default: local)

[ui]
# color = %q       # Accent color
`, defaultAccentColor)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logger.Warn("failed to close db", "err", err)
	}
}

func resolveSubject(ctx context.Context, st *store.Store, ref string) (model.Subject, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		subject, err := st.GetSubject(ctx, id)
		if err != nil {
			return model.Subject{}, fmt.Errorf("no subject with id %d", id)
		}
		return subject, nil
	}
	subject, err := st.GetSubjectByName(ctx, ref)
	if err != nil {
		return model.Subject{}, fmt.Errorf("no subject named %q", ref)
	}
	return subject, nil
}

func statusGlyph(status model.TopicStatus) string {
	switch status {
	case model.TopicMastered:
		return "●"
	case model.TopicInProgress:
		return "◐"
	default:
		return "○"
	}
}

func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
