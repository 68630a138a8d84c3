package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func newFlagTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("goal", 0, "")
	cmd.Flags().String("timezone", "", "")
	return cmd
}

func TestApplyConfigUsesFileValueWhenFlagUnset(t *testing.T) {
	cmd := newFlagTestCmd()

	goal := 0
	fileGoal := 45
	applyIntConfig(cmd, "goal", &goal, &fileGoal)
	if goal != 45 {
		t.Errorf("expected config value 45, got %d", goal)
	}

	tz := ""
	fileTz := "Europe/Berlin"
	applyStringConfig(cmd, "timezone", &tz, &fileTz)
	if tz != "Europe/Berlin" {
		t.Errorf("expected config value %q, got %q", fileTz, tz)
	}
}

func TestApplyConfigFlagOverridesFileValue(t *testing.T) {
	cmd := newFlagTestCmd()
	if err := cmd.Flags().Set("goal", "90"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	if err := cmd.Flags().Set("timezone", "UTC"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	goal := 90
	fileGoal := 45
	applyIntConfig(cmd, "goal", &goal, &fileGoal)
	if goal != 90 {
		t.Errorf("expected flag value 90 to win, got %d", goal)
	}

	tz := "UTC"
	fileTz := "Europe/Berlin"
	applyStringConfig(cmd, "timezone", &tz, &fileTz)
	if tz != "UTC" {
		t.Errorf("expected flag value to win, got %q", tz)
	}
}

func TestApplyConfigNilValueKeepsDefault(t *testing.T) {
	cmd := newFlagTestCmd()

	goal := 30
	applyIntConfig(cmd, "goal", &goal, nil)
	if goal != 30 {
		t.Errorf("expected default kept for nil config value, got %d", goal)
	}
}
