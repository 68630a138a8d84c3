package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config should not be an error: %v", err)
	}
	if cfg.Study.GoalMinutes != nil || cfg.Study.Timezone != nil || cfg.UI.Color != nil {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[study]\ngoal-minutes = 90\ntimezone = \"Europe/Berlin\"\n\n[ui]\ncolor = \"#7C3AED\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Study.GoalMinutes == nil || *cfg.Study.GoalMinutes != 90 {
		t.Errorf("unexpected goal-minutes: %v", cfg.Study.GoalMinutes)
	}
	if cfg.Study.Timezone == nil || *cfg.Study.Timezone != "Europe/Berlin" {
		t.Errorf("unexpected timezone: %v", cfg.Study.Timezone)
	}
	if cfg.UI.Color == nil || *cfg.UI.Color != "#7C3AED" {
		t.Errorf("unexpected color: %v", cfg.UI.Color)
	}
}

func TestLocation(t *testing.T) {
	loc, err := Location("")
	if err != nil || loc == nil {
		t.Fatalf("empty timezone should resolve to local time, got %v, %v", loc, err)
	}

	loc, err = Location("Europe/Berlin")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("unexpected location %v", loc)
	}

	if _, err := Location("Atlantis/Nowhere"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
