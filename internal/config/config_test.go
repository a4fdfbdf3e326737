package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesCategoryDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/coldstart_test"
server:
  port: ":8080"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	hockey, ok := cfg.CategoryConfig("hockey")
	if !ok {
		t.Fatal("hockey category missing, defaults not applied")
	}
	if len(hockey.Signals) != 7 {
		t.Errorf("got %d hockey signals, want 7", len(hockey.Signals))
	}
	if hockey.Verdicts.None != "No ratings yet" {
		t.Errorf("Verdicts.None = %q, want default", hockey.Verdicts.None)
	}
	if hockey.Category != "hockey" {
		t.Errorf("Category = %q, want hockey", hockey.Category)
	}

	if _, ok := cfg.CategoryConfig("cricket"); ok {
		t.Error("unknown category resolved, want miss")
	}

	if cfg.Auth.TokenTTLHrs != 24 {
		t.Errorf("TokenTTLHrs = %d, want default 24", cfg.Auth.TokenTTLHrs)
	}
}

func TestLoadConfigCustomCategoryWins(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/coldstart_test"
categories:
  hockey:
    signals: [parking, cold]
    verdicts:
      good: "Great rink"
      mixed: "So-so"
      bad: "Avoid"
      none: "Nothing yet"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	hockey, _ := cfg.CategoryConfig("hockey")
	if len(hockey.Signals) != 2 {
		t.Errorf("got %d signals, want the 2 from the file, not defaults", len(hockey.Signals))
	}
	if hockey.Verdicts.Good != "Great rink" {
		t.Errorf("Verdicts.Good = %q, want the configured value", hockey.Verdicts.Good)
	}

	// Categories absent from the file still get defaults.
	if _, ok := cfg.CategoryConfig("baseball"); !ok {
		t.Error("baseball defaults missing when file only configures hockey")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("LoadConfig succeeded on a missing file, want error")
	}
}
