package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeSettings writes a settings file into a temp dir and returns its path.
func writeSettings(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultSettingsFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

// TestLoadSettings tests loading the crawler settings file.
func TestLoadSettings(t *testing.T) {
	t.Parallel()

	t.Run("loads complete settings", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, `
useragent: "IR UW26 12345678,87654321"
host: styx.ics.uci.edu
port: 9000
seeds:
  - https://www.ics.uci.edu
  - https://www.cs.uci.edu
politeness: 500ms
workers: 1
`)

		s, err := LoadSettings(path)
		if err != nil {
			t.Fatalf("failed to load settings: %v", err)
		}

		if s.UserAgent != "IR UW26 12345678,87654321" {
			t.Errorf("unexpected useragent: %q", s.UserAgent)
		}
		if s.Host != "styx.ics.uci.edu" {
			t.Errorf("unexpected host: %q", s.Host)
		}
		if s.Port != 9000 {
			t.Errorf("unexpected port: %d", s.Port)
		}
		if len(s.Seeds) != 2 {
			t.Errorf("expected 2 seeds, got %d", len(s.Seeds))
		}
		if time.Duration(s.Politeness) != 500*time.Millisecond {
			t.Errorf("unexpected politeness: %v", time.Duration(s.Politeness))
		}
	})

	t.Run("missing file returns ErrSettingsNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadSettings(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrSettingsNotFound) {
			t.Errorf("expected ErrSettingsNotFound, got %v", err)
		}
	})

	t.Run("malformed duration is an error", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "politeness: half-a-second\n")
		if _, err := LoadSettings(path); err == nil {
			t.Error("expected error for malformed duration")
		}
	})
}

// TestCheck tests the preflight settings checker.
func TestCheck(t *testing.T) {
	t.Parallel()

	valid := func() *Settings {
		return &Settings{
			UserAgent:  "IR UW26 12345678",
			Host:       ExpectedHost,
			Port:       ExpectedPort,
			Seeds:      ExpectedSeeds(),
			Politeness: Duration(500 * time.Millisecond),
			Workers:    1,
		}
	}

	t.Run("valid settings pass", func(t *testing.T) {
		t.Parallel()

		result := Check(valid())
		if !result.OK() {
			t.Errorf("expected no errors, got %v", result.Errors)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", result.Warnings)
		}
	})

	t.Run("placeholder useragent is an error", func(t *testing.T) {
		t.Parallel()

		s := valid()
		s.UserAgent = PlaceholderUserAgent

		result := Check(s)
		if result.OK() {
			t.Error("expected errors for placeholder useragent")
		}
	})

	t.Run("missing course tag is a warning", func(t *testing.T) {
		t.Parallel()

		s := valid()
		s.UserAgent = "SomeBot 12345"

		result := Check(s)
		if !result.OK() {
			t.Errorf("expected no errors, got %v", result.Errors)
		}
		if len(result.Warnings) == 0 {
			t.Error("expected a warning about the course tag")
		}
	})

	t.Run("low politeness is an error", func(t *testing.T) {
		t.Parallel()

		s := valid()
		s.Politeness = Duration(100 * time.Millisecond)

		result := Check(s)
		if result.OK() {
			t.Error("expected an error for politeness below the minimum")
		}
	})

	t.Run("missing seed is a warning", func(t *testing.T) {
		t.Parallel()

		s := valid()
		s.Seeds = s.Seeds[:2]

		result := Check(s)
		if len(result.Warnings) != 2 {
			t.Errorf("expected 2 seed warnings, got %v", result.Warnings)
		}
	})

	t.Run("multiple workers is a warning", func(t *testing.T) {
		t.Parallel()

		s := valid()
		s.Workers = 8

		result := Check(s)
		if len(result.Warnings) == 0 {
			t.Error("expected a warning about multiple workers")
		}
	})
}

// TestFindSettingsFile tests the settings file search.
func TestFindSettingsFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins when it exists", func(t *testing.T) {
		t.Parallel()

		path := writeSettings(t, "useragent: test\n")
		if got := FindSettingsFile(path); got != path {
			t.Errorf("expected %s, got %q", path, got)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultSettingsFile)
		if got := FindSettingsFile(path); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("search order covers cwd, config dir, and home", func(t *testing.T) {
		t.Parallel()

		paths := settingsSearchPaths()
		want := filepath.Join(XDGConfigDir(), DefaultSettingsFile)

		idx := -1
		for i, p := range paths {
			if p == want {
				idx = i
			}
		}
		if idx < 0 {
			t.Fatalf("config dir candidate %s missing from %v", want, paths)
		}
		// The config dir candidate sits between cwd and home.
		if idx != len(paths)-2 {
			t.Errorf("config dir candidate at position %d of %v", idx, paths)
		}
	})
}
