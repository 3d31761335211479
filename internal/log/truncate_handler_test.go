package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncateHandler tests attribute truncation behavior.
func TestTruncateHandler(t *testing.T) {
	t.Parallel()

	longURL := "https://www.ics.uci.edu/events/?" + strings.Repeat("ical=1&", 200)

	t.Run("truncates oversized url attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Warn("rejecting page", "url", longURL)

		out := buf.String()
		if strings.Contains(out, longURL) {
			t.Error("oversized URL logged verbatim")
		}
		if !strings.Contains(out, "...(") {
			t.Errorf("expected truncation marker in %q", out)
		}
	})

	t.Run("leaves short urls alone", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Warn("rejecting page", "url", "https://www.ics.uci.edu/about")

		if !strings.Contains(buf.String(), "https://www.ics.uci.edu/about") {
			t.Errorf("short URL should pass through: %q", buf.String())
		}
	})

	t.Run("leaves non-url keys alone", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		longReason := strings.Repeat("x", 2*MaxValueLength)
		logger.Warn("odd page", "detail", longReason)

		if !strings.Contains(buf.String(), longReason) {
			t.Error("non-URL attribute should not be truncated")
		}
	})

	t.Run("truncates inside groups and WithAttrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true).With("link", longURL)

		logger.Warn("grouped", slog.Group("req", slog.String("url", longURL)))

		if strings.Contains(buf.String(), longURL) {
			t.Error("oversized URL leaked through group or WithAttrs")
		}
	})
}

// TestNewLoggerLevels tests verbose level selection.
func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("quiet mode drops debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("noise")
		logger.Info("still noise")
		if buf.Len() != 0 {
			t.Errorf("expected no output below warn, got %q", buf.String())
		}

		logger.Warn("signal")
		if buf.Len() == 0 {
			t.Error("expected warn output")
		}
	})

	t.Run("verbose mode keeps debug records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("detail")
		if !strings.Contains(buf.String(), "detail") {
			t.Error("expected debug output in verbose mode")
		}
	})
}
