package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
)

// seededStore builds a small store with known content.
func seededStore(t *testing.T) *analytics.Store {
	t.Helper()

	store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), ".uci.edu")
	store.Record("https://www.ics.uci.edu/about", []string{
		"research", "research", "research", "algorithm", "algorithm", "network",
	})
	store.Record("https://vision.ics.uci.edu/projects", []string{
		"vision", "research",
	})
	return store
}

// TestTextWriter tests the plain-text report layout.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	store := seededStore(t)

	n, err := NewTextWriter(&buf).Write(store)
	if err != nil {
		t.Fatal(err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes but wrote %d", n, buf.Len())
	}

	out := buf.String()
	rule := strings.Repeat("=", 80)

	if !strings.HasPrefix(out, rule+"\nWEB CRAWLER REPORT\n"+rule+"\n") {
		t.Error("missing report framing")
	}
	if !strings.HasSuffix(out, rule+"\n") {
		t.Error("missing closing rule")
	}
	if !strings.Contains(out, "1. Number of unique pages found: 2") {
		t.Errorf("missing unique page count in:\n%s", out)
	}
	if !strings.Contains(out, "   URL: https://www.ics.uci.edu/about") {
		t.Error("missing longest page URL")
	}
	if !strings.Contains(out, "   Word count: 6") {
		t.Error("missing longest page word count")
	}
	if !strings.Contains(out, "3. 50 most common words:") {
		t.Error("missing word section header")
	}
	// research leads with 4 occurrences across both pages.
	if !strings.Contains(out, "    1. research             -      4 occurrences") {
		t.Errorf("unexpected word row formatting in:\n%s", out)
	}
	if !strings.Contains(out, "   vision.ics.uci.edu, 1\n   www.ics.uci.edu, 1\n") {
		t.Errorf("unexpected subdomain section in:\n%s", out)
	}
}

// TestMarkdownWriter tests the Markdown rendition.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders sections for a populated store", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(seededStore(t)); err != nil {
			t.Fatal(err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Web Crawler Report",
			"## Most Common Words",
			"## Subdomains",
			"research",
			"vision.ics.uci.edu",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
	})

	t.Run("notes an empty store", func(t *testing.T) {
		t.Parallel()

		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), ".uci.edu")

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(store); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No pages have been accepted yet.") {
			t.Errorf("missing empty-store note in:\n%s", buf.String())
		}
	})
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, md bytes.Buffer
	mw := NewMultiWriter(NewTextWriter(&text), NewMarkdownWriter(&md))

	if _, err := mw.Write(seededStore(t)); err != nil {
		t.Fatal(err)
	}
	if text.Len() == 0 || md.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

// TestGenerate tests that reporting persists the snapshot first.
func TestGenerate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "analytics.json")
	store := analytics.NewStore(path, ".uci.edu")
	store.Record("https://www.ics.uci.edu/about", []string{"research"})

	var buf bytes.Buffer
	if err := Generate(store, NewTextWriter(&buf)); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected snapshot on disk after Generate: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected report output")
	}
}
