package scraper

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
	"github.com/kyamamoto/scopecrawl/internal/config"
	"github.com/kyamamoto/scopecrawl/internal/model"
)

// testConfig returns a configuration with thresholds small enough to build
// readable test pages against.
func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.MinWordCount = 50
	return cfg
}

// pageHTML builds an HTML page with the given number of filtered words and
// the given outgoing links.
func pageHTML(words int, links []string) []byte {
	vocabulary := []string{
		"research", "algorithm", "network", "compiler", "database",
		"inference", "graphics",
	}

	var sb strings.Builder
	sb.WriteString("<html><body><p>")
	for i := 0; i < words; i++ {
		sb.WriteString(vocabulary[i%len(vocabulary)])
		sb.WriteString(" ")
	}
	sb.WriteString("</p>")
	// Anchor text is a stop word so links never shift the word count.
	for _, link := range links {
		fmt.Fprintf(&sb, `<a href="%s">the</a>`, link)
	}
	sb.WriteString("</body></html>")
	return []byte(sb.String())
}

// recordedPage captures one page log insert.
type recordedPage struct {
	url       string
	host      string
	hash      string
	wordCount int
}

// fakePageLog is an in-memory PageRecorder.
type fakePageLog struct {
	pages []recordedPage
	err   error
}

func (f *fakePageLog) Insert(pageURL, host, contentHash string, wordCount int) error {
	if f.err != nil {
		return f.err
	}
	f.pages = append(f.pages, recordedPage{pageURL, host, contentHash, wordCount})
	return nil
}

// TestScraperScrape tests the end-to-end handling of fetched pages.
func TestScraperScrape(t *testing.T) {
	t.Parallel()

	t.Run("accepted page yields unique in-scope links", func(t *testing.T) {
		t.Parallel()

		inScope := []string{
			"https://www.ics.uci.edu/grad/admissions",
			"https://www.cs.uci.edu/people",
			"https://vision.ics.uci.edu/projects",
		}
		links := append([]string{}, inScope...)
		links = append(links,
			"https://www.example.com/elsewhere",        // out-of-scope domain
			"https://www.ics.uci.edu/files/slides.pdf", // denied extension
			"https://www.ics.uci.edu/grad/admissions",  // duplicate
			"https://www.cs.uci.edu/people#faculty",    // fragment duplicate
		)

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		resp := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/about",
			Raw:    pageHTML(200, links),
		}

		got := s.Scrape("https://www.ics.uci.edu/about", resp)
		if len(got) != len(inScope) {
			t.Fatalf("expected %d links, got %v", len(inScope), got)
		}
		for i, want := range inScope {
			if got[i] != want {
				t.Errorf("link %d: expected %s, got %s", i, want, got[i])
			}
		}

		if store.UniquePages() != 1 {
			t.Errorf("expected the page to be recorded, got %d pages", store.UniquePages())
		}
		if store.Longest().WordCount != 200 {
			t.Errorf("expected word count 200, got %d", store.Longest().WordCount)
		}
	})

	t.Run("non-200 response contributes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		resp := &model.Response{
			Status: 404,
			URL:    "https://www.ics.uci.edu/missing",
			Raw:    pageHTML(200, []string{"https://www.ics.uci.edu/real"}),
		}

		if got := s.Scrape("https://www.ics.uci.edu/missing", resp); len(got) != 0 {
			t.Errorf("expected no links, got %v", got)
		}
		if store.UniquePages() != 0 {
			t.Error("rejected page must not touch analytics")
		}
	})

	t.Run("skip log notes error pages that carry a body", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		s := NewScraper(cfg, store, WithLogger(logger))

		resp := &model.Response{
			Status: 404,
			URL:    "https://www.ics.uci.edu/missing",
			Raw:    []byte("<html><body>Not Found</body></html>"),
		}
		s.Scrape("https://www.ics.uci.edu/missing", resp)

		if !strings.Contains(buf.String(), "has_body=true") {
			t.Errorf("expected the skip log to note the body, got %q", buf.String())
		}
	})

	t.Run("nil and empty responses are rejected", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		if got := s.Scrape("https://www.ics.uci.edu/", nil); got != nil {
			t.Errorf("expected nil for nil response, got %v", got)
		}

		empty := &model.Response{Status: 200, URL: "https://www.ics.uci.edu/empty"}
		if got := s.Scrape("https://www.ics.uci.edu/empty", empty); got != nil {
			t.Errorf("expected nil for empty body, got %v", got)
		}
	})

	t.Run("thin page is rejected", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		resp := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/stub",
			Raw:    pageHTML(20, []string{"https://www.ics.uci.edu/real"}),
		}

		if got := s.Scrape("https://www.ics.uci.edu/stub", resp); len(got) != 0 {
			t.Errorf("expected no links from a thin page, got %v", got)
		}
		if store.UniquePages() != 0 {
			t.Error("thin page must not be recorded")
		}
	})

	t.Run("oversized body is rejected before parsing", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.MaxBodySize = 128
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		resp := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/huge",
			Raw:    pageHTML(200, nil),
		}

		if got := s.Scrape("https://www.ics.uci.edu/huge", resp); len(got) != 0 {
			t.Errorf("expected no links from an oversized page, got %v", got)
		}
	})

	t.Run("subdomain cap stops further acceptance", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.MaxPagesPerSubdomain = 1
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		first := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/one",
			Raw:    pageHTML(200, []string{"https://www.ics.uci.edu/two"}),
		}
		if got := s.Scrape("https://www.ics.uci.edu/one", first); len(got) != 1 {
			t.Fatalf("first page should be accepted, got %v", got)
		}

		second := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/two",
			Raw:    pageHTML(200, []string{"https://www.ics.uci.edu/three"}),
		}
		if got := s.Scrape("https://www.ics.uci.edu/two", second); len(got) != 0 {
			t.Errorf("capped subdomain should yield no links, got %v", got)
		}
		if store.UniquePages() != 1 {
			t.Errorf("expected 1 recorded page after cap, got %d", store.UniquePages())
		}

		// Other subdomains are unaffected.
		other := &model.Response{
			Status: 200,
			URL:    "https://vision.ics.uci.edu/gallery",
			Raw:    pageHTML(200, nil),
		}
		s.Scrape("https://vision.ics.uci.edu/gallery", other)
		if store.UniquePages() != 2 {
			t.Errorf("expected 2 recorded pages, got %d", store.UniquePages())
		}
	})

	t.Run("subdomain cap folds host case", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.MaxPagesPerSubdomain = 1
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		first := &model.Response{
			Status: 200,
			URL:    "https://WWW.ICS.UCI.EDU/one",
			Raw:    pageHTML(200, nil),
		}
		s.Scrape("https://WWW.ICS.UCI.EDU/one", first)

		second := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/two",
			Raw:    pageHTML(200, nil),
		}
		if got := s.Scrape("https://www.ics.uci.edu/two", second); len(got) != 0 {
			t.Errorf("case variant must share the cap bucket, got %v", got)
		}
		if store.UniquePages() != 1 {
			t.Errorf("expected 1 recorded page across case variants, got %d", store.UniquePages())
		}
	})

	t.Run("checkpoints on the configured interval", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.CheckpointInterval = 1
		path := filepath.Join(t.TempDir(), "analytics.json")
		store := analytics.NewStore(path, cfg.TargetSuffix)
		s := NewScraper(cfg, store)

		resp := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/about",
			Raw:    pageHTML(200, nil),
		}
		s.Scrape("https://www.ics.uci.edu/about", resp)

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected a checkpoint file: %v", err)
		}
	})

	t.Run("page log receives accepted pages", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		pageLog := &fakePageLog{}
		s := NewScraper(cfg, store, WithPageLog(pageLog))

		resp := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/about",
			Raw:    pageHTML(200, nil),
		}
		s.Scrape("https://www.ics.uci.edu/about#history", resp)

		if len(pageLog.pages) != 1 {
			t.Fatalf("expected 1 recorded page, got %d", len(pageLog.pages))
		}
		rec := pageLog.pages[0]
		if rec.url != "https://www.ics.uci.edu/about" {
			t.Errorf("expected defragmented URL, got %s", rec.url)
		}
		if rec.host != "www.ics.uci.edu" {
			t.Errorf("unexpected host %s", rec.host)
		}
		if rec.hash != resp.Hash() {
			t.Errorf("unexpected content hash %s", rec.hash)
		}
		if rec.wordCount != 200 {
			t.Errorf("unexpected word count %d", rec.wordCount)
		}
	})

	t.Run("page log failures do not block scraping", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		store := analytics.NewStore(filepath.Join(t.TempDir(), "analytics.json"), cfg.TargetSuffix)
		pageLog := &fakePageLog{err: os.ErrPermission}
		s := NewScraper(cfg, store, WithPageLog(pageLog))

		resp := &model.Response{
			Status: 200,
			URL:    "https://www.ics.uci.edu/about",
			Raw:    pageHTML(200, []string{"https://www.ics.uci.edu/next"}),
		}

		if got := s.Scrape("https://www.ics.uci.edu/about", resp); len(got) != 1 {
			t.Errorf("insert failure must not drop links, got %v", got)
		}
		if store.UniquePages() != 1 {
			t.Error("insert failure must not drop analytics")
		}
	})
}
