package scraper

import (
	"bytes"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
	"github.com/kyamamoto/scopecrawl/internal/config"
	"github.com/kyamamoto/scopecrawl/internal/content"
	"github.com/kyamamoto/scopecrawl/internal/model"
	"github.com/kyamamoto/scopecrawl/internal/scope"
)

// PageRecorder persists a durable record of each accepted page.
// Implemented by the database package; optional for the scraper.
type PageRecorder interface {
	// Insert records an accepted page. Duplicate URLs update the
	// existing row.
	Insert(pageURL, host, contentHash string, wordCount int) error
}

// Scraper turns fetched responses into filtered, in-scope outlinks while
// maintaining the crawl analytics as a side effect.
//
// Design decision: Scrape never returns an error. A page that cannot be
// processed simply contributes no links; the crawl must keep moving, and
// every failure mode here (bad page, full subdomain, failed checkpoint) is
// a per-page concern, not a run-stopping one. Failures are logged instead.
type Scraper struct {
	cfg        *config.Config
	filter     *content.Filter
	classifier *scope.Classifier
	store      *analytics.Store
	logger     *slog.Logger
	pageLog    PageRecorder

	// mutex protects subdomainPages. The host runtime may call Scrape
	// from several workers at once.
	mutex sync.Mutex

	// subdomainPages counts accepted pages per host in this run,
	// enforcing the per-subdomain cap.
	subdomainPages map[string]int
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithPageLog sets an optional durable page log. Insert failures are
// logged and ignored; the page log is an audit trail, not crawl state.
func WithPageLog(log PageRecorder) Option {
	return func(s *Scraper) {
		s.pageLog = log
	}
}

// NewScraper creates a Scraper over the given configuration and analytics
// store. The store should already be loaded when resuming a crawl.
func NewScraper(cfg *config.Config, store *analytics.Store, opts ...Option) *Scraper {
	s := &Scraper{
		cfg:            cfg,
		filter:         content.NewFilter(cfg),
		classifier:     scope.NewClassifier(cfg),
		store:          store,
		logger:         slog.New(slog.DiscardHandler),
		subdomainPages: make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Classifier exposes the scope classifier for callers that need to test
// URLs outside the scrape path.
func (s *Scraper) Classifier() *scope.Classifier {
	return s.classifier
}

// Scrape processes one fetched page and returns the unique, in-scope,
// defragmented links found on it. Rejected and broken pages return an
// empty slice and leave the analytics untouched.
func (s *Scraper) Scrape(pageURL string, resp *model.Response) []string {
	if !resp.Ok() {
		status := 0
		if resp != nil {
			status = resp.Status
		}
		// Error pages often carry a body anyway; note it so a crawl
		// that keeps hitting decorated error pages is visible in logs.
		s.logger.Debug("skipping page without usable content",
			"url", pageURL, "status", status, "has_body", resp.HasContent())
		return nil
	}

	if eval := s.filter.EvaluateSize(int64(len(resp.Raw))); !eval.Accepted {
		s.logger.Debug("rejecting page", "url", pageURL, "reason", eval.Reason)
		return nil
	}

	host := hostOf(pageURL)
	if s.subdomainFull(host) {
		s.logger.Debug("subdomain page cap reached", "host", host)
		return nil
	}

	parser, err := NewParser(pageURL)
	if err != nil {
		s.logger.Warn("unparseable page URL", "url", pageURL, "error", err)
		return nil
	}
	result, err := parser.Parse(bytes.NewReader(resp.Raw))
	if err != nil {
		s.logger.Warn("failed to parse page", "url", pageURL, "error", err)
		return nil
	}

	eval := s.filter.Evaluate(result.Text, result.AnchorCount)
	if !eval.Accepted {
		s.logger.Debug("rejecting page",
			"url", pageURL, "reason", eval.Reason, "words", eval.WordCount)
		return nil
	}

	s.accept(pageURL, host, resp, eval)

	return s.selectLinks(result.Links)
}

// accept records an accepted page in the analytics store, checkpoints on
// the configured interval, and writes the optional page log entry.
func (s *Scraper) accept(pageURL, host string, resp *model.Response, eval content.Evaluation) {
	s.mutex.Lock()
	s.subdomainPages[host]++
	s.mutex.Unlock()

	s.store.Record(defragment(pageURL), eval.Words)

	if n := s.store.UniquePages(); n%s.cfg.CheckpointInterval == 0 {
		if err := s.store.Save(); err != nil {
			s.logger.Warn("failed to checkpoint analytics", "error", err)
		} else {
			s.logger.Debug("checkpointed analytics", "pages", n)
		}
	}

	if s.pageLog != nil {
		if err := s.pageLog.Insert(defragment(pageURL), host, resp.Hash(), eval.WordCount); err != nil {
			s.logger.Warn("failed to record page", "url", pageURL, "error", err)
		}
	}
}

// selectLinks defragments, deduplicates, and classifies the raw links from
// one page, preserving first-seen order.
func (s *Scraper) selectLinks(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	out := make([]string, 0, len(links))
	for _, link := range links {
		clean := defragment(link)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}

		if s.classifier.IsValid(clean) {
			out = append(out, clean)
		}
	}
	return out
}

// subdomainFull reports whether the host has hit its accepted-page cap.
func (s *Scraper) subdomainFull(host string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.subdomainPages[host] >= s.cfg.MaxPagesPerSubdomain
}

// hostOf returns the lowercased hostname of a URL, or the empty string.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// defragment strips the fragment from a URL. Fragments address positions
// within a page, so two URLs differing only in fragment are the same page.
func defragment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to a string split so even unparseable URLs
		// deduplicate consistently.
		base, _, _ := strings.Cut(rawURL, "#")
		return base
	}
	u.Fragment = ""
	return u.String()
}
