package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The thresholds consolidate the values that were tuned by hand over several
// crawl runs against the target sites; the most defensive variants won.
const (
	// DefaultMaxBodySize limits the response body size the extractor is
	// willing to parse. Pages past this size are almost always generated
	// dumps or misc binary content served as text/html.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMinWordCount is the minimum number of filtered (non stop-word)
	// tokens a page must carry to be considered informative. Placeholder,
	// login, and error pages fall well below this.
	DefaultMinWordCount = 150

	// DefaultMaxLinkDensity is the maximum ratio of anchor tags to filtered
	// words. Navigation and index pages pass the word-count bar but sit far
	// above this ratio.
	DefaultMaxLinkDensity = 0.3

	// DefaultMaxURLLength rejects overly long URLs outright. Long URLs on
	// the target sites correlate strongly with generated link spaces.
	DefaultMaxURLLength = 100

	// DefaultMaxPathDepth limits the number of path segments. Deeply nested
	// paths are a signature of self-referential trap structures.
	DefaultMaxPathDepth = 5

	// DefaultSegmentRepeatLimit rejects a URL when any single path segment
	// occurs this many times, catching loops like /a/b/a/b/a/.
	DefaultSegmentRepeatLimit = 3

	// DefaultMaxQueryParams caps the number of distinct query parameters.
	// Canonical pages on the target sites rarely carry more than two.
	DefaultMaxQueryParams = 2

	// DefaultMaxPagesPerSubdomain is a per-run soft cap on pages accepted
	// from a single host. It is an anti-runaway guard, not a correctness
	// count, and resets on restart.
	DefaultMaxPagesPerSubdomain = 2000

	// DefaultCheckpointInterval is how many newly-unique pages may accumulate
	// between analytics snapshots. Bounds data loss on crash without paying
	// for a write on every page.
	DefaultCheckpointInterval = 100

	// DefaultTargetSuffix restricts subdomain analytics to the academic
	// domain the crawl is scoped to.
	DefaultTargetSuffix = ".uci.edu"

	// DefaultSnapshotFile is the analytics snapshot file name.
	DefaultSnapshotFile = "analytics.json"

	// DefaultReportFile is the rendered report artifact.
	DefaultReportFile = "REPORT.txt"

	// DefaultPoliteness is the minimum delay between requests the host
	// crawler must honor. Enforced by the preflight checker, not here.
	DefaultPoliteness = 500 * time.Millisecond

	// AppName is the application name used for XDG directory paths.
	AppName = "scopecrawl"
)

// DefaultAllowedDomains lists the domain suffixes a candidate URL's host must
// end with to be in scope. Exact suffix match; www and department subdomains
// all qualify.
func DefaultAllowedDomains() []string {
	return []string{
		"ics.uci.edu",
		"cs.uci.edu",
		"informatics.uci.edu",
		"stat.uci.edu",
	}
}

// Config holds all tunable knobs for the scope and analytics layer.
// It is populated from defaults (and optionally CLI flags) and passed by
// value into the classifier, filter, and extractor rather than read from
// global state.
//
// Design decision: one flat struct rather than nested sub-configs. The knob
// count is small and every consumer needs only a handful of fields.
type Config struct {
	// AllowedDomains are the host suffixes considered in scope.
	AllowedDomains []string

	// TargetSuffix scopes the per-subdomain analytics counters.
	TargetSuffix string

	// MaxBodySize is the largest response body the extractor will parse.
	MaxBodySize int64

	// MinWordCount is the low-information rejection threshold.
	MinWordCount int

	// MaxLinkDensity is the navigation-page rejection threshold.
	MaxLinkDensity float64

	// MaxURLLength rejects candidate URLs longer than this.
	MaxURLLength int

	// MaxPathDepth rejects candidate URLs with more path segments than this.
	MaxPathDepth int

	// SegmentRepeatLimit rejects URLs whose path repeats a segment this often.
	SegmentRepeatLimit int

	// MaxQueryParams rejects URLs with more distinct query parameters.
	MaxQueryParams int

	// MaxPagesPerSubdomain is the per-run acceptance cap per host.
	MaxPagesPerSubdomain int

	// CheckpointInterval is the unique-page period between snapshot saves.
	CheckpointInterval int

	// SnapshotPath is the analytics snapshot file location.
	SnapshotPath string

	// ReportPath is the rendered report artifact location.
	ReportPath string

	// PageLogDir is the directory for the sqlite page log.
	// Empty disables page logging.
	PageLogDir string

	// Verbose enables slog.LevelDebug output.
	Verbose bool
}

// NewConfig creates a Config with default values. Several defaults are
// non-zero, so relying on zero values would be wrong; this constructor also
// documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		AllowedDomains:       DefaultAllowedDomains(),
		TargetSuffix:         DefaultTargetSuffix,
		MaxBodySize:          DefaultMaxBodySize,
		MinWordCount:         DefaultMinWordCount,
		MaxLinkDensity:       DefaultMaxLinkDensity,
		MaxURLLength:         DefaultMaxURLLength,
		MaxPathDepth:         DefaultMaxPathDepth,
		SegmentRepeatLimit:   DefaultSegmentRepeatLimit,
		MaxQueryParams:       DefaultMaxQueryParams,
		MaxPagesPerSubdomain: DefaultMaxPagesPerSubdomain,
		CheckpointInterval:   DefaultCheckpointInterval,
		SnapshotPath:         DefaultSnapshotFile,
		ReportPath:           DefaultReportFile,
	}
}

// XDGDataDir returns the XDG data directory for scopecrawl.
// On Linux: ~/.local/share/scopecrawl
// On macOS: ~/Library/Application Support/scopecrawl
// On Windows: %LOCALAPPDATA%\scopecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for scopecrawl.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first sentinel error
// found. Called once after flag parsing, before any page is processed, so
// bad settings fail fast with a clear message instead of misclassifying the
// whole crawl.
func (c *Config) Validate() error {
	if len(c.AllowedDomains) == 0 {
		return ErrNoAllowedDomains
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if c.MinWordCount <= 0 {
		return ErrInvalidMinWordCount
	}
	if c.MaxLinkDensity <= 0 {
		return ErrInvalidLinkDensity
	}
	if c.SegmentRepeatLimit < 2 {
		return ErrInvalidSegmentRepeat
	}
	if c.MaxPagesPerSubdomain <= 0 {
		return ErrInvalidSubdomainCap
	}
	if c.CheckpointInterval <= 0 {
		return ErrInvalidCheckpointInterval
	}
	return nil
}
