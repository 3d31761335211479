package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate and by the settings checker.
//
// Design decision: package-level sentinel errors rather than ad hoc
// errors.New calls inside Validate, so callers can use errors.Is while the
// messages stay human-readable.
var (
	// ErrNoAllowedDomains is returned when the domain allow-list is empty.
	// An empty allow-list would classify every URL as out of scope.
	ErrNoAllowedDomains = errors.New("no allowed domains: the classifier needs at least one in-scope domain suffix")

	// ErrInvalidMaxBodySize is returned when the body size cap is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrInvalidMinWordCount is returned when the low-information threshold
	// is not positive. Zero would accept empty pages into the analytics.
	ErrInvalidMinWordCount = errors.New("invalid minimum word count: must be positive")

	// ErrInvalidLinkDensity is returned when the link-density ceiling is not
	// positive. Zero would reject every page that carries a single link.
	ErrInvalidLinkDensity = errors.New("invalid link density threshold: must be positive")

	// ErrInvalidSegmentRepeat is returned when the repetition limit is below
	// two; a limit of one would reject every URL with a path.
	ErrInvalidSegmentRepeat = errors.New("invalid segment repeat limit: must be at least 2")

	// ErrInvalidSubdomainCap is returned when the per-subdomain page cap is
	// not positive.
	ErrInvalidSubdomainCap = errors.New("invalid subdomain page cap: must be positive")

	// ErrInvalidCheckpointInterval is returned when the snapshot interval is
	// not positive. Use 1 to checkpoint on every unique page.
	ErrInvalidCheckpointInterval = errors.New("invalid checkpoint interval: must be positive")
)
