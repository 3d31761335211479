package scope

import (
	"strings"

	"github.com/kyamamoto/scopecrawl/internal/config"
)

// RuleUnparseable is the rule name reported for URLs that fail to parse.
const RuleUnparseable = "unparseable"

// Classifier is the pure accept/reject predicate over candidate URLs.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the ordered rule chain from the given configuration.
//
// Rule order matters twice over: it makes classification deterministic
// (first match wins) and it puts the cheap structural checks ahead of the
// regex scans.
func NewClassifier(cfg *config.Config) *Classifier {
	allowed := make([]string, len(cfg.AllowedDomains))
	for i, d := range cfg.AllowedDomains {
		allowed[i] = strings.ToLower(d)
	}

	rules := []rule{
		{
			name: "scheme",
			reject: func(t *target) bool {
				return t.url.Scheme != "http" && t.url.Scheme != "https"
			},
		},
		{
			name: "domain",
			reject: func(t *target) bool {
				for _, domain := range allowed {
					if strings.HasSuffix(t.host, domain) {
						return false
					}
				}
				return true
			},
		},
		{
			name: "repeated-segment",
			reject: func(t *target) bool {
				counts := make(map[string]int, len(t.segments))
				for _, seg := range t.segments {
					counts[seg]++
					if counts[seg] >= cfg.SegmentRepeatLimit {
						return true
					}
				}
				return false
			},
		},
		{
			name: "path-depth",
			reject: func(t *target) bool {
				return len(t.segments) > cfg.MaxPathDepth
			},
		},
		{
			name: "url-length",
			reject: func(t *target) bool {
				return len(t.raw) > cfg.MaxURLLength
			},
		},
		{
			name: "date-path",
			reject: func(t *target) bool {
				return datePathRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "year-path",
			reject: func(t *target) bool {
				return yearPathRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "seasonal-archive",
			reject: func(t *target) bool {
				return seasonalRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "calendar-navigation",
			reject: func(t *target) bool {
				return calendarNavRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "wiki-revision",
			reject: func(t *target) bool {
				return strings.Contains(t.host, "wiki") && strings.Contains(t.rawQuery, "rev=")
			},
		},
		{
			name: "wiki-fetch",
			reject: func(t *target) bool {
				return wikiFetchRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "pagination",
			reject: func(t *target) bool {
				return paginationRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "user-enumeration",
			reject: func(t *target) bool {
				return userEnumRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "api-endpoint",
			reject: func(t *target) bool {
				return apiVersionRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "gallery-item",
			reject: func(t *target) bool {
				return galleryItemRegexp.MatchString(t.url.Path)
			},
		},
		{
			name: "query-traps",
			reject: func(t *target) bool {
				for _, trap := range rawQueryTraps {
					if strings.Contains(t.rawQuery, trap) {
						return true
					}
				}
				return false
			},
		},
		{
			name: "ui-state-param",
			reject: func(t *target) bool {
				for key := range t.query {
					lower := strings.ToLower(key)
					for _, token := range uiStateTokens {
						if strings.Contains(lower, token) {
							return true
						}
					}
				}
				return false
			},
		},
		{
			name: "trap-param",
			reject: func(t *target) bool {
				for _, param := range trapParams {
					if t.query.Has(param) {
						return true
					}
				}
				return false
			},
		},
		{
			name: "param-count",
			reject: func(t *target) bool {
				return len(t.query) > cfg.MaxQueryParams
			},
		},
		{
			name: "trap-path",
			reject: func(t *target) bool {
				for _, part := range trapPathParts {
					if strings.Contains(t.path, part) {
						return true
					}
				}
				return false
			},
		},
		{
			name: "extension",
			reject: func(t *target) bool {
				return extensionRegexp.MatchString(t.path)
			},
		},
	}

	return &Classifier{rules: rules}
}

// IsValid reports whether a candidate URL is worth ever fetching.
// It never returns an error and never panics on malformed input; a URL that
// cannot be parsed is simply not valid.
func (c *Classifier) IsValid(raw string) bool {
	valid, _ := c.Explain(raw)
	return valid
}

// Explain classifies a candidate URL and, when rejected, names the rule that
// rejected it. The name is stable and suitable for metrics and tests.
func (c *Classifier) Explain(raw string) (bool, string) {
	t, err := newTarget(raw)
	if err != nil {
		return false, RuleUnparseable
	}

	for _, r := range c.rules {
		if r.reject(t) {
			return false, r.name
		}
	}
	return true, ""
}

// RuleNames returns the rule names in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}
