package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Expected values for the preflight settings check. These match the course
// infrastructure the host crawler runs against.
const (
	// ExpectedHost is the cache server the crawler must fetch through.
	ExpectedHost = "styx.ics.uci.edu"

	// ExpectedPort is the cache server port.
	ExpectedPort = 9000

	// CourseTag is the prefix the user agent must carry.
	CourseTag = "IR UW26"
)

// ExpectedSeeds returns the seed URLs the crawl is expected to start from.
func ExpectedSeeds() []string {
	return []string{
		"https://www.ics.uci.edu",
		"https://www.cs.uci.edu",
		"https://www.informatics.uci.edu",
		"https://www.stat.uci.edu",
	}
}

var digitRegexp = regexp.MustCompile(`\d+`)

// CheckResult holds the outcome of a preflight settings check.
// Errors must be fixed before a run; warnings should be reviewed.
type CheckResult struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the settings passed without errors.
func (r *CheckResult) OK() bool {
	return len(r.Errors) == 0
}

// Check validates crawler settings against the course requirements.
// It mirrors the manual checklist run before every crawl: identification,
// connection endpoint, seeds, and politeness.
func Check(s *Settings) *CheckResult {
	result := &CheckResult{}

	ua := strings.TrimSpace(s.UserAgent)
	switch {
	case ua == "" || ua == PlaceholderUserAgent:
		result.Errors = append(result.Errors,
			fmt.Sprintf("useragent is still the placeholder; set it to %q followed by your student IDs", CourseTag))
	case !strings.Contains(ua, CourseTag):
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("useragent should start with %q", CourseTag))
	case !digitRegexp.MatchString(ua):
		result.Warnings = append(result.Warnings,
			"useragent should contain student IDs (numbers)")
	}

	if s.Host != ExpectedHost {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("host is %q, expected %q", s.Host, ExpectedHost))
	}
	if s.Port != ExpectedPort {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("port is %d, expected %d", s.Port, ExpectedPort))
	}

	seeds := make(map[string]bool, len(s.Seeds))
	for _, seed := range s.Seeds {
		seeds[strings.TrimRight(strings.TrimSpace(seed), "/")] = true
	}
	for _, expected := range ExpectedSeeds() {
		if !seeds[expected] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("missing seed URL: %s", expected))
		}
	}

	if time.Duration(s.Politeness) < DefaultPoliteness {
		result.Errors = append(result.Errors,
			fmt.Sprintf("politeness is %s, must be at least %s",
				time.Duration(s.Politeness), DefaultPoliteness))
	}

	if s.Workers > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("workers is %d; the analytics store is single-owner, make sure external locking is in place", s.Workers))
	}

	return result
}
