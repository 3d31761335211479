package scope

import (
	"net/url"
	"regexp"
	"strings"
)

// target is the pre-parsed view of a candidate URL that rules match against.
// Parsing once and sharing the result keeps the chain cheap even with twenty
// rules per URL.
type target struct {
	raw      string
	url      *url.URL
	host     string
	path     string
	segments []string
	query    url.Values
	rawQuery string
}

// newTarget parses a candidate URL into a rule target.
func newTarget(raw string) (*target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	segments := make([]string, 0, 8)
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return &target{
		raw:      raw,
		url:      u,
		host:     strings.ToLower(u.Hostname()),
		path:     strings.ToLower(u.Path),
		segments: segments,
		query:    u.Query(),
		rawQuery: u.RawQuery,
	}, nil
}

// rule is a single named rejection predicate. Reject returns true when the
// URL should be dropped.
type rule struct {
	name   string
	reject func(*target) bool
}

// Path patterns known to generate unbounded near-duplicate URL spaces on the
// target sites. Each survived at least one runaway crawl before earning its
// place here.
var (
	// /2024-05-01 and /2024/05/01 style date paths.
	datePathRegexp = regexp.MustCompile(`/\d{4}[-/]\d{2}[-/]\d{2}`)

	// Bare year folders, mostly archive listings.
	yearPathRegexp = regexp.MustCompile(`/\d{4}/`)

	// Quarter archives: /spring-2024, /fall2023, /quarter-2022.
	seasonalRegexp = regexp.MustCompile(`(?i)/(spring|fall|winter|summer|quarter)-?\d{4}`)

	// Calendar navigation: /events/day/, /calendar/month/, ...
	calendarNavRegexp = regexp.MustCompile(`(?i)/(events?|calendar)/(day|list|month|week|category)/`)

	// DokuWiki media fetch script.
	wikiFetchRegexp = regexp.MustCompile(`/lib/exe/fetch\.php`)

	// Numbered pagination.
	paginationRegexp = regexp.MustCompile(`(?i)/page/\d+`)

	// User ID enumeration.
	userEnumRegexp = regexp.MustCompile(`(?i)/(author|user|profile|member|uid)/\d+`)

	// Versioned API endpoints.
	apiVersionRegexp = regexp.MustCompile(`(?i)/(api|rest|endpoint|service)/v?\d+`)

	// Per-item gallery and media pages.
	galleryItemRegexp = regexp.MustCompile(`(?i)/(gallery|photo|image|media)/\w+/\d+`)

	// Binary, media, document, and archive extensions. Matched against the
	// lower-cased path, anchored at the end, so query strings don't hide
	// them.
	extensionRegexp = regexp.MustCompile(`\.(css|js|bmp|gif|jpe?g|ico` +
		`|png|tiff?|mid|mp2|mp3|mp4` +
		`|wav|avi|mov|mpeg|ram|m4v|mkv|ogg|ogv|pdf` +
		`|ps|eps|tex|ppt|pptx|doc|docx|xls|xlsx|names` +
		`|data|dat|exe|bz2|tar|msi|bin|7z|psd|dmg|iso` +
		`|epub|dll|cnf|tgz|sha1` +
		`|thmx|mso|arff|rtf|jar|csv` +
		`|rm|smil|wmv|swf|wma|zip|rar|gz)$`)
)

// rawQueryTraps are substrings of the raw query string that mark calendar
// exports, searches, media viewers, and version/anchor parameters. Matched
// on the raw string, not parsed keys, so values like do=media are caught
// regardless of parameter position.
var rawQueryTraps = []string{
	"do=media",
	"tribe-bar-date",
	"ical=",
	"outlook-ical=",
	"q=",
	"search=",
	"query=",
	"v=",
	"version=",
	"timestamp=",
	"time=",
	"section=",
	"anchor=",
}

// uiStateTokens are substrings of query parameter names that carry UI state
// rather than identify content. Any parameter whose name contains one of
// these marks the URL as a near-duplicate of its canonical form.
var uiStateTokens = []string{
	"tab", "view", "mode", "do", "action", "sort",
	"filter", "page", "display", "show", "format",
}

// trapParams are query parameter names associated with calendars, sharing,
// printing, comment threading, and pagination offsets. Exact name match.
var trapParams = []string{
	"date", "cal", "calendar", "share", "replytocom", "print",
	"offset", "month", "year", "day", "replyto", "reply",
	"comment", "commentid", "mobile", "device",
}

// trapPathParts are path substrings that mark whole URL families as traps.
var trapPathParts = []string{
	"/calendar/",
	"/wp-json/",
	"/feed/",
	"/print/",
	"/download/",
	"/wp-content/uploads/",
}
