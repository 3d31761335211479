// Package scope decides which candidate URLs are worth ever fetching.
//
// # Architecture
//
// The Classifier evaluates an ordered chain of named rejection rules over a
// parsed URL. The first matching rule wins and its name is reported by
// Explain, so every heuristic in the trap list is independently testable and
// tunable without string-matching log output.
//
// The rule chain encodes accumulated defenses against infinite-crawl traps
// on the target sites: calendars, pagination, faceted search, session and
// view parameters, wiki revision history, and media galleries. Cheap
// structural checks (scheme, domain, repetition, length) run before the
// regex-heavy pattern checks so obviously out-of-scope URLs are rejected
// fastest.
//
// A URL that fails to parse is classified as invalid rather than returned as
// an error: the crawler must keep making forward progress despite a noisy
// link graph.
package scope
