// Package log provides crawl-aware logging built on the standard slog
// package.
//
// Crawler logs are dominated by URLs, and the URLs worth logging are the
// pathological ones: kilobyte-long calendar links, repeated path segments,
// runaway query strings. The TruncateHandler shortens oversized URL-like
// attribute values before they reach the underlying handler, so a single
// trap URL cannot turn a log line into a wall of text.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("rejecting page", "url", longTrapURL, "reason", "link-density")
package log
