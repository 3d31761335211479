// Package main provides the entry point for the scopecrawl CLI.
//
// scopecrawl is the scope-control and analytics layer of a focused web
// crawler: it decides which discovered URLs are worth fetching, which
// fetched pages are worth counting, and renders the crawl report.
//
// Usage:
//
//	scopecrawl report
//	scopecrawl classify <url>...
//	scopecrawl check
//
// See --help for all available options.
package main

// main is the entry point for scopecrawl.
func main() {
	Execute()
}
