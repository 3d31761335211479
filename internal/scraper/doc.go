// Package scraper extracts in-scope links from fetched pages.
//
// The scraper is the seam between the host crawl runtime and the scope
// layer. The host fetches pages and respects politeness; the scraper
// decides which pages carry real content, records analytics for accepted
// pages, and returns the defragmented, classifier-approved links found on
// the page. It never performs network I/O itself.
package scraper
