// Package report renders the crawl analytics as human-readable reports.
//
// Two formats are supported: the plain-text layout written to REPORT.txt
// and a Markdown rendition for sharing. Both read from the analytics store
// through the same Writer interface, and a MultiWriter fans one snapshot
// out to several destinations at once.
package report
