// Package database provides SQLite-backed storage for the page log.
//
// The page log is a durable audit trail of every page the scraper accepted:
// URL, host, content hash, and filtered word count. It exists alongside the
// JSON analytics snapshot, not instead of it. The snapshot answers the
// report's aggregate questions; the page log answers "what exactly did we
// accept, and when", which the snapshot's set semantics cannot.
package database
