package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// PageLogFile is the database file name inside the data directory.
const PageLogFile = "scopecrawl.db"

// PageLog provides SQLite-based storage for accepted-page records.
//
// Design decision: We use a single database file per crawl workspace rather
// than one per host. Cross-host queries (the history command groups by
// host) stay simple, and backup is a single file copy.
type PageLog struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures PageLog behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default page log options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a PageLog in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// Otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*PageLog, error) {
	dbPath := filepath.Join(dbDir, PageLogFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("page log not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check page log path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw refuses to create a
	// new file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open page log: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	p := &PageLog{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := p.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return p, nil
}

// Close closes the database connection.
func (p *PageLog) Close() error {
	return p.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (p *PageLog) createTables() error {
	schema := `
	-- Pages stores one row per accepted (defragmented) URL.
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		host TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		content_hash TEXT,
		crawled_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pages_host ON pages(host);
	CREATE INDEX IF NOT EXISTS idx_pages_crawled_at ON pages(crawled_at);
	`

	_, err := p.db.ExecContext(context.Background(), schema)
	return err
}

// PageRecord represents a stored accepted page.
type PageRecord struct {
	ID          int64
	URL         string
	Host        string
	WordCount   int
	ContentHash string
	CrawledAt   time.Time
}

// Insert inserts or refreshes the record for an accepted page.
// Re-crawling the same URL updates the existing row in place.
//
// The signature carries no context because the scrape path that feeds it
// has none; page log writes are small and local.
func (p *PageLog) Insert(pageURL, host, contentHash string, wordCount int) error {
	query := `
	INSERT INTO pages (url, host, word_count, content_hash)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(url) DO UPDATE SET
		host = excluded.host,
		word_count = excluded.word_count,
		content_hash = excluded.content_hash,
		crawled_at = CURRENT_TIMESTAMP
	`

	if _, err := p.db.ExecContext(context.Background(), query,
		pageURL, host, wordCount, contentHash); err != nil {
		return fmt.Errorf("failed to insert page record: %w", err)
	}
	return nil
}

// Get retrieves the record for a URL. A missing URL returns (nil, nil).
func (p *PageLog) Get(ctx context.Context, pageURL string) (*PageRecord, error) {
	query := `
	SELECT id, url, host, word_count, content_hash, crawled_at
	FROM pages
	WHERE url = ?
	`

	var record PageRecord
	var hash sql.NullString
	var crawledAt string

	err := p.db.QueryRowContext(ctx, query, pageURL).Scan(
		&record.ID,
		&record.URL,
		&record.Host,
		&record.WordCount,
		&hash,
		&crawledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page record: %w", err)
	}

	record.ContentHash = hash.String
	record.CrawledAt = parseTimestamp(crawledAt)
	return &record, nil
}

// Count returns the number of recorded pages.
func (p *PageLog) Count(ctx context.Context) (int, error) {
	var count int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// Recent returns the most recently accepted pages, newest first.
func (p *PageLog) Recent(ctx context.Context, limit int) ([]PageRecord, error) {
	query := `
	SELECT id, url, host, word_count, content_hash, crawled_at
	FROM pages
	ORDER BY crawled_at DESC, id DESC
	LIMIT ?
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent pages: %w", err)
	}
	defer rows.Close()

	var results []PageRecord
	for rows.Next() {
		var record PageRecord
		var hash sql.NullString
		var crawledAt string

		if err := rows.Scan(
			&record.ID,
			&record.URL,
			&record.Host,
			&record.WordCount,
			&hash,
			&crawledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page record: %w", err)
		}

		record.ContentHash = hash.String
		record.CrawledAt = parseTimestamp(crawledAt)
		results = append(results, record)
	}

	return results, rows.Err()
}

// HostCount is the number of recorded pages for one host.
type HostCount struct {
	Host  string
	Count int
}

// CountByHost returns per-host page counts in lexicographic host order.
func (p *PageLog) CountByHost(ctx context.Context) ([]HostCount, error) {
	query := `
	SELECT host, COUNT(*) FROM pages
	GROUP BY host
	ORDER BY host
	`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages by host: %w", err)
	}
	defer rows.Close()

	var results []HostCount
	for rows.Next() {
		var hc HostCount
		if err := rows.Scan(&hc.Host, &hc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan host count: %w", err)
		}
		results = append(results, hc)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different shapes depending on
// configuration; an unrecognized value yields the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
