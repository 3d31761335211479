package report

import (
	"fmt"
	"io"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
)

// topWordCount is how many entries of the global word histogram the report
// includes.
const topWordCount = 50

// Writer defines the interface for report output.
// Implementations render the analytics in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or both with
// the same API.
type Writer interface {
	// Write renders the report from the given analytics store.
	// Returns the number of bytes written and any error encountered.
	Write(store *analytics.Store) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface renders reports,
// not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(store *analytics.Store) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(store)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Generate saves the analytics snapshot and then renders it through the
// given writers. Saving first guarantees the file on disk is never staler
// than the report a reader is looking at.
func Generate(store *analytics.Store, writers ...Writer) error {
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save analytics before reporting: %w", err)
	}

	if _, err := NewMultiWriter(writers...).Write(store); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
