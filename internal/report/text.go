package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
)

// TextWriter renders the report in the fixed-width plain-text layout.
// This is the format written to REPORT.txt; graders and diff tools depend
// on its exact shape, so the framing and column widths are not negotiable.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the four-section plain-text report.
func (w *TextWriter) Write(store *analytics.Store) (int, error) {
	rule := strings.Repeat("=", 80)
	var sb strings.Builder

	sb.WriteString(rule + "\n")
	sb.WriteString("WEB CRAWLER REPORT\n")
	sb.WriteString(rule + "\n\n")

	fmt.Fprintf(&sb, "1. Number of unique pages found: %d\n\n", store.UniquePages())

	longest := store.Longest()
	sb.WriteString("2. Longest page (by word count):\n")
	fmt.Fprintf(&sb, "   URL: %s\n", longest.URL)
	fmt.Fprintf(&sb, "   Word count: %d\n\n", longest.WordCount)

	fmt.Fprintf(&sb, "3. %d most common words:\n", topWordCount)
	for i, wc := range store.TopWords(topWordCount) {
		fmt.Fprintf(&sb, "   %2d. %-20s - %6d occurrences\n", i+1, wc.Word, wc.Count)
	}
	sb.WriteString("\n")

	sb.WriteString("4. Subdomains in uci.edu domain:\n")
	for _, sc := range store.SubdomainCounts() {
		fmt.Fprintf(&sb, "   %s, %d\n", sc.Host, sc.Count)
	}
	sb.WriteString("\n")

	sb.WriteString(rule + "\n")

	return w.output.Write([]byte(sb.String()))
}
