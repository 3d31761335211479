package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
)

// MarkdownWriter renders the report in Markdown, for sharing the crawl
// results outside the terminal.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// printer formats counts with thousands separators; a report full of
	// six and seven digit word counts is unreadable without them.
	printer *message.Printer

	// now is replaceable in tests.
	now func() time.Time
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
		now:        time.Now,
	}
}

// Write renders the analytics as a Markdown document.
func (w *MarkdownWriter) Write(store *analytics.Store) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, store)
	w.writeTopWords(md, store)
	w.writeSubdomains(md, store)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the crawl summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, store *analytics.Store) {
	md.H1("Web Crawler Report")
	md.PlainText("")

	longest := store.Longest()
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", w.now().Format("2006-01-02 15:04:05 MST")},
			{"Unique pages", w.printer.Sprintf("%d", store.UniquePages())},
			{"Longest page", "`" + longest.URL + "`"},
			{"Longest page words", w.printer.Sprintf("%d", longest.WordCount)},
		},
	})
	md.PlainText("")

	if store.UniquePages() == 0 {
		md.Note("No pages have been accepted yet.")
		md.PlainText("")
	}
}

// writeTopWords writes the global word histogram section.
func (w *MarkdownWriter) writeTopWords(md *markdown.Markdown, store *analytics.Store) {
	md.H2("Most Common Words")
	md.PlainText("")

	top := store.TopWords(topWordCount)
	if len(top) == 0 {
		md.PlainText("No words recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(top))
	for i, wc := range top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			wc.Word,
			w.printer.Sprintf("%d", wc.Count),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Word", "Occurrences"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSubdomains writes the per-subdomain page counts.
func (w *MarkdownWriter) writeSubdomains(md *markdown.Markdown, store *analytics.Store) {
	md.H2("Subdomains")
	md.PlainText("")

	counts := store.SubdomainCounts()
	if len(counts) == 0 {
		md.PlainText("No subdomains recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(counts))
	for _, sc := range counts {
		rows = append(rows, []string{
			"`" + sc.Host + "`",
			w.printer.Sprintf("%d", sc.Count),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Subdomain", "Pages"},
		Rows:   rows,
	})
	md.PlainText("")
}
