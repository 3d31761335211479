package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kyamamoto/scopecrawl/internal/config"
	"github.com/kyamamoto/scopecrawl/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List pages recorded in the page log",
		Long: `History reads the SQLite page log and lists the most recently accepted
pages, or per-host totals with --by-host.

The page log exists only when the extractor runs with one configured; a
crawl without a page log has nothing to show here.

Examples:
  # Show the 20 most recent acceptances
  scopecrawl history

  # Show 100 entries from a specific data directory
  scopecrawl history -n 100 --data-dir /data/crawl7

  # Per-host totals
  scopecrawl history --by-host`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("data-dir", config.XDGDataDir(),
		"Directory containing the page log database")
	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of entries to show")
	cmd.Flags().Bool("by-host", false,
		"Show per-host page totals instead of recent pages")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	byHost, err := cmd.Flags().GetBool("by-host")
	if err != nil {
		return err
	}

	pageLog, err := database.Open(dataDir, database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return err
	}
	defer pageLog.Close() //nolint:errcheck // read-only usage

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if byHost {
		counts, err := pageLog.CountByHost(ctx)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Fprintln(out, "Page log is empty.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "HOST\tPAGES")
		for _, hc := range counts {
			fmt.Fprintf(w, "%s\t%d\n", hc.Host, hc.Count)
		}
		return w.Flush()
	}

	total, err := pageLog.Count(ctx)
	if err != nil {
		return err
	}
	records, err := pageLog.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "Page log is empty.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "CRAWLED\tWORDS\tURL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			r.CrawledAt.Format("2006-01-02 15:04:05"), r.WordCount, r.URL)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d recorded pages\n", len(records), total)
	return nil
}
