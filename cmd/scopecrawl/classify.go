package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kyamamoto/scopecrawl/internal/config"
	"github.com/kyamamoto/scopecrawl/internal/pipeline"
	"github.com/kyamamoto/scopecrawl/internal/scope"
)

// NewClassifyCmd creates the classify command.
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [url]...",
		Short: "Run the scope rule chain over candidate URLs",
		Long: `Classify runs each candidate URL through the scope rule chain and prints
the verdict together with the name of the first rejecting rule.

This is the tool for tuning the trap list: feed it a frontier dump and see
exactly which rule eats which URL.

Examples:
  # Classify URLs given as arguments
  scopecrawl classify https://www.ics.uci.edu/about https://www.ics.uci.edu/events/2019-10-01

  # Classify a file of URLs, one per line
  scopecrawl classify -f frontier.txt

  # Only print rejections
  scopecrawl classify -f frontier.txt --rejected`,
		Args: cobra.ArbitraryArgs,
		RunE: runClassifyCmd,
	}

	cmd.Flags().StringP("file", "f", "",
		"Read candidate URLs from a file, one per line")
	cmd.Flags().IntP("jobs", "j", 0,
		"Number of concurrent classifications (default 10)")
	cmd.Flags().Bool("rejected", false,
		"Only print rejected URLs")

	return cmd
}

// runClassifyCmd executes the classify command.
func runClassifyCmd(cmd *cobra.Command, args []string) error {
	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	rejectedOnly, err := cmd.Flags().GetBool("rejected")
	if err != nil {
		return err
	}

	urls := append([]string{}, args...)
	if filePath != "" {
		fromFile, err := readURLFile(filePath)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs to classify; pass them as arguments or via --file")
	}

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	batch := pipeline.NewBatchClassifier(
		scope.NewClassifier(cfg),
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(jobs),
	)

	results, err := batch.Classify(ctx, urls)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rejected := 0
	for _, r := range results {
		if r.Valid {
			if !rejectedOnly {
				fmt.Fprintf(out, "valid   %-22s %s\n", "", r.URL)
			}
			continue
		}
		rejected++
		fmt.Fprintf(out, "reject  %-22s %s\n", r.Rule, r.URL)
	}
	fmt.Fprintf(out, "\n%d URLs, %d valid, %d rejected\n",
		len(results), len(results)-rejected, rejected)

	return nil
}

// readURLFile reads candidate URLs from a file, one per line. Blank lines
// and #-comments are skipped.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided URL list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}
