package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kyamamoto/scopecrawl/internal/analytics"
	"github.com/kyamamoto/scopecrawl/internal/config"
	"github.com/kyamamoto/scopecrawl/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the crawl report from the analytics snapshot",
		Long: `Report loads the analytics snapshot, re-saves it, and renders the crawl
report to stdout and to a report file.

The default plain-text format answers the four standing questions: unique
page count, longest page, most common words, and per-subdomain counts.

Examples:
  # Render REPORT.txt from ./analytics.json
  scopecrawl report

  # Render Markdown instead of plain text
  scopecrawl report --markdown -o REPORT.md

  # Use a snapshot from another crawl workspace
  scopecrawl report -s /data/crawl7/analytics.json`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("snapshot", "s", config.DefaultSnapshotFile,
		"Path to the analytics snapshot file")
	cmd.Flags().BoolP("markdown", "m", false,
		"Render Markdown instead of plain text")
	cmd.Flags().StringP("output", "o", "",
		"Report file path (default REPORT.txt, or REPORT.md with --markdown)")
	cmd.Flags().Bool("stdout-only", false,
		"Print the report without writing a file")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	snapshotPath, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return err
	}
	useMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	stdoutOnly, err := cmd.Flags().GetBool("stdout-only")
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	store := analytics.NewStore(snapshotPath, cfg.TargetSuffix)
	if err := store.Load(); err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = config.DefaultReportFile
		if useMarkdown {
			outputPath = "REPORT.md"
		}
	}

	newWriter := func(w io.Writer) report.Writer { return report.NewTextWriter(w) }
	if useMarkdown {
		newWriter = func(w io.Writer) report.Writer { return report.NewMarkdownWriter(w) }
	}

	// The file rendition goes through a buffer so a render failure never
	// leaves a half-written report behind.
	var buf bytes.Buffer
	writers := []report.Writer{newWriter(cmd.OutOrStdout())}
	if !stdoutOnly {
		writers = append(writers, newWriter(&buf))
	}

	if err := report.Generate(store, writers...); err != nil {
		return err
	}

	if !stdoutOnly {
		if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		if err := os.WriteFile(outputPath, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", outputPath)
	}
	return nil
}
