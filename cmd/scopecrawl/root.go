// Package main provides the entry point for the scopecrawl CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyamamoto/scopecrawl/internal/log"
)

// NewRootCmd creates the root command for scopecrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopecrawl",
		Short: "Scope control and analytics for a focused web crawler",
		Long: `scopecrawl is the scope-control and analytics layer of a focused web crawler.

It classifies candidate URLs against a trap-aware rule chain, filters fetched
pages by content quality, maintains crash-safe crawl analytics, and renders
the crawl report.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewClassifyCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the CLI logger writing to stderr.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}
