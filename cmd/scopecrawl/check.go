package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyamamoto/scopecrawl/internal/config"
)

// errCheckFailed is returned when the preflight check finds errors.
var errCheckFailed = errors.New("settings check failed")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the crawler settings before a run",
		Long: `Check validates the crawler settings file against the course requirements:
identification (user agent with course tag and student IDs), the cache
server endpoint, the four seed URLs, and the politeness delay.

Errors must be fixed before crawling; warnings should be reviewed. The
command exits non-zero when errors are present.

Examples:
  # Check .scopecrawl in the current or home directory
  scopecrawl check

  # Check a specific settings file
  scopecrawl check -c configs/crawl.yaml`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Settings file path (default: .scopecrawl in current or home directory)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	flagPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	path := config.FindSettingsFile(flagPath)
	if path == "" {
		if flagPath != "" {
			return fmt.Errorf("settings file not found: %s", flagPath)
		}
		return fmt.Errorf("no %s settings file found in the current or home directory", config.DefaultSettingsFile)
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return fmt.Errorf("failed to load settings from %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Checking %s\n\n", path)

	result := config.Check(settings)
	for _, e := range result.Errors {
		fmt.Fprintf(out, "ERROR:   %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "WARNING: %s\n", w)
	}

	switch {
	case !result.OK():
		fmt.Fprintf(out, "\n%d error(s), %d warning(s). Fix the errors before crawling.\n",
			len(result.Errors), len(result.Warnings))
		return errCheckFailed
	case len(result.Warnings) > 0:
		fmt.Fprintf(out, "\nNo errors, %d warning(s).\n", len(result.Warnings))
	default:
		fmt.Fprintln(out, "All checks passed.")
	}
	return nil
}
