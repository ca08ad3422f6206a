package cmd

import (
	"fmt"

	"github.com/astutesource/reporover/internal/classroom"
	"github.com/spf13/cobra"
)

var (
	detailsUsernames []string
	detailsOutput    string
	detailsFormat    string
)

var detailsCmd = &cobra.Command{
	Use:   "details <organization> <repo-prefix> <roster.json>",
	Short: "Collect commit-detail reports from student repositories",
	Long: `Collect the full commit history of each student's repository,
including changed files, line counts, diffs, and the build status of the
matching GitHub Actions run, and write one report file.

Examples:
  reporover details acme hw1 roster.json
  reporover details acme hw1 roster.json --format csv --output ./reports`,
	Args: cobra.ExactArgs(3),
	RunE: runDetails,
}

func init() {
	detailsCmd.Flags().StringSliceVar(&detailsUsernames, "username", nil,
		"restrict to these roster usernames (can be specified multiple times)")
	detailsCmd.Flags().StringVar(&detailsOutput, "output", ".",
		"directory the report file is written to")
	detailsCmd.Flags().StringVar(&detailsFormat, "format", classroom.FormatJSON,
		"report format: json or csv")

	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	if detailsFormat != classroom.FormatJSON && detailsFormat != classroom.FormatCSV {
		return fmt.Errorf("invalid format %q (expected json or csv)", detailsFormat)
	}

	runner, selected, err := newRunner(cmd, args[0], args[1], args[2], detailsUsernames)
	if err != nil {
		return err
	}
	return runner.Details(ctx, selected, detailsOutput, detailsFormat)
}
