package cmd

import (
	"github.com/spf13/cobra"
)

var statusUsernames []string

var statusCmd = &cobra.Command{
	Use:   "status <organization> <repo-prefix> <roster.json>",
	Short: "Report the latest GitHub Actions run for student repositories",
	Long: `Report the status and conclusion of the most recent GitHub Actions
workflow run in each student's repository.

Example:
  reporover status acme hw1 roster.json`,
	Args: cobra.ExactArgs(3),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringSliceVar(&statusUsernames, "username", nil,
		"restrict to these roster usernames (can be specified multiple times)")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	runner, selected, err := newRunner(cmd, args[0], args[1], args[2], statusUsernames)
	if err != nil {
		return err
	}
	return runner.Status(ctx, selected)
}
