package cmd

import (
	"github.com/astutesource/reporover/internal/github"
	"github.com/spf13/cobra"
)

var (
	accessLevel     string
	accessUsernames []string
	accessPRNumber  int
	accessPRMessage string
)

var accessCmd = &cobra.Command{
	Use:   "access <organization> <repo-prefix> <roster.json>",
	Short: "Change collaborator access on student repositories",
	Long: `Change the collaborator access level for each student on their own
repository. Repository names are formed as <repo-prefix>-<username>.

When the access level is read, a comment is left on the given pull
request telling the student their access was reduced and how to ask for
assistance.

Examples:
  reporover access https://github.com/acme hw1 roster.json --level read
  reporover access acme hw1 roster.json --level write --username alice`,
	Args: cobra.ExactArgs(3),
	RunE: runAccess,
}

func init() {
	accessCmd.Flags().StringVar(&accessLevel, "level", "read",
		"access level: read, triage, write, maintain, admin")
	accessCmd.Flags().StringSliceVar(&accessUsernames, "username", nil,
		"restrict to these roster usernames (can be specified multiple times)")
	accessCmd.Flags().IntVar(&accessPRNumber, "pr-number", 1,
		"pull request number to comment on")
	accessCmd.Flags().StringVar(&accessPRMessage, "pr-message", "",
		"extra message appended to the access-change comment")

	rootCmd.AddCommand(accessCmd)
}

func runAccess(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	level, err := github.ParseAccessLevel(accessLevel)
	if err != nil {
		return err
	}

	runner, selected, err := newRunner(cmd, args[0], args[1], args[2], accessUsernames)
	if err != nil {
		return err
	}
	return runner.ModifyAccess(ctx, selected, level, accessPRNumber, accessPRMessage)
}
