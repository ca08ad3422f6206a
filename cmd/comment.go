package cmd

import (
	"github.com/spf13/cobra"
)

var (
	commentUsernames []string
	commentPRNumber  int
)

var commentCmd = &cobra.Command{
	Use:   "comment <organization> <repo-prefix> <roster.json> <message>",
	Short: "Comment on a pull request in student repositories",
	Long: `Leave a comment on a pull request in each student's repository. The
comment greets the student by username before the message.

Examples:
  reporover comment acme hw1 roster.json "Grading is complete."
  reporover comment acme hw1 roster.json "Please rerun CI." --pr-number 2`,
	Args: cobra.ExactArgs(4),
	RunE: runComment,
}

func init() {
	commentCmd.Flags().StringSliceVar(&commentUsernames, "username", nil,
		"restrict to these roster usernames (can be specified multiple times)")
	commentCmd.Flags().IntVar(&commentPRNumber, "pr-number", 1,
		"pull request number to comment on")

	rootCmd.AddCommand(commentCmd)
}

func runComment(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	runner, selected, err := newRunner(cmd, args[0], args[1], args[2], commentUsernames)
	if err != nil {
		return err
	}
	return runner.Comment(ctx, selected, commentPRNumber, args[3])
}
