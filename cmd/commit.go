package cmd

import (
	"github.com/astutesource/reporover/internal/classroom"
	"github.com/spf13/cobra"
)

var (
	commitUsernames []string
	commitFiles     []string
	commitMessage   string
	commitDestDir   string
)

var commitCmd = &cobra.Command{
	Use:   "commit <organization> <repo-prefix> <roster.json> <directory>",
	Short: "Commit files to student repositories",
	Long: `Commit one or more files from a local directory to each student's
repository. Files are read once and committed with the same message
everywhere; existing files are updated in place.

Examples:
  reporover commit acme hw1 roster.json ./handouts --file rubric.md
  reporover commit acme hw1 roster.json ./handouts --file tests/test_extra.py \
      --dest-dir hw1 --message "Add extra tests"`,
	Args: cobra.ExactArgs(4),
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().StringSliceVar(&commitUsernames, "username", nil,
		"restrict to these roster usernames (can be specified multiple times)")
	commitCmd.Flags().StringSliceVar(&commitFiles, "file", nil,
		"file within <directory> to commit (can be specified multiple times)")
	commitCmd.Flags().StringVar(&commitMessage, "message", "Update course files",
		"commit message")
	commitCmd.Flags().StringVar(&commitDestDir, "dest-dir", "",
		"destination directory inside each repository")
	_ = commitCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	runner, selected, err := newRunner(cmd, args[0], args[1], args[2], commitUsernames)
	if err != nil {
		return err
	}
	return runner.Commit(ctx, selected, classroom.CommitSpec{
		Directory: args[3],
		Files:     commitFiles,
		Message:   commitMessage,
		DestDir:   commitDestDir,
	})
}
