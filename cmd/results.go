package cmd

import (
	"github.com/astutesource/reporover/internal/discover"
	"github.com/spf13/cobra"
)

var resultsMaxDisplay int

var resultsCmd = &cobra.Command{
	Use:   "results <file.json>",
	Short: "Display previously saved discovery results",
	Long: `Display the repositories from a results file written by discover or
search with --save, along with the query that produced them.

Example:
  reporover results results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&resultsMaxDisplay, "max-display", discover.DefaultMaxDisplay,
		"maximum number of repositories displayed")

	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	doc, err := discover.Load(args[0])
	if err != nil {
		return err
	}

	out := newOutput(cmd)

	matches := make([]discover.Match, 0, len(doc.Repositories))
	withFiles := false
	for _, record := range doc.Repositories {
		if len(record.Files) > 0 {
			withFiles = true
		}
		matches = append(matches, discover.Match{
			Repository:   record.Repository(),
			MatchedFiles: record.Files,
		})
	}

	out.Infof("Results for %q saved at %s",
		doc.Configuration.SearchQuery, doc.Configuration.Timestamp)
	out.Resultf("%s", discover.RenderTable(matches, resultsMaxDisplay, withFiles))
	if len(matches) > resultsMaxDisplay {
		out.Infof("Showing first %d of %d repositories", resultsMaxDisplay, len(matches))
	}
	return nil
}
