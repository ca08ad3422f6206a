package cmd

import (
	"github.com/astutesource/reporover/internal/discover"
	"github.com/astutesource/reporover/internal/timeparse"
	"github.com/spf13/cobra"
)

var (
	discoverLanguage     string
	discoverStars        int
	discoverForks        int
	discoverCreatedAfter string
	discoverUpdatedAfter string
	discoverTopics       []string
	discoverFiles        []string
	discoverMatchAll     bool
	discoverMaxDepth     int
	discoverMaxSearch    int
	discoverMaxFilter    int
	discoverMaxDisplay   int
	discoverSave         string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover public repositories matching search criteria",
	Long: `Discover public GitHub repositories through the search index.

Criteria flags are combined into one search query with a fixed token
order: language, stars, forks, created, pushed, topics. With no criteria
at all the query falls back to "is:public".

When --file patterns are given, each candidate repository's tree is
walked down to --max-depth directory levels and only repositories whose
files match the patterns are kept. Patterns match by case-insensitive
substring, exact name, or glob (e.g. "*.py").

Examples:
  reporover discover --language python --stars 50
  reporover discover --topic testing --topic education --max-display 20
  reporover discover --file pyproject.toml --file "*.md" --match-all
  reporover discover --language go --save results.json`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverLanguage, "language", "",
		"filter by primary programming language")
	discoverCmd.Flags().IntVar(&discoverStars, "stars", 0,
		"minimum number of stars")
	discoverCmd.Flags().IntVar(&discoverForks, "forks", 0,
		"minimum number of forks")
	discoverCmd.Flags().StringVar(&discoverCreatedAfter, "created-after", "",
		"repositories created on or after this date (YYYY-MM-DD)")
	discoverCmd.Flags().StringVar(&discoverUpdatedAfter, "updated-after", "",
		"repositories pushed on or after this date (YYYY-MM-DD)")
	discoverCmd.Flags().StringSliceVar(&discoverTopics, "topic", nil,
		"filter by topic (can be specified multiple times)")
	discoverCmd.Flags().StringSliceVar(&discoverFiles, "file", nil,
		"require files matching this pattern (can be specified multiple times)")
	discoverCmd.Flags().BoolVar(&discoverMatchAll, "match-all", false,
		"require every --file pattern to match (default: any)")
	discoverCmd.Flags().IntVar(&discoverMaxDepth, "max-depth", discover.DefaultMaxDepth,
		"maximum directory depth during file filtering")
	discoverCmd.Flags().IntVar(&discoverMaxSearch, "max-search", discover.DefaultMaxSearch,
		"maximum number of repositories retrieved")
	discoverCmd.Flags().IntVar(&discoverMaxFilter, "max-filter", discover.DefaultMaxFilter,
		"maximum number of repositories walked during file filtering")
	discoverCmd.Flags().IntVar(&discoverMaxDisplay, "max-display", discover.DefaultMaxDisplay,
		"maximum number of repositories displayed")
	discoverCmd.Flags().StringVar(&discoverSave, "save", "",
		"save results to this JSON file")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	criteria := discover.Criteria{
		Language: discoverLanguage,
		Topics:   discoverTopics,
	}
	if cmd.Flags().Changed("stars") {
		criteria.Stars = &discoverStars
	}
	if cmd.Flags().Changed("forks") {
		criteria.Forks = &discoverForks
	}
	if discoverCreatedAfter != "" {
		date, err := timeparse.Canonical(discoverCreatedAfter)
		if err != nil {
			return err
		}
		criteria.CreatedAfter = date
	}
	if discoverUpdatedAfter != "" {
		date, err := timeparse.Canonical(discoverUpdatedAfter)
		if err != nil {
			return err
		}
		criteria.UpdatedAfter = date
	}

	var filter *discover.FileFilter
	if len(discoverFiles) > 0 {
		filter = &discover.FileFilter{
			Patterns: discoverFiles,
			MatchAll: discoverMatchAll,
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	d := discover.New(client, newOutput(cmd))
	return d.Run(ctx, discover.Options{
		Criteria:   criteria,
		Filter:     filter,
		MaxDepth:   discoverMaxDepth,
		MaxSearch:  discoverMaxSearch,
		MaxFilter:  discoverMaxFilter,
		MaxDisplay: discoverMaxDisplay,
		SavePath:   discoverSave,
	})
}
