package cmd

import (
	"github.com/astutesource/reporover/internal/discover"
	"github.com/spf13/cobra"
)

var (
	searchFiles      []string
	searchMatchAll   bool
	searchMaxDepth   int
	searchMaxSearch  int
	searchMaxFilter  int
	searchMaxDisplay int
	searchSave       string
)

var searchCmd = &cobra.Command{
	Use:   "search <organization> <fragment>",
	Short: "Search an organization's repositories by name and files",
	Long: `Search the repositories of one GitHub organization.

<organization> is an organization name or URL. <fragment> filters the
repository names: an empty fragment or "*" matches everything, a
fragment with glob metacharacters is matched as a case-insensitive glob,
and anything else matches as a case-insensitive substring.

When --file patterns are given, each name-matched repository's tree is
walked down to --max-depth directory levels and only repositories with
matching files are kept.

Examples:
  reporover search https://github.com/acme hw1
  reporover search acme "hw?-*" --file solution.py
  reporover search acme lab --file README.md --file Makefile --match-all`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchFiles, "file", nil,
		"require files matching this pattern (can be specified multiple times)")
	searchCmd.Flags().BoolVar(&searchMatchAll, "match-all", false,
		"require every --file pattern to match (default: any)")
	searchCmd.Flags().IntVar(&searchMaxDepth, "max-depth", discover.DefaultMaxDepth,
		"maximum directory depth during file filtering")
	searchCmd.Flags().IntVar(&searchMaxSearch, "max-search", discover.DefaultMaxSearch,
		"maximum number of repositories retrieved")
	searchCmd.Flags().IntVar(&searchMaxFilter, "max-filter", discover.DefaultMaxFilter,
		"maximum number of repositories walked during file filtering")
	searchCmd.Flags().IntVar(&searchMaxDisplay, "max-display", discover.DefaultMaxDisplay,
		"maximum number of repositories displayed")
	searchCmd.Flags().StringVar(&searchSave, "save", "",
		"save results to this JSON file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	organization, err := parseOrganization(args[0])
	if err != nil {
		return err
	}

	var filter *discover.FileFilter
	if len(searchFiles) > 0 {
		filter = &discover.FileFilter{
			Patterns: searchFiles,
			MatchAll: searchMatchAll,
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	d := discover.New(client, newOutput(cmd))
	return d.Run(ctx, discover.Options{
		Organization: organization,
		Fragment:     args[1],
		Filter:       filter,
		MaxDepth:     searchMaxDepth,
		MaxSearch:    searchMaxSearch,
		MaxFilter:    searchMaxFilter,
		MaxDisplay:   searchMaxDisplay,
		SavePath:     searchSave,
	})
}
