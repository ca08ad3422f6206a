// Package discover implements reporover's repository discovery engine:
// paginated retrieval, name and file-presence filtering under configurable
// caps, result presentation, and persistence.
package discover

import (
	"context"
	"fmt"

	"github.com/astutesource/reporover/internal/console"
	"github.com/astutesource/reporover/internal/github"
	log "github.com/sirupsen/logrus"
)

// Lister is the adapter subset the orchestrator calls.
type Lister interface {
	DirectoryLister
	ListRepositories(ctx context.Context, scope github.Scope, page int) ([]github.Repository, bool, error)
}

// Match pairs a repository with the file names that satisfied an active
// file filter. Without a filter MatchedFiles is nil.
type Match struct {
	Repository   github.Repository
	MatchedFiles []string
}

// Discoverer drives the discovery pipeline.
type Discoverer struct {
	client Lister
	output *console.Output
}

// New creates a Discoverer using the given adapter and console output.
func New(client Lister, output *console.Output) *Discoverer {
	return &Discoverer{
		client: client,
		output: output,
	}
}

// Run executes one discovery pass: build the query, retrieve pages up to
// the search cap, filter by name fragment, optionally filter by file
// presence, present the results, and persist them when a save path is
// configured. A provider error during retrieval is fatal for the run;
// errors during a single repository's walk degrade to "no files found"
// for that repository only.
func (d *Discoverer) Run(ctx context.Context, opts Options) error {
	opts.applyDefaults()

	scope := github.Scope{Organization: opts.Organization}
	var query string
	if opts.Organization == "" {
		query = BuildQuery(opts.Criteria)
		scope.Query = query
		d.output.Infof("Search query: %s", query)
	}

	repos, err := d.retrieve(ctx, scope, opts.MaxSearch)
	if err != nil {
		return fmt.Errorf("failed to retrieve repositories: %w", err)
	}
	total := len(repos)
	d.output.Infof("Processing %d accessible repositories", total)

	if opts.Fragment != "" {
		repos = filterByName(repos, opts.Fragment)
		d.output.Infof("Repositories matching %q: %d", opts.Fragment, len(repos))
		total = len(repos)
	}

	var matches []Match
	if opts.Filter != nil && len(opts.Filter.Patterns) > 0 {
		d.output.Infof("Filtering at most %d repositories for files: %v",
			opts.MaxFilter, opts.Filter.Patterns)
		d.output.Infof("Maximum search depth during file filtering: %d", opts.MaxDepth)
		matches = d.filterByFiles(ctx, repos, opts)
		total = len(matches)
	} else {
		matches = make([]Match, 0, len(repos))
		for _, repo := range repos {
			matches = append(matches, Match{Repository: repo})
		}
	}

	d.present(matches, total, opts)

	if opts.SavePath != "" {
		if err := d.persist(matches, query, opts); err != nil {
			return err
		}
		d.output.Infof("Discovery results saved to %s", opts.SavePath)
	}
	return nil
}

// retrieve paginates the listing until a page comes back empty, the
// provider reports no further pages, or the accumulated count reaches
// max. Overflow past the cap is truncated mid-page.
func (d *Discoverer) retrieve(ctx context.Context, scope github.Scope, max int) ([]github.Repository, error) {
	var all []github.Repository
	for page := 1; ; page++ {
		repos, hasMore, err := d.client.ListRepositories(ctx, scope, page)
		if err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			break
		}
		all = append(all, repos...)
		log.Debugf("page %d returned %d repositories, %d total", page, len(repos), len(all))
		if len(all) >= max {
			all = all[:max]
			break
		}
		if !hasMore {
			break
		}
	}
	return all, nil
}

func filterByName(repos []github.Repository, fragment string) []github.Repository {
	matched := make([]github.Repository, 0, len(repos))
	for _, repo := range repos {
		if MatchesFragment(repo.Name, fragment) {
			matched = append(matched, repo)
		}
	}
	return matched
}

// filterByFiles walks each candidate repository in input order and keeps
// those whose files satisfy the filter patterns. At most MaxFilter
// repositories are walked; collection stops after the current repository
// once MaxMatches matches have accumulated. The match cap can stop the
// loop before the walk cap, so progress lines state the walk bound as an
// upper limit rather than an exact total.
func (d *Discoverer) filterByFiles(ctx context.Context, repos []github.Repository, opts Options) []Match {
	limit := min(len(repos), opts.MaxFilter)
	var matches []Match
	for walked, repo := range repos {
		if walked >= opts.MaxFilter {
			break
		}
		if len(matches) >= opts.MaxMatches {
			break
		}
		d.output.Infof("Searching repository %d of at most %d: %s", walked+1, limit, repo.FullName())

		files, err := Walk(ctx, d.client, repo.Owner, repo.Name, opts.MaxDepth)
		if err != nil {
			// Treat an unlistable repository as containing no files.
			log.Debugf("walk failed for %s: %v", repo.FullName(), err)
		}
		names := FileNames(files)
		log.Debugf("found %d files in %s", len(names), repo.FullName())

		matched := MatchFiles(names, opts.Filter.Patterns, opts.Filter.MatchAll)
		if len(matched) > 0 {
			matches = append(matches, Match{Repository: repo, MatchedFiles: matched})
			d.output.Checkf("Found matching files in %s: %v", repo.Name, matched)
		}
	}
	return matches
}

func (d *Discoverer) persist(matches []Match, query string, opts Options) error {
	cfg := NewConfiguration(opts, query)

	// Without a file filter only the displayed rows are persisted; with
	// one, every match survives since the walks already paid for them.
	persisted := matches
	if opts.Filter == nil && len(persisted) > opts.MaxDisplay {
		persisted = persisted[:opts.MaxDisplay]
	}

	records := make([]Record, 0, len(persisted))
	for _, m := range persisted {
		records = append(records, NewRecord(m))
	}

	if err := Save(opts.SavePath, cfg, records); err != nil {
		return fmt.Errorf("failed to save results to %s: %w", opts.SavePath, err)
	}
	return nil
}

func (d *Discoverer) present(matches []Match, total int, opts Options) {
	withFiles := opts.Filter != nil && len(opts.Filter.Patterns) > 0
	d.output.Resultf("%s", RenderTable(matches, opts.MaxDisplay, withFiles))
	if withFiles {
		d.output.Infof("Found %d repositories after filtering", total)
	} else {
		d.output.Infof("Discovered %d total repositories", total)
	}
	if total > opts.MaxDisplay {
		d.output.Infof("Showing first %d of %d repositories", opts.MaxDisplay, total)
	}
}
