// Package classroom runs bulk operations across the per-student
// repositories of a classroom-style GitHub organization. Repository names
// follow the GitHub Classroom convention of prefix-username.
package classroom

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/astutesource/reporover/internal/console"
	"github.com/astutesource/reporover/internal/github"
	"golang.org/x/sync/semaphore"
)

// Pull request notification phrasing, kept stable so students see
// consistent messages across course tools.
const (
	modifiedToPhrase   = "Your access level for this GitHub repository has been modified to"
	assistanceSentence = "Please contact the course instructor for assistance with access to your repository."
)

// Runner executes one operation per roster username with bounded
// concurrency. A per-username failure is reported and counted but does
// not stop the other usernames.
type Runner struct {
	client       *github.Client
	output       *console.Output
	organization string
	repoPrefix   string
	jobs         int
}

// NewRunner creates a Runner for the given organization and repository
// prefix. jobs bounds the number of usernames processed concurrently.
func NewRunner(client *github.Client, output *console.Output, organization, repoPrefix string, jobs int) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		client:       client,
		output:       output,
		organization: organization,
		repoPrefix:   repoPrefix,
		jobs:         jobs,
	}
}

// repoName returns the classroom repository name for a username.
func (r *Runner) repoName(username string) string {
	return r.repoPrefix + "-" + username
}

// forEach runs op for every username with at most r.jobs in flight and
// returns an error when any username failed.
func (r *Runner) forEach(ctx context.Context, usernames []string, op func(ctx context.Context, username string) error) error {
	var wg sync.WaitGroup
	var errorCount atomic.Int32
	var completed atomic.Int32
	sem := semaphore.NewWeighted(int64(r.jobs))

	for _, username := range usernames {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(username string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := op(ctx, username); err != nil {
				errorCount.Add(1)
				r.output.Warningf("%s: %v", r.repoName(username), err)
			}
			r.output.Progressf(int(completed.Add(1)), len(usernames), "processed %s", r.repoName(username))
		}(username)
	}

	wg.Wait()

	if n := errorCount.Load(); n > 0 {
		return fmt.Errorf("%d of %d repositories failed", n, len(usernames))
	}
	return nil
}

// ModifyAccess changes each student's collaborator permission and leaves
// a pull request comment notifying them of the change.
func (r *Runner) ModifyAccess(ctx context.Context, usernames []string, level github.AccessLevel, prNumber int, prMessage string) error {
	return r.forEach(ctx, usernames, func(ctx context.Context, username string) error {
		repo := r.repoName(username)
		if err := r.client.SetCollaboratorAccess(ctx, r.organization, repo, username, level); err != nil {
			return fmt.Errorf("failed to change %s's access to %q: %w", username, level, err)
		}
		r.output.Checkf("Changed %s's access to %q in %s", username, level, repo)

		comment := fmt.Sprintf("Hello @%s! %s `%s`. %s %s",
			username, modifiedToPhrase, level, assistanceSentence, prMessage)
		if err := r.client.CreatePullRequestComment(ctx, r.organization, repo, prNumber, comment); err != nil {
			return fmt.Errorf("failed to comment on pull request %d: %w", prNumber, err)
		}
		r.output.Checkf("Commented on pull request %d in %s", prNumber, repo)
		return nil
	})
}

// Comment leaves a pull request comment on each student's repository.
func (r *Runner) Comment(ctx context.Context, usernames []string, prNumber int, message string) error {
	return r.forEach(ctx, usernames, func(ctx context.Context, username string) error {
		repo := r.repoName(username)
		comment := fmt.Sprintf("Hello @%s! %s", username, message)
		if err := r.client.CreatePullRequestComment(ctx, r.organization, repo, prNumber, comment); err != nil {
			return fmt.Errorf("failed to comment on pull request %d: %w", prNumber, err)
		}
		r.output.Checkf("Commented on pull request %d in %s", prNumber, repo)
		return nil
	})
}

// Status reports the most recent GitHub Actions run for each student's
// repository. A repository with no runs is reported, not failed.
func (r *Runner) Status(ctx context.Context, usernames []string) error {
	return r.forEach(ctx, usernames, func(ctx context.Context, username string) error {
		repo := r.repoName(username)
		run, err := r.client.LatestActionsRun(ctx, r.organization, repo)
		if err != nil {
			return fmt.Errorf("failed to get Actions status: %w", err)
		}
		if run == nil {
			r.output.Infof("No GitHub Actions runs found for %s", repo)
			return nil
		}
		r.output.Resultf("%s: status=%s conclusion=%s", repo, run.Status, run.Conclusion)
		return nil
	})
}

// CommitSpec describes the files one Commit call pushes to each
// repository: every file in Files is read from Directory and written
// under DestDir on the main branch with Message.
type CommitSpec struct {
	Directory string
	Files     []string
	Message   string
	DestDir   string
}

// Commit pushes the spec's files to each student's repository through the
// contents endpoint.
func (r *Runner) Commit(ctx context.Context, usernames []string, spec CommitSpec) error {
	// Read every file once up front; a bad path should fail the whole
	// command before any repository is touched.
	contents := make(map[string][]byte, len(spec.Files))
	for _, file := range spec.Files {
		data, err := readSpecFile(spec.Directory, file)
		if err != nil {
			return err
		}
		contents[file] = data
	}

	return r.forEach(ctx, usernames, func(ctx context.Context, username string) error {
		repo := r.repoName(username)
		for _, file := range spec.Files {
			dest := destPath(spec.DestDir, file)
			if err := r.client.CommitFile(ctx, r.organization, repo, dest, contents[file], spec.Message); err != nil {
				return fmt.Errorf("failed to commit %s: %w", file, err)
			}
			r.output.Checkf("Committed %s to %s in directory %q", file, repo, spec.DestDir)
		}
		return nil
	})
}
