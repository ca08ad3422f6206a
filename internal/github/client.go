// Package github provides the GitHub API adapter for reporover.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	log "github.com/sirupsen/logrus"
)

// pageSize is the fixed per_page value for every paginated endpoint.
const pageSize = 100

// ClientOptions configures the GitHub API client.
type ClientOptions struct {
	AuthToken    string
	CacheDir     string
	CacheTTL     time.Duration
	DisableCache bool
}

// Client wraps the go-gh REST client.
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a new GitHub API client with the given options.
func NewClient(opts ClientOptions) (*Client, error) {
	apiOpts := api.ClientOptions{
		AuthToken:   opts.AuthToken,
		CacheDir:    opts.CacheDir,
		CacheTTL:    opts.CacheTTL,
		EnableCache: !opts.DisableCache,
	}

	rest, err := api.NewRESTClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &Client{
		rest: rest,
	}, nil
}

// fetchError converts a go-gh HTTP error into a FetchError so that status
// codes and response bodies stay at this boundary. Other errors (network,
// context cancellation) pass through unchanged.
func fetchError(err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return &FetchError{StatusCode: httpErr.StatusCode, Body: httpErr.Message}
	}
	return err
}

// ListRepositories fetches one page of repositories for the given scope.
// An organization scope hits the org listing endpoint (bare array); an
// empty organization hits the search endpoint (items envelope). Both are
// normalized into []Repository. The second return value reports whether
// more pages may follow. Exactly one request is issued per call; the
// caller owns the page counter and any retry policy.
func (c *Client) ListRepositories(ctx context.Context, scope Scope, page int) ([]Repository, bool, error) {
	if scope.Organization != "" {
		endpoint := fmt.Sprintf("orgs/%s/repos?per_page=%d&page=%d",
			scope.Organization, pageSize, page)
		log.Debugf("requesting %s", endpoint)

		var payload []repositoryPayload
		if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
			return nil, false, fetchError(err)
		}

		repos := make([]Repository, 0, len(payload))
		for _, p := range payload {
			repos = append(repos, p.normalize())
		}
		return repos, len(payload) == pageSize, nil
	}

	endpoint := fmt.Sprintf("search/repositories?q=%s&per_page=%d&page=%d",
		url.QueryEscape(scope.Query), pageSize, page)
	log.Debugf("requesting %s", endpoint)

	var envelope struct {
		TotalCount int                 `json:"total_count"`
		Items      []repositoryPayload `json:"items"`
	}
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return nil, false, fetchError(err)
	}

	repos := make([]Repository, 0, len(envelope.Items))
	for _, p := range envelope.Items {
		repos = append(repos, p.normalize())
	}
	hasMore := page*pageSize < envelope.TotalCount
	return repos, hasMore, nil
}

// ListDirectory fetches the entries of one directory within a repository.
// An empty path lists the repository root. A non-2xx status or a non-list
// payload (the contents endpoint returns an object for file paths) yields
// an error; callers walking trees treat that as "no files here".
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path string) ([]DirEntry, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/contents", owner, repo)
	if path != "" {
		endpoint += "/" + path
	}
	log.Debugf("requesting %s", endpoint)

	var entries []DirEntry
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &entries); err != nil {
		return nil, fetchError(err)
	}
	return entries, nil
}

// SetCollaboratorAccess changes a collaborator's permission level on a
// repository. GitHub answers 204 when the invitation or change applied.
func (c *Client) SetCollaboratorAccess(ctx context.Context, owner, repo, username string, level AccessLevel) error {
	endpoint := fmt.Sprintf("repos/%s/%s/collaborators/%s", owner, repo, username)
	body, err := json.Marshal(map[string]string{"permission": string(level)})
	if err != nil {
		return err
	}

	if err := c.rest.DoWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body), nil); err != nil {
		return fetchError(err)
	}
	return nil
}

// CreatePullRequestComment leaves a comment on a pull request. Pull
// request comments go through the issues endpoint since every pull
// request is also an issue.
func (c *Client) CreatePullRequestComment(ctx context.Context, owner, repo string, number int, comment string) error {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/comments", owner, repo, number)
	body, err := json.Marshal(map[string]string{"body": comment})
	if err != nil {
		return err
	}

	if err := c.rest.DoWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body), nil); err != nil {
		return fetchError(err)
	}
	return nil
}

// LatestActionsRun returns the most recent GitHub Actions workflow run
// for a repository, or nil when the repository has no runs.
func (c *Client) LatestActionsRun(ctx context.Context, owner, repo string) (*ActionsRun, error) {
	runs, err := c.listActionsRuns(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (c *Client) listActionsRuns(ctx context.Context, owner, repo string) ([]ActionsRun, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/actions/runs", owner, repo)
	log.Debugf("requesting %s", endpoint)

	var payload struct {
		WorkflowRuns []ActionsRun `json:"workflow_runs"`
	}
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, fetchError(err)
	}
	return payload.WorkflowRuns, nil
}

// CommitFile creates or updates one file on the main branch through the
// contents endpoint. When the destination already exists its blob SHA is
// included so GitHub treats the request as an update.
func (c *Client) CommitFile(ctx context.Context, owner, repo, destPath string, content []byte, message string) error {
	endpoint := fmt.Sprintf("repos/%s/%s/contents/%s", owner, repo, destPath)

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  "main",
	}

	// Committing an unchanged file fails; fetching the existing SHA first
	// turns the request into an update when the file is already present.
	var existing struct {
		SHA string `json:"sha"`
	}
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &existing); err == nil && existing.SHA != "" {
		payload["sha"] = existing.SHA
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.rest.DoWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body), nil); err != nil {
		return fetchError(err)
	}
	return nil
}

// CommitDetails collects metadata for every commit on a repository's
// default branch, annotated with the conclusion of the Actions run each
// commit triggered when one exists.
func (c *Client) CommitDetails(ctx context.Context, owner, repo string) ([]CommitDetail, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/commits", owner, repo)
	log.Debugf("requesting %s", endpoint)

	var commits []struct {
		SHA string `json:"sha"`
	}
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &commits); err != nil {
		return nil, fetchError(err)
	}

	// One runs listing covers every commit; conclusions are matched by SHA.
	runs, err := c.listActionsRuns(ctx, owner, repo)
	if err != nil {
		log.Debugf("no actions runs for %s/%s: %v", owner, repo, err)
		runs = nil
	}
	conclusions := make(map[string]string, len(runs))
	for _, run := range runs {
		if _, ok := conclusions[run.HeadSHA]; !ok {
			conclusions[run.HeadSHA] = run.Conclusion
		}
	}

	details := make([]CommitDetail, 0, len(commits))
	for _, commit := range commits {
		detail, err := c.commitDetail(ctx, owner, repo, commit.SHA)
		if err != nil {
			return nil, err
		}
		if conclusion, ok := conclusions[commit.SHA]; ok {
			detail.BuildStatus = conclusion
		}
		details = append(details, detail)
	}
	return details, nil
}

func (c *Client) commitDetail(ctx context.Context, owner, repo, sha string) (CommitDetail, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/commits/%s", owner, repo, sha)
	log.Debugf("requesting %s", endpoint)

	var payload struct {
		HTMLURL string `json:"html_url"`
		Commit  struct {
			Message string `json:"message"`
			Author  struct {
				Name string `json:"name"`
				Date string `json:"date"`
			} `json:"author"`
		} `json:"commit"`
		Files []struct {
			Filename  string `json:"filename"`
			Changes   int    `json:"changes"`
			Additions int    `json:"additions"`
			Deletions int    `json:"deletions"`
		} `json:"files"`
	}
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return CommitDetail{}, fetchError(err)
	}

	detail := CommitDetail{
		Message:     payload.Commit.Message,
		Author:      payload.Commit.Author.Name,
		Date:        payload.Commit.Author.Date,
		Diff:        payload.HTMLURL,
		BuildStatus: "unknown",
	}
	for _, file := range payload.Files {
		detail.FilesChanged = append(detail.FilesChanged, file.Filename)
		detail.LinesChanged += file.Changes
		detail.Additions += file.Additions
		detail.Deletions += file.Deletions
	}
	return detail, nil
}
