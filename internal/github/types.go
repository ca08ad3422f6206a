package github

import (
	"fmt"
	"time"
)

// Repository is the normalized repository record produced by the adapter.
// Both listing endpoints (organization listing and search) are mapped into
// this one shape; the wire-level differences never leave this package.
type Repository struct {
	Name        string    `json:"name"`
	Owner       string    `json:"owner"`
	URL         string    `json:"url"`
	Description *string   `json:"description,omitempty"`
	Language    *string   `json:"language,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName returns the owner/name form used in API paths and messages.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// repositoryPayload mirrors the wire shape shared by the organization
// listing endpoint and the entries of the search envelope.
type repositoryPayload struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	HTMLURL     string    `json:"html_url"`
	Description *string   `json:"description"`
	Language    *string   `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p repositoryPayload) normalize() Repository {
	return Repository{
		Name:        p.Name,
		Owner:       p.Owner.Login,
		URL:         p.HTMLURL,
		Description: p.Description,
		Language:    p.Language,
		Stars:       p.Stars,
		Forks:       p.Forks,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Scope selects where repositories are listed from: a named organization
// (direct listing endpoint) or the global search index (search endpoint).
type Scope struct {
	Organization string // when set, list the organization's repositories
	Query        string // search query used when Organization is empty
}

// DirEntry is one entry returned by the directory-contents endpoint.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // file, dir
}

const (
	// EntryTypeFile marks a regular file entry.
	EntryTypeFile = "file"
	// EntryTypeDir marks a directory entry.
	EntryTypeDir = "dir"
)

// AccessLevel represents a collaborator permission level.
type AccessLevel string

const (
	AccessRead     AccessLevel = "read"
	AccessTriage   AccessLevel = "triage"
	AccessWrite    AccessLevel = "write"
	AccessMaintain AccessLevel = "maintain"
	AccessAdmin    AccessLevel = "admin"
)

// AccessLevels lists every valid collaborator permission level.
var AccessLevels = []AccessLevel{
	AccessRead, AccessTriage, AccessWrite, AccessMaintain, AccessAdmin,
}

// ParseAccessLevel validates and converts a permission level string.
func ParseAccessLevel(s string) (AccessLevel, error) {
	for _, level := range AccessLevels {
		if s == string(level) {
			return level, nil
		}
	}
	return "", fmt.Errorf("invalid access level %q: must be one of read, triage, write, maintain, or admin", s)
}

// ActionsRun summarizes one GitHub Actions workflow run.
type ActionsRun struct {
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	HeadSHA    string `json:"head_sha"`
}

// CommitDetail aggregates the commit metadata reported by the details
// command, including the build status of the Actions run the commit
// triggered (or "unknown" when no run matched).
type CommitDetail struct {
	Message      string   `json:"commit_message"`
	Author       string   `json:"author"`
	Date         string   `json:"date"`
	FilesChanged []string `json:"files_changed"`
	LinesChanged int      `json:"lines_changed"`
	Additions    int      `json:"additions"`
	Deletions    int      `json:"deletions"`
	Diff         string   `json:"diff"`
	BuildStatus  string   `json:"build_status"`
}

// FetchError is a non-2xx response from the GitHub API. Transport status
// codes stay behind this type; business logic branches on the presence of
// the error, not on the code.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GitHub API request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API request failed with status %d: %s", e.StatusCode, e.Body)
}
