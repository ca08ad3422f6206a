package discover

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/astutesource/reporover/internal/github"
)

// Configuration captures the complete inputs to one discovery run. It is
// serialized verbatim alongside the results so a saved document can be
// interpreted without the command line that produced it. Optional fields
// are omitted when absent, never written as null.
type Configuration struct {
	Command      string   `json:"command"`
	Language     *string  `json:"language,omitempty"`
	Stars        *int     `json:"stars,omitempty"`
	Forks        *int     `json:"forks,omitempty"`
	CreatedAfter *string  `json:"created_after,omitempty"`
	UpdatedAfter *string  `json:"updated_after,omitempty"`
	Files        []string `json:"files,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	MaxDepth     *int     `json:"max_depth,omitempty"`
	MaxFilter    *int     `json:"max_filter,omitempty"`
	MaxDisplay   *int     `json:"max_display,omitempty"`
	SearchQuery  string   `json:"search_query"`
	Timestamp    string   `json:"timestamp"`
}

// Record is one repository entry in the persisted document.
type Record struct {
	Name        string    `json:"name"`
	Owner       string    `json:"owner"`
	URL         string    `json:"url"`
	Description *string   `json:"description,omitempty"`
	Language    *string   `json:"language,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Files       []string  `json:"files,omitempty"`
}

// Document is the persisted discovery result: the configuration that
// produced it plus the repository records.
type Document struct {
	Configuration Configuration `json:"configuration"`
	Repositories  []Record      `json:"repos"`
}

// NewConfiguration builds the persisted configuration for a run.
func NewConfiguration(opts Options, query string) Configuration {
	cfg := Configuration{
		Command:     "discover",
		Topics:      opts.Criteria.Topics,
		MaxDepth:    &opts.MaxDepth,
		MaxFilter:   &opts.MaxFilter,
		MaxDisplay:  &opts.MaxDisplay,
		SearchQuery: query,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if opts.Organization != "" {
		cfg.Command = "search"
		cfg.SearchQuery = "org:" + opts.Organization
	}
	if opts.Criteria.Language != "" {
		cfg.Language = &opts.Criteria.Language
	}
	cfg.Stars = opts.Criteria.Stars
	cfg.Forks = opts.Criteria.Forks
	if opts.Criteria.CreatedAfter != "" {
		cfg.CreatedAfter = &opts.Criteria.CreatedAfter
	}
	if opts.Criteria.UpdatedAfter != "" {
		cfg.UpdatedAfter = &opts.Criteria.UpdatedAfter
	}
	if opts.Filter != nil {
		cfg.Files = opts.Filter.Patterns
	}
	return cfg
}

// NewRecord converts a match into its persisted form.
func NewRecord(m Match) Record {
	repo := m.Repository
	return Record{
		Name:        repo.Name,
		Owner:       repo.Owner,
		URL:         repo.URL,
		Description: repo.Description,
		Language:    repo.Language,
		Stars:       repo.Stars,
		Forks:       repo.Forks,
		CreatedAt:   repo.CreatedAt,
		UpdatedAt:   repo.UpdatedAt,
		Files:       m.MatchedFiles,
	}
}

// Repository converts a persisted record back into a repository value.
func (r Record) Repository() github.Repository {
	return github.Repository{
		Name:        r.Name,
		Owner:       r.Owner,
		URL:         r.URL,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.Stars,
		Forks:       r.Forks,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Save writes one JSON document holding the configuration and records.
func Save(path string, cfg Configuration, records []Record) error {
	doc := Document{Configuration: cfg, Repositories: records}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load reads a previously saved document and validates its structure.
// Any structural mismatch (missing file, invalid JSON, missing top-level
// keys, or missing required configuration fields) yields a nil document
// with an error, never a partial value. A corrupted or foreign file must
// never produce a usable-but-wrong configuration.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Raw messages distinguish an absent key from an empty value. The
	// records key accepts both historical spellings.
	var raw struct {
		Configuration json.RawMessage `json:"configuration"`
		Repos         json.RawMessage `json:"repos"`
		Repositories  json.RawMessage `json:"repositories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if raw.Configuration == nil {
		return nil, fmt.Errorf("%s is missing the configuration section", path)
	}
	recordsRaw := raw.Repos
	if recordsRaw == nil {
		recordsRaw = raw.Repositories
	}
	if recordsRaw == nil {
		return nil, fmt.Errorf("%s is missing the repository list", path)
	}

	var cfg Configuration
	if err := json.Unmarshal(raw.Configuration, &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	if err := validateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	var records []Record
	if err := json.Unmarshal(recordsRaw, &records); err != nil {
		return nil, fmt.Errorf("invalid repository list in %s: %w", path, err)
	}

	return &Document{Configuration: cfg, Repositories: records}, nil
}

func validateConfiguration(cfg Configuration) error {
	if cfg.SearchQuery == "" {
		return errors.New("missing search_query")
	}
	if cfg.Timestamp == "" {
		return errors.New("missing timestamp")
	}
	return nil
}
