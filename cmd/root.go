// Package cmd implements the reporover command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/astutesource/reporover/internal/classroom"
	"github.com/astutesource/reporover/internal/console"
	"github.com/astutesource/reporover/internal/github"
	"github.com/astutesource/reporover/internal/roster"
	"github.com/cli/go-gh/v2/pkg/term"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var (
	version = "dev"

	// Persistent flags.
	token    string
	verbose  bool
	color    = colorAuto
	noCache  bool
	cacheDir string
	cacheTTL time.Duration
	jobs     int
)

var rootCmd = &cobra.Command{
	Use:   "reporover",
	Short: "Manage and analyze remote GitHub repositories",
	Long: `RepoRover manages and analyzes the repositories of a classroom-style
GitHub organization.

The discover and search commands find repositories: discover queries the
global search index by criteria (language, stars, forks, dates, topics)
while search lists an organization's repositories and filters them by a
name fragment. Both can additionally require the presence of files, found
by walking each repository's tree to a bounded depth.

The remaining commands fan out over a JSON roster of usernames and act on
each student's prefix-username repository: change collaborator access,
comment on pull requests, report Actions status, commit files, and
collect commit-detail reports.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(cmd.ErrOrStderr())
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", "",
		"GitHub token for authentication (defaults to $GITHUB_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug diagnostics")
	rootCmd.PersistentFlags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false,
		"bypass cache, always fetch fresh data")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "",
		"override cache directory location")
	rootCmd.PersistentFlags().DurationVar(&cacheTTL, "cache-ttl", time.Hour,
		"cache time-to-live (e.g., 1h, 30m)")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 4,
		"maximum concurrent API operations for bulk commands")
}

func Execute() error {
	return rootCmd.Execute()
}

// signalContext derives a context canceled by interrupt signals.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newClient() (*github.Client, error) {
	return github.NewClient(github.ClientOptions{
		AuthToken:    token,
		CacheDir:     cacheDir,
		CacheTTL:     cacheTTL,
		DisableCache: noCache,
	})
}

func newOutput(cmd *cobra.Command) *console.Output {
	var colorize bool
	switch color {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		terminal := term.FromEnv()
		colorize = terminal.IsColorEnabled()
	}
	return console.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize)
}

// parseOrganization extracts the organization name from a GitHub
// organization URL, and also accepts a bare organization name.
func parseOrganization(s string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "/")
	if trimmed == "" {
		return "", errors.New("organization is required")
	}
	if idx := strings.Index(trimmed, "github.com/"); idx >= 0 {
		rest := trimmed[idx+len("github.com/"):]
		name := strings.Split(rest, "/")[0]
		if name == "" {
			return "", fmt.Errorf("invalid organization URL %q", s)
		}
		return name, nil
	}
	if strings.Contains(trimmed, "/") || strings.Contains(trimmed, ".") {
		return "", fmt.Errorf("invalid organization %q (expected a name or a github.com URL)", s)
	}
	return trimmed, nil
}

// newRunner builds the bulk-operation runner shared by the roster-driven
// commands and resolves the roster subset to act on.
func newRunner(cmd *cobra.Command, orgURL, prefix, rosterPath string, requested []string) (*classroom.Runner, []string, error) {
	organization, err := parseOrganization(orgURL)
	if err != nil {
		return nil, nil, err
	}

	usernames, err := roster.Read(rosterPath)
	if err != nil {
		return nil, nil, err
	}
	selected := roster.Select(usernames, requested)
	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("no usernames selected from roster %s", rosterPath)
	}

	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	runner := classroom.NewRunner(client, newOutput(cmd), organization, prefix, jobs)
	return runner, selected, nil
}
