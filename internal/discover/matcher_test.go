package discover

import (
	"slices"
	"testing"
)

func TestMatchesFragment(t *testing.T) {
	tests := []struct {
		name     string
		repo     string
		fragment string
		want     bool
	}{
		// Match-everything fragments
		{
			name:     "empty fragment matches",
			repo:     "My-Repo",
			fragment: "",
			want:     true,
		},
		{
			name:     "bare wildcard matches",
			repo:     "My-Repo",
			fragment: "*",
			want:     true,
		},

		// Glob fragments
		{
			name:     "glob prefix match",
			repo:     "My-Repo",
			fragment: "my-*",
			want:     true,
		},
		{
			name:     "glob no match",
			repo:     "My-Repo",
			fragment: "other-*",
			want:     false,
		},
		{
			name:     "glob is case insensitive",
			repo:     "HW1-Alice",
			fragment: "hw?-*",
			want:     true,
		},
		{
			name:     "glob must cover whole name",
			repo:     "hw1-alice",
			fragment: "hw*x",
			want:     false,
		},

		// Substring fragments
		{
			name:     "substring match",
			repo:     "My-Repo",
			fragment: "repo",
			want:     true,
		},
		{
			name:     "substring case insensitive",
			repo:     "My-Repo",
			fragment: "MY-",
			want:     true,
		},
		{
			name:     "substring no match",
			repo:     "My-Repo",
			fragment: "xyz",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFragment(tt.repo, tt.fragment); got != tt.want {
				t.Errorf("MatchesFragment(%q, %q) = %v, want %v",
					tt.repo, tt.fragment, got, tt.want)
			}
		})
	}
}

func TestMatchFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		patterns []string
		matchAll bool
		want     []string
	}{
		{
			name:     "substring match",
			files:    []string{"README.md", "main.py"},
			patterns: []string{"README"},
			want:     []string{"README.md"},
		},
		{
			name:     "exact match",
			files:    []string{"README.md", "main.py"},
			patterns: []string{"main.py"},
			want:     []string{"main.py"},
		},
		{
			name:     "glob match",
			files:    []string{"README.md", "main.py", "util.py"},
			patterns: []string{"*.py"},
			want:     []string{"main.py", "util.py"},
		},
		{
			name:     "any mode keeps partial matches",
			files:    []string{"README.md", "main.py"},
			patterns: []string{"README", "missing"},
			matchAll: false,
			want:     []string{"README.md"},
		},
		{
			name:     "all mode rejects on one miss",
			files:    []string{"README.md", "main.py"},
			patterns: []string{"README", "missing"},
			matchAll: true,
			want:     nil,
		},
		{
			name:     "all mode succeeds when every pattern hits",
			files:    []string{"README.md", "main.py"},
			patterns: []string{"README", "*.py"},
			matchAll: true,
			want:     []string{"README.md", "main.py"},
		},
		{
			name:     "union is deduplicated",
			files:    []string{"main.py"},
			patterns: []string{"main", "*.py"},
			want:     []string{"main.py"},
		},
		{
			name:     "no files",
			files:    nil,
			patterns: []string{"README"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchFiles(tt.files, tt.patterns, tt.matchAll)
			if !slices.Equal(got, tt.want) {
				t.Errorf("MatchFiles(%v, %v, %v) = %v, want %v",
					tt.files, tt.patterns, tt.matchAll, got, tt.want)
			}
		})
	}
}
