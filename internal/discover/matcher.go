package discover

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesFragment reports whether a repository name matches the given
// fragment. An empty fragment or the bare wildcard matches everything.
// A fragment containing glob metacharacters is matched as a
// case-insensitive glob; anything else falls back to case-insensitive
// substring containment. The glob check runs before the substring
// fallback so a fragment like "hw*" is never treated as a literal.
func MatchesFragment(name, fragment string) bool {
	if fragment == "" || fragment == "*" {
		return true
	}
	if strings.ContainsAny(fragment, "*?") {
		matched, err := doublestar.Match(strings.ToLower(fragment), strings.ToLower(name))
		return err == nil && matched
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}

// MatchFiles evaluates file-name patterns against discovered file names
// and returns the union of all matched names, de-duplicated. A name
// matches a pattern through case-insensitive substring containment, exact
// equality, or a case-insensitive glob; any one tier suffices.
//
// With matchAll set, every pattern must match at least one name; the
// first pattern with zero matches short-circuits to an empty result.
// Without it, patterns contribute matches independently.
func MatchFiles(names, patterns []string, matchAll bool) []string {
	var matched []string
	for _, pattern := range patterns {
		found := matchPattern(names, pattern)
		if matchAll && len(found) == 0 {
			return nil
		}
		matched = append(matched, found...)
	}
	return dedupe(matched)
}

func matchPattern(names []string, pattern string) []string {
	lower := strings.ToLower(pattern)
	var found []string
	for _, name := range names {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerName, lower) || name == pattern {
			found = append(found, name)
			continue
		}
		if ok, err := doublestar.Match(lower, lowerName); err == nil && ok {
			found = append(found, name)
		}
	}
	return found
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
