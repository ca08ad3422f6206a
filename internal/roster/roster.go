// Package roster loads the JSON roster of usernames that drives the bulk
// repository commands.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
)

// Read loads the usernames from a JSON roster file of the form
// {"usernames": ["alice", "bob"]}.
func Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}

	var payload struct {
		Usernames []string `json:"usernames"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid roster %s: %w", path, err)
	}
	return payload.Usernames, nil
}

// Select restricts the roster to the requested usernames, preserving
// roster order. Requested names not present in the roster are dropped;
// an empty request selects the whole roster.
func Select(all, requested []string) []string {
	if len(requested) == 0 {
		return all
	}
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}
	var selected []string
	for _, name := range all {
		if want[name] {
			selected = append(selected, name)
		}
	}
	return selected
}
