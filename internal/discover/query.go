package discover

import (
	"fmt"
	"strings"
)

// Criteria holds the search predicates translated into the provider
// query string. Pointer fields distinguish "not set" from zero values.
type Criteria struct {
	Language     string
	Stars        *int
	Forks        *int
	CreatedAfter string
	UpdatedAfter string
	Topics       []string
}

// BuildQuery translates criteria into a GitHub search query string. Token
// order is fixed: language, stars, forks, created, pushed, then topics in
// input order. An all-empty criteria set yields the benign "is:public"
// query, since the search endpoint rejects an empty query.
func BuildQuery(c Criteria) string {
	var parts []string
	if c.Language != "" {
		parts = append(parts, "language:"+c.Language)
	}
	if c.Stars != nil {
		parts = append(parts, fmt.Sprintf("stars:>=%d", *c.Stars))
	}
	if c.Forks != nil {
		parts = append(parts, fmt.Sprintf("forks:>=%d", *c.Forks))
	}
	if c.CreatedAfter != "" {
		parts = append(parts, "created:>="+c.CreatedAfter)
	}
	if c.UpdatedAfter != "" {
		parts = append(parts, "pushed:>="+c.UpdatedAfter)
	}
	for _, topic := range c.Topics {
		parts = append(parts, "topic:"+topic)
	}
	if len(parts) == 0 {
		return "is:public"
	}
	return strings.Join(parts, " ")
}
