package discover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     string
	}{
		{
			name:     "empty criteria falls back to public",
			criteria: Criteria{},
			want:     "is:public",
		},
		{
			name:     "language only",
			criteria: Criteria{Language: "python"},
			want:     "language:python",
		},
		{
			name:     "zero thresholds are still explicit",
			criteria: Criteria{Stars: intPtr(0), Forks: intPtr(0)},
			want:     "stars:>=0 forks:>=0",
		},
		{
			name: "all criteria in fixed order",
			criteria: Criteria{
				Language:     "go",
				Stars:        intPtr(50),
				Forks:        intPtr(5),
				CreatedAfter: "2024-01-01",
				UpdatedAfter: "2024-06-01",
				Topics:       []string{"cli", "github"},
			},
			want: "language:go stars:>=50 forks:>=5 created:>=2024-01-01 pushed:>=2024-06-01 topic:cli topic:github",
		},
		{
			name:     "topics preserve input order",
			criteria: Criteria{Topics: []string{"z-topic", "a-topic"}},
			want:     "topic:z-topic topic:a-topic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.criteria))
		})
	}
}
