package github

import (
	"testing"
)

func TestRepositoryFullName(t *testing.T) {
	repo := Repository{Name: "hw1-alice", Owner: "acme"}
	if got := repo.FullName(); got != "acme/hw1-alice" {
		t.Errorf("FullName() = %q, want %q", got, "acme/hw1-alice")
	}
}

func TestParseAccessLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    AccessLevel
		wantErr bool
	}{
		{input: "read", want: AccessRead},
		{input: "triage", want: AccessTriage},
		{input: "write", want: AccessWrite},
		{input: "maintain", want: AccessMaintain},
		{input: "admin", want: AccessAdmin},
		{input: "owner", wantErr: true},
		{input: "READ", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAccessLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAccessLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAccessLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFetchErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  FetchError
		want string
	}{
		{
			name: "with body",
			err:  FetchError{StatusCode: 404, Body: "Not Found"},
			want: "GitHub API request failed with status 404: Not Found",
		},
		{
			name: "without body",
			err:  FetchError{StatusCode: 500},
			want: "GitHub API request failed with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
