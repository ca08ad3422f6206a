package classroom

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/astutesource/reporover/internal/console"
	"github.com/astutesource/reporover/internal/github"
	"gopkg.in/h2non/gock.v1"
)

func TestMain(m *testing.M) {
	// Disable real HTTP requests during tests
	gock.DisableNetworking()
	os.Exit(m.Run())
}

func newTestRunner(t *testing.T, jobs int) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	client, err := github.NewClient(github.ClientOptions{
		AuthToken:    "fake-token",
		DisableCache: true,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	var stdout, stderr bytes.Buffer
	output := console.NewOutput(&stdout, &stderr, false)
	return NewRunner(client, output, "acme", "hw1", jobs), &stdout, &stderr
}

func TestRepoName(t *testing.T) {
	runner, _, _ := newTestRunner(t, 1)
	if got := runner.repoName("alice"); got != "hw1-alice" {
		t.Errorf("repoName() = %q, want %q", got, "hw1-alice")
	}
}

func TestModifyAccess(t *testing.T) {
	t.Cleanup(gock.Off)

	for _, user := range []string{"alice", "bob"} {
		gock.New("https://api.github.com").
			Put("/repos/acme/hw1-" + user + "/collaborators/" + user).
			Reply(204)
		gock.New("https://api.github.com").
			Post("/repos/acme/hw1-" + user + "/issues/1/comments").
			Reply(201).
			JSON(`{"id": 1}`)
	}

	runner, stdout, _ := newTestRunner(t, 2)

	err := runner.ModifyAccess(context.Background(), []string{"alice", "bob"},
		github.AccessRead, 1, "")
	if err != nil {
		t.Fatalf("ModifyAccess() error = %v", err)
	}

	out := stdout.String()
	for _, user := range []string{"alice", "bob"} {
		if !strings.Contains(out, "Changed "+user+"'s access") {
			t.Errorf("output missing access change for %s:\n%s", user, out)
		}
	}

	if !gock.IsDone() {
		t.Errorf("not all mocks were called: %v", gock.Pending())
	}
}

func TestModifyAccessNotifiesStudent(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Put("/repos/acme/hw1-alice/collaborators/alice").
		Reply(204)
	gock.New("https://api.github.com").
		Post("/repos/acme/hw1-alice/issues/1/comments").
		BodyString("Hello @alice! " + modifiedToPhrase).
		Reply(201).
		JSON(`{"id": 1}`)

	runner, _, _ := newTestRunner(t, 1)

	err := runner.ModifyAccess(context.Background(), []string{"alice"},
		github.AccessRead, 1, "")
	if err != nil {
		t.Fatalf("ModifyAccess() error = %v", err)
	}

	if !gock.IsDone() {
		t.Errorf("comment body did not match: %v", gock.Pending())
	}
}

func TestModifyAccessPartialFailure(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Put("/repos/acme/hw1-alice/collaborators/alice").
		Reply(204)
	gock.New("https://api.github.com").
		Post("/repos/acme/hw1-alice/issues/1/comments").
		Reply(201).
		JSON(`{"id": 1}`)
	gock.New("https://api.github.com").
		Put("/repos/acme/hw1-bob/collaborators/bob").
		Reply(404).
		JSON(`{"message": "Not Found"}`)

	runner, _, stderr := newTestRunner(t, 1)

	err := runner.ModifyAccess(context.Background(), []string{"alice", "bob"},
		github.AccessRead, 1, "")
	if err == nil {
		t.Fatal("ModifyAccess() expected error for failed username")
	}
	if !strings.Contains(err.Error(), "1 of 2 repositories failed") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(stderr.String(), "hw1-bob") {
		t.Errorf("stderr missing per-repository warning:\n%s", stderr.String())
	}
}

func TestComment(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Post("/repos/acme/hw1-alice/issues/2/comments").
		MatchType("application/json; charset=utf-8").
		JSON(map[string]string{"body": "Hello @alice! Grading is complete."}).
		Reply(201).
		JSON(`{"id": 1}`)

	runner, _, _ := newTestRunner(t, 1)

	err := runner.Comment(context.Background(), []string{"alice"}, 2, "Grading is complete.")
	if err != nil {
		t.Fatalf("Comment() error = %v", err)
	}

	if !gock.IsDone() {
		t.Errorf("not all mocks were called: %v", gock.Pending())
	}
}

func TestStatus(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Get("/repos/acme/hw1-alice/actions/runs").
		Reply(200).
		JSON(`{"workflow_runs": [{"status": "completed", "conclusion": "success", "head_sha": "abc"}]}`)
	gock.New("https://api.github.com").
		Get("/repos/acme/hw1-bob/actions/runs").
		Reply(200).
		JSON(`{"workflow_runs": []}`)

	runner, stdout, stderr := newTestRunner(t, 1)

	err := runner.Status(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "hw1-alice: status=completed conclusion=success") {
		t.Errorf("stdout missing run status:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "No GitHub Actions runs found for hw1-bob") {
		t.Errorf("stderr missing no-runs notice:\n%s", stderr.String())
	}
}

func TestCommit(t *testing.T) {
	t.Cleanup(gock.Off)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rubric.md"), []byte("# Rubric\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	gock.New("https://api.github.com").
		Get("/repos/acme/hw1-alice/contents/docs/rubric.md").
		Reply(404).
		JSON(`{"message": "Not Found"}`)
	gock.New("https://api.github.com").
		Put("/repos/acme/hw1-alice/contents/docs/rubric.md").
		Reply(201).
		JSON(`{}`)

	runner, stdout, _ := newTestRunner(t, 1)

	err := runner.Commit(context.Background(), []string{"alice"}, CommitSpec{
		Directory: dir,
		Files:     []string{"rubric.md"},
		Message:   "Add rubric",
		DestDir:   "docs",
	})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Committed rubric.md to hw1-alice") {
		t.Errorf("stdout missing commit confirmation:\n%s", stdout.String())
	}

	if !gock.IsDone() {
		t.Errorf("not all mocks were called: %v", gock.Pending())
	}
}

func TestCommitMissingLocalFile(t *testing.T) {
	runner, _, _ := newTestRunner(t, 1)

	err := runner.Commit(context.Background(), []string{"alice"}, CommitSpec{
		Directory: t.TempDir(),
		Files:     []string{"absent.md"},
		Message:   "Add file",
	})
	if err == nil {
		t.Fatal("Commit() expected error before touching any repository")
	}
}
