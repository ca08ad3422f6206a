package classroom

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/astutesource/reporover/internal/github"
)

// Report formats for the details command.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

func readSpecFile(directory, file string) ([]byte, error) {
	full := filepath.Join(directory, file)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", full, err)
	}
	return data, nil
}

func destPath(destDir, file string) string {
	base := path.Base(filepath.ToSlash(file))
	if destDir == "" || destDir == "." {
		return base
	}
	return path.Join(filepath.ToSlash(destDir), base)
}

// Details collects commit details for every student repository and writes
// one report file in the requested format. Repositories are processed
// sequentially: the per-commit requests already fan out per repository
// and the report preserves roster order.
func (r *Runner) Details(ctx context.Context, usernames []string, outputDir, format string) error {
	if format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("unsupported report format %q (expected json or csv)", format)
	}

	var all []github.CommitDetail
	for i, username := range usernames {
		repo := r.repoName(username)
		r.output.Progressf(i+1, len(usernames), "collecting commit details for %s", repo)

		details, err := r.client.CommitDetails(ctx, r.organization, repo)
		if err != nil {
			r.output.Warningf("%s: %v", repo, err)
			continue
		}
		r.output.Checkf("Retrieved %d commits from %s", len(details), repo)
		all = append(all, details...)
	}

	name := fmt.Sprintf("%s_%s_%s.%s",
		r.organization, r.repoPrefix,
		time.Now().Format("2006-01-02_15-04-05"), format)
	reportPath := filepath.Join(outputDir, name)

	if err := writeReport(reportPath, format, all); err != nil {
		return err
	}
	r.output.Checkf("Commit details written to %s", reportPath)
	return nil
}

func writeReport(path, format string, details []github.CommitDetail) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer file.Close()

	if format == FormatJSON {
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if details == nil {
			details = []github.CommitDetail{}
		}
		return encoder.Encode(details)
	}

	writer := csv.NewWriter(file)
	header := []string{
		"commit_message", "author", "date", "files_changed",
		"lines_changed", "additions", "deletions", "diff", "build_status",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, d := range details {
		row := []string{
			d.Message,
			d.Author,
			d.Date,
			strings.Join(d.FilesChanged, ";"),
			strconv.Itoa(d.LinesChanged),
			strconv.Itoa(d.Additions),
			strconv.Itoa(d.Deletions),
			d.Diff,
			d.BuildStatus,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
