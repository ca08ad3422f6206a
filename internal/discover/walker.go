package discover

import (
	"context"

	"github.com/astutesource/reporover/internal/github"
)

// DirectoryLister is the adapter subset the walker needs.
type DirectoryLister interface {
	ListDirectory(ctx context.Context, owner, repo, path string) ([]github.DirEntry, error)
}

// DiscoveredFile is one path found during a repository walk. Directory
// entries are retained alongside files even though only files are
// pattern-matched; the walker uses one representation for both so the
// depth bound applies uniformly.
type DiscoveredFile struct {
	Path string
	Dir  bool
}

// Walk enumerates the files and directories of a repository up to
// maxDepth directory levels below the root (depth 0). Files are emitted
// at every visited level, including the boundary level; directories at
// the boundary are emitted but not expanded.
//
// A listing failure below the root silently truncates that branch and the
// walk continues with whatever was accumulated: file presence is a
// best-effort heuristic, not a correctness-critical read. A failure at
// the root is returned so the caller can decide to treat it as an empty
// repository.
func Walk(ctx context.Context, lister DirectoryLister, owner, repo string, maxDepth int) ([]DiscoveredFile, error) {
	var files []DiscoveredFile
	err := walkDir(ctx, lister, owner, repo, "", 0, maxDepth, &files)
	return files, err
}

func walkDir(ctx context.Context, lister DirectoryLister, owner, repo, path string, depth, maxDepth int, files *[]DiscoveredFile) error {
	// Unreachable given the expansion guard below, kept as a defensive bound.
	if depth > maxDepth {
		return nil
	}

	entries, err := lister.ListDirectory(ctx, owner, repo, path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		switch entry.Type {
		case github.EntryTypeFile:
			*files = append(*files, DiscoveredFile{Path: entry.Path})
		case github.EntryTypeDir:
			*files = append(*files, DiscoveredFile{Path: entry.Path, Dir: true})
			if depth < maxDepth {
				// Branch errors truncate only that branch.
				_ = walkDir(ctx, lister, owner, repo, entry.Path, depth+1, maxDepth, files)
			}
		}
	}
	return nil
}

// FileNames extracts the paths of the file entries, dropping directories.
func FileNames(files []DiscoveredFile) []string {
	var names []string
	for _, f := range files {
		if !f.Dir {
			names = append(names, f.Path)
		}
	}
	return names
}
