package gogit

import (
	"errors"
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/arumata/gitprompt/internal/usecase"
)

// changeRecords converts a go-git status into change records sorted by path.
// renames maps a staged new path to the staged deleted path it replaces.
// go-git has no type-change detection, so those flags are never set.
func changeRecords(st git.Status, renames map[string]string) []usecase.ChangeRecord {
	renamedFrom := make(map[string]bool, len(renames))
	for _, from := range renames {
		renamedFrom[from] = true
	}

	records := make([]usecase.ChangeRecord, 0, len(st))
	for path, fs := range st {
		if fs == nil {
			continue
		}
		staging := stagingFlag(fs.Staging)
		switch {
		case renames[path] != "":
			staging = usecase.FlagIndexRenamed
		case renamedFrom[path]:
			staging = 0
		}
		flags := staging | worktreeFlag(fs.Worktree)
		if flags == 0 {
			continue
		}
		records = append(records, usecase.ChangeRecord{Path: path, Flags: flags})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records
}

// stagedRenames pairs staged additions with staged deletions of the same blob,
// the exact-match part of git's rename detection.
func stagedRenames(repo *git.Repository, st git.Status) (map[string]string, error) {
	var added, deleted []string
	for path, fs := range st {
		if fs == nil {
			continue
		}
		switch fs.Staging {
		case git.Added:
			added = append(added, path)
		case git.Deleted:
			deleted = append(deleted, path)
		}
	}
	if len(added) == 0 || len(deleted) == 0 {
		return nil, nil
	}
	sort.Strings(added)
	sort.Strings(deleted)

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	tree, err := headTree(repo, head.Hash())
	if err != nil {
		return nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	byBlob := make(map[plumbing.Hash][]string)
	for _, path := range deleted {
		entry, err := tree.FindEntry(path)
		if err != nil {
			continue
		}
		byBlob[entry.Hash] = append(byBlob[entry.Hash], path)
	}

	renames := make(map[string]string)
	for _, path := range added {
		entry, err := idx.Entry(path)
		if err != nil {
			continue
		}
		candidates := byBlob[entry.Hash]
		if len(candidates) == 0 {
			continue
		}
		renames[path] = candidates[0]
		byBlob[entry.Hash] = candidates[1:]
	}
	return renames, nil
}

func headTree(repo *git.Repository, h plumbing.Hash) (*object.Tree, error) {
	commit, err := repo.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("read HEAD tree: %w", err)
	}
	return tree, nil
}

func stagingFlag(code git.StatusCode) usecase.ChangeFlag {
	switch code {
	case git.Added, git.Copied:
		return usecase.FlagIndexNew
	case git.Modified:
		return usecase.FlagIndexModified
	case git.Deleted:
		return usecase.FlagIndexDeleted
	case git.Renamed:
		return usecase.FlagIndexRenamed
	case git.UpdatedButUnmerged:
		return usecase.FlagConflicted
	default:
		return 0
	}
}

func worktreeFlag(code git.StatusCode) usecase.ChangeFlag {
	switch code {
	case git.Untracked, git.Added:
		return usecase.FlagWorkingNew
	case git.Modified:
		return usecase.FlagWorkingModified
	case git.Deleted:
		return usecase.FlagWorkingDeleted
	case git.Renamed:
		return usecase.FlagWorkingRenamed
	case git.UpdatedButUnmerged:
		return usecase.FlagConflicted
	default:
		return 0
	}
}
