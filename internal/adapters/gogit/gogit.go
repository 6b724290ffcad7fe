// Package gogit implements repository access in-process on top of go-git.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/arumata/gitprompt/internal/usecase"
)

// Adapter implements RepositoryPort using go-git.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new go-git adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("gogit adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// Discover opens the repository enclosing path.
func (a *Adapter) Discover(ctx context.Context, path string) (usecase.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, usecase.ErrNotRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, usecase.ErrNotRepository
		}
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	excludes, err := userExcludes(os.Getenv)
	if err != nil {
		a.logger.Debug("Ignoring user excludes", "error", err)
	}
	wt.Excludes = append(wt.Excludes, excludes...)
	a.logger.Debug("Opened repository", "root", wt.Filesystem.Root(), "excludes", len(excludes))
	return &Repository{repo: repo, wt: wt}, nil
}

// Repository is a go-git backed usecase.Repository. go-git object storage is
// not safe for concurrent use, so every read holds mu.
type Repository struct {
	mu   sync.Mutex
	repo *git.Repository
	wt   *git.Worktree
}

// Head resolves HEAD.
func (r *Repository) Head(ctx context.Context) (usecase.HeadRef, error) {
	if err := ctx.Err(); err != nil {
		return usecase.HeadRef{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return usecase.HeadRef{}, usecase.ErrUnresolvableHead
		}
		return usecase.HeadRef{}, fmt.Errorf("%w: %w", usecase.ErrUnresolvableHead, err)
	}
	if !ref.Name().IsBranch() {
		return usecase.HeadRef{Detached: true, Commit: usecase.CommitID(ref.Hash().String())}, nil
	}
	return usecase.HeadRef{
		Name:   ref.Name().String(),
		Short:  ref.Name().Short(),
		Commit: usecase.CommitID(ref.Hash().String()),
	}, nil
}

// Status lists changed paths of the worktree.
func (r *Repository) Status(ctx context.Context) ([]usecase.ChangeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := r.wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}
	renames, err := stagedRenames(r.repo, st)
	if err != nil {
		return nil, fmt.Errorf("detect renames: %w", err)
	}
	return changeRecords(st, renames), nil
}

// LocalBranch looks up a local branch and its upstream configuration.
func (r *Repository) LocalBranch(ctx context.Context, name string) (usecase.Branch, error) {
	if err := ctx.Err(); err != nil {
		return usecase.Branch{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(refName, false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return usecase.Branch{}, usecase.ErrBranchNotFound
		}
		return usecase.Branch{}, fmt.Errorf("lookup branch %s: %w", name, err)
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return usecase.Branch{}, fmt.Errorf("read config: %w", err)
	}
	return usecase.Branch{
		Name:     name,
		Ref:      refName.String(),
		Upstream: upstreamRef(cfg, name).String(),
	}, nil
}

// upstreamRef maps branch.<name>.merge through the remote's fetch refspecs.
// It returns an empty name when no upstream is configured.
func upstreamRef(cfg *config.Config, name string) plumbing.ReferenceName {
	b, ok := cfg.Branches[name]
	if !ok || b == nil || b.Remote == "" || b.Merge == "" {
		return ""
	}
	if b.Remote == "." {
		return b.Merge
	}
	if remote, ok := cfg.Remotes[b.Remote]; ok && remote != nil {
		for _, spec := range remote.Fetch {
			if spec.Match(b.Merge) {
				return spec.Dst(b.Merge)
			}
		}
	}
	return plumbing.NewRemoteReferenceName(b.Remote, b.Merge.Short())
}

// ResolveCommit peels ref to a commit id.
func (r *Repository) ResolveCommit(ctx context.Context, ref string) (usecase.CommitID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved, err := r.repo.Reference(plumbing.ReferenceName(ref), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", usecase.ErrRefNotFound
		}
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	commit, err := r.repo.CommitObject(resolved.Hash())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", usecase.ErrRefNotFound, ref, err)
	}
	return usecase.CommitID(commit.Hash.String()), nil
}

// AheadBehind walks the commit graph from both tips.
func (r *Repository) AheadBehind(
	ctx context.Context,
	local, upstream usecase.CommitID,
) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	load := func(h plumbing.Hash) (commitInfo, error) {
		c, err := r.repo.CommitObject(h)
		if err != nil {
			return commitInfo{}, err
		}
		return commitInfo{parents: c.ParentHashes, when: c.Committer.When}, nil
	}
	return aheadBehind(ctx, load, plumbing.NewHash(string(local)), plumbing.NewHash(string(upstream)))
}

// ForEachStash visits stash reflog entries newest first.
func (r *Repository) ForEachStash(ctx context.Context, visit usecase.StashVisitor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	labels, err := readStashLabels(r.repo)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	for i, label := range labels {
		if !visit(i, label) {
			return nil
		}
	}
	return nil
}

var (
	_ usecase.RepositoryPort = (*Adapter)(nil)
	_ usecase.Repository     = (*Repository)(nil)
)
