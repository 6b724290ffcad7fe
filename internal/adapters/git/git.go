//nolint:gci,gofumpt
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/arumata/gitprompt/internal/usecase"
)

// Adapter implements RepositoryPort using git command line tool
type Adapter struct {
	logger *slog.Logger
	binary string
}

// New creates a new git adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("git adapter requires logger")
	}
	return &Adapter{logger: logger, binary: "git"}
}

// Discover resolves the top level of the working tree enclosing path.
func (a *Adapter) Discover(ctx context.Context, path string) (usecase.Repository, error) {
	out, err := run(ctx, a.binary, path, "rev-parse", "--show-toplevel")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, usecase.ErrNotRepository
		}
		return nil, fmt.Errorf("git rev-parse: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return nil, usecase.ErrNotRepository
	}
	a.logger.Debug("Opened repository", "root", root)
	return &Repository{binary: a.binary, root: root}, nil
}

// Repository runs git commands inside one working tree. Every call is a
// separate process, so it is safe for concurrent use.
type Repository struct {
	binary string
	root   string
}

func (r *Repository) git(ctx context.Context, args ...string) ([]byte, error) {
	return run(ctx, r.binary, r.root, args...)
}

// run executes git without taking optional locks; status must never write the index.
func run(ctx context.Context, binary, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0", "LC_ALL=C")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return out, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// Head resolves HEAD
func (r *Repository) Head(ctx context.Context) (usecase.HeadRef, error) {
	out, symErr := r.git(ctx, "symbolic-ref", "-q", "HEAD")
	name := strings.TrimSpace(string(out))

	commitOut, err := r.git(ctx, "rev-parse", "-q", "--verify", "HEAD^{commit}")
	if err != nil {
		return usecase.HeadRef{}, fmt.Errorf("%w: %w", usecase.ErrUnresolvableHead, err)
	}
	commit := usecase.CommitID(strings.TrimSpace(string(commitOut)))

	if symErr != nil || !strings.HasPrefix(name, "refs/heads/") {
		return usecase.HeadRef{Detached: true, Commit: commit}, nil
	}
	return usecase.HeadRef{
		Name:   name,
		Short:  strings.TrimPrefix(name, "refs/heads/"),
		Commit: commit,
	}, nil
}

// Status returns changed paths using porcelain v2 output
func (r *Repository) Status(ctx context.Context) ([]usecase.ChangeRecord, error) {
	out, err := r.git(ctx, "status", "--porcelain=v2", "-z", "--untracked-files=all", "--ignore-submodules=dirty")
	if err != nil {
		return nil, err
	}
	return parsePorcelainV2(out)
}

// LocalBranch returns the branch and its upstream, if any
func (r *Repository) LocalBranch(ctx context.Context, name string) (usecase.Branch, error) {
	ref := "refs/heads/" + name
	if _, err := r.git(ctx, "rev-parse", "-q", "--verify", ref); err != nil {
		return usecase.Branch{}, usecase.ErrBranchNotFound
	}
	branch := usecase.Branch{Name: name, Ref: ref}
	out, err := r.git(ctx, "rev-parse", "--symbolic-full-name", name+"@{upstream}")
	if err == nil {
		branch.Upstream = strings.TrimSpace(string(out))
	}
	return branch, nil
}

// ResolveCommit returns the commit a reference points at
func (r *Repository) ResolveCommit(ctx context.Context, ref string) (usecase.CommitID, error) {
	out, err := r.git(ctx, "rev-parse", "-q", "--verify", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("%w: %s", usecase.ErrRefNotFound, ref)
	}
	return usecase.CommitID(strings.TrimSpace(string(out))), nil
}

// AheadBehind counts commits on either side of local...upstream
func (r *Repository) AheadBehind(
	ctx context.Context,
	local, upstream usecase.CommitID,
) (int, int, error) {
	out, err := r.git(ctx, "rev-list", "--left-right", "--count", string(local)+"..."+string(upstream))
	if err != nil {
		return 0, 0, err
	}
	return parseLeftRight(string(out))
}

func parseLeftRight(output string) (int, int, error) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q", output)
	}
	ahead, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse ahead count: %w", err)
	}
	behind, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse behind count: %w", err)
	}
	return ahead, behind, nil
}

// ForEachStash visits stash subjects newest first
func (r *Repository) ForEachStash(ctx context.Context, visit usecase.StashVisitor) error {
	out, err := r.git(ctx, "stash", "list", "--format=%gs")
	if err != nil {
		return err
	}
	for i, label := range parseLines(string(out)) {
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
