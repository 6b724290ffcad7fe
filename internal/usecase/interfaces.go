package usecase

import (
	"context"
	"fmt"
)

// Dependencies represents all external dependencies needed by use cases
type Dependencies struct {
	// Backends maps backend names (BackendGoGit, BackendExec) to repository access.
	Backends map[string]RepositoryPort
	Config   ConfigPort
}

// Backend returns the repository access registered under name.
func (d *Dependencies) Backend(name string) (RepositoryPort, error) {
	if d == nil {
		return nil, fmt.Errorf("dependencies not available: %w", ErrCritical)
	}
	port, ok := d.Backends[name]
	if !ok || port == nil {
		return nil, fmt.Errorf("backend %q not available: %w", name, ErrCritical)
	}
	return port, nil
}

// Ports define the interfaces that use cases need (hexagonal architecture)

// RepositoryPort locates repositories.
type RepositoryPort interface {
	// Discover walks up from path to the enclosing working tree.
	// It returns ErrNotRepository when there is none.
	Discover(ctx context.Context, path string) (Repository, error)
}

// Repository is a read-only view of one repository. Implementations must be
// safe for concurrent use; the prompt may issue its reads in parallel.
type Repository interface {
	// Head resolves HEAD. Unborn branches return ErrUnresolvableHead,
	// detached checkouts return a HeadRef with Detached set.
	Head(ctx context.Context) (HeadRef, error)

	// Status lists every changed path exactly once, unfiltered.
	Status(ctx context.Context) ([]ChangeRecord, error)

	// LocalBranch looks up refs/heads/<name>. Missing branches return ErrBranchNotFound.
	LocalBranch(ctx context.Context, name string) (Branch, error)

	// ResolveCommit peels a full reference name to a commit id.
	ResolveCommit(ctx context.Context, ref string) (CommitID, error)

	// AheadBehind counts commits reachable only from local and only from upstream.
	AheadBehind(ctx context.Context, local, upstream CommitID) (ahead, behind int, err error)

	// ForEachStash visits stash entries newest first.
	ForEachStash(ctx context.Context, visit StashVisitor) error
}

// ConfigPort defines configuration operations needed by use cases
type ConfigPort interface {
	Load(ctx context.Context, path string) (ConfigFile, error)
	Save(ctx context.Context, path string, cfg ConfigFile) error
}
