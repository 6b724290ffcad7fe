package usecase

import "errors"

var (
	// ErrUsage indicates user input/usage errors.
	ErrUsage = errors.New("usage error")
	// ErrCritical indicates critical failures that should exit with error.
	ErrCritical = errors.New("critical error")
	// ErrInterrupted indicates a canceled or interrupted operation.
	ErrInterrupted = errors.New("interrupted")

	// ErrNotRepository indicates that no working tree encloses the start path.
	ErrNotRepository = errors.New("not a git repository")
	// ErrUnresolvableHead indicates an unborn or unreadable HEAD.
	ErrUnresolvableHead = errors.New("HEAD cannot be resolved")
	// ErrBranchNotFound indicates a missing local branch.
	ErrBranchNotFound = errors.New("branch not found")
	// ErrRefNotFound indicates a reference that does not resolve to a commit.
	ErrRefNotFound = errors.New("reference not found")
	// ErrNoUpstream indicates a branch without a configured upstream.
	ErrNoUpstream = errors.New("no upstream configured")

	// ErrStatus indicates that the working tree status could not be enumerated.
	ErrStatus = errors.New("status enumeration failed")
	// ErrStash indicates that the stash list could not be iterated.
	ErrStash = errors.New("stash iteration failed")
)
