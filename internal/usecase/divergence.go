package usecase

import (
	"context"
	"fmt"
	"strconv"
)

// ResolveDivergence compares the current branch with its upstream and reports
// why it could not when any step fails.
func ResolveDivergence(ctx context.Context, repo Repository) (Divergence, error) {
	name, ok := currentBranch(ctx, repo)
	if !ok {
		return Divergence{}, ErrUnresolvableHead
	}
	branch, err := repo.LocalBranch(ctx, name)
	if err != nil {
		return Divergence{}, err
	}
	if branch.Upstream == "" {
		return Divergence{}, fmt.Errorf("%w: %s", ErrNoUpstream, name)
	}
	local, err := repo.ResolveCommit(ctx, branch.Ref)
	if err != nil {
		return Divergence{}, err
	}
	upstream, err := repo.ResolveCommit(ctx, branch.Upstream)
	if err != nil {
		return Divergence{}, err
	}
	ahead, behind, err := repo.AheadBehind(ctx, local, upstream)
	if err != nil {
		return Divergence{}, err
	}
	if ahead < 0 || behind < 0 {
		return Divergence{}, fmt.Errorf("negative count %d/%d", ahead, behind)
	}
	return Divergence{Ahead: ahead, Behind: behind}, nil
}

// ComputeDivergence is ResolveDivergence for callers that only care whether a
// result exists; a missing upstream is the common case, not an error.
func ComputeDivergence(ctx context.Context, repo Repository) (Divergence, bool) {
	d, err := ResolveDivergence(ctx, repo)
	return d, err == nil
}

// DivergenceSegment renders "<ahead>/<behind> " or nothing.
func DivergenceSegment(ctx context.Context, repo Repository, cfg *Config) string {
	d, ok := ComputeDivergence(ctx, repo)
	if !ok {
		return ""
	}
	return paint(cfg.Style, cfg.Palette.Divergence, strconv.Itoa(d.Ahead)+"/"+strconv.Itoa(d.Behind)) + " "
}
