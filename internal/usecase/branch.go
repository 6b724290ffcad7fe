package usecase

import "context"

// currentBranch returns the short name of the checked out branch. ok is false
// for unborn, detached or unreadable HEADs.
func currentBranch(ctx context.Context, repo Repository) (string, bool) {
	head, err := repo.Head(ctx)
	if err != nil || head.Detached || head.Short == "" {
		return "", false
	}
	return head.Short, true
}

// BranchSegment renders the branch name, or the uncolored sentinel when there is none.
func BranchSegment(ctx context.Context, repo Repository, cfg *Config) string {
	name, ok := currentBranch(ctx, repo)
	if !ok {
		return cfg.NoBranch
	}
	return paint(cfg.Style, cfg.Palette.Branch, name)
}
