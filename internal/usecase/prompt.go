package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// EmptyPrompt is rendered outside of any working tree.
const EmptyPrompt = "[]"

// PromptOptions describes a single prompt render.
type PromptOptions struct {
	// Dir is where repository discovery starts.
	Dir string
}

type promptSegments struct {
	stash      string
	status     string
	branch     string
	divergence string
}

func (s promptSegments) join() string {
	return "[" + strings.Join([]string{s.stash, s.status, s.branch, s.divergence}, " ") + "]"
}

// Prompt renders the repository summary line for opts.Dir.
func Prompt(
	ctx context.Context,
	cfg *Config,
	opts PromptOptions,
	deps *Dependencies,
	logger *slog.Logger,
) (string, error) {
	if logger == nil {
		panic("logger is required")
	}
	if cfg == nil {
		return "", fmt.Errorf("config is required: %w", ErrCritical)
	}
	access, err := deps.Backend(cfg.Backend)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}

	repo, err := access.Discover(ctx, opts.Dir)
	if err != nil {
		if errors.Is(err, ErrNotRepository) {
			logger.Debug("No repository found", "dir", opts.Dir)
			return EmptyPrompt, nil
		}
		return "", fmt.Errorf("discover repository: %v: %w", err, ErrCritical)
	}

	var segs promptSegments
	if cfg.Parallel {
		segs, err = collectParallel(ctx, cfg, repo, logger)
	} else {
		segs, err = collectSequential(ctx, cfg, repo, logger)
	}
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrInterrupted
		}
		return "", err
	}
	return segs.join(), nil
}

func collectSequential(
	ctx context.Context,
	cfg *Config,
	repo Repository,
	logger *slog.Logger,
) (promptSegments, error) {
	var (
		segs promptSegments
		err  error
	)
	if segs.stash, err = stashSegment(ctx, cfg, repo, logger); err != nil {
		return promptSegments{}, err
	}
	if segs.status, err = statusSegment(ctx, cfg, repo, logger); err != nil {
		return promptSegments{}, err
	}
	segs.branch = BranchSegment(ctx, repo, cfg)
	segs.divergence = DivergenceSegment(ctx, repo, cfg)
	return segs, nil
}

// collectParallel issues the four independent reads concurrently. Each goroutine
// owns one field, so the joined line does not depend on completion order.
func collectParallel(
	ctx context.Context,
	cfg *Config,
	repo Repository,
	logger *slog.Logger,
) (promptSegments, error) {
	var segs promptSegments
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := stashSegment(gctx, cfg, repo, logger)
		segs.stash = s
		return err
	})
	g.Go(func() error {
		s, err := statusSegment(gctx, cfg, repo, logger)
		segs.status = s
		return err
	})
	g.Go(func() error {
		segs.branch = BranchSegment(gctx, repo, cfg)
		return nil
	})
	g.Go(func() error {
		segs.divergence = DivergenceSegment(gctx, repo, cfg)
		return nil
	})
	if err := g.Wait(); err != nil {
		return promptSegments{}, err
	}
	return segs, nil
}

func stashSegment(ctx context.Context, cfg *Config, repo Repository, logger *slog.Logger) (string, error) {
	labels, err := ListStashes(ctx, repo)
	if err != nil {
		if cfg.FailSoft {
			logger.Debug("Stash segment dropped", "error", err)
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", err, ErrCritical)
	}
	return RenderStashes(labels, cfg.Style, cfg.Palette), nil
}

func statusSegment(ctx context.Context, cfg *Config, repo Repository, logger *slog.Logger) (string, error) {
	records, err := repo.Status(ctx)
	if err != nil {
		if cfg.FailSoft {
			logger.Debug("Status segment dropped", "error", err)
			return "", nil
		}
		return "", fmt.Errorf("%w: %w: %w", ErrStatus, err, ErrCritical)
	}
	return RenderStatus(Classify(records), cfg.Style, cfg.Palette), nil
}
