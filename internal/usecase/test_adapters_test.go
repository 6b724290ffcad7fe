package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// fakeRepository serves canned answers. Errors are returned as configured.
type fakeRepository struct {
	mu sync.Mutex

	head    HeadRef
	headErr error

	records   []ChangeRecord
	statusErr error

	branches map[string]Branch
	commits  map[string]CommitID

	ahead, behind int
	aheadErr      error

	stashes  []string
	stashErr error

	calls []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		branches: map[string]Branch{},
		commits:  map[string]CommitID{},
	}
}

func (r *fakeRepository) record(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
}

func (r *fakeRepository) Head(context.Context) (HeadRef, error) {
	r.record("Head")
	return r.head, r.headErr
}

func (r *fakeRepository) Status(context.Context) ([]ChangeRecord, error) {
	r.record("Status")
	return r.records, r.statusErr
}

func (r *fakeRepository) LocalBranch(_ context.Context, name string) (Branch, error) {
	r.record("LocalBranch")
	b, ok := r.branches[name]
	if !ok {
		return Branch{}, ErrBranchNotFound
	}
	return b, nil
}

func (r *fakeRepository) ResolveCommit(_ context.Context, ref string) (CommitID, error) {
	r.record("ResolveCommit")
	id, ok := r.commits[ref]
	if !ok {
		return "", ErrRefNotFound
	}
	return id, nil
}

func (r *fakeRepository) AheadBehind(context.Context, CommitID, CommitID) (int, int, error) {
	r.record("AheadBehind")
	return r.ahead, r.behind, r.aheadErr
}

func (r *fakeRepository) ForEachStash(_ context.Context, visit StashVisitor) error {
	r.record("ForEachStash")
	if r.stashErr != nil {
		return r.stashErr
	}
	for i, label := range r.stashes {
		if !visit(i, label) {
			return nil
		}
	}
	return nil
}

// onBranch points HEAD at refs/heads/name.
func (r *fakeRepository) onBranch(name string) *fakeRepository {
	r.head = HeadRef{Name: "refs/heads/" + name, Short: name, Commit: "c0"}
	return r
}

// tracking configures name to follow upstream with the given commit ids.
func (r *fakeRepository) tracking(name, upstream string, local, remote CommitID) *fakeRepository {
	ref := "refs/heads/" + name
	r.branches[name] = Branch{Name: name, Ref: ref, Upstream: upstream}
	r.commits[ref] = local
	if upstream != "" {
		r.commits[upstream] = remote
	}
	return r
}

type fakePort struct {
	repo Repository
	err  error
	dirs []string
}

func (p *fakePort) Discover(_ context.Context, dir string) (Repository, error) {
	p.dirs = append(p.dirs, dir)
	if p.err != nil {
		return nil, p.err
	}
	return p.repo, nil
}

func depsWith(port RepositoryPort) *Dependencies {
	return &Dependencies{Backends: map[string]RepositoryPort{
		BackendGoGit: port,
		BackendExec:  port,
	}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func plainConfig() *Config {
	cfg, err := RuntimeConfigFromFile(DefaultConfigFile(), StylePrompt)
	if err != nil {
		panic(err)
	}
	cfg.Palette = Palette{
		Branch: NoColor, Divergence: NoColor, Stash: NoColor,
		Conflicted: NoColor, Deleted: NoColor, Modified: NoColor,
		New: NoColor, Renamed: NoColor, TypeChange: NoColor,
	}
	return cfg
}
