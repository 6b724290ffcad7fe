package gogit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

type fakeGraph map[plumbing.Hash]commitInfo

func (g fakeGraph) load(h plumbing.Hash) (commitInfo, error) {
	info, ok := g[h]
	if !ok {
		return commitInfo{}, plumbing.ErrObjectNotFound
	}
	return info, nil
}

func (g fakeGraph) add(id int, ts int, parents ...int) plumbing.Hash {
	ps := make([]plumbing.Hash, 0, len(parents))
	for _, p := range parents {
		ps = append(ps, hashOf(p))
	}
	g[hashOf(id)] = commitInfo{parents: ps, when: time.Unix(int64(1700000000+ts), 0)}
	return hashOf(id)
}

func hashOf(id int) plumbing.Hash {
	return plumbing.NewHash(fmt.Sprintf("%040x", id))
}

func TestAheadBehind(t *testing.T) {
	tests := []struct {
		name       string
		build      func(g fakeGraph) (local, upstream plumbing.Hash)
		wantAhead  int
		wantBehind int
	}{
		{
			name: "identical",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				c := g.add(1, 1)
				return c, c
			},
		},
		{
			name: "ahead only",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				base := g.add(1, 1)
				g.add(2, 2, 1)
				local := g.add(3, 3, 2)
				return local, base
			},
			wantAhead: 2,
		},
		{
			name: "behind only",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				base := g.add(1, 1)
				g.add(2, 2, 1)
				g.add(3, 3, 2)
				upstream := g.add(4, 4, 3)
				return base, upstream
			},
			wantBehind: 3,
		},
		{
			name: "diverged",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 1)
				g.add(2, 2, 1)
				local := g.add(3, 3, 2)
				upstream := g.add(4, 4, 1)
				return local, upstream
			},
			wantAhead:  2,
			wantBehind: 1,
		},
		{
			name: "merged upstream",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 1)
				g.add(2, 2, 1)
				upstream := g.add(3, 3, 1)
				local := g.add(4, 4, 2, 3)
				return local, upstream
			},
			wantAhead: 2,
		},
		{
			name: "unrelated histories",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 1)
				local := g.add(2, 2, 1)
				g.add(3, 3)
				upstream := g.add(4, 4, 3)
				return local, upstream
			},
			wantAhead:  2,
			wantBehind: 2,
		},
		{
			name: "same timestamp fork",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 0)
				g.add(2, 0, 1)
				local := g.add(3, 0, 2)
				upstream := g.add(9, 0, 2)
				return local, upstream
			},
			wantAhead:  1,
			wantBehind: 1,
		},
		{
			name: "same timestamp long history",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 0)
				g.add(2, 0, 1)
				g.add(3, 0, 2)
				g.add(4, 0, 3)
				g.add(5, 0, 4)
				local := g.add(6, 0, 5)
				upstream := g.add(7, 0, 3)
				return local, upstream
			},
			wantAhead:  3,
			wantBehind: 1,
		},
		{
			name: "same timestamp merge",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 0)
				g.add(2, 0, 1)
				g.add(3, 0, 1)
				local := g.add(4, 0, 2, 3)
				upstream := g.add(8, 0, 3)
				return local, upstream
			},
			wantAhead:  2,
			wantBehind: 1,
		},
		{
			name: "local tip older than base",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 1)
				g.add(2, 10, 1)
				local := g.add(3, 5, 2)
				upstream := g.add(4, 20, 2)
				return local, upstream
			},
			wantAhead:  1,
			wantBehind: 1,
		},
		{
			name: "upstream commits older than base",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				g.add(1, 1)
				g.add(2, 10, 1)
				g.add(3, 2, 2)
				upstream := g.add(4, 3, 3)
				local := g.add(5, 20, 2)
				return local, upstream
			},
			wantAhead:  1,
			wantBehind: 2,
		},
		{
			name: "shallow boundary",
			build: func(g fakeGraph) (plumbing.Hash, plumbing.Hash) {
				// commit 1 is missing from the store
				g.add(2, 2, 1)
				local := g.add(3, 3, 2)
				return local, hashOf(2)
			},
			wantAhead: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := fakeGraph{}
			local, upstream := tt.build(g)
			ahead, behind, err := aheadBehind(context.Background(), g.load, local, upstream)
			if err != nil {
				t.Fatalf("aheadBehind: %v", err)
			}
			if ahead != tt.wantAhead || behind != tt.wantBehind {
				t.Errorf("got %d/%d, want %d/%d", ahead, behind, tt.wantAhead, tt.wantBehind)
			}
		})
	}
}

func TestAheadBehind_MissingTip(t *testing.T) {
	g := fakeGraph{}
	base := g.add(1, 1)
	if _, _, err := aheadBehind(context.Background(), g.load, base, hashOf(99)); err == nil {
		t.Fatal("expected error for missing upstream tip")
	}
}

func TestAheadBehind_Canceled(t *testing.T) {
	g := fakeGraph{}
	g.add(1, 1)
	local := g.add(2, 2, 1)
	upstream := g.add(3, 3, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := aheadBehind(ctx, g.load, local, upstream); err == nil {
		t.Fatal("expected context error")
	}
}
