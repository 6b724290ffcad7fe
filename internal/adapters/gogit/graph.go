package gogit

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/go-git/go-git/v5/plumbing"
)

type commitInfo struct {
	parents []plumbing.Hash
	when    time.Time
}

type commitLoader func(plumbing.Hash) (commitInfo, error)

type side uint8

const (
	sideLocal side = 1 << iota
	sideUpstream

	sideBoth = sideLocal | sideUpstream
)

type queued struct {
	hash plumbing.Hash
	when time.Time
}

// newestFirst orders the walk queue by committer time, newest on top.
func newestFirst(a, b interface{}) int {
	qa, qb := a.(queued), b.(queued)
	switch {
	case qa.when.After(qb.when):
		return -1
	case qa.when.Before(qb.when):
		return 1
	default:
		return bytes.Compare(qa.hash[:], qb.hash[:])
	}
}

// graphWalk paints commits with the sides they are reachable from.
type graphWalk struct {
	load  commitLoader
	marks map[plumbing.Hash]side
	infos map[plumbing.Hash]commitInfo
	done  map[plumbing.Hash]bool
	// single holds processed commits painted by one side only.
	single map[plumbing.Hash]time.Time
	queue  *binaryheap.Heap
}

func newGraphWalk(load commitLoader) *graphWalk {
	return &graphWalk{
		load:   load,
		marks:  make(map[plumbing.Hash]side),
		infos:  make(map[plumbing.Hash]commitInfo),
		done:   make(map[plumbing.Hash]bool),
		single: make(map[plumbing.Hash]time.Time),
		queue:  binaryheap.NewWith(newestFirst),
	}
}

// mark adds s to h. A commit is queued once, on its first mark; a commit
// that was already processed hands the new mark down to its ancestors.
func (w *graphWalk) mark(h plumbing.Hash, s side) error {
	old, seen := w.marks[h]
	if old|s == old {
		return nil
	}
	if !seen {
		info, err := w.load(h)
		if err != nil {
			return err
		}
		w.infos[h] = info
		w.marks[h] = s
		w.queue.Push(queued{hash: h, when: info.when})
		return nil
	}
	w.marks[h] = old | s
	if w.done[h] {
		w.pushDown(h)
	}
	return nil
}

func (w *graphWalk) pushDown(h plumbing.Hash) {
	stack := []plumbing.Hash{h}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.marks[c] == sideBoth {
			delete(w.single, c)
		}
		for _, p := range w.infos[c].parents {
			pm, ok := w.marks[p]
			if !ok {
				// missing from the object store
				continue
			}
			next := pm | w.marks[c]
			if next == pm {
				continue
			}
			w.marks[p] = next
			if w.done[p] {
				stack = append(stack, p)
			}
		}
	}
}

func (w *graphWalk) process(cur queued) error {
	w.done[cur.hash] = true
	s := w.marks[cur.hash]
	if s != sideBoth {
		w.single[cur.hash] = cur.when
	}
	for _, p := range w.infos[cur.hash].parents {
		err := w.mark(p, s)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// settled reports whether further steps can no longer repaint a single-sided
// commit: every queued commit carries both marks and is strictly older than
// every single-sided commit already processed.
func (w *graphWalk) settled() bool {
	top, ok := w.queue.Peek()
	if !ok {
		return true
	}
	for _, v := range w.queue.Values() {
		if w.marks[v.(queued).hash] != sideBoth {
			return false
		}
	}
	newest := top.(queued).when
	for _, when := range w.single {
		if !newest.Before(when) {
			return false
		}
	}
	return true
}

// aheadBehind counts commits reachable from only one of local and upstream.
// Parents missing from the object store (shallow clones) are treated as roots.
func aheadBehind(ctx context.Context, load commitLoader, local, upstream plumbing.Hash) (int, int, error) {
	if local == upstream {
		return 0, 0, nil
	}

	w := newGraphWalk(load)
	if err := w.mark(local, sideLocal); err != nil {
		return 0, 0, err
	}
	if err := w.mark(upstream, sideUpstream); err != nil {
		return 0, 0, err
	}

	for !w.settled() {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		v, _ := w.queue.Pop()
		if err := w.process(v.(queued)); err != nil {
			return 0, 0, err
		}
	}

	ahead, behind := 0, 0
	for _, s := range w.marks {
		switch s {
		case sideLocal:
			ahead++
		case sideUpstream:
			behind++
		}
	}
	return ahead, behind, nil
}
