package worklist

import (
	"fmt"

	"github.com/coregx/sparseset"
)

// Liveness solves backward liveness over the control flow graph cfg.
//
// use[b] holds the variables block b reads before writing them and def[b]
// the variables it writes. The result satisfies
//
//	out[b] = ∪ in[s] for each successor s of b
//	in[b]  = use[b] ∪ (out[b] − def[b])
//
// The variable universe is the largest bound among use and def. Blocks are
// revisited through a FIFO worklist whose membership is a sparse set, so a
// block is never queued twice.
func Liveness(cfg Graph, use, def []*sparseset.Set) (in, out []*sparseset.Set, err error) {
	n := cfg.Len()
	if len(use) != n || len(def) != n {
		return nil, nil, fmt.Errorf("%w: %d blocks, %d use sets, %d def sets", ErrMismatch, n, len(use), len(def))
	}

	vars := 0
	for b := 0; b < n; b++ {
		if use[b] == nil || def[b] == nil {
			return nil, nil, fmt.Errorf("%w: block %d has no use or def set", ErrMismatch, b)
		}
		vars = max(vars, use[b].Bound(), def[b].Bound())
	}

	preds, err := predecessors(cfg)
	if err != nil {
		return nil, nil, err
	}

	in = make([]*sparseset.Set, n)
	out = make([]*sparseset.Set, n)
	for b := 0; b < n; b++ {
		if in[b], err = sparseset.New(vars); err != nil {
			return nil, nil, err
		}
		if out[b], err = sparseset.New(vars); err != nil {
			return nil, nil, err
		}
	}
	next, err := sparseset.New(vars)
	if err != nil {
		return nil, nil, err
	}
	queued, err := sparseset.New(n)
	if err != nil {
		return nil, nil, err
	}

	// Seed in reverse block order; information flows backwards.
	queue := make([]uint32, 0, n)
	for b := n - 1; b >= 0; b-- {
		queue = append(queue, uint32(b))
		// Blocks are below n, the bound of queued.
		_ = queued.Add(uint32(b))
	}

	var succ []uint32
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		queued.Delete(b)

		o := out[b]
		o.Clear()
		succ = cfg.Successors(b, succ[:0])
		for _, s := range succ {
			o.Union(in[s])
		}

		next.Clear()
		next.Union(o)
		next.Difference(def[b])
		next.Union(use[b])
		if next.Equal(in[b]) {
			continue
		}
		in[b], next = next, in[b]

		for _, p := range preds[b] {
			if !queued.Has(p) {
				// predecessors only returns vertices below n.
				_ = queued.Add(p)
				queue = append(queue, p)
			}
		}
	}
	return in, out, nil
}

// predecessors inverts the successor lists of g.
func predecessors(g Graph) ([][]uint32, error) {
	n := g.Len()
	preds := make([][]uint32, n)
	var succ []uint32
	for v := 0; v < n; v++ {
		succ = g.Successors(uint32(v), succ[:0])
		for _, s := range succ {
			if int(s) >= n {
				return nil, fmt.Errorf("%w: successor %d of %d in graph of %d vertices", ErrInvalidVertex, s, v, n)
			}
			preds[s] = append(preds[s], uint32(v))
		}
	}
	return preds, nil
}
