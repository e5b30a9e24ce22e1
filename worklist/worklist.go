// Package worklist provides graph algorithms built on sparse sets: a
// reusable depth-first reachability walker and a backward liveness solver.
//
// Both follow the same pattern: a sparse set over the vertex universe marks
// visited or queued vertices, so resetting between runs is O(1) no matter
// how large the graph is.
package worklist

import (
	"errors"
	"fmt"

	"github.com/coregx/sparseset"
)

var (
	// ErrInvalidVertex indicates a root or successor outside [0, Len()).
	ErrInvalidVertex = errors.New("worklist: invalid vertex")

	// ErrMismatch indicates per-vertex inputs whose count differs from the graph size.
	ErrMismatch = errors.New("worklist: input size mismatch")
)

// Graph is a directed graph over the vertices [0, Len()).
type Graph interface {
	// Len returns the number of vertices.
	Len() int

	// Successors appends the successors of v to dst and returns the result.
	Successors(v uint32, dst []uint32) []uint32
}

// Adjacency is a Graph stored as successor lists.
type Adjacency [][]uint32

// Len implements Graph.
func (a Adjacency) Len() int {
	return len(a)
}

// Successors implements Graph.
func (a Adjacency) Successors(v uint32, dst []uint32) []uint32 {
	return append(dst, a[v]...)
}

// Walker computes the set of vertices reachable from a list of roots.
// A Walker reuses its storage between calls and is not safe for concurrent use.
type Walker struct {
	seen  *sparseset.Set // vertices already visited, in discovery order
	stack []uint32       // DFS stack
	succ  []uint32       // successor buffer
}

// NewWalker creates a walker for graphs of up to n vertices.
// Larger graphs are accepted later at the cost of a reallocation.
func NewWalker(n int) (*Walker, error) {
	seen, err := newSeen(n)
	if err != nil {
		return nil, err
	}
	return &Walker{
		seen:  seen,
		stack: make([]uint32, 0, 16),
	}, nil
}

func newSeen(n int) (*sparseset.Set, error) {
	config := sparseset.DefaultConfig()
	config.Order = sparseset.Ordered
	return sparseset.NewWithConfig(n, config)
}

// Reachable returns every vertex reachable from roots, roots included, in
// depth-first preorder. Successors are explored in the order the graph
// reports them.
//
// The returned set belongs to the walker and is only valid until the next
// call to Reachable.
func (w *Walker) Reachable(g Graph, roots ...uint32) (*sparseset.Set, error) {
	n := g.Len()
	if n > w.seen.Bound() {
		seen, err := newSeen(n)
		if err != nil {
			return nil, err
		}
		w.seen = seen
	}
	w.seen.Clear()
	w.stack = w.stack[:0]

	for i := len(roots) - 1; i >= 0; i-- {
		if int(roots[i]) >= n {
			return nil, fmt.Errorf("%w: root %d in graph of %d vertices", ErrInvalidVertex, roots[i], n)
		}
		w.stack = append(w.stack, roots[i])
	}

	for len(w.stack) > 0 {
		v := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.seen.Has(v) {
			continue
		}
		if err := w.seen.Add(v); err != nil {
			return nil, err
		}

		w.succ = g.Successors(v, w.succ[:0])
		for i := len(w.succ) - 1; i >= 0; i-- {
			s := w.succ[i]
			if int(s) >= n {
				return nil, fmt.Errorf("%w: successor %d of %d in graph of %d vertices", ErrInvalidVertex, s, v, n)
			}
			if !w.seen.Has(s) {
				w.stack = append(w.stack, s)
			}
		}
	}
	return w.seen, nil
}
