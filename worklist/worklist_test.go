package worklist

import (
	"errors"
	"testing"

	"github.com/coregx/sparseset"
)

func TestReachable(t *testing.T) {
	g := Adjacency{
		0: {1, 2},
		1: {3},
		2: {3},
		3: {},
		4: {0},
	}

	w, err := NewWalker(g.Len())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		roots []uint32
		want  []uint32
	}{
		{"from 0", []uint32{0}, []uint32{0, 1, 3, 2}},
		{"from 4", []uint32{4}, []uint32{4, 0, 1, 3, 2}},
		{"leaf", []uint32{3}, []uint32{3}},
		{"two roots", []uint32{2, 1}, []uint32{2, 3, 1}},
		{"no roots", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.Reachable(g, tt.roots...)
			if err != nil {
				t.Fatal(err)
			}
			vals := got.AppendTo(nil)
			if len(vals) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, vals)
			}
			for i := range vals {
				if vals[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, vals)
				}
			}
		})
	}
}

func TestReachableCycle(t *testing.T) {
	g := Adjacency{{1}, {2}, {0, 1}}
	w, _ := NewWalker(3)
	got, err := w.Reachable(g, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 3 {
		t.Errorf("expected all 3 vertices, got %v", got)
	}
}

func TestReachableGrows(t *testing.T) {
	w, err := NewWalker(2)
	if err != nil {
		t.Fatal(err)
	}
	g := make(Adjacency, 1000)
	for v := 0; v < 999; v++ {
		g[v] = []uint32{uint32(v + 1)}
	}
	got, err := w.Reachable(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1000 || !got.Has(999) {
		t.Errorf("expected a chain of 1000 vertices, got %d", got.Len())
	}
}

func TestReachableInvalidVertex(t *testing.T) {
	w, _ := NewWalker(4)

	if _, err := w.Reachable(Adjacency{{}, {}}, 3); !errors.Is(err, ErrInvalidVertex) {
		t.Errorf("root outside graph: error = %v, want ErrInvalidVertex", err)
	}
	if _, err := w.Reachable(Adjacency{{5}, {}}, 0); !errors.Is(err, ErrInvalidVertex) {
		t.Errorf("successor outside graph: error = %v, want ErrInvalidVertex", err)
	}
}

func set(t *testing.T, bound int, keys ...uint32) *sparseset.Set {
	t.Helper()
	s, err := sparseset.New(bound, keys...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLiveness(t *testing.T) {
	const a, b, c = 0, 1, 2

	// B0: a = 1; b = 2
	// B1: c = a + b
	// B2: a = c; goto B1
	// B3: return a
	cfg := Adjacency{
		0: {1},
		1: {2, 3},
		2: {1},
		3: {},
	}
	use := []*sparseset.Set{set(t, 3), set(t, 3, a, b), set(t, 3, c), set(t, 3, a)}
	def := []*sparseset.Set{set(t, 3, a, b), set(t, 3, c), set(t, 3, a), set(t, 3)}

	in, out, err := Liveness(cfg, use, def)
	if err != nil {
		t.Fatal(err)
	}

	wantIn := []*sparseset.Set{set(t, 3), set(t, 3, a, b), set(t, 3, b, c), set(t, 3, a)}
	wantOut := []*sparseset.Set{set(t, 3, a, b), set(t, 3, a, b, c), set(t, 3, a, b), set(t, 3)}
	for blk := range cfg {
		if !in[blk].Equal(wantIn[blk]) {
			t.Errorf("in[%d] = %v, want %v", blk, in[blk], wantIn[blk])
		}
		if !out[blk].Equal(wantOut[blk]) {
			t.Errorf("out[%d] = %v, want %v", blk, out[blk], wantOut[blk])
		}
	}
}

func TestLivenessLoopRequeues(t *testing.T) {
	// A ring of blocks where only the last reads v: v must flow backwards
	// around the whole ring, requeueing every block on the way.
	const n, v = 50, 3
	cfg := make(Adjacency, n)
	use := make([]*sparseset.Set, n)
	def := make([]*sparseset.Set, n)
	for blk := 0; blk < n; blk++ {
		cfg[blk] = []uint32{uint32((blk + 1) % n)}
		use[blk] = set(t, 8)
		def[blk] = set(t, 8)
	}
	use[n-1] = set(t, 8, v)
	def[0] = set(t, 8, 5)

	in, out, err := Liveness(cfg, use, def)
	if err != nil {
		t.Fatal(err)
	}
	for blk := 0; blk < n; blk++ {
		if !in[blk].Equal(set(t, 8, v)) {
			t.Errorf("in[%d] = %v, want {%d}", blk, in[blk], v)
		}
		if !out[blk].Equal(set(t, 8, v)) {
			t.Errorf("out[%d] = %v, want {%d}", blk, out[blk], v)
		}
	}
}

func TestLivenessErrors(t *testing.T) {
	cfg := Adjacency{{1}, {}}

	if _, _, err := Liveness(cfg, []*sparseset.Set{set(t, 2)}, []*sparseset.Set{set(t, 2)}); !errors.Is(err, ErrMismatch) {
		t.Errorf("short inputs: error = %v, want ErrMismatch", err)
	}
	if _, _, err := Liveness(cfg, []*sparseset.Set{set(t, 2), nil}, []*sparseset.Set{set(t, 2), set(t, 2)}); !errors.Is(err, ErrMismatch) {
		t.Errorf("nil input: error = %v, want ErrMismatch", err)
	}
	bad := Adjacency{{7}, {}}
	if _, _, err := Liveness(bad, []*sparseset.Set{set(t, 2), set(t, 2)}, []*sparseset.Set{set(t, 2), set(t, 2)}); !errors.Is(err, ErrInvalidVertex) {
		t.Errorf("bad edge: error = %v, want ErrInvalidVertex", err)
	}
}

func BenchmarkReachable(b *testing.B) {
	const n = 4096
	g := make(Adjacency, n)
	for v := 0; v < n; v++ {
		g[v] = []uint32{uint32((v*7 + 1) % n), uint32((v*13 + 5) % n)}
	}
	w, _ := NewWalker(n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Reachable(g, 0)
	}
}
