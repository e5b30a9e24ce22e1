package script

import (
	"fmt"
	"iter"
	"slices"

	"github.com/coregx/sparseset"
	"github.com/coregx/sparseset/region"
)

// RunConfig controls how a scenario is replayed.
type RunConfig struct {
	// Alloc, when set, supplies the backing memory of every set the
	// scenario creates. It receives the number of bytes needed.
	Alloc func(size int) ([]byte, error)

	// Dirty fills backing memory with pseudo-random bytes before a set is
	// built on it. Without Alloc, dirty memory comes from the heap.
	Dirty bool

	// Seed selects the garbage written when Dirty is set.
	Seed uint64

	// Trace, when set, is called after every step with its 1-based index.
	Trace func(step int, st Step, s *sparseset.Set)
}

// Result holds the sets a scenario produced.
type Result struct {
	sets map[string]*sparseset.Set
}

// Names returns the set names in sorted order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Set returns the named set, or nil.
func (r *Result) Set(name string) *sparseset.Set {
	return r.sets[name]
}

// All returns an iterator over the sets in sorted name order.
func (r *Result) All() iter.Seq2[string, *sparseset.Set] {
	return func(yield func(string, *sparseset.Set) bool) {
		for _, name := range r.Names() {
			if !yield(name, r.sets[name]) {
				return
			}
		}
	}
}

type runner struct {
	cfg    RunConfig
	sets   map[string]*sparseset.Set
	allocs uint64
}

// Run validates and replays the scenario and checks its expectations.
// Scenarios built in code need not call Validate first.
//
// On an expectation mismatch Run returns both the Result and an error
// wrapping ErrExpectation.
func (sc *Scenario) Run(cfg RunConfig) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	r := &runner{cfg: cfg, sets: make(map[string]*sparseset.Set, len(sc.Sets))}

	for _, name := range sc.setNames() {
		s, err := r.newSet(sc.Bound, sc.order)
		if err != nil {
			return nil, fmt.Errorf("script: set %q: %w", name, err)
		}
		for _, k := range sc.Sets[name] {
			if err := s.Add(k); err != nil {
				return nil, fmt.Errorf("script: set %q: %w", name, err)
			}
		}
		r.sets[name] = s
	}

	for i, st := range sc.Steps {
		if err := r.apply(st); err != nil {
			return nil, fmt.Errorf("script: step %d (%s %s): %w", i+1, st.Op, st.Set, err)
		}
		if cfg.Trace != nil {
			cfg.Trace(i+1, st, r.sets[st.Set])
		}
	}

	res := &Result{sets: r.sets}
	return res, sc.check(res)
}

func (r *runner) lookup(name string) (*sparseset.Set, error) {
	s, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSet, name)
	}
	return s, nil
}

func (r *runner) apply(st Step) error {
	if st.Op == OpCopy || st.Op == OpComplement {
		return r.derive(st)
	}

	s, err := r.lookup(st.Set)
	if err != nil {
		return err
	}

	switch st.Op {
	case OpAdd:
		if st.Key != nil {
			if err := s.Add(*st.Key); err != nil {
				return err
			}
		}
		for _, k := range st.Keys {
			if err := s.Add(k); err != nil {
				return err
			}
		}
	case OpDelete:
		s.DeleteWith(*st.Key, st.order)
	case OpClear:
		s.Clear()
	case OpTruncate:
		return s.SetLen(*st.Len)
	default:
		other, err := r.lookup(st.Other)
		if err != nil {
			return err
		}
		switch st.Op {
		case OpUnion:
			s.Union(other)
		case OpIntersection:
			s.IntersectionWith(other, st.order)
		case OpDifference:
			s.DifferenceWith(other, st.order)
		case OpXor:
			s.XorWith(other, st.order)
		default:
			return fmt.Errorf("unknown op %q", st.Op)
		}
	}
	return nil
}

// derive replaces st.Set with a copy or complement of st.Other.
func (r *runner) derive(st Step) error {
	src, err := r.lookup(st.Other)
	if err != nil {
		return err
	}
	bound := st.Bound
	if bound == 0 {
		bound = src.Bound()
	}
	config := sparseset.CopyConfig{Bound: bound, Order: st.order}
	if config.Region, err = r.region(bound); err != nil {
		return err
	}

	var dst *sparseset.Set
	if st.Op == OpCopy {
		dst, err = src.CopyWithConfig(config)
	} else {
		dst, err = src.ComplementWithConfig(config)
	}
	if err != nil {
		return err
	}
	r.sets[st.Set] = dst
	return nil
}

func (r *runner) newSet(bound int, order sparseset.Order) (*sparseset.Set, error) {
	config := sparseset.DefaultConfig()
	if order != sparseset.OrderDefault {
		config.Order = order
	}
	var err error
	if config.Region, err = r.region(bound); err != nil {
		return nil, err
	}
	return sparseset.NewWithConfig(bound, config)
}

// region returns caller-visible backing memory for a set over bound, or nil
// when sets should allocate their own.
func (r *runner) region(bound int) ([]byte, error) {
	if r.cfg.Alloc == nil && !r.cfg.Dirty {
		return nil, nil
	}
	size, err := sparseset.RegionSize(bound)
	if err != nil {
		return nil, err
	}
	var mem []byte
	if r.cfg.Alloc != nil {
		if mem, err = r.cfg.Alloc(size); err != nil {
			return nil, err
		}
	} else {
		mem = make([]byte, size)
	}
	if r.cfg.Dirty {
		region.Fill(mem, r.cfg.Seed+r.allocs)
	}
	r.allocs++
	return mem, nil
}

// check compares the final sets with the scenario's expectations, element
// by element in dense order.
func (sc *Scenario) check(res *Result) error {
	names := make([]string, 0, len(sc.Expect))
	for name := range sc.Expect {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		s := res.Set(name)
		if s == nil {
			return fmt.Errorf("%w: %w %q", ErrExpectation, ErrUnknownSet, name)
		}
		want := sc.Expect[name]
		if got := s.AppendTo(nil); !slices.Equal(got, want) {
			return fmt.Errorf("%w: set %q is %v, want %v", ErrExpectation, name, got, want)
		}
	}
	return nil
}
