package sparseset

import (
	"iter"
	"strconv"
	"strings"
)

// Keys returns an iterator over the elements in dense order.
//
// The iterator is a live view, not a snapshot: each step reads the current
// length and dense array. Mutating the set during iteration may skip or
// repeat elements. Each call to the returned function starts over.
func (s *Set) Keys() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := uint32(0); i < s.tab.Len(); i++ {
			if !yield(s.tab.At(i)) {
				return
			}
		}
	}
}

// Values is identical to Keys: a set maps each key to itself.
func (s *Set) Values() iter.Seq[uint32] {
	return s.Keys()
}

// All returns an iterator over (key, key) pairs in dense order, with the
// same live-view semantics as Keys.
func (s *Set) All() iter.Seq2[uint32, uint32] {
	return func(yield func(uint32, uint32) bool) {
		for i := uint32(0); i < s.tab.Len(); i++ {
			k := s.tab.At(i)
			if !yield(k, k) {
				return
			}
		}
	}
}

// ForEach calls f for each element in dense order.
func (s *Set) ForEach(f func(uint32)) {
	for i := uint32(0); i < s.tab.Len(); i++ {
		f(s.tab.At(i))
	}
}

// AppendTo appends the elements in dense order to dst and returns the
// extended slice.
func (s *Set) AppendTo(dst []uint32) []uint32 {
	for i := uint32(0); i < s.tab.Len(); i++ {
		dst = append(dst, s.tab.At(i))
	}
	return dst
}

// String returns the elements in dense order, formatted as {a b c}.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := uint32(0); i < s.tab.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(s.tab.At(i)), 10))
	}
	b.WriteByte('}')
	return b.String()
}
