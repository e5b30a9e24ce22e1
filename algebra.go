package sparseset

// Union adds every element of other that fits this set's universe.
//
// Existing elements keep their positions; new elements are appended in
// other's dense order. Elements of other at or beyond Bound() are dropped
// without error. Runs in O(other.Len()).
func (s *Set) Union(other *Set) {
	if other == s {
		return
	}
	bound := s.tab.Bound()
	for i := uint32(0); i < other.tab.Len(); i++ {
		if k := other.tab.At(i); k < bound {
			s.tab.Insert(k)
		}
	}
}

// Intersection removes every element that is not in other, using the set's
// default order.
func (s *Set) Intersection(other *Set) {
	s.IntersectionWith(other, OrderDefault)
}

// IntersectionWith removes every element that is not in other. other is
// not modified. Runs in O(Len()).
func (s *Set) IntersectionWith(other *Set, order Order) {
	if other == s {
		return
	}
	s.retain(other, false, order)
}

// Difference removes every element that is in other, using the set's
// default order.
func (s *Set) Difference(other *Set) {
	s.DifferenceWith(other, OrderDefault)
}

// DifferenceWith removes every element that is in other. other is not
// modified. Runs in O(Len()).
func (s *Set) DifferenceWith(other *Set, order Order) {
	if other == s {
		s.Clear()
		return
	}
	s.retain(other, true, order)
}

// retain filters the set by membership in other: an element survives when
// other.Has(k) differs from diff. Ordered compacts in one left-to-right pass;
// Unordered swaps the last element into each rejected slot.
func (s *Set) retain(other *Set, diff bool, order Order) {
	keep := func(k uint32) bool {
		return other.tab.Contains(k) != diff
	}
	if s.resolve(order) == Ordered {
		s.tab.Retain(keep)
		return
	}
	s.tab.RetainUnordered(keep)
}

// Xor replaces the set with the symmetric difference of itself and other,
// using the set's default order.
func (s *Set) Xor(other *Set) {
	s.XorWith(other, OrderDefault)
}

// XorWith replaces the set with the elements that are in exactly one of the
// set and other, restricted to [0, Bound()).
//
// With Unordered, each element of other is toggled: removed by swap if
// present, appended if absent. This runs in O(other.Len()).
//
// With Ordered, the result holds the set's own surviving elements in their
// original relative order, followed by other's new elements in other's dense
// order. This runs in O(Len() + other.Len()).
func (s *Set) XorWith(other *Set, order Order) {
	if other == s {
		s.Clear()
		return
	}
	if s.resolve(order) == Ordered {
		s.xorOrdered(other)
		return
	}
	bound := s.tab.Bound()
	for i := uint32(0); i < other.tab.Len(); i++ {
		k := other.tab.At(i)
		if k >= bound {
			continue
		}
		if !s.tab.RemoveSwap(k) {
			s.tab.Insert(k)
		}
	}
}

// xorOrdered records the positions of the elements shared with other,
// appends other's new elements (which moves no existing element, so the
// recorded positions stay valid), then compacts once, skipping the
// recorded positions.
func (s *Set) xorOrdered(other *Set) {
	skip := s.skip[:0]
	for i := uint32(0); i < s.tab.Len(); i++ {
		if other.tab.Contains(s.tab.At(i)) {
			skip = append(skip, i)
		}
	}
	s.Union(other)
	s.tab.RetainSkipping(skip)
	s.skip = skip
}

// Equal reports whether the set and other contain the same elements,
// regardless of order or bound.
func (s *Set) Equal(other *Set) bool {
	if s.tab.Len() != other.tab.Len() {
		return false
	}
	for i := uint32(0); i < s.tab.Len(); i++ {
		if !other.tab.Contains(s.tab.At(i)) {
			return false
		}
	}
	return true
}
