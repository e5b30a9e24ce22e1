// Package sparse provides the dense/sparse table behind sparseset.Set.
//
// A Table supports O(1) insertion, deletion and membership testing while
// keeping its elements packed at the front of a dense array. The sparse array
// maps values to indices in the dense array and is never trusted on its own:
// an entry counts only if it points below the current size and the dense
// slot it points to holds the same value. This lets a Table sit on top of
// memory that was never cleared.
//
// Table is generic over the storage width so that small universes use one
// byte per entry. All values crossing the API are uint32.
package sparse

import "unsafe"

// Word is the set of storage widths a Table can use.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// Table is a dense/sparse pair over a fixed universe [0, Bound()).
// The zero value is an empty table with a zero universe.
type Table[W Word] struct {
	dense  []W    // values, packed in [0, size)
	sparse []W    // value -> index in dense, valid only for members
	size   uint32 // current number of elements
}

// NewTable builds an empty table whose dense array is mem[:bound] and whose
// sparse array is mem[bound:2*bound]. The contents of mem are left as they
// are. Panics if len(mem) < 2*bound.
func NewTable[W Word](mem []W, bound uint32) *Table[W] {
	n := int(bound)
	return &Table[W]{
		dense:  mem[:n:n],
		sparse: mem[n : 2*n : 2*n],
	}
}

// Bound returns the size of the universe.
func (t *Table[W]) Bound() uint32 {
	return uint32(len(t.dense))
}

// Len returns the number of elements in the table.
func (t *Table[W]) Len() uint32 {
	return t.size
}

// MemoryUsage returns the number of bytes held by the dense and sparse arrays.
func (t *Table[W]) MemoryUsage() int {
	var w W
	return 2 * len(t.dense) * int(unsafe.Sizeof(w))
}

// At returns the element at dense position i. i must be below Len.
func (t *Table[W]) At(i uint32) uint32 {
	return uint32(t.dense[i])
}

// Contains returns true if the value is in the table.
// Values outside the universe are never members.
func (t *Table[W]) Contains(value uint32) bool {
	if value >= uint32(len(t.sparse)) {
		return false
	}
	idx := uint32(t.sparse[value])
	return idx < t.size && uint32(t.dense[idx]) == value
}

// Insert appends value if it is absent and reports whether it was added.
// value must be below Bound.
func (t *Table[W]) Insert(value uint32) bool {
	if t.Contains(value) {
		return false
	}
	// size < Bound here, so both fit in W.
	t.dense[t.size] = W(value)
	t.sparse[value] = W(t.size)
	t.size++
	return true
}

// RemoveSwap removes value by moving the last element into its slot.
// Reports whether value was present.
func (t *Table[W]) RemoveSwap(value uint32) bool {
	if !t.Contains(value) {
		return false
	}
	idx := t.sparse[value]
	t.size--
	last := t.dense[t.size]
	t.dense[idx] = last
	t.sparse[last] = idx
	return true
}

// RemoveShift removes value by shifting every later element one slot to the
// left, so the relative order of the remaining elements is unchanged.
// Reports whether value was present.
func (t *Table[W]) RemoveShift(value uint32) bool {
	if !t.Contains(value) {
		return false
	}
	for i := uint32(t.sparse[value]) + 1; i < t.size; i++ {
		v := t.dense[i]
		t.dense[i-1] = v
		t.sparse[v] = W(i - 1)
	}
	t.size--
	return true
}

// Truncate drops every element at dense position n or later.
// n must not exceed Len.
func (t *Table[W]) Truncate(n uint32) {
	t.size = n
}

// Clear removes all elements from the table in O(1) time.
func (t *Table[W]) Clear() {
	t.size = 0
}

// Retain keeps the elements for which keep returns true, compacting them
// towards the front in their current relative order.
func (t *Table[W]) Retain(keep func(uint32) bool) {
	j := uint32(0)
	for i := uint32(0); i < t.size; i++ {
		v := t.dense[i]
		if !keep(uint32(v)) {
			continue
		}
		t.dense[j] = v
		t.sparse[v] = W(j)
		j++
	}
	t.size = j
}

// RetainUnordered keeps the elements for which keep returns true. A rejected
// element is overwritten by the current last element, which is then tested
// in the same slot.
func (t *Table[W]) RetainUnordered(keep func(uint32) bool) {
	i := uint32(0)
	for i < t.size {
		if keep(uint32(t.dense[i])) {
			i++
			continue
		}
		t.size--
		last := t.dense[t.size]
		t.dense[i] = last
		t.sparse[last] = W(i)
	}
}

// RetainSkipping compacts the table, dropping the elements at the given
// dense positions. skip must be sorted in ascending order.
func (t *Table[W]) RetainSkipping(skip []uint32) {
	j, s := uint32(0), 0
	for i := uint32(0); i < t.size; i++ {
		if s < len(skip) && skip[s] == i {
			s++
			continue
		}
		v := t.dense[i]
		t.dense[j] = v
		t.sparse[v] = W(j)
		j++
	}
	t.size = j
}
