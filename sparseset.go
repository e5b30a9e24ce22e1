// Package sparseset implements the Briggs–Torczon sparse set: a set of
// integers drawn from a bounded universe [0, bound) with O(1) membership
// test, insertion and deletion, and O(n) set algebra.
//
// A Set is backed by two parallel arrays of length bound. The dense array
// holds the members packed at the front, in insertion order unless a
// removal reorders them. The sparse array maps each member to its position
// in the dense array. Entries past the current length are never trusted, so
// a Set can be built on memory that was never cleared, and Clear is O(1).
//
// Basic usage:
//
//	s, err := sparseset.New(64, 3, 1, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s.Add(1)           // already present, no change
//	s.Delete(3)        // true
//	fmt.Println(s)     // {4 1}: the last element took 3's slot
//
// Order-preserving sets keep the relative order of survivors across
// deletions and set algebra, at O(n) cost per deletion:
//
//	config := sparseset.DefaultConfig()
//	config.Order = sparseset.Ordered
//	s, _ := sparseset.NewWithConfig(16, config, 1, 2, 3, 4, 5)
//	s.Delete(3)        // {1 2 4 5}
//
// Storage width:
//
// Entries are stored as uint8, uint16 or uint32, the narrowest type able to
// hold every value in [0, bound]. The largest supported bound is
// math.MaxUint32. See RegionSize for the byte layout, which is also the
// layout expected of a caller-supplied Config.Region.
//
// A Set is not safe for concurrent use.
package sparseset

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/coregx/sparseset/internal/conv"
	"github.com/coregx/sparseset/internal/sparse"
)

// table is the width-independent view of a sparse.Table.
type table interface {
	Bound() uint32
	Len() uint32
	MemoryUsage() int
	At(i uint32) uint32
	Contains(v uint32) bool
	Insert(v uint32) bool
	RemoveSwap(v uint32) bool
	RemoveShift(v uint32) bool
	Truncate(n uint32)
	Clear()
	Retain(keep func(uint32) bool)
	RetainUnordered(keep func(uint32) bool)
	RetainSkipping(skip []uint32)
}

// Set is a set of uint32 keys from the universe [0, Bound()).
//
// The zero value is not usable; construct sets with New or NewWithConfig.
type Set struct {
	tab    table
	order  Order
	width  int
	region []byte // dense then sparse, exactly RegionSize(Bound()) bytes

	// positions of elements to drop during an ordered Xor, reused across calls
	skip []uint32
}

// New creates an unordered set over [0, bound) on freshly allocated storage
// and adds the given keys to it.
//
// Returns an error of kind UnsupportedSize if bound is negative or exceeds
// math.MaxUint32, and of kind OutOfBounds if any key is >= bound.
func New(bound int, keys ...uint32) (*Set, error) {
	return NewWithConfig(bound, DefaultConfig(), keys...)
}

// MustNew is like New but panics if the set cannot be created.
// It simplifies safe initialization of global variables.
func MustNew(bound int, keys ...uint32) *Set {
	s, err := New(bound, keys...)
	if err != nil {
		panic(fmt.Sprintf("sparseset: New(%d): %v", bound, err))
	}
	return s
}

// NewWithConfig creates a set over [0, bound) using the given configuration
// and adds the given keys to it.
//
// When config.Region is set, the set lives in
// config.Region[config.Offset : config.Offset+RegionSize(bound)] and that
// memory is not cleared: keys are loaded with the same checks as Add, so
// whatever the region held before cannot leak into the set.
//
// Example:
//
//	buf := make([]byte, 4096)
//	config := sparseset.DefaultConfig()
//	config.Region = buf
//	s, err := sparseset.NewWithConfig(200, config, 7, 9)
func NewWithConfig(bound int, config Config, keys ...uint32) (*Set, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s, err := newSet(bound, config.Order, config.Region, config.Offset)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		if err := s.Add(k); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RegionSize returns the number of bytes a set over [0, bound) occupies:
// two arrays of bound entries, dense first and sparse immediately after,
// each entry Width bytes wide.
func RegionSize(bound int) (int, error) {
	width := conv.WidthFor(bound)
	if width == 0 {
		return 0, newError(UnsupportedSize,
			fmt.Sprintf("unsupported size: bound %d outside [0, %d]", bound, uint64(math.MaxUint32)), bound)
	}
	size := 2 * uint64(bound) * uint64(width)
	if size > math.MaxInt {
		return 0, newError(UnsupportedSize,
			fmt.Sprintf("unsupported size: bound %d needs %d bytes", bound, size), bound)
	}
	return int(size), nil
}

func newSet(bound int, order Order, region []byte, offset int) (*Set, error) {
	size, err := RegionSize(bound)
	if err != nil {
		return nil, err
	}
	width := conv.WidthFor(bound)

	if region != nil {
		if offset > len(region) || len(region)-offset < size {
			return nil, newError(InvalidRegion,
				fmt.Sprintf("region of %d bytes at offset %d cannot hold %d bytes", len(region), offset, size), offset)
		}
		region = region[offset : offset+size : offset+size]
		if size > 0 && uintptr(unsafe.Pointer(&region[0]))%uintptr(width) != 0 {
			return nil, newError(InvalidRegion,
				fmt.Sprintf("region at offset %d is not aligned to %d bytes", offset, width), offset)
		}
	}
	if order == OrderDefault {
		order = Unordered
	}

	s := &Set{order: order, width: width}
	n := conv.IntToUint32(bound)
	switch width {
	case conv.Width8:
		s.tab, s.region = buildTable[uint8](n, region)
	case conv.Width16:
		s.tab, s.region = buildTable[uint16](n, region)
	default:
		s.tab, s.region = buildTable[uint32](n, region)
	}
	return s, nil
}

// buildTable lays a table over region, or over new memory when region is nil.
func buildTable[W sparse.Word](bound uint32, region []byte) (table, []byte) {
	var mem []W
	if region == nil {
		mem = make([]W, 2*int(bound))
		region = asBytes(mem)
	} else {
		mem = asWords[W](region, 2*int(bound))
	}
	return sparse.NewTable(mem, bound), region
}

func asWords[W sparse.Word](b []byte, n int) []W {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*W)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

func asBytes[W sparse.Word](mem []W) []byte {
	if len(mem) == 0 {
		return nil
	}
	var w W
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(mem))), len(mem)*int(unsafe.Sizeof(w)))
}

// overlaps reports whether a and b share any byte.
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

// Bound returns the size of the universe. Valid keys are [0, Bound()).
func (s *Set) Bound() int {
	return int(s.tab.Bound())
}

// Width returns the size in bytes of one dense or sparse entry: 1, 2 or 4.
func (s *Set) Width() int {
	return s.width
}

// Order returns the default order of destructive operations.
// It is never OrderDefault.
func (s *Set) Order() Order {
	return s.order
}

// Region returns the memory holding the set: the dense array followed by
// the sparse array, in native byte order. For a set built on a caller
// region this aliases that region. Entries past Len in either array are
// meaningless.
func (s *Set) Region() []byte {
	return s.region
}

// MemoryUsage returns the number of bytes used by the backing arrays.
func (s *Set) MemoryUsage() int {
	return s.tab.MemoryUsage()
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return int(s.tab.Len())
}

// Size returns the number of elements in the set. It is an alias for Len.
func (s *Set) Size() int {
	return s.Len()
}

// IsEmpty returns true if the set contains no elements.
func (s *Set) IsEmpty() bool {
	return s.tab.Len() == 0
}

// SetLen shrinks the set to its first n elements in dense order, dropping
// the most recently positioned ones. The set cannot grow this way; use Add.
//
// Returns an error of kind NegativeCardinality if n < 0 and of kind
// InvalidGrowth if n > Len(). The set is unchanged on error.
func (s *Set) SetLen(n int) error {
	if n < 0 {
		return newError(NegativeCardinality,
			fmt.Sprintf("negative cardinality: %d", n), n)
	}
	if n > s.Len() {
		return newError(InvalidGrowth,
			fmt.Sprintf("cardinality can only shrink: %d > %d", n, s.Len()), n)
	}
	s.tab.Truncate(uint32(n))
	return nil
}

// Clear removes all elements from the set in O(1) time.
func (s *Set) Clear() {
	s.tab.Clear()
}

// Has returns true if k is in the set. Keys outside the universe are never
// members.
func (s *Set) Has(k uint32) bool {
	return s.tab.Contains(k)
}

// Add inserts k, appending it at the end of the dense order.
// Adding a key that is already present is a no-op.
//
// Returns an error of kind OutOfBounds if k >= Bound().
func (s *Set) Add(k uint32) error {
	if k >= s.tab.Bound() {
		return newError(OutOfBounds,
			fmt.Sprintf("key %d out of bounds [0, %d)", k, s.tab.Bound()), int(k))
	}
	s.tab.Insert(k)
	return nil
}

// Delete removes k using the set's default order and reports whether k was
// present.
func (s *Set) Delete(k uint32) bool {
	return s.DeleteWith(k, OrderDefault)
}

// DeleteWith removes k and reports whether k was present.
//
// With Ordered, every element after k moves one slot towards the front and
// relative order is unchanged. With Unordered, the last element takes k's
// slot. OrderDefault uses the set's own order.
func (s *Set) DeleteWith(k uint32, order Order) bool {
	if s.resolve(order) == Ordered {
		return s.tab.RemoveShift(k)
	}
	return s.tab.RemoveSwap(k)
}

func (s *Set) resolve(order Order) Order {
	if order == OrderDefault {
		return s.order
	}
	return order
}
