// Package conv provides storage width selection and checked integer
// conversions for the sparse set.
//
// The narrowing helpers panic on overflow since a failed conversion after
// bound validation indicates a programming error, not bad input.
package conv

import "math"

// Storage widths in bytes.
const (
	Width8  = 1
	Width16 = 2
	Width32 = 4
)

// WidthFor returns the narrowest storage width (in bytes) able to represent
// every value in [0, bound], bound included. It returns 0 when bound is
// negative or exceeds math.MaxUint32.
func WidthFor(bound int) int {
	switch {
	case bound < 0:
		return 0
	case bound <= math.MaxUint8:
		return Width8
	case bound <= math.MaxUint16:
		return Width16
	case uint64(bound) <= math.MaxUint32:
		return Width32
	default:
		return 0
	}
}

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
