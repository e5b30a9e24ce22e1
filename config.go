package sparseset

// Order selects how destructive operations treat the positional order of
// the dense array.
type Order uint8

const (
	// OrderDefault defers to the set's own order. As a construction setting
	// it means Unordered; in CopyConfig it means the source's order.
	OrderDefault Order = iota

	// Unordered allows removals to move the last element into the vacated
	// slot. Deletion is O(1).
	Unordered

	// Ordered keeps the relative order of surviving elements. Deletion is
	// O(n) in the number of elements after the removed one.
	Ordered
)

// String returns the order name.
func (o Order) String() string {
	switch o {
	case OrderDefault:
		return "default"
	case Unordered:
		return "unordered"
	case Ordered:
		return "ordered"
	default:
		return "invalid"
	}
}

// Config controls how a Set is constructed.
//
// Example:
//
//	config := sparseset.DefaultConfig()
//	config.Order = sparseset.Ordered
//	s, err := sparseset.NewWithConfig(1024, config)
type Config struct {
	// Order is the default order used by Delete, Intersection, Difference
	// and Xor.
	// Default: Unordered
	Order Order

	// Region, when non-nil, is caller-owned memory the set is built on
	// instead of allocating. The set uses RegionSize(bound) bytes starting
	// at Offset: the dense array first, the sparse array right after it.
	// The bytes are not cleared. The caller must keep Region alive, and must
	// not hand the same bytes to another live set, for as long as the set
	// is in use.
	Region []byte

	// Offset is the byte offset into Region. It must be a multiple of the
	// storage width chosen for the bound.
	// Default: 0
	Offset int
}

// DefaultConfig returns a configuration for an unordered set on freshly
// allocated storage.
func DefaultConfig() Config {
	return Config{
		Order: Unordered,
	}
}

// Validate checks if the configuration is valid.
// Region size and alignment depend on the bound and are checked by NewWithConfig.
func (c Config) Validate() error {
	return validate(c.Order, c.Region, c.Offset)
}

// CopyConfig controls the set produced by CopyWithConfig and
// ComplementWithConfig.
type CopyConfig struct {
	// Bound is the universe of the new set.
	// Default: 0, which keeps the source bound.
	Bound int

	// Order is the default order of the new set.
	// Default: OrderDefault, which keeps the source order.
	Order Order

	// Region and Offset supply caller-owned memory for the new set, with
	// the same rules as Config. The span used must not overlap the source
	// set's Region, or the copy fails with InvalidRegion.
	Region []byte
	Offset int
}

// Validate checks if the configuration is valid.
func (c CopyConfig) Validate() error {
	if c.Bound < 0 {
		return &ConfigError{
			Field:   "Bound",
			Message: "must not be negative",
		}
	}
	return validate(c.Order, c.Region, c.Offset)
}

func validate(order Order, region []byte, offset int) error {
	if order > Ordered {
		return &ConfigError{
			Field:   "Order",
			Message: "must be OrderDefault, Unordered or Ordered",
		}
	}
	if offset < 0 {
		return &ConfigError{
			Field:   "Offset",
			Message: "must not be negative",
		}
	}
	if region == nil && offset != 0 {
		return &ConfigError{
			Field:   "Offset",
			Message: "requires a Region",
		}
	}
	return nil
}
