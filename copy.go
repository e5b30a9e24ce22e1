package sparseset

import "fmt"

// Copy returns a new set with the same bound, order and elements, in the
// same dense order, on freshly allocated storage.
func (s *Set) Copy() *Set {
	c, err := s.CopyWithConfig(CopyConfig{})
	if err != nil {
		// The source bound is already validated and no region is supplied.
		panic("sparseset: Copy: " + err.Error())
	}
	return c
}

// CopyWithConfig returns a new set holding every element of s that is below
// the new bound, in s's dense order. The source's memory is never shared:
// a config.Region span overlapping s.Region() fails with InvalidRegion.
//
// Example:
//
//	small, err := s.CopyWithConfig(sparseset.CopyConfig{Bound: 16})
func (s *Set) CopyWithConfig(config CopyConfig) (*Set, error) {
	c, err := s.derive(config)
	if err != nil {
		return nil, err
	}
	bound := c.tab.Bound()
	for i := uint32(0); i < s.tab.Len(); i++ {
		if k := s.tab.At(i); k < bound {
			c.tab.Insert(k)
		}
	}
	return c, nil
}

// Complement returns a new set over the same universe holding every key not
// in s, in ascending order.
func (s *Set) Complement() *Set {
	c, err := s.ComplementWithConfig(CopyConfig{})
	if err != nil {
		panic("sparseset: Complement: " + err.Error())
	}
	return c
}

// ComplementWithConfig returns a new set holding every key in [0, newBound)
// that is not in s, in ascending order. Runs in O(newBound).
func (s *Set) ComplementWithConfig(config CopyConfig) (*Set, error) {
	c, err := s.derive(config)
	if err != nil {
		return nil, err
	}
	bound := c.tab.Bound()
	for k := uint32(0); k < bound; k++ {
		if !s.tab.Contains(k) {
			c.tab.Insert(k)
		}
	}
	return c, nil
}

// derive creates the empty destination of a copy or complement.
func (s *Set) derive(config CopyConfig) (*Set, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	bound := config.Bound
	if bound == 0 {
		bound = s.Bound()
	}
	order := config.Order
	if order == OrderDefault {
		order = s.order
	}
	c, err := newSet(bound, order, config.Region, config.Offset)
	if err != nil {
		return nil, err
	}
	if overlaps(c.region, s.region) {
		return nil, newError(InvalidRegion,
			fmt.Sprintf("region at offset %d overlaps the source set", config.Offset), config.Offset)
	}
	return c, nil
}
