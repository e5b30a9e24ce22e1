package sparseset

import (
	"errors"
	"testing"
)

func TestCopy(t *testing.T) {
	s := mustNewWith(t, 100, Ordered, 50, 7, 99, 3)
	c := s.Copy()

	if c.Bound() != 100 || c.Order() != Ordered {
		t.Errorf("Copy() has bound %d order %v, want 100 ordered", c.Bound(), c.Order())
	}
	if got, want := elems(c), []uint32{50, 7, 99, 3}; !sameOrder(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if &c.Region()[0] == &s.Region()[0] {
		t.Fatal("copy shares storage with its source")
	}

	c.Add(1)
	c.Delete(50)
	if s.Has(1) || !s.Has(50) {
		t.Error("modifying the copy changed the source")
	}
	checkInvariants(t, c)
}

func TestCopyWithConfig(t *testing.T) {
	s := MustNew(1000, 900, 12, 255, 256, 3)

	t.Run("smaller bound", func(t *testing.T) {
		c, err := s.CopyWithConfig(CopyConfig{Bound: 256, Order: Ordered})
		if err != nil {
			t.Fatal(err)
		}
		if c.Width() != 2 || c.Order() != Ordered {
			t.Errorf("width %d order %v, want 2 ordered", c.Width(), c.Order())
		}
		if got, want := elems(c), []uint32{12, 255, 3}; !sameOrder(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		checkInvariants(t, c)
	})

	t.Run("larger bound", func(t *testing.T) {
		c, err := s.CopyWithConfig(CopyConfig{Bound: 100000})
		if err != nil {
			t.Fatal(err)
		}
		if c.Order() != Unordered {
			t.Errorf("order %v, want the source's", c.Order())
		}
		if got, want := elems(c), elems(s); !sameOrder(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if err := c.Add(99999); err != nil {
			t.Errorf("larger copy rejected a key in its universe: %v", err)
		}
	})

	t.Run("into region", func(t *testing.T) {
		size, _ := RegionSize(16)
		buf := make([]byte, size)
		for i := range buf {
			buf[i] = 0xFF
		}
		c, err := s.CopyWithConfig(CopyConfig{Bound: 16, Region: buf})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := elems(c), []uint32{12, 3}; !sameOrder(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if &c.Region()[0] != &buf[0] {
			t.Error("copy does not use the supplied region")
		}
		checkInvariants(t, c)
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := s.CopyWithConfig(CopyConfig{Bound: -3}); err == nil {
			t.Error("negative bound should be rejected")
		}
		if _, err := s.CopyWithConfig(CopyConfig{Bound: 1 << 40}); !errors.Is(err, ErrUnsupportedSize) {
			t.Errorf("error = %v, want ErrUnsupportedSize", err)
		}
		if _, err := s.CopyWithConfig(CopyConfig{Region: make([]byte, 10)}); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("error = %v, want ErrInvalidRegion", err)
		}
	})
}

func TestComplement(t *testing.T) {
	s := MustNew(10, 7, 2, 5)
	c := s.Complement()

	if got, want := elems(c), []uint32{0, 1, 3, 4, 6, 8, 9}; !sameOrder(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	checkInvariants(t, c)

	cc := c.Complement()
	if !cc.Equal(s) {
		t.Errorf("complement of complement = %v, want the elements of %v", cc, s)
	}

	full := MustNew(4).Complement()
	if got, want := elems(full), []uint32{0, 1, 2, 3}; !sameOrder(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !full.Complement().IsEmpty() {
		t.Error("complement of the full universe should be empty")
	}
}

func TestComplementWithConfig(t *testing.T) {
	s := MustNew(10, 1, 3, 8)

	c, err := s.ComplementWithConfig(CopyConfig{Bound: 6, Order: Ordered})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := elems(c), []uint32{0, 2, 4, 5}; !sameOrder(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if c.Order() != Ordered {
		t.Errorf("order %v, want ordered", c.Order())
	}

	wide, err := s.ComplementWithConfig(CopyConfig{Bound: 12})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := elems(wide), []uint32{0, 2, 4, 5, 6, 7, 9, 10, 11}; !sameOrder(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCopyRejectsSourceRegion(t *testing.T) {
	// Source occupies the first 40 bytes of buf: bound 20, one byte per entry.
	buf := make([]byte, 100)
	config := DefaultConfig()
	config.Region = buf
	s, err := NewWithConfig(20, config, 4, 17, 9)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		config CopyConfig
	}{
		{"same region", CopyConfig{Region: s.Region()}},
		{"tail overlap", CopyConfig{Region: buf, Offset: 30}},
		{"covering slice", CopyConfig{Bound: 10, Region: buf[10:]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CopyWithConfig(tt.config); !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("CopyWithConfig error = %v, want ErrInvalidRegion", err)
			}
			if _, err := s.ComplementWithConfig(tt.config); !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("ComplementWithConfig error = %v, want ErrInvalidRegion", err)
			}
			if got, want := elems(s), []uint32{4, 17, 9}; !sameOrder(got, want) {
				t.Errorf("source changed to %v", got)
			}
			checkInvariants(t, s)
		})
	}

	t.Run("adjacent", func(t *testing.T) {
		c, err := s.ComplementWithConfig(CopyConfig{Bound: 30, Region: buf, Offset: 40})
		if err != nil {
			t.Fatalf("adjacent region rejected: %v", err)
		}
		if c.Len() != 27 || c.Has(4) || !c.Has(25) {
			t.Errorf("unexpected complement %v", c)
		}
		if got, want := elems(s), []uint32{4, 17, 9}; !sameOrder(got, want) {
			t.Errorf("source changed to %v", got)
		}
	})

	t.Run("heap source", func(t *testing.T) {
		h := MustNew(20, 1, 2)
		if _, err := h.CopyWithConfig(CopyConfig{Region: h.Region()}); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("error = %v, want ErrInvalidRegion", err)
		}
	})
}
