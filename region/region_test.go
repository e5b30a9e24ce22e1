package region

import (
	"bytes"
	"errors"
	"testing"
)

func TestMap(t *testing.T) {
	sizes := []int{1, 7, 4096, 3*PageSize() + 5}

	for _, size := range sizes {
		m, err := Map(size)
		if err != nil {
			t.Fatalf("Map(%d) failed: %v", size, err)
		}
		if m.Len() != size {
			t.Errorf("Map(%d).Len() = %d", size, m.Len())
		}
		b := m.Bytes()
		for i, v := range b {
			if v != 0 {
				t.Fatalf("Map(%d): byte %d is %d, want 0", size, i, v)
			}
		}
		b[0] = 0xff
		b[size-1] = 0xee
		if err := m.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
		if m.Bytes() != nil {
			t.Error("Bytes() should be nil after Close")
		}
	}
}

func TestMapZero(t *testing.T) {
	m, err := Map(0)
	if err != nil {
		t.Fatalf("Map(0) failed: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty mapping, got %d bytes", m.Len())
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestMapNegative(t *testing.T) {
	_, err := Map(-1)
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Map(-1) error = %v, want ErrInvalidSize", err)
	}
}

func TestCloseTwice(t *testing.T) {
	m, err := Map(64)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}
}

func TestPageSize(t *testing.T) {
	ps := PageSize()
	if ps <= 0 || ps&(ps-1) != 0 {
		t.Errorf("PageSize() = %d, want a positive power of two", ps)
	}
}

func TestFill(t *testing.T) {
	a := make([]byte, 37)
	b := make([]byte, 37)
	Fill(a, 42)
	Fill(b, 42)
	if !bytes.Equal(a, b) {
		t.Error("Fill should be deterministic for a seed")
	}
	if bytes.Equal(a, make([]byte, 37)) {
		t.Error("Fill left the buffer zeroed")
	}
	Fill(b, 43)
	if bytes.Equal(a, b) {
		t.Error("different seeds should give different patterns")
	}
}
