// Package region provides backing memory for sparse sets.
//
// A sparse set never clears its storage, so the cost of creating one is the
// cost of obtaining the memory. On unix platforms Map returns an anonymous
// private mapping: the kernel commits pages only when they are first
// touched, which keeps a set over a large universe cheap until it is
// populated. Other platforms fall back to the Go heap.
//
// Typical use:
//
//	size, _ := sparseset.RegionSize(1 << 24)
//	m, err := region.Map(size)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//	config := sparseset.DefaultConfig()
//	config.Region = m.Bytes()
//	s, err := sparseset.NewWithConfig(1<<24, config)
//
// The mapping must outlive every set built on it.
package region

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidSize indicates a negative mapping size.
var ErrInvalidSize = errors.New("region: invalid size")

// ErrClosed indicates use of a mapping after Close.
var ErrClosed = errors.New("region: mapping closed")

// Mapping is a block of memory obtained with Map.
// A Mapping is not safe for concurrent Close.
type Mapping struct {
	data   []byte
	mapped bool // data came from mmap and must be unmapped
	closed bool
}

// Map returns a zero-filled read/write mapping of size bytes.
// A zero size yields an empty mapping without a system call.
func Map(size int) (*Mapping, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size == 0 {
		return &Mapping{data: []byte{}}, nil
	}
	data, mapped, err := mapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("region: map %d bytes: %w", size, err)
	}
	return &Mapping{data: data, mapped: mapped}, nil
}

// Bytes returns the mapped memory, or nil after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the size of the mapping in bytes.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Close releases the mapping. Any set still built on it becomes invalid.
// Calling Close more than once returns ErrClosed.
func (m *Mapping) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	data := m.data
	m.data = nil
	if !m.mapped {
		return nil
	}
	if err := unmap(data); err != nil {
		return fmt.Errorf("region: unmap: %w", err)
	}
	return nil
}

// PageSize returns the granularity in which a mapping commits memory.
func PageSize() int {
	return pageSize()
}

// Fill overwrites b with a deterministic pseudo-random byte pattern derived
// from seed. It is used to build regions that hold stale data.
func Fill(b []byte, seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var word [8]byte
	for len(b) >= 8 {
		binary.LittleEndian.PutUint64(b, r.Uint64())
		b = b[8:]
	}
	if len(b) > 0 {
		binary.LittleEndian.PutUint64(word[:], r.Uint64())
		copy(b, word[:])
	}
}
